package ops

// Operation is implemented by every recorded operator. The forward and
// reverse sweeps (package trace) drive these methods per visited operator; they never
// needs to know which concrete operator family it is looking at.
type Operation interface {
	// Evaluate writes this operator's output slots from its inputs.
	Evaluate(values []float64)

	// Out returns the operator's output range (length 1 for a scalar
	// output).
	Out() Range

	// Tags returns the operator's sparsity capabilities.
	Tags() Tags

	// NumInputsAt returns how many distinct input slots contribute to
	// local output position i (0 <= i < Out().Len).
	NumInputsAt(i int) int

	// InputIndexAt returns the trace index of the k-th input slot
	// contributing to local output position i, and whether that slot is
	// free (trace-backed) as opposed to a baked-in constant.
	InputIndexAt(i, k int) (idx int, free bool)

	// Partial returns ∂out_i/∂in_k, the first partial of local output
	// position i with respect to its k-th contributing input, evaluated
	// at the current values.
	Partial(i, k int, values []float64) float64

	// Partial2 returns ∂²out_i/∂in_k∂in_l, the second partial of local
	// output position i with respect to its k-th and l-th contributing
	// inputs (k == l gives the diagonal term).
	Partial2(i, k, l int, values []float64) float64
}
