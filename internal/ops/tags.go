// Package ops implements the closed set of primitive operators recorded by
// the expression builder: scalar/vector arithmetic, unary transcendentals,
// aggregations, Iverson indicators, and matrix multiplication. Every
// operator exposes forward evaluation plus the local first and second
// partials the reverse sweep (package trace) needs for edge-pushing.
//
// The source this engine is modeled on specializes each operator family at
// compile time per input shape and per free/fixed operand combination
// (nine variants for a binary family: {scalar,vector}×{scalar,vector}×
// {free,fixed}). Go has no equivalent zero-cost template mechanism, and
// emulating the explosion with one type per combination would multiply the
// operator count by nine for no semantic gain: the edge-pushing recurrence
// in package trace only needs, for each output position, the trace index
// (if any) of each contributing input. That lookup is expressed once via
// Operand.Index and reused by every shape and freedom combination, so this
// package has one Go type per operator family, with shape and freedom
// resolved at evaluation time by ordinary branches on Operand.
package ops

// Tags is a bitmask of sparsity properties an operator exposes to the
// reverse sweep so that whole code paths can be skipped when a
// contribution is provably zero.
type Tags uint8

const (
	// PartialAlwaysZero marks operators whose first partials are zero
	// everywhere (the Iverson indicators).
	PartialAlwaysZero Tags = 1 << iota
	// HessianDiagAlwaysZero marks operators whose ∂²out/∂in_j² is always
	// zero (e.g. multiplication's diagonal terms).
	HessianDiagAlwaysZero
	// HessianOffDiagAlwaysZero marks operators whose ∂²out/∂in_j∂in_k
	// (j≠k) is always zero (e.g. every affine family).
	HessianOffDiagAlwaysZero
	// ElementWise marks operators whose output position i depends on
	// exactly the input(s) at the corresponding local position(s). The
	// reverse sweep does not branch on it: InputIndexAt already yields
	// only those inputs.
	ElementWise
	// Commutable marks operators where the operand order does not affect
	// peephole rewrite eligibility (e.g. a+b == b+a).
	Commutable
)

// HessianAlwaysZero is both Hessian sparsity tags combined, for operator
// families (addition, subtraction, Iverson) whose local Hessian is zero
// everywhere.
const HessianAlwaysZero = HessianDiagAlwaysZero | HessianOffDiagAlwaysZero

// Has reports whether every bit in want is set in t.
func (t Tags) Has(want Tags) bool {
	return t&want == want
}
