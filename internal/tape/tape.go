// Package tape implements the immutable, ordered recording of operator
// instances that makes up an expression graph. The tape itself is a dumb
// recorder: it allocates trace slots and appends operators in record
// order. The expression builder (package expr) decides which operator
// family and shape to record, including the peephole rewrites of spec §4.D;
// this mirrors the teacher's split between a bare recording surface and the
// per-operation constructors that do shape work before appending.
package tape

import "github.com/gradhess/mle/internal/ops"

// Tape is the ordered sequence of operator instances recorded for one
// expression graph, plus the trace-layout metadata every trace built on it
// shares. A tape is immutable once recording completes and may be bound to
// many independent traces.
type Tape struct {
	Ops           []ops.Operation
	InputSize     int       // n_input_size: total scalar width of declared free inputs
	TraceSize     int       // n_trace_size: n_input_size + total output width
	InitialValues []float64 // starting values of all free inputs, length InputSize

	tensorNames map[string]ops.Range // optional name -> trace range map (§6 minimum contract)
	tensorIDs   map[int]string       // inverse map, keyed by range begin
}

// New returns an empty tape ready to accept input declarations.
func New() *Tape {
	return &Tape{tensorNames: make(map[string]ops.Range), tensorIDs: make(map[int]string)}
}

// recording reports whether any operator has been appended yet.
func (t *Tape) recording() bool { return len(t.Ops) > 0 }

// DeclareInput reserves len(initial) contiguous trace slots for a new free input,
// initialized to the given values, and returns the range. It fails once any
// operator has been recorded, per spec §4.D.
func (t *Tape) DeclareInput(initial []float64) (ops.Range, error) {
	if t.recording() {
		return ops.Range{}, ErrDeclarationAfterRecording
	}
	r := ops.Range{Begin: t.InputSize, Len: len(initial)}
	t.InputSize += len(initial)
	t.TraceSize += len(initial)
	t.InitialValues = append(t.InitialValues, initial...)
	return r, nil
}

// Alloc reserves n contiguous trace slots for an operator's output and
// returns the first index, advancing the trace size. Callers build the
// operator with this begin index, then Append it.
func (t *Tape) Alloc(n int) int {
	begin := t.TraceSize
	t.TraceSize += n
	return begin
}

// Append records an operator in tape order. Its output range must equal
// the range most recently returned by Alloc.
func (t *Tape) Append(op ops.Operation) {
	t.Ops = append(t.Ops, op)
}

// IsFree reports whether idx addresses one of the tape's original free
// input slots, as opposed to an intermediate value produced by a recorded
// operator. This is the distinction the solver and likelihood packages
// need (which slots are optimizable parameters); it is not the same
// question the reverse sweep asks, since every trace index — input or
// intermediate — carries adjoint/Hessian bookkeeping until it is erased by
// the housekeeping step of edge-pushing.
func (t *Tape) IsFree(idx int) bool {
	return idx >= 0 && idx < t.InputSize
}

// NameTensor records an optional external name for a trace range,
// supplementing the minimum "tensor map" contract of spec §6/§9.
func (t *Tape) NameTensor(name string, r ops.Range) {
	t.tensorNames[name] = r
	t.tensorIDs[r.Begin] = name
}

// TensorByName looks up a previously named range.
func (t *Tape) TensorByName(name string) (ops.Range, bool) {
	r, ok := t.tensorNames[name]
	return r, ok
}
