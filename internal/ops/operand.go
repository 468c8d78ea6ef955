package ops

// Range is a contiguous span of trace indices, [Begin, Begin+Len).
type Range struct {
	Begin int
	Len   int
}

// At returns the trace index of the i-th element of the range.
func (r Range) At(i int) int { return r.Begin + i }

// Operand is one input slot of an operator: either a contiguous run of
// free trace indices, or a baked-in constant scalar/vector. A length-1
// operand broadcasts against a longer sibling operand, the same rule
// spec.md §4.A gives for scalar↔tensor broadcasting.
//
// This single type is what lets one Go struct per operator family stand in
// for the source's nine free/fixed/shape specializations: Index and At
// already resolve broadcasting and constant-vs-trace-backed dispatch, so
// every caller (Evaluate, the reverse sweep) is written once against this
// interface regardless of which combination produced the operand.
type Operand struct {
	Free  bool
	Begin int       // first trace index, meaningful only if Free
	N     int       // element count, meaningful only if Free
	Const []float64 // constant values, meaningful only if !Free
}

// Scalar returns a fixed (non-trace-backed) scalar operand.
func Scalar(v float64) Operand {
	return Operand{Const: []float64{v}}
}

// Vector returns a fixed (non-trace-backed) vector operand.
func Vector(v []float64) Operand {
	return Operand{Const: v}
}

// FreeRange returns a trace-backed operand spanning r.
func FreeRange(r Range) Operand {
	return Operand{Free: true, Begin: r.Begin, N: r.Len}
}

// FreeScalar returns a trace-backed operand referencing a single slot.
func FreeScalar(idx int) Operand {
	return Operand{Free: true, Begin: idx, N: 1}
}

// Len returns the operand's element count.
func (o Operand) Len() int {
	if o.Free {
		return o.N
	}
	return len(o.Const)
}

// At returns the value of the i-th logical element, broadcasting a
// length-1 operand against a longer sibling.
func (o Operand) At(i int, values []float64) float64 {
	if o.Len() == 1 {
		i = 0
	}
	if o.Free {
		return values[o.Begin+i]
	}
	return o.Const[i]
}

// Index returns the trace index of the i-th logical element and whether
// it is free (trace-backed, and therefore a candidate for adjoint/Hessian
// bookkeeping) as opposed to a baked-in constant.
func (o Operand) Index(i int) (idx int, free bool) {
	if o.Len() == 1 {
		i = 0
	}
	if !o.Free {
		return -1, false
	}
	return o.Begin + i, true
}

// broadcastLen returns the output length implied by two operands under the
// scalar-broadcast rule: equal lengths, or one side of length 1.
func broadcastLen(a, b Operand) int {
	n := a.Len()
	if b.Len() > n {
		n = b.Len()
	}
	return n
}
