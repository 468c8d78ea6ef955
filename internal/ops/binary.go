package ops

import "math"

// BinaryKind identifies which binary family a BinaryOp evaluates. Grounded
// on original_source/src/op_plus.h, op_minus.h, op_multiply.h, op_divide.h
// and op_power.h: those five headers each specialize the same shape
// (scalar-scalar, vector-scalar, scalar-vector, vector-vector) three ways
// per freedom mix. Here a single BinaryOp handles every shape and freedom
// combination for a family; BinaryKind only selects which elementary
// function and its partials to apply.
type BinaryKind int

const (
	Add BinaryKind = iota
	Sub
	Mul
	Div
	Pow
)

// BinaryOp is an elementwise binary operator: Add, Sub, Mul, Div, or Pow,
// over any combination of scalar/vector and free/fixed operands.
type BinaryOp struct {
	Kind BinaryKind
	A, B Operand
	Out_ Range
}

// NewBinaryOp records the output range implied by broadcasting a and b.
func NewBinaryOp(kind BinaryKind, a, b Operand, outBegin int) *BinaryOp {
	n := broadcastLen(a, b)
	return &BinaryOp{Kind: kind, A: a, B: b, Out_: Range{Begin: outBegin, Len: n}}
}

func (op *BinaryOp) Out() Range { return op.Out_ }

func (op *BinaryOp) Tags() Tags {
	t := ElementWise
	switch op.Kind {
	case Add, Mul:
		t |= Commutable
	}
	switch op.Kind {
	case Add, Sub:
		t |= HessianAlwaysZero
	case Mul:
		t |= HessianDiagAlwaysZero
	}
	return t
}

func (op *BinaryOp) NumInputsAt(i int) int { return 2 }

func (op *BinaryOp) InputIndexAt(i, k int) (int, bool) {
	if k == 0 {
		return op.A.Index(i)
	}
	return op.B.Index(i)
}

func (op *BinaryOp) Evaluate(values []float64) {
	n := op.Out_.Len
	for i := 0; i < n; i++ {
		a := op.A.At(i, values)
		b := op.B.At(i, values)
		values[op.Out_.Begin+i] = binaryValue(op.Kind, a, b)
	}
}

func (op *BinaryOp) Partial(i, k int, values []float64) float64 {
	a := op.A.At(i, values)
	b := op.B.At(i, values)
	da, db := binaryPartials(op.Kind, a, b)
	if k == 0 {
		return da
	}
	return db
}

func (op *BinaryOp) Partial2(i, k, l int, values []float64) float64 {
	a := op.A.At(i, values)
	b := op.B.At(i, values)
	daa, dab, dbb := binaryHessian(op.Kind, a, b)
	switch {
	case k == 0 && l == 0:
		return daa
	case k == 1 && l == 1:
		return dbb
	default:
		return dab
	}
}

func binaryValue(kind BinaryKind, a, b float64) float64 {
	switch kind {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Div:
		return a / b
	case Pow:
		return math.Pow(a, b)
	}
	panic("ops: unknown BinaryKind")
}

// binaryPartials returns (∂out/∂a, ∂out/∂b). Formulas are elementary
// calculus, transcribed in the original's op_plus.h/op_minus.h/
// op_multiply.h/op_divide.h/op_power.h.
func binaryPartials(kind BinaryKind, a, b float64) (da, db float64) {
	switch kind {
	case Add:
		return 1, 1
	case Sub:
		return 1, -1
	case Mul:
		return b, a
	case Div:
		return 1 / b, -a / (b * b)
	case Pow:
		return b * math.Pow(a, b-1), math.Pow(a, b) * math.Log(a)
	}
	panic("ops: unknown BinaryKind")
}

// binaryHessian returns (∂²out/∂a², ∂²out/∂a∂b, ∂²out/∂b²).
func binaryHessian(kind BinaryKind, a, b float64) (daa, dab, dbb float64) {
	switch kind {
	case Add, Sub:
		return 0, 0, 0
	case Mul:
		return 0, 1, 0
	case Div:
		return 0, -1 / (b * b), 2 * a / (b * b * b)
	case Pow:
		apowb := math.Pow(a, b)
		loga := math.Log(a)
		daa = b * (b - 1) * math.Pow(a, b-2)
		dab = math.Pow(a, b-1) * (1 + b*loga)
		dbb = apowb * loga * loga
		return
	}
	panic("ops: unknown BinaryKind")
}
