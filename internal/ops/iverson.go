package ops

import "math"

// IversonKind identifies one of the four indicator families, all with zero
// partials and zero Hessian everywhere they are differentiable. Grounded on
// original_source/src/op_iverson.h.
type IversonKind int

const (
	GreaterThanZero IversonKind = iota
	GreaterOrEqualZero
	LogGreaterThanZero // log([x>0]): 0 if x>0, -Inf otherwise
	LogGreaterOrEqualZero
)

// IversonOp is an elementwise indicator operator used to express barrier
// penalties (e.g. log([x>0]) to softly exclude infeasible regions).
type IversonOp struct {
	Kind IversonKind
	A    Operand
	Out_ Range
}

func NewIversonOp(kind IversonKind, a Operand, outBegin int) *IversonOp {
	return &IversonOp{Kind: kind, A: a, Out_: Range{Begin: outBegin, Len: a.Len()}}
}

func (op *IversonOp) Out() Range { return op.Out_ }

func (op *IversonOp) Tags() Tags {
	return ElementWise | PartialAlwaysZero | HessianAlwaysZero
}

func (op *IversonOp) NumInputsAt(i int) int { return 1 }

func (op *IversonOp) InputIndexAt(i, k int) (int, bool) {
	return op.A.Index(i)
}

func (op *IversonOp) Evaluate(values []float64) {
	n := op.Out_.Len
	for i := 0; i < n; i++ {
		x := op.A.At(i, values)
		values[op.Out_.Begin+i] = iversonValue(op.Kind, x)
	}
}

func (op *IversonOp) Partial(i, k int, values []float64) float64 { return 0 }

func (op *IversonOp) Partial2(i, k, l int, values []float64) float64 { return 0 }

func iversonValue(kind IversonKind, x float64) float64 {
	switch kind {
	case GreaterThanZero:
		if x > 0 {
			return 1
		}
		return 0
	case GreaterOrEqualZero:
		if x >= 0 {
			return 1
		}
		return 0
	case LogGreaterThanZero:
		if x > 0 {
			return 0
		}
		return math.Inf(-1)
	case LogGreaterOrEqualZero:
		if x >= 0 {
			return 0
		}
		return math.Inf(-1)
	}
	panic("ops: unknown IversonKind")
}
