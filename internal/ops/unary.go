package ops

import (
	"math"

	"github.com/gradhess/mle/internal/specfun"
)

// UnaryKind identifies which unary family a UnaryOp evaluates. The set is
// closed and transcribed from original_source/src/op_unary.h.
type UnaryKind int

const (
	Identity UnaryKind = iota
	Trivial0           // always evaluates to 0, ignoring the input value
	Trivial1           // always evaluates to 1, ignoring the input value
	Negate
	Invert
	Square
	Cube
	Log
	Log1p
	Log1m
	Exp
	SelfPower // x^x
	LogGamma
	Logit
	Logistic
	Sin
	Cos
)

// UnaryOp is an elementwise unary operator over a free or fixed operand.
type UnaryOp struct {
	Kind UnaryKind
	A    Operand
	Out_ Range
}

// NewUnaryOp records a unary operator over a with the given output range
// start; the output length always matches a's length.
func NewUnaryOp(kind UnaryKind, a Operand, outBegin int) *UnaryOp {
	return &UnaryOp{Kind: kind, A: a, Out_: Range{Begin: outBegin, Len: a.Len()}}
}

func (op *UnaryOp) Out() Range { return op.Out_ }

func (op *UnaryOp) Tags() Tags {
	t := ElementWise
	switch op.Kind {
	case Trivial0, Trivial1:
		t |= PartialAlwaysZero | HessianAlwaysZero
	case Identity, Negate:
		t |= HessianAlwaysZero
	}
	return t
}

func (op *UnaryOp) NumInputsAt(i int) int { return 1 }

func (op *UnaryOp) InputIndexAt(i, k int) (int, bool) {
	return op.A.Index(i)
}

func (op *UnaryOp) Evaluate(values []float64) {
	n := op.Out_.Len
	for i := 0; i < n; i++ {
		x := op.A.At(i, values)
		values[op.Out_.Begin+i] = unaryValue(op.Kind, x)
	}
}

func (op *UnaryOp) Partial(i, k int, values []float64) float64 {
	x := op.A.At(i, values)
	return unaryPartial(op.Kind, x)
}

func (op *UnaryOp) Partial2(i, k, l int, values []float64) float64 {
	x := op.A.At(i, values)
	return unaryHessian(op.Kind, x)
}

func unaryValue(kind UnaryKind, x float64) float64 {
	switch kind {
	case Identity:
		return x
	case Trivial0:
		return 0
	case Trivial1:
		return 1
	case Negate:
		return -x
	case Invert:
		return 1 / x
	case Square:
		return x * x
	case Cube:
		return x * x * x
	case Log:
		return math.Log(x)
	case Log1p:
		return math.Log1p(x)
	case Log1m:
		return math.Log1p(-x)
	case Exp:
		return math.Exp(x)
	case SelfPower:
		return math.Pow(x, x)
	case LogGamma:
		v, _ := math.Lgamma(x)
		return v
	case Logit:
		return math.Log(x / (1 - x))
	case Logistic:
		return 1 / (1 + math.Exp(-x))
	case Sin:
		return math.Sin(x)
	case Cos:
		return math.Cos(x)
	}
	panic("ops: unknown UnaryKind")
}

// unaryPartial returns d(out)/dx. Formulas transcribed from op_unary.h.
func unaryPartial(kind UnaryKind, x float64) float64 {
	switch kind {
	case Identity:
		return 1
	case Trivial0, Trivial1:
		return 0
	case Negate:
		return -1
	case Invert:
		return -1 / (x * x)
	case Square:
		return 2 * x
	case Cube:
		return 3 * x * x
	case Log:
		return 1 / x
	case Log1p:
		return 1 / (1 + x)
	case Log1m:
		return -1 / (1 - x)
	case Exp:
		return math.Exp(x)
	case SelfPower:
		return math.Pow(x, x) * (1 + math.Log(x))
	case LogGamma:
		return specfun.Digamma(x)
	case Logit:
		return 1/x + 1/(1-x)
	case Logistic:
		ex := math.Exp(-x)
		denom := ex + 1
		return ex / (denom * denom)
	case Sin:
		return math.Cos(x)
	case Cos:
		return -math.Sin(x)
	}
	panic("ops: unknown UnaryKind")
}

// unaryHessian returns d²(out)/dx².
func unaryHessian(kind UnaryKind, x float64) float64 {
	switch kind {
	case Identity, Trivial0, Trivial1, Negate:
		return 0
	case Invert:
		return 2 / (x * x * x)
	case Square:
		return 2
	case Cube:
		return 6 * x
	case Log:
		return -1 / (x * x)
	case Log1p:
		xp1 := 1 + x
		return -1 / (xp1 * xp1)
	case Log1m:
		xm1 := 1 - x
		return -1 / (xm1 * xm1)
	case Exp:
		return math.Exp(x)
	case SelfPower:
		logx := math.Log(x)
		return math.Pow(x, x-1) + math.Pow(x, x)*(logx+1)*(logx+1)
	case LogGamma:
		return specfun.Trigamma(x)
	case Logit:
		xm1 := x - 1
		return 1/(xm1*xm1) - 1/(x*x)
	case Logistic:
		ex := math.Exp(-x)
		denom := ex + 1
		return ex * (ex - 1) / (denom * denom * denom)
	case Sin:
		return -math.Sin(x)
	case Cos:
		return -math.Cos(x)
	}
	panic("ops: unknown UnaryKind")
}
