package expr

import "github.com/gradhess/mle/internal/ops"

// Sum reduces a to a scalar by addition.
func Sum(a Expr) Expr {
	if !a.operand.Free {
		var s float64
		for i := 0; i < a.Len(); i++ {
			s += a.operand.Const[i]
		}
		return Const(s)
	}
	begin := a.tp.t.Alloc(1)
	op := ops.NewSumOp(a.operand, begin)
	a.tp.t.Append(op)
	return Expr{tp: a.tp, operand: ops.FreeRange(op.Out())}
}

// SumSq reduces a to the scalar sum of its elements' squares.
func SumSq(a Expr) Expr {
	if !a.operand.Free {
		var s float64
		for i := 0; i < a.Len(); i++ {
			v := a.operand.Const[i]
			s += v * v
		}
		return Const(s)
	}
	begin := a.tp.t.Alloc(1)
	op := ops.NewSumOfSquaresOp(a.operand, begin)
	a.tp.t.Append(op)
	return Expr{tp: a.tp, operand: ops.FreeRange(op.Out())}
}

// Dot returns the scalar dot product of a and b, which must have equal
// length.
func Dot(a, b Expr) (Expr, error) {
	if a.Len() != b.Len() {
		return Expr{}, ErrShapeMismatch
	}
	if !a.operand.Free && !b.operand.Free {
		var s float64
		for i := 0; i < a.Len(); i++ {
			s += a.operand.Const[i] * b.operand.Const[i]
		}
		return Const(s), nil
	}
	tp := ownerTape(a, b)
	begin := tp.t.Alloc(1)
	op := ops.NewDotOp(a.operand, b.operand, begin)
	tp.t.Append(op)
	return Expr{tp: tp, operand: ops.FreeRange(op.Out())}, nil
}

// SumLogDBernoulli returns Σ log(p_i·y_i + (1-p_i)·(1-y_i)) for a free
// probability vector p and a fixed binary vector y of equal length — the
// Bernoulli log-likelihood primitive used by logistic-regression-style
// objectives.
func SumLogDBernoulli(p Expr, y []float64) (Expr, error) {
	if p.Len() != len(y) {
		return Expr{}, ErrShapeMismatch
	}
	if !p.operand.Free {
		return Expr{}, ErrShapeMismatch
	}
	begin := p.tp.t.Alloc(1)
	op := ops.NewBernoulliLogLikOp(p.operand, y, begin)
	p.tp.t.Append(op)
	return Expr{tp: p.tp, operand: ops.FreeRange(op.Out())}, nil
}
