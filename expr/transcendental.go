package expr

import (
	"math"

	"github.com/gradhess/mle/internal/ops"
)

func foldUnaryConst(kind ops.UnaryKind, a Expr) (Expr, bool) {
	if a.operand.Free {
		return Expr{}, false
	}
	n := a.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		op := ops.NewUnaryOp(kind, ops.Scalar(a.operand.Const[i]), 0)
		vals := make([]float64, 1)
		op.Evaluate(vals)
		out[i] = vals[0]
	}
	if n == 1 {
		return Const(out[0]), true
	}
	return ConstVector(out), true
}

func unary(kind ops.UnaryKind, a Expr) Expr {
	if v, ok := foldUnaryConst(kind, a); ok {
		return v
	}
	return a.tp.allocUnary(kind, a.operand)
}

// Log returns log(a), elementwise.
func Log(a Expr) Expr { return unary(ops.Log, a) }

// Log1p returns log(1+a), elementwise.
func Log1p(a Expr) Expr { return unary(ops.Log1p, a) }

// Log1m returns log(1-a), elementwise.
func Log1m(a Expr) Expr { return unary(ops.Log1m, a) }

// Exp returns exp(a), elementwise.
func Exp(a Expr) Expr { return unary(ops.Exp, a) }

// SelfPower returns a^a, elementwise.
func SelfPower(a Expr) Expr { return unary(ops.SelfPower, a) }

// LGamma returns log(Gamma(a)), elementwise.
func LGamma(a Expr) Expr { return unary(ops.LogGamma, a) }

// Logit returns log(a/(1-a)), elementwise.
func Logit(a Expr) Expr { return unary(ops.Logit, a) }

// Logistic returns 1/(1+exp(-a)), elementwise.
func Logistic(a Expr) Expr { return unary(ops.Logistic, a) }

// Sin returns sin(a), elementwise.
func Sin(a Expr) Expr { return unary(ops.Sin, a) }

// Cos returns cos(a), elementwise.
func Cos(a Expr) Expr { return unary(ops.Cos, a) }

// Gt returns the Iverson indicator [a > 0], elementwise, with zero
// gradient and Hessian everywhere.
func Gt(a Expr) Expr { return iverson(ops.GreaterThanZero, a) }

// Ge returns the Iverson indicator [a >= 0], elementwise.
func Ge(a Expr) Expr { return iverson(ops.GreaterOrEqualZero, a) }

// LogGt returns log([a > 0]) (0 or -Inf), elementwise.
func LogGt(a Expr) Expr { return iverson(ops.LogGreaterThanZero, a) }

// LogGe returns log([a >= 0]) (0 or -Inf), elementwise.
func LogGe(a Expr) Expr { return iverson(ops.LogGreaterOrEqualZero, a) }

func iverson(kind ops.IversonKind, a Expr) Expr {
	if !a.operand.Free {
		n := a.Len()
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[i] = iversonEval(kind, a.operand.Const[i])
		}
		if n == 1 {
			return Const(out[0])
		}
		return ConstVector(out)
	}
	begin := a.tp.t.Alloc(a.Len())
	op := ops.NewIversonOp(kind, a.operand, begin)
	a.tp.t.Append(op)
	return Expr{tp: a.tp, operand: ops.FreeRange(op.Out())}
}

func iversonEval(kind ops.IversonKind, x float64) float64 {
	switch kind {
	case ops.GreaterThanZero:
		if x > 0 {
			return 1
		}
		return 0
	case ops.GreaterOrEqualZero:
		if x >= 0 {
			return 1
		}
		return 0
	case ops.LogGreaterThanZero:
		if x > 0 {
			return 0
		}
		return math.Inf(-1)
	case ops.LogGreaterOrEqualZero:
		if x >= 0 {
			return 0
		}
		return math.Inf(-1)
	}
	panic("expr: unknown IversonKind")
}
