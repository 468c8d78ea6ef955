package expr

import "github.com/gradhess/mle/internal/ops"

// foldConst evaluates a binary op immediately when both operands are
// constants, avoiding a wasted trace slot for an expression with no free
// parameter anywhere in it. This is not one of spec §4.D's mandatory
// rewrites, but it never changes observable behavior (constants never
// carry gradient/Hessian information) and keeps every example in this
// package from recording work the tape will never need to differentiate.
func foldConst(kind ops.BinaryKind, a, b Expr) (Expr, bool) {
	if a.operand.Free || b.operand.Free {
		return Expr{}, false
	}
	n := broadcastLenPublic(a.operand, b.operand)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = binaryEval(kind, a.operand.At(i, nil), b.operand.At(i, nil))
	}
	if n == 1 {
		return Const(out[0]), true
	}
	return ConstVector(out), true
}

func binaryEval(kind ops.BinaryKind, a, b float64) float64 {
	op := ops.NewBinaryOp(kind, ops.Scalar(a), ops.Scalar(b), 0)
	vals := make([]float64, 1)
	op.Evaluate(vals)
	return vals[0]
}

// Add returns a + b. Peephole: "a+a" collapses to a multiply-by-2;
// a+0 and 0+a collapse to a (identity), per spec §4.D.
func (a Expr) Add(b Expr) Expr {
	if v, ok := foldConst(ops.Add, a, b); ok {
		return v
	}
	if isConstScalar(b, 0) {
		return a
	}
	if isConstScalar(a, 0) {
		return b
	}
	if sameRange(a, b) {
		return a.tp.allocBinary(ops.Mul, a.operand, ops.Scalar(2))
	}
	return ownerTape(a, b).allocBinary(ops.Add, a.operand, b.operand)
}

// Sub returns a - b. Peephole: "a-a" collapses to trivial-0.
func (a Expr) Sub(b Expr) Expr {
	if v, ok := foldConst(ops.Sub, a, b); ok {
		return v
	}
	if sameRange(a, b) {
		return a.tp.allocUnary(ops.Trivial0, a.operand)
	}
	if isConstScalar(b, 0) {
		return a
	}
	return ownerTape(a, b).allocBinary(ops.Sub, a.operand, b.operand)
}

// Mul returns a * b. Peephole: "a*a" collapses to square; multiplying by
// the literal 0 or 1 collapses to trivial-0 or identity.
func (a Expr) Mul(b Expr) Expr {
	if v, ok := foldConst(ops.Mul, a, b); ok {
		return v
	}
	if isConstScalar(b, 0) {
		return a.tp.allocUnary(ops.Trivial0, a.operand)
	}
	if isConstScalar(a, 0) {
		return b.tp.allocUnary(ops.Trivial0, b.operand)
	}
	if isConstScalar(b, 1) {
		return a
	}
	if isConstScalar(a, 1) {
		return b
	}
	if sameRange(a, b) {
		return a.tp.allocUnary(ops.Square, a.operand)
	}
	return ownerTape(a, b).allocBinary(ops.Mul, a.operand, b.operand)
}

// Div returns a / b. Peephole: "a/a" collapses to trivial-1; "1/a"
// collapses to invert.
func (a Expr) Div(b Expr) Expr {
	if v, ok := foldConst(ops.Div, a, b); ok {
		return v
	}
	if sameRange(a, b) {
		return a.tp.allocUnary(ops.Trivial1, a.operand)
	}
	if isConstScalar(a, 1) {
		return b.tp.allocUnary(ops.Invert, b.operand)
	}
	return ownerTape(a, b).allocBinary(ops.Div, a.operand, b.operand)
}

// Pow returns a ^ b. Peephole: a^0 -> trivial-1, a^1 -> identity,
// a^2 -> square, a^3 -> cube.
func (a Expr) Pow(b Expr) Expr {
	if v, ok := foldConst(ops.Pow, a, b); ok {
		return v
	}
	if isConstScalar(b, 0) {
		return a.tp.allocUnary(ops.Trivial1, a.operand)
	}
	if isConstScalar(b, 1) {
		return a.tp.allocUnary(ops.Identity, a.operand)
	}
	if isConstScalar(b, 2) {
		return a.tp.allocUnary(ops.Square, a.operand)
	}
	if isConstScalar(b, 3) {
		return a.tp.allocUnary(ops.Cube, a.operand)
	}
	return ownerTape(a, b).allocBinary(ops.Pow, a.operand, b.operand)
}

// Neg returns -a.
func (a Expr) Neg() Expr {
	if !a.operand.Free {
		n := a.Len()
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[i] = -a.operand.At(i, nil)
		}
		if n == 1 {
			return Const(out[0])
		}
		return ConstVector(out)
	}
	return a.tp.allocUnary(ops.Negate, a.operand)
}
