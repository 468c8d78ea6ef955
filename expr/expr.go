// Package expr is the shape-aware expression builder ("spy" in
// original_source) a host program uses to describe a maximum-likelihood
// objective: declare free parameters, combine them with arithmetic and
// transcendental primitives, and hand the resulting tape to the solver.
//
// Every exported function here does two things: pick the right operator
// family and shape for its operands (including the mandatory peephole
// rewrites of spec §4.D), then record it via package tape. The operand
// duality (trace-backed vs. baked-in constant) that package ops already
// encodes in Operand is reused directly as the public Expr representation,
// so a single Add/Mul/etc. implementation handles every freedom mix
// without the source's per-combination template specializations.
package expr

import (
	"errors"

	"github.com/gradhess/mle/internal/ops"
	"github.com/gradhess/mle/internal/tape"
)

// Tape is the handle returned by Objective; it owns the underlying
// recording surface that every Expr built from it shares.
type Tape struct {
	t *tape.Tape
}

// Objective creates an empty tape ready to accept variable declarations.
func Objective() *Tape {
	return &Tape{t: tape.New()}
}

// Raw exposes the underlying internal/tape.Tape, for the solver and
// likelihood packages that need direct access to trace layout.
func (tp *Tape) Raw() *tape.Tape { return tp.t }

// Expr is a handle into a Tape's trace: either a contiguous run of free
// (trace-backed) scalar slots, or a baked-in constant. Ordinary arithmetic
// on an Expr (Add, Mul, ...) records a new operator and returns a handle to
// its output range; arithmetic between two constants never touches the
// tape at all and is folded immediately.
type Expr struct {
	tp      *Tape
	operand ops.Operand
	rows    int // nonzero only for matrix-shaped exprs (MatMul operands/results)
	cols    int
}

// Const returns a fixed scalar expression, not backed by any trace slot.
func Const(v float64) Expr {
	return Expr{operand: ops.Scalar(v)}
}

// ConstVector returns a fixed vector expression.
func ConstVector(v []float64) Expr {
	return Expr{operand: ops.Vector(v)}
}

// NewVar declares a new free input on tp and returns a handle to it. It
// fails with ErrDeclarationAfterRecording once any operator has already
// been recorded on tp.
func NewVar(tp *Tape, initial []float64) (Expr, error) {
	r, err := tp.t.DeclareInput(initial)
	if err != nil {
		if errors.Is(err, tape.ErrDeclarationAfterRecording) {
			return Expr{}, ErrDeclarationAfterRecording
		}
		return Expr{}, err
	}
	return Expr{tp: tp, operand: ops.FreeRange(r)}, nil
}

// Len returns the number of scalar elements in the expression.
func (e Expr) Len() int { return e.operand.Len() }

// IsConst reports whether e is a baked-in constant rather than a
// trace-backed value.
func (e Expr) IsConst() bool { return !e.operand.Free }

// At returns a scalar handle to the i-th element of e. No new operator is
// recorded; this is a pure view, matching spec §4.F's element-access
// contract.
func (e Expr) At(i int) (Expr, error) {
	if i < 0 || i >= e.Len() {
		return Expr{}, ErrOutOfRange
	}
	if !e.operand.Free {
		return Const(e.operand.Const[i%len(e.operand.Const)]), nil
	}
	return Expr{tp: e.tp, operand: ops.FreeScalar(e.operand.Begin + i)}, nil
}

// Read returns e's current numeric value(s) out of values, the flat array a
// solved trace stores its values in. A constant expression ignores values
// entirely and returns its baked-in value(s) instead — the host can read a
// handle the same way whether or not it happened to fold to a constant.
func (e Expr) Read(values []float64) []float64 {
	n := e.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = e.operand.At(i, values)
	}
	return out
}

// sameRange reports whether a and b reference the identical trace range,
// the condition the peephole rewrites check for "a op a" patterns.
func sameRange(a, b Expr) bool {
	return a.operand.Free && b.operand.Free &&
		a.operand.Begin == b.operand.Begin && a.operand.N == b.operand.N
}

// isConstScalar reports whether e is a baked-in scalar equal to v.
func isConstScalar(e Expr, v float64) bool {
	return !e.operand.Free && len(e.operand.Const) == 1 && e.operand.Const[0] == v
}

func ownerTape(a, b Expr) *Tape {
	if a.tp != nil {
		return a.tp
	}
	return b.tp
}

func (tp *Tape) allocUnary(kind ops.UnaryKind, a ops.Operand) Expr {
	begin := tp.t.Alloc(a.Len())
	op := ops.NewUnaryOp(kind, a, begin)
	tp.t.Append(op)
	return Expr{tp: tp, operand: ops.FreeRange(op.Out())}
}

func (tp *Tape) allocBinary(kind ops.BinaryKind, a, b ops.Operand) Expr {
	begin := tp.t.Alloc(broadcastLenPublic(a, b))
	op := ops.NewBinaryOp(kind, a, b, begin)
	tp.t.Append(op)
	return Expr{tp: tp, operand: ops.FreeRange(op.Out())}
}

func broadcastLenPublic(a, b ops.Operand) int {
	n := a.Len()
	if b.Len() > n {
		n = b.Len()
	}
	return n
}
