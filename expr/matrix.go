package expr

import "github.com/gradhess/mle/internal/ops"

// NewMatrixVar declares a new free rows x cols matrix input on tp, stored
// column-major as spec.md §4.A requires.
func NewMatrixVar(tp *Tape, rows, cols int, initial []float64) (Expr, error) {
	e, err := NewVar(tp, initial)
	if err != nil {
		return Expr{}, err
	}
	e.rows, e.cols = rows, cols
	return e, nil
}

// ConstMatrix returns a fixed rows x cols matrix expression, column-major.
func ConstMatrix(rows, cols int, v []float64) Expr {
	e := ConstVector(v)
	e.rows, e.cols = rows, cols
	return e
}

// Rows and Cols report the matrix shape of e; both are 0 for a
// non-matrix-shaped expression.
func (e Expr) Rows() int { return e.rows }
func (e Expr) Cols() int { return e.cols }

func (e Expr) asMatrixOperand() ops.MatrixOperand {
	return ops.MatrixOperand{Op: e.operand, Rows: e.rows, Cols: e.cols}
}

// MatMul returns the matrix product a*b; a must be rows x k and b must be
// k x cols for some shared k.
func MatMul(a, b Expr) (Expr, error) {
	if a.rows == 0 || b.rows == 0 || a.cols != b.rows {
		return Expr{}, ErrShapeMismatch
	}
	tp := ownerTape(a, b)
	if tp == nil {
		return Expr{}, ErrShapeMismatch
	}
	begin := tp.t.Alloc(a.rows * b.cols)
	op := ops.NewMatMulOp(a.asMatrixOperand(), b.asMatrixOperand(), begin)
	tp.t.Append(op)
	out := Expr{tp: tp, operand: ops.FreeRange(op.Out()), rows: a.rows, cols: b.cols}
	return out, nil
}
