package ops

// MatrixOperand is an Operand annotated with the 2-D row/column shape the
// matrix-multiplication operator needs to unravel column-major indices.
type MatrixOperand struct {
	Op         Operand
	Rows, Cols int
}

func (m MatrixOperand) at(row, col int, values []float64) float64 {
	return m.Op.At(col*m.Rows+row, values)
}

func (m MatrixOperand) index(row, col int) (int, bool) {
	return m.Op.Index(col*m.Rows + row)
}

// MatMulOp multiplies an (m x k) matrix by a (k x n) matrix to produce an
// (m x n) matrix, for any of the three freedom mixes {free,free},
// {free,fixed}, {fixed,free}. Grounded on
// original_source/src/op_multiply.h's MultiplyMatrixMatrix: the Hessian is
// exactly 1 at the pair (A[ci,t], B[t,cj]) for each contraction index t,
// and zero everywhere else, the familiar dot-product bilinearity pattern.
type MatMulOp struct {
	A, B MatrixOperand
	Out_ Range
}

// NewMatMulOp records a matrix product; a.Cols must equal b.Rows.
func NewMatMulOp(a, b MatrixOperand, outBegin int) *MatMulOp {
	return &MatMulOp{A: a, B: b, Out_: Range{Begin: outBegin, Len: a.Rows * b.Cols}}
}

func (op *MatMulOp) Out() Range { return op.Out_ }

func (op *MatMulOp) Tags() Tags {
	if op.A.Op.Free && op.B.Op.Free {
		return HessianDiagAlwaysZero
	}
	return HessianAlwaysZero
}

func (op *MatMulOp) k() int { return op.A.Cols }

func (op *MatMulOp) unravel(idx int) (ci, cj int) {
	m := op.A.Rows
	return idx % m, idx / m
}

func (op *MatMulOp) NumInputsAt(idx int) int {
	k := op.k()
	n := 0
	if op.A.Op.Free {
		n += k
	}
	if op.B.Op.Free {
		n += k
	}
	return n
}

func (op *MatMulOp) InputIndexAt(idx, kk int) (int, bool) {
	ci, cj := op.unravel(idx)
	k := op.k()
	if op.A.Op.Free {
		if kk < k {
			return op.A.index(ci, kk)
		}
		kk -= k
	}
	return op.B.index(kk, cj)
}

func (op *MatMulOp) Evaluate(values []float64) {
	m, k, n := op.A.Rows, op.k(), op.B.Cols
	for cj := 0; cj < n; cj++ {
		for ci := 0; ci < m; ci++ {
			var sum float64
			for t := 0; t < k; t++ {
				sum += op.A.at(ci, t, values) * op.B.at(t, cj, values)
			}
			values[op.Out_.Begin+cj*m+ci] = sum
		}
	}
}

func (op *MatMulOp) Partial(idx, kk int, values []float64) float64 {
	ci, cj := op.unravel(idx)
	k := op.k()
	if op.A.Op.Free {
		if kk < k {
			return op.B.at(kk, cj, values)
		}
		kk -= k
	}
	return op.A.at(ci, kk, values)
}

func (op *MatMulOp) Partial2(idx, kk, ll int, values []float64) float64 {
	if !(op.A.Op.Free && op.B.Op.Free) {
		return 0
	}
	k := op.k()
	switch {
	case kk < k && ll >= k:
		return boolF64(kk == ll-k)
	case ll < k && kk >= k:
		return boolF64(ll == kk-k)
	default:
		return 0
	}
}

func boolF64(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
