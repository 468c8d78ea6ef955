package ops

import "math"

// SumOp reduces a vector to a scalar by addition. Grounded on
// original_source/src/op_aggregate.h's AggregSum: partial is 1 everywhere,
// Hessian is always zero.
type SumOp struct {
	A    Operand
	Out_ Range
}

func NewSumOp(a Operand, outBegin int) *SumOp {
	return &SumOp{A: a, Out_: Range{Begin: outBegin, Len: 1}}
}

func (op *SumOp) Out() Range              { return op.Out_ }
func (op *SumOp) Tags() Tags              { return HessianAlwaysZero }
func (op *SumOp) NumInputsAt(i int) int   { return op.A.Len() }
func (op *SumOp) InputIndexAt(i, k int) (int, bool) {
	return op.A.Index(k)
}

func (op *SumOp) Evaluate(values []float64) {
	var sum float64
	n := op.A.Len()
	for j := 0; j < n; j++ {
		sum += op.A.At(j, values)
	}
	values[op.Out_.Begin] = sum
}

func (op *SumOp) Partial(i, k int, values []float64) float64    { return 1 }
func (op *SumOp) Partial2(i, k, l int, values []float64) float64 { return 0 }

// SumOfSquaresOp reduces a vector to a scalar sum of squares. Grounded on
// AggregSumOfSquares: partial is 2*v_j, Hessian diagonal is 2, off-diagonal
// always zero.
type SumOfSquaresOp struct {
	A    Operand
	Out_ Range
}

func NewSumOfSquaresOp(a Operand, outBegin int) *SumOfSquaresOp {
	return &SumOfSquaresOp{A: a, Out_: Range{Begin: outBegin, Len: 1}}
}

func (op *SumOfSquaresOp) Out() Range            { return op.Out_ }
func (op *SumOfSquaresOp) Tags() Tags            { return HessianOffDiagAlwaysZero }
func (op *SumOfSquaresOp) NumInputsAt(i int) int { return op.A.Len() }
func (op *SumOfSquaresOp) InputIndexAt(i, k int) (int, bool) {
	return op.A.Index(k)
}

func (op *SumOfSquaresOp) Evaluate(values []float64) {
	var sum float64
	n := op.A.Len()
	for j := 0; j < n; j++ {
		v := op.A.At(j, values)
		sum += v * v
	}
	values[op.Out_.Begin] = sum
}

func (op *SumOfSquaresOp) Partial(i, k int, values []float64) float64 {
	return 2 * op.A.At(k, values)
}

func (op *SumOfSquaresOp) Partial2(i, k, l int, values []float64) float64 {
	if k == l {
		return 2
	}
	return 0
}

// DotOp reduces two vectors of equal length to their dot product. Grounded
// on AggregDotProd: when both operands are free, the local input space is
// the concatenation of A's and B's slots; ∂/∂A_j = B_j, ∂/∂B_j = A_j, and
// the only nonzero Hessian entries are the cross pairs (A_j,B_j) (=1); when
// one operand is fixed, only the free operand's slots are local inputs and
// the Hessian is always zero (the result is affine in the remaining free
// operand).
type DotOp struct {
	A, B Operand
	Out_ Range
}

func NewDotOp(a, b Operand, outBegin int) *DotOp {
	return &DotOp{A: a, B: b, Out_: Range{Begin: outBegin, Len: 1}}
}

func (op *DotOp) Out() Range { return op.Out_ }

func (op *DotOp) Tags() Tags {
	if op.A.Free && op.B.Free {
		return HessianDiagAlwaysZero
	}
	return HessianAlwaysZero
}

func (op *DotOp) n() int { return op.A.Len() }

func (op *DotOp) NumInputsAt(i int) int {
	n := op.n()
	if op.A.Free && op.B.Free {
		return 2 * n
	}
	return n
}

func (op *DotOp) InputIndexAt(i, k int) (int, bool) {
	n := op.n()
	if op.A.Free && op.B.Free {
		if k < n {
			return op.A.Index(k)
		}
		return op.B.Index(k - n)
	}
	if op.A.Free {
		return op.A.Index(k)
	}
	return op.B.Index(k)
}

func (op *DotOp) Evaluate(values []float64) {
	var sum float64
	n := op.n()
	for j := 0; j < n; j++ {
		sum += op.A.At(j, values) * op.B.At(j, values)
	}
	values[op.Out_.Begin] = sum
}

func (op *DotOp) Partial(i, k int, values []float64) float64 {
	n := op.n()
	if op.A.Free && op.B.Free {
		if k < n {
			return op.B.At(k, values)
		}
		return op.A.At(k-n, values)
	}
	if op.A.Free {
		return op.B.At(k, values)
	}
	return op.A.At(k, values)
}

func (op *DotOp) Partial2(i, k, l int, values []float64) float64 {
	n := op.n()
	if !(op.A.Free && op.B.Free) {
		return 0
	}
	// Nonzero only for the cross pair (A_j, B_j), i.e. {k,l} == {j, j+n}.
	if k < n && l >= n && l-n == k {
		return 1
	}
	if l < n && k >= n && k-n == l {
		return 1
	}
	return 0
}

// BernoulliLogLikOp computes Σ log(p_j·y_j + (1-p_j)·(1-y_j)) for a free
// probability vector p and a fixed binary vector y. Grounded on
// AggregBernoulliLogLikelihood: for y_j==1 the term is log(p_j) (partial
// 1/p_j, Hessian -1/p_j²); for y_j==0 the term is log(1-p_j) (partial
// 1/(p_j-1), Hessian -1/(p_j-1)²); off-diagonal Hessian is always zero.
type BernoulliLogLikOp struct {
	P    Operand // free
	Y    []float64
	Out_ Range
}

func NewBernoulliLogLikOp(p Operand, y []float64, outBegin int) *BernoulliLogLikOp {
	return &BernoulliLogLikOp{P: p, Y: y, Out_: Range{Begin: outBegin, Len: 1}}
}

func (op *BernoulliLogLikOp) Out() Range              { return op.Out_ }
func (op *BernoulliLogLikOp) Tags() Tags              { return HessianOffDiagAlwaysZero }
func (op *BernoulliLogLikOp) NumInputsAt(i int) int   { return op.P.Len() }
func (op *BernoulliLogLikOp) InputIndexAt(i, k int) (int, bool) {
	return op.P.Index(k)
}

func (op *BernoulliLogLikOp) term(j int, p float64) float64 {
	y := op.Y[j]
	a := p*y + (1-p)*(1-y)
	return a
}

func (op *BernoulliLogLikOp) Evaluate(values []float64) {
	var sum float64
	n := op.P.Len()
	for j := 0; j < n; j++ {
		a := op.term(j, op.P.At(j, values))
		sum += math.Log(a)
	}
	values[op.Out_.Begin] = sum
}

func (op *BernoulliLogLikOp) Partial(i, k int, values []float64) float64 {
	p := op.P.At(k, values)
	if op.Y[k] == 1 {
		return 1 / p
	}
	return 1 / (p - 1)
}

func (op *BernoulliLogLikOp) Partial2(i, k, l int, values []float64) float64 {
	if k != l {
		return 0
	}
	p := op.P.At(k, values)
	if op.Y[k] == 1 {
		return -1 / (p * p)
	}
	return -1 / ((p - 1) * (p - 1))
}
