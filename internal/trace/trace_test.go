package trace

import (
	"math"
	"testing"

	"github.com/gradhess/mle/internal/ops"
	"github.com/gradhess/mle/internal/tape"
)

func buildSquare(x float64) (*tape.Tape, *Trace) {
	tp := tape.New()
	r, _ := tp.DeclareInput([]float64{x})
	begin := tp.Alloc(1)
	tp.Append(ops.NewUnaryOp(ops.Square, ops.FreeScalar(r.Begin), begin))
	return tp, New(tp)
}

func TestPlaySquareGradientAndHessian(t *testing.T) {
	_, tr := buildSquare(3)
	tr.Play()

	if got := tr.Objective(); got != 9 {
		t.Errorf("objective = %v, want 9", got)
	}
	if got := tr.Adjoints[0]; got != 6 {
		t.Errorf("gradient = %v, want 6", got)
	}
	if got := tr.Hessian.Read(0, 0); got != 2 {
		t.Errorf("Hessian(0,0) = %v, want 2", got)
	}
}

func TestPlaybackIdempotence(t *testing.T) {
	_, tr := buildSquare(2.5)
	tr.Play()
	values1 := append([]float64(nil), tr.Values...)
	adjoints1 := append([]float64(nil), tr.Adjoints...)
	h1 := tr.Hessian.Read(0, 0)

	tr.Play()
	for i := range values1 {
		if tr.Values[i] != values1[i] {
			t.Errorf("Values[%d] changed between identical plays: %v vs %v", i, tr.Values[i], values1[i])
		}
		if tr.Adjoints[i] != adjoints1[i] {
			t.Errorf("Adjoints[%d] changed between identical plays: %v vs %v", i, tr.Adjoints[i], adjoints1[i])
		}
	}
	if tr.Hessian.Read(0, 0) != h1 {
		t.Errorf("Hessian(0,0) changed between identical plays: %v vs %v", tr.Hessian.Read(0, 0), h1)
	}
}

func buildMul(x, y float64) (*tape.Tape, *Trace) {
	tp := tape.New()
	tp.DeclareInput([]float64{x, y})
	begin := tp.Alloc(1)
	tp.Append(ops.NewBinaryOp(ops.Mul, ops.FreeScalar(0), ops.FreeScalar(1), begin))
	return tp, New(tp)
}

func TestHessianSymmetryCrossTerm(t *testing.T) {
	_, tr := buildMul(2, 5)
	tr.Play()

	if got := tr.Objective(); got != 10 {
		t.Errorf("objective = %v, want 10", got)
	}
	if got := tr.Adjoints[0]; got != 5 {
		t.Errorf("d/dx = %v, want 5", got)
	}
	if got := tr.Adjoints[1]; got != 2 {
		t.Errorf("d/dy = %v, want 2", got)
	}
	h01 := tr.Hessian.Read(0, 1)
	h10 := tr.Hessian.Read(1, 0)
	if h01 != h10 {
		t.Errorf("asymmetric Hessian: H(0,1)=%v H(1,0)=%v", h01, h10)
	}
	if h01 != 1 {
		t.Errorf("H(0,1) = %v, want 1", h01)
	}
	if got := tr.Hessian.Read(0, 0); got != 0 {
		t.Errorf("H(0,0) = %v, want 0 (multiplication has zero diagonal)", got)
	}
}

func TestChainRuleCompositeGradient(t *testing.T) {
	// y = (x + 2) * 3, dy/dx = 3.
	tp := tape.New()
	tp.DeclareInput([]float64{5})
	sumBegin := tp.Alloc(1)
	tp.Append(ops.NewBinaryOp(ops.Add, ops.FreeScalar(0), ops.Scalar(2), sumBegin))
	mulBegin := tp.Alloc(1)
	tp.Append(ops.NewBinaryOp(ops.Mul, ops.FreeScalar(sumBegin), ops.Scalar(3), mulBegin))

	tr := New(tp)
	tr.Play()

	if got := tr.Objective(); got != 21 {
		t.Errorf("objective = %v, want 21", got)
	}
	if got := tr.Adjoints[0]; got != 3 {
		t.Errorf("gradient = %v, want 3", got)
	}
	if tr.Hessian.NNZ() != 0 {
		t.Errorf("expected empty Hessian for an affine function, got NNZ=%d", tr.Hessian.NNZ())
	}
}

func TestGradientAgainstFiniteDifferencesTwoVar(t *testing.T) {
	// f(x,y) = x^2 * y, checked against central differences.
	build := func(x, y float64) float64 {
		tp := tape.New()
		tp.DeclareInput([]float64{x, y})
		sqBegin := tp.Alloc(1)
		tp.Append(ops.NewUnaryOp(ops.Square, ops.FreeScalar(0), sqBegin))
		mulBegin := tp.Alloc(1)
		tp.Append(ops.NewBinaryOp(ops.Mul, ops.FreeScalar(sqBegin), ops.FreeScalar(1), mulBegin))
		tr := New(tp)
		tr.Play()
		return tr.Objective()
	}

	x0, y0 := 1.7, -0.8
	tp := tape.New()
	tp.DeclareInput([]float64{x0, y0})
	sqBegin := tp.Alloc(1)
	tp.Append(ops.NewUnaryOp(ops.Square, ops.FreeScalar(0), sqBegin))
	mulBegin := tp.Alloc(1)
	tp.Append(ops.NewBinaryOp(ops.Mul, ops.FreeScalar(sqBegin), ops.FreeScalar(1), mulBegin))
	tr := New(tp)
	tr.Play()

	h := 1e-6
	dxFD := (build(x0+h, y0) - build(x0-h, y0)) / (2 * h)
	dyFD := (build(x0, y0+h) - build(x0, y0-h)) / (2 * h)

	if math.Abs(tr.Adjoints[0]-dxFD)/math.Abs(dxFD) > 1e-4 {
		t.Errorf("d/dx = %v, want ~%v", tr.Adjoints[0], dxFD)
	}
	if math.Abs(tr.Adjoints[1]-dyFD)/math.Abs(dyFD) > 1e-4 {
		t.Errorf("d/dy = %v, want ~%v", tr.Adjoints[1], dyFD)
	}
}
