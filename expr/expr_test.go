package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/gradhess/mle/internal/trace"
)

func playObjective(t *testing.T, tp *Tape) *trace.Trace {
	t.Helper()
	tr := trace.New(tp.Raw())
	tr.Play()
	return tr
}

func TestDeclarationAfterRecordingFails(t *testing.T) {
	tp := Objective()
	x, err := NewVar(tp, []float64{1})
	if err != nil {
		t.Fatalf("NewVar failed: %v", err)
	}
	_ = x.Mul(x)

	if _, err := NewVar(tp, []float64{2}); !errors.Is(err, ErrDeclarationAfterRecording) {
		t.Errorf("expected ErrDeclarationAfterRecording, got %v", err)
	}
}

func TestElementAccessOutOfRange(t *testing.T) {
	tp := Objective()
	x, _ := NewVar(tp, []float64{1, 2, 3})
	if _, err := x.At(5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := x.At(2); err != nil {
		t.Errorf("unexpected error for in-range access: %v", err)
	}
}

func TestDotShapeMismatch(t *testing.T) {
	tp := Objective()
	a, _ := NewVar(tp, []float64{1, 2})
	b, _ := NewVar(tp, []float64{1, 2, 3})
	if _, err := Dot(a, b); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

// TestPeepholeEquivalence checks property 4: x - x + 3*x - x - x reduces
// to x, with gradient 1 and no recorded Hessian contribution.
func TestPeepholeEquivalence(t *testing.T) {
	tp := Objective()
	x, _ := NewVar(tp, []float64{4.2})

	y := x.Sub(x).Add(Const(3).Mul(x)).Sub(x).Sub(x)

	tr := playObjective(t, tp)
	want := tr.Values[0]
	got := tr.Values[y.operand.Begin]
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("y = %v, want x = %v", got, want)
	}
	if math.Abs(tr.Adjoints[0]-1) > 1e-12 {
		t.Errorf("dy/dx = %v, want 1", tr.Adjoints[0])
	}
	if tr.Hessian.NNZ() != 0 {
		t.Errorf("expected empty Hessian for an affine peephole chain, got NNZ=%d", tr.Hessian.NNZ())
	}
}

func TestPeepholeSelfSubtractIsTrivialZero(t *testing.T) {
	tp := Objective()
	x, _ := NewVar(tp, []float64{7})
	y := x.Sub(x)

	tr := playObjective(t, tp)
	if got := tr.Values[y.operand.Begin]; got != 0 {
		t.Errorf("x - x = %v, want 0", got)
	}
	if tr.Adjoints[0] != 0 {
		t.Errorf("d(x-x)/dx = %v, want 0", tr.Adjoints[0])
	}
}

func TestPeepholeSelfDivideIsTrivialOne(t *testing.T) {
	tp := Objective()
	x, _ := NewVar(tp, []float64{7})
	y := x.Div(x)

	tr := playObjective(t, tp)
	if got := tr.Values[y.operand.Begin]; got != 1 {
		t.Errorf("x/x = %v, want 1", got)
	}
}

func TestPeepholePowZeroAndOne(t *testing.T) {
	tp := Objective()
	x, _ := NewVar(tp, []float64{3})
	y0 := x.Pow(Const(0))
	tr := playObjective(t, tp)
	if got := tr.Values[y0.operand.Begin]; got != 1 {
		t.Errorf("x^0 = %v, want 1", got)
	}
}

func TestPeepholePowOne(t *testing.T) {
	tp := Objective()
	x, _ := NewVar(tp, []float64{3})
	y1 := x.Pow(Const(1))
	tr := playObjective(t, tp)
	if got := tr.Values[y1.operand.Begin]; got != 3 {
		t.Errorf("x^1 = %v, want 3", got)
	}
}

func TestPeepholeInvert(t *testing.T) {
	tp := Objective()
	x, _ := NewVar(tp, []float64{4})
	y := Const(1).Div(x)
	tr := playObjective(t, tp)
	if got := tr.Values[y.operand.Begin]; math.Abs(got-0.25) > 1e-12 {
		t.Errorf("1/x = %v, want 0.25", got)
	}
}

func TestConstFoldingNeverTouchesTape(t *testing.T) {
	a := Const(2)
	b := Const(3)
	c := a.Add(b)
	if !c.IsConst() {
		t.Error("expected constant-folded result to remain a constant")
	}
	if c.operand.Const[0] != 5 {
		t.Errorf("2+3 = %v, want 5", c.operand.Const[0])
	}
}

func TestMatMulShapeMismatch(t *testing.T) {
	tp := Objective()
	a, _ := NewMatrixVar(tp, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	b, _ := NewMatrixVar(tp, 2, 2, []float64{1, 2, 3, 4})
	if _, err := MatMul(a, b); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestSumLogDBernoulliRequiresFreeP(t *testing.T) {
	p := ConstVector([]float64{0.5, 0.5})
	if _, err := SumLogDBernoulli(p, []float64{1, 0}); err == nil {
		t.Error("expected error when p is not trace-backed")
	}
}
