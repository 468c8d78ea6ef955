package solver_test

import (
	"math"
	"testing"

	"github.com/gradhess/mle/expr"
	"github.com/gradhess/mle/internal/solver"
	"github.com/gradhess/mle/internal/trace"
)

// buildConcaveParaboloid records f(x) = -(x-3)^2, whose unique maximizer
// is x=3.
func buildConcaveParaboloid(t *testing.T, start float64) *trace.Trace {
	t.Helper()
	tp := expr.Objective()
	x, err := expr.NewVar(tp, []float64{start})
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	diff := x.Sub(expr.Const(3))
	_ = diff.Pow(expr.Const(2)).Neg()
	return trace.New(tp.Raw())
}

func TestMaximizeConvergesToVertex(t *testing.T) {
	tr := buildConcaveParaboloid(t, -4)
	s := solver.New(tr, solver.Config{})
	if err := s.Maximize(); err != nil {
		t.Fatalf("Maximize: %v", err)
	}
	if got := tr.Values[0]; math.Abs(got-3) > 1e-2 {
		t.Errorf("x* = %v, want close to 3", got)
	}
	if tr.Objective() > 1e-6 {
		t.Errorf("objective at optimum = %v, want ~0 (and not positive)", tr.Objective())
	}
}

func TestMaximizeRespectsFixedParameter(t *testing.T) {
	tp := expr.Objective()
	x, _ := expr.NewVar(tp, []float64{-4})
	y, _ := expr.NewVar(tp, []float64{-4})
	fx := x.Sub(expr.Const(3)).Pow(expr.Const(2)).Neg()
	fy := y.Sub(expr.Const(-1)).Pow(expr.Const(2)).Neg()
	_ = fx.Add(fy)

	tr := trace.New(tp.Raw())
	s := solver.New(tr, solver.Config{})
	s.SetFixedParameterIndices([]int{1})
	if err := s.Maximize(); err != nil {
		t.Fatalf("Maximize: %v", err)
	}
	if got := tr.Values[0]; math.Abs(got-3) > 1e-2 {
		t.Errorf("x* = %v, want close to 3", got)
	}
	if got := tr.Values[1]; got != -4 {
		t.Errorf("fixed parameter moved: got %v, want -4 unchanged", got)
	}
}

func TestMaximizeDiagnosticHistory(t *testing.T) {
	tr := buildConcaveParaboloid(t, 10)
	s := solver.New(tr, solver.Config{DiagnosticMode: true})
	if err := s.Maximize(); err != nil {
		t.Fatalf("Maximize: %v", err)
	}
	if len(s.States) == 0 {
		t.Error("expected at least one recorded IterationState with DiagnosticMode enabled")
	}
	for _, st := range s.States {
		if len(st.Parameters) != 1 || len(st.Gradient) != 1 || len(st.Direction) != 1 {
			t.Errorf("unexpected state shape: %+v", st)
		}
	}
}
