package tape

import (
	"errors"
	"testing"

	"github.com/gradhess/mle/internal/ops"
)

func TestDeclareInputGrowsSizes(t *testing.T) {
	tp := New()
	r, err := tp.DeclareInput([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("DeclareInput failed: %v", err)
	}
	if r.Begin != 0 || r.Len != 3 {
		t.Errorf("range = %+v, want {0,3}", r)
	}
	if tp.InputSize != 3 || tp.TraceSize != 3 {
		t.Errorf("InputSize=%d TraceSize=%d, want 3,3", tp.InputSize, tp.TraceSize)
	}

	r2, err := tp.DeclareInput([]float64{9})
	if err != nil {
		t.Fatalf("second DeclareInput failed: %v", err)
	}
	if r2.Begin != 3 {
		t.Errorf("second range begin = %d, want 3", r2.Begin)
	}
	if tp.InputSize != 4 {
		t.Errorf("InputSize after second declare = %d, want 4", tp.InputSize)
	}
}

func TestDeclareInputFailsAfterRecording(t *testing.T) {
	tp := New()
	if _, err := tp.DeclareInput([]float64{1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	begin := tp.Alloc(1)
	tp.Append(ops.NewUnaryOp(ops.Square, ops.FreeScalar(0), begin))

	if _, err := tp.DeclareInput([]float64{2}); !errors.Is(err, ErrDeclarationAfterRecording) {
		t.Errorf("expected ErrDeclarationAfterRecording, got %v", err)
	}
}

func TestAllocAdvancesTraceSize(t *testing.T) {
	tp := New()
	tp.DeclareInput([]float64{1, 2})
	begin := tp.Alloc(3)
	if begin != 2 {
		t.Errorf("Alloc begin = %d, want 2", begin)
	}
	if tp.TraceSize != 5 {
		t.Errorf("TraceSize = %d, want 5", tp.TraceSize)
	}
}

func TestIsFree(t *testing.T) {
	tp := New()
	tp.DeclareInput([]float64{1, 2})
	begin := tp.Alloc(1)
	tp.Append(ops.NewUnaryOp(ops.Square, ops.FreeScalar(0), begin))

	if !tp.IsFree(0) || !tp.IsFree(1) {
		t.Error("expected declared input slots to be free")
	}
	if tp.IsFree(2) {
		t.Error("expected operator output slot to not be a free input")
	}
}

func TestNameTensor(t *testing.T) {
	tp := New()
	r, _ := tp.DeclareInput([]float64{1, 2, 3})
	tp.NameTensor("beta", r)

	got, ok := tp.TensorByName("beta")
	if !ok || got != r {
		t.Errorf("TensorByName(beta) = %+v,%v want %+v,true", got, ok, r)
	}
	if _, ok := tp.TensorByName("missing"); ok {
		t.Error("expected missing tensor name to report not found")
	}
}
