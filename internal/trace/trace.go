// Package trace implements the mutable numerical state bound to an
// immutable tape: values, adjoints, and the sparse symmetric Hessian
// produced by one reverse sweep. PlayReverse implements edge-pushing
// exactly as in original_source/src/tape_autodiff.cpp: for each operator,
// in reverse record order, an adjoint update, two Hessian-pushing steps,
// one Hessian-creating step, and a housekeeping erase, pruned by each
// operator's sparsity tags.
package trace

import (
	"github.com/gradhess/mle/internal/ops"
	"github.com/gradhess/mle/internal/sparsemat"
	"github.com/gradhess/mle/internal/tape"
)

// Trace holds the flat value and adjoint arrays and the live sparse
// Hessian for one playback of a tape. A trace exclusively owns its
// buffers but holds a read-only back-reference to its tape, which may be
// shared by many independent traces.
type Trace struct {
	Tape     *tape.Tape
	Values   []float64
	Adjoints []float64
	Hessian  *sparsemat.SymMat
}

// New allocates a trace bound to t, with values initialized from the
// tape's declared input values.
func New(t *tape.Tape) *Trace {
	tr := &Trace{
		Tape:     t,
		Values:   make([]float64, t.TraceSize),
		Adjoints: make([]float64, t.TraceSize),
		Hessian:  sparsemat.New(t.TraceSize),
	}
	copy(tr.Values[:t.InputSize], t.InitialValues)
	return tr
}

// Objective returns the current value of the tape's final (scalar) output.
func (tr *Trace) Objective() float64 {
	return tr.Values[len(tr.Values)-1]
}

// PlayForward visits every operator in record order and evaluates it in
// place into Values.
func (tr *Trace) PlayForward() {
	for _, op := range tr.Tape.Ops {
		op.Evaluate(tr.Values)
	}
}

// PlayReverse resets Adjoints and the Hessian and runs edge-pushing over
// every operator in reverse record order. Values must already hold a
// valid forward evaluation (call PlayForward first, or use Play).
func (tr *Trace) PlayReverse() {
	for i := range tr.Adjoints {
		tr.Adjoints[i] = 0
	}
	tr.Hessian = sparsemat.New(len(tr.Values))
	if n := len(tr.Values); n > 0 {
		tr.Adjoints[n-1] = 1
	}

	for k := len(tr.Tape.Ops) - 1; k >= 0; k-- {
		tr.pushOperator(tr.Tape.Ops[k])
	}
}

// Play is PlayForward followed by PlayReverse, the canonical way to
// refresh values, gradient, and Hessian after any parameter change.
func (tr *Trace) Play() {
	tr.PlayForward()
	tr.PlayReverse()
}

func (tr *Trace) pushOperator(op ops.Operation) {
	out := op.Out()
	tags := op.Tags()
	partialsZero := tags.Has(ops.PartialAlwaysZero)
	hessianZero := tags.Has(ops.HessianAlwaysZero)

	for local := out.Len - 1; local >= 0; local-- {
		i := out.Begin + local
		w := tr.Adjoints[i]
		m := op.NumInputsAt(local)

		// Step 1: adjoint update.
		if !partialsZero && w != 0 {
			for k := 0; k < m; k++ {
				idxK, freeK := op.InputIndexAt(local, k)
				if !freeK {
					continue
				}
				tr.Adjoints[idxK] += op.Partial(local, k, tr.Values) * w
			}
		}

		// Step 2: pushing part 1 — redistribute i's existing
		// off-diagonal Hessian row through i's own inputs.
		if row := tr.Hessian.RowPtr(i); len(row) > 0 && !partialsZero {
			type entry struct {
				col int
				val float64
			}
			entries := make([]entry, 0, len(row))
			for col, v := range row {
				if col != i {
					entries = append(entries, entry{col, v})
				}
			}
			for k := 0; k < m; k++ {
				idxK, freeK := op.InputIndexAt(local, k)
				if !freeK {
					continue
				}
				pk := op.Partial(local, k, tr.Values)
				if pk == 0 {
					continue
				}
				for _, e := range entries {
					tr.Hessian.Add(idxK, e.col, pk*e.val)
				}
			}
		}

		// Steps 3 & 4: pushing part 2 (via i's own diagonal entry)
		// and the creating part (via i's adjoint), combined since
		// both iterate the same free input pairs. Pushing part 2 uses
		// first partials only, so only PartialAlwaysZero skips it; the
		// Hessian sparsity tags prune the creating part.
		hii := tr.Hessian.Read(i, i)
		push := hii != 0 && !partialsZero
		create := w != 0 && !hessianZero
		if push || create {
			diagZero := tags.Has(ops.HessianDiagAlwaysZero)
			offDiagZero := tags.Has(ops.HessianOffDiagAlwaysZero)
			for j := 0; j < m; j++ {
				idxJ, freeJ := op.InputIndexAt(local, j)
				if !freeJ {
					continue
				}
				for k := j; k < m; k++ {
					idxK, freeK := op.InputIndexAt(local, k)
					if !freeK {
						continue
					}
					var contribution float64
					if push {
						pj := op.Partial(local, j, tr.Values)
						pk := op.Partial(local, k, tr.Values)
						contribution += pj * pk * hii
					}
					if create && !(j == k && diagZero) && !(j != k && offDiagZero) {
						contribution += op.Partial2(local, j, k, tr.Values) * w
					}
					if contribution != 0 {
						tr.Hessian.Add(idxJ, idxK, contribution)
					}
				}
			}
		}

		// Step 5: housekeeping — erase i's row/column/diagonal.
		tr.Hessian.Erase(i)
	}
}
