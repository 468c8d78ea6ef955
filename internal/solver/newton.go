// Package solver implements the regularized Newton maximizer and its
// Brent-based backtracking line search, transcribed line for line from
// original_source/src/solver_newton.cpp and brent_optimize.h, substituting
// gonum's mat.LU for Eigen's SparseLU.
package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gradhess/mle/internal/trace"
)

// IterationState snapshots one outer Newton iteration when
// Config.DiagnosticMode is enabled, mirroring SolverState in
// original_source/src/solver.h.
type IterationState struct {
	Iteration        int
	ObjectiveInitial float64
	ObjectiveFinal   float64
	Lambda           float64
	Parameters       []float64
	Gradient         []float64
	Hessian          []float64 // dense n*n row-major snapshot
	Direction        []float64
	BrentLeft        float64
	BrentRight       float64
	OptStep          float64
	NEval            int
	NRegularizations int
}

// Solver owns exclusive mutable access to one trace for the duration of
// Maximize, plus the scratch buffers the Newton iteration and its line
// search reuse across steps.
type Solver struct {
	Trace                 *trace.Trace
	Config                Config
	FixedParameterIndices []int
	States                []IterationState
	NEvalForward          int
	NEvalReverse          int

	paramBuffer     []float64
	directionBuffer []float64
}

// New builds a Solver bound to tr, applying Config's documented defaults
// to any zero-valued field.
func New(tr *trace.Trace, cfg Config) *Solver {
	n := tr.Tape.InputSize
	return &Solver{
		Trace:           tr,
		Config:          cfg.WithDefaults(),
		paramBuffer:     make([]float64, n),
		directionBuffer: make([]float64, n),
	}
}

// SetFixedParameterIndices fixes the listed free-input indices at their
// current trace value for the duration of the next Maximize call — the
// mechanism profile-likelihood intervals use to hold one parameter fixed
// while re-optimizing the rest.
func (s *Solver) SetFixedParameterIndices(indices []int) *Solver {
	s.FixedParameterIndices = indices
	return s
}

func fixedSet(indices []int) map[int]bool {
	m := make(map[int]bool, len(indices))
	for _, idx := range indices {
		m[idx] = true
	}
	return m
}

// buildWorkingHessian densifies the live sparse Hessian's leading n x n
// block and neutralizes every row/column touching a fixed index: off
// diagonals zeroed, diagonal set to -1 so the matrix stays definite after
// Maximize's direction solve negates it.
func buildWorkingHessian(tr *trace.Trace, n int, fixed map[int]bool) *mat.Dense {
	sym := tr.Hessian.Dense(n)
	h := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h.Set(i, j, sym.At(i, j))
		}
	}
	for idx := range fixed {
		for j := 0; j < n; j++ {
			if j != idx {
				h.Set(idx, j, 0)
				h.Set(j, idx, 0)
			}
		}
		h.Set(idx, idx, -1)
	}
	return h
}

func isFiniteObjective(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// Maximize runs the regularized Newton outer loop to convergence,
// mutating Trace in place: on return (error == nil) Trace.Values,
// Trace.Adjoints, and Trace.Hessian hold the stationary point's state.
func (s *Solver) Maximize() error {
	tr := s.Trace
	cfg := s.Config
	n := tr.Tape.InputSize
	fixed := fixedSet(s.FixedParameterIndices)

	objectiveOld := math.Inf(-1)
	tr.Play()
	s.NEvalForward++
	s.NEvalReverse++
	objectiveNew := tr.Objective()

	var infErr error
	var localEval int
	phi := func(step float64) float64 {
		for i := 0; i < n; i++ {
			tr.Values[i] = s.paramBuffer[i] + step*s.directionBuffer[i]
		}
		tr.PlayForward()
		s.NEvalForward++
		localEval++
		objective := tr.Objective()
		switch {
		case math.IsInf(objective, 1):
			if infErr == nil {
				infErr = ErrInfiniteObjective
			}
			return math.Inf(1)
		case math.IsNaN(objective) || math.IsInf(objective, -1):
			return math.Inf(-1)
		default:
			return objective
		}
	}

	for iter := 0; objectiveNew-objectiveOld > cfg.ObjectiveTolerance && iter < cfg.MaxIterations; iter++ {
		copy(s.paramBuffer, tr.Values[:n])

		for idx := range fixed {
			tr.Adjoints[idx] = 0
		}

		h := buildWorkingHessian(tr, n, fixed)
		negGrad := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			negGrad.SetVec(i, -tr.Adjoints[i])
		}

		direction := mat.NewVecDense(n, nil)
		var lu mat.LU
		lu.Factorize(h)
		factorizeOK := lu.SolveVecTo(direction, false, negGrad) == nil

		var lambda float64
		var nRegul int
		if !factorizeOK {
			maxAttempts := cfg.MaxRegularizationAttempts
			for nRegul = 1; nRegul <= maxAttempts; nRegul++ {
				lambda = math.Pow(float64(nRegul)/float64(maxAttempts), cfg.RegularizationDampingFactor)
				combined := mat.NewDense(n, n, nil)
				combined.Scale(1-lambda, h)
				for i := 0; i < n; i++ {
					combined.Set(i, i, combined.At(i, i)+lambda)
				}
				var regLU mat.LU
				regLU.Factorize(combined)
				if regLU.SolveVecTo(direction, false, negGrad) == nil {
					factorizeOK = true
					break
				}
			}
			if !factorizeOK {
				return ErrFactorizationFailed
			}
		}
		copy(s.directionBuffer, direction.RawVector().Data)

		brentLeft := cfg.BrentBoundaryLeft
		brentRight := cfg.BrentBoundaryRight
		localEval = 0

		for !isFiniteObjective(phi(brentLeft)) {
			if infErr != nil {
				return infErr
			}
			brentLeft *= cfg.BrentFeasibleSearchRestrictionFactor
		}
		for !isFiniteObjective(phi(brentRight)) {
			if infErr != nil {
				return infErr
			}
			brentRight *= cfg.BrentFeasibleSearchRestrictionFactor
		}

		brentWidth := brentRight - brentLeft
		brentTol := math.Min(cfg.ObjectiveTolerance*cfg.BrentToleranceFactor, brentWidth*brentWidth)

		result := brentOptimize(phi, brentLeft, brentRight, true, brentTol)
		if infErr != nil {
			return infErr
		}
		if result.Objective < objectiveNew-brentTol {
			return ErrBacktrackingFailure
		}

		objectiveOld = objectiveNew
		objectiveNew = result.Objective
		tr.PlayReverse()
		s.NEvalReverse++

		if cfg.DiagnosticMode {
			hessDense := tr.Hessian.Dense(n)
			hessFlat := make([]float64, n*n)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					hessFlat[i*n+j] = hessDense.At(i, j)
				}
			}
			s.States = append(s.States, IterationState{
				Iteration:        iter,
				ObjectiveInitial: objectiveOld,
				ObjectiveFinal:   objectiveNew,
				Lambda:           lambda,
				Parameters:       append([]float64(nil), s.paramBuffer...),
				Gradient:         append([]float64(nil), tr.Adjoints[:n]...),
				Hessian:          hessFlat,
				Direction:        append([]float64(nil), s.directionBuffer...),
				BrentLeft:        brentLeft,
				BrentRight:       brentRight,
				OptStep:          result.X,
				NEval:            localEval,
				NRegularizations: nRegul,
			})
		}
	}

	return nil
}
