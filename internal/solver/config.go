package solver

// Config governs the regularized Newton outer loop and its Brent line
// search. Every field is optional; WithDefaults fills the zero value of
// each field with the documented default, mirroring how optim.AdamConfig
// normalizes a zero LR/Betas/Eps before use.
type Config struct {
	// MaxIterations caps the outer Newton loop (default 1000).
	MaxIterations int
	// ObjectiveTolerance is the convergence threshold on the change in
	// objective between consecutive iterations (default 1e-3).
	ObjectiveTolerance float64
	// DiagnosticMode records a per-iteration IterationState history in
	// Solver.States when true (default false; this is measurably slower).
	DiagnosticMode bool
	// MaxRegularizationAttempts bounds the Tikhonov regularization ladder
	// before the iteration gives up (default 10).
	MaxRegularizationAttempts int
	// RegularizationDampingFactor shapes lambda = (n/max)^factor; larger
	// values keep the initial regularization attempts closer to the raw
	// Hessian (default 2.0).
	RegularizationDampingFactor float64
	// BrentToleranceFactor multiplies ObjectiveTolerance to produce the
	// inner line search's convergence tolerance (default 1.0).
	BrentToleranceFactor float64
	// BrentBoundaryLeft is the initial left bound of the line search step
	// (default -1.0; negative allows backtracking past the current point).
	BrentBoundaryLeft float64
	// BrentBoundaryRight is the initial right bound of the line search
	// step (default 2.0).
	BrentBoundaryRight float64
	// BrentFeasibleSearchRestrictionFactor shrinks an infeasible (non-
	// finite objective) boundary toward the origin (default 0.75).
	BrentFeasibleSearchRestrictionFactor float64
}

// WithDefaults returns a copy of cfg with every zero-valued field replaced
// by its documented default.
func (cfg Config) WithDefaults() Config {
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = 1000
	}
	if cfg.ObjectiveTolerance == 0 {
		cfg.ObjectiveTolerance = 1e-3
	}
	if cfg.MaxRegularizationAttempts == 0 {
		cfg.MaxRegularizationAttempts = 10
	}
	if cfg.RegularizationDampingFactor == 0 {
		cfg.RegularizationDampingFactor = 2.0
	}
	if cfg.BrentToleranceFactor == 0 {
		cfg.BrentToleranceFactor = 1.0
	}
	if cfg.BrentBoundaryLeft == 0 {
		cfg.BrentBoundaryLeft = -1.0
	}
	if cfg.BrentBoundaryRight == 0 {
		cfg.BrentBoundaryRight = 2.0
	}
	if cfg.BrentFeasibleSearchRestrictionFactor == 0 {
		cfg.BrentFeasibleSearchRestrictionFactor = 0.75
	}
	return cfg
}
