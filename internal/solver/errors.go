package solver

import "errors"

// ErrFactorizationFailed is returned when every Tikhonov regularization
// attempt still leaves the working Hessian non-factorizable.
var ErrFactorizationFailed = errors.New("solver: Hessian factorization failed after all regularization attempts")

// ErrBacktrackingFailure is returned when the line search settles on an
// objective strictly worse than the iteration's starting point, which
// signals a pathological objective or a broken local Hessian rather than
// an ordinary stopping condition.
var ErrBacktrackingFailure = errors.New("solver: backtracking line search failed to improve the objective")

// ErrInfiniteObjective is returned when the line search's objective
// functor encounters a value greater than the largest finite float64 —
// in a maximization context, an unbounded-above model.
var ErrInfiniteObjective = errors.New("solver: objective is unbounded above")
