package likelihood

import "errors"

// ErrBadHessian is returned when the Hessian at the claimed optimum is not
// negative definite (its negation fails Cholesky factorization), which
// happens when Maximize stopped short of a true interior maximum or the
// model is not locally identified along some direction.
var ErrBadHessian = errors.New("likelihood: hessian is not negative definite at this point")
