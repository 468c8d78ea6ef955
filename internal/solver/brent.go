package solver

import "math"

// Constants for Brent's method, carried over bit-for-bit from the
// public-domain fmin routine (translated from the original FORTRAN by
// Steve Verrill, USDA Forest Products Laboratory, 1998; public domain).
const (
	goldenSqrtInv = 0.3819660112501050974743
	dblEpsSqrt    = 1.490116119384765625e-08
)

// brentResult is the outcome of a brentOptimize call.
type brentResult struct {
	X         float64
	Objective float64
	NEval     int
}

// BrentMinimize exposes this package's Brent routine — the same one
// Maximize uses internally for its step-size line search — to
// internal/likelihood's profile-interval root-finding, with the original
// routine's default tolerance sqrt(machine epsilon). The original C++
// source reuses one brent_optimize template across both the solver and
// the likelihood methods; this is the Go equivalent of that reuse.
func BrentMinimize(f func(float64) float64, left, right float64) (x, objective float64, nEval int) {
	r := brentOptimize(f, left, right, false, dblEpsSqrt)
	return r.X, r.Objective, r.NEval
}

// brentOptimize finds a local extremum of f on [left, right] to within
// tolerance tol, minimizing by default or maximizing when maximize is
// true (by negating the functor internally). It combines golden-section
// search with parabolic interpolation, taking whichever step keeps
// progress fast without leaving the bracket.
func brentOptimize(f func(float64) float64, left, right float64, maximize bool, tol float64) brentResult {
	sign := 1.0
	if maximize {
		sign = -1.0
	}
	wrapped := func(x float64) float64 { return sign * f(x) }

	const epsGCC = 2.220446049250313e-16 // machine epsilon for float64
	if math.Abs(right-left) <= epsGCC {
		fx := wrapped(left)
		return brentResult{X: left, Objective: sign * fx, NEval: 1}
	}

	var a, b, d, e, p, q, r, u, v, w, x float64
	var t2, fu, fv, fw, fx, xm, eps, tol1, tol3 float64

	eps = dblEpsSqrt

	a = left
	b = right
	v = a + goldenSqrtInv*(b-a)
	w = v
	x = v

	d = 0
	e = 0

	nEval := 0
	evalAt := func(z float64) float64 {
		nEval++
		return wrapped(z)
	}

	fx = evalAt(x)
	fv = fx
	fw = fx
	tol3 = tol / 3

	for {
		xm = (a + b) * 0.5
		tol1 = eps*math.Abs(x) + tol3
		t2 = tol1 * 2

		if math.Abs(x-xm) <= t2-(b-a)*0.5 {
			break
		}

		p, q, r = 0, 0, 0
		if math.Abs(e) > tol1 {
			r = (x - w) * (fx - fv)
			q = (x - v) * (fx - fw)
			p = (x-v)*q - (x-w)*r
			q = (q - r) * 2
			if q > 0 {
				p = -p
			} else {
				q = -q
			}
			r = e
			e = d
		}

		if math.Abs(p) >= math.Abs(q*0.5*r) || p <= q*(a-x) || p >= q*(b-x) {
			if x < xm {
				e = b - x
			} else {
				e = a - x
			}
			d = goldenSqrtInv * e
		} else {
			d = p / q
			u = x + d
			if u-a < t2 || b-u < t2 {
				d = tol1
				if x >= xm {
					d = -d
				}
			}
		}

		if math.Abs(d) >= tol1 {
			u = x + d
		} else if d > 0 {
			u = x + tol1
		} else {
			u = x - tol1
		}

		fu = evalAt(u)

		if fu <= fx {
			if u < x {
				b = x
			} else {
				a = x
			}
			v, w, x = w, x, u
			fv, fw, fx = fw, fx, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}
	}

	// One final evaluation exactly at the converged x: callers with
	// side-effecting functors (our line search replays the tape in
	// place) rely on this to leave shared state synced to x, since the
	// loop's last evaluated point u is not always the one it kept.
	fx = evalAt(x)

	return brentResult{X: x, Objective: sign * fx, NEval: nEval}
}
