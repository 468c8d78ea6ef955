// Package dist provides log-density builders composed from expr's
// primitive operators, transcribed from
// original_source/src/spy_distributions.h. These are ordinary Go
// functions, not tape opcodes: the original composes its spy_* overloads
// from its scalar-autodiff primitives the same way, rather than recording
// a dedicated node per distribution, and this package follows that
// composition pattern exactly.
package dist

import "github.com/gradhess/mle/expr"

const halfLog2Pi = 0.9189385332046727417803297 // 0.5*log(2*pi)

// LogNorm returns the Gaussian log-density of x at mean mu and standard
// deviation sd: -0.5*log(2*pi) - 0.5*z^2 - log(sd), z = (x-mu)/sd.
func LogNorm(x, mu, sd expr.Expr) expr.Expr {
	z := x.Sub(mu).Div(sd)
	halfZSq := z.Pow(expr.Const(2)).Mul(expr.Const(0.5))
	return expr.Const(-halfLog2Pi).Sub(halfZSq).Sub(expr.Log(sd))
}

// LogBeta returns the Beta(a,b) log-density of x in (0,1):
// (a-1)*log(x) + (b-1)*log(1-x) + lgamma(a+b) - lgamma(a) - lgamma(b).
func LogBeta(x, a, b expr.Expr) expr.Expr {
	term1 := a.Sub(expr.Const(1)).Mul(expr.Log(x))
	term2 := b.Sub(expr.Const(1)).Mul(expr.Log1m(x))
	normalizer := expr.LGamma(a.Add(b)).Sub(expr.LGamma(a)).Sub(expr.LGamma(b))
	return term1.Add(term2).Add(normalizer)
}

// LogUniBeta returns the unimodal reparameterization of LogBeta used for
// mode-centered priors: logdbeta(x, 1+mu, 2-mu).
func LogUniBeta(x, mu expr.Expr) expr.Expr {
	a := expr.Const(1).Add(mu)
	b := expr.Const(2).Sub(mu)
	return LogBeta(x, a, b)
}

// LogLogis returns the standard logistic log-density of x at location mu:
// (mu-x) - 2*log(1+exp(mu-x)).
func LogLogis(x, mu expr.Expr) expr.Expr {
	diff := mu.Sub(x)
	return diff.Sub(expr.Log1p(expr.Exp(diff)).Mul(expr.Const(2)))
}

// LogGamma returns the Gamma log-density of d at shape alpha and scale
// scale: log([alpha>0]) + alpha*log(d/scale) - lgamma(alpha) - log(d) -
// d/scale. The Iverson guard mirrors the original collaborator's defense
// against a non-positive shape parameter drifting in from an unconstrained
// optimizer step — log(0) there, rather than a silently wrong finite value.
func LogGamma(d, alpha, scale expr.Expr) expr.Expr {
	guard := expr.LogGt(alpha)
	shapeTerm := alpha.Mul(expr.Log(d.Div(scale)))
	return guard.Add(shapeTerm).Sub(expr.LGamma(alpha)).Sub(expr.Log(d)).Sub(d.Div(scale))
}

// LogDirichlet returns the Dirichlet log-density of the free probability
// vector x at the free or fixed concentration vector alpha: both must have
// equal length n. sum((alpha_i-1)*log(x_i)) + lgamma(sum(alpha)) -
// sum(lgamma(alpha_i)).
func LogDirichlet(x, alpha expr.Expr) (expr.Expr, error) {
	n := x.Len()
	if alpha.Len() != n {
		return expr.Expr{}, expr.ErrShapeMismatch
	}
	var sum expr.Expr
	var lgammaSum expr.Expr
	var sumLGamma expr.Expr
	for i := 0; i < n; i++ {
		xi, err := x.At(i)
		if err != nil {
			return expr.Expr{}, err
		}
		ai, err := alpha.At(i)
		if err != nil {
			return expr.Expr{}, err
		}
		term := ai.Sub(expr.Const(1)).Mul(expr.Log(xi))
		lg := expr.LGamma(ai)
		if i == 0 {
			sum = term
			sumLGamma = lg
			lgammaSum = ai
		} else {
			sum = sum.Add(term)
			sumLGamma = sumLGamma.Add(lg)
			lgammaSum = lgammaSum.Add(ai)
		}
	}
	return sum.Add(expr.LGamma(lgammaSum)).Sub(sumLGamma), nil
}
