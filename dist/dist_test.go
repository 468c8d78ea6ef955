package dist_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gradhess/mle/dist"
	"github.com/gradhess/mle/expr"
)

func constVal(t *testing.T, e expr.Expr) float64 {
	t.Helper()
	require.True(t, e.IsConst(), "expected a constant-folded expression")
	return e.Read(nil)[0]
}

func TestLogNormStandardAtMean(t *testing.T) {
	got := constVal(t, dist.LogNorm(expr.Const(0), expr.Const(0), expr.Const(1)))
	want := -0.5 * math.Log(2*math.Pi)
	require.InDelta(t, want, got, 1e-9)
}

func TestLogBetaSymmetric(t *testing.T) {
	got := constVal(t, dist.LogBeta(expr.Const(0.5), expr.Const(2), expr.Const(2)))
	require.InDelta(t, 0.40546510810816483, got, 1e-9)
}

func TestLogLogisAtLocation(t *testing.T) {
	got := constVal(t, dist.LogLogis(expr.Const(0), expr.Const(0)))
	require.InDelta(t, -2*math.Log(2), got, 1e-9)
}

func TestLogGammaShapeTwo(t *testing.T) {
	// shape=2, scale=1 has density d*exp(-d); at d=1 its log is
	// log(1*exp(-1)) = -1.
	got := constVal(t, dist.LogGamma(expr.Const(1), expr.Const(2), expr.Const(1)))
	require.InDelta(t, -1.0, got, 1e-9)
}

func TestLogGammaNonPositiveShapeIsLogZero(t *testing.T) {
	got := constVal(t, dist.LogGamma(expr.Const(1), expr.Const(-1), expr.Const(1)))
	require.True(t, math.IsInf(got, -1), "LogGamma with non-positive shape = %v, want -Inf", got)
}

func TestLogUniBetaMuZeroAtMidpoint(t *testing.T) {
	got := constVal(t, dist.LogUniBeta(expr.Const(0.5), expr.Const(0)))
	require.InDelta(t, 0, got, 1e-9)
}

func TestLogDirichletSymmetricUniform(t *testing.T) {
	x := expr.ConstVector([]float64{0.5, 0.5})
	alpha := expr.ConstVector([]float64{1, 1})
	e, err := dist.LogDirichlet(x, alpha)
	require.NoError(t, err)
	got := constVal(t, e)
	// Dirichlet(1,1) is uniform on the simplex; its density is 1 everywhere,
	// so the log-density is 0 regardless of x.
	require.InDelta(t, 0, got, 1e-9)
}

func TestLogDirichletShapeMismatch(t *testing.T) {
	x := expr.ConstVector([]float64{0.5, 0.5})
	alpha := expr.ConstVector([]float64{1, 1, 1})
	_, err := dist.LogDirichlet(x, alpha)
	require.ErrorIs(t, err, expr.ErrShapeMismatch)
}
