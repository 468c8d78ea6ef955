package specfun

import (
	"math"
	"testing"
)

func TestTrigammaKnownValue(t *testing.T) {
	// psi'(1) = pi^2/6
	got := Trigamma(1)
	want := math.Pi * math.Pi / 6
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Trigamma(1) = %v, want %v", got, want)
	}
}

func TestTrigammaRecurrence(t *testing.T) {
	x := 2.3
	lhs := Trigamma(x)
	rhs := Trigamma(x+1) + 1/(x*x)
	if math.Abs(lhs-rhs) > 1e-10 {
		t.Errorf("trigamma recurrence violated: psi'(%v)=%v, psi'(%v+1)+1/x^2=%v", x, lhs, x, rhs)
	}
}

func TestQChisq95(t *testing.T) {
	// Known chi-square(1) 0.95 quantile is approximately 3.841459.
	got := QChisq(0.95, 1, true)
	want := 3.841459
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("QChisq(0.95, 1) = %v, want ~%v", got, want)
	}
}

func TestQChisqMonotone(t *testing.T) {
	lo := QChisq(0.1, 3, true)
	hi := QChisq(0.9, 3, true)
	if lo >= hi {
		t.Errorf("expected QChisq to be increasing in p: lo=%v hi=%v", lo, hi)
	}
}

func TestDigammaKnownValue(t *testing.T) {
	// psi(1) = -gamma (Euler-Mascheroni constant)
	got := Digamma(1)
	want := -0.5772156649
	if math.Abs(got-want) > 1e-8 {
		t.Errorf("Digamma(1) = %v, want %v", got, want)
	}
}

func TestNormalQuantileSymmetric(t *testing.T) {
	lo := NormalQuantile(0.025, 0, 1)
	hi := NormalQuantile(0.975, 0, 1)
	if math.Abs(lo+hi) > 1e-9 {
		t.Errorf("expected symmetric quantiles around 0: lo=%v hi=%v", lo, hi)
	}
}
