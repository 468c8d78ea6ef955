// Package mle is the public entry point: it wires expr's tape builder,
// internal/solver's regularized Newton-Brent maximizer, and
// internal/likelihood's confidence-interval methods into the four calls a
// host program needs — Maximize, Read, ConfintAsymptotic, and
// ConfintProfile — matching the "Exposed to the host" surface.
package mle

import (
	"github.com/gradhess/mle/expr"
	"github.com/gradhess/mle/internal/likelihood"
	"github.com/gradhess/mle/internal/solver"
	"github.com/gradhess/mle/internal/trace"
)

// Config governs the Newton-Brent solver; see internal/solver.Config for
// field documentation and defaults. It is re-exported here so a host never
// needs to import an internal package.
type Config = solver.Config

// Confint is one free parameter's confidence interval at a requested
// coverage, alongside its point estimate.
type Confint = likelihood.Confint

// Maximize records tp's declared inputs into a fresh trace and runs the
// regularized Newton maximizer to convergence. On success the returned
// trace holds the stationary point: Read any expr.Expr built from tp
// against it to recover fitted values.
func Maximize(tp *expr.Tape, cfg Config) (*trace.Trace, error) {
	tr := trace.New(tp.Raw())
	s := solver.New(tr, cfg)
	if err := s.Maximize(); err != nil {
		return nil, err
	}
	return tr, nil
}

// Read returns e's value(s) out of a solved trace.
func Read(e expr.Expr, tr *trace.Trace) []float64 {
	return e.Read(tr.Values)
}

// ConfintAsymptotic returns the Wald confidence interval, at the given
// coverage, for every free input in tr, in declaration order.
func ConfintAsymptotic(tr *trace.Trace, coverage float64) ([]Confint, error) {
	return likelihood.ConfintAsymptotic(tr, coverage)
}

// ConfintProfile returns the profile-likelihood confidence interval, at
// the given coverage, for every free input in tr, in declaration order.
// cfg governs every inner re-maximization the method performs; it is
// ordinarily the same Config passed to the Maximize call that produced tr.
func ConfintProfile(tr *trace.Trace, cfg Config, coverage float64) ([]Confint, error) {
	return likelihood.ConfintProfile(tr, cfg, coverage)
}
