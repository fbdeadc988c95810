// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/optimize"
)

// QuantileSettings control the numerical search used to invert a
// Mixture's CDF. The zero value of each field selects its default.
type QuantileSettings struct {
	// MaxIterations bounds the number of major iterations of the
	// simplex search for one probability. Default 1e5.
	MaxIterations int

	// MaxEvaluations bounds the number of CDF evaluations for one
	// probability. Default 1e5.
	MaxEvaluations int

	// Tolerance is the largest |p - CDF(x)| at which x is
	// accepted as the p quantile. Default 1e-6.
	Tolerance float64

	// Concurrency is the number of probabilities QuantileEach
	// searches for in parallel. Default runtime.GOMAXPROCS(0).
	Concurrency int
}

func (s QuantileSettings) withDefaults() QuantileSettings {
	if s.MaxIterations <= 0 {
		s.MaxIterations = 1e5
	}
	if s.MaxEvaluations <= 0 {
		s.MaxEvaluations = 1e5
	}
	if s.Tolerance <= 0 {
		s.Tolerance = 1e-6
	}
	if s.Concurrency <= 0 {
		s.Concurrency = runtime.GOMAXPROCS(0)
	}
	return s
}

// QuantileResult is the outcome of inverting a Mixture's CDF at P.
type QuantileResult struct {
	// P is the requested probability.
	P float64

	// X is the best value found for the P quantile. It is set
	// even if the search did not converge.
	X float64

	// Residual is |P - CDF(X)|.
	Residual float64

	// Converged reports whether Residual is within tolerance and
	// the search stopped on its own rather than on a budget limit
	// or failure.
	Converged bool

	// Status is the termination status reported by the optimizer.
	Status optimize.Status
}

// NonConvergenceError reports a quantile search that stopped without
// reaching its tolerance.
type NonConvergenceError struct {
	Result QuantileResult
	Err    error // optimizer error, if any
}

func (e *NonConvergenceError) Error() string {
	r := e.Result
	msg := fmt.Sprintf("quantile %v: search stopped at x=%v with residual %g (%v)", r.P, r.X, r.Residual, r.Status)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NonConvergenceError) Is(target error) bool {
	return target == ErrNotConverged
}

func (e *NonConvergenceError) Unwrap() error {
	return e.Err
}

// Quantile returns the p quantile of m, the x where CDF(x) = p.
//
// There is generally no closed form for a mixture's quantile, so it
// is found by minimizing |p - CDF(x)| with the Nelder-Mead simplex
// method, starting from the mean of the components' p quantiles.
//
// If the search does not converge, Quantile returns the best result
// it found together with a *NonConvergenceError.
//
// p must be in [0, 1]. Other values are passed to the components
// unchecked; gonum distributions panic on them.
func (m *Mixture) Quantile(p float64) (QuantileResult, error) {
	return m.solve(p, m.initialGuess(p))
}

// QuantileEach returns Quantile(ps[i]) for each i.
//
// The searches are independent and run concurrently. The returned
// error joins the errors of every search that did not converge; the
// results are returned in full either way.
func (m *Mixture) QuantileEach(ps []float64) ([]QuantileResult, error) {
	res := make([]QuantileResult, len(ps))
	errs := make([]error, len(ps))

	var g errgroup.Group
	g.SetLimit(m.settings.Concurrency)
	for i, p := range ps {
		i, p := i, p
		g.Go(func() error {
			res[i], errs[i] = m.solve(p, m.initialGuess(p))
			return nil
		})
	}
	_ = g.Wait() // searches report through errs
	return res, errors.Join(errs...)
}

// InvCDF returns the best estimate of the y quantile of m, ignoring
// convergence. Use Quantile to learn whether the search converged.
func (m *Mixture) InvCDF(y float64) float64 {
	r, _ := m.Quantile(y)
	return r.X
}

// InvCDFEach returns InvCDF(ys[i]) for each i.
func (m *Mixture) InvCDFEach(ys []float64) []float64 {
	res, _ := m.QuantileEach(ys)
	xs := make([]float64, len(res))
	for i, r := range res {
		xs[i] = r.X
	}
	return xs
}

// initialGuess returns the mean of the components' p quantiles. This
// only seeds the search. Components whose quantile is not finite at p
// are skipped.
func (m *Mixture) initialGuess(p float64) float64 {
	sum, n := 0.0, 0
	for _, d := range m.dists {
		q := d.InvCDF(p)
		if math.IsInf(q, 0) || math.IsNaN(q) {
			continue
		}
		sum += q
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// solve inverts m's CDF at p, starting the search at x0.
func (m *Mixture) solve(p, x0 float64) (QuantileResult, error) {
	residual := func(x float64) float64 {
		return math.Abs(p - m.CDF(x))
	}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return residual(x[0])
		},
	}
	settings := &optimize.Settings{
		MajorIterations: m.settings.MaxIterations,
		FuncEvaluations: m.settings.MaxEvaluations,
	}
	res, err := optimize.Minimize(problem, []float64{x0}, settings, &optimize.NelderMead{})

	r := QuantileResult{P: p, X: x0, Status: optimize.Failure}
	if res != nil {
		r.X = res.X[0]
		r.Status = res.Status
	}
	r.Residual = residual(r.X)
	r.Converged = err == nil && r.Residual <= m.settings.Tolerance && !stoppedEarly(r.Status)
	if !r.Converged {
		return r, &NonConvergenceError{Result: r, Err: err}
	}
	return r, nil
}

// stoppedEarly reports whether s means the optimizer gave up rather
// than reached a minimum.
func stoppedEarly(s optimize.Status) bool {
	switch s {
	case optimize.NotTerminated, optimize.Failure,
		optimize.IterationLimit, optimize.FunctionEvaluationLimit, optimize.RuntimeLimit:
		return true
	}
	return false
}
