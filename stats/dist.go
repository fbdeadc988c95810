// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

// A Dist is a continuous statistical distribution that can be
// combined into a Mixture.
//
// Implementations must be safe to evaluate concurrently if the
// Mixture's quantiles are computed concurrently. Rand is not required
// to be safe for concurrent use.
type Dist interface {
	// PDF returns the value of the probability density function
	// of this distribution at x.
	PDF(x float64) float64

	// CDF returns the value of the cumulative distribution
	// function for this distribution at x. This is the integral
	// of the PDF from -inf to x.
	CDF(x float64) float64

	// InvCDF returns the inverse of the CDF for y. That is,
	// InvCDF(CDF(x)) = x. The value of y must be in [0, 1].
	InvCDF(y float64) float64

	// Rand returns a random value drawn from this distribution.
	Rand() float64
}

// UV is the subset of the gonum.org/v1/gonum/stat/distuv method set
// needed to use a univariate gonum distribution as a Dist.
//
// distuv.Normal, LogNormal, Exponential, Uniform, Weibull, Laplace,
// Gamma and Beta all implement UV.
type UV interface {
	Prob(x float64) float64
	CDF(x float64) float64
	Quantile(p float64) float64
	Rand() float64
}

// FromUV returns a Dist backed by the gonum distribution d.
func FromUV(d UV) Dist {
	return uvDist{d}
}

type uvDist struct {
	d UV
}

func (u uvDist) PDF(x float64) float64    { return u.d.Prob(x) }
func (u uvDist) CDF(x float64) float64    { return u.d.CDF(x) }
func (u uvDist) InvCDF(y float64) float64 { return u.d.Quantile(y) }
func (u uvDist) Rand() float64            { return u.d.Rand() }
