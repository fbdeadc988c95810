// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// KDE represents options for constructing a kernel density estimate.
//
// Kernel density estimation is a method for constructing an estimate
// ƒ̂(x) of a unknown distribution ƒ(x) given a sample from that
// distribution.  Unlike many techniques, kernel density estimation is
// non-parametric: in general, it doesn't assume any particular true
// distribution (note, however, that the resulting distribution
// depends deeply on the selected bandwidth, and many bandwidth
// estimation techniques assume normal reference rules).
//
// A Gaussian kernel density estimate is a mixture of normal
// distributions, one centered on each sample point, weighted by that
// point's weight. From builds exactly that Mixture, so the estimate
// supports quantiles and sampling like any other Mixture.
//
// The default (zero) value of KDE is a reasonable default
// configuration.
type KDE struct {
	// Bandwidth is the bandwidth to use for the KDE.
	//
	// If this is zero, the bandwidth is computed from the
	// provided data using a default bandwidth estimator
	// (currently BandwidthScott).
	Bandwidth float64

	// Src is the random source for sampling the estimate. If nil,
	// the global source is used.
	Src rand.Source

	// Quantile configures quantile searches on the estimate.
	Quantile QuantileSettings
}

// BandwidthSilverman is a bandwidth estimator implementing
// Silverman's Rule of Thumb. It's fast, but not very robust to
// outliers as it assumes data is approximately normal.
//
// Silverman, B. W. (1986) Density Estimation.
func BandwidthSilverman(data interface {
	StdDev() float64
	Weight() float64
}) float64 {
	return 1.06 * data.StdDev() * math.Pow(data.Weight(), -1.0/5)
}

// BandwidthScott is a bandwidth estimator implementing Scott's Rule.
// This is generally robust to outliers: it chooses the minimum
// between the sample's standard deviation and an robust estimator of
// a Gaussian distribution's standard deviation.
//
// Scott, D. W. (1992) Multivariate Density Estimation: Theory,
// Practice, and Visualization.
func BandwidthScott(data interface {
	StdDev() float64
	Weight() float64
	Percentile(float64) float64
}) float64 {
	iqr := data.Percentile(0.75) - data.Percentile(0.25)
	hScale := 1.06 * math.Pow(data.Weight(), -1.0/5)
	stdDev := data.StdDev()
	if stdDev < iqr/1.349 || iqr == 0 {
		// Use Silverman's Rule of Thumb
		return hScale * stdDev
	}
	// Use IQR/1.349 as a robust estimator of the standard
	// deviation of a Gaussian distribution.
	return hScale * (iqr / 1.349)
}

// From returns the kernel density estimate for the sample s as a
// mixture of Gaussian kernels.
//
// From returns ErrSamplesEqual if no bandwidth was given and one
// cannot be estimated from s because s has no spread.
func (k KDE) From(s Sample) (*Mixture, error) {
	if s.Weights != nil && len(s.Xs) != len(s.Weights) {
		panic("len(xs) != len(weights)")
	}
	if len(s.Xs) == 0 {
		return nil, fmt.Errorf("%w: empty sample", ErrInvalidMixture)
	}

	// Compute bandwidth
	h := k.Bandwidth
	if h == 0 {
		h = BandwidthScott(s)
		if !(h > 0) {
			return nil, ErrSamplesEqual
		}
	} else if !(h > 0) || math.IsInf(h, 1) {
		return nil, fmt.Errorf("%w: bandwidth %v", ErrInvalidMixture, h)
	}

	// One kernel per sample point
	comps := make([]Component, len(s.Xs))
	for i, x := range s.Xs {
		w := 1.0
		if s.Weights != nil {
			w = s.Weights[i]
		}
		comps[i] = Component{
			Weight: w,
			Dist:   FromUV(distuv.Normal{Mu: x, Sigma: h, Src: k.Src}),
		}
	}
	return NewMixture(comps, WithSource(k.Src), WithQuantileSettings(k.Quantile))
}
