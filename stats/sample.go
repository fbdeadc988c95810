// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is a collection of possibly weighted data points.
type Sample struct {
	// Xs is the slice of sample values.
	Xs []float64

	// Weights[i] is the weight of sample Xs[i].  If Weights is
	// nil, all Xs have weight 1.  Weights must have the same
	// length of Xs and all values must be non-negative.
	Weights []float64
}

// Weight returns the total weight of the Sample.
func (s Sample) Weight() float64 {
	if s.Weights == nil {
		return float64(len(s.Xs))
	}
	return floats.Sum(s.Weights)
}

// Mean returns the arithmetic mean of the Sample.
func (s Sample) Mean() float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	return stat.Mean(s.Xs, s.Weights)
}

// StdDev returns the sample standard deviation of the Sample.
func (s Sample) StdDev() float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	return stat.StdDev(s.Xs, s.Weights)
}

// Bounds returns the minimum and maximum values of the Sample.
//
// If the Sample is empty, Bounds returns NaN, NaN.
func (s Sample) Bounds() (min float64, max float64) {
	if len(s.Xs) == 0 {
		return nan, nan
	}
	return floats.Min(s.Xs), floats.Max(s.Xs)
}

// Percentile returns the pctileth value from the Sample. This uses
// the empirical quantile of the weighted sample. pctile will be
// capped to the range [0, 1]. If len(xs) == 0 or all weights are 0,
// returns NaN.
func (s Sample) Percentile(pctile float64) float64 {
	if len(s.Xs) == 0 || s.Weight() == 0 {
		return nan
	}
	pctile = math.Max(0, math.Min(1, pctile))

	xs := append([]float64(nil), s.Xs...)
	inds := make([]int, len(xs))
	floats.Argsort(xs, inds)
	var ws []float64
	if s.Weights != nil {
		ws = make([]float64, len(inds))
		for i, j := range inds {
			ws[i] = s.Weights[j]
		}
	}
	return stat.Quantile(pctile, stat.Empirical, xs, ws)
}
