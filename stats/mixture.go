// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// A Component is one weighted distribution in a Mixture.
type Component struct {
	// Weight is the relative weight of Dist in the mixture. It
	// must be finite and >= 0. Weights are normalized by their
	// sum, so they need not sum to 1.
	Weight float64

	Dist Dist
}

// Mixture is a probability distribution formed from a weighted sum
// of other distributions.
//
// A Mixture is immutable once constructed and implements Dist, so
// mixtures may themselves be mixed.
type Mixture struct {
	weights []float64
	dists   []Dist

	src      rand.Source
	cat      distuv.Categorical
	settings QuantileSettings
}

// A MixtureOption configures a Mixture at construction.
type MixtureOption func(*Mixture)

// WithSource sets the random source used to choose a component when
// sampling. If src is nil (the default), the global source is used.
//
// Components draw their own values from whatever source they were
// constructed with.
func WithSource(src rand.Source) MixtureOption {
	return func(m *Mixture) {
		m.src = src
	}
}

// WithQuantileSettings sets the budget and tolerance of the
// numerical quantile search. Zero fields take their defaults.
func WithQuantileSettings(s QuantileSettings) MixtureOption {
	return func(m *Mixture) {
		m.settings = s
	}
}

// NewMixture returns the mixture of components. The components'
// weights are normalized to sum to 1.
//
// NewMixture returns an error wrapping ErrInvalidMixture if
// components is empty, any component has a nil Dist or a negative
// or non-finite weight, or the weights sum to 0.
func NewMixture(components []Component, opts ...MixtureOption) (*Mixture, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: no components", ErrInvalidMixture)
	}

	m := &Mixture{
		weights: make([]float64, len(components)),
		dists:   make([]Dist, len(components)),
	}
	for i, c := range components {
		if c.Dist == nil {
			return nil, fmt.Errorf("%w: component %d has no distribution", ErrInvalidMixture, i)
		}
		if !(c.Weight >= 0) || math.IsInf(c.Weight, 1) {
			return nil, fmt.Errorf("%w: component %d has weight %v", ErrInvalidMixture, i, c.Weight)
		}
		m.weights[i] = c.Weight
		m.dists[i] = c.Dist
	}
	sum := floats.Sum(m.weights)
	if sum == 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidMixture)
	}
	if math.IsInf(sum, 1) {
		return nil, fmt.Errorf("%w: weights overflow", ErrInvalidMixture)
	}
	// Divide rather than scale by 1/sum, which overflows for subnormal sums.
	for i := range m.weights {
		m.weights[i] /= sum
	}

	for _, opt := range opts {
		opt(m)
	}
	m.settings = m.settings.withDefaults()
	m.cat = distuv.NewCategorical(m.weights, m.src)
	return m, nil
}

// Len returns the number of components in m.
func (m *Mixture) Len() int {
	return len(m.dists)
}

// Weights returns the normalized weights of m's components, in the
// order they were given to NewMixture.
func (m *Mixture) Weights() []float64 {
	return append([]float64(nil), m.weights...)
}

// Component returns the i'th component of m with its normalized
// weight.
func (m *Mixture) Component(i int) Component {
	return Component{Weight: m.weights[i], Dist: m.dists[i]}
}

// PDF returns the value of the probability density function of m at
// x.
func (m *Mixture) PDF(x float64) float64 {
	p := 0.0
	for c, d := range m.dists {
		p += m.weights[c] * d.PDF(x)
	}
	return p
}

// PDFEach returns PDF(xs[i]) for each i.
func (m *Mixture) PDFEach(xs []float64) []float64 {
	ps := make([]float64, len(xs))
	for c, d := range m.dists {
		w := m.weights[c]
		for i, x := range xs {
			ps[i] += w * d.PDF(x)
		}
	}
	return ps
}

// CDF returns the value of the cumulative distribution function of
// m at x.
func (m *Mixture) CDF(x float64) float64 {
	p := 0.0
	for c, d := range m.dists {
		p += m.weights[c] * d.CDF(x)
	}
	return p
}

// CDFEach returns CDF(xs[i]) for each i.
func (m *Mixture) CDFEach(xs []float64) []float64 {
	ps := make([]float64, len(xs))
	for c, d := range m.dists {
		w := m.weights[c]
		for i, x := range xs {
			ps[i] += w * d.CDF(x)
		}
	}
	return ps
}

// Sample returns n values drawn from m.
//
// Each draw first picks a component according to the weights, then
// samples that component. The result is grouped by component, in
// component order, rather than in draw order. Callers that need
// exchangeable order should shuffle the result.
//
// Sample returns an empty slice if n <= 0.
func (m *Mixture) Sample(n int) []float64 {
	counts := make([]int, len(m.dists))
	for i := 0; i < n; i++ {
		counts[int(m.cat.Rand())]++
	}
	xs := make([]float64, 0, max(n, 0))
	for c, d := range m.dists {
		for j := 0; j < counts[c]; j++ {
			xs = append(xs, d.Rand())
		}
	}
	return xs
}

// Rand returns a single value drawn from m.
func (m *Mixture) Rand() float64 {
	return m.dists[int(m.cat.Rand())].Rand()
}

// Bounds returns reasonable bounds for m's PDF and CDF: the smallest
// 0.1th percentile and the largest 99.9th percentile of m's
// components.
//
// Components with zero weight are ignored. A bound no component gives
// a finite percentile for is infinite.
func (m *Mixture) Bounds() (low, high float64) {
	const tail = 0.001
	low, high = inf, -inf
	for c, d := range m.dists {
		if m.weights[c] == 0 {
			continue
		}
		if l := d.InvCDF(tail); !math.IsInf(l, 0) && !math.IsNaN(l) {
			low = math.Min(low, l)
		}
		if h := d.InvCDF(1 - tail); !math.IsInf(h, 0) && !math.IsNaN(h) {
			high = math.Max(high, h)
		}
	}
	if low == inf {
		low = -inf
	}
	if high == -inf {
		high = inf
	}
	return low, high
}
