// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// twoNormals returns an equal mixture of N(0, 1) and N(5, 1).
func twoNormals(t *testing.T, opts ...MixtureOption) *Mixture {
	t.Helper()
	m, err := NewMixture([]Component{
		{Weight: 1, Dist: FromUV(distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(1)})},
		{Weight: 1, Dist: FromUV(distuv.Normal{Mu: 5, Sigma: 1, Src: rand.NewSource(2)})},
	}, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewMixtureWeights(t *testing.T) {
	for _, ws := range [][]float64{
		{1},
		{1, 1},
		{1, 3},
		{0.1, 0.2, 0.7},
		{0, 2, 0},
		{1e-300, 1e-300},
		{1e-310, 1e-310},
		{5, 7, 11, 13, 17},
	} {
		comps := make([]Component, len(ws))
		for i, w := range ws {
			comps[i] = Component{Weight: w, Dist: FromUV(distuv.UnitNormal)}
		}
		m, err := NewMixture(comps)
		if err != nil {
			t.Errorf("NewMixture(%v): %v", ws, err)
			continue
		}
		got := m.Weights()
		if len(got) != len(ws) || m.Len() != len(ws) {
			t.Errorf("NewMixture(%v): got %d weights, Len %d", ws, len(got), m.Len())
			continue
		}
		if sum := floats.Sum(got); math.Abs(sum-1) > 1e-9 {
			t.Errorf("NewMixture(%v): weights %v sum to %v", ws, got, sum)
		}
		if got, want := m.PDF(0), distuv.UnitNormal.Prob(0); !aeq(got, want) {
			t.Errorf("NewMixture(%v).PDF(0) = %v, want %v", ws, got, want)
		}
		if got := m.CDF(0); !aeq(got, 0.5) {
			t.Errorf("NewMixture(%v).CDF(0) = %v, want 0.5", ws, got)
		}
		total := floats.Sum(ws)
		for i, w := range got {
			if w < 0 || !aeq(ws[i]/total, w) {
				t.Errorf("NewMixture(%v): weight %d want %v, got %v", ws, i, ws[i]/total, w)
			}
		}
	}

	m := twoNormals(t)
	if got := m.Weights(); got[0] != 0.5 || got[1] != 0.5 {
		t.Errorf("want weights [0.5 0.5], got %v", got)
	}
	// Weights returns a copy.
	m.Weights()[0] = 100
	if c := m.Component(0); c.Weight != 0.5 || c.Dist == nil {
		t.Errorf("Component(0) = %+v after modifying Weights result", c)
	}
}

func TestNewMixtureInvalid(t *testing.T) {
	n := FromUV(distuv.UnitNormal)
	for name, comps := range map[string][]Component{
		"empty":    nil,
		"nil dist": {{Weight: 1, Dist: nil}},
		"negative": {{Weight: 1, Dist: n}, {Weight: -1, Dist: n}},
		"NaN":      {{Weight: math.NaN(), Dist: n}},
		"inf":      {{Weight: math.Inf(1), Dist: n}},
		"all zero": {{Weight: 0, Dist: n}, {Weight: 0, Dist: n}},
		"overflow": {{Weight: math.MaxFloat64, Dist: n}, {Weight: math.MaxFloat64, Dist: n}},
	} {
		m, err := NewMixture(comps)
		if !errors.Is(err, ErrInvalidMixture) {
			t.Errorf("%s: want ErrInvalidMixture, got %v", name, err)
		}
		if m != nil {
			t.Errorf("%s: want nil mixture, got %v", name, m)
		}
	}
}

func TestMixtureSingleComponent(t *testing.T) {
	m, err := NewMixture([]Component{{Weight: 3, Dist: FromUV(distuv.UnitNormal)}})
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{-10, -2, -0.5, 0, 0.5, 1, 3, 10} {
		if got, want := m.PDF(x), distuv.UnitNormal.Prob(x); got != want {
			t.Errorf("PDF(%v): want %v, got %v", x, want, got)
		}
		if got, want := m.CDF(x), distuv.UnitNormal.CDF(x); got != want {
			t.Errorf("CDF(%v): want %v, got %v", x, want, got)
		}
	}
}

func TestMixtureOfSelf(t *testing.T) {
	d := FromUV(distuv.Gamma{Alpha: 2, Beta: 3})
	m, err := NewMixture([]Component{{Weight: 0.5, Dist: d}, {Weight: 0.5, Dist: d}})
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{0.1, 0.5, 1, 2, 5} {
		if got, want := m.PDF(x), d.PDF(x); !aeq(want, got) {
			t.Errorf("PDF(%v): want %v, got %v", x, want, got)
		}
		if got, want := m.CDF(x), d.CDF(x); !aeq(want, got) {
			t.Errorf("CDF(%v): want %v, got %v", x, want, got)
		}
	}
}

func TestMixtureTwoNormals(t *testing.T) {
	m := twoNormals(t)
	testFunc(t, "PDF", m.PDF, map[float64]float64{
		0:   0.19947188356047372,
		2.5: 0.017528300493568537,
		5:   0.19947188356047372,
	})
	testFunc(t, "CDF", m.CDF, map[float64]float64{
		-40: 0,
		0:   0.2500001433257859,
		2.5: 0.5,
		5:   0.7499998566742141,
		40:  1,
	})
}

func TestMixtureEach(t *testing.T) {
	m := twoNormals(t)
	xs := []float64{-3, -1, 0, 1.5, 2.5, 4, 5, 9}
	pdfs, cdfs := m.PDFEach(xs), m.CDFEach(xs)
	if len(pdfs) != len(xs) || len(cdfs) != len(xs) {
		t.Fatalf("want %d results, got %d PDFs and %d CDFs", len(xs), len(pdfs), len(cdfs))
	}
	for i, x := range xs {
		if !aeq(m.PDF(x), pdfs[i]) {
			t.Errorf("PDFEach[%d]: want %v, got %v", i, m.PDF(x), pdfs[i])
		}
		if !aeq(m.CDF(x), cdfs[i]) {
			t.Errorf("CDFEach[%d]: want %v, got %v", i, m.CDF(x), cdfs[i])
		}
	}

	if got := m.PDFEach(nil); len(got) != 0 {
		t.Errorf("PDFEach(nil): want empty, got %v", got)
	}
}

func TestMixtureCDFMonotone(t *testing.T) {
	m, err := NewMixture([]Component{
		{Weight: 2, Dist: FromUV(distuv.Normal{Mu: -3, Sigma: 0.5})},
		{Weight: 1, Dist: FromUV(distuv.Exponential{Rate: 2})},
		{Weight: 1, Dist: FromUV(distuv.Uniform{Min: 4, Max: 6})},
	})
	if err != nil {
		t.Fatal(err)
	}
	const eps = 1e-12
	prev := m.CDF(-20)
	if prev > 1e-9 {
		t.Errorf("CDF(-20) = %v, want ≅ 0", prev)
	}
	for x := -20.0; x <= 20; x += 0.01 {
		y := m.CDF(x)
		if y < prev-eps {
			t.Fatalf("CDF decreases at %v: %v < %v", x, y, prev)
		}
		if y < 0 || y > 1+eps {
			t.Fatalf("CDF(%v) = %v out of [0, 1]", x, y)
		}
		if m.PDF(x) < 0 {
			t.Fatalf("PDF(%v) = %v < 0", x, m.PDF(x))
		}
		prev = y
	}
	if !aeq(1, prev) {
		t.Errorf("CDF(20) = %v, want ≅ 1", prev)
	}
}

func TestMixtureSample(t *testing.T) {
	m := twoNormals(t, WithSource(rand.NewSource(42)))

	if xs := m.Sample(0); xs == nil || len(xs) != 0 {
		t.Errorf("Sample(0): want empty slice, got %v", xs)
	}
	if xs := m.Sample(-3); len(xs) != 0 {
		t.Errorf("Sample(-3): want empty slice, got %v", xs)
	}
	for _, n := range []int{1, 2, 17, 1000} {
		if xs := m.Sample(n); len(xs) != n {
			t.Errorf("Sample(%d): got %d values", n, len(xs))
		}
	}

	xs := m.Sample(10000)
	s := Sample{Xs: xs}
	if mean := s.Mean(); math.Abs(mean-2.5) > 0.2 {
		t.Errorf("sample mean: want ≅ 2.5, got %v", mean)
	}
	// Variance of the mixture is 1 + 2.5².
	if sd, want := s.StdDev(), math.Sqrt(1+2.5*2.5); math.Abs(sd-want) > 0.2 {
		t.Errorf("sample stddev: want ≅ %v, got %v", want, sd)
	}
	below := 0
	for _, x := range xs {
		if x < 2.5 {
			below++
		}
	}
	if frac := float64(below) / float64(len(xs)); math.Abs(frac-0.5) > 0.03 {
		t.Errorf("fraction below 2.5: want ≅ 0.5, got %v", frac)
	}
}

func TestMixtureSampleZeroWeight(t *testing.T) {
	m, err := NewMixture([]Component{
		{Weight: 1, Dist: FromUV(distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(3)})},
		{Weight: 0, Dist: FromUV(distuv.Normal{Mu: 100, Sigma: 1, Src: rand.NewSource(4)})},
	}, WithSource(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range m.Sample(2000) {
		if x > 50 {
			t.Fatalf("sampled %v from a zero-weight component", x)
		}
	}
	if x := m.Rand(); x > 50 {
		t.Fatalf("Rand() = %v from a zero-weight component", x)
	}
}

func TestMixtureNested(t *testing.T) {
	inner := twoNormals(t, WithSource(rand.NewSource(6)))
	outer, err := NewMixture([]Component{
		{Weight: 1, Dist: inner},
		{Weight: 1, Dist: FromUV(distuv.Normal{Mu: 10, Sigma: 1, Src: rand.NewSource(7)})},
	}, WithSource(rand.NewSource(8)))
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{0, 5, 10} {
		want := 0.25*distuv.UnitNormal.Prob(x) + 0.25*distuv.UnitNormal.Prob(x-5) + 0.5*distuv.UnitNormal.Prob(x-10)
		if got := outer.PDF(x); !aeq(want, got) {
			t.Errorf("PDF(%v): want %v, got %v", x, want, got)
		}
	}
	if xs := outer.Sample(100); len(xs) != 100 {
		t.Errorf("Sample(100): got %d values", len(xs))
	}
}

func TestMixtureBounds(t *testing.T) {
	lo, hi := twoNormals(t).Bounds()
	if wlo, whi := distuv.UnitNormal.Quantile(0.001), 5+distuv.UnitNormal.Quantile(0.999); !aeq(wlo, lo) || !aeq(whi, hi) {
		t.Errorf("Bounds: want [%v, %v], got [%v, %v]", wlo, whi, lo, hi)
	}

	m, err := NewMixture([]Component{
		{Weight: 1, Dist: FromUV(distuv.Exponential{Rate: 1})},
		{Weight: 0, Dist: FromUV(distuv.Normal{Mu: -100, Sigma: 1})},
	})
	if err != nil {
		t.Fatal(err)
	}
	lo, hi = m.Bounds()
	if !aeq(-math.Log(0.999), lo) || !aeq(-math.Log(0.001), hi) {
		t.Errorf("Bounds: want [%v, %v], got [%v, %v]", -math.Log(0.999), -math.Log(0.001), lo, hi)
	}
}
