// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats implements mixtures of continuous statistical
// distributions.
//
// A Mixture is a weighted combination of component distributions. Its
// density and cumulative distribution are weighted sums of the
// components'; its quantile function has no closed form and is found
// numerically for each requested probability.
package stats // import "github.com/aclements/go-mixdist/stats"

import (
	"errors"
	"math"
)

var inf = math.Inf(1)
var nan = math.NaN()

var (
	// ErrInvalidMixture is returned when a Mixture cannot be
	// constructed from the given components.
	ErrInvalidMixture = errors.New("invalid mixture")

	// ErrNotConverged is matched by errors reporting a quantile
	// search that did not reach its tolerance.
	ErrNotConverged = errors.New("quantile search did not converge")

	ErrSamplesEqual = errors.New("all samples are equal")
)
