// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"sort"
	"testing"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// testFunc checks that f(x) ≅ want for each x, want in tests.
func testFunc(t *testing.T, name string, f func(float64) float64, tests map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(tests))
	for x := range tests {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		want, got := tests[x], f(x)
		if math.IsNaN(want) && math.IsNaN(got) || aeq(want, got) {
			continue
		}
		var msg string
		if math.IsNaN(want) {
			msg = fmt.Sprintf("want NaN, got %v", got)
		} else {
			msg = fmt.Sprintf("want %v, got %v", want, got)
		}
		t.Errorf("%s(%v): %s", name, x, msg)
	}
}
