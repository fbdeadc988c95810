// mixdist describes, samples, and estimates mixture distributions.
//
// A mixture is described by a YAML config file listing weighted
// component distributions:
//
//	seed: 1
//	quantile:
//	  tolerance: 1.0e-6
//	components:
//	  - weight: 1
//	    dist: normal
//	    params: {mu: 0, sigma: 1}
//	  - weight: 1
//	    dist: normal
//	    params: {mu: 5, sigma: 1}
//
// "mixdist describe" prints the mixture's density, cumulative
// distribution, and percentiles. "mixdist sample" draws from it.
// "mixdist kde" reads newline-separated numbers from stdin and
// describes their kernel density estimate.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mixdist:", err)
		os.Exit(1)
	}
}
