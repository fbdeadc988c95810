package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDescribeCmd(e *env) *cobra.Command {
	var at []float64
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print a mixture's components, density, and percentiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := e.mixture()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "components %d\n", m.Len())
			for i, cc := range e.cfg.Components {
				fmt.Fprintf(w, "  %.4f  %v\n", m.Component(i).Weight, cc)
			}
			lo, hi := m.Bounds()
			fmt.Fprintf(w, "bounds [%.6g, %.6g]\n", lo, hi)
			fmt.Fprintln(w)

			// Density and distribution at the requested points,
			// or spread across the bounds.
			xs := at
			if len(xs) == 0 {
				const steps = 10
				for i := 0; i <= steps; i++ {
					xs = append(xs, lo+(hi-lo)*float64(i)/steps)
				}
			}
			pdfs, cdfs := m.PDFEach(xs), m.CDFEach(xs)
			fmt.Fprintf(w, "%12s %12s %12s\n", "x", "pdf", "cdf")
			for i, x := range xs {
				fmt.Fprintf(w, "%12.6g %12.6g %12.6g\n", x, pdfs[i], cdfs[i])
			}
			fmt.Fprintln(w)

			e.printPercentiles(w, m)
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&at, "at", nil, "points at which to evaluate the pdf and cdf")
	return cmd
}
