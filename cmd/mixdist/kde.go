package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aclements/go-mixdist/stats"
)

func newKDECmd(e *env) *cobra.Command {
	var bandwidth float64
	cmd := &cobra.Command{
		Use:   "kde",
		Short: "Describe the kernel density estimate of numbers read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readInput(cmd.InOrStdin())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "N %d  mean %.6g", len(s.Xs), s.Mean())
			fmt.Fprintf(w, "  std dev %.6g\n", s.StdDev())

			kde := stats.KDE{
				Bandwidth: bandwidth,
				Src:       e.cfg.source(mixtureStream),
				Quantile:  e.cfg.quantileSettings(),
			}
			m, err := kde.From(s)
			if err != nil {
				return err
			}
			h := bandwidth
			if h == 0 {
				h = stats.BandwidthScott(s)
			}
			fmt.Fprintf(w, "bandwidth %.6g\n", h)
			fmt.Fprintln(w)

			e.printPercentiles(w, m)
			return nil
		},
	}
	cmd.Flags().Float64Var(&bandwidth, "bandwidth", 0, "kernel bandwidth (0 uses Scott's rule)")
	return cmd
}

// readInput reads newline-separated numbers from r. Blank lines are
// ignored.
func readInput(r io.Reader) (sample stats.Sample, err error) {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		l := strings.TrimSpace(scanner.Text())
		if l == "" {
			continue
		}
		value, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return sample, fmt.Errorf("line %d: %w", line, err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return sample, fmt.Errorf("line %d: value %v is not finite", line, value)
		}

		sample.Xs = append(sample.Xs, value)
	}
	if err := scanner.Err(); err != nil {
		return sample, err
	}
	if len(sample.Xs) == 0 {
		return sample, errors.New("no input")
	}
	return sample, nil
}
