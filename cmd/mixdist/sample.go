package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

func newSampleCmd(e *env) *cobra.Command {
	var (
		n       int
		shuffle bool
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print random values drawn from a mixture",
		Long: `Print random values drawn from a mixture, one per line.

Values are grouped by the component they were drawn from unless
--shuffle is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 {
				return fmt.Errorf("bad sample count %d", n)
			}
			m, err := e.mixture()
			if err != nil {
				return err
			}
			xs := m.Sample(n)
			if shuffle {
				r := rand.New(e.cfg.source(shuffleStream))
				r.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
			}
			e.logger.Debug("sampled mixture", "n", len(xs), "components", m.Len())

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, x := range xs {
				fmt.Fprintf(w, "%g\n", x)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 10, "number of values")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "shuffle values instead of grouping them by component")
	return cmd
}
