package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aclements/go-mixdist/stats"
)

// env holds the state shared by mixdist's subcommands.
type env struct {
	v      *viper.Viper
	cfg    *Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{v: viper.New()}

	root := &cobra.Command{
		Use:   "mixdist",
		Short: "Describe and sample mixture distributions",
		Long: `mixdist works with mixtures: weighted combinations of continuous
distributions. The mixture is read from a YAML config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfig(e.v); err != nil {
				return err
			}
			cfg, err := loadConfig(e.v)
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (default is ./mixdist.yaml)")
	root.PersistentFlags().Uint64("seed", 0, "random seed (0 seeds from the clock)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
	_ = e.v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = e.v.BindPFlag("seed", root.PersistentFlags().Lookup("seed"))
	_ = e.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newDescribeCmd(e), newSampleCmd(e), newKDECmd(e))
	return root
}

// newLogger returns a text logger writing to w at the named level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// percentiles are the points printed by describe and kde.
var percentiles = []float64{0.001, 0.01, 0.05, 0.25, 0.5, 0.75, 0.95, 0.99, 0.999}

// printPercentiles prints m's quantiles at percentiles, logging any
// that did not converge.
func (e *env) printPercentiles(w io.Writer, m *stats.Mixture) {
	res, err := m.QuantileEach(percentiles)
	if err != nil {
		for _, r := range res {
			if !r.Converged {
				e.logger.Warn("quantile did not converge",
					"p", r.P, "x", r.X, "residual", r.Residual, "status", r.Status.String())
			}
		}
	}
	labels := map[float64]string{0.5: "median"}
	for _, r := range res {
		label, ok := labels[r.P]
		if !ok {
			label = fmt.Sprintf("%g%%ile", r.P*100)
		}
		mark := ""
		if !r.Converged {
			mark = " ?"
		}
		fmt.Fprintf(w, "%8s %.6g%s\n", label, r.X, mark)
	}
}

// mixture builds the mixture from the loaded config.
func (e *env) mixture() (*stats.Mixture, error) {
	m, err := e.cfg.Mixture()
	if errors.Is(err, stats.ErrInvalidMixture) {
		return nil, fmt.Errorf("config %s: %w", e.v.ConfigFileUsed(), err)
	}
	return m, err
}
