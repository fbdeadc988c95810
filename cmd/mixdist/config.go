package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-mixdist/stats"
)

// Config is the mixdist configuration, read from the config file,
// the environment, and flags.
type Config struct {
	// Seed seeds all random sources. Zero means seed from the
	// clock; loadConfig resolves it once so every stream derived
	// from it agrees.
	Seed uint64 `mapstructure:"seed"`

	LogLevel string `mapstructure:"log_level"`

	Quantile QuantileConfig `mapstructure:"quantile"`

	Components []ComponentConfig `mapstructure:"components"`
}

// QuantileConfig mirrors stats.QuantileSettings.
type QuantileConfig struct {
	MaxIterations  int     `mapstructure:"max_iterations"`
	MaxEvaluations int     `mapstructure:"max_evaluations"`
	Tolerance      float64 `mapstructure:"tolerance"`
	Concurrency    int     `mapstructure:"concurrency"`
}

// ComponentConfig describes one weighted component distribution.
type ComponentConfig struct {
	Weight float64            `mapstructure:"weight"`
	Dist   string             `mapstructure:"dist"`
	Params map[string]float64 `mapstructure:"params"`
}

// setDefaults registers default values with v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("quantile.max_iterations", 100000)
	v.SetDefault("quantile.max_evaluations", 100000)
	v.SetDefault("quantile.tolerance", 1e-6)
	v.SetDefault("quantile.concurrency", 0)
}

// readConfig reads the config file named by the "config" key, or
// mixdist.yaml from the usual places if none is named.
func readConfig(v *viper.Viper) error {
	setDefaults(v)

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("mixdist")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mixdist")
	}

	v.SetEnvPrefix("MIXDIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Running without a config file is fine for kde.
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// loadConfig unmarshals v into a Config.
func loadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return &cfg, nil
}

// Random streams derived from Config.Seed.
const (
	mixtureStream uint64 = iota
	shuffleStream
)

// source returns the random source for the given stream of c.Seed.
// Distinct streams are seeded differently so they do not replay
// each other's values.
func (c *Config) source(stream uint64) rand.Source {
	return rand.NewSource(c.Seed ^ stream*0x9e3779b97f4a7c15)
}

func (c *Config) quantileSettings() stats.QuantileSettings {
	return stats.QuantileSettings{
		MaxIterations:  c.Quantile.MaxIterations,
		MaxEvaluations: c.Quantile.MaxEvaluations,
		Tolerance:      c.Quantile.Tolerance,
		Concurrency:    c.Quantile.Concurrency,
	}
}

// Mixture builds the mixture described by c. All components and the
// component choice share one random source.
func (c *Config) Mixture() (*stats.Mixture, error) {
	if len(c.Components) == 0 {
		return nil, fmt.Errorf("%w: config has no components", stats.ErrInvalidMixture)
	}
	src := c.source(mixtureStream)
	comps := make([]stats.Component, len(c.Components))
	for i, cc := range c.Components {
		d, err := cc.build(src)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		comps[i] = stats.Component{Weight: cc.Weight, Dist: stats.FromUV(d)}
	}
	return stats.NewMixture(comps, stats.WithSource(src), stats.WithQuantileSettings(c.quantileSettings()))
}

// A param is a named distribution parameter with its default.
type param struct {
	name     string
	def      float64
	positive bool
}

// A family describes a gonum distribution a component may use.
type family struct {
	params []param
	build  func(p map[string]float64, src rand.Source) stats.UV
}

var families = map[string]family{
	"normal": {
		params: []param{{"mu", 0, false}, {"sigma", 1, true}},
		build: func(p map[string]float64, src rand.Source) stats.UV {
			return distuv.Normal{Mu: p["mu"], Sigma: p["sigma"], Src: src}
		},
	},
	"lognormal": {
		params: []param{{"mu", 0, false}, {"sigma", 1, true}},
		build: func(p map[string]float64, src rand.Source) stats.UV {
			return distuv.LogNormal{Mu: p["mu"], Sigma: p["sigma"], Src: src}
		},
	},
	"exponential": {
		params: []param{{"rate", 1, true}},
		build: func(p map[string]float64, src rand.Source) stats.UV {
			return distuv.Exponential{Rate: p["rate"], Src: src}
		},
	},
	"uniform": {
		params: []param{{"min", 0, false}, {"max", 1, false}},
		build: func(p map[string]float64, src rand.Source) stats.UV {
			return distuv.Uniform{Min: p["min"], Max: p["max"], Src: src}
		},
	},
	"weibull": {
		params: []param{{"k", 1, true}, {"lambda", 1, true}},
		build: func(p map[string]float64, src rand.Source) stats.UV {
			return distuv.Weibull{K: p["k"], Lambda: p["lambda"], Src: src}
		},
	},
	"laplace": {
		params: []param{{"mu", 0, false}, {"scale", 1, true}},
		build: func(p map[string]float64, src rand.Source) stats.UV {
			return distuv.Laplace{Mu: p["mu"], Scale: p["scale"], Src: src}
		},
	},
	"gamma": {
		params: []param{{"alpha", 1, true}, {"beta", 1, true}},
		build: func(p map[string]float64, src rand.Source) stats.UV {
			return distuv.Gamma{Alpha: p["alpha"], Beta: p["beta"], Src: src}
		},
	},
	"beta": {
		params: []param{{"alpha", 1, true}, {"beta", 1, true}},
		build: func(p map[string]float64, src rand.Source) stats.UV {
			return distuv.Beta{Alpha: p["alpha"], Beta: p["beta"], Src: src}
		},
	},
}

// familyNames returns the supported distribution names, sorted.
func familyNames() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (cc ComponentConfig) build(src rand.Source) (stats.UV, error) {
	name := strings.ToLower(cc.Dist)
	fam, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("unknown distribution %q (want one of %s)", cc.Dist, strings.Join(familyNames(), ", "))
	}

	p := make(map[string]float64, len(fam.params))
	for _, pp := range fam.params {
		p[pp.name] = pp.def
	}
	for k, val := range cc.Params {
		k = strings.ToLower(k)
		if _, ok := p[k]; !ok {
			return nil, fmt.Errorf("%s has no parameter %q", name, k)
		}
		p[k] = val
	}
	for _, pp := range fam.params {
		val := p[pp.name]
		if math.IsNaN(val) || math.IsInf(val, 0) || (pp.positive && val <= 0) {
			return nil, fmt.Errorf("%s: bad %s %v", name, pp.name, val)
		}
	}
	if name == "uniform" && !(p["min"] < p["max"]) {
		return nil, fmt.Errorf("uniform: min %v must be less than max %v", p["min"], p["max"])
	}
	return fam.build(p, src), nil
}

// String formats cc for display, such as "normal{mu:0 sigma:1}".
func (cc ComponentConfig) String() string {
	name := strings.ToLower(cc.Dist)
	given := make(map[string]float64, len(cc.Params))
	for k, val := range cc.Params {
		given[strings.ToLower(k)] = val
	}
	var parts []string
	if fam, ok := families[name]; ok {
		for _, pp := range fam.params {
			val, ok := given[pp.name]
			if !ok {
				val = pp.def
			}
			parts = append(parts, fmt.Sprintf("%s:%g", pp.name, val))
		}
	}
	return name + "{" + strings.Join(parts, " ") + "}"
}
