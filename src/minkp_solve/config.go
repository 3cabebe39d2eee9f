package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"min_knapsack/src/linprog/backend"
	"min_knapsack/src/minkp"
)

const envPrefix = "MINKP"

type Config struct {
	Backend     string
	Mode        string
	Epsilon     float64
	Strict      bool
	TimeLimit   time.Duration
	Jobs        int
	Greedy      bool
	Gap         bool
	Output      string
	MetricsFile string
	LogLevel    string
}

func defineFlags(f *pflag.FlagSet) {
	f.String("backend", backend.Default, fmt.Sprintf("solver backend, one of %v", backend.Names()))
	f.String("mode", "", "0|integer, 1|relaxed or 2|dual; replaces the trailing mode argument")
	f.Float64("epsilon", minkp.Epsilon, "threshold above which a variable counts as selected")
	f.Bool("strict", false, "fail when the returned selection does not satisfy the model")
	f.Duration("time-limit", 0, "time limit per solve, 0 for none")
	f.Int("jobs", 1, "number of instances solved concurrently")
	f.Bool("greedy", false, "also print the greedy upper bound")
	f.Bool("gap", false, "also solve the relaxation and the dual and print both objectives")
	f.String("output", "text", "report format: text or yaml")
	f.String("metrics-file", "", "write solve metrics to this file in Prometheus text format")
	f.String("log-level", "info", "log level: debug, info, warn or error")
	f.String("config", "", "YAML config file whose keys are the flag names")
}

// loadConfig merges flags, MINKP_* environment variables and the optional
// config file, in that order of precedence.
func loadConfig(v *viper.Viper, f *pflag.FlagSet) (*Config, error) {
	if err := v.BindPFlags(f); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %q: %w", file, err)
		}
	}

	cfg := &Config{
		Backend:     v.GetString("backend"),
		Mode:        v.GetString("mode"),
		Epsilon:     v.GetFloat64("epsilon"),
		Strict:      v.GetBool("strict"),
		TimeLimit:   v.GetDuration("time-limit"),
		Jobs:        v.GetInt("jobs"),
		Greedy:      v.GetBool("greedy"),
		Gap:         v.GetBool("gap"),
		Output:      v.GetString("output"),
		MetricsFile: v.GetString("metrics-file"),
		LogLevel:    v.GetString("log-level"),
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if !slices.Contains(backend.Names(), c.Backend) {
		return fmt.Errorf("unsupported solver backend %q (want one of %v)", c.Backend, backend.Names())
	}
	if c.Mode != "" {
		if _, err := minkp.ParseModeName(c.Mode); err != nil {
			return err
		}
	}
	if c.Epsilon <= 0 || c.Epsilon >= 0.5 {
		return fmt.Errorf("epsilon must be in (0, 0.5), got %v", c.Epsilon)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("negative time limit %v", c.TimeLimit)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.Output != "text" && c.Output != "yaml" {
		return fmt.Errorf("unsupported output format %q (want text or yaml)", c.Output)
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// splitArgs separates instance files from the trailing mode argument. When
// the mode comes from the configuration every argument is a file, and a
// trailing argument that reads as a mode without naming a file is a conflict.
func splitArgs(args []string, configured string) ([]string, minkp.Mode, error) {
	if configured != "" {
		mode, err := minkp.ParseModeName(configured)
		if err != nil {
			return nil, 0, err
		}
		if len(args) == 0 {
			return nil, 0, fmt.Errorf("must specify at least a path")
		}
		last := args[len(args)-1]
		if _, err := minkp.ParseModeName(last); err == nil {
			if _, err := os.Stat(last); err != nil {
				return nil, 0, fmt.Errorf("mode given both as --mode %q and as argument %q", configured, last)
			}
		}
		return args, mode, nil
	}

	if len(args) < 2 {
		return nil, 0, fmt.Errorf("must specify at least a path and a mode")
	}
	mode, err := minkp.ParseModeName(args[len(args)-1])
	if err != nil {
		return nil, 0, err
	}
	return args[:len(args)-1], mode, nil
}
