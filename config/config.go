// Package config loads the engine's tunable defaults: search depth and
// horizon, which evaluator to use, and an optional YAML file of
// OpennessMatthew weight overrides. Flags parse into a Config struct via
// spf13/pflag and spf13/viper; the weight-override file itself is read
// directly and decoded with gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/domino14/threesbot/eval"
)

// Config holds the engine's tunable defaults.
type Config struct {
	SearchDepth   int
	SearchHorizon int
	Evaluator     string
	WeightsFile   string
}

// Default returns the engine's out-of-the-box configuration.
func Default() Config {
	return Config{
		SearchDepth:   3,
		SearchHorizon: 2,
		Evaluator:     "OpennessMatthew",
	}
}

// Load parses args (typically os.Args[1:]) into a Config, layering flags
// over Default(). A parse error is a programmer/operator error and is
// returned synchronously rather than causing a later panic.
func Load(args []string) (Config, error) {
	cfg := Default()

	fs := pflag.NewFlagSet("threesbot", pflag.ContinueOnError)
	fs.IntVar(&cfg.SearchDepth, "search-depth", cfg.SearchDepth, "expectimax search depth (D)")
	fs.IntVar(&cfg.SearchHorizon, "search-horizon", cfg.SearchHorizon, "card-count horizon (C)")
	fs.StringVar(&cfg.Evaluator, "evaluator", cfg.Evaluator,
		"board evaluator: Zero, TotalScore, EmptySpaces, Openness, OpennessMatthew")
	fs.StringVar(&cfg.WeightsFile, "weights-file", cfg.WeightsFile,
		"optional YAML file of OpennessMatthew weight overrides")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parsing flags: %w", err)
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("config: binding flags: %w", err)
	}
	cfg.SearchDepth = v.GetInt("search-depth")
	cfg.SearchHorizon = v.GetInt("search-horizon")
	cfg.Evaluator = v.GetString("evaluator")
	cfg.WeightsFile = v.GetString("weights-file")

	return cfg, nil
}

// MatthewWeights loads the OpennessMatthew weight overrides from
// c.WeightsFile, or the spec-default weights if no file is configured.
func (c Config) MatthewWeights() (eval.MatthewWeights, error) {
	if c.WeightsFile == "" {
		return eval.DefaultMatthewWeights(), nil
	}
	data, err := os.ReadFile(c.WeightsFile)
	if err != nil {
		return eval.MatthewWeights{}, fmt.Errorf("config: reading weights file: %w", err)
	}
	weights := eval.DefaultMatthewWeights()
	if err := yaml.Unmarshal(data, &weights); err != nil {
		return eval.MatthewWeights{}, fmt.Errorf("config: parsing weights file: %w", err)
	}
	return weights, nil
}

// BuildEvaluator constructs the eval.Evaluator named by c.Evaluator.
func (c Config) BuildEvaluator() (eval.Evaluator, error) {
	switch c.Evaluator {
	case "Zero":
		return eval.Zero{}, nil
	case "TotalScore":
		return eval.TotalScoreEvaluator{}, nil
	case "EmptySpaces":
		return eval.EmptySpacesEvaluator{}, nil
	case "Openness":
		return eval.OpennessEvaluator{}, nil
	case "OpennessMatthew":
		weights, err := c.MatthewWeights()
		if err != nil {
			return nil, err
		}
		return eval.NewOpennessMatthewEvaluator(weights), nil
	default:
		return nil, fmt.Errorf("config: unknown evaluator %q", c.Evaluator)
	}
}
