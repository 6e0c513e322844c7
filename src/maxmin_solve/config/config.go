// Package config loads the settings of a maxmin_solve run.
//
// Sources are layered, later ones winning:
//  1. built-in defaults
//  2. an optional YAML file
//  3. MAXMIN_* environment variables (MAXMIN_LOGGING_LEVEL -> logging.level)
//  4. command-line values
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"fair_review_assignment/src/maxmin_solve/maxmin"
)

const EnvPrefix = "MAXMIN_"

type Config struct {
	Dataset     string        `koanf:"dataset" validate:"required"`
	P           float64       `koanf:"p" validate:"gte=0,lte=1"`
	K           int           `koanf:"k" validate:"min=1"`
	L           int           `koanf:"l" validate:"min=1"`
	Seed        uint64        `koanf:"seed"`
	Sampling    string        `koanf:"sampling" validate:"oneof=exact parity"`
	Solver      string        `koanf:"solver" validate:"oneof=highs lpsolve simplex"`
	Output      string        `koanf:"output" validate:"required"`
	Tolerance   float64       `koanf:"tolerance" validate:"gt=0"`
	Bottlenecks int           `koanf:"bottlenecks" validate:"min=0"`
	Logging     LoggingConfig `koanf:"logging"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

func defaultConfig() *Config {
	return &Config{
		Sampling:  "exact",
		Solver:    "highs",
		Output:    "output.txt",
		Tolerance: 1e-6,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load merges the layers and validates the result. path may be empty;
// overrides maps koanf keys such as "p" or "logging.level" to values.
// Every failure is reported as maxmin.ErrInvalidConfiguration.
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("%w: loading defaults: %v", maxmin.ErrInvalidConfiguration, err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: config file: %v", maxmin.ErrInvalidConfiguration, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: config file %s: %v", maxmin.ErrInvalidConfiguration, path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", maxmin.ErrInvalidConfiguration, err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("%w: setting %s: %v", maxmin.ErrInvalidConfiguration, key, err)
		}
	}

	cfg := new(Config)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", maxmin.ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey turns MAXMIN_LOGGING_LEVEL into logging.level.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			msgs[i] = fmt.Sprintf("%s fails %q (got %v)", strings.ToLower(fe.Namespace()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %s", maxmin.ErrInvalidConfiguration, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %v", maxmin.ErrInvalidConfiguration, err)
}

// Params converts the run settings for maxmin.Run.
func (c *Config) Params() (maxmin.Params, error) {
	mode, err := maxmin.ParseSamplingMode(c.Sampling)
	if err != nil {
		return maxmin.Params{}, err
	}
	return maxmin.Params{
		P:         c.P,
		K:         c.K,
		L:         c.L,
		Sampling:  mode,
		Tolerance: c.Tolerance,
	}, nil
}
