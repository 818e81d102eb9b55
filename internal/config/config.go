package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"gitlab.com/d21d3q/scisdh/internal/options"
)

// Output formats understood by the decoder CLI.
const (
	FormatJSON = "json"
	FormatText = "text"
)

type Config struct {
	// LogLevel is the level of logs to output (trace|debug|info|warn|error)
	LogLevel string `env:"SCISDH_LOG_LEVEL" default:"info"`

	// ByteOrder is the byte order of the pixel id and count fields (big|little)
	ByteOrder string `env:"SCISDH_BYTE_ORDER" default:"big"`

	// PrintPrefix is prepended to every line of text output
	PrintPrefix string `env:"SCISDH_PRINT_PREFIX" default:""`

	// OutputFormat selects how decoded headers are rendered (json|text)
	OutputFormat string `env:"SCISDH_OUTPUT_FORMAT" default:"json"`
}

// Load reads an optional .env file and then the process environment. The
// result is not validated; callers apply flag overrides and then Validate.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logrus.Debug("no .env file found (continuing with system environment)")
	}
	return ParseConfigFromEnv()
}

func ParseConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{
		DefaultValueTagName: "default",
	})
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the decoder cannot act on.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if _, err := options.ParseByteOrder(c.ByteOrder); err != nil {
		return err
	}
	switch c.OutputFormat {
	case FormatJSON, FormatText:
	default:
		return fmt.Errorf("invalid output format %q (want %s or %s)", c.OutputFormat, FormatJSON, FormatText)
	}
	return nil
}
