package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "big", cfg.ByteOrder)
	require.Equal(t, "", cfg.PrintPrefix)
	require.Equal(t, FormatJSON, cfg.OutputFormat)
}

func TestParseConfigFromEnv(t *testing.T) {
	t.Setenv("SCISDH_LOG_LEVEL", "debug")
	t.Setenv("SCISDH_BYTE_ORDER", "little")
	t.Setenv("SCISDH_PRINT_PREFIX", "sdh> ")
	t.Setenv("SCISDH_OUTPUT_FORMAT", "text")
	cfg, err := ParseConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, Config{
		LogLevel:     "debug",
		ByteOrder:    "little",
		PrintPrefix:  "sdh> ",
		OutputFormat: FormatText,
	}, cfg)
}

func TestParseConfigKeepsInvalidForOverride(t *testing.T) {
	t.Setenv("SCISDH_LOG_LEVEL", "chatty")
	cfg, err := ParseConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, "chatty", cfg.LogLevel)
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsInvalid(t *testing.T) {
	valid := Config{LogLevel: "info", ByteOrder: "big", OutputFormat: FormatJSON}
	require.NoError(t, valid.Validate())

	cases := map[string]func(*Config){
		"chatty": func(c *Config) { c.LogLevel = "chatty" },
		"middle": func(c *Config) { c.ByteOrder = "middle" },
		"xml":    func(c *Config) { c.OutputFormat = "xml" },
	}
	for value, mutate := range cases {
		t.Run(value, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), value)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("SCISDH_OUTPUT_FORMAT", "")
	require.NoError(t, os.Unsetenv("SCISDH_OUTPUT_FORMAT"))
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SCISDH_OUTPUT_FORMAT=text\n"), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, FormatText, cfg.OutputFormat)
	require.NoError(t, os.Unsetenv("SCISDH_OUTPUT_FORMAT"))
}

func TestLoadMissingEnvFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
}
