package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/d21d3q/scisdh/internal/config"
)

func defaultConfig() config.Config {
	return config.Config{LogLevel: "info", ByteOrder: "big", OutputFormat: config.FormatJSON}
}

func execute(t *testing.T, cfg config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDecodeJSON(t *testing.T) {
	out, err := execute(t, defaultConfig(), "", "4B45504C45520001000004000000002000")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Equal(t, "big", decoded["byte_order"])
	require.EqualValues(t, 17, decoded["byte_count"])
}

func TestDecodeText(t *testing.T) {
	out, err := execute(t, defaultConfig(), "",
		"--format", "text", "--prefix", "# ", "--byte-order", "little",
		"0102030405060708 01000000 02000000")
	require.NoError(t, err)
	require.Equal(t, "# PhotometerConfigurationID: 01 02 03 04 05 06 07 08\n# firstPixelID: 1\n# numPixels: 2\n", out)
}

func TestDecodeUsesConfigDefaults(t *testing.T) {
	cfg := defaultConfig()
	cfg.OutputFormat = config.FormatText
	cfg.PrintPrefix = "sdh: "
	out, err := execute(t, cfg, "", "00000000000000000000000500000006")
	require.NoError(t, err)
	require.Contains(t, out, "sdh: firstPixelID: 5\n")
	require.Contains(t, out, "sdh: numPixels: 6\n")
}

func TestDecodeShortHeaderFails(t *testing.T) {
	_, err := execute(t, defaultConfig(), "", "01020304")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid length")
}

func TestInvalidFormatRejected(t *testing.T) {
	_, err := execute(t, defaultConfig(), "", "--format", "yaml", "00")
	require.ErrorContains(t, err, "invalid output format")
}

func TestInteractiveContinuesAfterError(t *testing.T) {
	stdin := "zz\n\n0000000000000000 00000001 00000001\n"
	out, err := execute(t, defaultConfig(), stdin, "--format", "text")
	require.NoError(t, err)
	require.Contains(t, out, "firstPixelID: 1\n")
	require.Contains(t, out, "numPixels: 1\n")
}

func TestInvalidByteOrderRejectedInteractive(t *testing.T) {
	stdin := "0000000000000000 00000001 00000001\n"
	out, err := execute(t, defaultConfig(), stdin, "--byte-order", "pdp", "--format", "text")
	require.ErrorContains(t, err, "unknown byte order")
	require.NotContains(t, out, "firstPixelID")
}

func TestFlagOverridesInvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.LogLevel = "chatty"
	cfg.ByteOrder = "pdp"
	out, err := execute(t, cfg, "",
		"--log-level", "warn", "--byte-order", "big", "--format", "text",
		"0000000000000000 00000002 00000003")
	require.NoError(t, err)
	require.Contains(t, out, "firstPixelID: 2\n")
}

func TestInvalidConfigWithoutOverrideFails(t *testing.T) {
	cfg := defaultConfig()
	cfg.LogLevel = "chatty"
	_, err := execute(t, cfg, "", "00000000000000000000000000000000")
	require.ErrorContains(t, err, "invalid log level")
}
