package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/d21d3q/scisdh/internal/config"
	"gitlab.com/d21d3q/scisdh/pkg/scisdh"
)

type runOptions struct {
	decode scisdh.DecodeOptions
	prefix string
	format string
}

func newRootCmd(cfg config.Config) *cobra.Command {
	var (
		byteOrder = cfg.ByteOrder
		prefix    = cfg.PrintPrefix
		format    = cfg.OutputFormat
		logLevel  = cfg.LogLevel
	)
	cmd := &cobra.Command{
		Use:   "scisdh-decode [hex]",
		Short: "Decode science data packet headers",
		Long:  "scisdh-decode decodes the 16-byte science data header at the front of a pixel packet.",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			effective := config.Config{
				LogLevel:     logLevel,
				ByteOrder:    byteOrder,
				PrintPrefix:  prefix,
				OutputFormat: format,
			}
			if err := effective.Validate(); err != nil {
				return err
			}
			level, _ := logrus.ParseLevel(effective.LogLevel)
			logrus.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptions{
				decode: scisdh.DecodeOptions{ByteOrder: byteOrder},
				prefix: prefix,
				format: format,
			}
			ctx := cmd.Context()
			if len(args) == 0 {
				return runInteractive(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			}
			return runDecode(ctx, cmd.OutOrStdout(), opts, args[0])
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&byteOrder, "byte-order", byteOrder, "byte order of the pixel id and count fields (big|little)")
	flags.StringVar(&prefix, "prefix", prefix, "prefix for every line of text output")
	flags.StringVar(&format, "format", format, "output format (json|text)")
	flags.StringVar(&logLevel, "log-level", logLevel, "log level (trace|debug|info|warn|error)")
	return cmd
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	ctx := context.Background()
	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive(ctx context.Context, in io.Reader, out io.Writer, opts runOptions) error {
	scanner := bufio.NewScanner(in)
	logrus.Info("scisdh decode mode. Paste a hex header and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runDecode(ctx, out, opts, line); err != nil {
			logrus.WithError(err).Error("failed to decode header")
		}
	}
	return scanner.Err()
}

func runDecode(ctx context.Context, out io.Writer, opts runOptions, hex string) error {
	result, err := scisdh.DecodeHexWithOptions(ctx, hex, opts.decode)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields(result.Fields)).
		WithField("byte_order", result.ByteOrder).
		Debug("decoded science data header")
	if opts.format == config.FormatText {
		result.Print(out, opts.prefix)
		return nil
	}
	fmt.Fprintln(out, result.String())
	return nil
}
