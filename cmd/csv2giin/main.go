package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openceo2025/giindb3d/giin"
	"github.com/openceo2025/giindb3d/internal/app"
)

type cliOptions struct {
	configPath string
	encoding   string
	indent     int
	verbose    bool
}

func main() {
	cmd := newRootCmd(os.Stdout, app.NewDialogPicker())
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "csv2giin: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer, picker app.Picker) *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:   "csv2giin [input.csv] [output.json]",
		Short: "Convert candidate CSV data to giin card JSON",
		Long: `csv2giin validates a candidate CSV file and converts it to the card tree
used by the giin browser. Missing paths are asked for with file dialogs.
Nothing is written unless every row validates.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, picker, args)
		},
	}
	root.SetOut(stdout)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to the config file (default: ./"+giin.DefaultConfigFile+" when present)")
	flags.StringVar(&opts.encoding, "encoding", "", "Input encoding: utf-8 or shift_jis (overrides config)")
	flags.IntVar(&opts.indent, "indent", 0, "JSON indentation width (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newValidateCmd(opts),
		newDiffCmd(opts),
		newInitConfigCmd(),
	)
	return root
}

func newValidateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input.csv>",
		Short: "Validate a candidate CSV file without writing output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			_, err = conv.Validate(cmd.Context(), args[0])
			return err
		},
	}
}

func newDiffCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <input.csv> <existing.json>",
		Short: "Show how a rebuilt tree differs from an existing JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			patch, err := conv.Diff(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			giin.PrintPatch(cmd.OutOrStdout(), patch)
			return nil
		},
	}
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the default config file unless it already exists",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := giin.DefaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			created, err := giin.EnsureConfigFile(path)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Config %s already exists\n", path)
			}
			return nil
		},
	}
}

func runConvert(cmd *cobra.Command, opts *cliOptions, picker app.Picker, args []string) error {
	conv, logger, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx := cmd.Context()
	sel := app.Selection{}
	if len(args) > 0 {
		sel.Input = args[0]
	}
	if len(args) > 1 {
		sel.Output = args[1]
	}
	if sel.Input != "" && sel.Output != "" {
		_, err := conv.Convert(ctx, sel.Input, sel.Output)
		return err
	}

	var res *giin.Result
	sel, err = picker.Pick(ctx, sel, func(input string) error {
		built, err := conv.Build(ctx, input)
		res = built
		return err
	})
	if err != nil {
		if errors.Is(err, app.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "File selection cancelled")
		}
		return err
	}
	if res == nil || res.Input != sel.Input {
		if res, err = conv.Build(ctx, sel.Input); err != nil {
			return err
		}
	}
	return conv.Write(res, sel.Output)
}

func setup(cmd *cobra.Command, opts *cliOptions) (*giin.Converter, *zap.Logger, error) {
	cfg, err := giin.LoadConfig(opts.configPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}
	if cmd.Flags().Changed("encoding") {
		cfg.Encoding = opts.encoding
	}
	if cmd.Flags().Changed("indent") {
		cfg.Indent = opts.indent
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	conv, err := giin.NewConverter(cfg, logger, cmd.OutOrStdout())
	if err != nil {
		_ = logger.Sync()
		return nil, nil, errors.Wrap(err, "init converter")
	}
	return conv, logger, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "parse log level %q", level)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}
