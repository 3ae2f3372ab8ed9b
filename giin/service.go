package giin

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Converter runs the validate → normalize → build → write pipeline.
type Converter struct {
	cfg       Config
	validator *Validator
	builder   *Builder
	logger    *zap.Logger
	out       io.Writer
}

// Result carries everything produced from one input file.
type Result struct {
	Input      string
	Report     *Report
	Candidates []Candidate
	Tree       *Tree
}

// NewConverter constructs a converter. Human-readable progress lines go to
// out; structured logs go to logger. Both may be nil.
func NewConverter(cfg Config, logger *zap.Logger, out io.Writer) (*Converter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	return &Converter{
		cfg:       cfg,
		validator: NewValidator(cfg),
		builder:   NewBuilder(logger),
		logger:    logger,
		out:       out,
	}, nil
}

// Config returns the effective configuration.
func (c *Converter) Config() Config {
	return c.cfg
}

// Validate checks the input file and prints the report without building output.
func (c *Converter) Validate(ctx context.Context, input string) (*Report, error) {
	report, _, err := c.validate(ctx, input)
	if report != nil {
		report.Print(c.out)
	}
	return report, err
}

// Build validates and transforms the input file. Any header or row error
// aborts before a tree is built.
func (c *Converter) Build(ctx context.Context, input string) (*Result, error) {
	start := time.Now()
	report, table, err := c.validate(ctx, input)
	if report != nil {
		report.Print(c.out)
	}
	if err != nil {
		if report != nil {
			fmt.Fprintln(c.out, "Aborting JSON output due to validation errors")
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := NewCandidates(report.Layout, table.Rows)
	tree, diags := c.builder.Build(candidates)
	report.Warnings = diags
	report.PrintWarnings(c.out)
	if missing := tree.Dangling(); len(missing) > 0 {
		c.logger.Error("tree has dangling members", zap.String("input", input), zap.Strings("members", missing))
		fmt.Fprintln(c.out, "Aborting JSON output due to validation errors")
		return nil, errors.Wrap(ErrDangling, strings.Join(missing, ", "))
	}

	c.logger.Info("conversion built",
		zap.String("input", input),
		zap.String("layout", report.Layout.String()),
		zap.Int("rows", report.Rows),
		zap.Int("entries", tree.Len()),
		zap.Int("warnings", len(diags)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &Result{Input: input, Report: report, Candidates: candidates, Tree: tree}, nil
}

// Write serializes a built result to output.
func (c *Converter) Write(res *Result, output string) error {
	if res == nil || res.Tree == nil {
		return errors.New("nothing to write")
	}
	if err := WriteTree(output, res.Tree, c.cfg.Indent); err != nil {
		return errors.Wrapf(err, "write %s", output)
	}
	fmt.Fprintf(c.out, "JSON written to %s\n", output)
	c.logger.Info("json written", zap.String("output", output), zap.Int("entries", res.Tree.Len()))
	return nil
}

// Convert builds input and writes it to output. Nothing is written unless
// the whole file validates.
func (c *Converter) Convert(ctx context.Context, input, output string) (*Result, error) {
	res, err := c.Build(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.Write(res, output); err != nil {
		return nil, err
	}
	return res, nil
}

// validate returns a nil report only when the file could not be read at all.
func (c *Converter) validate(ctx context.Context, input string) (*Report, *Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	table, err := OpenTable(input, c.cfg.Encoding)
	if err != nil {
		return nil, nil, err
	}
	report := &Report{Rows: len(table.Rows)}
	layout, err := DetectLayout(table.Header)
	if err != nil {
		var headerErr *HeaderError
		if errors.As(err, &headerErr) {
			report.HeaderErr = headerErr
		}
		c.logger.Warn("header rejected", zap.String("input", input), zap.Strings("found", table.Header))
		return report, nil, err
	}
	report.Layout = layout
	report.Errors = c.validator.ValidateRows(layout, table.Rows)
	c.logger.Debug("rows validated",
		zap.String("input", input),
		zap.Int("rows", len(table.Rows)),
		zap.Int("errorRows", len(report.Errors)),
	)
	if len(report.Errors) > 0 {
		return report, nil, &ValidationError{Report: report}
	}
	return report, table, nil
}
