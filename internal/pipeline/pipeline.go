// Package pipeline runs the load, build, render and write steps for one report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tamcore/snyk-to-html/internal/render"
	"github.com/tamcore/snyk-to-html/internal/report"
	"github.com/tamcore/snyk-to-html/internal/snyk"
	"github.com/tamcore/snyk-to-html/internal/writer"
	"go.uber.org/zap"
)

// Options configures one pipeline run
type Options struct {
	Input         string
	Output        string
	Template      string
	Format        string
	Summary       bool
	Remediation   bool
	CVSSThreshold float64
	Exclude       []string

	// Stdin and Stdout default to the process streams
	Stdin  io.Reader
	Stdout io.Writer

	// Partials overrides the built-in template partials
	Partials render.Partials
	// Now overrides the report timestamp
	Now func() time.Time
}

// Outcome describes what a run produced. Generated is false when the input
// was malformed; in that case nothing is written and no error is returned.
type Outcome struct {
	Generated  bool
	OutputPath string
}

// Run loads the input, renders the report and writes it out
func Run(ctx context.Context, logger *zap.Logger, opts Options) (Outcome, error) {
	out, ok, err := RenderString(ctx, logger, opts)
	if err != nil || !ok {
		return Outcome{}, err
	}

	w := writer.New(opts.Output, opts.Stdout)
	if err := w.Write([]byte(out)); err != nil {
		return Outcome{}, err
	}

	return Outcome{Generated: true, OutputPath: w.Path()}, nil
}

// RenderString loads the input and returns the rendered report to the caller.
// ok is false when the input was malformed.
func RenderString(ctx context.Context, logger *zap.Logger, opts Options) (string, bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}

	scans, err := snyk.LoadPath(opts.Input, opts.Stdin, opts.Exclude...)
	if errors.Is(err, snyk.ErrMalformedInput) {
		// Malformed input produces no report and no user-visible error.
		logger.Debug("Skipping report for malformed input", zap.String("input", opts.Input), zap.Error(err))
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	logger.Debug("Loaded scan results", zap.Int("scans", len(scans)))

	if opts.CVSSThreshold > 0 {
		for i := range scans {
			scans[i] = snyk.FilterByCVSS(scans[i], opts.CVSSThreshold)
		}
		logger.Debug("Filtered by CVSS threshold", zap.Float64("threshold", opts.CVSSThreshold))
	}

	vm := report.Build(scans, report.Options{
		Remediation: opts.Remediation,
		SummaryOnly: opts.Summary,
		Now:         opts.Now,
	})
	logger.Debug("Built view model",
		zap.Int("paths", vm.PathCount),
		zap.Int("unique", vm.UniqueCount),
		zap.Bool("remediationAvailable", vm.RemediationView != nil && vm.RemediationView.Available),
	)

	r, err := render.New(opts.Format, render.Options{
		Template:    opts.Template,
		Remediation: opts.Remediation,
		Partials:    opts.Partials,
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := render.RenderString(r, vm)
	if err != nil {
		return "", false, err
	}
	logger.Debug("Rendered report", zap.String("format", opts.Format), zap.Int("bytes", len(out)))

	return out, true, nil
}
