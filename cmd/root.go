package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tamcore/snyk-to-html/internal/config"
	"github.com/tamcore/snyk-to-html/internal/observability"
	"github.com/tamcore/snyk-to-html/internal/pipeline"
)

// NewRootCmd builds the snyk-to-html command around its own Viper instance
func NewRootCmd(v *viper.Viper, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "snyk-to-html",
		Short: "Convert Snyk test results into an HTML report",
		Long: `snyk-to-html reads the JSON output of 'snyk test --json' and renders it
as a self-contained HTML report.

Input is read from a file, from every *.json report under a directory, or
from stdin. Vulnerabilities are listed by descending severity. Use -s for a
summary without the long-form descriptions and -a to include actionable
remediation advice when the scan carries it.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile, stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, v, stdin, stdout, stderr)
		},
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.snyk-to-html.yaml)")
	flags.StringP("input", "i", "-", "input file or directory of Snyk JSON reports, '-' for stdin")
	flags.StringP("output", "o", "", "output file (default is stdout)")
	flags.StringP("template", "t", "", "template set (test-report, remediation-report) or path to a custom template")
	flags.BoolP("summary", "s", false, "generate a summary without vulnerability details")
	flags.BoolP("actionable-remediation", "a", false, "include actionable remediation advice")
	flags.BoolP("debug", "d", false, "enable debug logging")
	flags.String("format", "html", "output format: html, text or cyclonedx")
	flags.Float64("cvss-threshold", 0, "minimum CVSS score to include (0 includes all)")
	flags.StringSlice("exclude", nil, "glob patterns of reports to skip when input is a directory")

	// Bind flags to Viper
	for _, name := range []string{
		"input", "output", "template", "summary", "actionable-remediation",
		"debug", "format", "cvss-threshold", "exclude",
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	return cmd
}

// Execute runs the root command against the process streams
func Execute() error {
	return NewRootCmd(viper.New(), os.Stdin, os.Stdout, os.Stderr).Execute()
}

func initConfig(v *viper.Viper, cfgFile string, stderr io.Writer) error {
	config.SetupViper(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		return nil
	}

	fmt.Fprintln(stderr, "Using config file:", v.ConfigFileUsed())
	return nil
}

func runReport(cmd *cobra.Command, v *viper.Viper, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Get(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.NewLogger(cfg.Log, observability.Sync(stderr))
	defer func() { _ = logger.Sync() }()

	outcome, err := pipeline.Run(cmd.Context(), logger, pipeline.Options{
		Input:         cfg.Input,
		Output:        cfg.Output,
		Template:      cfg.Template,
		Format:        cfg.Format,
		Summary:       cfg.Summary,
		Remediation:   cfg.Remediation,
		CVSSThreshold: cfg.CVSSThreshold,
		Exclude:       cfg.Exclude,
		Stdin:         stdin,
		Stdout:        stdout,
	})
	if err != nil {
		return err
	}

	if !outcome.Generated {
		logger.Debug("No report generated")
	}
	return nil
}
