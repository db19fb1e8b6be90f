package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dupscan/internal/report"
	"dupscan/internal/scan"
	"dupscan/internal/walk"
)

const (
	flagMinLines    = "min-lines"
	flagReport      = "report"
	flagExclude     = "exclude"
	flagExt         = "ext"
	flagFormat      = "format"
	flagTop         = "top"
	flagWorkers     = "workers"
	flagQuiet       = "quiet"
	flagGitHubLevel = "github-level"

	envPrefix      = "DUPSCAN"
	configName     = ".dupscan"
	defaultReport  = "duplication_report.txt"
	defaultFormat  = "text"
	defaultTopN    = 3
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dupscan [path]",
		Short: "detect duplicated code blocks in a source tree",
		Long: `dupscan scans a source tree for textually duplicated code blocks.

Lines are normalized (whitespace collapsed, blank and comment-only lines
dropped) before comparison, so indentation and comments never hide a
duplicate. Matching blocks are merged into maximal spans and written to a
report file; a styled summary goes to the terminal.`,
		Example: `  # Scan the current directory with defaults
  dupscan

  # Only Python files, blocks of 10+ lines, custom report path
  dupscan ./src --ext .py -m 10 -r dup.txt

  # Machine-readable output, skipping vendored code
  dupscan . --format json -e vendor -e '*_gen.go'`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runScan,
	}

	flags := cmd.Flags()
	flags.IntP(flagMinLines, "m", scan.DefaultMinLines, "minimum block size in normalized lines")
	flags.StringP(flagReport, "r", defaultReport, "report destination path")
	flags.StringSliceP(flagExclude, "e", nil, "exclude files or directories matching pattern (repeatable)")
	flags.StringSlice(flagExt, nil, "restrict scan to these file extensions (repeatable)")
	flags.String(flagFormat, defaultFormat, "report format: text, json, yaml, or github")
	flags.Int(flagTop, defaultTopN, "groups to quote in the terminal detail view (0 disables)")
	flags.Int(flagWorkers, 0, "parallel workers (0 = one per CPU)")
	flags.BoolP(flagQuiet, "q", false, "suppress terminal output")
	flags.String(flagGitHubLevel, "warning", "annotation level for --format github")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	v, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}

	minLines := v.GetInt(flagMinLines)
	if minLines < 1 {
		return fmt.Errorf("%w (got %d)", scan.ErrMinLines, minLines)
	}
	format := v.GetString(flagFormat)
	switch format {
	case "text", "json", "yaml", "github":
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
	quiet := v.GetBool(flagQuiet)

	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("scan path: %w", err)
	}

	// The report destination is part of the configuration: fail before
	// scanning when it cannot be written.
	var dest *os.File
	if format != "github" {
		dest, err = os.Create(v.GetString(flagReport))
		if err != nil {
			return fmt.Errorf("report destination: %w", err)
		}
		defer dest.Close()
	}

	logger := newLogger(quiet)
	defer logger.Sync()

	files, err := walk.Discover(root, v.GetStringSlice(flagExt), v.GetStringSlice(flagExclude))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	logger.Info("scanning", zap.String("path", root), zap.Int("files", len(files)), zap.Int("min_lines", minLines))

	scanner, err := scan.New(scan.Options{
		MinLines: minLines,
		Workers:  v.GetInt(flagWorkers),
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	res, err := scanner.Run(cmd.Context(), files)
	if err != nil {
		return err
	}

	if !quiet {
		if err := report.NewTerminal(cmd.OutOrStdout(), v.GetInt(flagTop)).Write(res); err != nil {
			return err
		}
	}

	var reporter report.Reporter
	switch format {
	case "json":
		reporter = report.JSON{Out: dest}
	case "yaml":
		reporter = report.YAML{Out: dest}
	case "github":
		reporter = report.GitHub{Out: cmd.OutOrStdout(), Level: v.GetString(flagGitHubLevel)}
	default:
		reporter = report.Text{Out: dest}
	}
	if err := reporter.Write(res); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if dest != nil && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to: %s\n", dest.Name())
	}
	return nil
}

// loadConfig binds flags, DUPSCAN_* environment variables, and an optional
// .dupscan.yaml in the scan root, in that precedence order.
func loadConfig(cmd *cobra.Command, root string) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(root)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// newLogger builds a console logger for scan progress and skip warnings.
func newLogger(quiet bool) *zap.Logger {
	if quiet {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.TimeKey = ""
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
