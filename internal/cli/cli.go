package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/corona-scraper/internal/config"
	"github.com/pfrederiksen/corona-scraper/internal/logger"
	"github.com/pfrederiksen/corona-scraper/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// UsageLine is printed when no snapshot files are given
const UsageLine = "Usage: corona-scraper [flags] files..."

var (
	flagFormat   string
	flagLayout   string
	flagRules    string
	flagLogLevel string
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corona-scraper [flags] files...",
		Short: "Build case and recovery time series from archived county pages",
		Long: `A CLI tool that reads archived snapshots of a county's case-count page.
Each file name carries the snapshot time (e.g. 2020-03-28T14_05+01_00.html).
Counts are collected per location, synonymous total columns are merged,
unchanged snapshots are dropped, and the Cases and Recoveries tables are
written to stdout.

Settings can also come from CORONA_FORMAT, CORONA_LAYOUT, CORONA_RULES_FILE
and CORONA_LOG_LEVEL (or a .env file); flags take precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScrape,
	}

	cmd.Flags().StringVar(&flagFormat, "format", "csv", "Output format: csv or json")
	cmd.Flags().StringVar(&flagLayout, "layout", "auto", "Page layout: auto, tbody or nested")
	cmd.Flags().StringVar(&flagRules, "rules", "", "YAML file overriding the column rules")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "warn", "Log level for stderr: debug, info, warn or error")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging (same as --log-level debug)")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintln(out, UsageLine)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cmd, cfg)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	layout, err := scraper.ParseLayout(cfg.Layout)
	if err != nil {
		return err
	}

	// diagnostics are held back until every file parsed
	var diag bytes.Buffer
	metrics := logger.NewMetrics()
	sc := scraper.New(scraper.Options{
		Layout:         layout,
		NestedSelector: rules.NestedSelector,
		Prefixes:       rules.LocationPrefixes,
		Diagnostics:    &diag,
		Metrics:        metrics,
		Logger:         log,
	})

	log.Info("Parsing snapshots", logger.Fields{
		"files":  len(args),
		"layout": cfg.Layout,
		"rules":  cfg.RulesFile,
	})

	tables, err := sc.ParseFiles(args)
	if err != nil {
		return fmt.Errorf("reading snapshots: %w", err)
	}
	if _, err := diag.WriteTo(out); err != nil {
		return fmt.Errorf("writing diagnostics: %w", err)
	}

	result := BuildResult(tables, rules)
	for _, t := range result.Tables {
		metrics.DatesDropped.WithLabelValues(t.Name).Add(float64(len(t.Dropped)))
		log.Debug("Deduplicated table", logger.Fields{
			"table":   t.Name,
			"kept":    len(t.Table),
			"dropped": len(t.Dropped),
		})
	}

	if err := WriteOutput(out, result, OutputFormat(cfg.Format)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	summary, err := metrics.Summary()
	if err != nil {
		log.Error("Gathering run metrics failed", nil, err)
		return nil
	}
	summary["locations"] = len(result.Locations)
	log.Info("Run summary", summary)

	return nil
}

// applyFlags overrides environment settings with explicitly set flags
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = flagFormat
	}
	if flags.Changed("layout") {
		cfg.Layout = flagLayout
	}
	if flags.Changed("rules") {
		cfg.RulesFile = flagRules
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
