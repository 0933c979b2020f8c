// Command repolens analyzes a repository's source structure: frameworks in
// use, API endpoints, state mutations, event handlers, and the inter-file
// dependency graph.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repolens/core/pkg/analysis"
	"github.com/repolens/core/pkg/analysis/catalog"
	"github.com/repolens/core/pkg/report"
	"github.com/repolens/core/pkg/scanner"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "repolens:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "repolens",
		Short:         "Structural analysis for multi-language repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a repository and emit a structural report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath := "."
			if len(args) == 1 {
				repoPath = args[0]
			}
			return runAnalyze(cmd.Context(), v, repoPath)
		},
	}

	flags := cmd.Flags()
	flags.String("format", "text", "output format: text or json")
	flags.String("output", "", "write the report to a file instead of stdout")
	flags.Int("workers", 0, "concurrent file readers (0 = GOMAXPROCS)")
	flags.Int("max-depth", 0, "max circular-dependency search depth")
	flags.StringSlice("exclude", nil, "directory names to skip")
	flags.StringSlice("include", nil, "glob patterns to restrict analyzed files")
	flags.Bool("no-frameworks", false, "omit framework confidences from the summary")
	flags.String("catalog", "", "YAML file with pattern catalog overrides")
	flags.Duration("timeout", 0, "scan timeout")
	flags.BoolP("verbose", "v", false, "verbose logging")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("REPOLENS")
	v.AutomaticEnv()
	v.SetConfigName(".repolens")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn("config file ignored", "err", err)
		}
	}

	return cmd
}

func runAnalyze(ctx context.Context, v *viper.Viper, repoPath string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if v.GetBool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}

	cat, err := loadCatalog(v.GetString("catalog"))
	if err != nil {
		return err
	}

	startTime := time.Now()

	sc := scanner.New(
		scanner.WithWorkers(v.GetInt("workers")),
		scanner.WithTimeout(v.GetDuration("timeout")),
		scanner.WithExcludePatterns(v.GetStringSlice("exclude")),
		scanner.WithIncludePatterns(v.GetStringSlice("include")),
	)

	logger.Debug("scanning", "path", repoPath)
	scanResult, err := sc.Scan(ctx, repoPath)
	if err != nil {
		return fmt.Errorf("scan %s: %w", repoPath, err)
	}
	for _, scanErr := range scanResult.Errors {
		logger.Debug("scan issue", "err", scanErr)
	}
	logger.Debug("scan complete",
		"files", scanResult.Stats.FilesScanned,
		"parsed", scanResult.Stats.FilesParsed,
		"failed", scanResult.Stats.FilesFailed,
		"duration", scanResult.Stats.Duration,
	)

	agg := analysis.New(
		analysis.WithCatalog(cat),
		analysis.WithMaxCircularDepth(v.GetInt("max-depth")),
		analysis.WithFrameworks(!v.GetBool("no-frameworks")),
		analysis.WithRepoPath(repoPath),
	)
	result := agg.AggregateSafe(ctx, scanResult.Files, startTime)
	if result.Metadata.Error != "" {
		logger.Error("aggregation failed", "err", result.Metadata.Error)
	}

	out := os.Stdout
	if path := v.GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch v.GetString("format") {
	case "json":
		return report.WriteJSON(out, &result, out == os.Stdout)
	case "text":
		return report.WriteText(out, &result)
	default:
		return fmt.Errorf("unknown format %q", v.GetString("format"))
	}
}

func loadCatalog(overridePath string) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if overridePath == "" {
		return cat, nil
	}

	data, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("read catalog overrides: %w", err)
	}
	overrides, err := catalog.ParseOverrides(data)
	if err != nil {
		return nil, err
	}
	return cat.ApplyOverrides(overrides)
}
