// Package main provides the listing generator command-line tool.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"wheellister/internal/batch"
	"wheellister/internal/config"
	"wheellister/internal/formatter"
	"wheellister/internal/logger"
	"wheellister/internal/source"
	"wheellister/pkg/checksum"
)

const defaultConfigPath = "configs/lister.yaml"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lister", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configFile := fs.String("config", "", "Path to YAML configuration file (default "+defaultConfigPath+" if present)")
	outputDir := fs.String("output", "", "Directory for generated listings")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	delimiter := fs.String("delimiter", "", "CSV field delimiter")
	help := fs.Bool("help", false, "Show usage information")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		printUsage(fs, stdout)

		return 0
	}

	cfg, err := loadConfig(*configFile, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "❌ Failed to load config: %v\n", err)

		return 1
	}

	if envErr := cfg.ApplyEnv(); envErr != nil {
		fmt.Fprintf(stderr, "❌ %v\n", envErr)

		return 1
	}

	if *outputDir != "" {
		cfg.Lister.Output.Dir = *outputDir
	}

	if *logLevel != "" {
		cfg.Lister.Logging.Level = *logLevel
	}

	if *delimiter != "" {
		cfg.Lister.Input.Delimiter = *delimiter
	}

	if fs.NArg() > 0 {
		cfg.Lister.Input.File = fs.Arg(0)
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		fmt.Fprintf(stderr, "❌ Invalid configuration: %v\n", validateErr)

		return 1
	}

	delim, err := cfg.DelimiterRune()
	if err != nil {
		fmt.Fprintf(stderr, "❌ Invalid configuration: %v\n", err)

		return 1
	}

	log := logger.New(cfg.Lister.Logging.Level, stderr)
	log.Debug("Configuration loaded", "config", cfg.String())

	fmt.Fprintf(stdout, "Processing file: %s\n", cfg.Lister.Input.File)

	processor := batch.NewProcessor(cfg.Lister.Output.Dir, log)

	report, err := processor.ProcessFile(cfg.Lister.Input.File, source.Options{Delimiter: delim})
	if err != nil {
		fmt.Fprintf(stdout, "\nGenerated 0 descriptions in the '%s' directory\n", processor.OutputDir())

		return 1
	}

	if cfg.Lister.Report.ShowTable && len(report.Results) > 0 {
		fmt.Fprintln(stdout)
		printSummary(stdout, report)
	}

	fmt.Fprintf(stdout, "\nGenerated %d descriptions in the '%s' directory\n", report.Generated(), processor.OutputDir())

	if failed := len(report.Failures()); failed > 0 {
		fmt.Fprintf(stdout, "⚠️  Skipped %d rows\n", failed)
	}

	return 0
}

func loadConfig(path string, stdout io.Writer) (*config.Config, error) {
	if path == "" {
		if _, statErr := os.Stat(defaultConfigPath); statErr != nil {
			return config.Default(), nil
		}

		path = defaultConfigPath
	}

	fmt.Fprintf(stdout, "⚙️  Loading configuration from: %s\n", path)

	return config.LoadConfig(path)
}

func printSummary(w io.Writer, report *batch.Report) {
	rows := make([][]string, 0, len(report.Results))

	for _, res := range report.Results {
		if res.OK() {
			rows = append(rows, []string{
				strconv.Itoa(res.Index),
				"written",
				filepath.Base(res.Listing.FileName),
				checksum.Short(res.Listing.Checksum),
			})

			continue
		}

		rows = append(rows, []string{strconv.Itoa(res.Index), "failed", "", ""})
	}

	for _, line := range formatter.FormatTable([]string{"Row", "Status", "File", "SHA-256"}, rows) {
		fmt.Fprintln(w, line)
	}
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: lister [OPTIONS] [input.csv]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  lister ebay_vorlage_kompletträder.csv")
	fmt.Fprintln(w, "  lister -output listings -delimiter ';' export.csv")
}
