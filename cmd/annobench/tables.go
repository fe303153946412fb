package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/su1ph3r/annobench/internal/pipeline"
	"github.com/su1ph3r/annobench/internal/reporter"
	"github.com/su1ph3r/annobench/pkg/types"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Build the benchmark tables",
	Long: `Load benchmark results, GeAnno exports and AUC files, run the analyses
and write one table per analysis in the configured formats.`,
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().String("bench-dir", "", "Directory of per-run benchmark CSVs")
	tablesCmd.Flags().String("geanno-dir", "", "Directory of GeAnno export CSVs")
	tablesCmd.Flags().String("geanno-auc", "", "GeAnno AUC export CSV")
	tablesCmd.Flags().String("tables-file", "", "YAML file overriding label and genome size tables")
	tablesCmd.Flags().Bool("skip-invalid", false, "Skip result files that cannot be decoded instead of failing")
	tablesCmd.Flags().String("null-policy", "", "Null metric policy (propagate, zero_fill)")

	tablesCmd.Flags().StringP("output", "o", "", "Output directory")
	tablesCmd.Flags().StringSliceP("format", "f", nil, "Output formats (csv, json, markdown, text)")
	tablesCmd.Flags().Int("decimals", -1, "Decimals for rendered numbers")
	tablesCmd.Flags().Bool("stdout", false, "Print the report as text instead of writing files")

	tablesCmd.Flags().StringSlice("only", nil, "Run only the named analyses")
	tablesCmd.Flags().Bool("list", false, "List the available analyses and exit")
}

func runTables(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, name := range pipeline.AnalysisNames() {
			fmt.Println(name)
		}
		return nil
	}

	updateTablesConfigFromFlags(cmd)
	if err := types.ValidateConfig(config); err != nil {
		return err
	}

	printInfo("Benchmark results: %s", config.Input.BenchDir)
	if config.Input.GeAnnoDir != "" {
		printInfo("GeAnno results: %s", config.Input.GeAnnoDir)
	}

	only, _ := cmd.Flags().GetStringSlice("only")
	if err := checkAnalysisNames(only); err != nil {
		return err
	}

	report, err := pipeline.Build(config, only...)
	if err != nil {
		return err
	}
	printSuccess("Built %d tables", len(report.Tables))
	printDiagnostics(report)

	options := reporter.ReportOptions{
		Title:    config.Output.Title,
		Decimals: config.Output.Decimals,
		Verbose:  config.Output.Verbose,
	}

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		noColor, _ := cmd.Flags().GetBool("no-color")
		options.NoColor = noColor || !config.Output.Color
		return reporter.NewTextReporter(options).Write(report, os.Stdout)
	}

	mr, err := reporter.NewMultiReporter(config.Output.Formats, options)
	if err != nil {
		return err
	}
	written, err := mr.WriteAll(report, config.Output.Dir)
	if err != nil {
		return err
	}
	printSuccess("Wrote %d files to %s", len(written), config.Output.Dir)
	return nil
}

func updateTablesConfigFromFlags(cmd *cobra.Command) {
	if v, _ := cmd.Flags().GetString("bench-dir"); v != "" {
		config.Input.BenchDir = v
	}
	if v, _ := cmd.Flags().GetString("geanno-dir"); v != "" {
		config.Input.GeAnnoDir = v
	}
	if v, _ := cmd.Flags().GetString("geanno-auc"); v != "" {
		config.Input.GeAnnoAUCFile = v
	}
	if v, _ := cmd.Flags().GetString("tables-file"); v != "" {
		config.Input.TablesFile = v
	}
	if v, _ := cmd.Flags().GetBool("skip-invalid"); v {
		config.Input.SkipInvalid = true
	}
	if v, _ := cmd.Flags().GetString("null-policy"); v != "" {
		config.Normalize.NullPolicy = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		config.Output.Dir = v
	}
	if v, _ := cmd.Flags().GetStringSlice("format"); len(v) > 0 {
		config.Output.Formats = v
	}
	if v, _ := cmd.Flags().GetInt("decimals"); v >= 0 {
		config.Output.Decimals = v
	}
}

func checkAnalysisNames(names []string) error {
	known := make(map[string]bool)
	for _, n := range pipeline.AnalysisNames() {
		known[n] = true
	}
	var unknown []string
	for _, n := range names {
		if !known[n] {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown analyses: %s (see --list)", strings.Join(unknown, ", "))
	}
	return nil
}

func printDiagnostics(report *types.Report) {
	for _, d := range report.Diagnostics {
		switch d.Kind {
		case types.DiagEmptyResult, types.DiagSkippedFile:
			printWarning("%s: %s", d.Subject, d.Message)
		default:
			if config.Output.Verbose {
				printInfo("%s: %s", d.Subject, d.Message)
			}
		}
	}
}
