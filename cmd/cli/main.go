package main

import (
	"fmt"
	"os"

	"resultdash/adapters/excel"
	"resultdash/domain/dataset"
	"resultdash/internal"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	file              string
	defaultCategory   string
	defaultDisability string
	verbose           bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "resultdash-cli",
		Short:         "Query an exam result spreadsheet from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultFile := os.Getenv("RESULTS_FILE")
	if defaultFile == "" {
		defaultFile = excel.DefaultExcelConfig().FilePath
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", defaultFile, "Result spreadsheet (.xlsx or .csv)")
	flags.StringVar(&opts.defaultCategory, "default-category", dataset.DefaultNormalization.Category, "Category for rows with a blank Comm cell")
	flags.StringVar(&opts.defaultDisability, "default-disability", dataset.DefaultNormalization.DisabilityStatus, "Status for rows with a blank PwBD cell")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log loader progress")

	rootCmd.AddCommand(
		newCategoriesCmd(opts),
		newFilterCmd(opts),
		newCountsCmd(opts),
		newMedianCmd(opts),
		newSummaryCmd(opts),
	)
	return rootCmd
}

func (o *rootOptions) load(cmd *cobra.Command) (*dataset.Dataset, error) {
	level := internal.LogLevelWarn
	if o.verbose {
		level = internal.LogLevelDebug
	}

	config := excel.DefaultExcelConfig()
	config.FilePath = o.file
	config.Defaults = dataset.Defaults{
		Category:         o.defaultCategory,
		DisabilityStatus: o.defaultDisability,
	}

	ds, err := excel.NewLoader(config, internal.NewLogger(level)).Load(cmd.Context(), o.file)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	return ds, nil
}
