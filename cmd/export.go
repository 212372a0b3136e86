package cmd

import (
	"errors"
	"fmt"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/internal/parquet"
	"github.com/spf13/cobra"
)

// exportCmd exports stored results to a Parquet file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored results to Parquet for analytics",
	Long: `Export all stored assessment results to Parquet format.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export all stored results
  kinetrace export --store-backend sqlite --output-file results.parquet

  # Query with DuckDB
  duckdb -c "SELECT test_kind, avg(percentile) FROM read_parquet('results.parquet') GROUP BY 1"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExport(); err != nil {
			contract.LogFatal("Failed to export results", err)
		}
	},
}

func runExport() error {
	defer func() { _ = resultStore.Close() }()

	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for export")
	}

	records, err := resultStore.List(contract.MaxHistoryLimit)
	if err != nil {
		return err
	}

	rows := parquet.ConvertResultRecords(records)
	if err := parquet.WriteResultsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}

	fmt.Printf("Exported %d results to: %s\n", len(rows), cfg.OutputFile)
	return nil
}
