// Package parquet provides data structures and functions for exporting
// kinetrace assessment history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/parquet-go/parquet-go"
)

// ResultRow represents one stored assessment summary.
// This struct maps to the kinetrace_results database table.
type ResultRow struct {
	// ResultID is the unique identifier for this stored result
	ResultID int64 `parquet:"result_id,snappy"`

	// RecordedAt is the unix timestamp the result was stored
	RecordedAt int64 `parquet:"recorded_at,snappy"`

	// TestKind is the fitness test that was assessed
	TestKind string `parquet:"test_kind,snappy"`

	// Repetitions is the counted repetitions for cyclic tests
	Repetitions int32 `parquet:"repetitions,snappy"`

	// MetricName labels the single-event metric (nullable)
	MetricName *string `parquet:"metric_name,optional,snappy"`

	// MetricValue is the single-event metric value
	MetricValue float64 `parquet:"metric_value,snappy"`

	// Quality is the overall movement-quality score in [0,1]
	Quality float64 `parquet:"quality,snappy"`

	// Suspicion is the integrity suspicion score in [0,1]
	Suspicion float64 `parquet:"suspicion,snappy"`

	// Percentile is the benchmarked population percentile
	Percentile float64 `parquet:"percentile,snappy"`

	// Rating is the benchmarked rating tier
	Rating string `parquet:"rating,snappy"`

	// Status records how the analysis completed
	Status string `parquet:"status,snappy"`
}

// ConvertResultRecords converts store records to Parquet rows.
func ConvertResultRecords(records []contract.ResultRecord) []ResultRow {
	rows := make([]ResultRow, 0, len(records))
	for _, rec := range records {
		row := ResultRow{
			ResultID:    rec.ID,
			RecordedAt:  rec.RecordedAt,
			TestKind:    string(rec.TestKind),
			Repetitions: int32(rec.Repetitions),
			MetricValue: rec.MetricValue,
			Quality:     rec.Quality,
			Suspicion:   rec.Suspicion,
			Percentile:  rec.Percentile,
			Rating:      string(rec.Rating),
			Status:      string(rec.Status),
		}
		if rec.MetricName != "" {
			name := rec.MetricName
			row.MetricName = &name
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteResultsParquet writes a slice of ResultRow structs to a Parquet file.
func WriteResultsParquet(data []ResultRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ResultRow struct tags
	writer := parquet.NewGenericWriter[ResultRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ReadResultsParquet reads ResultRow records back from a Parquet file.
func ReadResultsParquet(inputPath string) ([]ResultRow, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[ResultRow](file)
	defer func() { _ = reader.Close() }()

	rows := make([]ResultRow, 0, int(reader.NumRows()))
	buf := make([]ResultRow, 64)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if err != nil {
			break
		}
	}
	return rows, nil
}
