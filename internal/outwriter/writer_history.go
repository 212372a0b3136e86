package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/internal/parquet"
	"github.com/kinetrace/kinetrace/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// historyTimeFormat renders the recorded-at timestamp in tables and CSV.
const historyTimeFormat = "2006-01-02 15:04:05"

// WriteHistoryResults outputs stored assessment history, dispatching
// based on the output format configured.
func WriteHistoryResults(records []contract.ResultRecord, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryJSON(w, records)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryCSV(w, records, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("--output-file is required for parquet output")
		}
		rows := parquet.ConvertResultRecords(records)
		if err := parquet.WriteResultsParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Printf("Exported %d results to: %s\n", len(rows), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, records, cfg, fmtFloat)
		}, "Wrote table")
	}
	return nil
}

// writeHistoryTable renders history rows as a table, newest first.
func writeHistoryTable(w io.Writer, records []contract.ResultRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No stored results.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Recorded", "Test", "Score", "Quality", "Suspicion", "Pct", "Rating", "Status"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, rec := range records {
		rating := contract.GetPlainRatingLabel(rec.Rating)
		if cfg.UseColors {
			rating = contract.GetColorRatingLabel(rec.Rating)
		}
		data = append(data, []string{
			strconv.FormatInt(rec.ID, 10),
			time.Unix(rec.RecordedAt, 0).UTC().Format(historyTimeFormat),
			string(rec.TestKind),
			historyScoreCell(rec, fmtFloat),
			fmtFloat(rec.Quality),
			fmtFloat(rec.Suspicion),
			fmtFloat(rec.Percentile),
			rating,
			string(rec.Status),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d results. Store backend: %s\n", len(records), cfg.StoreBackend)
	return err
}

// historyScoreCell renders either the repetition count or the event metric.
func historyScoreCell(rec contract.ResultRecord, fmtFloat func(float64) string) string {
	if rec.MetricName != "" {
		return fmt.Sprintf("%s %s", fmtFloat(rec.MetricValue), rec.MetricName)
	}
	return strconv.Itoa(rec.Repetitions)
}

// writeHistoryCSV writes history rows in CSV format.
func writeHistoryCSV(w io.Writer, records []contract.ResultRecord, fmtFloat func(float64) string) error {
	header := []string{
		"id",
		"recorded_at",
		"test_kind",
		"repetitions",
		"metric_name",
		"metric_value",
		"quality",
		"suspicion",
		"percentile",
		"rating",
		"status",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, rec := range records {
			row := []string{
				strconv.FormatInt(rec.ID, 10),
				time.Unix(rec.RecordedAt, 0).UTC().Format(historyTimeFormat),
				string(rec.TestKind),
				strconv.Itoa(rec.Repetitions),
				rec.MetricName,
				fmtFloat(rec.MetricValue),
				fmtFloat(rec.Quality),
				fmtFloat(rec.Suspicion),
				fmtFloat(rec.Percentile),
				contract.GetPlainRatingLabel(rec.Rating),
				string(rec.Status),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeHistoryJSON writes history rows in JSON format.
func writeHistoryJSON(w io.Writer, records []contract.ResultRecord) error {
	type JSONResultRecord struct {
		ID          int64               `json:"id"`
		RecordedAt  string              `json:"recordedAt"`
		TestKind    schema.TestKind     `json:"testKind"`
		Repetitions int                 `json:"repetitions"`
		MetricName  string              `json:"metricName,omitempty"`
		MetricValue float64             `json:"metricValue,omitempty"`
		Quality     float64             `json:"quality"`
		Suspicion   float64             `json:"suspicion"`
		Percentile  float64             `json:"percentile"`
		Rating      schema.RatingTier   `json:"rating"`
		Status      schema.ResultStatus `json:"status"`
	}

	output := make([]JSONResultRecord, len(records))
	for i, rec := range records {
		output[i] = JSONResultRecord{
			ID:          rec.ID,
			RecordedAt:  time.Unix(rec.RecordedAt, 0).UTC().Format(time.RFC3339),
			TestKind:    rec.TestKind,
			Repetitions: rec.Repetitions,
			MetricName:  rec.MetricName,
			MetricValue: rec.MetricValue,
			Quality:     rec.Quality,
			Suspicion:   rec.Suspicion,
			Percentile:  rec.Percentile,
			Rating:      rec.Rating,
			Status:      rec.Status,
		}
	}

	return writeJSON(w, output)
}
