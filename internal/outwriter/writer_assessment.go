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

// WriteAssessmentResult outputs one analysis result, dispatching based
// on the output format configured.
func WriteAssessmentResult(result *schema.AssessmentResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentCSV(w, result, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeAssessmentParquet(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentText(w, result, cfg, fmtFloat, duration)
		}, "Wrote report")
	}
	return nil
}

// writeAssessmentText renders the human-readable report.
func writeAssessmentText(w io.Writer, result *schema.AssessmentResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Test: %s    Status: %s\n", result.TestKind, result.Status); err != nil {
		return err
	}
	if result.Reason != "" {
		if _, err := fmt.Fprintf(w, "Note: %s\n", result.Reason); err != nil {
			return err
		}
	}

	if err := writeOutcomeLine(w, result, fmtFloat); err != nil {
		return err
	}

	// Quality sub-scores
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	quality := tablewriter.NewWriter(w)
	quality.Header([]string{"Posture", "Consistency", "Range", "Timing", "Overall", "Band"})
	quality.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := quality.Bulk([][]string{{
		fmtFloat(result.Quality.Posture),
		fmtFloat(result.Quality.Consistency),
		fmtFloat(result.Quality.RangeOfMotion),
		fmtFloat(result.Quality.Timing),
		fmtFloat(result.Quality.Overall),
		string(result.Quality.Band),
	}}); err != nil {
		return err
	}
	if err := quality.Render(); err != nil {
		return err
	}

	// Benchmark line
	if result.Benchmark.Rating != "" {
		rating := contract.GetPlainRatingLabel(result.Benchmark.Rating)
		if cfg.UseColors {
			rating = contract.GetColorRatingLabel(result.Benchmark.Rating)
		}
		if _, err := fmt.Fprintf(w, "Benchmark: %s percentile %s (%s, %s)\n",
			rating, fmtFloat(result.Benchmark.Percentile),
			result.Benchmark.AgeGroup, result.Benchmark.Gender); err != nil {
			return err
		}
	}

	// Integrity verdict and checks
	verdict := contract.GetSuspicionLabel(result.Integrity.IsSuspicious, cfg.UseColors)
	if _, err := fmt.Fprintf(w, "Integrity: %s (score %s)\n", verdict, fmtFloat(result.Integrity.Score)); err != nil {
		return err
	}

	checks := tablewriter.NewWriter(w)
	checks.Header([]string{"Check", "Verdict", "Weight", "Detail"})
	maxDetail := GetMaxDetailWidth(cfg)
	var rows [][]string
	for _, check := range result.Integrity.Checks {
		rows = append(rows, []string{
			string(check.Kind),
			checkVerdict(check.Triggered, cfg.UseEmojis),
			fmtFloat(check.Weight),
			truncateDetail(check.Detail, maxDetail),
		})
	}
	if err := checks.Bulk(rows); err != nil {
		return err
	}
	if err := checks.Render(); err != nil {
		return err
	}

	// Recommendations from both the benchmark and the integrity checks
	recs := append([]string{}, result.Benchmark.Recommendations...)
	recs = append(recs, result.Integrity.Recommendations...)
	if len(recs) > 0 {
		if _, err := fmt.Fprintln(w, "Recommendations:"); err != nil {
			return err
		}
		for _, rec := range recs {
			if _, err := fmt.Fprintf(w, "  - %s\n", rec); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "Confidence: %s. Analysis completed in %v. Store backend: %s\n",
		fmtFloat(result.Confidence), duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeOutcomeLine prints the repetition count or event metric line.
func writeOutcomeLine(w io.Writer, result *schema.AssessmentResult, fmtFloat func(float64) string) error {
	switch {
	case result.Repetition.CountValid:
		suffix := ""
		if result.Repetition.IncompleteFinal {
			suffix = " (final repetition incomplete)"
		}
		_, err := fmt.Fprintf(w, "Repetitions: %d%s\n", result.Repetition.Count, suffix)
		return err
	case result.Repetition.MetricValid:
		_, err := fmt.Fprintf(w, "Result: %s = %s\n", result.Repetition.MetricName, fmtFloat(result.Repetition.MetricValue))
		return err
	default:
		_, err := fmt.Fprintln(w, "Result: not measurable")
		return err
	}
}

// checkVerdict renders a check outcome cell.
func checkVerdict(triggered, useEmojis bool) string {
	if triggered {
		if useEmojis {
			return "🚩 flagged"
		}
		return "flagged"
	}
	if useEmojis {
		return "✅ ok"
	}
	return "ok"
}

// writeAssessmentCSV writes the result as a single flat CSV row.
func writeAssessmentCSV(w io.Writer, result *schema.AssessmentResult, fmtFloat func(float64) string) error {
	header := []string{
		"test_kind",
		"status",
		"repetitions",
		"incomplete_final",
		"metric_name",
		"metric_value",
		"posture",
		"consistency",
		"range_of_motion",
		"timing",
		"quality_overall",
		"quality_band",
		"suspicion_score",
		"suspicious",
		"percentile",
		"rating",
		"confidence",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		rating := ""
		if result.Benchmark.Rating != "" {
			rating = contract.GetPlainRatingLabel(result.Benchmark.Rating)
		}
		rec := []string{
			string(result.TestKind),
			string(result.Status),
			strconv.Itoa(result.Repetition.Count),
			strconv.FormatBool(result.Repetition.IncompleteFinal),
			result.Repetition.MetricName,
			fmtFloat(result.Repetition.MetricValue),
			fmtFloat(result.Quality.Posture),
			fmtFloat(result.Quality.Consistency),
			fmtFloat(result.Quality.RangeOfMotion),
			fmtFloat(result.Quality.Timing),
			fmtFloat(result.Quality.Overall),
			string(result.Quality.Band),
			fmtFloat(result.Integrity.Score),
			strconv.FormatBool(result.Integrity.IsSuspicious),
			fmtFloat(result.Benchmark.Percentile),
			rating,
			fmtFloat(result.Confidence),
		}
		return cw.Write(rec)
	})
}

// writeAssessmentParquet writes the result as a one-row Parquet file.
func writeAssessmentParquet(result *schema.AssessmentResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}
	rows := parquet.ConvertResultRecords([]contract.ResultRecord{
		contract.NewResultRecord(result, time.Now().Unix()),
	})
	if err := parquet.WriteResultsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Printf("Exported result to: %s\n", cfg.OutputFile)
	return nil
}
