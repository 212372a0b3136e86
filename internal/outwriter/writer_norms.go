package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteNormTiers outputs one norm-table cell, dispatching based on the
// output format configured.
func WriteNormTiers(kind schema.TestKind, ageGroup, gender string, tiers schema.NormTiers, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		payload := map[string]any{
			"test":     kind,
			"ageGroup": ageGroup,
			"gender":   gender,
			"tiers":    tiers,
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, payload)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeNormsCSV(w, kind, ageGroup, gender, tiers, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeNormsTable(w, kind, ageGroup, gender, tiers, fmtFloat)
		}, "Wrote table")
	}
	return nil
}

func writeNormsTable(w io.Writer, kind schema.TestKind, ageGroup, gender string, tiers schema.NormTiers, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Norms for %s, ages %s, %s:\n", kind, ageGroup, gender); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Poor", "Average", "Good", "Excellent"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk([][]string{{
		fmtFloat(tiers.Poor),
		fmtFloat(tiers.Average),
		fmtFloat(tiers.Good),
		fmtFloat(tiers.Excellent),
	}}); err != nil {
		return err
	}
	return table.Render()
}

func writeNormsCSV(w io.Writer, kind schema.TestKind, ageGroup, gender string, tiers schema.NormTiers, fmtFloat func(float64) string) error {
	header := []string{"test_kind", "age_group", "gender", "poor", "average", "good", "excellent"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			string(kind),
			ageGroup,
			gender,
			fmtFloat(tiers.Poor),
			fmtFloat(tiers.Average),
			fmtFloat(tiers.Good),
			fmtFloat(tiers.Excellent),
		})
	})
}
