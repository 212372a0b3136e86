package cmd

import (
	"fmt"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/internal/outwriter"
	"github.com/spf13/cobra"
)

// normsCmd shows the benchmark norm thresholds for a demographic.
var normsCmd = &cobra.Command{
	Use:   "norms",
	Short: "Show benchmark norm thresholds for a test and demographic",
	Long: `Display the population norm thresholds used for benchmarking.

Each (test, age group, gender) cell carries four ascending thresholds:
poor, average, good and excellent. A score at or above a threshold earns
that rating tier; percentiles interpolate between tiers.

Norm tables can be overridden per cell in the config file.

Examples:
  # Pushup thresholds for a 21 year old male
  kinetrace norms --test pushup --age 21 --gender male

  # Vertical jump thresholds for a 30 year old female
  kinetrace norms --test vertical_jump --age 30 --gender female`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runNorms(); err != nil {
			contract.LogFatal("Cannot show norms", err)
		}
	},
}

func runNorms() error {
	if err := contract.ValidateAssessmentRequest(cfg); err != nil {
		return err
	}

	group := contract.AgeGroupFor(cfg.Profile.Age)
	tiers, ok := cfg.Norms[cfg.TestKind][group][cfg.Profile.Gender]
	if !ok {
		return fmt.Errorf("no norms for %s %s %s", cfg.TestKind, group, cfg.Profile.Gender)
	}

	return outwriter.WriteNormTiers(cfg.TestKind, group, cfg.Profile.Gender, tiers, cfg)
}
