// Package cmd defines the command-line interface for kinetrace.
package cmd

import (
	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(normsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("test", "t", string(schema.SquatTest), "Fitness test kind: pushup, situp, squat, vertical_jump, broad_jump, plank")
	rootCmd.PersistentFlags().Int("age", 21, "Athlete age in years for benchmarking")
	rootCmd.PersistentFlags().String("gender", "male", "Athlete gender for benchmarking (male/female)")
	rootCmd.PersistentFlags().Int("min-frames", contract.DefaultMinFrames, "Minimum frames required for a full analysis")
	rootCmd.PersistentFlags().Int("debounce-frames", contract.DefaultDebounceFrames, "Consecutive frames required to commit a phase transition")
	rootCmd.PersistentFlags().Float64("cheat-threshold", contract.DefaultCheatThreshold, "Suspicion score above which a recording is flagged")
	rootCmd.PersistentFlags().Float64("min-confidence", contract.DefaultMinConfidence, "Confidence floor below which results are untrusted")
	rootCmd.PersistentFlags().Float64("sampling-rate", contract.DefaultSamplingRate, "Expected frame sampling rate in frames per second")
	rootCmd.PersistentFlags().Int("frame-budget", contract.DefaultFrameBudget, "Buffered frame cap before downsampling kicks in")
	rootCmd.PersistentFlags().Float64("timing-variance-ms", contract.DefaultTimingVarianceMs, "Frame gap above which timing is considered irregular")
	rootCmd.PersistentFlags().Float64("environment-drift", contract.DefaultEnvironmentDrift, "Color variance drift threshold for environment changes")
	rootCmd.PersistentFlags().Float64("edge-density-floor", contract.DefaultEdgeDensityFloor, "Edge density below which frames look over-compressed")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultHistoryLimit, "Number of history rows to display")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emoji verdicts in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Result store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
