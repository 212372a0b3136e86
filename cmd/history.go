package cmd

import (
	"fmt"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/internal/outwriter"
	"github.com/kinetrace/kinetrace/internal/resultstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyCmd lists stored assessment results.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently stored assessment results",
	Long: `Show locally stored assessment results, newest first.

Every analysis run with a store backend configured is recorded with its
timestamp, test kind, score, quality, suspicion and benchmark rating.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  clear   - Remove all stored results
  migrate - Run database schema migrations

Examples:
  # Show the last 25 results
  kinetrace history --store-backend sqlite

  # Show the last 5 results as JSON
  kinetrace history --store-backend sqlite --limit 5 --output json`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		defer func() { _ = resultStore.Close() }()
		records, err := resultStore.List(cfg.HistoryLimit)
		if err != nil {
			contract.LogFatal("Failed to list history", err)
		}
		if err := outwriter.WriteHistoryResults(records, cfg); err != nil {
			contract.LogFatal("Failed to write history", err)
		}
	},
}

// historyClearCmd clears the stored results.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored assessment results",
	Long: `Delete all locally stored assessment results.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  kinetrace export --store-backend sqlite --output-file backup.parquet
  kinetrace history clear --store-backend sqlite`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		defer func() { _ = resultStore.Close() }()
		if err := resultStore.Clear(); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the result store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the result store.

By default, migrates to the latest version. Use --target-version for
specific versions, or 0 to roll back to the initial state.

Examples:
  # Migrate to the latest schema
  kinetrace history migrate --store-backend sqlite

  # Roll back everything
  kinetrace history migrate --store-backend sqlite --target-version 0`,
	PreRunE: migrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := resultstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
