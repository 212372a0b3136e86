// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/kinetrace/kinetrace/internal/contract"
	"golang.org/x/term"
)

// GetMaxDetailWidth calculates the maximum width for the integrity
// detail column in table output based on terminal width.
func GetMaxDetailWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the check name, verdict and weight columns plus
	// table borders, separators and padding.
	available := termWidth - 45
	if available < 20 {
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}

// truncateDetail shortens a detail string to fit the table column.
func truncateDetail(detail string, maxWidth int) string {
	if len(detail) <= maxWidth {
		return detail
	}
	if maxWidth <= 3 {
		return detail[:maxWidth]
	}
	return detail[:maxWidth-3] + "..."
}
