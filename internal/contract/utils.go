package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/kinetrace/kinetrace/schema"
)

// Color variables for console output.
var (
	ExcellentColor  = color.New(color.FgGreen, color.Bold)
	GoodColor       = color.New(color.FgCyan)
	AverageColor    = color.New(color.FgYellow)
	PoorColor       = color.New(color.FgRed, color.Bold)
	SuspiciousColor = color.New(color.FgRed, color.Bold)
)

// GetPlainRatingLabel returns the plain text label for a rating tier.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainRatingLabel(tier schema.RatingTier) string {
	switch tier {
	case schema.ExcellentRating:
		return "Excellent"
	case schema.GoodRating:
		return "Good"
	case schema.AverageRating:
		return "Average"
	default:
		return "Poor"
	}
}

// GetColorRatingLabel returns a colored rating label for console output.
// It uses GetPlainRatingLabel to determine the string, and then applies
// the appropriate color.
func GetColorRatingLabel(tier schema.RatingTier) string {
	text := GetPlainRatingLabel(tier)

	switch tier {
	case schema.ExcellentRating:
		return ExcellentColor.Sprint(text)
	case schema.GoodRating:
		return GoodColor.Sprint(text)
	case schema.AverageRating:
		return AverageColor.Sprint(text)
	default:
		return PoorColor.Sprint(text)
	}
}

// GetSuspicionLabel renders the integrity verdict, colored when enabled.
func GetSuspicionLabel(suspicious bool, useColors bool) string {
	if !suspicious {
		return "Clean"
	}
	if useColors {
		return SuspiciousColor.Sprint("Suspicious")
	}
	return "Suspicious"
}

// SelectOutputFile returns the appropriate file handle for output,
// based on the provided file path. It falls back to os.Stdout when
// no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// GetStoreDBFilePath returns the path to the SQLite DB file for result history.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".kinetrace_history.db"
	}
	return filepath.Join(homeDir, ".kinetrace_history.db")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}
