package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/kinetrace/kinetrace/core"
	"github.com/kinetrace/kinetrace/internal"
	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/internal/outwriter"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the full assessment pipeline on a frame-signal file.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [frames-file]",
	Short: "Analyze a recorded fitness test from decoded frame signals.",
	Long: `Run the full assessment pipeline on a frame-signal recording.

The frames file is the JSON output of an upstream capture tool: one entry
per video frame with pose keypoints and image statistics, plus optional
person/object presence reports.

The pipeline:
- Segments the recording into movement phases
- Counts repetitions (or measures the single-event metric)
- Scores posture, consistency, range of motion and pacing
- Runs integrity checks for tampered or staged recordings
- Benchmarks the score against age/gender population norms

Examples:
  # Count squats in a recording
  kinetrace analyze session.json --test squat

  # Benchmark a vertical jump for a 30 year old
  kinetrace analyze jump.json --test vertical_jump --age 30

  # Export the full report as JSON
  kinetrace analyze session.json --test pushup --output json --output-file report.json

  # Keep a local history of results
  kinetrace analyze session.json --test squat --store-backend sqlite`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runAnalyze(); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}

func runAnalyze() error {
	defer func() { _ = resultStore.Close() }()

	if err := contract.ValidateAssessmentRequest(cfg); err != nil {
		return err
	}

	frameFile, err := internal.LoadFrameFile(cfg.FramesPath)
	if err != nil {
		return err
	}
	if detector := internal.NewReportPresenceDetector(frameFile.Presence); detector != nil {
		cfg.Detector = detector
	}

	// Header goes to stderr so json/csv stdout stays machine-readable.
	fmt.Fprintf(os.Stderr, "Analyzing %s recording: %s (%d frames)\n",
		cfg.TestKind, cfg.FramesPath, len(frameFile.Frames))

	start := time.Now()
	frames, err := core.CollectFrames(rootCtx, internal.NewFileFrameSource(frameFile.Frames), cfg.FrameBudget)
	if err != nil {
		return err
	}

	result, err := core.Analyze(rootCtx, frames, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	if err := outwriter.WriteAssessmentResult(result, cfg, duration); err != nil {
		return err
	}

	// Completed analyses land in local history whenever a store backend
	// is configured. The none backend is a no-op.
	rec := contract.NewResultRecord(result, time.Now().Unix())
	if _, err := resultStore.Record(rec); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}
