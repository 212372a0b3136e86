// Package core implements the kinetrace analysis pipeline: phase
// segmentation, repetition counting, movement-quality scoring,
// integrity analysis and benchmarking over a frame signal sequence.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"
)

// Input errors, rejected before any processing. All other failure
// conditions surface as status fields on the returned result.
var (
	ErrNoFrames        = errors.New("frame sequence is empty")
	ErrUnknownTestKind = errors.New("unknown test kind")
	ErrUnorderedFrames = errors.New("frame indices and timestamps must be strictly increasing")
)

// Analyze converts a recorded frame signal sequence into a structured
// assessment: repetition count or event metric, movement-quality score,
// benchmarked rating and an independent integrity verdict.
//
// The pipeline is a pure transformation: identical frames and config
// always yield an identical result. Degraded and failed outcomes are
// statuses on the result, never errors; the error return is reserved
// for invalid input and for context cancellation, which yields no
// result at all.
func Analyze(ctx context.Context, frames []schema.FrameSignal, cfg *contract.Config) (*schema.AssessmentResult, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	profile, ok := profileFor(cfg.TestKind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTestKind, cfg.TestKind)
	}
	if !schema.FramesOrdered(frames) {
		return nil, ErrUnorderedFrames
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The two branches read the same immutable frame sequence and write
	// disjoint outputs, so they run as parallel read-only tasks joined
	// at the compiler. No locking is needed.
	var (
		wg        sync.WaitGroup
		seg       *segmentation
		outcome   schema.RepetitionOutcome
		quality   schema.QualityScore
		benchmark schema.BenchmarkResult
		benchOK   bool
		integrity schema.SuspicionAssessment
	)

	wg.Go(func() {
		seg = segmentFrames(frames, profile, cfg)
		if ctx.Err() != nil || seg.unknownOnly() {
			return
		}
		outcome = countRepetitions(seg, cfg.TestKind, profile)
		if ctx.Err() != nil {
			return
		}
		quality = computeQuality(seg, frames, cfg.TestKind, profile, cfg)
		benchmark, benchOK = computeBenchmark(performanceScore(outcome), cfg.TestKind, cfg.Profile, cfg.Norms)
	})

	wg.Go(func() {
		// Integrity never blocks on, and is never blocked by, the
		// segmentation branch.
		integrity = analyzeIntegrity(ctx, frames, cfg.TestKind, profile, cfg)
	})

	wg.Wait()

	// Cancellation discards all branch output and produces no result.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status, reason := resolveStatus(frames, seg, cfg, benchOK)
	if status != schema.OkStatus {
		// Integrity findings are additive signals and survive
		// degradation; fabricated-looking scores do not.
		return compileResult(cfg.TestKind, schema.RepetitionOutcome{}, schema.QualityScore{Band: schema.NeedsWorkBand}, integrity, schema.BenchmarkResult{}, status, reason), nil
	}

	return compileResult(cfg.TestKind, outcome, quality, integrity, benchmark, status, reason), nil
}

// performanceScore picks the scalar handed to the benchmark engine.
func performanceScore(outcome schema.RepetitionOutcome) float64 {
	if outcome.CountValid {
		return float64(outcome.Count)
	}
	return outcome.MetricValue
}

// resolveStatus classifies degraded and failed outcomes. A sequence
// with no usable keypoints at all fails; insufficient frames or a
// segmentation that could not identify phases degrade.
func resolveStatus(frames []schema.FrameSignal, seg *segmentation, cfg *contract.Config, benchOK bool) (schema.ResultStatus, string) {
	if seg.usableKeypoint == 0 {
		return schema.FailedStatus, "no usable keypoints in the whole sequence"
	}
	if len(frames) < cfg.MinFrames {
		return schema.DegradedStatus, fmt.Sprintf("only %d frames captured; at least %d required", len(frames), cfg.MinFrames)
	}
	if seg.unknownOnly() {
		return schema.DegradedStatus, "no movement phases could be identified"
	}
	if !benchOK {
		// Missing norm cell: the assessment stands but carries no
		// benchmark. Recorded as a reason, not a degradation.
		return schema.OkStatus, "no benchmark norms for this demographic"
	}
	return schema.OkStatus, ""
}
