package core

import (
	"context"
	"fmt"
	"math"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"
	"gonum.org/v1/gonum/stat"
)

// Fixed integrity check weights. Their sum intentionally exceeds 1;
// the combined score is clamped.
const (
	weightBrightness  = 0.15
	weightFrameTiming = 0.10
	weightCompression = 0.20
	weightSplice      = 0.30
	weightPattern     = 0.15
	weightPresence    = 0.25
	weightEnvironment = 0.10
)

// checkRemediation maps each check to its fixed remediation string.
var checkRemediation = map[schema.CheckKind]string{
	schema.BrightnessCheck:  "Re-record in stable, even lighting without switching light sources",
	schema.FrameTimingCheck: "Re-record with a steady camera and avoid pausing or trimming the clip",
	schema.CompressionCheck: "Upload the original recording without re-encoding or filters",
	schema.SpliceCheck:      "Submit a single continuous take; stitched clips are rejected",
	schema.PatternCheck:     "Perform the prescribed movement for the selected test",
	schema.PresenceCheck:    "Record alone with no assisting person or equipment in frame",
	schema.EnvironmentCheck: "Stay in one location for the entire recording",
}

// analyzeIntegrity runs the independent tamper checks directly over the
// raw frame sequence, never consulting segmentation. It always runs to
// completion given sufficient frames.
func analyzeIntegrity(ctx context.Context, frames []schema.FrameSignal, kind schema.TestKind, profile kindProfile, cfg *contract.Config) schema.SuspicionAssessment {
	checks := []schema.IntegrityCheckResult{
		checkBrightness(frames),
		checkFrameTiming(frames, cfg.TimingVarianceMs),
		checkCompression(frames, cfg.EdgeDensityFloor),
		checkSplice(frames),
		checkPattern(frames, kind, profile),
		checkPresence(ctx, frames, profile, cfg.Detector),
		checkEnvironment(frames, cfg.EnvironmentDrift),
	}

	assessment := schema.SuspicionAssessment{Checks: checks}
	var sum float64
	for _, c := range checks {
		if !c.Triggered {
			continue
		}
		sum += c.Weight
		assessment.Issues = append(assessment.Issues, c.Detail)
		assessment.Recommendations = append(assessment.Recommendations, checkRemediation[c.Kind])
	}
	assessment.Score = schema.Clamp01(sum)
	assessment.IsSuspicious = assessment.Score > cfg.CheatThreshold
	return assessment
}

// checkBrightness triggers on unstable global brightness: high variance
// across the clip or any single frame far from the mean.
func checkBrightness(frames []schema.FrameSignal) schema.IntegrityCheckResult {
	result := schema.IntegrityCheckResult{Kind: schema.BrightnessCheck, Weight: weightBrightness}
	values := make([]float64, len(frames))
	for i, f := range frames {
		values[i] = f.Brightness
	}
	if len(values) < 2 {
		return result
	}

	mean := stat.Mean(values, nil)
	variance := stat.Variance(values, nil)
	if variance > contract.DefaultBrightnessVarMax {
		result.Triggered = true
		result.Detail = fmt.Sprintf("brightness variance %.3f exceeds %.2f", variance, contract.DefaultBrightnessVarMax)
		return result
	}
	for i, v := range values {
		if math.Abs(v-mean) > contract.DefaultBrightnessDevMax {
			result.Triggered = true
			result.Detail = fmt.Sprintf("frame %d brightness deviates %.2f from the mean", frames[i].Index, math.Abs(v-mean))
			return result
		}
	}
	return result
}

// checkFrameTiming triggers on irregular inter-frame time deltas,
// which indicate dropped or inserted frames.
func checkFrameTiming(frames []schema.FrameSignal, maxVarianceMs float64) schema.IntegrityCheckResult {
	result := schema.IntegrityCheckResult{Kind: schema.FrameTimingCheck, Weight: weightFrameTiming}
	if len(frames) < 3 {
		return result
	}

	deltas := make([]float64, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		deltas = append(deltas, float64(frames[i].TimestampMs-frames[i-1].TimestampMs))
	}
	variance := stat.Variance(deltas, nil)
	if variance > maxVarianceMs {
		result.Triggered = true
		result.Detail = fmt.Sprintf("inter-frame timing variance %.0fms² exceeds %.0fms²", variance, maxVarianceMs)
	}
	return result
}

// checkCompression triggers when average edge density falls below the
// floor that indicates heavy re-encoding.
func checkCompression(frames []schema.FrameSignal, floor float64) schema.IntegrityCheckResult {
	result := schema.IntegrityCheckResult{Kind: schema.CompressionCheck, Weight: weightCompression}
	if len(frames) == 0 {
		return result
	}

	values := make([]float64, len(frames))
	for i, f := range frames {
		values[i] = f.EdgeDensity
	}
	mean := stat.Mean(values, nil)
	if mean < floor {
		result.Triggered = true
		result.Detail = fmt.Sprintf("average edge density %.3f below floor %.2f suggests heavy re-encoding", mean, floor)
	}
	return result
}

// checkSplice triggers on more than the allowed number of abrupt
// brightness discontinuities across the sequence.
func checkSplice(frames []schema.FrameSignal) schema.IntegrityCheckResult {
	result := schema.IntegrityCheckResult{Kind: schema.SpliceCheck, Weight: weightSplice}

	jumps := 0
	for i := 1; i < len(frames); i++ {
		if math.Abs(frames[i].Brightness-frames[i-1].Brightness) > contract.DefaultSpliceJumpMin {
			jumps++
		}
	}
	if jumps > contract.DefaultSpliceJumpAllowed {
		result.Triggered = true
		result.Detail = fmt.Sprintf("%d abrupt brightness discontinuities indicate spliced footage", jumps)
	}
	return result
}

// checkPattern classifies the motion-magnitude trace and triggers when
// it does not match the test kind's expected pattern.
func checkPattern(frames []schema.FrameSignal, kind schema.TestKind, profile kindProfile) schema.IntegrityCheckResult {
	result := schema.IntegrityCheckResult{Kind: schema.PatternCheck, Weight: weightPattern}

	mags := make([]float64, len(frames))
	for i, f := range frames {
		mags[i] = f.MotionMagnitude
	}
	pattern := classifyMotionPattern(mags)
	if _, ok := profile.expectedPatterns[pattern]; !ok {
		result.Triggered = true
		result.Detail = fmt.Sprintf("motion pattern '%s' does not match a %s test", pattern, kind)
	}
	return result
}

// classifyMotionPattern reduces a motion-magnitude trace to one of the
// five coarse patterns.
func classifyMotionPattern(mags []float64) schema.MotionPattern {
	if len(mags) == 0 {
		return schema.StaticPattern
	}

	mean := stat.Mean(mags, nil)
	if mean < 0.05 {
		return schema.StaticPattern
	}

	var peak float64
	aboveHalfPeak := 0
	for _, m := range mags {
		peak = math.Max(peak, m)
	}
	for _, m := range mags {
		if m > peak/2 {
			aboveHalfPeak++
		}
	}
	// A short concentrated spike over a quiet baseline.
	if peak > 3*mean && aboveHalfPeak*5 < len(mags) {
		return schema.BurstPattern
	}

	// Count crossings of the mean to detect oscillation.
	crossings := 0
	above := mags[0] > mean
	for _, m := range mags[1:] {
		now := m > mean
		if now != above {
			crossings++
			above = now
		}
	}
	cv := math.Sqrt(stat.Variance(mags, nil)) / mean
	switch {
	case crossings >= 6:
		return schema.RepetitivePattern
	case crossings >= 2 && cv > 0.25:
		return schema.BackAndForthPattern
	default:
		return schema.SteadyPattern
	}
}

// checkPresence triggers when the external detector reports more than
// one person, or any disallowed object, in any sampled frame. A nil
// detector leaves the check untriggered.
func checkPresence(ctx context.Context, frames []schema.FrameSignal, profile kindProfile, detector contract.PresenceDetector) schema.IntegrityCheckResult {
	result := schema.IntegrityCheckResult{Kind: schema.PresenceCheck, Weight: weightPresence}
	if detector == nil {
		result.Detail = "presence detector unavailable; check skipped"
		return result
	}

	for _, frame := range frames {
		if ctx.Err() != nil {
			return result
		}
		report, err := detector.Presence(ctx, frame.Index)
		if err != nil {
			continue
		}
		if report.PersonCount > 1 {
			result.Triggered = true
			result.Detail = fmt.Sprintf("%d people detected at frame %d", report.PersonCount, frame.Index)
			return result
		}
		for _, obj := range report.Objects {
			if _, ok := profile.allowedObjects[obj]; !ok {
				result.Triggered = true
				result.Detail = fmt.Sprintf("disallowed object '%s' detected at frame %d", obj, frame.Index)
				return result
			}
		}
	}
	return result
}

// checkEnvironment triggers on color-variance drift between the start
// and end of the recording, suggesting a location change mid-take.
func checkEnvironment(frames []schema.FrameSignal, maxDrift float64) schema.IntegrityCheckResult {
	result := schema.IntegrityCheckResult{Kind: schema.EnvironmentCheck, Weight: weightEnvironment}
	if len(frames) < 6 {
		return result
	}

	third := len(frames) / 3
	head := make([]float64, 0, third)
	tail := make([]float64, 0, third)
	for i := 0; i < third; i++ {
		head = append(head, frames[i].ColorVariance)
	}
	for i := len(frames) - third; i < len(frames); i++ {
		tail = append(tail, frames[i].ColorVariance)
	}

	drift := math.Abs(stat.Mean(tail, nil) - stat.Mean(head, nil))
	if drift > maxDrift {
		result.Triggered = true
		result.Detail = fmt.Sprintf("color variance drift %.3f exceeds %.2f, suggesting a location change", drift, maxDrift)
	}
	return result
}
