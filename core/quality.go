package core

import (
	"math"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"
	"gonum.org/v1/gonum/stat"
)

// computeQuality scores posture, consistency, range of motion and
// timing from the phase sequence, each normalized to [0,1]. The
// overall score is the weighted mean with the configured per-kind
// weights.
func computeQuality(seg *segmentation, frames []schema.FrameSignal, kind schema.TestKind, profile kindProfile, cfg *contract.Config) schema.QualityScore {
	q := schema.QualityScore{
		Posture:       postureScore(frames, profile, cfg.MinConfidence),
		Consistency:   consistencyScore(seg, profile),
		RangeOfMotion: rangeOfMotionScore(seg, profile),
		Timing:        timingScore(seg.totalDurationMs, profile.expectedDurationMs),
	}

	weights := cfg.WeightsFor(kind)
	q.Overall = schema.Clamp01(
		weights[schema.PostureKey]*q.Posture +
			weights[schema.ConsistencyKey]*q.Consistency +
			weights[schema.RangeKey]*q.RangeOfMotion +
			weights[schema.TimingKey]*q.Timing)
	q.Band = schema.BandForOverall(q.Overall)
	return q
}

// postureScore measures deviation of the posture angles from the ideal
// reference range. Within the range scores 1; beyond the tolerance
// scores 0; in between it scales linearly.
func postureScore(frames []schema.FrameSignal, profile kindProfile, minConfidence float64) float64 {
	if profile.postureTolerance <= 0 {
		return 0
	}

	var scores []float64
	for _, frame := range frames {
		for _, name := range profile.postureAngles {
			a := bodyAngle(frame, name, minConfidence)
			if !a.Valid {
				continue
			}
			var dev float64
			switch {
			case a.Degrees < profile.idealMin:
				dev = profile.idealMin - a.Degrees
			case a.Degrees > profile.idealMax:
				dev = a.Degrees - profile.idealMax
			}
			scores = append(scores, schema.Clamp01(1-dev/profile.postureTolerance))
		}
	}
	if len(scores) == 0 {
		return 0
	}
	return stat.Mean(scores, nil)
}

// consistencyScore is 1 minus the normalized spread of repetition-cycle
// durations. Hold tests use the stability of the tracked angle instead;
// other single-event tests are fixed at 1.
func consistencyScore(seg *segmentation, profile kindProfile) float64 {
	if profile.romHoldSteady {
		return holdStability(seg)
	}
	if !profile.cyclic {
		return 1.0
	}

	var durations []float64
	for i := 0; i+1 < len(seg.phases); i++ {
		if seg.phases[i].Kind == profile.lowPhase && seg.phases[i+1].Kind == profile.highPhase {
			durations = append(durations, float64(seg.phases[i].DurationMs+seg.phases[i+1].DurationMs))
		}
	}
	if len(durations) < 2 {
		// A single cycle has no spread to measure.
		if len(durations) == 1 {
			return 1.0
		}
		return 0
	}

	mean, std := stat.MeanStdDev(durations, nil)
	if mean == 0 {
		return 0
	}
	return schema.Clamp01(1 - std/mean)
}

// holdStability scores how steady the tracked angle stayed, for tests
// where the goal is not moving at all.
func holdStability(seg *segmentation) float64 {
	var degrees []float64
	for _, a := range seg.tracked {
		if a.Valid {
			degrees = append(degrees, a.Degrees)
		}
	}
	if len(degrees) < 2 {
		return 0
	}
	std := math.Sqrt(stat.Variance(degrees, nil))
	return schema.Clamp01(1 - std/15.0)
}

// rangeOfMotionScore is the ratio of the tracked-angle span reached to
// the profile's target span, capped at 1. Hold tests invert the ratio
// since the target is no motion.
func rangeOfMotionScore(seg *segmentation, profile kindProfile) float64 {
	if profile.romTargetSpan <= 0 {
		return 0
	}

	minDeg := math.Inf(1)
	maxDeg := math.Inf(-1)
	for _, a := range seg.tracked {
		if !a.Valid {
			continue
		}
		minDeg = math.Min(minDeg, a.Degrees)
		maxDeg = math.Max(maxDeg, a.Degrees)
	}
	if math.IsInf(minDeg, 1) {
		return 0
	}

	span := maxDeg - minDeg
	if profile.romHoldSteady {
		return schema.Clamp01(1 - span/profile.romTargetSpan)
	}
	return schema.Clamp01(span / profile.romTargetSpan)
}

// timingScore is 1 when the total duration lies within [0.5, 2.0] times
// the expected duration and is penalized toward 0 outside that band.
func timingScore(totalMs, expectedMs uint64) float64 {
	if expectedMs == 0 || totalMs == 0 {
		return 0
	}
	ratio := float64(totalMs) / float64(expectedMs)
	switch {
	case ratio >= 0.5 && ratio <= 2.0:
		return 1.0
	case ratio < 0.5:
		return schema.Clamp01(ratio / 0.5)
	default:
		return schema.Clamp01(2.0 / ratio)
	}
}
