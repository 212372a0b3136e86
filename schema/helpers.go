package schema

// Clamp01 bounds a value to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BandForOverall maps an overall quality score to its qualitative band.
// Boundaries are inclusive on the lower bound.
func BandForOverall(overall float64) QualityBand {
	switch {
	case overall >= 0.90:
		return ExcellentBand
	case overall >= 0.75:
		return GoodBand
	case overall >= 0.50:
		return AverageBand
	default:
		return NeedsWorkBand
	}
}

// IsCyclic reports whether a test kind is counted in repetition cycles.
func IsCyclic(kind TestKind) bool {
	switch kind {
	case PushupTest, SitupTest, SquatTest:
		return true
	default:
		return false
	}
}

// RatingRank orders rating tiers from worst (0) to best (3).
func RatingRank(tier RatingTier) int {
	switch tier {
	case PoorRating:
		return 0
	case AverageRating:
		return 1
	case GoodRating:
		return 2
	case ExcellentRating:
		return 3
	default:
		return -1
	}
}

// Ordered frame checks used by validation and by sources that stitch
// resampled sequences back together.

// FramesOrdered reports whether Index and TimestampMs are strictly
// increasing across the sequence.
func FramesOrdered(frames []FrameSignal) bool {
	for i := 1; i < len(frames); i++ {
		if frames[i].Index <= frames[i-1].Index {
			return false
		}
		if frames[i].TimestampMs <= frames[i-1].TimestampMs {
			return false
		}
	}
	return true
}

// UsableKeypoints reports whether a frame carries at least one keypoint
// above the given confidence floor.
func UsableKeypoints(frame FrameSignal, minConfidence float64) bool {
	for _, kp := range frame.Keypoints {
		if kp.Confidence >= minConfidence {
			return true
		}
	}
	return false
}
