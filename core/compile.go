package core

import "github.com/kinetrace/kinetrace/schema"

// Confidence model constants.
const (
	baseConfidence       = 0.8
	suspiciousPenalty    = 0.3
	highQualityBonus     = 0.1
	highQualityThreshold = 0.8
)

// compileResult merges all branch outputs into one immutable
// AssessmentResult. A non-ok status forces confidence to zero; the
// boundary never raises past this point.
func compileResult(
	kind schema.TestKind,
	outcome schema.RepetitionOutcome,
	quality schema.QualityScore,
	integrity schema.SuspicionAssessment,
	benchmark schema.BenchmarkResult,
	status schema.ResultStatus,
	reason string,
) *schema.AssessmentResult {
	result := &schema.AssessmentResult{
		TestKind:   kind,
		Repetition: outcome,
		Quality:    quality,
		Integrity:  integrity,
		Benchmark:  benchmark,
		Status:     status,
		Reason:     reason,
	}

	if status != schema.OkStatus {
		result.Confidence = 0
		return result
	}

	confidence := baseConfidence
	if integrity.IsSuspicious {
		confidence -= suspiciousPenalty
	}
	if quality.Overall >= highQualityThreshold {
		confidence += highQualityBonus
	}
	result.Confidence = schema.Clamp01(confidence)
	return result
}
