package core

import (
	"testing"

	"github.com/kinetrace/kinetrace/schema"
	"github.com/stretchr/testify/assert"
)

func TestCompileResultConfidence(t *testing.T) {
	tests := []struct {
		name       string
		quality    float64
		suspicious bool
		status     schema.ResultStatus
		want       float64
	}{
		{name: "baseline", quality: 0.6, status: schema.OkStatus, want: 0.8},
		{name: "high quality bonus", quality: 0.85, status: schema.OkStatus, want: 0.9},
		{name: "bonus boundary inclusive", quality: 0.8, status: schema.OkStatus, want: 0.9},
		{name: "suspicious penalty", quality: 0.6, suspicious: true, status: schema.OkStatus, want: 0.5},
		{name: "penalty and bonus combine", quality: 0.9, suspicious: true, status: schema.OkStatus, want: 0.6},
		{name: "degraded forces zero", quality: 0.95, status: schema.DegradedStatus, want: 0},
		{name: "failed forces zero", quality: 0.95, status: schema.FailedStatus, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := compileResult(
				schema.PushupTest,
				schema.RepetitionOutcome{Count: 10, CountValid: true},
				schema.QualityScore{Overall: tc.quality},
				schema.SuspicionAssessment{IsSuspicious: tc.suspicious},
				schema.BenchmarkResult{},
				tc.status,
				"",
			)
			assert.InDelta(t, tc.want, result.Confidence, 1e-9)
		})
	}
}

func TestCompileResultCarriesBranches(t *testing.T) {
	outcome := schema.RepetitionOutcome{Count: 12, CountValid: true}
	quality := schema.QualityScore{Overall: 0.7, Band: schema.AverageBand}
	integrity := schema.SuspicionAssessment{Score: 0.15}
	benchmark := schema.BenchmarkResult{Percentile: 42, Rating: schema.AverageRating}

	result := compileResult(schema.SquatTest, outcome, quality, integrity, benchmark, schema.OkStatus, "")

	assert.Equal(t, schema.SquatTest, result.TestKind)
	assert.Equal(t, outcome, result.Repetition)
	assert.Equal(t, quality, result.Quality)
	assert.Equal(t, integrity, result.Integrity)
	assert.Equal(t, benchmark, result.Benchmark)
	assert.Equal(t, schema.OkStatus, result.Status)
	assert.Empty(t, result.Reason)
}
