// Package contract provides interfaces and shared utilities for kinetrace's internal architecture.
package contract

import (
	"context"

	"github.com/kinetrace/kinetrace/schema"
)

// FrameSource is the capability interface for whatever supplies decoded
// per-frame pose and image signals. The pipeline never touches video or
// model code directly; it consumes frames from this interface.
// Next returns io.EOF once the recording is exhausted.
type FrameSource interface {
	Next(ctx context.Context) (schema.FrameSignal, error)
}

// PresenceDetector is the capability interface for the external
// person/object detector. Implementations return a zero-value report
// for frames they did not sample.
type PresenceDetector interface {
	Presence(ctx context.Context, frameIndex uint32) (schema.PresenceReport, error)
}

// ResultStore persists completed assessment results for local history.
// This allows the storage layer to be mocked for testing.
type ResultStore interface {
	Record(rec ResultRecord) (int64, error)
	List(limit int) ([]ResultRecord, error)
	Clear() error
	Close() error
}

// NewResultRecord flattens an assessment result into a storable
// summary row.
func NewResultRecord(result *schema.AssessmentResult, recordedAt int64) ResultRecord {
	return ResultRecord{
		RecordedAt:  recordedAt,
		TestKind:    result.TestKind,
		Repetitions: result.Repetition.Count,
		MetricName:  result.Repetition.MetricName,
		MetricValue: result.Repetition.MetricValue,
		Quality:     result.Quality.Overall,
		Suspicion:   result.Integrity.Score,
		Percentile:  result.Benchmark.Percentile,
		Rating:      result.Benchmark.Rating,
		Status:      result.Status,
	}
}

// ResultRecord is one stored assessment summary row.
type ResultRecord struct {
	ID          int64
	RecordedAt  int64 // unix seconds
	TestKind    schema.TestKind
	Repetitions int
	MetricName  string
	MetricValue float64
	Quality     float64
	Suspicion   float64
	Percentile  float64
	Rating      schema.RatingTier
	Status      schema.ResultStatus
}
