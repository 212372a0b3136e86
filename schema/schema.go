// Package schema has configs, models and shared constants for all parts of kinetrace.
package schema

// Keypoint is one pose landmark position with detection confidence.
// Coordinates are normalized to [0,1] with the origin at the top-left
// of the frame, so larger Y means lower in the image.
type Keypoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// FrameSignal carries the per-frame signals consumed by the analysis
// pipeline: landmark keypoints plus low-level image statistics. Frames
// are ordered by Index and TimestampMs, both strictly increasing.
type FrameSignal struct {
	Index           uint32                 `json:"index"`
	TimestampMs     uint64                 `json:"timestampMs"`
	Keypoints       map[JointName]Keypoint `json:"keypoints"`
	Brightness      float64                `json:"brightness"`
	EdgeDensity     float64                `json:"edgeDensity"`
	ColorVariance   float64                `json:"colorVariance"`
	MotionMagnitude float64                `json:"motionMagnitude"`
}

// PresenceReport is the person/object detector output for one frame.
type PresenceReport struct {
	FrameIndex  uint32   `json:"frameIndex"`
	PersonCount int      `json:"personCount"`
	Objects     []string `json:"objects,omitempty"`
}

// BodyAngle is a named joint angle in degrees derived from three
// keypoints. Valid is false when any contributing keypoint fell below
// the confidence floor.
type BodyAngle struct {
	Name    AngleName
	Degrees float64
	Valid   bool
}

// MovementPhase is a contiguous frame interval classified as one stage
// of the movement. For a given frame sequence phases are contiguous and
// exhaustive: every frame index belongs to exactly one phase.
type MovementPhase struct {
	Kind       PhaseKind `json:"phaseKind"`
	StartIndex uint32    `json:"startIndex"`
	EndIndex   uint32    `json:"endIndex"`
	DurationMs uint64    `json:"durationMs"`
}

// RepetitionOutcome is either a cyclic repetition count or a named
// single-event metric, never both. IncompleteFinal records a trailing
// unmatched phase that did not increment the count.
type RepetitionOutcome struct {
	Count           int     `json:"count"`
	CountValid      bool    `json:"countValid"`
	MetricName      string  `json:"metricName,omitempty"`
	MetricValue     float64 `json:"metricValue,omitempty"`
	MetricValid     bool    `json:"metricValid"`
	IncompleteFinal bool    `json:"incompleteFinal"`
}

// QualityScore holds the four movement-quality sub-scores and their
// weighted overall, all in [0,1].
type QualityScore struct {
	Posture       float64     `json:"posture"`
	Consistency   float64     `json:"consistency"`
	RangeOfMotion float64     `json:"rangeOfMotion"`
	Timing        float64     `json:"timing"`
	Overall       float64     `json:"overall"`
	Band          QualityBand `json:"band"`
}

// IntegrityCheckResult is the outcome of one integrity check.
type IntegrityCheckResult struct {
	Kind      CheckKind `json:"checkKind"`
	Triggered bool      `json:"triggered"`
	Weight    float64   `json:"weight"`
	Detail    string    `json:"detail"`
}

// SuspicionAssessment aggregates all integrity checks into a single
// suspicion score in [0,1].
type SuspicionAssessment struct {
	Score           float64                `json:"score"`
	IsSuspicious    bool                   `json:"isSuspicious"`
	Checks          []IntegrityCheckResult `json:"checks"`
	Issues          []string               `json:"issues"`
	Recommendations []string               `json:"recommendations"`
}

// UserProfile carries the demographic inputs for benchmarking.
type UserProfile struct {
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// BenchmarkResult maps a performance score to a population percentile
// and rating tier for the user's demographic bucket.
type BenchmarkResult struct {
	AgeGroup        string     `json:"ageGroup"`
	Gender          string     `json:"gender"`
	Percentile      float64    `json:"percentile"`
	Rating          RatingTier `json:"ratingTier"`
	Recommendations []string   `json:"recommendations"`
}

// AssessmentResult is the immutable output of one analysis invocation.
// Callers must branch on Status: a Degraded or Failed result is still
// well-formed, with Reason explaining the shortfall.
type AssessmentResult struct {
	TestKind   TestKind            `json:"testKind"`
	Repetition RepetitionOutcome   `json:"repetitionOrEvent"`
	Quality    QualityScore        `json:"quality"`
	Integrity  SuspicionAssessment `json:"integrity"`
	Benchmark  BenchmarkResult     `json:"benchmark"`
	Confidence float64             `json:"confidence"`
	Status     ResultStatus        `json:"status"`
	Reason     string              `json:"reason,omitempty"`
}

// NormTiers holds the four ascending performance thresholds for one
// (test kind, age group, gender) cell of a norm table.
type NormTiers struct {
	Poor      float64 `json:"poor" mapstructure:"poor"`
	Average   float64 `json:"average" mapstructure:"average"`
	Good      float64 `json:"good" mapstructure:"good"`
	Excellent float64 `json:"excellent" mapstructure:"excellent"`
}

// NormTable is keyed by test kind, then age group, then gender.
type NormTable map[TestKind]map[string]map[string]NormTiers
