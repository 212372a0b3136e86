package schema

// Custom string types for type safety.
type (
	// TestKind identifies a prescribed fitness test.
	TestKind string

	// PhaseKind names one stage of a movement.
	PhaseKind string

	// JointName identifies a pose landmark.
	JointName string

	// AngleName identifies a derived joint angle.
	AngleName string

	// CheckKind identifies an integrity check.
	CheckKind string

	// MotionPattern classifies an overall motion-magnitude trace.
	MotionPattern string

	// RatingTier is a benchmarked performance rating.
	RatingTier string

	// QualityBand is a qualitative movement-quality band.
	QualityBand string

	// ResultStatus describes how an analysis run completed.
	ResultStatus string

	// SubScoreKey represents keys used in quality weighting.
	SubScoreKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// StorageBackend represents the database backend for result history.
	StorageBackend string
)

// All test kinds supported.
const (
	PushupTest       TestKind = "pushup"
	SitupTest        TestKind = "situp"
	SquatTest        TestKind = "squat"
	VerticalJumpTest TestKind = "vertical_jump"
	BroadJumpTest    TestKind = "broad_jump"
	PlankTest        TestKind = "plank"
)

// All movement phases used across test kinds.
const (
	UnknownPhase PhaseKind = "unknown"
	IdlePhase    PhaseKind = "idle"
	DownPhase    PhaseKind = "down"
	UpPhase      PhaseKind = "up"
	CrouchPhase  PhaseKind = "crouch"
	ExtendPhase  PhaseKind = "extend"
	LandPhase    PhaseKind = "land"
	HoldPhase    PhaseKind = "hold"
)

// Pose landmarks consumed from the frame signal source.
const (
	Nose          JointName = "nose"
	LeftShoulder  JointName = "left_shoulder"
	RightShoulder JointName = "right_shoulder"
	LeftElbow     JointName = "left_elbow"
	RightElbow    JointName = "right_elbow"
	LeftWrist     JointName = "left_wrist"
	RightWrist    JointName = "right_wrist"
	LeftHip       JointName = "left_hip"
	RightHip      JointName = "right_hip"
	LeftKnee      JointName = "left_knee"
	RightKnee     JointName = "right_knee"
	LeftAnkle     JointName = "left_ankle"
	RightAnkle    JointName = "right_ankle"
)

// Derived joint angles.
const (
	LeftElbowAngle  AngleName = "left_elbow"
	RightElbowAngle AngleName = "right_elbow"
	LeftKneeAngle   AngleName = "left_knee"
	RightKneeAngle  AngleName = "right_knee"
	LeftHipAngle    AngleName = "left_hip"
	RightHipAngle   AngleName = "right_hip"
)

// All integrity checks.
const (
	BrightnessCheck  CheckKind = "brightness_consistency"
	FrameTimingCheck CheckKind = "frame_timing"
	CompressionCheck CheckKind = "compression_artifacts"
	SpliceCheck      CheckKind = "splice_detection"
	PatternCheck     CheckKind = "movement_pattern"
	PresenceCheck    CheckKind = "foreign_presence"
	EnvironmentCheck CheckKind = "environment_consistency"
)

// All motion patterns.
const (
	StaticPattern       MotionPattern = "static"
	RepetitivePattern   MotionPattern = "repetitive"
	BurstPattern        MotionPattern = "burst"
	BackAndForthPattern MotionPattern = "back_and_forth"
	SteadyPattern       MotionPattern = "steady"
)

// All rating tiers, worst to best.
const (
	PoorRating      RatingTier = "poor"
	AverageRating   RatingTier = "average"
	GoodRating      RatingTier = "good"
	ExcellentRating RatingTier = "excellent"
)

// All quality bands, best to worst.
const (
	ExcellentBand QualityBand = "excellent"
	GoodBand      QualityBand = "good"
	AverageBand   QualityBand = "average"
	NeedsWorkBand QualityBand = "needs-improvement"
)

// All result statuses.
const (
	OkStatus       ResultStatus = "ok"
	DegradedStatus ResultStatus = "degraded"
	FailedStatus   ResultStatus = "failed"
)

// Sub-score keys used in quality weighting.
const (
	PostureKey     SubScoreKey = "posture"
	ConsistencyKey SubScoreKey = "consistency"
	RangeKey       SubScoreKey = "range_of_motion"
	TimingKey      SubScoreKey = "timing"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All storage backends supported.
const (
	SQLiteBackend     StorageBackend = "sqlite" // default
	MySQLBackend      StorageBackend = "mysql"
	PostgreSQLBackend StorageBackend = "postgresql"
	NoneBackend       StorageBackend = "none"
)

// AllTestKinds returns a list of all supported test kinds.
var AllTestKinds = []TestKind{
	PushupTest, SitupTest, SquatTest, VerticalJumpTest, BroadJumpTest, PlankTest,
}

// AllSubScoreKeys returns a list of all quality sub-score keys.
var AllSubScoreKeys = []SubScoreKey{PostureKey, ConsistencyKey, RangeKey, TimingKey}

// ValidTestKinds lists all valid test kinds.
var ValidTestKinds = map[TestKind]struct{}{
	PushupTest:       {},
	SitupTest:        {},
	SquatTest:        {},
	VerticalJumpTest: {},
	BroadJumpTest:    {},
	PlankTest:        {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStorageBackends lists all valid storage backends.
var ValidStorageBackends = map[StorageBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidGenders lists the genders norm tables are keyed by.
var ValidGenders = map[string]struct{}{
	"male":   {},
	"female": {},
}
