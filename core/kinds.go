package core

import "github.com/kinetrace/kinetrace/schema"

// trackedSignal selects which derived signal drives phase transitions.
type trackedSignal int

const (
	signalJointAngle trackedSignal = iota // tracked joint angle in degrees
	signalVerticalCOM                     // vertical center-of-mass velocity
)

// kindProfile holds the per-test-kind thresholds and phase names.
// Adding a test kind is a data change here, not a control-flow change.
type kindProfile struct {
	cyclic bool
	signal trackedSignal

	// trackedAngles drive the cyclic/hold state machine; the average of
	// the valid ones is used per frame.
	trackedAngles []schema.AngleName

	// lowPhase is entered when the tracked angle drops below lowEnter,
	// highPhase when it rises above highEnter. The band between the two
	// thresholds acts as hysteresis and keeps the current phase.
	// neutralPhase is where the machine starts before the signal picks
	// a side.
	lowPhase     schema.PhaseKind
	highPhase    schema.PhaseKind
	neutralPhase schema.PhaseKind
	lowEnter     float64
	highEnter    float64

	// postureAngles are scored against the ideal range. Deviations
	// beyond postureTolerance degrees outside [idealMin, idealMax]
	// score zero.
	postureAngles    []schema.AngleName
	idealMin         float64
	idealMax         float64
	postureTolerance float64

	// romTargetSpan is the target tracked-angle span in degrees.
	// romHoldSteady inverts the score for hold tests where a small
	// span is the goal.
	romTargetSpan float64
	romHoldSteady bool

	// Cycle plausibility window and expected total test duration.
	minCycleMs         uint64
	maxCycleMs         uint64
	expectedDurationMs uint64

	// Vertical-velocity thresholds for single-event kinds, in
	// normalized units per second. Positive velocity moves down
	// the image.
	crouchVy float64
	extendVy float64
	landVy   float64

	// metricName labels the single-event scalar.
	metricName string

	// jumpCalibration scales normalized displacement into the metric
	// unit (meters per normalized screen width for the broad jump).
	jumpCalibration float64

	expectedPatterns map[schema.MotionPattern]struct{}
	allowedObjects   map[string]struct{}
}

func patterns(ps ...schema.MotionPattern) map[schema.MotionPattern]struct{} {
	m := make(map[schema.MotionPattern]struct{}, len(ps))
	for _, p := range ps {
		m[p] = struct{}{}
	}
	return m
}

func objects(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

var kindProfiles = map[schema.TestKind]kindProfile{
	schema.PushupTest: {
		cyclic:           true,
		signal:           signalJointAngle,
		trackedAngles:    []schema.AngleName{schema.LeftElbowAngle, schema.RightElbowAngle},
		lowPhase:         schema.DownPhase,
		highPhase:        schema.UpPhase,
		neutralPhase:     schema.UpPhase,
		lowEnter:         95,
		highEnter:        150,
		postureAngles:    []schema.AngleName{schema.LeftHipAngle, schema.RightHipAngle},
		idealMin:         150,
		idealMax:         195,
		postureTolerance: 30,
		romTargetSpan:    70,
		minCycleMs:       600,
		maxCycleMs:       8000,
		expectedDurationMs: 30000,
		expectedPatterns: patterns(schema.RepetitivePattern, schema.BackAndForthPattern),
		allowedObjects:   objects("exercise_mat"),
	},
	schema.SitupTest: {
		cyclic:        true,
		signal:        signalJointAngle,
		trackedAngles: []schema.AngleName{schema.LeftHipAngle, schema.RightHipAngle},
		// Curling up shrinks the hip angle, so the contracted phase is
		// the low side of the band.
		lowPhase:         schema.UpPhase,
		highPhase:        schema.DownPhase,
		neutralPhase:     schema.DownPhase,
		lowEnter:         90,
		highEnter:        130,
		postureAngles:    []schema.AngleName{schema.LeftKneeAngle, schema.RightKneeAngle},
		idealMin:         60,
		idealMax:         110,
		postureTolerance: 35,
		romTargetSpan:    60,
		minCycleMs:       800,
		maxCycleMs:       10000,
		expectedDurationMs: 60000,
		expectedPatterns: patterns(schema.RepetitivePattern, schema.BackAndForthPattern),
		allowedObjects:   objects("exercise_mat"),
	},
	schema.SquatTest: {
		cyclic:           true,
		signal:           signalJointAngle,
		trackedAngles:    []schema.AngleName{schema.LeftKneeAngle, schema.RightKneeAngle},
		lowPhase:         schema.DownPhase,
		highPhase:        schema.UpPhase,
		neutralPhase:     schema.UpPhase,
		lowEnter:         100,
		highEnter:        150,
		postureAngles:    []schema.AngleName{schema.LeftHipAngle, schema.RightHipAngle},
		idealMin:         70,
		idealMax:         180,
		postureTolerance: 40,
		romTargetSpan:    70,
		minCycleMs:       600,
		maxCycleMs:       8000,
		expectedDurationMs: 45000,
		expectedPatterns: patterns(schema.RepetitivePattern, schema.BackAndForthPattern),
		allowedObjects:   objects(),
	},
	schema.VerticalJumpTest: {
		cyclic:           false,
		signal:           signalVerticalCOM,
		trackedAngles:    []schema.AngleName{schema.LeftKneeAngle, schema.RightKneeAngle},
		postureAngles:    []schema.AngleName{schema.LeftKneeAngle, schema.RightKneeAngle},
		idealMin:         70,
		idealMax:         180,
		postureTolerance: 45,
		romTargetSpan:    60,
		crouchVy:         0.15,
		extendVy:         0.25,
		landVy:           0.20,
		expectedDurationMs: 3000,
		metricName:       "jump_height_cm",
		expectedPatterns: patterns(schema.BurstPattern),
		allowedObjects:   objects(),
	},
	schema.BroadJumpTest: {
		cyclic:           false,
		signal:           signalVerticalCOM,
		trackedAngles:    []schema.AngleName{schema.LeftKneeAngle, schema.RightKneeAngle},
		postureAngles:    []schema.AngleName{schema.LeftKneeAngle, schema.RightKneeAngle},
		idealMin:         70,
		idealMax:         180,
		postureTolerance: 45,
		romTargetSpan:    60,
		crouchVy:         0.15,
		extendVy:         0.25,
		landVy:           0.20,
		expectedDurationMs: 4000,
		metricName:       "distance_m",
		jumpCalibration:  3.0,
		expectedPatterns: patterns(schema.BurstPattern),
		allowedObjects:   objects("tape_measure"),
	},
	schema.PlankTest: {
		cyclic:        false,
		signal:        signalJointAngle,
		trackedAngles: []schema.AngleName{schema.LeftHipAngle, schema.RightHipAngle},
		// Hold while the body line stays straight.
		lowPhase:         schema.IdlePhase,
		highPhase:        schema.HoldPhase,
		neutralPhase:     schema.IdlePhase,
		lowEnter:         150,
		highEnter:        160,
		postureAngles:    []schema.AngleName{schema.LeftHipAngle, schema.RightHipAngle},
		idealMin:         160,
		idealMax:         195,
		postureTolerance: 25,
		romTargetSpan:    45,
		romHoldSteady:    true,
		expectedDurationMs: 60000,
		metricName:       "hold_seconds",
		expectedPatterns: patterns(schema.StaticPattern, schema.SteadyPattern),
		allowedObjects:   objects("exercise_mat"),
	},
}

// profileFor returns the threshold/phase-name table for a test kind.
func profileFor(kind schema.TestKind) (kindProfile, bool) {
	p, ok := kindProfiles[kind]
	return p, ok
}
