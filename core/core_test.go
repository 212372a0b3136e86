package core

import (
	"context"
	"math"
	"testing"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"
	"github.com/stretchr/testify/require"
)

// testConfig builds a validated default config for a test kind.
func testConfig(t *testing.T, kind schema.TestKind) *contract.Config {
	t.Helper()
	cfg := &contract.Config{}
	input := &contract.ConfigRawInput{
		Test:             string(kind),
		Age:              21,
		Gender:           "male",
		MinFrames:        contract.DefaultMinFrames,
		Debounce:         contract.DefaultDebounceFrames,
		CheatThreshold:   contract.DefaultCheatThreshold,
		MinConfidence:    contract.DefaultMinConfidence,
		SamplingRate:     contract.DefaultSamplingRate,
		FrameBudget:      contract.DefaultFrameBudget,
		TimingVarianceMs: contract.DefaultTimingVarianceMs,
		EnvironmentDrift: contract.DefaultEnvironmentDrift,
		EdgeDensityFloor: contract.DefaultEdgeDensityFloor,
		Output:           string(schema.TextOut),
		Precision:        contract.DefaultPrecision,
		Limit:            contract.DefaultHistoryLimit,
		Emoji:            "no",
		Color:            "no",
		StoreBackend:     string(schema.NoneBackend),
	}
	require.NoError(t, contract.ProcessAndValidate(cfg, input))
	return cfg
}

// baseFrame returns a frame with calm image statistics.
func baseFrame(idx uint32, tsMs uint64) schema.FrameSignal {
	return schema.FrameSignal{
		Index:           idx,
		TimestampMs:     tsMs,
		Keypoints:       map[schema.JointName]schema.Keypoint{},
		Brightness:      0.5,
		EdgeDensity:     0.3,
		ColorVariance:   0.2,
		MotionMagnitude: 0.2,
	}
}

// withKneeAngle places hip/knee/ankle landmarks on both legs so the
// knee angle equals the given degrees.
func withKneeAngle(frame schema.FrameSignal, deg float64) schema.FrameSignal {
	rad := deg * math.Pi / 180
	for _, side := range []struct {
		x                float64
		hip, knee, ankle schema.JointName
	}{
		{0.45, schema.LeftHip, schema.LeftKnee, schema.LeftAnkle},
		{0.55, schema.RightHip, schema.RightKnee, schema.RightAnkle},
	} {
		hipY := 0.45
		kneeY := hipY + 0.15
		frame.Keypoints[side.hip] = schema.Keypoint{X: side.x, Y: hipY, Confidence: 0.9}
		frame.Keypoints[side.knee] = schema.Keypoint{X: side.x, Y: kneeY, Confidence: 0.9}
		frame.Keypoints[side.ankle] = schema.Keypoint{
			X:          side.x + 0.15*math.Sin(rad),
			Y:          kneeY - 0.15*math.Cos(rad),
			Confidence: 0.9,
		}
	}
	return frame
}

// withBody adds hips and shoulders at the given vertical center of
// mass, for jump tests.
func withBody(frame schema.FrameSignal, comY float64) schema.FrameSignal {
	frame.Keypoints[schema.LeftHip] = schema.Keypoint{X: 0.45, Y: comY, Confidence: 0.9}
	frame.Keypoints[schema.RightHip] = schema.Keypoint{X: 0.55, Y: comY, Confidence: 0.9}
	frame.Keypoints[schema.LeftShoulder] = schema.Keypoint{X: 0.45, Y: comY - 0.25, Confidence: 0.9}
	frame.Keypoints[schema.RightShoulder] = schema.Keypoint{X: 0.55, Y: comY - 0.25, Confidence: 0.9}
	return frame
}

// squatFrames alternates the knee angle between lowDeg and highDeg,
// framesPerPhase frames at a time, starting on the low (down) side.
func squatFrames(total, framesPerPhase int, stepMs uint64, lowDeg, highDeg float64) []schema.FrameSignal {
	frames := make([]schema.FrameSignal, 0, total)
	for i := 0; i < total; i++ {
		deg := lowDeg
		if (i/framesPerPhase)%2 == 1 {
			deg = highDeg
		}
		frame := withKneeAngle(baseFrame(uint32(i), uint64(i)*stepMs), deg)
		// Oscillating motion magnitude, matching a cyclic exercise.
		frame.MotionMagnitude = 0.3 + 0.25*math.Sin(float64(i)/2)
		frames = append(frames, frame)
	}
	return frames
}

// jumpFrames builds a clean crouch→extend→land vertical jump: standing,
// dipping down, exploding up, landing, settling. 30 frames at 100ms.
func jumpFrames() []schema.FrameSignal {
	frames := make([]schema.FrameSignal, 0, 30)
	comY := func(i int) float64 {
		switch {
		case i < 10: // standing
			return 0.50
		case i < 16: // crouch: sinking 0.02/frame
			return 0.50 + 0.02*float64(i-9)
		case i < 20: // extend: rising fast
			return 0.62 - 0.075*float64(i-15)
		case i < 26: // landing: coming back down
			return 0.32 + 0.03*float64(i-19)
		default: // settled
			return 0.50
		}
	}
	knee := func(i int) float64 {
		switch {
		case i < 10:
			return 172
		case i < 16: // bending into the crouch
			return 172 - 12*float64(i-9)
		default:
			return 172
		}
	}
	for i := 0; i < 30; i++ {
		frame := withKneeAngle(baseFrame(uint32(i), uint64(i)*100), knee(i))
		frame = withBody(frame, comY(i))
		if i >= 16 && i < 20 {
			frame.MotionMagnitude = 0.8 // takeoff burst
		} else {
			frame.MotionMagnitude = 0.05
		}
		frames = append(frames, frame)
	}
	return frames
}

// stubDetector returns canned presence reports by frame index.
type stubDetector struct {
	reports map[uint32]schema.PresenceReport
}

func (d *stubDetector) Presence(_ context.Context, frameIndex uint32) (schema.PresenceReport, error) {
	if r, ok := d.reports[frameIndex]; ok {
		return r, nil
	}
	return schema.PresenceReport{FrameIndex: frameIndex, PersonCount: 1}, nil
}
