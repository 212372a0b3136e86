package core

import (
	"testing"

	"github.com/kinetrace/kinetrace/schema"
	"github.com/stretchr/testify/assert"
)

func TestTimingScore(t *testing.T) {
	tests := []struct {
		name     string
		total    uint64
		expected uint64
		want     float64
	}{
		{name: "on target", total: 3000, expected: 3000, want: 1.0},
		{name: "half is the inclusive floor", total: 1500, expected: 3000, want: 1.0},
		{name: "double is the inclusive ceiling", total: 6000, expected: 3000, want: 1.0},
		{name: "far too short", total: 750, expected: 3000, want: 0.5},
		{name: "far too long", total: 12000, expected: 3000, want: 0.5},
		{name: "zero duration", total: 0, expected: 3000, want: 0},
		{name: "zero expectation", total: 3000, expected: 0, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, timingScore(tc.total, tc.expected), 1e-9)
		})
	}
}

func TestConsistencyScore(t *testing.T) {
	profile, _ := profileFor(schema.SquatTest)

	tests := []struct {
		name   string
		phases []schema.MovementPhase
		want   float64
		delta  float64
	}{
		{
			name: "identical cycles",
			phases: []schema.MovementPhase{
				phase(schema.DownPhase, 800), phase(schema.UpPhase, 800),
				phase(schema.DownPhase, 800), phase(schema.UpPhase, 800),
				phase(schema.DownPhase, 800), phase(schema.UpPhase, 800),
			},
			want: 1.0,
		},
		{
			name: "uneven cycles",
			phases: []schema.MovementPhase{
				phase(schema.DownPhase, 500), phase(schema.UpPhase, 500),
				phase(schema.DownPhase, 1000), phase(schema.UpPhase, 1000),
			},
			// durations 1000, 2000: mean 1500, sample std ~707
			want:  0.5286,
			delta: 0.001,
		},
		{
			name: "single cycle has no spread",
			phases: []schema.MovementPhase{
				phase(schema.DownPhase, 800), phase(schema.UpPhase, 800),
			},
			want: 1.0,
		},
		{
			name:   "no cycles",
			phases: []schema.MovementPhase{phase(schema.UpPhase, 5000)},
			want:   0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seg := &segmentation{phases: tc.phases}
			delta := tc.delta
			if delta == 0 {
				delta = 1e-9
			}
			assert.InDelta(t, tc.want, consistencyScore(seg, profile), delta)
		})
	}
}

func TestConsistencyScoreSingleEvent(t *testing.T) {
	profile, _ := profileFor(schema.VerticalJumpTest)
	seg := &segmentation{phases: []schema.MovementPhase{phase(schema.ExtendPhase, 500)}}
	assert.Equal(t, 1.0, consistencyScore(seg, profile))
}

func TestHoldStability(t *testing.T) {
	steady := &segmentation{}
	for i := 0; i < 20; i++ {
		steady.tracked = append(steady.tracked, schema.BodyAngle{Degrees: 175, Valid: true})
	}
	assert.InDelta(t, 1.0, holdStability(steady), 1e-9)

	wobbly := &segmentation{}
	for i := 0; i < 20; i++ {
		deg := 160.0
		if i%2 == 0 {
			deg = 190
		}
		wobbly.tracked = append(wobbly.tracked, schema.BodyAngle{Degrees: deg, Valid: true})
	}
	assert.Less(t, holdStability(wobbly), 0.2)
}

func TestRangeOfMotionScore(t *testing.T) {
	squat, _ := profileFor(schema.SquatTest) // target span 70
	plank, _ := profileFor(schema.PlankTest) // hold: span 45 scores 0

	track := func(degs ...float64) *segmentation {
		seg := &segmentation{}
		for _, d := range degs {
			seg.tracked = append(seg.tracked, schema.BodyAngle{Degrees: d, Valid: true})
		}
		return seg
	}

	tests := []struct {
		name    string
		profile kindProfile
		seg     *segmentation
		want    float64
	}{
		{name: "full squat range", profile: squat, seg: track(40, 160, 40, 160), want: 1.0},
		{name: "half squat range", profile: squat, seg: track(120, 155), want: 0.5},
		{name: "capped above target", profile: squat, seg: track(10, 170), want: 1.0},
		{name: "no valid signal", profile: squat, seg: track(), want: 0},
		{name: "steady hold is ideal", profile: plank, seg: track(175, 175, 175), want: 1.0},
		{name: "sagging hold penalized", profile: plank, seg: track(150, 172.5), want: 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, rangeOfMotionScore(tc.seg, tc.profile), 1e-9)
		})
	}
}

func TestPostureScore(t *testing.T) {
	profile, _ := profileFor(schema.PushupTest) // hip ideal [150,195], tolerance 30
	cfg := testConfig(t, schema.PushupTest)

	hipFrame := func(deg float64) schema.FrameSignal {
		frame := baseFrame(0, 0)
		frame.Keypoints[schema.LeftHip] = schema.Keypoint{X: 0.5, Y: 0.5, Confidence: 0.9}
		frame.Keypoints[schema.LeftAnkle] = schema.Keypoint{X: 0.8, Y: 0.5, Confidence: 0.9}
		return placeByAngle(frame, schema.LeftShoulder, 0.5, 0.5, deg)
	}

	tests := []struct {
		name string
		deg  float64
		want float64
	}{
		{name: "straight body line", deg: 180, want: 1.0},
		{name: "edge of ideal range", deg: 150, want: 1.0},
		{name: "half tolerance sag", deg: 135, want: 0.5},
		{name: "beyond tolerance", deg: 110, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frames := []schema.FrameSignal{hipFrame(tc.deg)}
			assert.InDelta(t, tc.want, postureScore(frames, profile, cfg.MinConfidence), 0.01)
		})
	}
}

func TestPostureScoreNoValidAngles(t *testing.T) {
	profile, _ := profileFor(schema.PushupTest)
	frames := []schema.FrameSignal{baseFrame(0, 0)}
	assert.Zero(t, postureScore(frames, profile, 0.3))
}

func TestComputeQualityWeighted(t *testing.T) {
	cfg := testConfig(t, schema.SquatTest)
	profile, _ := profileFor(schema.SquatTest)

	frames := squatFrames(40, 4, 200, 40, 160)
	seg := segmentFrames(frames, profile, cfg)

	q := computeQuality(seg, frames, schema.SquatTest, profile, cfg)

	// No posture landmarks in the synthetic frames, perfect cycle
	// spread and full range of motion; the clip is much shorter than a
	// real squat test.
	assert.Zero(t, q.Posture)
	assert.InDelta(t, 1.0, q.Consistency, 1e-9)
	assert.InDelta(t, 1.0, q.RangeOfMotion, 1e-9)
	assert.Greater(t, q.Timing, 0.0)
	assert.Less(t, q.Timing, 1.0)

	want := 0.25*q.Posture + 0.25*q.Consistency + 0.25*q.RangeOfMotion + 0.25*q.Timing
	assert.InDelta(t, want, q.Overall, 1e-9)
	assert.Equal(t, schema.BandForOverall(q.Overall), q.Band)
}
