package core

import (
	"testing"

	"github.com/kinetrace/kinetrace/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phase(kind schema.PhaseKind, durMs uint64) schema.MovementPhase {
	return schema.MovementPhase{Kind: kind, DurationMs: durMs}
}

func TestCountCycles(t *testing.T) {
	profile, _ := profileFor(schema.SquatTest) // window [600, 8000]ms

	tests := []struct {
		name           string
		phases         []schema.MovementPhase
		wantCount      int
		wantIncomplete bool
	}{
		{
			name: "three clean cycles",
			phases: []schema.MovementPhase{
				phase(schema.DownPhase, 800), phase(schema.UpPhase, 800),
				phase(schema.DownPhase, 900), phase(schema.UpPhase, 700),
				phase(schema.DownPhase, 800), phase(schema.UpPhase, 800),
			},
			wantCount: 3,
		},
		{
			name: "leading idle ignored",
			phases: []schema.MovementPhase{
				phase(schema.UpPhase, 1000),
				phase(schema.DownPhase, 800), phase(schema.UpPhase, 800),
			},
			wantCount: 1,
		},
		{
			name: "trailing unmatched down",
			phases: []schema.MovementPhase{
				phase(schema.DownPhase, 800), phase(schema.UpPhase, 800),
				phase(schema.DownPhase, 900),
			},
			wantCount:      1,
			wantIncomplete: true,
		},
		{
			name: "too-fast cycle skipped",
			phases: []schema.MovementPhase{
				phase(schema.DownPhase, 200), phase(schema.UpPhase, 200),
				phase(schema.DownPhase, 800), phase(schema.UpPhase, 800),
			},
			wantCount: 1,
		},
		{
			name: "stalled cycle skipped",
			phases: []schema.MovementPhase{
				phase(schema.DownPhase, 6000), phase(schema.UpPhase, 6000),
				phase(schema.DownPhase, 800), phase(schema.UpPhase, 800),
			},
			wantCount: 1,
		},
		{
			name:      "no movement",
			phases:    []schema.MovementPhase{phase(schema.UpPhase, 5000)},
			wantCount: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			outcome := countCycles(tc.phases, profile)
			assert.True(t, outcome.CountValid)
			assert.False(t, outcome.MetricValid)
			assert.Equal(t, tc.wantCount, outcome.Count)
			assert.Equal(t, tc.wantIncomplete, outcome.IncompleteFinal)
		})
	}
}

func TestCountUnknownOnly(t *testing.T) {
	profile, _ := profileFor(schema.SquatTest)
	seg := &segmentation{phases: []schema.MovementPhase{phase(schema.UnknownPhase, 1000)}}

	outcome := countRepetitions(seg, schema.SquatTest, profile)
	assert.Zero(t, outcome.Count)
	assert.False(t, outcome.CountValid)
	assert.False(t, outcome.MetricValid)
}

func TestEventMetricVerticalJump(t *testing.T) {
	profile, _ := profileFor(schema.VerticalJumpTest)
	seg := &segmentation{phases: []schema.MovementPhase{
		phase(schema.IdlePhase, 1000),
		phase(schema.CrouchPhase, 500),
		phase(schema.ExtendPhase, 500),
		phase(schema.LandPhase, 1000),
	}}

	outcome := eventMetric(seg, schema.VerticalJumpTest, profile)
	require.True(t, outcome.MetricValid)
	assert.Equal(t, "jump_height_cm", outcome.MetricName)
	// h = g/2 * 0.5s^2 = 122.625cm
	assert.InDelta(t, 122.625, outcome.MetricValue, 0.001)
	assert.False(t, outcome.CountValid)
}

func TestEventMetricVerticalJumpNoTakeoff(t *testing.T) {
	profile, _ := profileFor(schema.VerticalJumpTest)
	seg := &segmentation{phases: []schema.MovementPhase{phase(schema.IdlePhase, 3000)}}

	outcome := eventMetric(seg, schema.VerticalJumpTest, profile)
	assert.False(t, outcome.MetricValid)
	assert.Equal(t, "jump_height_cm", outcome.MetricName)
}

func TestEventMetricBroadJump(t *testing.T) {
	profile, _ := profileFor(schema.BroadJumpTest)

	seg := &segmentation{
		phases: []schema.MovementPhase{
			{Kind: schema.IdlePhase, StartIndex: 0, EndIndex: 9, DurationMs: 1000},
			{Kind: schema.ExtendPhase, StartIndex: 10, EndIndex: 14, DurationMs: 500},
			{Kind: schema.LandPhase, StartIndex: 15, EndIndex: 19, DurationMs: 500},
		},
		indices: make([]uint32, 20),
		comX:    make([]float64, 20),
		comY:    make([]float64, 20),
		comOK:   make([]bool, 20),
	}
	for i := range seg.indices {
		seg.indices[i] = uint32(i)
		seg.comOK[i] = true
		seg.comX[i] = 0.2
	}
	seg.comX[19] = 0.8 // landed 0.6 screen widths away

	outcome := eventMetric(seg, schema.BroadJumpTest, profile)
	require.True(t, outcome.MetricValid)
	assert.Equal(t, "distance_m", outcome.MetricName)
	assert.InDelta(t, 1.8, outcome.MetricValue, 0.001)
}

func TestEventMetricPlank(t *testing.T) {
	profile, _ := profileFor(schema.PlankTest)
	seg := &segmentation{phases: []schema.MovementPhase{
		phase(schema.IdlePhase, 2000),
		phase(schema.HoldPhase, 28000),
		phase(schema.IdlePhase, 1000),
		phase(schema.HoldPhase, 4000),
	}}

	outcome := eventMetric(seg, schema.PlankTest, profile)
	require.True(t, outcome.MetricValid)
	assert.Equal(t, "hold_seconds", outcome.MetricName)
	assert.InDelta(t, 32.0, outcome.MetricValue, 0.001)
}

func TestFrameOffset(t *testing.T) {
	seg := &segmentation{indices: []uint32{0, 2, 4, 6, 8}}

	assert.Equal(t, 2, frameOffset(seg, 4))
	assert.Equal(t, 0, frameOffset(seg, 0))
	assert.Equal(t, -1, frameOffset(seg, 5))
}
