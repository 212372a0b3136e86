package core

import (
	"context"
	"testing"

	"github.com/kinetrace/kinetrace/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calmFrames(n int) []schema.FrameSignal {
	frames := make([]schema.FrameSignal, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, baseFrame(uint32(i), uint64(i)*100))
	}
	return frames
}

func TestCheckBrightness(t *testing.T) {
	t.Run("stable lighting passes", func(t *testing.T) {
		result := checkBrightness(calmFrames(20))
		assert.False(t, result.Triggered)
	})

	t.Run("flickering lighting triggers on variance", func(t *testing.T) {
		frames := calmFrames(20)
		for i := range frames {
			if i%2 == 0 {
				frames[i].Brightness = 0.1
			} else {
				frames[i].Brightness = 0.9
			}
		}
		result := checkBrightness(frames)
		assert.True(t, result.Triggered)
		assert.Contains(t, result.Detail, "variance")
	})

	t.Run("single deviant frame triggers", func(t *testing.T) {
		frames := calmFrames(20)
		frames[10].Brightness = 0.95
		result := checkBrightness(frames)
		assert.True(t, result.Triggered)
		assert.Contains(t, result.Detail, "deviates")
	})
}

func TestCheckFrameTiming(t *testing.T) {
	t.Run("regular cadence passes", func(t *testing.T) {
		result := checkFrameTiming(calmFrames(20), 2000)
		assert.False(t, result.Triggered)
	})

	t.Run("gaps trigger", func(t *testing.T) {
		frames := calmFrames(20)
		for i := 15; i < 20; i++ {
			frames[i].TimestampMs += 4000 // trimmed segment
		}
		result := checkFrameTiming(frames, 2000)
		assert.True(t, result.Triggered)
	})
}

func TestCheckCompression(t *testing.T) {
	t.Run("normal edge density passes", func(t *testing.T) {
		result := checkCompression(calmFrames(20), 0.10)
		assert.False(t, result.Triggered)
	})

	t.Run("washed-out frames trigger", func(t *testing.T) {
		frames := calmFrames(20)
		for i := range frames {
			frames[i].EdgeDensity = 0.03
		}
		result := checkCompression(frames, 0.10)
		assert.True(t, result.Triggered)
	})
}

func TestCheckSplice(t *testing.T) {
	t.Run("two cuts tolerated", func(t *testing.T) {
		frames := calmFrames(20)
		frames[5].Brightness = 0.9
		frames[6].Brightness = 0.5
		result := checkSplice(frames)
		assert.False(t, result.Triggered)
	})

	t.Run("repeated discontinuities trigger", func(t *testing.T) {
		frames := calmFrames(20)
		for _, i := range []int{4, 9, 14} {
			frames[i].Brightness = 0.95 // two jumps per spike
		}
		result := checkSplice(frames)
		assert.True(t, result.Triggered)
	})
}

func TestClassifyMotionPattern(t *testing.T) {
	repeat := func(v float64, n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}

	oscillating := make([]float64, 40)
	for i := range oscillating {
		if i%3 == 0 {
			oscillating[i] = 0.6
		} else {
			oscillating[i] = 0.1
		}
	}

	burst := repeat(0.05, 30)
	for i := 14; i < 17; i++ {
		burst[i] = 0.9
	}

	thereAndBack := make([]float64, 20)
	for i := range thereAndBack {
		if i >= 8 && i < 16 {
			thereAndBack[i] = 0.6
		} else {
			thereAndBack[i] = 0.2
		}
	}

	tests := []struct {
		name string
		mags []float64
		want schema.MotionPattern
	}{
		{name: "empty", mags: nil, want: schema.StaticPattern},
		{name: "near still", mags: repeat(0.01, 30), want: schema.StaticPattern},
		{name: "constant effort", mags: repeat(0.3, 30), want: schema.SteadyPattern},
		{name: "oscillating", mags: oscillating, want: schema.RepetitivePattern},
		{name: "single spike", mags: burst, want: schema.BurstPattern},
		{name: "out and back", mags: thereAndBack, want: schema.BackAndForthPattern},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyMotionPattern(tc.mags))
		})
	}
}

func TestCheckPattern(t *testing.T) {
	profile, _ := profileFor(schema.SquatTest)

	frames := calmFrames(30)
	for i := range frames {
		frames[i].MotionMagnitude = 0.3 // steady, not repetitive
	}
	result := checkPattern(frames, schema.SquatTest, profile)
	assert.True(t, result.Triggered)
	assert.Contains(t, result.Detail, "steady")
}

func TestCheckPresence(t *testing.T) {
	ctx := context.Background()
	profile, _ := profileFor(schema.PushupTest) // exercise_mat allowed
	frames := calmFrames(10)

	t.Run("nil detector skips", func(t *testing.T) {
		result := checkPresence(ctx, frames, profile, nil)
		assert.False(t, result.Triggered)
		assert.Contains(t, result.Detail, "skipped")
	})

	t.Run("solo subject passes", func(t *testing.T) {
		result := checkPresence(ctx, frames, profile, &stubDetector{})
		assert.False(t, result.Triggered)
	})

	t.Run("second person triggers", func(t *testing.T) {
		detector := &stubDetector{reports: map[uint32]schema.PresenceReport{
			6: {FrameIndex: 6, PersonCount: 2},
		}}
		result := checkPresence(ctx, frames, profile, detector)
		assert.True(t, result.Triggered)
		assert.Contains(t, result.Detail, "frame 6")
	})

	t.Run("allowed object passes", func(t *testing.T) {
		detector := &stubDetector{reports: map[uint32]schema.PresenceReport{
			3: {FrameIndex: 3, PersonCount: 1, Objects: []string{"exercise_mat"}},
		}}
		result := checkPresence(ctx, frames, profile, detector)
		assert.False(t, result.Triggered)
	})

	t.Run("disallowed object triggers", func(t *testing.T) {
		detector := &stubDetector{reports: map[uint32]schema.PresenceReport{
			3: {FrameIndex: 3, PersonCount: 1, Objects: []string{"resistance_band"}},
		}}
		result := checkPresence(ctx, frames, profile, detector)
		assert.True(t, result.Triggered)
		assert.Contains(t, result.Detail, "resistance_band")
	})
}

func TestCheckEnvironment(t *testing.T) {
	t.Run("static scene passes", func(t *testing.T) {
		result := checkEnvironment(calmFrames(30), 0.15)
		assert.False(t, result.Triggered)
	})

	t.Run("location change triggers", func(t *testing.T) {
		frames := calmFrames(30)
		for i := 20; i < 30; i++ {
			frames[i].ColorVariance = 0.6
		}
		result := checkEnvironment(frames, 0.15)
		assert.True(t, result.Triggered)
	})
}

func TestAnalyzeIntegrityClean(t *testing.T) {
	cfg := testConfig(t, schema.SquatTest)
	profile, _ := profileFor(schema.SquatTest)

	frames := squatFrames(40, 4, 200, 40, 160)
	assessment := analyzeIntegrity(context.Background(), frames, schema.SquatTest, profile, cfg)

	assert.Zero(t, assessment.Score)
	assert.False(t, assessment.IsSuspicious)
	assert.Len(t, assessment.Checks, 7)
	assert.Empty(t, assessment.Issues)
	assert.Empty(t, assessment.Recommendations)
}

func TestAnalyzeIntegrityClampsScore(t *testing.T) {
	cfg := testConfig(t, schema.PushupTest)
	cfg.Detector = &stubDetector{reports: map[uint32]schema.PresenceReport{
		0: {FrameIndex: 0, PersonCount: 3},
	}}
	profile, _ := profileFor(schema.PushupTest)

	// Every check fires: flicker, huge timing gaps, no edge detail,
	// repeated cuts, steady motion, extra people, a scene change.
	frames := make([]schema.FrameSignal, 0, 30)
	ts := uint64(0)
	for i := 0; i < 30; i++ {
		if i%5 == 0 {
			ts += 3000
		} else {
			ts += 100
		}
		frame := baseFrame(uint32(i), ts)
		if i%2 == 0 {
			frame.Brightness = 0.05
		} else {
			frame.Brightness = 0.95
		}
		frame.EdgeDensity = 0.01
		frame.MotionMagnitude = 0.3
		if i >= 20 {
			frame.ColorVariance = 0.8
		}
		frames = append(frames, frame)
	}

	assessment := analyzeIntegrity(context.Background(), frames, schema.PushupTest, profile, cfg)

	for _, check := range assessment.Checks {
		assert.True(t, check.Triggered, string(check.Kind))
	}
	// Raw weights sum to 1.25; the score stays clamped.
	assert.Equal(t, 1.0, assessment.Score)
	assert.True(t, assessment.IsSuspicious)
	require.Len(t, assessment.Issues, 7)
	require.Len(t, assessment.Recommendations, 7)
}

func FuzzIntegrityScoreBounds(f *testing.F) {
	f.Add(0.5, 0.3, 0.2, 0.2, uint64(100))
	f.Add(0.0, 0.0, 0.0, 0.0, uint64(1))
	f.Add(1.0, 1.0, 1.0, 1.0, uint64(5000))
	f.Add(0.9, 0.01, 0.7, 0.05, uint64(33))

	f.Fuzz(func(t *testing.T, brightness, edge, color, motion float64, stepMs uint64) {
		if brightness < 0 || brightness > 1 || edge < 0 || edge > 1 ||
			color < 0 || color > 1 || motion < 0 || motion > 1 {
			t.Skip()
		}
		if stepMs == 0 || stepMs > 60000 {
			t.Skip()
		}

		cfg := testConfig(t, schema.SquatTest)
		profile, _ := profileFor(schema.SquatTest)

		frames := make([]schema.FrameSignal, 0, 24)
		for i := 0; i < 24; i++ {
			frame := baseFrame(uint32(i), uint64(i+1)*stepMs)
			frame.Brightness = brightness
			frame.EdgeDensity = edge
			frame.ColorVariance = color
			frame.MotionMagnitude = motion
			if i%2 == 0 {
				frame.Brightness = 1 - brightness
			}
			frames = append(frames, frame)
		}

		assessment := analyzeIntegrity(context.Background(), frames, schema.SquatTest, profile, cfg)
		if assessment.Score < 0 || assessment.Score > 1 {
			t.Errorf("suspicion score %f out of bounds", assessment.Score)
		}
		if assessment.IsSuspicious != (assessment.Score > cfg.CheatThreshold) {
			t.Errorf("suspicion flag inconsistent with score %f", assessment.Score)
		}
	})
}
