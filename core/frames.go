package core

import (
	"context"
	"errors"
	"io"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"
)

// CollectFrames drains a frame source into a buffer for analysis.
// When the buffer would exceed the frame budget, the collected
// sequence is thinned to every other frame and subsequent frames are
// accepted at the reduced rate, so a constrained device degrades its
// sampling rate instead of failing.
func CollectFrames(ctx context.Context, src contract.FrameSource, budget int) ([]schema.FrameSignal, error) {
	if budget < 1 {
		budget = contract.DefaultFrameBudget
	}

	frames := make([]schema.FrameSignal, 0, min(budget, 1024))
	stride := 1
	skip := 0

	for {
		frame, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if skip > 0 {
			skip--
			continue
		}
		frames = append(frames, frame)
		skip = stride - 1

		if len(frames) >= budget {
			frames = Downsample(frames, 2)
			stride *= 2
		}
	}
}

// Downsample keeps every factor-th frame, preserving the ordering
// invariants of the sequence. A factor below 2 returns the input
// unchanged.
func Downsample(frames []schema.FrameSignal, factor int) []schema.FrameSignal {
	if factor < 2 || len(frames) == 0 {
		return frames
	}
	out := make([]schema.FrameSignal, 0, len(frames)/factor+1)
	for i := 0; i < len(frames); i += factor {
		out = append(out, frames[i])
	}
	return out
}
