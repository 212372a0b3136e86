package core

import (
	"sort"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"
)

// segmentation is the shared intermediate the counter and quality
// assessor both read. It is immutable once built.
type segmentation struct {
	phases  []schema.MovementPhase
	tracked []schema.BodyAngle // tracked angle per frame
	indices []uint32           // source frame index per position
	comX    []float64
	comY    []float64
	comOK   []bool

	usableSignal   int // frames with a valid tracked signal
	usableKeypoint int // frames with any keypoint above the floor

	medianDeltaMs   uint64
	totalDurationMs uint64
}

// unknownOnly reports whether segmentation collapsed to a single
// Unknown phase.
func (s *segmentation) unknownOnly() bool {
	return len(s.phases) == 1 && s.phases[0].Kind == schema.UnknownPhase
}

// segmentFrames converts a frame sequence into contiguous, exhaustive
// movement phases for the given profile. Transitions fire when the
// derived signal crosses the profile's thresholds and only commit once
// the crossing holds for cfg.DebounceFrames consecutive frames.
// Sequences shorter than cfg.MinFrames, or with too few usable signal
// frames, yield a single Unknown phase spanning all frames.
func segmentFrames(frames []schema.FrameSignal, profile kindProfile, cfg *contract.Config) *segmentation {
	seg := &segmentation{
		tracked: make([]schema.BodyAngle, len(frames)),
		indices: make([]uint32, len(frames)),
		comX:    make([]float64, len(frames)),
		comY:    make([]float64, len(frames)),
		comOK:   make([]bool, len(frames)),
	}

	for i, frame := range frames {
		seg.indices[i] = frame.Index
		seg.tracked[i] = trackedAngle(frame, profile.trackedAngles, cfg.MinConfidence)
		seg.comX[i], seg.comY[i], seg.comOK[i] = centerOfMass(frame, cfg.MinConfidence)
		if schema.UsableKeypoints(frame, cfg.MinConfidence) {
			seg.usableKeypoint++
		}
		switch profile.signal {
		case signalVerticalCOM:
			if seg.comOK[i] {
				seg.usableSignal++
			}
		default:
			if seg.tracked[i].Valid {
				seg.usableSignal++
			}
		}
	}

	seg.medianDeltaMs = medianFrameDelta(frames)
	if n := len(frames); n > 0 {
		seg.totalDurationMs = frames[n-1].TimestampMs - frames[0].TimestampMs + seg.medianDeltaMs
	}

	if len(frames) < cfg.MinFrames || seg.usableSignal < cfg.MinFrames {
		seg.phases = unknownSpan(frames, seg.medianDeltaMs)
		return seg
	}

	var states []schema.PhaseKind
	switch profile.signal {
	case signalVerticalCOM:
		states = jumpStates(frames, seg, profile, cfg.DebounceFrames)
	default:
		states = angleStates(seg.tracked, profile, cfg.DebounceFrames)
	}

	seg.phases = buildPhases(frames, states, seg.medianDeltaMs)
	return seg
}

// angleStates runs the two-threshold hysteresis machine over the
// tracked angle series and returns the committed state per frame.
func angleStates(tracked []schema.BodyAngle, profile kindProfile, debounce int) []schema.PhaseKind {
	states := make([]schema.PhaseKind, len(tracked))

	candidate := func(current schema.PhaseKind, a schema.BodyAngle) schema.PhaseKind {
		if !a.Valid {
			return current
		}
		switch {
		case a.Degrees < profile.lowEnter:
			return profile.lowPhase
		case a.Degrees > profile.highEnter:
			return profile.highPhase
		default:
			return current
		}
	}

	current := candidate(profile.neutralPhase, firstValid(tracked))
	commitStates(states, tracked, current, candidate, debounce)
	return states
}

// jumpStates runs the crouch/extend/land machine over the smoothed
// vertical center-of-mass velocity.
func jumpStates(frames []schema.FrameSignal, seg *segmentation, profile kindProfile, debounce int) []schema.PhaseKind {
	vy := verticalVelocity(frames, seg)

	candidate := func(current schema.PhaseKind, a schema.BodyAngle) schema.PhaseKind {
		if !a.Valid {
			return current
		}
		v := a.Degrees // velocity smuggled through the same carrier
		switch current {
		case schema.IdlePhase:
			if v < -profile.extendVy {
				return schema.ExtendPhase
			}
			if v > profile.crouchVy {
				return schema.CrouchPhase
			}
		case schema.CrouchPhase:
			if v < -profile.extendVy {
				return schema.ExtendPhase
			}
		case schema.ExtendPhase:
			if v > profile.landVy {
				return schema.LandPhase
			}
		}
		return current
	}

	states := make([]schema.PhaseKind, len(frames))
	commitStates(states, vy, schema.IdlePhase, candidate, debounce)
	return states
}

// commitStates walks the signal series applying the candidate function
// with a minimum-run debounce. On commit, the transition is applied
// retroactively from the first frame of the qualifying run so phases
// stay contiguous.
func commitStates(
	states []schema.PhaseKind,
	signal []schema.BodyAngle,
	initial schema.PhaseKind,
	candidate func(schema.PhaseKind, schema.BodyAngle) schema.PhaseKind,
	debounce int,
) {
	current := initial
	pending := current
	pendingRun := 0
	pendingStart := 0

	for i := range signal {
		cand := candidate(current, signal[i])
		if cand == current {
			pendingRun = 0
			pending = current
		} else if cand == pending {
			pendingRun++
		} else {
			pending = cand
			pendingRun = 1
			pendingStart = i
		}

		states[i] = current
		if pendingRun >= debounce {
			current = pending
			for j := pendingStart; j <= i; j++ {
				states[j] = current
			}
			pendingRun = 0
		}
	}
}

// verticalVelocity derives the smoothed vertical center-of-mass
// velocity in normalized units per second, reusing the BodyAngle
// carrier so the debounce machinery is shared with angle signals.
func verticalVelocity(frames []schema.FrameSignal, seg *segmentation) []schema.BodyAngle {
	raw := make([]schema.BodyAngle, len(frames))
	for i := 1; i < len(frames); i++ {
		if !seg.comOK[i] || !seg.comOK[i-1] {
			continue
		}
		dtMs := frames[i].TimestampMs - frames[i-1].TimestampMs
		if dtMs == 0 {
			continue
		}
		v := (seg.comY[i] - seg.comY[i-1]) / (float64(dtMs) / 1000.0)
		raw[i] = schema.BodyAngle{Degrees: v, Valid: true}
	}

	// 3-point moving average to damp keypoint jitter.
	smoothed := make([]schema.BodyAngle, len(raw))
	for i := range raw {
		var sum float64
		var n int
		for j := max(0, i-1); j <= min(len(raw)-1, i+1); j++ {
			if raw[j].Valid {
				sum += raw[j].Degrees
				n++
			}
		}
		if n > 0 {
			smoothed[i] = schema.BodyAngle{Degrees: sum / float64(n), Valid: true}
		}
	}
	return smoothed
}

// buildPhases collapses the per-frame committed states into contiguous
// phases. Every frame index belongs to exactly one phase.
func buildPhases(frames []schema.FrameSignal, states []schema.PhaseKind, medianDelta uint64) []schema.MovementPhase {
	if len(frames) == 0 {
		return nil
	}

	var phases []schema.MovementPhase
	start := 0
	for i := 1; i <= len(states); i++ {
		if i < len(states) && states[i] == states[start] {
			continue
		}
		phases = append(phases, schema.MovementPhase{
			Kind:       states[start],
			StartIndex: frames[start].Index,
			EndIndex:   frames[i-1].Index,
			DurationMs: frames[i-1].TimestampMs - frames[start].TimestampMs + medianDelta,
		})
		start = i
	}
	return phases
}

// unknownSpan wraps the whole sequence in a single Unknown phase.
func unknownSpan(frames []schema.FrameSignal, medianDelta uint64) []schema.MovementPhase {
	if len(frames) == 0 {
		return nil
	}
	last := len(frames) - 1
	return []schema.MovementPhase{{
		Kind:       schema.UnknownPhase,
		StartIndex: frames[0].Index,
		EndIndex:   frames[last].Index,
		DurationMs: frames[last].TimestampMs - frames[0].TimestampMs + medianDelta,
	}}
}

// medianFrameDelta returns the median inter-frame time delta in ms,
// used to tile phase durations over the timeline.
func medianFrameDelta(frames []schema.FrameSignal) uint64 {
	if len(frames) < 2 {
		return 0
	}
	deltas := make([]uint64, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		deltas = append(deltas, frames[i].TimestampMs-frames[i-1].TimestampMs)
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i] < deltas[j] })
	return deltas[len(deltas)/2]
}

func firstValid(series []schema.BodyAngle) schema.BodyAngle {
	for _, a := range series {
		if a.Valid {
			return a
		}
	}
	return schema.BodyAngle{}
}
