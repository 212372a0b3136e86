package core

import (
	"github.com/kinetrace/kinetrace/schema"
)

// gravity in m/s^2, used for flight-time jump height estimation.
const gravity = 9.81

// countRepetitions reduces a phase sequence into either a cyclic
// repetition count or a single-event metric, never both.
func countRepetitions(seg *segmentation, kind schema.TestKind, profile kindProfile) schema.RepetitionOutcome {
	if seg.unknownOnly() {
		return schema.RepetitionOutcome{}
	}
	if profile.cyclic {
		return countCycles(seg.phases, profile)
	}
	return eventMetric(seg, kind, profile)
}

// countCycles counts complete lowPhase→highPhase pairs whose combined
// duration falls inside the plausibility window. A trailing unmatched
// low phase never increments the count; it is recorded as an
// incomplete final repetition.
func countCycles(phases []schema.MovementPhase, profile kindProfile) schema.RepetitionOutcome {
	outcome := schema.RepetitionOutcome{CountValid: true}

	i := 0
	for i < len(phases) {
		if phases[i].Kind != profile.lowPhase {
			i++
			continue
		}
		if i+1 >= len(phases) {
			// Unmatched trailing low phase.
			outcome.IncompleteFinal = true
			break
		}
		if phases[i+1].Kind != profile.highPhase {
			i++
			continue
		}

		cycleMs := phases[i].DurationMs + phases[i+1].DurationMs
		if cycleMs >= profile.minCycleMs && cycleMs <= profile.maxCycleMs {
			outcome.Count++
		}
		// Both too-fast (noise) and stalled cycles are skipped without
		// counting; either way the pair is consumed.
		i += 2
	}

	return outcome
}

// eventMetric derives the single-event scalar for non-cyclic kinds.
func eventMetric(seg *segmentation, kind schema.TestKind, profile kindProfile) schema.RepetitionOutcome {
	outcome := schema.RepetitionOutcome{MetricName: profile.metricName}

	switch kind {
	case schema.VerticalJumpTest:
		extend, ok := findPhase(seg.phases, schema.ExtendPhase)
		if !ok {
			return outcome
		}
		// Rise time approximates half the flight; h = g/2 * t_up^2.
		tUp := float64(extend.DurationMs) / 1000.0
		outcome.MetricValue = 0.5 * gravity * tUp * tUp * 100 // cm
		outcome.MetricValid = true

	case schema.BroadJumpTest:
		extend, ok := findPhase(seg.phases, schema.ExtendPhase)
		if !ok {
			return outcome
		}
		land, landOK := findPhase(seg.phases, schema.LandPhase)
		startIdx := frameOffset(seg, extend.StartIndex)
		endIdx := len(seg.comX) - 1
		if landOK {
			endIdx = frameOffset(seg, land.EndIndex)
		}
		if startIdx < 0 || endIdx < 0 || !seg.comOK[startIdx] || !seg.comOK[endIdx] {
			return outcome
		}
		dx := seg.comX[endIdx] - seg.comX[startIdx]
		if dx < 0 {
			dx = -dx
		}
		outcome.MetricValue = dx * profile.jumpCalibration
		outcome.MetricValid = true

	case schema.PlankTest:
		var holdMs uint64
		for _, ph := range seg.phases {
			if ph.Kind == schema.HoldPhase {
				holdMs += ph.DurationMs
			}
		}
		if holdMs == 0 {
			return outcome
		}
		outcome.MetricValue = float64(holdMs) / 1000.0
		outcome.MetricValid = true
	}

	return outcome
}

// findPhase returns the first phase of the given kind.
func findPhase(phases []schema.MovementPhase, kind schema.PhaseKind) (schema.MovementPhase, bool) {
	for _, ph := range phases {
		if ph.Kind == kind {
			return ph, true
		}
	}
	return schema.MovementPhase{}, false
}

// frameOffset maps a frame Index back to its position in the buffered
// sequence. Phases carry source frame indices, which are not
// necessarily zero-based after downsampling.
func frameOffset(seg *segmentation, index uint32) int {
	for i, idx := range seg.indices {
		if idx == index {
			return i
		}
	}
	return -1
}
