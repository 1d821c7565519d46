package physics

import (
	"time"

	"github.com/Jukeman9/Gokart-racing/racesim/state"
)

// CheckCheckpoints is the sole authority for race progress; no other
// component increments checkpoint or lap counters. At most one crossing
// is registered per call, so calling it twice within a tick without
// movement yields at most one event.
func (e *Engine) CheckCheckpoints(kart *state.Vehicle, now time.Time) Event {
	progress := &kart.Progress
	if !progress.Started {
		return nil
	}

	checkpoint := e.track.Checkpoints[progress.CurrentCheckpoint]
	if kart.Position.DistanceTo(checkpoint.Position) > checkpoint.Radius {
		return nil
	}

	lastIndex := len(e.track.Checkpoints) - 1
	if progress.CurrentCheckpoint == lastIndex {
		// the index wraps past the last checkpoint: a full traversal
		duration := progress.RecordLap(now)
		progress.CurrentCheckpoint = 0

		return LapEvent{
			KartId:    kart.Id,
			LapNumber: progress.LapCount,
			Duration:  duration,
			Timestamp: now,
		}
	}

	crossed := progress.CurrentCheckpoint
	progress.CurrentCheckpoint++

	return CheckpointEvent{
		KartId:          kart.Id,
		CheckpointIndex: crossed,
		Timestamp:       now,
	}
}

// RacePosition ranks by lap count first, then checkpoint fraction within
// the lap; ties keep input order. 1-indexed.
func (e *Engine) RacePosition(kart *state.Vehicle, karts []*state.Vehicle) int {
	total := float64(len(e.track.Checkpoints))
	myScore := raceScore(kart, total)

	myIndex := -1
	for i, other := range karts {
		if other == kart {
			myIndex = i
			break
		}
	}

	position := 1
	for i, other := range karts {
		if other == kart {
			continue
		}
		score := raceScore(other, total)
		if score > myScore || (score == myScore && i < myIndex && myIndex >= 0) {
			position++
		}
	}

	return position
}

func raceScore(kart *state.Vehicle, totalCheckpoints float64) float64 {
	return float64(kart.Progress.LapCount) + float64(kart.Progress.CurrentCheckpoint)/totalCheckpoints
}
