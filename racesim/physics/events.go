package physics

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// Event is a race-level occurrence produced by the engine and consumed
// by the director, UI and audio layers.
type Event interface {
	isRaceEvent()
}

type CheckpointEvent struct {
	KartId          uuid.UUID
	CheckpointIndex int
	Timestamp       time.Time
}

func (CheckpointEvent) isRaceEvent() {}

type LapEvent struct {
	KartId    uuid.UUID
	LapNumber int
	Duration  time.Duration
	Timestamp time.Time
}

func (LapEvent) isRaceEvent() {}
