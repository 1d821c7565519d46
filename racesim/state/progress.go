package state

import "time"

// Progress tracks race bookkeeping for one vehicle. It is eagerly
// initialized at vehicle creation; consumers never see a nil record.
// Only the physics engine's checkpoint check mutates counters.
type Progress struct {
	CurrentCheckpoint int
	LapCount          int
	LapTimes          []time.Duration
	RaceStart         time.Time
	LastLapBoundary   time.Time
	Started           bool
}

func MakeProgress() Progress {
	return Progress{
		LapTimes: make([]time.Duration, 0),
	}
}

// StartRace stamps the race start; called once when the director starts
// the race, and again on restart.
func (p *Progress) StartRace(now time.Time) {
	p.CurrentCheckpoint = 0
	p.LapCount = 0
	p.LapTimes = p.LapTimes[:0]
	p.RaceStart = now
	p.LastLapBoundary = now
	p.Started = true
}

// RecordLap closes the current lap and returns its duration.
func (p *Progress) RecordLap(now time.Time) time.Duration {
	duration := now.Sub(p.LastLapBoundary)
	p.LapTimes = append(p.LapTimes, duration)
	p.LastLapBoundary = now
	p.LapCount++

	return duration
}

func (p *Progress) TotalTime(now time.Time) time.Duration {
	if !p.Started {
		return 0
	}
	return now.Sub(p.RaceStart)
}
