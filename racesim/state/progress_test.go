package state

import (
	"testing"
	"time"
)

func TestProgressLapAccounting(t *testing.T) {
	progress := MakeProgress()

	if progress.Started {
		panic("fresh progress is not started")
	}

	start := time.Now()
	progress.StartRace(start)

	first := progress.RecordLap(start.Add(70 * time.Second))
	if first != 70*time.Second {
		t.Fatalf("expected a 70s first lap, got %v", first)
	}

	second := progress.RecordLap(start.Add(130 * time.Second))
	if second != 60*time.Second {
		t.Fatalf("expected a 60s second lap, got %v", second)
	}

	if progress.LapCount != 2 {
		t.Fatalf("expected 2 laps, got %d", progress.LapCount)
	}
	if len(progress.LapTimes) != 2 {
		panic("every recorded lap keeps its time")
	}

	if progress.TotalTime(start.Add(130*time.Second)) != 130*time.Second {
		panic("total time runs from the race start")
	}
}

func TestRestartResetsProgress(t *testing.T) {
	progress := MakeProgress()

	start := time.Now()
	progress.StartRace(start)
	progress.RecordLap(start.Add(time.Minute))
	progress.CurrentCheckpoint = 5

	progress.StartRace(start.Add(2 * time.Minute))

	if progress.LapCount != 0 || progress.CurrentCheckpoint != 0 {
		panic("a restart wipes counters")
	}
	if len(progress.LapTimes) != 0 {
		panic("a restart wipes lap times")
	}
}
