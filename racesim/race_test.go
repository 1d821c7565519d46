package racesim

import (
	"testing"

	"github.com/Jukeman9/Gokart-racing/racesim/track"
)

func makeTestRace(t *testing.T) *Race {
	raceTrack, err := track.GenerateOval(track.DefaultOvalSpec())
	if err != nil {
		t.Fatal(err)
	}

	race, err := NewRace(RaceOptions{
		Track:      raceTrack,
		TargetLaps: 1,
		Seed:       99,
	})
	if err != nil {
		t.Fatal(err)
	}

	return race
}

func TestNewRaceNeedsATrack(t *testing.T) {
	if _, err := NewRace(RaceOptions{}); err == nil {
		panic("a race without a track must be rejected")
	}
}

func TestSingleLocalPlayer(t *testing.T) {
	race := makeTestRace(t)

	if _, err := race.AddLocalPlayer("alice", "standard"); err != nil {
		t.Fatal(err)
	}
	if _, err := race.AddLocalPlayer("bob", "standard"); err == nil {
		panic("a second local player must be rejected")
	}
}

func TestAddBotValidation(t *testing.T) {
	race := makeTestRace(t)

	if _, err := race.AddBot("impossible", "standard", ""); err == nil {
		panic("unknown difficulty must be rejected")
	}
	if _, err := race.AddBot("easy", "hovercraft", ""); err == nil {
		panic("unknown handling must be rejected")
	}

	kart, err := race.AddBot("easy", "standard", "")
	if err != nil {
		t.Fatal(err)
	}
	if kart.DisplayName == "" {
		panic("bots without a name should draw one")
	}
}

func TestGridPlacesKartsApart(t *testing.T) {
	race := makeTestRace(t)

	if _, err := race.AddLocalPlayer("alice", "standard"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := race.AddBot("medium", "standard", ""); err != nil {
			t.Fatal(err)
		}
	}

	karts := race.Karts()
	if len(karts) != 4 {
		t.Fatalf("expected 4 karts, got %d", len(karts))
	}

	for i := 0; i < len(karts); i++ {
		for j := i + 1; j < len(karts); j++ {
			dist := karts[i].Position.DistanceTo(karts[j].Position)
			if dist < karts[i].Radius+karts[j].Radius {
				t.Fatalf("karts %d and %d start overlapping, %f apart", i, j, dist)
			}
		}
	}
}

func TestStepAdvancesTheRace(t *testing.T) {
	race := makeTestRace(t)

	kart, err := race.AddBot("medium", "standard", "runner")
	if err != nil {
		t.Fatal(err)
	}

	race.StartRace()

	before := kart.Position

	for i := 0; i < 120; i++ {
		race.Step(1.0 / 60.0)
	}

	if kart.Position.Equals(before) {
		panic("two seconds of ticking should move a bot kart")
	}

	frame := race.ProduceFrameJson()
	if len(frame) == 0 {
		panic("a running race always produces a frame")
	}
}

func TestRemoteLifecycle(t *testing.T) {
	race := makeTestRace(t)

	kart, err := race.AddRemote("remote-1", "carol")
	if err != nil {
		t.Fatal(err)
	}
	if !kart.IsRemote {
		panic("remote karts must be flagged remote")
	}

	if _, err := race.AddRemote("remote-1", "carol"); err == nil {
		panic("duplicate remote registration must be rejected")
	}

	race.RemoveRemote("remote-1")
	if len(race.Karts()) != 0 {
		panic("removed remotes leave the fleet")
	}

	// removing twice is harmless
	race.RemoveRemote("remote-1")
}

func TestRaceFinishCollectsResults(t *testing.T) {
	race := makeTestRace(t)

	kart, err := race.AddBot("hard", "standard", "winner")
	if err != nil {
		t.Fatal(err)
	}

	race.StartRace()

	// simulate a completed lap target
	kart.Progress.LapCount = race.targetLaps

	race.Step(1.0 / 60.0)

	results := race.Results()
	if len(results) != 1 {
		t.Fatalf("expected one finisher, got %d", len(results))
	}
	if results[0].PlayerName != "winner" || results[0].Position != 1 {
		panic("the sole finisher takes first place")
	}
}
