package physics_test

import (
	"math"
	"testing"

	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
	"github.com/Jukeman9/Gokart-racing/racesim/physics"
	"github.com/Jukeman9/Gokart-racing/racesim/state"
	"github.com/Jukeman9/Gokart-racing/racesim/track"
)

func makeTestTrack() *track.Track {
	t, err := track.GenerateOval(track.DefaultOvalSpec())
	if err != nil {
		panic("could not generate test track")
	}

	return t
}

func makeTestKart(t *track.Track) *state.Vehicle {
	handling, err := state.HandlingPreset("standard")
	if err != nil {
		panic("missing standard handling preset")
	}

	return state.MakeVehicle("test-kart", handling, t.StartLine)
}

func TestCoastingDecaysSpeed(t *testing.T) {
	testTrack := makeTestTrack()
	engine := physics.NewEngine(testTrack, 1)

	kart := makeTestKart(testTrack)
	kart.Velocity = vector.MakeVector2FromHeading(kart.Heading).MultScalar(100)

	karts := []*state.Vehicle{kart}

	for i := 0; i < 60; i++ {
		engine.Advance(1.0/60.0, karts)
	}

	if kart.Speed >= 100 {
		panic("coasting kart should lose speed to drag and friction")
	}
	if kart.Speed <= 0 {
		t.Fatalf("one second of coasting from 100 should not reach a dead stop, got %f", kart.Speed)
	}
}

func TestFullThrottleRespectsMaxSpeed(t *testing.T) {
	testTrack := makeTestTrack()
	engine := physics.NewEngine(testTrack, 1)

	kart := makeTestKart(testTrack)
	kart.Controls = state.Controls{Accelerate: 1}

	karts := []*state.Vehicle{kart}

	for i := 0; i < 1200; i++ {
		engine.Advance(1.0/60.0, karts)

		if kart.Speed > kart.Handling.MaxSpeed+1e-9 {
			t.Fatalf("speed %f exceeds cap %f at tick %d", kart.Speed, kart.Handling.MaxSpeed, i)
		}
	}
}

func TestOversizedDtIsCapped(t *testing.T) {
	testTrack := makeTestTrack()
	engine := physics.NewEngine(testTrack, 1)

	kart := makeTestKart(testTrack)
	kart.Velocity = vector.MakeVector2FromHeading(kart.Heading).MultScalar(100)

	before := kart.Position

	karts := []*state.Vehicle{kart}
	engine.Advance(10.0, karts)

	// a 10 s hitch must cost at most one capped frame of travel
	travelled := kart.Position.DistanceTo(before)
	if travelled > 100.0/30.0+1e-6 {
		t.Fatalf("a frame hitch moved the kart %f units", travelled)
	}
}

func TestZeroDtIsANoop(t *testing.T) {
	testTrack := makeTestTrack()
	engine := physics.NewEngine(testTrack, 1)

	kart := makeTestKart(testTrack)
	kart.Velocity = vector.MakeVector2(50, 0)
	before := kart.Position

	events := engine.Advance(0, []*state.Vehicle{kart})

	if events != nil {
		panic("zero dt should not produce events")
	}
	if !kart.Position.Equals(before) {
		panic("zero dt should not move the kart")
	}
}

func TestHeadOnCollisionSeparatesAndReverses(t *testing.T) {
	testTrack := makeTestTrack()
	engine := physics.NewEngine(testTrack, 1)

	x, y := testTrack.StartLine.Position.Get()

	a := makeTestKart(testTrack)
	a.Position = vector.MakeVector2(x, y-11)
	a.Velocity = vector.MakeVector2(0, 40)

	b := makeTestKart(testTrack)
	b.Position = vector.MakeVector2(x, y+11)
	b.Velocity = vector.MakeVector2(0, -40)

	karts := []*state.Vehicle{a, b}
	engine.Advance(1.0/120.0, karts)

	if a.Position.DistanceTo(b.Position) < a.Radius+b.Radius-1e-6 {
		t.Fatalf("karts still overlap after resolution: %f apart", a.Position.DistanceTo(b.Position))
	}

	_, avy := a.Velocity.Get()
	_, bvy := b.Velocity.Get()
	if avy >= 0 || bvy <= 0 {
		t.Fatalf("head-on collision should reverse both karts, got %f and %f", avy, bvy)
	}
}

func TestRemoteKartIsNotIntegrated(t *testing.T) {
	testTrack := makeTestTrack()
	engine := physics.NewEngine(testTrack, 1)

	kart := makeTestKart(testTrack)
	kart.IsRemote = true
	kart.Velocity = vector.MakeVector2(80, 0)
	kart.Controls = state.Controls{Accelerate: 1}

	before := kart.Position

	engine.Advance(1.0/60.0, []*state.Vehicle{kart})

	if !kart.Position.Equals(before) {
		panic("remote kart pose is owned by interpolation, not the force model")
	}

	if kart.Speed != 80 {
		t.Fatalf("derived speed should still be refreshed for remote karts, got %f", kart.Speed)
	}
}

func TestKartCollisionConservesMomentum(t *testing.T) {
	testTrack := makeTestTrack()
	engine := physics.NewEngine(testTrack, 1)

	x, y := testTrack.StartLine.Position.Get()

	a := makeTestKart(testTrack)
	a.Position = vector.MakeVector2(x, y-10)
	a.Velocity = vector.MakeVector2(0, 30)

	b := makeTestKart(testTrack)
	b.Handling.Mass = a.Handling.Mass * 2
	b.Position = vector.MakeVector2(x, y+10)
	b.Velocity = vector.MakeVector2(0, -50)

	before := a.Velocity.MultScalar(a.Handling.Mass).Add(b.Velocity.MultScalar(b.Handling.Mass))

	// dt small enough that ground forces stay negligible next to the impulse
	engine.Advance(1e-9, []*state.Vehicle{a, b})

	after := a.Velocity.MultScalar(a.Handling.Mass).Add(b.Velocity.MultScalar(b.Handling.Mass))

	if after.Sub(before).Mag() > 1e-3 {
		t.Fatalf("collision changed total momentum from %v to %v", before, after)
	}

	_, avy := a.Velocity.Get()
	_, bvy := b.Velocity.Get()
	if avy >= 30 || bvy <= -50 {
		t.Fatalf("impulse should push the karts apart, got %f and %f", avy, bvy)
	}
}

func TestBoundaryContactBleedsEnergy(t *testing.T) {
	testTrack := makeTestTrack()
	engine := physics.NewEngine(testTrack, 1)

	kart := makeTestKart(testTrack)

	// already past the outer boundary, still leaving at full tilt
	outward := testTrack.Outer[0].Sub(testTrack.StartLine.Position).Normalize()
	kart.Position = testTrack.Outer[0].Add(outward.MultScalar(kart.Radius))
	kart.Velocity = outward.MultScalar(200)

	engine.Advance(1.0/60.0, []*state.Vehicle{kart})

	if kart.Speed >= 200 {
		panic("boundary contact should bleed off speed")
	}
	if !testTrack.OnTrack(kart.Position) {
		t.Fatalf("boundary contact should push the kart back onto the track, got %v", kart.Position)
	}
}

func TestOffTrackKartCanRejoin(t *testing.T) {
	testTrack := makeTestTrack()
	engine := physics.NewEngine(testTrack, 1)

	kart := makeTestKart(testTrack)

	// stranded in the grass well beyond the outer bound, facing the track
	kart.Position = vector.MakeVector2(1000, 0)
	kart.Heading = math.Pi
	kart.Velocity = vector.MakeVector2(-80, 0)
	kart.Controls = state.Controls{Accelerate: 1}

	karts := []*state.Vehicle{kart}
	for i := 0; i < 30*60; i++ {
		engine.Advance(1.0/60.0, karts)

		if testTrack.OnTrack(kart.Position) {
			return
		}
	}

	t.Fatalf("kart never drove back onto the track, stuck at %v", kart.Position)
}
