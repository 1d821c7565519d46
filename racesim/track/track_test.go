package track

import (
	"math"
	"testing"

	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
)

func TestNewTrackRejectsShortPath(t *testing.T) {
	path := []PathSample{
		{Position: vector.MakeVector2(0, 0)},
		{Position: vector.MakeVector2(10, 0)},
	}

	if _, err := NewTrack(path, 20, 1, SurfaceGrass); err == nil {
		panic("a two-sample path is not a track")
	}
}

func TestNewTrackRejectsBadWidth(t *testing.T) {
	track, err := GenerateOval(DefaultOvalSpec())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewTrack(track.Path, 0, 4, SurfaceGrass); err == nil {
		panic("zero width must be rejected")
	}
	if _, err := NewTrack(track.Path, -5, 4, SurfaceGrass); err == nil {
		panic("negative width must be rejected")
	}
}

func TestNewTrackRejectsBadCheckpointCount(t *testing.T) {
	track, err := GenerateOval(DefaultOvalSpec())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewTrack(track.Path, 120, 0, SurfaceGrass); err == nil {
		panic("zero checkpoints must be rejected")
	}
	if _, err := NewTrack(track.Path, 120, len(track.Path)+1, SurfaceGrass); err == nil {
		panic("more checkpoints than path samples must be rejected")
	}
}

func TestOvalSurfaces(t *testing.T) {
	spec := DefaultOvalSpec()
	track, err := GenerateOval(spec)
	if err != nil {
		t.Fatal(err)
	}

	if surface := track.SurfaceAt(track.Path[0].Position); surface != SurfaceTrack {
		t.Fatalf("the centerline should be drivable, got %v", surface)
	}

	if surface := track.SurfaceAt(spec.Center); surface != spec.OffTrack {
		t.Fatalf("the infield should be off-track, got %v", surface)
	}

	farOut := vector.MakeVector2(spec.RadiusX*3, 0)
	if surface := track.SurfaceAt(farOut); surface != spec.OffTrack {
		t.Fatalf("beyond the outer bound should be off-track, got %v", surface)
	}
}

func TestCheckpointLayout(t *testing.T) {
	spec := DefaultOvalSpec()
	track, err := GenerateOval(spec)
	if err != nil {
		t.Fatal(err)
	}

	if len(track.Checkpoints) != spec.CheckpointCount {
		t.Fatalf("expected %d checkpoints, got %d", spec.CheckpointCount, len(track.Checkpoints))
	}

	for i, checkpoint := range track.Checkpoints {
		if checkpoint.Index != i {
			panic("checkpoint indices must follow traversal order")
		}
		if checkpoint.Radius != spec.Width {
			panic("checkpoint trigger radius should match the track width")
		}
	}

	// checkpoint 0 doubles as the start line
	if !track.Checkpoints[0].Position.Equals(track.StartLine.Position) {
		panic("checkpoint 0 must sit on the start line")
	}
}

func TestNearestBoundaryDistance(t *testing.T) {
	spec := DefaultOvalSpec()
	track, err := GenerateOval(spec)
	if err != nil {
		t.Fatal(err)
	}

	nearest := track.NearestBoundary(track.Path[0].Position)
	dist := track.Path[0].Position.DistanceTo(nearest)

	// from the centerline either boundary is roughly half a width away;
	// the discretized polyline makes it slightly less on the curve
	if dist > spec.Width/2+1 || dist < spec.Width/4 {
		t.Fatalf("centerline to boundary distance %f out of expected band", dist)
	}
}

func TestSampleAtWraps(t *testing.T) {
	track, err := GenerateOval(DefaultOvalSpec())
	if err != nil {
		t.Fatal(err)
	}

	n := len(track.Path)

	if track.SampleAt(n).Position != track.Path[0].Position {
		panic("index n should wrap to 0")
	}
	if track.SampleAt(-1).Position != track.Path[n-1].Position {
		panic("negative indices should wrap backwards")
	}
}

func TestClosestPathIndex(t *testing.T) {
	track, err := GenerateOval(DefaultOvalSpec())
	if err != nil {
		t.Fatal(err)
	}

	for _, probe := range []int{0, 17, 63, 100} {
		if got := track.ClosestPathIndex(track.Path[probe].Position); got != probe {
			t.Fatalf("expected closest index %d, got %d", probe, got)
		}
	}
}

func TestGeneratedHeadingsAreTangent(t *testing.T) {
	track, err := GenerateOval(DefaultOvalSpec())
	if err != nil {
		t.Fatal(err)
	}

	for i := range track.Path {
		sample := track.Path[i]
		next := track.SampleAt(i + 1)

		chord := next.Position.Sub(sample.Position).Heading()
		diff := math.Abs(chord - sample.Heading)
		if diff > math.Pi {
			diff = 2*math.Pi - diff
		}

		if diff > 0.2 {
			t.Fatalf("heading at sample %d is %f off its chord", i, diff)
		}
	}
}

func TestParseSurface(t *testing.T) {
	if ParseSurface("gravel") != SurfaceGravel {
		panic("gravel should parse to gravel")
	}

	if ParseSurface("lava") != SurfaceUnknown {
		panic("unknown names should fall back to the unknown surface")
	}
}
