package trigo

import (
	"math"
	"testing"

	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
)

func TestNormalizeAngle(t *testing.T) {
	if NormalizeAngle(3*math.Pi) != math.Pi {
		panic("3π should normalize to π")
	}
	if NormalizeAngle(-math.Pi) != math.Pi {
		panic("-π should normalize to the +π side of the interval")
	}
	if NormalizeAngle(0.5) != 0.5 {
		panic("in-range angles pass through")
	}
}

func TestAngleDiffTakesShortestArc(t *testing.T) {
	diff := AngleDiff(math.Pi-0.1, -math.Pi+0.1)
	if math.Abs(diff-0.2) > 1e-9 {
		t.Fatalf("expected the short way across the seam, got %f", diff)
	}
}

func TestLerpAngleAcrossSeam(t *testing.T) {
	halfway := LerpAngle(math.Pi-0.2, -math.Pi+0.2, 0.5)
	if math.Abs(math.Abs(halfway)-math.Pi) > 1e-9 {
		t.Fatalf("halfway across the seam should be ±π, got %f", halfway)
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []vector.Vector2{
		vector.MakeVector2(0, 0),
		vector.MakeVector2(10, 0),
		vector.MakeVector2(10, 10),
		vector.MakeVector2(0, 10),
	}

	if !PointInPolygon(vector.MakeVector2(5, 5), square) {
		panic("the center of a square is inside it")
	}
	if PointInPolygon(vector.MakeVector2(15, 5), square) {
		panic("a point beside a square is outside it")
	}
}

func TestNearestPointOnSegment(t *testing.T) {
	a := vector.MakeVector2(0, 0)
	b := vector.MakeVector2(10, 0)

	onto := NearestPointOnSegment(vector.MakeVector2(4, 3), a, b)
	if !onto.Equals(vector.MakeVector2(4, 0)) {
		panic("projection should drop straight down onto the segment")
	}

	clamped := NearestPointOnSegment(vector.MakeVector2(-5, 2), a, b)
	if !clamped.Equals(a) {
		panic("projections beyond an endpoint clamp to it")
	}
}
