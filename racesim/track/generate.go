package track

import (
	"math"

	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
)

// OvalSpec parameterizes the built-in oval generator used by the demo
// binary and the tests.
type OvalSpec struct {
	Center          vector.Vector2
	RadiusX         float64
	RadiusY         float64
	Width           float64
	Samples         int
	CheckpointCount int
	OffTrack        Surface
}

func DefaultOvalSpec() OvalSpec {
	return OvalSpec{
		Center:          vector.MakeNullVector2(),
		RadiusX:         900,
		RadiusY:         600,
		Width:           120,
		Samples:         128,
		CheckpointCount: 8,
		OffTrack:        SurfaceGrass,
	}
}

// GenerateOval builds a closed elliptic centerline traversed
// counter-clockwise, with headings tangent to the path.
func GenerateOval(spec OvalSpec) (*Track, error) {
	if spec.Samples < 3 {
		spec.Samples = 3
	}

	path := make([]PathSample, spec.Samples)
	for i := 0; i < spec.Samples; i++ {
		theta := float64(i) / float64(spec.Samples) * 2 * math.Pi

		pos := spec.Center.Add(vector.MakeVector2(
			spec.RadiusX*math.Cos(theta),
			spec.RadiusY*math.Sin(theta),
		))

		// tangent of the ellipse at theta
		heading := math.Atan2(spec.RadiusY*math.Cos(theta), -spec.RadiusX*math.Sin(theta))

		path[i] = PathSample{
			Position: pos,
			Heading:  heading,
		}
	}

	return NewTrack(path, spec.Width, spec.CheckpointCount, spec.OffTrack)
}
