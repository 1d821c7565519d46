package track

import (
	"github.com/Jukeman9/Gokart-racing/common/utils/trigo"
	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
	"github.com/Jukeman9/Gokart-racing/racesim/state"
	"github.com/pkg/errors"
)

// PathSample is one point of the cyclic centerline.
type PathSample struct {
	Position vector.Vector2
	Heading  float64
}

// Checkpoint is one trigger zone of the checkpoint ring; index 0 doubles
// as the start/finish line.
type Checkpoint struct {
	Position vector.Vector2
	Radius   float64
	Index    int
}

// Track is the static race geometry. Built once per race, read-only for
// every other component.
type Track struct {
	Path        []PathSample
	Inner       []vector.Vector2
	Outer       []vector.Vector2
	Checkpoints []Checkpoint
	StartLine   state.Pose
	Width       float64
	OffTrack    Surface

	boundaries *BoundaryIndex
	worldMin   vector.Vector2
	worldMax   vector.Vector2
}

// NewTrack validates raw geometry and derives bounds, checkpoints and the
// boundary index. Invalid geometry is a configuration error surfaced here
// once, never retried.
func NewTrack(path []PathSample, width float64, checkpointCount int, offTrack Surface) (*Track, error) {
	if len(path) < 3 {
		return nil, errors.Errorf("track path needs at least 3 samples, got %d", len(path))
	}
	if width <= 0 {
		return nil, errors.Errorf("track width must be positive, got %f", width)
	}
	if checkpointCount < 1 || checkpointCount > len(path) {
		return nil, errors.Errorf("checkpoint count %d out of range for %d path samples", checkpointCount, len(path))
	}

	t := &Track{
		Path:     path,
		Width:    width,
		OffTrack: offTrack,
	}

	// Paths are traversed counter-clockwise; the clockwise orthogonal of
	// the heading points outward.
	half := width / 2.0
	t.Inner = make([]vector.Vector2, len(path))
	t.Outer = make([]vector.Vector2, len(path))
	for i, sample := range path {
		outward := vector.MakeVector2FromHeading(sample.Heading).OrthogonalClockwise()
		t.Outer[i] = sample.Position.Add(outward.MultScalar(half))
		t.Inner[i] = sample.Position.Sub(outward.MultScalar(half))
	}

	// Checkpoints follow path traversal order by construction.
	t.Checkpoints = make([]Checkpoint, checkpointCount)
	for i := 0; i < checkpointCount; i++ {
		sample := path[i*len(path)/checkpointCount]
		t.Checkpoints[i] = Checkpoint{
			Position: sample.Position,
			Radius:   width,
			Index:    i,
		}
	}

	t.StartLine = state.Pose{
		Position: path[0].Position,
		Heading:  path[0].Heading,
	}

	index, err := NewBoundaryIndex(t.Inner, t.Outer)
	if err != nil {
		return nil, errors.Wrap(err, "could not index track boundaries")
	}
	t.boundaries = index

	t.worldMin, t.worldMax = computeWorldBounds(t.Outer, width)

	return t, nil
}

// SurfaceAt reports the surface under a world position. The drivable ring
// sits inside the outer bound and outside the inner bound.
func (t *Track) SurfaceAt(pos vector.Vector2) Surface {
	if trigo.PointInPolygon(pos, t.Outer) && !trigo.PointInPolygon(pos, t.Inner) {
		return SurfaceTrack
	}
	return t.OffTrack
}

// OnTrack reports whether a position is on the drivable ring.
func (t *Track) OnTrack(pos vector.Vector2) bool {
	return t.SurfaceAt(pos) == SurfaceTrack
}

// NearestBoundary returns the closest point on either boundary polyline.
func (t *Track) NearestBoundary(pos vector.Vector2) vector.Vector2 {
	return t.boundaries.Nearest(pos)
}

// WorldBounds is the generous safety rectangle used by the engine as a
// last-resort position clamp.
func (t *Track) WorldBounds() (vector.Vector2, vector.Vector2) {
	return t.worldMin, t.worldMax
}

// ClosestPathIndex locates the path sample nearest to a position with a
// linear scan; path sizes stay small enough that this is not a bottleneck.
func (t *Track) ClosestPathIndex(pos vector.Vector2) int {
	best := 0
	bestDistSq := t.Path[0].Position.Sub(pos).MagSq()
	for i := 1; i < len(t.Path); i++ {
		distSq := t.Path[i].Position.Sub(pos).MagSq()
		if distSq < bestDistSq {
			bestDistSq = distSq
			best = i
		}
	}
	return best
}

// SampleAt wraps an index onto the cyclic path.
func (t *Track) SampleAt(index int) PathSample {
	n := len(t.Path)
	index = ((index % n) + n) % n
	return t.Path[index]
}

// SampleSpacing is the mean distance between consecutive path samples.
func (t *Track) SampleSpacing() float64 {
	total := 0.0
	for i := range t.Path {
		next := t.Path[(i+1)%len(t.Path)]
		total += t.Path[i].Position.DistanceTo(next.Position)
	}
	return total / float64(len(t.Path))
}

func computeWorldBounds(outer []vector.Vector2, width float64) (vector.Vector2, vector.Vector2) {
	minX, minY := outer[0].Get()
	maxX, maxY := minX, minY

	for _, p := range outer {
		x, y := p.Get()
		if x < minX {
			minX = x
		}
		if y < minY {
			minY = y
		}
		if x > maxX {
			maxX = x
		}
		if y > maxY {
			maxY = y
		}
	}

	margin := width * 4
	return vector.MakeVector2(minX-margin, minY-margin), vector.MakeVector2(maxX+margin, maxY+margin)
}
