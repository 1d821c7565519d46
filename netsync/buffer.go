package netsync

import (
	"time"

	"github.com/Jukeman9/Gokart-racing/common/utils/trigo"
	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
)

const (
	// samples older than this are pruned; anything beyond it is of no
	// interpolation value
	sampleRetention = 500 * time.Millisecond

	// remote karts are rendered this far in the past so two straddling
	// samples are almost always available
	InterpolationDelay = 100 * time.Millisecond
)

// PoseSample is one received remote pose, stamped with the local
// receive time.
type PoseSample struct {
	Position vector.Vector2
	Heading  float64
	Velocity vector.Vector2
	At       time.Time
}

// PoseBuffer holds the recent pose samples of one remote kart, ordered
// by receive time. Not safe for concurrent use; the race loop owns it.
type PoseBuffer struct {
	samples []PoseSample
}

func NewPoseBuffer() *PoseBuffer {
	return &PoseBuffer{
		samples: make([]PoseSample, 0, 16),
	}
}

func (buffer *PoseBuffer) Push(sample PoseSample) {
	buffer.samples = append(buffer.samples, sample)
	buffer.prune(sample.At)
}

func (buffer *PoseBuffer) prune(now time.Time) {
	cutoff := now.Add(-sampleRetention)

	firstKept := 0
	for firstKept < len(buffer.samples) && buffer.samples[firstKept].At.Before(cutoff) {
		firstKept++
	}

	if firstKept > 0 {
		buffer.samples = buffer.samples[firstKept:]
	}
}

func (buffer *PoseBuffer) Len() int {
	return len(buffer.samples)
}

// Latest returns the most recent sample, if any.
func (buffer *PoseBuffer) Latest() (PoseSample, bool) {
	if len(buffer.samples) == 0 {
		return PoseSample{}, false
	}

	return buffer.samples[len(buffer.samples)-1], true
}

// InterpolatedAt resolves the pose at the render time now-InterpolationDelay.
// When two samples straddle the render time the pose is interpolated
// between them; otherwise the nearest available sample is held as-is.
// Poses are never extrapolated past the newest sample.
func (buffer *PoseBuffer) InterpolatedAt(now time.Time) (PoseSample, bool) {
	if len(buffer.samples) == 0 {
		return PoseSample{}, false
	}

	renderAt := now.Add(-InterpolationDelay)

	first := buffer.samples[0]
	if !renderAt.After(first.At) {
		return first, true
	}

	last := buffer.samples[len(buffer.samples)-1]
	if !renderAt.Before(last.At) {
		// stale stream; hold the last known pose
		return last, true
	}

	for i := 1; i < len(buffer.samples); i++ {
		after := buffer.samples[i]
		if renderAt.After(after.At) {
			continue
		}

		before := buffer.samples[i-1]
		span := after.At.Sub(before.At)
		if span <= 0 {
			return after, true
		}

		t := float64(renderAt.Sub(before.At)) / float64(span)

		return PoseSample{
			Position: lerpVector(before.Position, after.Position, t),
			Heading:  trigo.LerpAngle(before.Heading, after.Heading, t),
			Velocity: lerpVector(before.Velocity, after.Velocity, t),
			At:       renderAt,
		}, true
	}

	return last, true
}

func lerpVector(a vector.Vector2, b vector.Vector2, t float64) vector.Vector2 {
	return a.Add(b.Sub(a).MultScalar(t))
}
