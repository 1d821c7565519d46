package track

import (
	"math"

	"github.com/Jukeman9/Gokart-racing/common/utils/trigo"
	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"
)

// BoundaryIndex holds the boundary polylines as segments in an R-tree so
// the engine can resolve off-track collisions without scanning every
// segment.
type BoundaryIndex struct {
	rtree *rtreego.Rtree
}

type boundarySegment struct {
	a    vector.Vector2
	b    vector.Vector2
	rect rtreego.Rect
}

func (seg *boundarySegment) Bounds() rtreego.Rect {
	return seg.rect
}

func NewBoundaryIndex(polylines ...[]vector.Vector2) (*BoundaryIndex, error) {
	index := &BoundaryIndex{
		rtree: rtreego.NewTree(2, 4, 16),
	}

	for _, polyline := range polylines {
		for i := range polyline {
			a := polyline[i]
			b := polyline[(i+1)%len(polyline)]

			seg, err := makeBoundarySegment(a, b)
			if err != nil {
				return nil, err
			}

			index.rtree.Insert(seg)
		}
	}

	return index, nil
}

func makeBoundarySegment(a vector.Vector2, b vector.Vector2) (*boundarySegment, error) {
	ax, ay := a.Get()
	bx, by := b.Get()

	minX := math.Min(ax, bx)
	minY := math.Min(ay, by)

	// rtreego refuses zero-extent rects; pad degenerate segments
	lengthX := math.Max(math.Abs(ax-bx), 0.001)
	lengthY := math.Max(math.Abs(ay-by), 0.001)

	rect, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{lengthX, lengthY})
	if err != nil {
		return nil, errors.Wrap(err, "rtreego rect")
	}

	return &boundarySegment{a: a, b: b, rect: rect}, nil
}

// Nearest returns the closest boundary point to pos. The rect-based
// nearest neighbor is approximate for long segments, so we refine over a
// handful of candidates.
func (index *BoundaryIndex) Nearest(pos vector.Vector2) vector.Vector2 {
	x, y := pos.Get()
	candidates := index.rtree.NearestNeighbors(8, rtreego.Point{x, y})

	best := pos
	bestDistSq := math.MaxFloat64

	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		seg := candidate.(*boundarySegment)
		point := trigo.NearestPointOnSegment(pos, seg.a, seg.b)
		distSq := point.Sub(pos).MagSq()
		if distSq < bestDistSq {
			bestDistSq = distSq
			best = point
		}
	}

	return best
}
