package trigo

import (
	"math"

	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
)

// NormalizeAngle brings an angle in radians back into (-Pi, Pi].
func NormalizeAngle(rad float64) float64 {
	for rad > math.Pi {
		rad -= math.Pi * 2
	}
	for rad <= -math.Pi {
		rad += math.Pi * 2
	}

	return rad
}

// AngleDiff returns the signed smallest rotation from one heading to another.
func AngleDiff(from float64, to float64) float64 {
	return NormalizeAngle(to - from)
}

// LerpAngle interpolates between two headings along the shortest arc.
func LerpAngle(from float64, to float64, t float64) float64 {
	return NormalizeAngle(from + AngleDiff(from, to)*t)
}

func SegmentsIntersect(p1 vector.Vector2, p2 vector.Vector2, p3 vector.Vector2, p4 vector.Vector2) bool {
	a := p2.Sub(p1)
	b := p3.Sub(p4)
	c := p1.Sub(p3)

	ax, ay := a.Get()
	bx, by := b.Get()
	cx, cy := c.Get()

	alphaNumerator := by*cx - bx*cy
	alphaDenominator := ay*bx - ax*by
	betaNumerator := ax*cy - ay*cx
	betaDenominator := alphaDenominator

	doIntersect := true

	if alphaDenominator == 0 || betaDenominator == 0 {
		doIntersect = false
	} else {
		if alphaDenominator > 0 {
			if alphaNumerator < 0 || alphaNumerator > alphaDenominator {
				doIntersect = false
			}
		} else if alphaNumerator > 0 || alphaNumerator < alphaDenominator {
			doIntersect = false
		}

		if doIntersect && betaDenominator > 0 {
			if betaNumerator < 0 || betaNumerator > betaDenominator {
				doIntersect = false
			}
		} else if betaNumerator > 0 || betaNumerator < betaDenominator {
			doIntersect = false
		}
	}

	return doIntersect
}

// PointInPolygon ray-casts towards +x and counts boundary crossings.
func PointInPolygon(p vector.Vector2, polygon []vector.Vector2) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	px, py := p.Get()

	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		ix, iy := polygon[i].Get()
		jx, jy := polygon[j].Get()

		if (iy > py) != (jy > py) &&
			px < (jx-ix)*(py-iy)/(jy-iy)+ix {
			inside = !inside
		}
		j = i
	}

	return inside
}

// NearestPointOnSegment projects p onto the segment [a, b].
func NearestPointOnSegment(p vector.Vector2, a vector.Vector2, b vector.Vector2) vector.Vector2 {
	ab := b.Sub(a)
	magsq := ab.MagSq()
	if magsq == 0 {
		return a
	}

	t := p.Sub(a).Dot(ab) / magsq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return a.Add(ab.MultScalar(t))
}
