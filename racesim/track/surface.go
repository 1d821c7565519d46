package track

// Surface is the closed set of ground types a kart can sit on. Keeping
// this a tagged enum with explicit coefficient tables gives us
// exhaustiveness instead of string switches.
type Surface int

const (
	SurfaceUnknown Surface = iota
	SurfaceTrack
	SurfaceGrass
	SurfaceGravel
	SurfaceMud
)

var surfaceFriction = map[Surface]float64{
	SurfaceTrack:   2.0,
	SurfaceGrass:   8.0,
	SurfaceGravel:  5.0,
	SurfaceMud:     12.0,
	SurfaceUnknown: 3.0,
}

var surfaceGrip = map[Surface]float64{
	SurfaceTrack:   1.0,
	SurfaceGrass:   0.6,
	SurfaceGravel:  0.7,
	SurfaceMud:     0.4,
	SurfaceUnknown: 0.8,
}

var surfaceNames = map[Surface]string{
	SurfaceTrack:   "track",
	SurfaceGrass:   "grass",
	SurfaceGravel:  "gravel",
	SurfaceMud:     "mud",
	SurfaceUnknown: "unknown",
}

// Friction is the linear ground friction coefficient.
func (s Surface) Friction() float64 {
	if coeff, ok := surfaceFriction[s]; ok {
		return coeff
	}
	return surfaceFriction[SurfaceUnknown]
}

// GripFactor scales the tire grip model.
func (s Surface) GripFactor() float64 {
	if factor, ok := surfaceGrip[s]; ok {
		return factor
	}
	return surfaceGrip[SurfaceUnknown]
}

func (s Surface) String() string {
	if name, ok := surfaceNames[s]; ok {
		return name
	}
	return surfaceNames[SurfaceUnknown]
}

func ParseSurface(name string) Surface {
	for surface, surfacename := range surfaceNames {
		if surfacename == name {
			return surface
		}
	}
	return SurfaceUnknown
}
