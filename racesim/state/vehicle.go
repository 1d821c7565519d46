package state

import (
	"github.com/Jukeman9/Gokart-racing/common/utils/number"
	"github.com/Jukeman9/Gokart-racing/common/utils/trigo"
	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
	uuid "github.com/satori/go.uuid"
)

// Controls is the single control contract consumed by the physics engine.
// Human input, the AI driver and remote interpolation all produce this
// exact shape; the engine cannot tell them apart.
type Controls struct {
	Accelerate float64 // [0, 1]
	Brake      float64 // [0, 1]
	Steer      float64 // [-1, 1]
}

func (c Controls) Clamped() Controls {
	return Controls{
		Accelerate: number.Clamp(c.Accelerate, 0, 1),
		Brake:      number.Clamp(c.Brake, 0, 1),
		Steer:      number.Clamp(c.Steer, -1, 1),
	}
}

// Vehicle is the mutable per-kart record, uniform for local, AI and
// remote karts. The race director owns creation and destruction; the
// physics engine and AI driver mutate in place; the network layer only
// overwrites pose and kinetic fields of remote vehicles.
type Vehicle struct {
	Id            uuid.UUID
	DisplayName   string
	IsLocalPlayer bool
	IsRemote      bool

	Position        vector.Vector2
	Heading         float64 // radians, normalized to (-Pi, Pi]
	Velocity        vector.Vector2
	AngularVelocity float64

	// Accumulators, reset by the engine every tick
	Force  vector.Vector2
	Torque float64

	Handling Handling

	// Derived values, recomputed by the engine every tick
	Speed             float64
	MovementDirection float64
	SlipAngle         float64
	TireGrip          float64

	Controls Controls

	Radius   float64
	Progress Progress
}

func MakeVehicle(name string, handling Handling, start Pose) *Vehicle {
	return &Vehicle{
		Id:          uuid.NewV4(),
		DisplayName: name,

		Position: start.Position,
		Heading:  trigo.NormalizeAngle(start.Heading),

		Handling: handling,

		MovementDirection: trigo.NormalizeAngle(start.Heading),
		TireGrip:          1.0,

		Radius:   12,
		Progress: MakeProgress(),
	}
}

// Pose is a placed orientation on the track plane.
type Pose struct {
	Position vector.Vector2
	Heading  float64
}

// BoundingBox returns the axis-aligned box enclosing the collision disc.
func (v *Vehicle) BoundingBox() (vector.Vector2, vector.Vector2) {
	x, y := v.Position.Get()
	return vector.MakeVector2(x-v.Radius, y-v.Radius), vector.MakeVector2(x+v.Radius, y+v.Radius)
}
