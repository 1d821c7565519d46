package physics

import (
	"math"
	"math/rand"
	"time"

	"github.com/Jukeman9/Gokart-racing/common/utils"
	"github.com/Jukeman9/Gokart-racing/common/utils/trigo"
	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
	"github.com/Jukeman9/Gokart-racing/racesim/state"
	"github.com/Jukeman9/Gokart-racing/racesim/track"
)

const (
	// Wall-clock dt above this is capped, not sub-stepped; a frame hitch
	// costs a little accuracy instead of blowing up the integrator.
	maxDt = 1.0 / 30.0

	speedEpsilon = 0.5

	// Steering effectiveness reaches half strength at this speed; a kart
	// cannot pivot in place.
	steerHalfSpeed = 40.0

	optimalSlipAngle  = 0.2
	gripFloor         = 0.3
	lowSpeedGripLimit = 10.0

	boundaryRestitution = 0.2
	boundaryLinearLoss  = 0.7
	boundaryAngularLoss = 0.8

	kartRestitution   = 0.3
	spinImpulseJitter = 0.4 // rad/s, glancing spin on kart contact

	worldRestitution = 0.5
)

// Engine advances every vehicle one tick: force accumulation,
// integration, constraint resolution, derived-value refresh, plus
// kart-kart and kart-boundary collisions and checkpoint detection.
// Deterministic given identical inputs, dt and seed.
type Engine struct {
	track *track.Track
	rng   *rand.Rand
	now   func() time.Time
}

func NewEngine(t *track.Track, seed int64) *Engine {
	return &Engine{
		track: t,
		rng:   rand.New(rand.NewSource(seed)),
		now:   time.Now,
	}
}

// SetClock swaps the time source; tests use it for reproducible lap times.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Advance runs one tick over the fleet and returns the race events it
// produced. Per-vehicle faults are contained: the affected kart is
// skipped this tick and the loop continues.
func (e *Engine) Advance(dt float64, karts []*state.Vehicle) []Event {
	if dt <= 0 {
		return nil
	}
	if dt > maxDt {
		dt = maxDt
	}

	for _, kart := range karts {
		e.advanceVehicle(dt, kart)
	}

	e.resolveKartCollisions(karts)

	now := e.now()
	events := make([]Event, 0)
	for _, kart := range karts {
		if event := e.CheckCheckpoints(kart, now); event != nil {
			events = append(events, event)
		}
	}

	return events
}

func (e *Engine) advanceVehicle(dt float64, kart *state.Vehicle) {
	defer func() {
		if r := recover(); r != nil {
			// one bad frame must not end the race
			utils.Debug("physics", "vehicle update skipped: "+kart.Id.String())
		}
	}()

	if kart.IsRemote {
		// Remote poses come from interpolation; only derived values are
		// refreshed locally so collision checks see sane grip/slip data.
		e.refreshDerived(kart)
		return
	}

	e.accumulateForces(kart)
	e.integrate(dt, kart)
	e.applyConstraints(kart)
	e.refreshDerived(kart)
}

func (e *Engine) accumulateForces(kart *state.Vehicle) {
	controls := kart.Controls.Clamped()
	handling := kart.Handling

	kart.Force = vector.MakeNullVector2()
	kart.Torque = 0

	// engine thrust along the facing direction
	forward := vector.MakeVector2FromHeading(kart.Heading)
	kart.Force = kart.Force.Add(forward.MultScalar(handling.EnginePower * controls.Accelerate))

	// braking opposes travel, nothing to oppose when stationary
	speed := kart.Velocity.Mag()
	if controls.Brake > 0 && speed > speedEpsilon {
		braking := kart.Velocity.Normalize().MultScalar(-handling.BrakePower * controls.Brake)
		kart.Force = kart.Force.Add(braking)
	}

	kart.Torque += controls.Steer * handling.SteerPower * steerEffectiveness(speed)

	// quadratic aerodynamic drag
	if speed > 0 {
		drag := kart.Velocity.Normalize().MultScalar(-handling.DragCoefficient * speed * speed)
		kart.Force = kart.Force.Add(drag)
	}

	// linear ground friction, surface dependent
	surface := e.track.SurfaceAt(kart.Position)
	friction := kart.Velocity.MultScalar(-surface.Friction() * handling.Mass)
	kart.Force = kart.Force.Add(friction)

	kart.Torque -= handling.AngularDrag * kart.AngularVelocity
}

func (e *Engine) integrate(dt float64, kart *state.Vehicle) {
	handling := kart.Handling

	kart.Velocity = kart.Velocity.Add(kart.Force.DivScalar(handling.Mass).MultScalar(dt))
	kart.AngularVelocity += kart.Torque / handling.MomentOfInertia * dt

	// clamp magnitudes, preserving direction
	kart.Velocity = kart.Velocity.Limit(handling.MaxSpeed)
	if kart.AngularVelocity > handling.MaxAngularVelocity {
		kart.AngularVelocity = handling.MaxAngularVelocity
	} else if kart.AngularVelocity < -handling.MaxAngularVelocity {
		kart.AngularVelocity = -handling.MaxAngularVelocity
	}

	kart.Position = kart.Position.Add(kart.Velocity.MultScalar(dt))
	kart.Heading = trigo.NormalizeAngle(kart.Heading + kart.AngularVelocity*dt)
}

func (e *Engine) applyConstraints(kart *state.Vehicle) {
	if !e.track.OnTrack(kart.Position) {
		e.resolveBoundaryCollision(kart)
	}

	e.clampToWorld(kart)
}

// resolveBoundaryCollision treats the boundary as a wall seen from the
// drivable side: reflect the track-leaving velocity component, bleed off
// energy, push the kart back onto the track. Karts deeper in the run-off
// are left alone so they can drive back in.
func (e *Engine) resolveBoundaryCollision(kart *state.Vehicle) {
	nearest := e.track.NearestBoundary(kart.Position)
	toTrack := nearest.Sub(kart.Position)
	dist := toTrack.Mag()

	if dist >= kart.Radius*2 {
		return
	}
	if dist == 0 {
		// coincident positions would yield no normal; skip rather than crash
		return
	}

	// the kart sits off-track, so the nearest boundary point lies toward
	// the drivable side
	inward := toTrack.DivScalar(dist)

	if kart.Velocity.Dot(inward) < 0 {
		kart.Velocity = kart.Velocity.Reflect(inward, boundaryRestitution)
	}
	kart.Velocity = kart.Velocity.MultScalar(boundaryLinearLoss)
	kart.AngularVelocity *= boundaryAngularLoss

	kart.Position = nearest.Add(inward.MultScalar(kart.Radius * 2))
}

func (e *Engine) clampToWorld(kart *state.Vehicle) {
	min, max := e.track.WorldBounds()

	x, y := kart.Position.Get()
	vx, vy := kart.Velocity.Get()

	if x < min.GetX() {
		x = min.GetX()
		vx = -vx * worldRestitution
	} else if x > max.GetX() {
		x = max.GetX()
		vx = -vx * worldRestitution
	}

	if y < min.GetY() {
		y = min.GetY()
		vy = -vy * worldRestitution
	} else if y > max.GetY() {
		y = max.GetY()
		vy = -vy * worldRestitution
	}

	kart.Position = vector.MakeVector2(x, y)
	kart.Velocity = vector.MakeVector2(vx, vy)
}

func (e *Engine) refreshDerived(kart *state.Vehicle) {
	kart.Speed = kart.Velocity.Mag()

	if kart.Speed > speedEpsilon {
		kart.MovementDirection = kart.Velocity.Heading()
	}

	kart.SlipAngle = trigo.NormalizeAngle(kart.Heading - kart.MovementDirection)
	kart.TireGrip = e.tireGrip(kart)
}

// tireGrip is informational: it is not fed back into the force model but
// is read by the AI difficulty system and external telemetry.
func (e *Engine) tireGrip(kart *state.Vehicle) float64 {
	grip := 1.0

	slip := math.Abs(kart.SlipAngle)
	if slip > optimalSlipAngle {
		grip -= (slip - optimalSlipAngle) / (math.Pi - optimalSlipAngle) * (1.0 - gripFloor)
		if grip < gripFloor {
			grip = gripFloor
		}
	}

	// full grip from a standstill is not a thing
	if kart.Speed < lowSpeedGripLimit {
		grip *= kart.Speed / lowSpeedGripLimit
	}

	grip *= e.track.SurfaceAt(kart.Position).GripFactor()

	if grip < gripFloor {
		return gripFloor
	}
	if grip > 1.0 {
		return 1.0
	}
	return grip
}

func steerEffectiveness(speed float64) float64 {
	return speed * speed / (speed*speed + steerHalfSpeed*steerHalfSpeed)
}
