package physics

import (
	"github.com/Jukeman9/Gokart-racing/racesim/state"
)

// resolveKartCollisions runs the all-pairs disc check. The fleet is small
// enough that O(n²) broad-phase is fine here.
func (e *Engine) resolveKartCollisions(karts []*state.Vehicle) {
	for i := 0; i < len(karts); i++ {
		for j := i + 1; j < len(karts); j++ {
			e.resolveKartPair(karts[i], karts[j])
		}
	}
}

func (e *Engine) resolveKartPair(a *state.Vehicle, b *state.Vehicle) {
	axis := b.Position.Sub(a.Position)
	dist := axis.Mag()
	minDist := a.Radius + b.Radius

	if dist >= minDist {
		return
	}
	if dist == 0 {
		// coincident centers give no collision normal; a momentary glitch
		// must not crash a running race
		return
	}

	normal := axis.DivScalar(dist)

	// separate along the center axis, overlap split 50/50
	overlap := minDist - dist
	a.Position = a.Position.Sub(normal.MultScalar(overlap / 2))
	b.Position = b.Position.Add(normal.MultScalar(overlap / 2))

	// impulse along the collision normal, elastic with loss
	relativeVelocity := b.Velocity.Sub(a.Velocity)
	approaching := relativeVelocity.Dot(normal)
	if approaching > 0 {
		// already separating
		return
	}

	impulse := -(1 + kartRestitution) * approaching /
		(1/a.Handling.Mass + 1/b.Handling.Mass)

	a.Velocity = a.Velocity.Sub(normal.MultScalar(impulse / a.Handling.Mass))
	b.Velocity = b.Velocity.Add(normal.MultScalar(impulse / b.Handling.Mass))

	// glancing contact imparts a little spin
	a.AngularVelocity += (e.rng.Float64()*2 - 1) * spinImpulseJitter
	b.AngularVelocity += (e.rng.Float64()*2 - 1) * spinImpulseJitter
}
