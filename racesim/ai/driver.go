package ai

import (
	"math"

	"github.com/Jukeman9/Gokart-racing/common/utils/number"
	"github.com/Jukeman9/Gokart-racing/common/utils/trigo"
	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
	"github.com/Jukeman9/Gokart-racing/racesim/physics"
	"github.com/Jukeman9/Gokart-racing/racesim/state"
	"github.com/Jukeman9/Gokart-racing/racesim/track"
)

const (
	avoidanceRadius    = 80.0
	avoidanceSteerBias = 45.0 // world units of lateral target shift per unit repulsion
	emergencyUrgency   = 1.1

	aggressionRadius   = 90.0
	aggressionDuration = 0.8 // seconds of reduced deference
	aggressionCooldown = 2.0

	rubberBandFraction = 0.3 // trailing/leading share of the field affected
	rubberBandStrength = 0.3 // up to ±30% on the speed ceiling
	performanceFloor   = 0.6
	performanceCeiling = 1.3
	performanceEasing  = 0.8 // 1/s smoothing rate

	reactionDamping = 0.35

	cornerBrakeThreshold = 0.45
	missApexShift        = 55.0 // lateral target offset at full mistake strength
)

// Driver turns track geometry and the surrounding fleet into the same
// control tuple a human produces; the physics engine cannot tell the
// difference.
type Driver struct {
	track  *track.Track
	engine *physics.Engine
}

func NewDriver(t *track.Track, engine *physics.Engine) *Driver {
	return &Driver{
		track:  t,
		engine: engine,
	}
}

// Update produces a full control tuple for one bot-driven kart. Runs
// once per bot per tick.
func (d *Driver) Update(dt float64, bot *Bot, kart *state.Vehicle, karts []*state.Vehicle, player *state.Vehicle) {
	bot.tickTimers(dt)

	target, severity := d.navigate(bot, kart)
	d.rubberBand(dt, bot, kart, karts)
	repulsion, urgency := d.avoid(bot, kart, karts, player)

	target = target.Add(repulsion.MultScalar(avoidanceSteerBias))

	kart.Controls = d.synthesize(bot, kart, target, severity, urgency).Clamped()
}

// navigate picks the steering target a look-ahead distance along the
// path, and measures how hard the track bends between here and there.
func (d *Driver) navigate(bot *Bot, kart *state.Vehicle) (vector.Vector2, float64) {
	closest := d.track.ClosestPathIndex(kart.Position)

	aheadSamples := int(bot.Profile.LookAhead/d.track.SampleSpacing() + 0.5)
	if aheadSamples < 1 {
		aheadSamples = 1
	}
	bot.targetIndex = closest + aheadSamples

	sample := d.track.SampleAt(bot.targetIndex)

	// lateral offset: per-bot jitter plus any active missed apex
	offset := bot.targetJitter + bot.mistakeValue(MistakeMissApex)*missApexShift
	lateral := vector.MakeVector2FromHeading(sample.Heading).OrthogonalClockwise()
	target := sample.Position.Add(lateral.MultScalar(offset))

	bend := trigo.AngleDiff(d.track.SampleAt(closest).Heading, sample.Heading)
	severity := number.Clamp(math.Abs(bend)/(math.Pi/2), 0, 1)

	return target, severity
}

// rubberBand nudges the bot's speed ceiling toward the middle of the
// field: trailing karts get faster, leading karts get slower. Only the
// ceiling moves, never the pose, so it is invisible as teleportation.
func (d *Driver) rubberBand(dt float64, bot *Bot, kart *state.Vehicle, karts []*state.Vehicle) {
	if len(karts) < 2 {
		return
	}

	rank := d.engine.RacePosition(kart, karts)
	fraction := float64(rank-1) / float64(len(karts)-1)

	targetPerformance := 1.0
	if fraction >= 1.0-rubberBandFraction {
		// trailing third: speed up, proportional to how far back
		depth := (fraction - (1.0 - rubberBandFraction)) / rubberBandFraction
		targetPerformance = 1.0 + rubberBandStrength*depth
	} else if fraction <= rubberBandFraction {
		depth := (rubberBandFraction - fraction) / rubberBandFraction
		targetPerformance = 1.0 - rubberBandStrength*depth
	}

	ease := number.Clamp(dt*performanceEasing, 0, 1)
	bot.performance += (targetPerformance - bot.performance) * ease
	bot.performance = number.Clamp(bot.performance, performanceFloor, performanceCeiling)
}

// avoid accumulates a proximity-weighted repulsion away from every other
// kart nearby. A nearby human kart triggers a temporary aggression bonus
// that lowers the bot's deference instead of letting it yield forever.
func (d *Driver) avoid(bot *Bot, kart *state.Vehicle, karts []*state.Vehicle, player *state.Vehicle) (vector.Vector2, float64) {
	repulsion := vector.MakeNullVector2()
	urgency := 0.0

	for _, other := range karts {
		if other == kart {
			continue
		}

		away := kart.Position.Sub(other.Position)
		dist := away.Mag()
		if dist >= avoidanceRadius || dist == 0 {
			continue
		}

		weight := 1.0 - dist/avoidanceRadius
		repulsion = repulsion.Add(away.DivScalar(dist).MultScalar(weight))
		urgency += weight
	}

	if player != nil && player != kart &&
		kart.Position.DistanceTo(player.Position) < aggressionRadius &&
		bot.aggressionCooldown <= 0 {
		bot.aggressionActive = aggressionDuration
		bot.aggressionCooldown = aggressionCooldown
		bot.reactionTimer = bot.Profile.ReactionTime
	}

	if bot.aggressionActive > 0 {
		deference := 1.0 - 0.6*bot.Profile.Aggressiveness
		repulsion = repulsion.MultScalar(deference)
		urgency *= deference
	}

	return repulsion, urgency
}

// synthesize builds the final control tuple. Throttle and brake are
// mutually dampening: a kart never gets full accelerate and full brake
// in the same tick.
func (d *Driver) synthesize(bot *Bot, kart *state.Vehicle, target vector.Vector2, severity float64, urgency float64) state.Controls {
	profile := bot.Profile

	desired := target.Sub(kart.Position).Heading()
	headingError := trigo.AngleDiff(kart.Heading, desired)

	steer := headingError / (math.Pi / 2) * profile.CorneringSkill
	steer *= 1.0 + bot.mistakeValue(MistakeSteerOvercorrect)
	if bot.reactionTimer > 0 {
		steer *= reactionDamping
	}

	effectiveMax := kart.Handling.MaxSpeed * profile.MaxSpeedFraction * bot.performance

	throttle := 1.0
	if kart.Speed > effectiveMax*0.9 {
		throttle = number.Clamp((effectiveMax-kart.Speed)/(effectiveMax*0.1), 0, 1)
	}

	// ease off into corners, gated by skill
	throttle *= 1.0 - number.Clamp(severity*(1.2-profile.CorneringSkill), 0, 0.9)
	throttle -= bot.mistakeValue(MistakeWheelspin) * 0.6

	brake := 0.0
	if severity > cornerBrakeThreshold && kart.Speed > effectiveMax*0.5 {
		brake = (severity - cornerBrakeThreshold) / (1.0 - cornerBrakeThreshold) * (1.1 - profile.CorneringSkill)
	}
	brake += bot.mistakeValue(MistakeEarlyBrake) * 0.5

	if urgency > emergencyUrgency {
		brake = math.Max(brake, 0.7)
		throttle = 0
	}

	// mutual damping
	if brake > 0.25 {
		throttle = math.Min(throttle, 0.25)
	}

	return state.Controls{
		Accelerate: throttle,
		Brake:      brake,
		Steer:      steer,
	}
}
