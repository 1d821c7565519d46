package ai

import (
	"math"
	"math/rand"
)

// Bot is the per-kart driving context; it is not a renderable entity.
// Each bot carries its own seeded generator so AI races can be replayed
// deterministically in tests.
type Bot struct {
	Profile Profile

	rng *rand.Rand

	// navigation scratch
	targetIndex  int
	targetJitter float64

	// timers, seconds
	reactionTimer      float64
	nextMistakeIn      float64
	mistakeTimeLeft    float64
	aggressionCooldown float64
	aggressionActive   float64

	mistake         MistakeKind
	mistakeStrength float64

	// smoothed rubber-banding multiplier on effective max speed
	performance float64
}

func NewBot(profile Profile, seed int64) *Bot {
	bot := &Bot{
		Profile:     profile,
		rng:         rand.New(rand.NewSource(seed)),
		performance: 1.0,
	}

	bot.targetJitter = (bot.rng.Float64()*2 - 1) * 14
	bot.reactionTimer = profile.ReactionTime
	bot.scheduleNextMistake()

	return bot
}

// Reset returns the bot to its starting state for a race restart.
func (bot *Bot) Reset() {
	bot.targetIndex = 0
	bot.reactionTimer = bot.Profile.ReactionTime
	bot.mistake = MistakeNone
	bot.mistakeStrength = 0
	bot.mistakeTimeLeft = 0
	bot.aggressionCooldown = 0
	bot.aggressionActive = 0
	bot.performance = 1.0
	bot.scheduleNextMistake()
}

func (bot *Bot) Performance() float64 {
	return bot.performance
}

// scheduleNextMistake draws the next mistake delay from an exponential
// schedule matching the profile's expected mistakes per second.
func (bot *Bot) scheduleNextMistake() {
	if bot.Profile.MistakeFrequency <= 0 {
		bot.nextMistakeIn = math.MaxFloat64
		return
	}

	u := bot.rng.Float64()
	for u == 0 {
		u = bot.rng.Float64()
	}
	bot.nextMistakeIn = -math.Log(u) / bot.Profile.MistakeFrequency
}

func (bot *Bot) tickTimers(dt float64) {
	if bot.reactionTimer > 0 {
		bot.reactionTimer -= dt
	}
	if bot.aggressionCooldown > 0 {
		bot.aggressionCooldown -= dt
	}
	if bot.aggressionActive > 0 {
		bot.aggressionActive -= dt
	}

	bot.nextMistakeIn -= dt
	if bot.nextMistakeIn <= 0 {
		bot.triggerMistake()
	}

	if bot.mistake != MistakeNone {
		window := bot.mistake.Window()
		bot.mistakeTimeLeft -= dt
		// exponential damping back to neutral over the kind's window
		bot.mistakeStrength *= math.Exp(-3.0 / window * dt)

		if bot.mistakeTimeLeft <= 0 || bot.mistakeStrength < 0.05 {
			bot.mistake = MistakeNone
			bot.mistakeStrength = 0
		}
	}
}

func (bot *Bot) triggerMistake() {
	kind := mistakeKinds[bot.rng.Intn(len(mistakeKinds))]

	bot.mistake = kind
	bot.mistakeStrength = 0.6 + bot.rng.Float64()*0.4
	bot.mistakeTimeLeft = kind.Window()
	bot.reactionTimer = bot.Profile.ReactionTime

	bot.scheduleNextMistake()
}

func (bot *Bot) mistakeValue(kind MistakeKind) float64 {
	if bot.mistake != kind {
		return 0
	}
	return bot.mistakeStrength
}
