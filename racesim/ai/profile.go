package ai

import "github.com/pkg/errors"

// Profile is a named difficulty bundle. All fields are fixed per preset;
// the bot never mutates its profile.
type Profile struct {
	Name             string
	ReactionTime     float64 // seconds of damped steering after a surprise
	MaxSpeedFraction float64 // fraction of true max speed targeted
	CorneringSkill   float64 // (0, 1]
	Aggressiveness   float64
	MistakeFrequency float64 // expected mistakes per second
	LookAhead        float64 // steering target distance, world units
}

var profiles = map[string]Profile{
	"easy": {
		Name:             "easy",
		ReactionTime:     0.35,
		MaxSpeedFraction: 0.70,
		CorneringSkill:   0.55,
		Aggressiveness:   0.30,
		MistakeFrequency: 0.25,
		LookAhead:        160,
	},
	"medium": {
		Name:             "medium",
		ReactionTime:     0.22,
		MaxSpeedFraction: 0.85,
		CorneringSkill:   0.75,
		Aggressiveness:   0.60,
		MistakeFrequency: 0.12,
		LookAhead:        220,
	},
	"hard": {
		Name:             "hard",
		ReactionTime:     0.12,
		MaxSpeedFraction: 0.97,
		CorneringSkill:   0.95,
		Aggressiveness:   0.90,
		MistakeFrequency: 0.04,
		LookAhead:        300,
	},
}

func ProfileByName(name string) (Profile, error) {
	profile, ok := profiles[name]
	if !ok {
		return Profile{}, errors.Errorf("unknown difficulty profile %q", name)
	}

	return profile, nil
}
