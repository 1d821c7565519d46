package state

import "github.com/pkg/errors"

// Handling bundles the immutable per-vehicle physical constants.
type Handling struct {
	Mass               float64
	MomentOfInertia    float64
	EnginePower        float64
	BrakePower         float64
	SteerPower         float64
	MaxSpeed           float64
	MaxAngularVelocity float64
	DragCoefficient    float64
	AngularDrag        float64
}

var handlingPresets = map[string]Handling{
	"standard": {
		Mass:               180,
		MomentOfInertia:    900,
		EnginePower:        100000,
		BrakePower:         140000,
		SteerPower:         14000,
		MaxSpeed:           240,
		MaxAngularVelocity: 3.2,
		DragCoefficient:    0.2,
		AngularDrag:        3500,
	},
	"heavy": {
		Mass:               240,
		MomentOfInertia:    1400,
		EnginePower:        126000,
		BrakePower:         180000,
		SteerPower:         17000,
		MaxSpeed:           230,
		MaxAngularVelocity: 2.6,
		DragCoefficient:    0.24,
		AngularDrag:        5200,
	},
	"nimble": {
		Mass:               150,
		MomentOfInertia:    640,
		EnginePower:        86000,
		BrakePower:         120000,
		SteerPower:         12000,
		MaxSpeed:           250,
		MaxAngularVelocity: 3.8,
		DragCoefficient:    0.16,
		AngularDrag:        2800,
	},
}

func HandlingPreset(name string) (Handling, error) {
	preset, ok := handlingPresets[name]
	if !ok {
		return Handling{}, errors.Errorf("unknown handling preset %q", name)
	}

	return preset, nil
}

func HandlingPresetNames() []string {
	names := make([]string, 0, len(handlingPresets))
	for name := range handlingPresets {
		names = append(names, name)
	}
	return names
}
