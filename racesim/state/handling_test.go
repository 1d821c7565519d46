package state

import (
	"testing"
)

func TestHandlingPresets(t *testing.T) {
	for _, name := range HandlingPresetNames() {
		handling, err := HandlingPreset(name)
		if err != nil {
			t.Fatal(err)
		}

		if handling.Mass <= 0 || handling.MomentOfInertia <= 0 {
			panic("presets need positive inertial parameters")
		}
		if handling.MaxSpeed <= 0 || handling.MaxAngularVelocity <= 0 {
			panic("presets need positive speed caps")
		}
	}
}

func TestUnknownPresetIsRejected(t *testing.T) {
	if _, err := HandlingPreset("rocket"); err == nil {
		panic("unknown presets must be rejected")
	}
}

func TestControlsClamping(t *testing.T) {
	controls := Controls{
		Accelerate: 2.5,
		Brake:      -1,
		Steer:      -7,
	}.Clamped()

	if controls.Accelerate != 1 {
		panic("accelerate should clamp to 1")
	}
	if controls.Brake != 0 {
		panic("brake should clamp to 0")
	}
	if controls.Steer != -1 {
		panic("steer should clamp to -1")
	}
}
