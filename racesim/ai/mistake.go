package ai

// MistakeKind is the closed set of driving errors a bot can commit.
type MistakeKind int

const (
	MistakeNone MistakeKind = iota
	MistakeSteerOvercorrect
	MistakeEarlyBrake
	MistakeMissApex
	MistakeWheelspin
)

// Decay windows per kind, in seconds. A mistake is not cleared
// instantly; it damps back to neutral over this window.
var mistakeWindows = map[MistakeKind]float64{
	MistakeSteerOvercorrect: 0.5,
	MistakeEarlyBrake:       0.6,
	MistakeMissApex:         1.0,
	MistakeWheelspin:        0.3,
}

func (k MistakeKind) Window() float64 {
	if window, ok := mistakeWindows[k]; ok {
		return window
	}
	return 0
}

var mistakeKinds = []MistakeKind{
	MistakeSteerOvercorrect,
	MistakeEarlyBrake,
	MistakeMissApex,
	MistakeWheelspin,
}
