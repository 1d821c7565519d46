package telemetry_test

import (
	"testing"

	"github.com/Jukeman9/Gokart-racing/common/telemetry"
)

func TestAdd(t *testing.T) {
	counter := telemetry.NewCounter()

	counter.Add(1)

	if counter.GetAndReset() != 1 {
		panic("Unexpected result")
	}

	if counter.GetAndReset() != 0 {
		panic("Unexpected result")
	}
}
