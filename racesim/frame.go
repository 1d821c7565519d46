package racesim

import (
	json "encoding/json"

	"github.com/Jukeman9/Gokart-racing/common/types"
)

// ProduceFrameJson snapshots the fleet for spectators and the recorder.
func (race *Race) ProduceFrameJson() []byte {
	karts := race.Karts()

	msg := types.FrameMessage{
		RaceId: race.id,
		Tick:   race.ticknum,
		Karts:  make([]types.KartFrame, 0, len(karts)),
	}

	for _, kart := range karts {
		msg.Karts = append(msg.Karts, types.KartFrame{
			Id:           kart.Id.String(),
			Name:         kart.DisplayName,
			Position:     kart.Position.ToFloatArray(),
			Velocity:     kart.Velocity.ToFloatArray(),
			Heading:      kart.Heading,
			Speed:        kart.Speed,
			TireGrip:     kart.TireGrip,
			Lap:          kart.Progress.LapCount,
			Checkpoint:   kart.Progress.CurrentCheckpoint,
			RacePosition: race.engine.RacePosition(kart, karts),
			Remote:       kart.IsRemote,
		})
	}

	res, _ := json.Marshal(msg)
	return res
}
