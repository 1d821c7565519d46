package types

// FrameMessage is the per-tick snapshot published to spectator surfaces
// and the race recorder.
type FrameMessage struct {
	RaceId string      `json:"raceId"`
	Tick   int         `json:"tick"`
	Karts  []KartFrame `json:"karts"`
}

type KartFrame struct {
	Id           string     `json:"id"`
	Name         string     `json:"name"`
	Position     [2]float64 `json:"position"`
	Velocity     [2]float64 `json:"velocity"`
	Heading      float64    `json:"heading"`
	Speed        float64    `json:"speed"`
	TireGrip     float64    `json:"tireGrip"`
	Lap          int        `json:"lap"`
	Checkpoint   int        `json:"checkpoint"`
	RacePosition int        `json:"racePosition"`
	Remote       bool       `json:"remote"`
}
