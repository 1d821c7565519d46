package types

import (
	"encoding/json"
	"time"
)

// Message types travelling between race clients and the room relay.
// The envelope is stable; unknown types must be ignored, not treated
// as fatal.
const (
	MessageTypePlayerJoin     = "playerJoin"
	MessageTypeCreateRoom     = "createRoom"
	MessageTypeJoinRoom       = "joinRoom"
	MessageTypeLeaveRoom      = "leaveRoom"
	MessageTypePositionUpdate = "playerPositionUpdate"
	MessageTypeRaceStarted    = "raceStarted"
	MessageTypeRaceFinished   = "raceFinished"
	MessageTypeChat           = "chatMessage"
	MessageTypeError          = "error"
)

type NetMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func MakeNetMessage(msgtype string, payload interface{}) (NetMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return NetMessage{}, err
	}

	return NetMessage{
		Type:    msgtype,
		Payload: data,
	}, nil
}

type PlayerJoinMessage struct {
	PlayerId   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type CreateRoomMessage struct {
	RoomCode string `json:"roomCode"`
	HostId   string `json:"hostId"`
	HostName string `json:"hostName"`
}

type JoinRoomMessage struct {
	RoomCode   string `json:"roomCode"`
	PlayerId   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type LeaveRoomMessage struct {
	RoomCode string `json:"roomCode"`
	PlayerId string `json:"playerId"`
}

type VelocityPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PositionUpdateMessage struct {
	PlayerId  string          `json:"playerId"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Rotation  float64         `json:"rotation"`
	Velocity  VelocityPayload `json:"velocity"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds at send time
}

type RaceStartedMessage struct {
	Timestamp int64 `json:"timestamp"`
}

type RaceResult struct {
	PlayerId   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Position   int     `json:"position"`
	Laps       int     `json:"laps"`
	TotalTime  float64 `json:"totalTime"` // seconds
}

type RaceFinishedMessage struct {
	Results []RaceResult `json:"results"`
}

type ChatMessage struct {
	PlayerId string `json:"playerId"`
	Message  string `json:"message"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

func NowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
