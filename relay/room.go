package relay

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/Jukeman9/Gokart-racing/common/types"
)

const maxRoomSize = 8

// Player is one websocket attendee of a room. Writes to the socket are
// serialized through sendmu; gorilla allows one concurrent writer only.
type Player struct {
	Id   string
	Name string

	conn   *websocket.Conn
	sendmu sync.Mutex
}

func NewPlayer(id string, name string, conn *websocket.Conn) *Player {
	return &Player{
		Id:   id,
		Name: name,
		conn: conn,
	}
}

func (player *Player) Send(message types.NetMessage) error {
	player.sendmu.Lock()
	defer player.sendmu.Unlock()

	return player.conn.WriteJSON(message)
}

// Room is a named broadcast group. The relay never interprets race
// state; it forwards envelopes between attendees and enforces who may
// announce race transitions.
type Room struct {
	Code   string
	HostId string

	players map[string]*Player
	mu      sync.RWMutex
}

func NewRoom(code string, host *Player) *Room {
	room := &Room{
		Code:    code,
		HostId:  host.Id,
		players: make(map[string]*Player),
	}
	room.players[host.Id] = host

	return room
}

func (room *Room) AddPlayer(player *Player) error {
	room.mu.Lock()
	defer room.mu.Unlock()

	if len(room.players) >= maxRoomSize {
		return errors.New("room " + room.Code + " is full")
	}

	room.players[player.Id] = player

	return nil
}

func (room *Room) RemovePlayer(playerId string) {
	room.mu.Lock()
	delete(room.players, playerId)
	room.mu.Unlock()
}

func (room *Room) GetPlayer(playerId string) *Player {
	room.mu.RLock()
	defer room.mu.RUnlock()

	return room.players[playerId]
}

func (room *Room) Size() int {
	room.mu.RLock()
	defer room.mu.RUnlock()

	return len(room.players)
}

func (room *Room) IsHost(playerId string) bool {
	return room.HostId == playerId
}

// Broadcast sends to every attendee. Send errors are per-player; one
// dead socket must not starve the rest of the room.
func (room *Room) Broadcast(message types.NetMessage) {
	room.mu.RLock()
	recipients := make([]*Player, 0, len(room.players))
	for _, player := range room.players {
		recipients = append(recipients, player)
	}
	room.mu.RUnlock()

	for _, player := range recipients {
		player.Send(message)
	}
}

// BroadcastExcept sends to every attendee but the sender; pose updates
// never echo back to their origin.
func (room *Room) BroadcastExcept(message types.NetMessage, senderId string) {
	room.mu.RLock()
	recipients := make([]*Player, 0, len(room.players))
	for _, player := range room.players {
		if player.Id == senderId {
			continue
		}
		recipients = append(recipients, player)
	}
	room.mu.RUnlock()

	for _, player := range recipients {
		player.Send(message)
	}
}
