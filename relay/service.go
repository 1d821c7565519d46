package relay

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/Jukeman9/Gokart-racing/common/healthcheck"
	"github.com/Jukeman9/Gokart-racing/common/types"
	"github.com/Jukeman9/Gokart-racing/common/utils"
)

// RelayService is the room relay. It owns no race state and performs no
// validation of poses; every envelope is forwarded as received, with
// the single rule that only the room host announces race transitions.
type RelayService struct {
	addr   string
	rooms  *RoomMap
	health *healthcheck.HealthCheckServer
}

func NewRelayService(addr string) *RelayService {
	service := &RelayService{
		addr:   addr,
		rooms:  NewRoomMap(),
		health: healthcheck.NewHealthCheckServer(""),
	}

	service.health.Register("rooms", func() (error, bool) {
		return nil, true
	})

	return service
}

func (service *RelayService) RoomCount() int {
	return service.rooms.Size()
}

func (service *RelayService) ListenAndServe() error {
	logger := os.Stdout
	router := mux.NewRouter()

	router.Handle("/ws", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(service.websocketHandler),
	)).Methods("GET")

	router.Handle("/health", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(service.health.HttpHandler),
	)).Methods("GET")

	utils.Debug("relay", "Listening on "+service.addr)

	return http.ListenAndServe(service.addr, router)
}

// session tracks what one websocket has told us about itself.
type session struct {
	playerId string
	room     *Room
}

func (service *RelayService) websocketHandler(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Debug("relay", "websocket upgrade failed: "+err.Error())
		return
	}
	defer conn.Close()

	sess := &session{}
	defer service.dropSession(sess)

	for {
		_, rawData, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var message types.NetMessage
		if err := json.Unmarshal(rawData, &message); err != nil {
			sendError(conn, "unparseable message")
			continue
		}

		service.dispatch(conn, sess, message)
	}
}

func (service *RelayService) dispatch(conn *websocket.Conn, sess *session, message types.NetMessage) {
	switch message.Type {

	case types.MessageTypeCreateRoom:
		var payload types.CreateRoomMessage
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			sendError(conn, "invalid createRoom payload")
			return
		}

		host := NewPlayer(payload.HostId, payload.HostName, conn)
		room := NewRoom(payload.RoomCode, host)

		if !service.rooms.SetIfAbsent(payload.RoomCode, room) {
			sendError(conn, "room "+payload.RoomCode+" already exists")
			return
		}

		sess.playerId = payload.HostId
		sess.room = room

		host.Send(message)

		utils.Debug("relay", "room "+payload.RoomCode+" created by "+payload.HostName)

	case types.MessageTypeJoinRoom:
		var payload types.JoinRoomMessage
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			sendError(conn, "invalid joinRoom payload")
			return
		}

		room := service.rooms.Get(payload.RoomCode)
		if room == nil {
			sendError(conn, "room "+payload.RoomCode+" not found")
			return
		}

		player := NewPlayer(payload.PlayerId, payload.PlayerName, conn)
		if err := room.AddPlayer(player); err != nil {
			sendError(conn, err.Error())
			return
		}

		sess.playerId = payload.PlayerId
		sess.room = room

		player.Send(message)

		joined, err := types.MakeNetMessage(types.MessageTypePlayerJoin, types.PlayerJoinMessage{
			PlayerId:   payload.PlayerId,
			PlayerName: payload.PlayerName,
		})
		if err == nil {
			room.BroadcastExcept(joined, payload.PlayerId)
		}

	case types.MessageTypeLeaveRoom:
		service.dropSession(sess)

	case types.MessageTypePositionUpdate, types.MessageTypeChat:
		if sess.room == nil {
			return
		}
		sess.room.BroadcastExcept(message, sess.playerId)

	case types.MessageTypeRaceStarted, types.MessageTypeRaceFinished:
		if sess.room == nil || !sess.room.IsHost(sess.playerId) {
			return
		}
		sess.room.BroadcastExcept(message, sess.playerId)

	default:
		// unknown types are ignored so old relays survive new clients
	}
}

// dropSession detaches the socket from its room, tells the rest of the
// room, and garbage collects the room when it empties.
func (service *RelayService) dropSession(sess *session) {
	if sess.room == nil {
		return
	}

	room := sess.room
	playerId := sess.playerId
	sess.room = nil

	room.RemovePlayer(playerId)

	left, err := types.MakeNetMessage(types.MessageTypeLeaveRoom, types.LeaveRoomMessage{
		RoomCode: room.Code,
		PlayerId: playerId,
	})
	if err == nil {
		room.Broadcast(left)
	}

	if room.Size() == 0 {
		service.rooms.Remove(room.Code)
		utils.Debug("relay", "room "+room.Code+" closed")
	}
}

func sendError(conn *websocket.Conn, reason string) {
	message, err := types.MakeNetMessage(types.MessageTypeError, types.ErrorMessage{
		Message: reason,
	})
	if err != nil {
		return
	}

	conn.WriteJSON(message)
}
