package netsync

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/Jukeman9/Gokart-racing/common/types"
	"github.com/Jukeman9/Gokart-racing/common/utils"
)

const (
	dialTimeout      = 10 * time.Second
	outboundInterval = 50 * time.Millisecond // 20 Hz pose stream
	maxReconnectFor  = 30 * time.Second
)

type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}

// PoseProvider supplies the local kart pose for the outbound stream. It
// returns false when there is nothing to send yet.
type PoseProvider func() (types.PositionUpdateMessage, bool)

// Client maintains the websocket link to the room relay. Inbound
// messages are queued and handed over in one batch per simulation tick;
// nothing mutates race state from the network goroutine.
type Client struct {
	host       string
	roomCode   string
	playerId   string
	playerName string

	conn   *websocket.Conn
	connmu sync.Mutex

	state   ConnState
	statemu sync.RWMutex

	inbound   []types.NetMessage
	inboundmu sync.Mutex

	poseProvider PoseProvider
	providermu   sync.RWMutex

	leaving  bool
	stopsend chan struct{}
}

func NewClient(host string, roomCode string, playerId string, playerName string) *Client {
	return &Client{
		host:       host,
		roomCode:   roomCode,
		playerId:   playerId,
		playerName: playerName,
		state:      StateDisconnected,
		inbound:    make([]types.NetMessage, 0, 64),
		stopsend:   make(chan struct{}),
	}
}

func (client *Client) State() ConnState {
	client.statemu.RLock()
	defer client.statemu.RUnlock()
	return client.state
}

func (client *Client) setState(state ConnState) {
	client.statemu.Lock()
	client.state = state
	client.statemu.Unlock()

	utils.Debug("netsync", "connection state: "+state.String())
}

// SetPoseProvider installs the pose source. The outbound stream reads it
// under the same lock, so it may be set or swapped after Connect.
func (client *Client) SetPoseProvider(provider PoseProvider) {
	client.providermu.Lock()
	client.poseProvider = provider
	client.providermu.Unlock()
}

func (client *Client) provider() PoseProvider {
	client.providermu.RLock()
	defer client.providermu.RUnlock()
	return client.poseProvider
}

// Connect dials the relay, starts the reader and the outbound pose
// stream, and blocks until the first connection attempt resolves.
func (client *Client) Connect() error {
	client.setState(StateConnecting)

	if err := client.dial(); err != nil {
		client.setState(StateDisconnected)
		return errors.Wrap(err, "cannot connect to relay "+client.host)
	}

	client.setState(StateConnected)

	go client.waitAndListen()
	go client.streamPoses()

	return nil
}

func (client *Client) dial() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: dialTimeout,
	}

	conn, _, err := dialer.Dial("ws://"+client.host+"/ws", http.Header{})
	if err != nil {
		return err
	}

	client.connmu.Lock()
	client.conn = conn
	client.connmu.Unlock()

	return nil
}

// Leave announces departure to the room and tears the link down. No
// reconnection is attempted after a voluntary leave.
func (client *Client) Leave() {
	client.connmu.Lock()
	client.leaving = true
	client.connmu.Unlock()

	client.Send(types.MessageTypeLeaveRoom, types.LeaveRoomMessage{
		RoomCode: client.roomCode,
		PlayerId: client.playerId,
	})

	close(client.stopsend)

	client.connmu.Lock()
	if client.conn != nil {
		client.conn.Close()
	}
	client.connmu.Unlock()

	client.setState(StateDisconnected)
}

// Send marshals a payload into the wire envelope and writes it out.
// Failures while reconnecting are dropped silently; pose traffic is
// continuous and the next update supersedes the lost one.
func (client *Client) Send(msgtype string, payload interface{}) error {
	message, err := types.MakeNetMessage(msgtype, payload)
	if err != nil {
		return errors.Wrap(err, "cannot marshal "+msgtype)
	}

	client.connmu.Lock()
	defer client.connmu.Unlock()

	if client.conn == nil {
		return errors.New("not connected")
	}

	return client.conn.WriteJSON(message)
}

// DrainInbound hands over every message received since the previous
// call. The simulation calls this exactly once at the start of each
// tick; between ticks nothing touches race state.
func (client *Client) DrainInbound() []types.NetMessage {
	client.inboundmu.Lock()
	defer client.inboundmu.Unlock()

	if len(client.inbound) == 0 {
		return nil
	}

	batch := client.inbound
	client.inbound = make([]types.NetMessage, 0, 64)

	return batch
}

func (client *Client) waitAndListen() {
	for {
		client.connmu.Lock()
		conn := client.conn
		client.connmu.Unlock()

		if conn == nil {
			return
		}

		_, rawData, err := conn.ReadMessage()
		if err != nil {
			client.connmu.Lock()
			leaving := client.leaving
			client.connmu.Unlock()

			if leaving {
				return
			}

			if !client.reconnect() {
				return
			}

			continue
		}

		var message types.NetMessage
		if err := json.Unmarshal(rawData, &message); err != nil {
			utils.Debug("netsync", "discarding unparseable message")
			continue
		}

		client.inboundmu.Lock()
		client.inbound = append(client.inbound, message)
		client.inboundmu.Unlock()
	}
}

// reconnect retries the dial with exponential backoff for a bounded
// window, then gives up and goes disconnected for good.
func (client *Client) reconnect() bool {
	client.setState(StateReconnecting)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxReconnectFor

	err := backoff.Retry(func() error {
		utils.Debug("netsync", "reconnect attempt")

		client.connmu.Lock()
		leaving := client.leaving
		client.connmu.Unlock()

		if leaving {
			return backoff.Permanent(errors.New("leaving"))
		}

		return client.dial()
	}, policy)

	if err != nil {
		utils.Debug("netsync", "reconnection abandoned")
		client.setState(StateDisconnected)
		return false
	}

	client.setState(StateConnected)

	// the room needs to know the kart is back
	client.Send(types.MessageTypeJoinRoom, client.joinMessage())

	return true
}

// joinMessage is the full identity announcement for joining a room; the
// relay registers players from it, so rejoins must carry the name too.
func (client *Client) joinMessage() types.JoinRoomMessage {
	return types.JoinRoomMessage{
		RoomCode:   client.roomCode,
		PlayerId:   client.playerId,
		PlayerName: client.playerName,
	}
}

func (client *Client) streamPoses() {
	ticker := time.Tick(outboundInterval)

	for {
		select {
		case <-client.stopsend:
			return
		case <-ticker:
			provider := client.provider()
			if client.State() != StateConnected || provider == nil {
				continue
			}

			update, ok := provider()
			if !ok {
				continue
			}

			client.Send(types.MessageTypePositionUpdate, update)
		}
	}
}
