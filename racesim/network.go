package racesim

import (
	"encoding/json"
	"time"

	notify "github.com/bitly/go-notify"

	"github.com/Jukeman9/Gokart-racing/common/types"
	"github.com/Jukeman9/Gokart-racing/common/utils"
	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
	"github.com/Jukeman9/Gokart-racing/netsync"
	"github.com/Jukeman9/Gokart-racing/racesim/state"
)

// applyInbound drains the network queue once per tick and folds every
// message into race state. This is the only place remote state enters
// the simulation.
func (race *Race) applyInbound() {
	if race.client == nil {
		return
	}

	// a link that exhausted its reconnect budget never comes back; the
	// remotes it carried are gone with it
	if race.client.State() == netsync.StateDisconnected && len(race.remoteIds) > 0 {
		for playerId := range race.remoteIds {
			race.RemoveRemote(playerId)
		}
		utils.Debug("race", "link lost for good, remote karts departed")
		return
	}

	for _, message := range race.client.DrainInbound() {
		race.applyMessage(message)

		if race.msgCounter != nil {
			race.msgCounter.Add(1)
		}
	}
}

func (race *Race) applyMessage(message types.NetMessage) {
	switch message.Type {

	case types.MessageTypePlayerJoin:
		var payload types.PlayerJoinMessage
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return
		}

		if _, err := race.AddRemote(payload.PlayerId, payload.PlayerName); err == nil {
			utils.Debug("race", payload.PlayerName+" joined the race")
		}

	case types.MessageTypeLeaveRoom:
		var payload types.LeaveRoomMessage
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return
		}

		race.RemoveRemote(payload.PlayerId)
		utils.Debug("race", payload.PlayerId+" left the race")

	case types.MessageTypePositionUpdate:
		var payload types.PositionUpdateMessage
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return
		}

		race.pushRemotePose(payload)

	case types.MessageTypeRaceStarted:
		if race.isHost {
			return
		}

		now := time.Now()
		for _, kart := range race.Karts() {
			kart.Progress.StartRace(now)
		}
		utils.Debug("race", "race start received from host")

	case types.MessageTypeRaceFinished:
		if race.isHost {
			return
		}

		var payload types.RaceFinishedMessage
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return
		}

		race.results = payload.Results
		notify.PostTimeout("race:finished", race.results, time.Millisecond)
		go race.Stop()

	case types.MessageTypeChat:
		var payload types.ChatMessage
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return
		}

		notify.PostTimeout("race:chat", payload, time.Millisecond)

	case types.MessageTypeError:
		var payload types.ErrorMessage
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return
		}

		utils.Debug("race", "relay error: "+payload.Message)

	default:
		// unknown types are ignored; newer clients may speak a richer protocol
	}
}

// pushRemotePose stamps the sample with local receive time; sender
// timestamps only order samples from the same origin.
func (race *Race) pushRemotePose(payload types.PositionUpdateMessage) {
	entityId, known := race.remoteIds[payload.PlayerId]
	if !known {
		// poses may arrive before the join announcement; register lazily
		if _, err := race.AddRemote(payload.PlayerId, payload.PlayerId); err != nil {
			return
		}
		entityId = race.remoteIds[payload.PlayerId]
	}

	entityresult := race.manager.GetEntityByID(entityId, race.remoteComponent)
	if entityresult == nil {
		return
	}

	buffer := entityresult.Components[race.remoteComponent].(*netsync.PoseBuffer)
	buffer.Push(netsync.PoseSample{
		Position: vector.MakeVector2(payload.X, payload.Y),
		Heading:  payload.Rotation,
		Velocity: vector.MakeVector2(payload.Velocity.X, payload.Velocity.Y),
		At:       time.Now(),
	})
}

// applyInterpolation moves every remote kart to its delayed,
// interpolated pose. A kart with no samples keeps its previous pose.
func (race *Race) applyInterpolation() {
	now := time.Now()

	for _, entityresult := range race.remotesView.Get() {
		buffer := entityresult.Components[race.remoteComponent].(*netsync.PoseBuffer)
		kart := entityresult.Components[race.kartComponent].(*state.Vehicle)

		sample, ok := buffer.InterpolatedAt(now)
		if !ok {
			continue
		}

		kart.Position = sample.Position
		kart.Heading = sample.Heading
		kart.Velocity = sample.Velocity
	}
}

// localPose feeds the outbound 20 Hz pose stream.
func (race *Race) localPose() (types.PositionUpdateMessage, bool) {
	kart := race.localKart
	if kart == nil {
		return types.PositionUpdateMessage{}, false
	}

	x, y := kart.Position.Get()
	vx, vy := kart.Velocity.Get()

	return types.PositionUpdateMessage{
		PlayerId: kart.Id.String(),
		X:        x,
		Y:        y,
		Rotation: kart.Heading,
		Velocity: types.VelocityPayload{
			X: vx,
			Y: vy,
		},
		Timestamp: types.NowMillis(),
	}, true
}
