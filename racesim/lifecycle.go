package racesim

import (
	"time"

	notify "github.com/bitly/go-notify"

	"github.com/Jukeman9/Gokart-racing/common/types"
	"github.com/Jukeman9/Gokart-racing/common/utils"
	"github.com/Jukeman9/Gokart-racing/racesim/ai"
	"github.com/Jukeman9/Gokart-racing/racesim/physics"
	"github.com/Jukeman9/Gokart-racing/racesim/state"
)

// StartRace stamps every kart's progress clock and, when hosting,
// announces the start to the room. Must be called before Start.
func (race *Race) StartRace() {
	now := time.Now()

	for _, kart := range race.Karts() {
		kart.Progress.StartRace(now)
	}

	race.recorder.RecordMetadata(race.id, "track")

	if race.client != nil && race.isHost {
		race.client.Send(types.MessageTypeRaceStarted, types.RaceStartedMessage{
			Timestamp: types.NowMillis(),
		})
	}

	utils.Debug("race", "race "+race.id+" started")
}

// Start launches the tick loop. It returns immediately; race progress is
// observable through notify topics and the state accessors.
func (race *Race) Start() {
	race.tickingmutex.Lock()
	defer race.tickingmutex.Unlock()

	if race.ticking {
		return
	}
	race.ticking = true

	if race.metrics != nil {
		race.metrics.Loop(func() {
			race.metrics.WriteAppMetric("race", map[string]interface{}{
				"ticks":    race.tickCounter.GetAndReset(),
				"messages": race.msgCounter.GetAndReset(),
			})
		})
	}

	race.startTicking()
}

func (race *Race) startTicking() {
	go func() {
		tickduration := time.Duration((1000000 / time.Duration(race.tickspersec)) * time.Microsecond)
		ticker := time.Tick(tickduration)

		lastTick := time.Now()

		for {
			select {
			case <-race.stopticking:
				{
					utils.Debug("race", "Received stop ticking signal")
					notify.Post("race:stopped", race.id)
					return
				}
			case <-ticker:
				{
					now := time.Now()
					dt := now.Sub(lastTick).Seconds()
					lastTick = now

					race.Step(dt)
				}
			}
		}
	}()
}

func (race *Race) Stop() {
	race.tickingmutex.Lock()
	defer race.tickingmutex.Unlock()

	if !race.ticking {
		return
	}
	race.ticking = false

	close(race.stopticking)

	race.recorder.Stop()

	if race.metrics != nil {
		race.metrics.TearDown()
	}

	if race.client != nil {
		race.client.Leave()
	}
}

// Step advances the whole race by one tick. Ordering is strict: inbound
// network state lands before AI decides, AI decides before physics
// moves, and events are published only after physics settled.
func (race *Race) Step(dt float64) {
	watch := utils.MakeStopwatch("race::Step()")
	watch.Start("Step")

	race.ticknum++

	watch.Start("network")
	race.applyInbound()
	race.applyInterpolation()
	watch.Stop("network")

	watch.Start("ai")
	race.stepBots(dt)
	watch.Stop("ai")

	watch.Start("physics")
	karts := race.Karts()
	events := race.engine.Advance(dt, karts)
	watch.Stop("physics")

	watch.Start("events")
	for _, event := range events {
		race.publishEvent(event)
	}
	race.checkRaceEnd()
	watch.Stop("events")

	watch.Start("frame")
	frame := race.ProduceFrameJson()
	notify.PostTimeout("race:frame", string(frame), time.Millisecond)
	race.recorder.Record(race.id, string(frame))
	watch.Stop("frame")

	if race.tickCounter != nil {
		race.tickCounter.Add(1)
	}

	watch.Stop("Step")
	race.debugNbTicks++
}

func (race *Race) stepBots(dt float64) {
	karts := race.Karts()

	for _, entityresult := range race.botsView.Get() {
		bot := entityresult.Components[race.botComponent].(*ai.Bot)
		kart := entityresult.Components[race.kartComponent].(*state.Vehicle)

		if race.finished[kart.Id] {
			// coast to a stop past the finish line
			kart.Controls = state.Controls{Brake: 0.4}
			continue
		}

		race.driver.Update(dt, bot, kart, karts, race.localKart)
	}
}

func (race *Race) publishEvent(event physics.Event) {
	switch ev := event.(type) {
	case physics.CheckpointEvent:
		notify.PostTimeout("race:checkpoint", ev, time.Millisecond)
	case physics.LapEvent:
		notify.PostTimeout("race:lap", ev, time.Millisecond)
	}
}

// checkRaceEnd moves karts that completed the lap target into the
// results, in finish order, and closes the race when the fleet is done.
func (race *Race) checkRaceEnd() {
	karts := race.Karts()

	done := 0
	for _, kart := range karts {
		if race.finished[kart.Id] {
			done++
			continue
		}

		if kart.Progress.LapCount < race.targetLaps {
			continue
		}

		race.finished[kart.Id] = true
		done++

		race.results = append(race.results, types.RaceResult{
			PlayerId:   kart.Id.String(),
			PlayerName: kart.DisplayName,
			Position:   len(race.results) + 1,
			Laps:       kart.Progress.LapCount,
			TotalTime:  kart.Progress.TotalTime(time.Now()).Seconds(),
		})

		utils.Debug("race", kart.DisplayName+" finished")
	}

	if done < len(karts) || len(karts) == 0 {
		return
	}

	race.recorder.Close(race.id)

	if race.client != nil && race.isHost {
		race.client.Send(types.MessageTypeRaceFinished, types.RaceFinishedMessage{
			Results: race.results,
		})
	}

	notify.PostTimeout("race:finished", race.results, time.Millisecond)

	go race.Stop()
}

// Results returns finishers in finish order; empty until the first kart
// completes the lap target.
func (race *Race) Results() []types.RaceResult {
	return race.results
}
