package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	notify "github.com/bitly/go-notify"
	uuid "github.com/satori/go.uuid"

	"github.com/Jukeman9/Gokart-racing/common/healthcheck"
	"github.com/Jukeman9/Gokart-racing/common/recording"
	"github.com/Jukeman9/Gokart-racing/common/telemetry"
	"github.com/Jukeman9/Gokart-racing/common/types"
	"github.com/Jukeman9/Gokart-racing/common/utils"
	"github.com/Jukeman9/Gokart-racing/netsync"
	"github.com/Jukeman9/Gokart-racing/racesim"
	"github.com/Jukeman9/Gokart-racing/racesim/config"
	"github.com/Jukeman9/Gokart-racing/racesim/track"
)

func main() {
	rand.Seed(time.Now().UnixNano())

	configPath := flag.String("config", "", "Path to the race configuration; required")
	hcPort := flag.String("hc-port", "", "Port of the health check server; disabled when empty")

	flag.Parse()

	utils.Assert(*configPath != "", "config must be set")

	raceconfig := config.LoadRaceConfig(*configPath)

	seed := raceconfig.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	raceTrack, err := track.GenerateOval(track.DefaultOvalSpec())
	utils.Check(err, "Could not build the track")

	metrics, err := telemetry.NewClient("kart-race")
	if err != nil {
		utils.Debug("main", "telemetry disabled: "+err.Error())
		metrics = nil
	}

	var recorder recording.Recorder = recording.MakeEmptyRecorder()
	if raceconfig.RecordFile != "" {
		recorder = recording.MakeSingleRaceRecorder(raceconfig.RecordFile)
	}

	var client *netsync.Client
	playerId := uuid.NewV4().String()

	if raceconfig.RelayHost != "" {
		client = netsync.NewClient(raceconfig.RelayHost, raceconfig.RoomCode, playerId, raceconfig.PlayerName)

		err := client.Connect()
		utils.Check(err, "Could not reach relay "+raceconfig.RelayHost)

		if raceconfig.Host {
			client.Send(types.MessageTypeCreateRoom, types.CreateRoomMessage{
				RoomCode: raceconfig.RoomCode,
				HostId:   playerId,
				HostName: raceconfig.PlayerName,
			})
		} else {
			client.Send(types.MessageTypeJoinRoom, types.JoinRoomMessage{
				RoomCode:   raceconfig.RoomCode,
				PlayerId:   playerId,
				PlayerName: raceconfig.PlayerName,
			})
		}
	}

	race, err := racesim.NewRace(racesim.RaceOptions{
		Track:       raceTrack,
		Tickspersec: raceconfig.Tps,
		TargetLaps:  raceconfig.TargetLaps,
		Seed:        seed,

		Client:   client,
		IsHost:   raceconfig.Host,
		Recorder: recorder,
		Metrics:  metrics,
	})
	utils.Check(err, "Could not create the race")

	_, err = race.AddLocalPlayer(raceconfig.PlayerName, raceconfig.PlayerHandling)
	utils.Check(err, "Could not add the player kart")

	for _, botconfig := range raceconfig.Bots {
		_, err := race.AddBot(botconfig.Difficulty, botconfig.Handling, botconfig.Name)
		utils.Check(err, "Could not add bot")
	}

	if *hcPort != "" {
		hc := healthcheck.NewHealthCheckServer(*hcPort)
		hc.Register("ticking", func() (error, bool) {
			return nil, true
		})
		go hc.Listen()
	}

	raceFinished := make(chan interface{})
	notify.Start("race:finished", raceFinished)

	raceStopped := make(chan interface{})
	notify.Start("race:stopped", raceStopped)

	hassigtermed := make(chan os.Signal, 2)
	signal.Notify(hassigtermed, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-hassigtermed
		race.Stop()
	}()

	race.StartRace()
	race.Start()

	select {
	case payload := <-raceFinished:
		results, _ := payload.([]types.RaceResult)
		standings, _ := json.MarshalIndent(results, "", "  ")
		log.Println("Race finished:\n" + string(standings))
	case <-raceStopped:
		log.Println("Race stopped")
	}
}
