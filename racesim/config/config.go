package config

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"path"

	"github.com/kardianos/osext"
)

type BotConfig struct {
	Difficulty string
	Handling   string
	Name       string
}

type RaceConfig struct {
	Tps        int
	TargetLaps int
	Seed       int64

	PlayerName     string
	PlayerHandling string

	Bots []BotConfig

	RelayHost string
	RoomCode  string
	Host      bool

	RecordFile string
}

type fileRaceConfig struct {
	Race struct {
		Tps        int
		TargetLaps int
		Seed       int64
	}
	Player struct {
		Name     string
		Handling string
	}
	Bots  []BotConfig
	Relay struct {
		Host     string
		RoomCode string
		IsHost   bool
	}
	RecordFile string
}

// LoadRaceConfig reads and validates the race configuration; a broken
// configuration stops the process before any race state exists.
func LoadRaceConfig(filename string) RaceConfig {
	data, err := ioutil.ReadFile(filename)

	if err != nil {
		log.Panicln(err)
	}

	var config fileRaceConfig

	if err := json.Unmarshal(data, &config); err != nil {
		log.Panicln(err)
	}

	assertInt(config.Race.Tps, "TPS must be provided in the configuration")
	assertInt(config.Race.TargetLaps, "TargetLaps must be provided in the configuration")
	assertString(config.Player.Name, "Player name must be provided in the configuration")

	raceconfig := RaceConfig{
		Tps:        config.Race.Tps,
		TargetLaps: config.Race.TargetLaps,
		Seed:       config.Race.Seed,

		PlayerName:     config.Player.Name,
		PlayerHandling: config.Player.Handling,

		RelayHost: config.Relay.Host,
		RoomCode:  config.Relay.RoomCode,
		Host:      config.Relay.IsHost,

		RecordFile: config.RecordFile,
	}

	if raceconfig.PlayerHandling == "" {
		raceconfig.PlayerHandling = "standard"
	}

	for _, botconfig := range config.Bots {
		if botconfig.Difficulty == "" {
			botconfig.Difficulty = "medium"
		}
		if botconfig.Handling == "" {
			botconfig.Handling = "standard"
		}

		raceconfig.Bots = append(raceconfig.Bots, botconfig)
	}

	return raceconfig
}

func assertInt(value int, err string) {
	if value == 0 {
		log.Panic(err)
	}
}

func assertString(value string, err string) {
	if value == "" {
		log.Panic(err)
	}
}

// GetAbsoluteDir resolves a path relative to the running binary, so
// configs sit next to the executable regardless of the working dir.
func GetAbsoluteDir(relative string) string {
	exfolder, err := osext.ExecutableFolder()
	if err != nil {
		log.Fatal(err)
	}

	return path.Join(exfolder, relative)
}
