package racesim

import (
	"math/rand"
	"sync"

	"github.com/bytearena/ecs"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/Jukeman9/Gokart-racing/common/recording"
	"github.com/Jukeman9/Gokart-racing/common/telemetry"
	"github.com/Jukeman9/Gokart-racing/common/types"
	"github.com/Jukeman9/Gokart-racing/common/utils/vector"
	"github.com/Jukeman9/Gokart-racing/netsync"
	"github.com/Jukeman9/Gokart-racing/racesim/ai"
	"github.com/Jukeman9/Gokart-racing/racesim/physics"
	"github.com/Jukeman9/Gokart-racing/racesim/state"
	"github.com/Jukeman9/Gokart-racing/racesim/track"
)

const gridRowSpacing = 40.0
const gridColumnOffset = 25.0

// Race is the director: it owns the entity manager, the tick loop and
// the strict per-tick ordering between network, AI, physics and
// recording. Everything else only sees the slices it hands out.
type Race struct {
	id          string
	ticknum     int
	tickspersec int

	manager *ecs.Manager

	kartComponent   *ecs.Component
	botComponent    *ecs.Component
	remoteComponent *ecs.Component

	kartsView   *ecs.View
	botsView    *ecs.View
	remotesView *ecs.View

	track  *track.Track
	engine *physics.Engine
	driver *ai.Driver

	client   *netsync.Client
	isHost   bool
	recorder recording.Recorder

	metrics     *telemetry.Client
	tickCounter *telemetry.Counter
	msgCounter  *telemetry.Counter

	rng *rand.Rand

	targetLaps int
	results    []types.RaceResult
	finished   map[uuid.UUID]bool

	stopticking  chan struct{}
	tickingmutex sync.Mutex
	ticking      bool

	localKart *state.Vehicle
	remoteIds map[string]ecs.EntityID

	debugNbTicks int
}

type RaceOptions struct {
	Track       *track.Track
	Tickspersec int
	TargetLaps  int
	Seed        int64

	// optional collaborators
	Client   *netsync.Client
	IsHost   bool
	Recorder recording.Recorder
	Metrics  *telemetry.Client
}

func NewRace(options RaceOptions) (*Race, error) {
	if options.Track == nil {
		return nil, errors.New("a race needs a track")
	}
	if options.Tickspersec <= 0 {
		options.Tickspersec = 60
	}
	if options.TargetLaps <= 0 {
		options.TargetLaps = 3
	}

	manager := ecs.NewManager()

	race := &Race{
		id:          uuid.NewV4().String(),
		tickspersec: options.Tickspersec,

		manager: manager,

		kartComponent:   manager.NewComponent(),
		botComponent:    manager.NewComponent(),
		remoteComponent: manager.NewComponent(),

		track:  options.Track,
		engine: physics.NewEngine(options.Track, options.Seed),

		client:   options.Client,
		isHost:   options.IsHost,
		recorder: options.Recorder,
		metrics:  options.Metrics,

		rng: rand.New(rand.NewSource(options.Seed)),

		targetLaps: options.TargetLaps,
		results:    make([]types.RaceResult, 0),
		finished:   make(map[uuid.UUID]bool),

		stopticking: make(chan struct{}),
		remoteIds:   make(map[string]ecs.EntityID),
	}

	race.kartsView = manager.CreateView(race.kartComponent)
	race.botsView = manager.CreateView(race.botComponent, race.kartComponent)
	race.remotesView = manager.CreateView(race.remoteComponent, race.kartComponent)

	race.driver = ai.NewDriver(options.Track, race.engine)

	if race.recorder == nil {
		race.recorder = recording.MakeEmptyRecorder()
	}

	if race.metrics != nil {
		race.tickCounter = telemetry.NewCounter()
		race.msgCounter = telemetry.NewCounter()
	}

	if race.client != nil {
		race.client.SetPoseProvider(race.localPose)
	}

	return race, nil
}

func (race *Race) Id() string {
	return race.id
}

func (race *Race) Track() *track.Track {
	return race.track
}

func (race *Race) Engine() *physics.Engine {
	return race.engine
}

// Karts returns the fleet in entity creation order; race position
// tie-breaks follow this same order.
func (race *Race) Karts() []*state.Vehicle {
	results := race.kartsView.Get()
	karts := make([]*state.Vehicle, 0, len(results))

	for _, entityresult := range results {
		karts = append(karts, entityresult.Components[race.kartComponent].(*state.Vehicle))
	}

	return karts
}

func (race *Race) LocalKart() *state.Vehicle {
	return race.localKart
}

// gridPose places the nth starting kart in a two-column grid behind the
// start line.
func (race *Race) gridPose(slot int) state.Pose {
	start := race.track.StartLine

	backward := vector.MakeVector2FromHeading(start.Heading).MultScalar(-1)
	lateral := vector.MakeVector2FromHeading(start.Heading).OrthogonalClockwise()

	row := float64(slot / 2)
	column := -1.0
	if slot%2 == 1 {
		column = 1.0
	}

	position := start.Position.
		Add(backward.MultScalar(gridRowSpacing * (row + 1))).
		Add(lateral.MultScalar(gridColumnOffset * column))

	return state.Pose{
		Position: position,
		Heading:  start.Heading,
	}
}

// AddLocalPlayer registers the human kart. One per race.
func (race *Race) AddLocalPlayer(name string, handlingName string) (*state.Vehicle, error) {
	if race.localKart != nil {
		return nil, errors.New("race already has a local player")
	}

	handling, err := state.HandlingPreset(handlingName)
	if err != nil {
		return nil, err
	}

	kart := state.MakeVehicle(name, handling, race.gridPose(len(race.kartsView.Get())))
	kart.IsLocalPlayer = true

	race.manager.NewEntity().
		AddComponent(race.kartComponent, kart)

	race.localKart = kart

	return kart, nil
}

// AddBot registers one AI kart. An empty name draws a pet name so bots
// stay tellable apart in the standings.
func (race *Race) AddBot(difficulty string, handlingName string, name string) (*state.Vehicle, error) {
	profile, err := ai.ProfileByName(difficulty)
	if err != nil {
		return nil, err
	}

	handling, err := state.HandlingPreset(handlingName)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = petname.Generate(2, "-")
	}

	kart := state.MakeVehicle(name, handling, race.gridPose(len(race.kartsView.Get())))

	race.manager.NewEntity().
		AddComponent(race.kartComponent, kart).
		AddComponent(race.botComponent, ai.NewBot(profile, race.rng.Int63()))

	return kart, nil
}

// AddRemote registers a network-driven kart; its pose is owned by the
// interpolation buffer, never by the local force model.
func (race *Race) AddRemote(playerId string, name string) (*state.Vehicle, error) {
	if _, known := race.remoteIds[playerId]; known {
		return nil, errors.New("remote player " + playerId + " already registered")
	}

	handling, err := state.HandlingPreset("standard")
	if err != nil {
		return nil, err
	}

	kart := state.MakeVehicle(name, handling, race.gridPose(len(race.kartsView.Get())))
	kart.IsRemote = true

	entity := race.manager.NewEntity().
		AddComponent(race.kartComponent, kart).
		AddComponent(race.remoteComponent, netsync.NewPoseBuffer())

	race.remoteIds[playerId] = entity.GetID()

	return kart, nil
}

// RemoveRemote drops a departed player's kart from the fleet.
func (race *Race) RemoveRemote(playerId string) {
	entityId, known := race.remoteIds[playerId]
	if !known {
		return
	}
	delete(race.remoteIds, playerId)

	entityresult := race.manager.GetEntityByID(entityId, race.kartComponent)
	if entityresult == nil {
		return
	}

	race.manager.DisposeEntities(entityresult.Entity)
}
