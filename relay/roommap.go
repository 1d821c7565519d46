package relay

import (
	"github.com/Jukeman9/Gokart-racing/common/types"
)

// RoomMap is a typed view over the shared SyncMap; room codes are the
// keys.
type RoomMap struct {
	*types.SyncMap
}

func NewRoomMap() *RoomMap {
	return &RoomMap{
		SyncMap: types.NewSyncMap(),
	}
}

func (wmap *RoomMap) Get(code string) *Room {
	if room, ok := wmap.GetGeneric(code).(*Room); ok {
		return room
	}

	return nil
}
