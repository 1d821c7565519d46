package relay

import (
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRoomCapacity(t *testing.T) {
	host := NewPlayer("host", "host", nil)
	room := NewRoom("ABCD", host)

	for i := 1; i < maxRoomSize; i++ {
		player := NewPlayer("p"+strconv.Itoa(i), "player", nil)
		if err := room.AddPlayer(player); err != nil {
			t.Fatalf("player %d should fit: %v", i, err)
		}
	}

	overflow := NewPlayer("overflow", "late", nil)
	if err := room.AddPlayer(overflow); err == nil {
		panic("a full room must reject further players")
	}

	if room.Size() != maxRoomSize {
		t.Fatalf("expected %d players, got %d", maxRoomSize, room.Size())
	}
}

func TestOnlyTheCreatorIsHost(t *testing.T) {
	host := NewPlayer("host", "host", nil)
	room := NewRoom("ABCD", host)

	guest := NewPlayer("guest", "guest", nil)
	if err := room.AddPlayer(guest); err != nil {
		t.Fatal(err)
	}

	if !room.IsHost("host") {
		panic("the creator must be the host")
	}
	if room.IsHost("guest") {
		panic("guests must not be hosts")
	}
}

func TestRemovePlayer(t *testing.T) {
	host := NewPlayer("host", "host", nil)
	room := NewRoom("ABCD", host)

	guest := NewPlayer("guest", "guest", nil)
	if err := room.AddPlayer(guest); err != nil {
		t.Fatal(err)
	}

	room.RemovePlayer("guest")

	if room.Size() != 1 {
		t.Fatalf("expected 1 player after removal, got %d", room.Size())
	}
	if room.GetPlayer("guest") != nil {
		panic("removed players must not be resolvable")
	}

	// removing twice is harmless
	room.RemovePlayer("guest")
}

func TestRoomMapTyping(t *testing.T) {
	rooms := NewRoomMap()

	if rooms.Get("none") != nil {
		panic("missing rooms resolve to nil")
	}

	host := NewPlayer("host", "host", nil)
	room := NewRoom("ABCD", host)
	rooms.Set("ABCD", room)

	if rooms.Get("ABCD") != room {
		panic("stored room should come back identical")
	}

	rooms.Remove("ABCD")
	if rooms.Get("ABCD") != nil {
		panic("removed rooms resolve to nil")
	}
}

func TestConcurrentRoomCreationHasOneWinner(t *testing.T) {
	rooms := NewRoomMap()

	var wins int32
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			host := NewPlayer("host"+strconv.Itoa(n), "host", nil)
			room := NewRoom("ABCD", host)

			if rooms.SetIfAbsent("ABCD", room) {
				atomic.AddInt32(&wins, 1)
			}
		}(i)
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("exactly one creator should win the room code, got %d", wins)
	}

	winner := rooms.Get("ABCD")
	if winner == nil {
		panic("the winning room must be resolvable")
	}

	loser := NewRoom("ABCD", NewPlayer("late", "late", nil))
	if rooms.SetIfAbsent("ABCD", loser) {
		panic("a taken room code must not be overwritten")
	}
	if rooms.Get("ABCD") != winner {
		panic("the stored room changed under a rejected create")
	}
}
