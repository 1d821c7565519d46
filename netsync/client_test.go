package netsync

import (
	"sync"
	"testing"

	"github.com/Jukeman9/Gokart-racing/common/types"
)

func TestPoseProviderCanBeSwappedWhileStreaming(t *testing.T) {
	client := NewClient("localhost:8090", "ABCD", "p1", "alice")

	var wg sync.WaitGroup

	// the outbound stream polls the provider; installing it later from the
	// race setup path must not race with those reads
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if provider := client.provider(); provider != nil {
				provider()
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			client.SetPoseProvider(func() (types.PositionUpdateMessage, bool) {
				return types.PositionUpdateMessage{PlayerId: "p1"}, true
			})
		}
	}()

	wg.Wait()

	provider := client.provider()
	if provider == nil {
		panic("the installed provider must be visible after the swaps")
	}

	update, ok := provider()
	if !ok || update.PlayerId != "p1" {
		t.Fatalf("installed provider should answer, got ok=%v id=%q", ok, update.PlayerId)
	}
}

func TestRejoinCarriesFullIdentity(t *testing.T) {
	client := NewClient("localhost:8090", "ABCD", "p1", "alice")

	join := client.joinMessage()

	if join.RoomCode != "ABCD" || join.PlayerId != "p1" {
		t.Fatalf("join announcement lost the room identity: %+v", join)
	}
	if join.PlayerName != "alice" {
		t.Fatalf("join announcement must carry the display name, got %q", join.PlayerName)
	}
}
