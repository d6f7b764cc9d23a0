package events

import (
	"sync"
	"testing"

	"github.com/vovakirdan/hexroute/internal/games/hexlink/core"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe(4)
	b := bus.Subscribe(4)
	defer a.Close()
	defer b.Close()

	bus.Publish(RouteUnlocked{RunID: "r1", Moves: 3})

	for _, sub := range []*Subscription{a, b} {
		select {
		case evt := <-sub.Events():
			got, ok := evt.(RouteUnlocked)
			if !ok || got.RunID != "r1" || got.Moves != 3 {
				t.Errorf("unexpected event %#v", evt)
			}
		default:
			t.Errorf("subscriber %s got nothing", sub.ID())
		}
	}
}

func TestSubscriptionDropsOldest(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(2)
	defer sub.Close()

	for i := 1; i <= 5; i++ {
		bus.Publish(TileRotated{Moves: i})
	}

	var got []int
	for len(sub.Events()) > 0 {
		got = append(got, (<-sub.Events()).(TileRotated).Moves)
	}
	if len(got) != 2 || got[1] != 5 {
		t.Errorf("expected the newest events to survive, got %v", got)
	}
}

func TestSubscriptionClose(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(0)
	if bus.Count() != 1 {
		t.Fatalf("Count() = %d, expected 1", bus.Count())
	}

	sub.Close()
	sub.Close() // idempotent

	if bus.Count() != 0 {
		t.Errorf("Count() = %d after Close", bus.Count())
	}
	select {
	case <-sub.Done():
	default:
		t.Error("Done should be closed")
	}

	bus.Publish(RouteUnlocked{})
	if len(sub.Events()) != 0 {
		t.Error("closed subscription should not receive events")
	}
}

func TestPublishConcurrent(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(1000)
	defer sub.Close()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				bus.Publish(TileRotated{})
			}
		}()
	}
	wg.Wait()

	if n := len(sub.Events()); n != 500 {
		t.Errorf("received %d events, expected 500", n)
	}
}

func TestSessionSink(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(8)
	defer sub.Close()

	sink := NewSessionSink(bus, func() (string, string) { return "run-1", "lvl01" })
	s, err := core.NewSession(core.Layout{
		ID: "pair",
		Tiles: []core.TileSpec{
			{ID: 1, Pos: core.C(0, 0), Kind: core.KindSource},
			{ID: 2, Pos: core.C(1, 0), Kind: core.KindStraight, Rotation: 0},
			{ID: 3, Pos: core.C(2, 0), Kind: core.KindTarget},
		},
	}, nil, core.WithEventSink(sink))
	if err != nil {
		t.Fatal(err)
	}

	s.Rotate(2)
	s.AttemptUnlock()

	rot, ok := (<-sub.Events()).(TileRotated)
	if !ok || rot.RunID != "run-1" || rot.LevelID != "lvl01" || rot.Tile.ID != 2 || !rot.Ready {
		t.Errorf("unexpected rotate event %+v", rot)
	}
	unl, ok := (<-sub.Events()).(RouteUnlocked)
	if !ok || unl.Moves != 1 {
		t.Errorf("unexpected unlock event %+v", unl)
	}
}
