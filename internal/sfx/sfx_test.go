package sfx

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/hexroute/internal/events"
)

func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		got, ok := s.Stream(buf)
		for i := range got {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		n += got
		if !ok || got == 0 {
			return n, peak
		}
	}
}

func TestStreamerLength(t *testing.T) {
	for _, c := range []Cue{CueRotate, CueLink, CueUnlock, CueEntry} {
		t.Run(c.String(), func(t *testing.T) {
			s := Streamer(c, 1)
			if s == nil {
				t.Fatal("expected a stream")
			}
			n, peak := drain(s)
			want := 0
			for _, nt := range cueNotes[c] {
				want += SampleRate.N(nt.dur)
			}
			if n != want {
				t.Errorf("streamed %d samples, expected %d", n, want)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak amplitude %f", peak)
			}
		})
	}
}

func TestStreamerSilentCue(t *testing.T) {
	if Streamer(CueNone, 1) != nil {
		t.Error("CueNone should not produce a stream")
	}
}

func TestStreamerZeroVolume(t *testing.T) {
	_, peak := drain(Streamer(CueUnlock, 0))
	if peak != 0 {
		t.Errorf("zero volume should be silent, peak %f", peak)
	}
}

func TestDuration(t *testing.T) {
	if got := Duration(CueUnlock); got != 510*time.Millisecond {
		t.Errorf("Duration(unlock) = %v", got)
	}
	if Duration(CueNone) != 0 {
		t.Error("CueNone should have no duration")
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		evt  events.Event
		want Cue
	}{
		{"rotation", events.TileRotated{}, CueRotate},
		{"rotation completing the route", events.TileRotated{Ready: true}, CueLink},
		{"unlock", events.RouteUnlocked{}, CueUnlock},
		{"leaderboard entry", events.EntryAccepted{}, CueEntry},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CueFor(tc.evt); got != tc.want {
				t.Errorf("CueFor = %v, expected %v", got, tc.want)
			}
		})
	}
}

type recordingOutput struct {
	mu    sync.Mutex
	plays int
	ch    chan struct{}
}

func (r *recordingOutput) Play(beep.Streamer) {
	r.mu.Lock()
	r.plays++
	r.mu.Unlock()
	r.ch <- struct{}{}
}

func TestPlayerRun(t *testing.T) {
	out := &recordingOutput{ch: make(chan struct{}, 4)}
	p := NewPlayer(out, 0.5, log.New(io.Discard))

	bus := events.NewBus()
	sub := bus.Subscribe(8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, sub)
		close(done)
	}()

	bus.Publish(events.TileRotated{})
	bus.Publish(events.RouteUnlocked{})

	for range 2 {
		select {
		case <-out.ch:
		case <-time.After(2 * time.Second):
			t.Fatal("cue not played")
		}
	}

	cancel()
	<-done
	if bus.Count() != 0 {
		t.Error("Run should close its subscription")
	}
}

func TestNilOutputIsSilent(t *testing.T) {
	p := NewPlayer(nil, 1, log.New(io.Discard))
	p.Play(CueUnlock)

	var nilPlayer *Player
	nilPlayer.Play(CueUnlock)
}
