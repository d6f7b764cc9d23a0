package sfx

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/hexroute/internal/events"
)

// Output receives finished streams.
type Output interface {
	Play(s beep.Streamer)
}

type speakerOutput struct{}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

var (
	speakerOnce sync.Once
	speakerErr  error
)

// OpenSpeaker initializes the system audio device once per process.
func OpenSpeaker() (Output, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return nil, speakerErr
	}
	return speakerOutput{}, nil
}

// Player turns bus events into cues.
type Player struct {
	out    Output
	volume float64
	logger *log.Logger
}

// NewPlayer creates a player writing to out. A nil out makes every cue a
// no-op, which is how sound is disabled.
func NewPlayer(out Output, volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{out: out, volume: volume, logger: logger}
}

// Play emits a single cue.
func (p *Player) Play(c Cue) {
	if p == nil || p.out == nil {
		return
	}
	if s := Streamer(c, p.volume); s != nil {
		p.out.Play(s)
	}
}

// Run plays cues for events from sub until ctx ends or the subscription
// closes.
func (p *Player) Run(ctx context.Context, sub *events.Subscription) {
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done():
			return
		case evt := <-sub.Events():
			c := CueFor(evt)
			if c == CueNone {
				continue
			}
			p.logger.Debug("Playing cue", "cue", c)
			p.Play(c)
		}
	}
}

// CueFor maps an event to the cue it triggers.
func CueFor(evt events.Event) Cue {
	switch e := evt.(type) {
	case events.TileRotated:
		if e.Ready {
			return CueLink
		}
		return CueRotate
	case events.RouteUnlocked:
		return CueUnlock
	case events.EntryAccepted:
		return CueEntry
	}
	return CueNone
}
