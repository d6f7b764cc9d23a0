// Package sfx plays short synthesized cues for puzzle events.
package sfx

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the rate every cue is generated at.
const SampleRate = beep.SampleRate(44100)

// Cue identifies one sound.
type Cue int

const (
	CueNone   Cue = iota
	CueRotate     // a tile turned
	CueLink       // the last rotation connected every target
	CueUnlock     // the core was unlocked
	CueEntry      // someone landed on the leaderboard
)

var cueNames = map[Cue]string{
	CueNone:   "none",
	CueRotate: "rotate",
	CueLink:   "link",
	CueUnlock: "unlock",
	CueEntry:  "entry",
}

func (c Cue) String() string {
	if name, ok := cueNames[c]; ok {
		return name
	}
	return "unknown"
}

type note struct {
	freq float64
	dur  time.Duration
}

// cueNotes are played in sequence; a zero frequency is a rest.
var cueNotes = map[Cue][]note{
	CueRotate: {{1320, 25 * time.Millisecond}},
	CueLink:   {{660, 60 * time.Millisecond}, {990, 90 * time.Millisecond}},
	CueUnlock: {{523.25, 90 * time.Millisecond}, {659.25, 90 * time.Millisecond}, {783.99, 90 * time.Millisecond}, {1046.5, 240 * time.Millisecond}},
	CueEntry:  {{880, 50 * time.Millisecond}, {0, 30 * time.Millisecond}, {880, 50 * time.Millisecond}},
}

// Duration returns how long a cue plays.
func Duration(c Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.dur
	}
	return d
}

// Streamer builds the stream for a cue at the given volume in [0,1].
// It returns nil for cues without sound.
func Streamer(c Cue, volume float64) beep.Streamer {
	notes, ok := cueNotes[c]
	if !ok || len(notes) == 0 {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, tone(n))
	}
	return withVolume(beep.Seq(parts...), volume)
}

func tone(n note) beep.Streamer {
	samples := SampleRate.N(n.dur)
	if n.freq <= 0 {
		return generators.Silence(samples)
	}
	sine, err := generators.SineTone(SampleRate, n.freq)
	if err != nil {
		return generators.Silence(samples)
	}
	return fade(beep.Take(samples, sine), samples)
}

// fade applies a linear release over the last fifth of a note so
// consecutive notes do not click.
func fade(s beep.Streamer, total int) beep.Streamer {
	release := total / 5
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := range n {
			vol := 1.0
			if left := total - pos; release > 0 && left < release {
				vol = float64(left) / float64(release)
			}
			samples[i][0] *= vol
			samples[i][1] *= vol
			pos++
		}
		return n, ok
	})
}

// withVolume scales linearly; math.Log2(0) is -Inf so zero means silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(vol, 1))}
}
