// Package events carries puzzle and leaderboard notifications from the
// places they happen to whoever listens: audio cues, logs and the live
// leaderboard feed.
package events

import (
	"time"

	"github.com/vovakirdan/hexroute/internal/games/hexlink/core"
)

// Event is anything published on a Bus.
type Event interface {
	event()
}

// TileRotated is published after every accepted rotation.
type TileRotated struct {
	RunID   string
	LevelID string
	Tile    core.TileView
	Moves   int
	Ready   bool // All targets active after this rotation
}

func (TileRotated) event() {}

// RouteUnlocked is published once per run, when the core is unlocked.
type RouteUnlocked struct {
	RunID          string
	LevelID        string
	Moves          int
	ElapsedSeconds float64
}

func (RouteUnlocked) event() {}

// EntryAccepted is published when the leaderboard stores a new entry.
type EntryAccepted struct {
	ID              int64     `json:"id"`
	OperatorName    string    `json:"operatorName"`
	TimeCompleted   string    `json:"timeCompleted"`
	DurationSeconds int       `json:"durationSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (EntryAccepted) event() {}

// RunInfo reports which run a session belongs to.
type RunInfo func() (runID, levelID string)

// SessionSink adapts a Bus to the puzzle session's EventSink.
type SessionSink struct {
	bus *Bus
	run RunInfo
}

// NewSessionSink creates a sink that tags every event with run.
func NewSessionSink(bus *Bus, run RunInfo) *SessionSink {
	return &SessionSink{bus: bus, run: run}
}

// OnRotate implements core.EventSink.
func (s *SessionSink) OnRotate(e core.RotateEvent) {
	runID, levelID := s.run()
	s.bus.Publish(TileRotated{
		RunID:   runID,
		LevelID: levelID,
		Tile:    e.Tile,
		Moves:   e.Moves,
		Ready:   e.Ready,
	})
}

// OnUnlock implements core.EventSink.
func (s *SessionSink) OnUnlock(e core.UnlockEvent) {
	runID, levelID := s.run()
	s.bus.Publish(RouteUnlocked{
		RunID:          runID,
		LevelID:        levelID,
		Moves:          e.Result.MoveCount,
		ElapsedSeconds: e.Result.ElapsedSeconds,
	})
}
