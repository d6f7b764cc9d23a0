package core

import (
	"math/rand"
	"time"
)

// UnlockResult is the outcome of AttemptUnlock. MoveCount and
// ElapsedSeconds are only meaningful when Unlocked is true.
type UnlockResult struct {
	Unlocked       bool
	MoveCount      int
	ElapsedSeconds float64
}

// RotateEvent is emitted after every successful rotation.
type RotateEvent struct {
	Tile  TileView
	Moves int
	Ready bool // All targets active after this rotation
}

// UnlockEvent is emitted once, when the session completes.
type UnlockEvent struct {
	Result UnlockResult
}

// EventSink receives session notifications synchronously, after the state
// change has been applied.
type EventSink interface {
	OnRotate(RotateEvent)
	OnUnlock(UnlockEvent)
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now for start and elapsed-time measurement.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEventSink attaches a receiver for rotate/unlock notifications.
func WithEventSink(sink EventSink) Option {
	return func(s *Session) {
		s.sink = sink
	}
}

// Session is one puzzle attempt. It moves from in-progress to completed
// exactly once. A Session is not safe for concurrent use; it belongs to a
// single attempt.
type Session struct {
	layoutID  string
	tiles     []Tile
	byID      map[TileID]int
	moves     int
	startedAt time.Time
	completed bool
	result    UnlockResult

	now  func() time.Time
	sink EventSink
}

// NewSession validates the layout, scrambles every non-fixed tile with rng
// and computes the initial signal flow. A nil rng keeps the layout's own
// rotations.
func NewSession(layout Layout, rng *rand.Rand, opts ...Option) (*Session, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		layoutID: layout.ID,
		tiles:    layout.Build(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.byID = make(map[TileID]int, len(s.tiles))
	for i, t := range s.tiles {
		s.byID[t.ID] = i
	}

	if rng != nil {
		for i := range s.tiles {
			if s.tiles[i].Fixed {
				continue
			}
			s.tiles[i].Rotation = rng.Intn(DirCount)
		}
	}

	s.tiles = Propagate(s.tiles)
	s.startedAt = s.now()
	return s, nil
}

// Rotate turns a tile one step clockwise and recomputes the signal flow.
// Unknown or fixed tiles are rejected with *InvalidTileError and leave the
// session untouched.
func (s *Session) Rotate(id TileID) (GridSnapshot, error) {
	if s.completed {
		return GridSnapshot{}, ErrSessionCompleted
	}

	i, ok := s.byID[id]
	if !ok {
		return GridSnapshot{}, &InvalidTileError{ID: id, Reason: ReasonUnknownTile}
	}
	if s.tiles[i].Fixed {
		return GridSnapshot{}, &InvalidTileError{ID: id, Reason: ReasonFixedTile}
	}

	s.tiles[i].Rotation = (s.tiles[i].Rotation + 1) % DirCount
	s.moves++
	s.tiles = Propagate(s.tiles)

	snap := newSnapshot(s.tiles)
	if s.sink != nil {
		view, _ := snap.Lookup(id)
		s.sink.OnRotate(RotateEvent{Tile: view, Moves: s.moves, Ready: s.Ready()})
	}
	return snap, nil
}

// AttemptUnlock completes the session if every TARGET is active.
// Otherwise it returns a result with Unlocked false and changes nothing.
func (s *Session) AttemptUnlock() (UnlockResult, error) {
	if s.completed {
		return s.result, ErrSessionCompleted
	}
	if !s.Ready() {
		return UnlockResult{}, nil
	}

	s.completed = true
	s.result = UnlockResult{
		Unlocked:       true,
		MoveCount:      s.moves,
		ElapsedSeconds: s.now().Sub(s.startedAt).Seconds(),
	}

	if s.sink != nil {
		s.sink.OnUnlock(UnlockEvent{Result: s.result})
	}
	return s.result, nil
}

// Ready reports whether every TARGET tile currently carries the signal.
func (s *Session) Ready() bool {
	targets := 0
	for _, t := range s.tiles {
		if !t.IsTarget() {
			continue
		}
		if !t.Active {
			return false
		}
		targets++
	}
	return targets > 0
}

// Snapshot returns a read-only copy of the grid.
func (s *Session) Snapshot() GridSnapshot {
	return newSnapshot(s.tiles)
}

// Tiles returns a copy of the current tiles.
func (s *Session) Tiles() []Tile {
	out := make([]Tile, len(s.tiles))
	copy(out, s.tiles)
	return out
}

// LayoutID returns the id of the layout this session was built from.
func (s *Session) LayoutID() string {
	return s.layoutID
}

// MoveCount returns the number of successful rotations.
func (s *Session) MoveCount() int {
	return s.moves
}

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Completed reports whether the session has been unlocked.
func (s *Session) Completed() bool {
	return s.completed
}

// Result returns the terminal result once the session is completed.
func (s *Session) Result() (UnlockResult, bool) {
	return s.result, s.completed
}
