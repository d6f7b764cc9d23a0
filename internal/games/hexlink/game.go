// Package hexlink provides the hexagonal signal-routing puzzle for the arcade.
package hexlink

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	platformcore "github.com/vovakirdan/hexroute/internal/core"
	"github.com/vovakirdan/hexroute/internal/games/hexlink/core"
	"github.com/vovakirdan/hexroute/internal/games/hexlink/levels"
	"github.com/vovakirdan/hexroute/internal/registry"
)

// GameID is the registry identifier of the routing puzzle.
const GameID = "hexlink"

// How long a status message stays on screen, in ticks.
const messageTicks = 45

// Game adapts a puzzle Session to the arcade game loop.
type Game struct {
	rng      *rand.Rand
	scramble bool
	clock    func() time.Time
	session  *core.Session
	level    levels.Level
	levelDir string
	sink     core.EventSink

	// Run bookkeeping
	runID  string
	result platformcore.Result
	won    bool

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool

	// Interaction state
	cursor   int // Index into the session's tile order
	hint     core.TileID
	hasHint  bool
	paused   bool
	message  string
	msgColor platformcore.Color
	msgTicks int

	grid gridLayout
}

// Package-level variables for configuration
var (
	selectedLevel string
	selectedDir   string
	scramble      = true
)

// SetStartLevel selects the level id used by games created afterwards.
// An empty id means the default grid.
func SetStartLevel(id string) {
	selectedLevel = id
}

// SetLevelDir sets an extra directory searched for level files.
func SetLevelDir(dir string) {
	selectedDir = dir
}

// SetScramble controls whether new runs randomize tile rotations. When off,
// levels start exactly as authored.
func SetScramble(on bool) {
	scramble = on
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// New creates a routing puzzle on the selected start level.
func New() *Game {
	g := &Game{
		clock:    time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		scramble: scramble,
		levelDir: selectedDir,
		level:    levels.FromLayout(core.DefaultLayout()),
	}
	if selectedLevel != "" {
		if lvl, err := levels.Resolve(selectedDir, selectedLevel); err == nil {
			g.level = lvl
		}
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Data Routing"
}

// SetLevel switches to another level. It takes effect on the next Reset.
func (g *Game) SetLevel(id string) error {
	lvl, err := levels.Resolve(g.levelDir, id)
	if err != nil {
		return err
	}
	g.level = lvl
	return nil
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// LevelID returns the id of the level being played.
func (g *Game) LevelID() string {
	return g.level.ID
}

// Resize adapts the grid to a new screen size, keeping the run.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	if g.session == nil {
		return
	}
	g.grid = newGridLayout(g.session.Snapshot(), w, h)
	g.tooSmall = !g.grid.fits
}

// SetEventSink attaches a receiver for rotate/unlock events of every
// session this game creates.
func (g *Game) SetEventSink(sink core.EventSink) {
	g.sink = sink
}

// Session exposes the running puzzle session.
func (g *Game) Session() *core.Session {
	return g.session
}

// RunID identifies the current attempt.
func (g *Game) RunID() string {
	return g.runID
}

// Reset scrambles the current level with the configured seed.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.won = false
	g.result = platformcore.Result{}
	g.clearHint()
	g.message = ""
	g.msgTicks = 0

	g.startSession()
}

func (g *Game) startSession() {
	opts := []core.Option{core.WithClock(g.clock)}
	if g.sink != nil {
		opts = append(opts, core.WithEventSink(g.sink))
	}

	var rng *rand.Rand
	if g.scramble {
		rng = g.rng
	}
	s, err := core.NewSession(g.level.Layout, rng, opts...)
	if err != nil {
		g.session = nil
		g.flash("LEVEL CORRUPT: "+err.Error(), platformcore.ColorRed)
		return
	}
	g.session = s
	g.runID = uuid.NewString()
	g.grid = newGridLayout(s.Snapshot(), g.screenW, g.screenH)
	g.tooSmall = !g.grid.fits
	g.cursor = g.firstRotatable()
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	if g.msgTicks > 0 {
		g.msgTicks--
	}

	if input.Has(platformcore.ActionRestart) {
		g.Reset(platformcore.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return platformcore.StepResult{State: g.State()}
	}

	if g.won && input.Has(platformcore.ActionConfirm) {
		g.advanceLevel()
		return platformcore.StepResult{State: g.State()}
	}

	if input.Has(platformcore.ActionPause) && !g.won {
		g.paused = !g.paused
	}

	if g.session == nil || g.won || g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	switch {
	case input.Has(platformcore.ActionUp):
		g.moveCursor(0, -1)
	case input.Has(platformcore.ActionDown):
		g.moveCursor(0, 1)
	case input.Has(platformcore.ActionLeft):
		g.moveCursor(-1, 0)
	case input.Has(platformcore.ActionRight):
		g.moveCursor(1, 0)
	}

	if input.Has(platformcore.ActionHint) {
		g.showHint()
	}

	switch {
	case input.Has(platformcore.ActionRotate):
		g.rotateSelected()
	case input.Has(platformcore.ActionConfirm):
		if g.selected().Kind == core.KindTarget {
			g.unlock()
		} else {
			g.rotateSelected()
		}
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) rotateSelected() {
	view := g.selected()
	_, err := g.session.Rotate(view.ID)

	var tileErr *core.InvalidTileError
	switch {
	case errors.As(err, &tileErr) && tileErr.Reason == core.ReasonFixedTile:
		g.flash("NODE LOCKED", platformcore.ColorYellow)
		return
	case err != nil:
		g.flash(err.Error(), platformcore.ColorRed)
		return
	}

	if g.hasHint && g.hint == view.ID {
		g.clearHint()
	}
}

func (g *Game) unlock() {
	res, err := g.session.AttemptUnlock()
	if err != nil {
		g.flash(err.Error(), platformcore.ColorRed)
		return
	}
	if !res.Unlocked {
		g.flash("ACCESS DENIED: NO CARRIER AT CORE", platformcore.ColorRed)
		return
	}

	g.won = true
	g.clearHint()
	g.result = platformcore.Result{
		RunID:          g.runID,
		LevelID:        g.level.ID,
		Moves:          res.MoveCount,
		ElapsedSeconds: res.ElapsedSeconds,
	}
}

func (g *Game) showHint() {
	tiles := g.session.Tiles()
	sol, ok := core.Solve(tiles)
	if !ok {
		g.flash("NO ROUTE EXISTS", platformcore.ColorRed)
		return
	}
	id, ok := sol.Hint(tiles)
	if !ok {
		g.flash("ROUTE COMPLETE: UNLOCK THE CORE", platformcore.ColorGreen)
		return
	}
	g.hint, g.hasHint = id, true
	for i, v := range g.session.Snapshot().Tiles() {
		if v.ID == id {
			g.cursor = i
			break
		}
	}
}

func (g *Game) clearHint() {
	g.hint, g.hasHint = 0, false
}

// advanceLevel moves to the level after the current one, wrapping around.
func (g *Game) advanceLevel() {
	all, err := levels.All(g.levelDir)
	if err != nil || len(all) == 0 {
		g.flash("NO FURTHER LEVELS", platformcore.ColorYellow)
		return
	}
	next := all[0]
	for i, lvl := range all {
		if lvl.ID == g.level.ID && i+1 < len(all) {
			next = all[i+1]
			break
		}
	}
	g.level = next
	g.Reset(platformcore.RuntimeConfig{
		Seed:    g.rng.Int63(),
		ScreenW: g.screenW,
		ScreenH: g.screenH,
	})
}

func (g *Game) flash(msg string, c platformcore.Color) {
	g.message = msg
	g.msgColor = c
	g.msgTicks = messageTicks
}

func (g *Game) selected() core.TileView {
	snap := g.session.Snapshot()
	if g.cursor < 0 || g.cursor >= snap.Len() {
		return core.TileView{ID: -1}
	}
	return snap.At(g.cursor)
}

func (g *Game) firstRotatable() int {
	snap := g.session.Snapshot()
	for i := range snap.Len() {
		if !snap.At(i).Fixed {
			return i
		}
	}
	return 0
}

// moveCursor jumps to the nearest selectable tile lying in the given screen
// direction. Hex rows are offset, so "up" picks between the two upper
// neighbours by grid order.
func (g *Game) moveCursor(dx, dy int) {
	snap := g.session.Snapshot()
	fromX, fromY := g.grid.cellPos(snap.At(g.cursor).Pos)

	best, bestCost := -1, 0
	for i := range snap.Len() {
		v := snap.At(i)
		if i == g.cursor || v.Kind == core.KindEmpty {
			continue
		}
		x, y := g.grid.cellPos(v.Pos)
		// Rows are two lines apart and columns three characters per half step,
		// so scale y to keep the hex axes comparable.
		ox, oy := x-fromX, (y-fromY)*3
		along := ox*dx + oy*dy
		if along <= 0 {
			continue
		}
		across := platformcore.Abs(ox*dy - oy*dx)
		cost := along + 2*across
		if best < 0 || cost < bestCost {
			best, bestCost = i, cost
		}
	}
	if best >= 0 {
		g.cursor = best
	}
}

// Result returns the finished run once the core has been unlocked.
func (g *Game) Result() (platformcore.Result, bool) {
	return g.result, g.won
}

// State returns the current game state. Score is the move count.
func (g *Game) State() platformcore.GameState {
	moves := 0
	if g.session != nil {
		moves = g.session.MoveCount()
	}
	return platformcore.GameState{
		Score:    moves,
		GameOver: g.won,
		Won:      g.won,
		Paused:   g.paused,
	}
}
