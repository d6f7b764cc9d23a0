package hexlink

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	platformcore "github.com/vovakirdan/hexroute/internal/core"
	"github.com/vovakirdan/hexroute/internal/games/hexlink/core"
	"github.com/vovakirdan/hexroute/internal/registry"
)

func newTestGame(t *testing.T, level string) *Game {
	t.Helper()
	g := New()
	if level != "" {
		if err := g.SetLevel(level); err != nil {
			t.Fatalf("SetLevel(%q): %v", level, err)
		}
	}
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7})
	if g.Session() == nil {
		t.Fatal("Reset did not create a session")
	}
	return g
}

func press(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func indexOfTile(t *testing.T, g *Game, id core.TileID) int {
	t.Helper()
	for i, v := range g.Session().Snapshot().Tiles() {
		if v.ID == id {
			return i
		}
	}
	t.Fatalf("tile %d not found", id)
	return -1
}

func targetIndex(t *testing.T, g *Game) int {
	t.Helper()
	for i, v := range g.Session().Snapshot().Tiles() {
		if v.Kind == core.KindTarget {
			return i
		}
	}
	t.Fatal("no target")
	return -1
}

// solveByKeys rotates every tile into a solved position using only input.
func solveByKeys(t *testing.T, g *Game) {
	t.Helper()
	tiles := g.Session().Tiles()
	sol, ok := core.Solve(tiles)
	if !ok {
		t.Fatal("level should be solvable")
	}
	for _, tl := range tiles {
		want, ok := sol[tl.ID]
		if !ok {
			continue
		}
		g.cursor = indexOfTile(t, g, tl.ID)
		for range core.DirCount {
			v, _ := g.Session().Snapshot().Lookup(tl.ID)
			if core.Ports(v.Kind, v.Rotation) == core.Ports(v.Kind, want) {
				break
			}
			press(g, platformcore.ActionRotate)
		}
	}
	if !g.Session().Ready() {
		t.Fatal("grid should be ready after applying the solution")
	}
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("hexlink should register itself")
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Data Routing" {
		t.Errorf("Title() = %q", g.Title())
	}
	if _, ok := g.(registry.Finisher); !ok {
		t.Error("hexlink should report results")
	}
	if _, ok := g.(registry.LevelSetter); !ok {
		t.Error("hexlink should accept levels")
	}
	if _, ok := g.(registry.Resizer); !ok {
		t.Error("hexlink should resize in place")
	}
}

func TestGameDefaultsToCoreGrid(t *testing.T) {
	g := newTestGame(t, "")
	if g.Level().ID != core.DefaultLayoutID {
		t.Errorf("default level = %q", g.Level().ID)
	}
	if _, err := uuid.Parse(g.RunID()); err != nil {
		t.Errorf("run id %q is not a uuid: %v", g.RunID(), err)
	}
	if g.State().GameOver {
		t.Error("fresh game should not be over")
	}
}

func TestGameWinFlow(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	now := start
	g := New()
	g.clock = func() time.Time { return now }
	if err := g.SetLevel("lvl02"); err != nil {
		t.Fatal(err)
	}
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 3})

	solveByKeys(t, g)
	now = start.Add(95 * time.Second)

	g.cursor = targetIndex(t, g)
	res := press(g, platformcore.ActionConfirm)
	if !res.State.GameOver || !res.State.Won {
		t.Fatalf("expected a win, got %+v", res.State)
	}

	result, ok := g.Result()
	if !ok {
		t.Fatal("Result should be available after unlocking")
	}
	if result.LevelID != "lvl02" || result.RunID != g.RunID() {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Moves != g.Session().MoveCount() || result.ElapsedSeconds != 95 {
		t.Errorf("result %+v, session moves %d", result, g.Session().MoveCount())
	}

	// Input other than Confirm/Restart is ignored once won.
	moves := g.Session().MoveCount()
	press(g, platformcore.ActionRotate)
	if g.Session().MoveCount() != moves {
		t.Error("rotations should be ignored after a win")
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "ACCESS GRANTED") || !strings.Contains(screen.String(), "1m 35s") {
		t.Errorf("win overlay missing:\n%s", screen.String())
	}
}

func TestGameConfirmAdvancesLevelAfterWin(t *testing.T) {
	g := newTestGame(t, "lvl01")
	solveByKeys(t, g)
	g.cursor = targetIndex(t, g)
	press(g, platformcore.ActionConfirm)
	firstRun := g.RunID()

	press(g, platformcore.ActionConfirm)
	if g.Level().ID != "lvl02" {
		t.Errorf("expected lvl02 after lvl01, got %q", g.Level().ID)
	}
	if g.State().GameOver {
		t.Error("new level should be in progress")
	}
	if g.RunID() == firstRun {
		t.Error("new level should get a new run id")
	}
}

func TestGameUnlockDenied(t *testing.T) {
	g := newTestGame(t, "lvl01")
	if g.Session().Ready() {
		// Seed happens to produce a solved grid; break it.
		g.cursor = indexOfTile(t, g, 2)
		press(g, platformcore.ActionRotate)
	}

	g.cursor = targetIndex(t, g)
	press(g, platformcore.ActionConfirm)

	if g.State().GameOver {
		t.Fatal("unlock should fail on a broken route")
	}
	if !strings.Contains(g.message, "ACCESS DENIED") {
		t.Errorf("message = %q", g.message)
	}
	if _, ok := g.Result(); ok {
		t.Error("no result expected")
	}
}

func TestGameFixedTileRejected(t *testing.T) {
	g := newTestGame(t, "lvl02")
	g.cursor = indexOfTile(t, g, 7) // fixed straight
	press(g, platformcore.ActionRotate)

	if g.Session().MoveCount() != 0 {
		t.Errorf("MoveCount = %d after rotating a fixed tile", g.Session().MoveCount())
	}
	if g.message != "NODE LOCKED" {
		t.Errorf("message = %q", g.message)
	}
}

func TestGameConfirmRotatesNonTarget(t *testing.T) {
	g := newTestGame(t, "lvl01")
	g.cursor = indexOfTile(t, g, 2)
	before, _ := g.Session().Snapshot().Lookup(2)

	press(g, platformcore.ActionConfirm)

	after, _ := g.Session().Snapshot().Lookup(2)
	if after.Rotation != (before.Rotation+1)%core.DirCount {
		t.Errorf("rotation %d -> %d", before.Rotation, after.Rotation)
	}
}

func TestGameHint(t *testing.T) {
	g := newTestGame(t, "lvl03")
	if g.Session().Ready() {
		t.Skip("seed produced a solved grid")
	}

	press(g, platformcore.ActionHint)
	if !g.hasHint {
		t.Fatal("hint should be set on an unsolved grid")
	}
	if g.selected().ID != g.hint {
		t.Errorf("cursor should jump to the hinted tile, at %d want %d", g.selected().ID, g.hint)
	}

	// Rotating the hinted tile clears the marker.
	press(g, platformcore.ActionRotate)
	if g.hasHint {
		t.Error("hint should clear after rotating the hinted tile")
	}
}

func TestGameCursorMovement(t *testing.T) {
	g := newTestGame(t, "")
	center := indexOfTile(t, g, 0)

	tests := []struct {
		name   string
		action platformcore.Action
		want   core.TileID
	}{
		{"right", platformcore.ActionRight, 3},
		{"left", platformcore.ActionLeft, 6},
		{"down", platformcore.ActionDown, 4},
		{"up", platformcore.ActionUp, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g.cursor = center
			press(g, tc.action)
			if got := g.selected().ID; got != tc.want {
				t.Errorf("moved to %d, expected %d", got, tc.want)
			}
		})
	}
}

func TestGameRestartRescrambles(t *testing.T) {
	g := newTestGame(t, "")
	run := g.RunID()
	g.cursor = indexOfTile(t, g, 1)
	press(g, platformcore.ActionRotate)

	press(g, platformcore.ActionRestart)
	if g.RunID() == run {
		t.Error("restart should start a new run")
	}
	if g.Session().MoveCount() != 0 {
		t.Error("restart should reset the move counter")
	}
}

func TestGameRestartBeforeReset(t *testing.T) {
	g := New()
	press(g, platformcore.ActionRestart)
	if g.Session() == nil {
		t.Fatal("restart should start a session")
	}
	if got := g.Session().MoveCount(); got != 0 {
		t.Errorf("MoveCount() = %d, expected 0", got)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, "lvl01")
	g.cursor = indexOfTile(t, g, 2)

	press(g, platformcore.ActionPause)
	press(g, platformcore.ActionRotate)
	if g.Session().MoveCount() != 0 {
		t.Error("rotations should be ignored while paused")
	}
	if !g.State().Paused {
		t.Error("state should report paused")
	}

	press(g, platformcore.ActionPause)
	press(g, platformcore.ActionRotate)
	if g.Session().MoveCount() != 1 {
		t.Error("rotation should apply after unpausing")
	}
}

type countingSink struct {
	rotates, unlocks int
}

func (c *countingSink) OnRotate(core.RotateEvent) { c.rotates++ }
func (c *countingSink) OnUnlock(core.UnlockEvent) { c.unlocks++ }

func TestGameEventSink(t *testing.T) {
	sink := &countingSink{}
	g := New()
	g.SetEventSink(sink)
	if err := g.SetLevel("lvl01"); err != nil {
		t.Fatal(err)
	}
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	solveByKeys(t, g)
	g.cursor = targetIndex(t, g)
	press(g, platformcore.ActionConfirm)

	if sink.rotates != g.Session().MoveCount() {
		t.Errorf("sink saw %d rotations, session has %d", sink.rotates, g.Session().MoveCount())
	}
	if sink.unlocks != 1 {
		t.Errorf("sink saw %d unlocks", sink.unlocks)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, "")
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"DATA ROUTING", "HOP_COUNT 0", "◎", "◉"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "NO CARRIER") && !strings.Contains(out, "LINK ESTABLISHED") {
		t.Error("render should show link status")
	}

	// The target sits at the center of the default grid.
	x, y := g.grid.cellPos(core.C(0, 0))
	if screen.Get(x, y) != '◎' {
		t.Errorf("expected target glyph at (%d,%d), got %q", x, y, screen.Get(x, y))
	}
}

func TestGameTooSmall(t *testing.T) {
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})
	if !g.tooSmall {
		t.Fatal("20x10 should be too small for the default grid")
	}

	screen := platformcore.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected size warning:\n%s", screen.String())
	}
}

func TestGameResizeKeepsRun(t *testing.T) {
	g := newTestGame(t, "")
	run := g.RunID()
	g.cursor = indexOfTile(t, g, 1)
	press(g, platformcore.ActionRotate)

	g.Resize(20, 10)
	if !g.tooSmall {
		t.Error("20x10 should be too small")
	}
	g.Resize(100, 30)
	if g.tooSmall {
		t.Error("100x30 should fit")
	}
	if g.RunID() != run || g.Session().MoveCount() != 1 {
		t.Error("resize should not restart the run")
	}
	if g.LevelID() != core.DefaultLayoutID {
		t.Errorf("LevelID() = %q", g.LevelID())
	}
}
