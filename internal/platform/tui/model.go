package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexroute/internal/core"
	"github.com/vovakirdan/hexroute/internal/events"
	hexcore "github.com/vovakirdan/hexroute/internal/games/hexlink/core"
	"github.com/vovakirdan/hexroute/internal/registry"
)

// sinkSetter is implemented by games that emit puzzle events.
type sinkSetter interface {
	SetEventSink(sink hexcore.EventSink)
}

// runIdentifier is implemented by games whose runs carry ids.
type runIdentifier interface {
	RunID() string
	LevelID() string
}

// recordedMsg reports the outcome of recording a finished run.
type recordedMsg struct {
	runID   string
	outcome Outcome
}

// GameModel runs one game with back-to-menu support.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	recorder   *Recorder
	operator   string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	recorded   string // Run id already handed to the recorder
	status     string
}

// NewGameModel creates a game model. Puzzle events are published on bus
// when both the game and bus support it.
func NewGameModel(game registry.Game, deps Services, operator string, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	if s, ok := game.(sinkSetter); ok && deps.Bus != nil {
		var run events.RunInfo = func() (string, string) { return "", "" }
		if ri, ok := game.(runIdentifier); ok {
			run = func() (string, string) { return ri.RunID(), ri.LevelID() }
		}
		s.SetEventSink(events.NewSessionSink(deps.Bus, run))
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   deps.Recorder,
		operator:   operator,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init resets the game and starts ticking.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	case recordedMsg:
		m.status = msg.outcome.Summary()
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if cmd := m.recordIfFinished(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// recordIfFinished hands each finished run to the recorder once.
func (m *GameModel) recordIfFinished() tea.Cmd {
	f, ok := m.game.(registry.Finisher)
	if !ok {
		return nil
	}
	res, done := f.Result()
	if !done || res.RunID == m.recorded {
		return nil
	}
	m.recorded = res.RunID
	if m.recorder == nil {
		return nil
	}

	m.status = "TRANSMITTING BREACH LOG..."
	rec, operator := m.recorder, m.operator
	return func() tea.Msg {
		return recordedMsg{runID: res.RunID, outcome: rec.Record(context.Background(), operator, res)}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".hexroute", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && m.gameState.GameOver && m.screen.Height() > 0 {
		m.screen.DrawTextCenteredWithColor(m.screen.Height()-3, m.status, core.ColorYellow)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Status returns the last recording status line.
func (m GameModel) Status() string {
	return m.status
}

// playModel runs a single game; Back exits instead of returning to a menu.
type playModel struct {
	GameModel
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.GameModel.Update(msg)
	m.GameModel = next.(GameModel)
	if m.BackToMenu() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// Run starts a Bubble Tea program playing game until the user quits.
func Run(game registry.Game, deps Services, operator string, cfg core.RuntimeConfig) error {
	model := playModel{NewGameModel(game, deps, operator, cfg)}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
