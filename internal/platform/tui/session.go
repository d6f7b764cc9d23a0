package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexroute/internal/core"
	"github.com/vovakirdan/hexroute/internal/events"
	"github.com/vovakirdan/hexroute/internal/games/hexlink"
	"github.com/vovakirdan/hexroute/internal/leaderboard"
	"github.com/vovakirdan/hexroute/internal/registry"
	"github.com/vovakirdan/hexroute/internal/storage"
)

// Services are the shared dependencies of every screen. Any of them may be
// nil; screens degrade to what is available.
type Services struct {
	Store    *storage.Store
	Client   *leaderboard.Client
	Recorder *Recorder
	Bus      *events.Bus
	LevelDir string
	Logger   *log.Logger
}

type sessionScreen int

const (
	screenName sessionScreen = iota
	screenMenu
	screenGame
	screenScores
)

// SessionModel manages the full flow: name entry -> menu -> game or
// leaderboard -> menu. It is the top-level model for SSH sessions and the
// interactive menu command.
type SessionModel struct {
	deps       Services
	config     core.RuntimeConfig
	operator   string
	screen     sessionScreen
	name       NameEntryModel
	menu       MenuModel
	gameModel  *GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session. An empty operator starts at name entry
// with suggestion prefilled; otherwise the menu opens directly.
func NewSessionModel(deps Services, cfg core.RuntimeConfig, operator, suggestion string) SessionModel {
	m := SessionModel{
		deps:     deps,
		config:   cfg,
		operator: NormalizeOperator(operator),
	}
	if m.operator == "" {
		m.screen = screenName
		m.name = NewNameEntryModel(suggestion, cfg.ScreenW, cfg.ScreenH)
	} else {
		m.screen = screenMenu
		m.menu = NewMenuModel(deps, m.operator, cfg)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenName {
		return m.name.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenName:
		return m.updateName(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateName(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.name.Update(msg)
	if nm, ok := next.(NameEntryModel); ok {
		m.name = nm
	}

	switch {
	case m.name.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.name.Done():
		m.operator = m.name.Name()
		return m.openMenu()
	}
	return m, cmd
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}
	m.config = m.menu.Config()

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scoreboard = NewScoreboardModel(m.deps, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(hexlink.GameID)
		if err != nil {
			return m, nil
		}
		if ls, ok := game.(registry.LevelSetter); ok {
			if err := ls.SetLevel(m.menu.Selected().LevelID); err != nil && m.deps.Logger != nil {
				m.deps.Logger.Warn("Cannot load level", "level", m.menu.Selected().LevelID, "error", err)
			}
		}

		gm := NewGameModel(game, m.deps, m.operator, m.config)
		m.gameModel = &gm
		m.screen = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.gameModel = &gm
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		return m.openMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sm
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.openMenu()
	}
	return m, cmd
}

// openMenu rebuilds the menu so best times are current.
func (m SessionModel) openMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.deps, m.operator, m.config)
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenName:
		return m.name.View()
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// Operator returns the designation chosen for this session.
func (m SessionModel) Operator() string {
	return m.operator
}

// RunSession runs the interactive flow in the local terminal.
func RunSession(deps Services, cfg core.RuntimeConfig, operator, suggestion string) error {
	p := tea.NewProgram(
		NewSessionModel(deps, cfg, operator, suggestion),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
