package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hexroute/internal/core"
	"github.com/vovakirdan/hexroute/internal/games/hexlink/levels"
	"github.com/vovakirdan/hexroute/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the view list sidebar
	sidebarWidth       = 22  // Width of the view list sidebar
	maxRows            = 100 // Max rows to load
	globalView         = ""  // View key of the breach leaderboard
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Refresh  key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextView key.Binding
	PrevView key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev view"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next view"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreView is one page of the scoreboard: the breach leaderboard or the
// local runs of a single level.
type scoreView struct {
	key   string
	title string
}

// ScoreboardModel is the Bubble Tea model for the leaderboard screen.
type ScoreboardModel struct {
	deps        Services
	views       []scoreView
	viewCursor  int
	rows        []table.Row
	stats       string
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show the view list sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(deps Services, width, height int) ScoreboardModel {
	views := []scoreView{{key: globalView, title: "Breach leaderboard"}}
	if all, err := levels.All(deps.LevelDir); err == nil {
		for _, lvl := range all {
			title := lvl.Name
			if title == "" {
				title = lvl.ID
			}
			views = append(views, scoreView{key: lvl.ID, title: title})
		}
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		deps:        deps,
		views:       views,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) current() scoreView {
	return m.views[m.viewCursor]
}

// createTable creates a new table with columns for the current view.
func (m *ScoreboardModel) createTable() table.Model {
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	var columns []table.Column
	if m.current().key == globalView {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Operator", Width: 18},
			{Title: "Time", Width: 10},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Operator", Width: 14},
			{Title: "Time", Width: 10},
			{Title: "Hops", Width: 6},
			{Title: "Date", Width: 14},
		}
	}
	if extra := tableWidth - columnsWidth(columns); extra > 0 {
		columns[1].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, stats, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func columnsWidth(cols []table.Column) int {
	w := 0
	for _, c := range cols {
		w += c.Width + 2
	}
	return w
}

// load fetches rows for the current view. The breach leaderboard comes from
// the remote server when configured, otherwise from the local store.
func (m *ScoreboardModel) load() {
	m.rows, m.stats, m.loadErr = nil, "", nil

	if m.current().key == globalView {
		m.rows, m.stats, m.loadErr = m.loadLeaderboard()
	} else {
		m.rows, m.stats, m.loadErr = m.loadRuns(m.current().key)
	}
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) loadLeaderboard() ([]table.Row, string, error) {
	if c := m.deps.Client; c != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		top, err := c.Top(ctx)
		if err != nil {
			return nil, "", err
		}
		rows := make([]table.Row, len(top))
		for i, r := range top {
			rows[i] = table.Row{fmt.Sprintf("#%d", r.Rank), r.OperatorName, r.TimeCompleted}
		}

		stats := ""
		if st, err := c.Stats(ctx); err == nil {
			stats = formatStats(st.TotalOperatives, st.FastestBreach)
		}
		return rows, stats, nil
	}

	if m.deps.Store == nil {
		return nil, "", nil
	}
	entries, err := m.deps.Store.TopEntries(maxRows)
	if err != nil {
		return nil, "", err
	}
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{fmt.Sprintf("#%d", e.Rank), e.OperatorName, e.TimeCompleted}
	}

	stats := ""
	if st, err := m.deps.Store.Stats(); err == nil {
		var fastest *string
		if st.FastestBreach != "" {
			fastest = &st.FastestBreach
		}
		stats = formatStats(st.TotalOperatives, fastest)
	}
	return rows, stats, nil
}

func (m *ScoreboardModel) loadRuns(levelID string) ([]table.Row, string, error) {
	if m.deps.Store == nil {
		return nil, "", nil
	}
	runs, err := m.deps.Store.RecentRuns(levelID, maxRows)
	if err != nil {
		return nil, "", err
	}
	sortRuns(runs)

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.OperatorName,
			core.FormatDuration(r.ElapsedSeconds),
			fmt.Sprintf("%d", r.Moves),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows, fmt.Sprintf("%d runs recorded", len(runs)), nil
}

// sortRuns orders runs fastest first, fewer hops breaking ties.
func sortRuns(runs []storage.PuzzleRun) {
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].ElapsedSeconds != runs[j].ElapsedSeconds {
			return runs[i].ElapsedSeconds < runs[j].ElapsedSeconds
		}
		return runs[i].Moves < runs[j].Moves
	})
}

func formatStats(total int, fastest *string) string {
	best := "--"
	if fastest != nil {
		best = *fastest
	}
	return fmt.Sprintf("OPERATIVES %d  |  FASTEST BREACH %s", total, best)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.NextView), key.Matches(msg, m.keys.Right):
			m.viewCursor = (m.viewCursor + 1) % len(m.views)
			m.table = m.createTable()
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView), key.Matches(msg, m.keys.Left):
			m.viewCursor--
			if m.viewCursor < 0 {
				m.viewCursor = len(m.views) - 1
			}
			m.table = m.createTable()
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := strings.ToUpper(m.current().title)
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	if m.stats != "" {
		b.WriteString(centerText(dimStyle.Render(m.stats), m.width))
	}
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with a sidebar listing the views.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := frameStyle.Width(sidebarWidth)

	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range m.views {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.viewCursor {
			cursor = "> "
			style = focusStyle
		}

		name := v.title
		maxLen := sidebarWidth - 6
		if r := []rune(name); len(r) > maxLen {
			name = string(r[:maxLen-1]) + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		frameStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the current view name above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder
	b.WriteString(centerText(fmt.Sprintf("< %s >", m.current().title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(frameStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or an empty/error message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := dimStyle.Italic(true).Padding(2, 4)
	if m.loadErr != nil {
		return emptyStyle.Render("Leaderboard unreachable.\n" + m.loadErr.Error())
	}
	if len(m.rows) == 0 {
		return emptyStyle.Render("No breaches recorded yet.\nRoute the signal to make history!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(deps Services, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(deps, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
