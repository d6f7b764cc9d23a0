package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MaxOperatorName is the longest accepted operator designation.
const MaxOperatorName = 24

// NameEntryModel asks the player for an operator designation.
type NameEntryModel struct {
	input    textinput.Model
	width    int
	height   int
	name     string
	invalid  bool
	quitting bool
}

// NewNameEntryModel creates the prompt, prefilled with suggestion.
func NewNameEntryModel(suggestion string, width, height int) NameEntryModel {
	ti := textinput.New()
	ti.Placeholder = "NAME..."
	ti.Prompt = "> "
	ti.CharLimit = MaxOperatorName
	ti.Width = MaxOperatorName + 1
	ti.SetValue(NormalizeOperator(suggestion))
	ti.Focus()

	return NameEntryModel{input: ti, width: width, height: height}
}

// NormalizeOperator trims and truncates a name. The result may be empty.
func NormalizeOperator(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxOperatorName {
		name = string(r[:MaxOperatorName])
	}
	return name
}

// Init starts the cursor blinking.
func (m NameEntryModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input for the prompt.
func (m NameEntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			name := NormalizeOperator(m.input.Value())
			if name == "" {
				m.invalid = true
				return m, nil
			}
			m.name = name
			return m, tea.Quit
		}
		m.invalid = false

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m NameEntryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centerText(titleStyle.Render("IDENTIFY YOURSELF"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Enter operator designation"), m.width))
	b.WriteString("\n\n")

	box := frameStyle
	if m.invalid {
		box = box.BorderForeground(errorStyle.GetForeground())
	}
	b.WriteString(centerText(box.Render(m.input.View()), m.width))
	b.WriteString("\n\n")

	if m.invalid {
		b.WriteString(centerText(errorStyle.Render("DESIGNATION REQUIRED"), m.width))
	} else {
		b.WriteString(centerText(dimStyle.Render("Enter: confirm  |  Esc: quit"), m.width))
	}
	b.WriteString("\n")
	return b.String()
}

// Name returns the accepted designation, empty until confirmed.
func (m NameEntryModel) Name() string {
	return m.name
}

// Done reports whether a designation was accepted.
func (m NameEntryModel) Done() bool {
	return m.name != ""
}

// IsQuitting returns true if user requested to quit.
func (m NameEntryModel) IsQuitting() bool {
	return m.quitting
}

// RunNameEntry prompts in the local terminal. The returned name is empty
// if the user quit.
func RunNameEntry(suggestion string, width, height int) (string, error) {
	p := tea.NewProgram(
		NewNameEntryModel(suggestion, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := finalModel.(NameEntryModel)
	if !ok || m.IsQuitting() {
		return "", nil
	}
	return m.Name(), nil
}
