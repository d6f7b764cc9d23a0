package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeName(m NameEntryModel, s string) NameEntryModel {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(NameEntryModel)
	}
	return m
}

func TestNameEntryRequiresName(t *testing.T) {
	m := NewNameEntryModel("", 80, 24)

	next, _ := m.Update(keyMsg("enter"))
	m = next.(NameEntryModel)
	if m.Done() {
		t.Fatal("empty designation must be rejected")
	}
	if !strings.Contains(m.View(), "DESIGNATION REQUIRED") {
		t.Error("rejection should be shown")
	}

	m = typeName(m, "   ")
	next, _ = m.Update(keyMsg("enter"))
	if next.(NameEntryModel).Done() {
		t.Error("blank designation must be rejected")
	}
}

func TestNameEntryAcceptsTrimmedName(t *testing.T) {
	m := typeName(NewNameEntryModel("", 80, 24), " cipher ")

	next, _ := m.Update(keyMsg("enter"))
	m = next.(NameEntryModel)
	if !m.Done() || m.Name() != "cipher" {
		t.Errorf("name = %q, done = %v", m.Name(), m.Done())
	}
}

func TestNameEntryPrefillsSuggestion(t *testing.T) {
	m := NewNameEntryModel("tank", 80, 24)
	next, _ := m.Update(keyMsg("enter"))
	if got := next.(NameEntryModel).Name(); got != "tank" {
		t.Errorf("name = %q, want suggestion", got)
	}
}

func TestNameEntryEscapeQuits(t *testing.T) {
	next, cmd := NewNameEntryModel("", 80, 24).Update(keyMsg("esc"))
	m := next.(NameEntryModel)
	if !m.IsQuitting() || cmd == nil {
		t.Error("esc should quit")
	}
	if m.View() != "" {
		t.Error("quitting prompt should render nothing")
	}
}

func TestNormalizeOperator(t *testing.T) {
	long := strings.Repeat("x", MaxOperatorName+5)
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"  neo ", "neo"},
		{long, long[:MaxOperatorName]},
		{strings.Repeat("ё", MaxOperatorName+1), strings.Repeat("ё", MaxOperatorName)},
	}
	for _, tt := range tests {
		if got := NormalizeOperator(tt.in); got != tt.want {
			t.Errorf("NormalizeOperator(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
