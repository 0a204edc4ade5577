package submodels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/esevim/stocktrack/internal/filter"
)

// FilterClosedMsg tells the parent the palette was dismissed.
type FilterClosedMsg struct{}

const (
	globalFilter = iota
	skuFilter
	notesFilter
	updatedByFilter
	filterCount
)

var (
	filterTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0AF"))
	filterLabelStyle = lipgloss.NewStyle().Foreground(hotPink)
	filterHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94e2d5"))
)

// FilterModel is the search palette: one global query plus per-field
// queries, all substring and case-insensitive.
type FilterModel struct {
	inputs  []textinput.Model
	focused int
}

func NewFilterModel() *FilterModel {
	inputs := make([]textinput.Model, filterCount)
	placeholders := []string{
		"Global Search",
		"Filter by SKU",
		"Filter by Notes",
		"Filter by Updated By",
	}

	for i := range inputs {
		t := textinput.New()
		t.Placeholder = placeholders[i]
		t.CharLimit = 64
		t.Width = 40
		t.Prompt = ""
		inputs[i] = t
	}
	inputs[globalFilter].Focus()

	return &FilterModel{inputs: inputs}
}

// Criteria returns the currently entered filters.
func (m *FilterModel) Criteria() filter.Criteria {
	return filter.Criteria{
		Global:    m.inputs[globalFilter].Value(),
		SKU:       m.inputs[skuFilter].Value(),
		Notes:     m.inputs[notesFilter].Value(),
		UpdatedBy: m.inputs[updatedByFilter].Value(),
	}
}

// SetCriteria seeds the palette, used by the records command flags.
func (m *FilterModel) SetCriteria(c filter.Criteria) {
	m.inputs[globalFilter].SetValue(c.Global)
	m.inputs[skuFilter].SetValue(c.SKU)
	m.inputs[notesFilter].SetValue(c.Notes)
	m.inputs[updatedByFilter].SetValue(c.UpdatedBy)
}

// Clear resets every filter input.
func (m *FilterModel) Clear() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
}

func (m *FilterModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			return func() tea.Msg { return FilterClosedMsg{} }
		case tea.KeyTab, tea.KeyDown:
			m.focusInput((m.focused + 1) % filterCount)
			return nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.focusInput((m.focused + filterCount - 1) % filterCount)
			return nil
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m *FilterModel) focusInput(i int) {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[m.focused].Focus()
}

func (m *FilterModel) View() string {
	labels := []string{"Global", "SKU", "Notes", "Updated By"}

	view := filterTitleStyle.Render("Search & Filters") + "\n"
	for i, input := range m.inputs {
		view += fmt.Sprintf("\n%s\n%s\n", filterLabelStyle.Render(labels[i]), input.View())
	}
	view += "\n" + filterHelpStyle.Render("tab/shift+tab to move, enter/esc to close")

	return view
}
