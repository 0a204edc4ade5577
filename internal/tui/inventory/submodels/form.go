package submodels

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/esevim/stocktrack/internal/enhance"
	"github.com/esevim/stocktrack/internal/state"
	"github.com/esevim/stocktrack/internal/store"
	"github.com/esevim/stocktrack/utils"
)

const (
	skuField = iota
	notesField
	levelField
	editorField
)

const (
	hotPink  = lipgloss.Color("#0AF")
	darkGray = lipgloss.Color("#767676")
)

var (
	formInputStyle = lipgloss.NewStyle().Foreground(hotPink)
	formTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Background(lipgloss.Color("transparent")).
			Padding(1, 0)

	continueStyle = lipgloss.NewStyle().Foreground(darkGray)
)

// SaveKind distinguishes the two form paths. Adds reject existing SKUs;
// updates require one.
type SaveKind int

const (
	SaveUpdate SaveKind = iota
	SaveAdd
)

// SaveResultMsg reports a submit attempt back to the parent model. Err nil
// means the write happened; Warning carries a non-fatal enhancer failure.
type SaveResultMsg struct {
	SKU     string
	Kind    SaveKind
	Err     error
	Warning string
}

type FormModel struct {
	state     *state.State
	kind      SaveKind
	Inputs    []textinput.Model
	choices   []store.Record
	choiceIdx int
	levels    []store.Level
	levelIdx  int
	editors   []string
	editorIdx int
	enhance   bool
	Focused   int
	btn       SubmitButton
}

func NewFormModel(s *state.State) FormModel {
	inputs := make([]textinput.Model, 2)
	inputs[skuField] = textinput.New()
	inputs[skuField].Placeholder = "SKU Code"
	inputs[skuField].CharLimit = 32
	inputs[skuField].Width = 50
	inputs[skuField].Prompt = ""

	inputs[notesField] = textinput.New()
	inputs[notesField].Placeholder = "Notes"
	inputs[notesField].CharLimit = 256
	inputs[notesField].Width = 50
	inputs[notesField].Prompt = ""

	editors := append([]string(nil), s.Config.Editors...)

	m := FormModel{
		state:   s,
		Inputs:  inputs,
		levels:  store.Levels(),
		editors: editors,
		btn:     NewSubmitButton(),
	}

	if s.Config.DefaultEditor != "" {
		for i, name := range editors {
			if name == s.Config.DefaultEditor {
				m.editorIdx = i
				break
			}
		}
	}

	return m
}

// SetAdd prepares the form for a brand new SKU.
func (m *FormModel) SetAdd() {
	m.kind = SaveAdd
	m.choices = nil
	m.Inputs[skuField].SetValue("")
	m.Inputs[notesField].SetValue("")
	m.levelIdx = 0
	m.enhance = false
	m.focusField(skuField)
}

// SetUpdate turns the SKU field into a selector over the full, unfiltered
// table. Active display filters never narrow what can be picked here.
func (m *FormModel) SetUpdate(records []store.Record, selectedSKU string) {
	m.kind = SaveUpdate
	m.choices = records
	m.choiceIdx = 0
	for i, r := range records {
		if r.SKU == selectedSKU {
			m.choiceIdx = i
			break
		}
	}

	m.enhance = false
	m.prefill()
	m.focusField(notesField)
}

// prefill loads the chosen record's current values into the form.
func (m *FormModel) prefill() {
	if len(m.choices) == 0 {
		return
	}
	r := m.choices[m.choiceIdx]

	m.Inputs[skuField].SetValue(r.SKU)
	m.Inputs[notesField].SetValue(r.Notes)

	m.levelIdx = 0
	for i, l := range m.levels {
		if l == r.Level {
			m.levelIdx = i
			break
		}
	}

	for i, name := range m.editors {
		if name == r.UpdatedBy {
			m.editorIdx = i
			break
		}
	}
}

func (m FormModel) Kind() SaveKind {
	return m.kind
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.btn.Focused() {
				return m, m.handleSubmit()
			}
			m.nextInput()
		case tea.KeyShiftTab, tea.KeyCtrlP:
			m.prevInput()
		case tea.KeyTab, tea.KeyCtrlN:
			m.nextInput()
		case tea.KeyLeft:
			if m.kind == SaveUpdate && m.Focused == skuField && len(m.choices) > 0 {
				m.choiceIdx = (m.choiceIdx + len(m.choices) - 1) % len(m.choices)
				m.prefill()
				return m, nil
			}
			if m.Focused == levelField {
				m.levelIdx = (m.levelIdx + len(m.levels) - 1) % len(m.levels)
				return m, nil
			}
			if m.Focused == editorField && len(m.editors) > 0 {
				m.editorIdx = (m.editorIdx + len(m.editors) - 1) % len(m.editors)
				return m, nil
			}
		case tea.KeyRight:
			if m.kind == SaveUpdate && m.Focused == skuField && len(m.choices) > 0 {
				m.choiceIdx = (m.choiceIdx + 1) % len(m.choices)
				m.prefill()
				return m, nil
			}
			if m.Focused == levelField {
				m.levelIdx = (m.levelIdx + 1) % len(m.levels)
				return m, nil
			}
			if m.Focused == editorField && len(m.editors) > 0 {
				m.editorIdx = (m.editorIdx + 1) % len(m.editors)
				return m, nil
			}
		case tea.KeyCtrlE:
			m.enhance = !m.enhance
			return m, nil
		}

		m.syncFocus()
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}

	return m, tea.Batch(cmds...)
}

const fieldCount = 4 // sku, notes, level, editor; fieldCount itself is the button

func (m *FormModel) nextInput() {
	m.Focused++
	if m.Focused > fieldCount {
		m.Focused = skuField
	}
	m.syncFocus()
}

func (m *FormModel) prevInput() {
	m.Focused--
	if m.Focused < skuField {
		m.Focused = fieldCount
	}
	m.syncFocus()
}

func (m *FormModel) focusField(i int) {
	m.Focused = i
	m.syncFocus()
}

func (m *FormModel) syncFocus() {
	for i := range m.Inputs {
		m.Inputs[i].Blur()
	}
	m.btn.Blur()

	switch {
	case m.Focused == skuField && m.kind == SaveUpdate:
		// The SKU field acts as a selector in update mode; no text entry.
	case m.Focused < len(m.Inputs):
		m.Inputs[m.Focused].Focus()
	case m.Focused == fieldCount:
		m.btn.Focus()
	}
}

func (m FormModel) View() string {
	var btnView string
	if m.btn.Focused() {
		btnView = formInputStyle.Render(m.btn.View())
	} else {
		btnView = continueStyle.Render(m.btn.View())
	}

	title := "Update Entry"
	skuLabel := "SKU to Update (←/→)"
	skuView := "‹ " + m.Inputs[skuField].Value() + " ›"
	if m.Focused == skuField {
		skuView = formInputStyle.Render(skuView)
	}
	if len(m.choices) == 0 && m.kind == SaveUpdate {
		skuView = continueStyle.Render("no records to update")
	}
	if m.kind == SaveAdd {
		title = "Add New Entry"
		skuLabel = "New SKU Code"
		skuView = m.Inputs[skuField].View()
	}

	enhanceBox := "[ ] Enhance notes with AI before submitting (ctrl+e)"
	if m.enhance {
		enhanceBox = "[x] Enhance notes with AI before submitting (ctrl+e)"
	}
	if m.state.Enhancer == nil {
		enhanceBox = continueStyle.Render("note enhancement is disabled")
	}

	return fmt.Sprintf(
		`
%s

%s
%s

%s
%s

%s
%s

%s
%s

%s

%s
`,
		formTitleStyle.Render(title),
		formInputStyle.Width(50).Render(skuLabel),
		skuView,
		formInputStyle.Width(50).Render("Notes"),
		m.Inputs[notesField].View(),
		formInputStyle.Width(50).Render("Inventory Level (←/→)"),
		m.selectorView(levelNames(m.levels), m.levelIdx, m.Focused == levelField),
		formInputStyle.Width(50).Render("Your Name (←/→)"),
		m.selectorView(m.editors, m.editorIdx, m.Focused == editorField),
		enhanceBox,
		btnView,
	) + "\n"
}

func (m FormModel) selectorView(options []string, idx int, focused bool) string {
	parts := make([]string, len(options))
	for i, opt := range options {
		if i == idx {
			if focused {
				parts[i] = formInputStyle.Render("[" + opt + "]")
			} else {
				parts[i] = "[" + opt + "]"
			}
		} else {
			parts[i] = continueStyle.Render(opt)
		}
	}
	return strings.Join(parts, "  ")
}

func levelNames(levels []store.Level) []string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = string(l)
	}
	return names
}

// handleSubmit validates, optionally enhances, and writes through the store.
// The result is reported to the parent as a SaveResultMsg; the parent
// reloads on success and leaves the form open on failure.
func (m FormModel) handleSubmit() tea.Cmd {
	kind := m.kind
	sku := strings.TrimSpace(m.Inputs[skuField].Value())
	notes := strings.TrimSpace(m.Inputs[notesField].Value())
	level := m.levels[m.levelIdx]

	var editor string
	if len(m.editors) > 0 {
		editor = m.editors[m.editorIdx]
	}

	result := func(err error, warning string) tea.Cmd {
		return func() tea.Msg {
			return SaveResultMsg{SKU: sku, Kind: kind, Err: err, Warning: warning}
		}
	}

	if sku == "" || notes == "" || editor == "" {
		return result(fmt.Errorf("please fill in all fields"), "")
	}

	if kind == SaveAdd {
		validated, err := utils.ValidateSKU(sku)
		if err != nil {
			return result(err, "")
		}
		sku = validated
	}

	var warning string
	if m.enhance {
		improved, err := enhance.EnhanceOrOriginal(context.Background(), m.state.Enhancer, notes)
		if err != nil {
			warning = fmt.Sprintf("Error enhancing notes: %v", err)
		}
		notes = improved
	}

	var err error
	switch kind {
	case SaveAdd:
		err = m.state.Store.Add(sku, notes, editor, level)
	default:
		err = m.state.Store.Upsert(sku, notes, editor, level)
	}

	return result(err, warning)
}
