// Package inventory is the interactive surface of the tracker: a record
// list with a detail preview, the update/add forms, the search palette, and
// the editable grid. Every interaction reloads the table from disk.
package inventory

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/esevim/stocktrack/internal/filter"
	"github.com/esevim/stocktrack/internal/state"
	"github.com/esevim/stocktrack/internal/store"
	"github.com/esevim/stocktrack/internal/tui/inventory/submodels"
	"github.com/esevim/stocktrack/utils"
)

type RecordListModel struct {
	list         list.Model
	keys         *listKeyMap
	delegateKeys *delegateKeyMap
	state        *state.State
	records      []store.Record
	formModel    submodels.FormModel
	filterModel  *submodels.FilterModel
	grid         GridModel
	preview      string
	width        int
	height       int
	updating     bool
	adding       bool
	editing      bool
	filtering    bool
	loadErr      error
}

func NewRecordListModel(s *state.State, seed filter.Criteria) (*RecordListModel, error) {
	if err := s.Store.EnsureInitialized(); err != nil {
		return nil, err
	}

	records, err := s.Store.LoadAll()
	if err != nil {
		return nil, err
	}

	dkeys := newDelegateKeyMap()
	lkeys := newListKeyMap()
	delegate := newItemDelegate(dkeys)

	fm := submodels.NewFilterModel()
	fm.SetCriteria(seed)

	l := list.New(recordsToItems(filter.Apply(records, seed)), delegate, 0, 0)
	l.Title = "📦 Warehouse Inventory"
	l.Styles.Title = titleStyle
	l.SetFilteringEnabled(false)

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			lkeys.update,
			lkeys.add,
			lkeys.editGrid,
			lkeys.openFilters,
		}
	}
	l.AdditionalFullHelpKeys = lkeys.fullHelp

	m := &RecordListModel{
		state:        s,
		list:         l,
		keys:         lkeys,
		delegateKeys: dkeys,
		records:      records,
		formModel:    submodels.NewFormModel(s),
		filterModel:  fm,
	}
	m.handlePreview()

	return m, nil
}

func (m RecordListModel) Init() tea.Cmd {
	return nil
}

func (m RecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var retCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

	case submodels.SaveResultMsg:
		return m.handleSaveResult(msg)

	case submodels.FilterClosedMsg:
		m.filtering = false
		cmd := m.applyFilters()
		return m, cmd

	case tea.KeyMsg:
		switch {
		case m.updating || m.adding:
			return m.handleFormUpdate(msg)
		case m.editing:
			return m.handleGridUpdate(msg)
		case m.filtering:
			return m.handleFilterUpdate(msg)
		default:
			_, retCmd = m.handleDefaultUpdate(msg)
		}
	}

	nl, cmd := m.list.Update(msg)
	m.list = nl
	cmds = append(cmds, cmd, retCmd)

	m.handlePreview()
	return m, tea.Batch(cmds...)
}

func (m RecordListModel) handleFormUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.exitAltView) {
		m.updating = false
		m.adding = false
		return m, nil
	}

	var cmd tea.Cmd
	m.formModel, cmd = m.formModel.Update(msg)
	return m, cmd
}

func (m RecordListModel) handleSaveResult(msg submodels.SaveResultMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg.Warning != "" {
		cmds = append(cmds, m.list.NewStatusMessage(warningStyle(msg.Warning)))
	}

	if msg.Err != nil {
		// Validation or write failure: stay on the form, nothing saved.
		cmds = append(cmds, m.list.NewStatusMessage(statusStyle(fmt.Sprintf("❌ %v", msg.Err))))
		return m, tea.Batch(cmds...)
	}

	verb := "updated"
	if msg.Kind == submodels.SaveAdd {
		verb = "added"
	}

	m.updating = false
	m.adding = false
	cmds = append(cmds, m.list.NewStatusMessage(
		statusStyle(fmt.Sprintf("✅ SKU '%s' %s successfully!", msg.SKU, verb)),
	))
	cmds = append(cmds, m.refresh())

	return m, tea.Batch(cmds...)
}

func (m RecordListModel) handleGridUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.exitAltView):
		if m.grid.editing {
			break // esc cancels the cell edit first
		}
		m.editing = false
		return m, nil

	case key.Matches(msg, m.keys.saveGrid):
		return m.saveGrid()
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m RecordListModel) saveGrid() (tea.Model, tea.Cmd) {
	merged, err := m.grid.Merge(m.records)
	if err != nil {
		return m, m.list.NewStatusMessage(statusStyle(fmt.Sprintf("❌ %v", err)))
	}

	if recordsEqual(m.records, merged) {
		m.editing = false
		return m, nil
	}

	if err := m.state.Store.ReplaceAll(merged); err != nil {
		return m, m.list.NewStatusMessage(statusStyle(fmt.Sprintf("❌ %v", err)))
	}

	m.editing = false
	cmd := m.refresh()
	return m, tea.Batch(
		m.list.NewStatusMessage(statusStyle("✅ Inventory table saved")),
		cmd,
	)
}

func (m RecordListModel) handleFilterUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.filterModel.Update(msg)
	return m, cmd
}

func (m *RecordListModel) handleDefaultUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.update):
		if len(m.records) == 0 {
			return m, m.list.NewStatusMessage(statusStyle("No records to update"))
		}
		selected := ""
		if i, ok := m.list.SelectedItem().(ListItem); ok {
			selected = i.record.SKU
		}
		// Selection always spans the unfiltered table.
		m.formModel.SetUpdate(m.records, selected)
		m.updating = true
		return m, nil

	case key.Matches(msg, m.keys.add):
		m.formModel.SetAdd()
		m.adding = true
		return m, nil

	case key.Matches(msg, m.keys.editGrid):
		m.grid = NewGridModel(m.visibleRecords())
		m.editing = true
		return m, nil

	case key.Matches(msg, m.keys.openFilters):
		m.filtering = true
		return m, nil

	case key.Matches(msg, m.keys.clearFilters):
		m.filterModel.Clear()
		return m, m.applyFilters()

	case key.Matches(msg, m.keys.refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.toggleTitleBar):
		m.list.SetShowTitle(!m.list.ShowTitle())
		return m, nil

	case key.Matches(msg, m.keys.toggleStatusBar):
		m.list.SetShowStatusBar(!m.list.ShowStatusBar())
		return m, nil

	case key.Matches(msg, m.keys.togglePagination):
		m.list.SetShowPagination(!m.list.ShowPagination())
		return m, nil

	case key.Matches(msg, m.keys.toggleHelpMenu):
		m.list.SetShowHelp(!m.list.ShowHelp())
		return m, nil
	}

	return m, nil
}

func (m RecordListModel) View() string {
	if m.editing {
		gridView := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Padding(0, 1).
			Render(fmt.Sprintf("%s\n\n%s", titleStyle.Render("📋 Inventory Overview"), m.grid.View()))
		return appStyle.Render(gridView)
	}

	if m.updating || m.adding {
		modelStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).Padding(0, 1)
		return appStyle.Render(modelStyle.Render(m.formModel.View()))
	}

	listView := listStyle.Width(m.width / 2).Render(m.list.View())

	if m.filtering {
		palette := filterPaletteStyle.Render(
			lipgloss.NewStyle().
				Height(m.list.Height()).
				MaxHeight(m.list.Height()).
				Padding(0, 2).
				Render(m.filterModel.View()),
		)

		layout := lipgloss.JoinHorizontal(lipgloss.Top, listView, palette)
		return appStyle.Render(layout)
	}

	preview := previewStyle.Render(
		lipgloss.NewStyle().
			Height(m.list.Height()).
			MaxHeight(m.list.Height()).
			MaxWidth(800).
			Render(fmt.Sprintf("%s\n%s", titleStyle.Render("📝 Details"), m.preview)),
	)

	layout := lipgloss.JoinHorizontal(lipgloss.Top, listView, preview)
	return appStyle.Render(layout)
}

func Run(s *state.State, seed filter.Criteria) error {
	m, err := NewRecordListModel(s, seed)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen()).Run()
	if err != nil {
		if strings.Contains(err.Error(), "resource temporarily unavailable") {
			os.Exit(0)
		} else {
			log.Fatalf("Error running program: %v", err)
		}
	}

	switch fm := final.(type) {
	case RecordListModel:
		return fm.loadErr
	case *RecordListModel:
		return fm.loadErr
	}

	return nil
}

func (m *RecordListModel) handlePreview() {
	if i, ok := m.list.SelectedItem().(ListItem); ok {
		w := m.width / 2
		m.preview = utils.RenderRecordPreview(i.record, w)
	} else {
		m.preview = ""
	}
}

// refresh re-reads the table from disk and reapplies the active filters. A
// read failure is fatal for the render; the UI quits with the error rather
// than presenting an empty table.
func (m *RecordListModel) refresh() tea.Cmd {
	records, err := m.state.Store.LoadAll()
	if err != nil {
		var storageErr *store.StorageError
		if errors.As(err, &storageErr) {
			m.loadErr = storageErr
		} else {
			m.loadErr = err
		}
		return tea.Quit
	}

	m.records = records
	cmd := m.applyFilters()
	m.handlePreview()
	return cmd
}

func (m *RecordListModel) applyFilters() tea.Cmd {
	cmd := m.list.SetItems(recordsToItems(m.visibleRecords()))
	m.list.ResetSelected()
	return cmd
}

func (m *RecordListModel) visibleRecords() []store.Record {
	return filter.Apply(m.records, m.filterModel.Criteria())
}
