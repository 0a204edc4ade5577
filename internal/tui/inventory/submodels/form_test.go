package submodels

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/esevim/stocktrack/internal/config"
	"github.com/esevim/stocktrack/internal/state"
	"github.com/esevim/stocktrack/internal/store"
)

type stubEnhancer struct {
	result string
	err    error
}

func (s stubEnhancer) Enhance(ctx context.Context, text string) (string, error) {
	return s.result, s.err
}

func newTestState(t *testing.T) *state.State {
	t.Helper()

	st := store.NewStore(filepath.Join(t.TempDir(), "warehouse_inventory.csv"))
	if err := st.EnsureInitialized(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	return &state.State{
		Config: &config.Config{
			Editors:       []string{"Emir Sevim", "Enis Sevim"},
			DefaultEditor: "Enis Sevim",
		},
		Store: st,
	}
}

func testRecords() []store.Record {
	stamp := time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)
	return []store.Record{
		{SKU: "A1", Notes: "widgets", Level: store.LevelFull, UpdatedBy: "Emir Sevim", UpdatedOn: stamp},
		{SKU: "A2", Notes: "gadgets", Level: store.LevelLow, UpdatedBy: "Enis Sevim", UpdatedOn: stamp},
		{SKU: "B1", Notes: "gizmos", Level: store.LevelOut, UpdatedBy: "Emir Sevim", UpdatedOn: stamp},
	}
}

func runCmd(t *testing.T, cmd tea.Cmd) SaveResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	result, ok := msg.(SaveResultMsg)
	if !ok {
		t.Fatalf("expected SaveResultMsg, got %T", msg)
	}
	return result
}

func TestNewFormModelUsesDefaultEditor(t *testing.T) {
	s := newTestState(t)
	m := NewFormModel(s)

	if m.editors[m.editorIdx] != "Enis Sevim" {
		t.Fatalf("expected default editor preselected, got %q", m.editors[m.editorIdx])
	}
}

func TestSetUpdatePrefillsSelectedRecord(t *testing.T) {
	s := newTestState(t)
	m := NewFormModel(s)

	m.SetUpdate(testRecords(), "A2")

	if m.Kind() != SaveUpdate {
		t.Fatal("expected update mode")
	}
	if m.Inputs[skuField].Value() != "A2" {
		t.Fatalf("expected selected sku prefilled, got %q", m.Inputs[skuField].Value())
	}
	if m.Inputs[notesField].Value() != "gadgets" {
		t.Fatalf("expected notes prefilled, got %q", m.Inputs[notesField].Value())
	}
	if m.levels[m.levelIdx] != store.LevelLow {
		t.Fatalf("expected level prefilled, got %q", m.levels[m.levelIdx])
	}
	if m.editors[m.editorIdx] != "Enis Sevim" {
		t.Fatalf("expected editor prefilled, got %q", m.editors[m.editorIdx])
	}
}

func TestSetUpdateSelectorCyclesWholeTable(t *testing.T) {
	s := newTestState(t)
	m := NewFormModel(s)
	m.SetUpdate(testRecords(), "A1")
	m.focusField(skuField)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Inputs[skuField].Value() != "A2" {
		t.Fatalf("expected selector to advance to A2, got %q", m.Inputs[skuField].Value())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Inputs[skuField].Value() != "B1" {
		t.Fatalf("expected selector to wrap to B1, got %q", m.Inputs[skuField].Value())
	}
}

func TestSetAddClearsForm(t *testing.T) {
	s := newTestState(t)
	m := NewFormModel(s)
	m.SetUpdate(testRecords(), "A2")

	m.SetAdd()

	if m.Kind() != SaveAdd {
		t.Fatal("expected add mode")
	}
	if m.Inputs[skuField].Value() != "" || m.Inputs[notesField].Value() != "" {
		t.Fatal("expected cleared inputs")
	}
	if m.levels[m.levelIdx] != store.LevelFull {
		t.Fatalf("expected level reset, got %q", m.levels[m.levelIdx])
	}
}

func TestSubmitRequiresAllFields(t *testing.T) {
	s := newTestState(t)
	m := NewFormModel(s)
	m.SetAdd()

	result := runCmd(t, m.handleSubmit())
	if result.Err == nil {
		t.Fatal("expected validation error for empty form")
	}
}

func TestSubmitAddWritesRecord(t *testing.T) {
	s := newTestState(t)
	m := NewFormModel(s)
	m.SetAdd()
	m.Inputs[skuField].SetValue("ABC123")
	m.Inputs[notesField].SetValue("received low stock shipment")
	m.levelIdx = 1 // Low

	result := runCmd(t, m.handleSubmit())
	if result.Err != nil {
		t.Fatalf("expected save to succeed: %v", result.Err)
	}
	if result.Kind != SaveAdd || result.SKU != "ABC123" {
		t.Fatalf("unexpected result: %+v", result)
	}

	records, err := s.Store.LoadAll()
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if len(records) != 1 || records[0].Level != store.LevelLow {
		t.Fatalf("unexpected table after add: %+v", records)
	}
}

func TestSubmitAddRejectsInvalidSKU(t *testing.T) {
	s := newTestState(t)
	m := NewFormModel(s)
	m.SetAdd()
	m.Inputs[skuField].SetValue("not a sku!")
	m.Inputs[notesField].SetValue("notes")

	result := runCmd(t, m.handleSubmit())
	if result.Err == nil {
		t.Fatal("expected invalid sku to be rejected")
	}
}

func TestSubmitEnhancerFailureKeepsOriginalNotes(t *testing.T) {
	s := newTestState(t)
	s.Enhancer = stubEnhancer{err: errors.New("model unavailable")}

	m := NewFormModel(s)
	m.SetAdd()
	m.Inputs[skuField].SetValue("ABC123")
	m.Inputs[notesField].SetValue("recieved shipment")
	m.enhance = true

	result := runCmd(t, m.handleSubmit())
	if result.Err != nil {
		t.Fatalf("an enhancer failure must not block the save: %v", result.Err)
	}
	if result.Warning == "" {
		t.Fatal("expected a warning for the failed enhancement")
	}

	records, err := s.Store.LoadAll()
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if records[0].Notes != "recieved shipment" {
		t.Fatalf("expected original notes to be saved, got %q", records[0].Notes)
	}
}

func TestSubmitEnhancerSuccessSavesImprovedNotes(t *testing.T) {
	s := newTestState(t)
	s.Enhancer = stubEnhancer{result: "Received shipment."}

	m := NewFormModel(s)
	m.SetAdd()
	m.Inputs[skuField].SetValue("ABC123")
	m.Inputs[notesField].SetValue("recieved shipment")
	m.enhance = true

	result := runCmd(t, m.handleSubmit())
	if result.Err != nil {
		t.Fatalf("expected save to succeed: %v", result.Err)
	}
	if result.Warning != "" {
		t.Fatalf("unexpected warning: %q", result.Warning)
	}

	records, err := s.Store.LoadAll()
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if records[0].Notes != "Received shipment." {
		t.Fatalf("expected improved notes, got %q", records[0].Notes)
	}
}
