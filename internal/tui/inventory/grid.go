package inventory

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/esevim/stocktrack/internal/store"
)

// Grid columns, in header order. The timestamp column is synthetic and
// read-only; grid saves persist the loaded value untouched.
const (
	colSKU = iota
	colNotes
	colLevel
	colUpdatedBy
	colUpdatedOn
	colCount
)

var gridHeaders = []string{"SKU", "Notes", "Inventory Level", "Updated By", "Updated On"}

type gridRow struct {
	// origSKU keys the row back to the loaded record. Empty for rows added
	// in the grid.
	origSKU string
	orig    store.Record
	cells   [colCount]string
	deleted bool
}

func newGridRow(r store.Record) gridRow {
	return gridRow{
		origSKU: r.SKU,
		orig:    r,
		cells: [colCount]string{
			r.SKU,
			r.Notes,
			string(r.Level),
			r.UpdatedBy,
			r.DisplayTime(),
		},
	}
}

// GridModel renders the filtered records as an editable table. Cell edits,
// row additions, and row deletions are collected here and merged back into
// the full table on save.
type GridModel struct {
	rows    []gridRow
	row     int
	col     int
	editing bool
	input   textinput.Model
	width   int
}

func NewGridModel(records []store.Record) GridModel {
	rows := make([]gridRow, len(records))
	for i, r := range records {
		rows[i] = newGridRow(r)
	}

	t := textinput.New()
	t.CharLimit = 256
	t.Prompt = ""

	return GridModel{rows: rows, input: t}
}

func (g GridModel) Update(msg tea.Msg) (GridModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	if g.editing {
		switch keyMsg.Type {
		case tea.KeyEnter:
			g.rows[g.row].cells[g.col] = g.input.Value()
			g.editing = false
			g.input.Blur()
			return g, nil
		case tea.KeyEsc:
			g.editing = false
			g.input.Blur()
			return g, nil
		}

		var cmd tea.Cmd
		g.input, cmd = g.input.Update(msg)
		return g, cmd
	}

	switch keyMsg.String() {
	case "up", "k":
		if g.row > 0 {
			g.row--
		}
	case "down", "j":
		if g.row < len(g.rows)-1 {
			g.row++
		}
	case "left", "h":
		if g.col > 0 {
			g.col--
		}
	case "right", "l":
		if g.col < colCount-1 {
			g.col++
		}
	case "enter":
		return g.beginEdit()
	case "d":
		if len(g.rows) > 0 {
			g.rows[g.row].deleted = !g.rows[g.row].deleted
		}
	case "n":
		g.rows = append(g.rows, gridRow{})
		g.row = len(g.rows) - 1
		g.col = colSKU
	}

	return g, nil
}

func (g GridModel) beginEdit() (GridModel, tea.Cmd) {
	if len(g.rows) == 0 || g.rows[g.row].deleted {
		return g, nil
	}

	switch g.col {
	case colUpdatedOn:
		// Read-only column.
		return g, nil
	case colLevel:
		// Constrained to the enumeration; enter cycles instead of editing.
		g.rows[g.row].cells[colLevel] = nextLevel(g.rows[g.row].cells[colLevel])
		return g, nil
	}

	g.editing = true
	g.input.SetValue(g.rows[g.row].cells[g.col])
	g.input.Focus()
	return g, textinput.Blink
}

func nextLevel(current string) string {
	levels := store.Levels()
	for i, l := range levels {
		if string(l) == current {
			return string(levels[(i+1)%len(levels)])
		}
	}
	return string(levels[0])
}

// Dirty reports whether saving would change the table.
func (g GridModel) Dirty(full []store.Record) bool {
	merged, err := g.Merge(full)
	if err != nil {
		return true
	}
	return !recordsEqual(full, merged)
}

// Merge folds the grid edits back into the full, unfiltered record set.
// Rows hidden by an active filter pass through untouched; only rows that
// were visible in the grid can be modified or deleted. Timestamps are never
// refreshed on this path.
func (g GridModel) Merge(full []store.Record) ([]store.Record, error) {
	edited := make(map[string]gridRow, len(g.rows))
	for _, row := range g.rows {
		if row.origSKU != "" {
			edited[row.origSKU] = row
		}
	}

	merged := make([]store.Record, 0, len(full))
	for _, r := range full {
		row, visible := edited[r.SKU]
		if !visible {
			merged = append(merged, r)
			continue
		}
		if row.deleted {
			continue
		}
		merged = append(merged, row.toRecord())
	}

	for _, row := range g.rows {
		if row.origSKU != "" || row.deleted {
			continue
		}
		if strings.TrimSpace(row.cells[colSKU]) == "" {
			continue
		}
		merged = append(merged, row.toRecord())
	}

	seen := make(map[string]struct{}, len(merged))
	for _, r := range merged {
		if _, dup := seen[r.SKU]; dup {
			return nil, fmt.Errorf("%w: %q", store.ErrDuplicateSKU, r.SKU)
		}
		seen[r.SKU] = struct{}{}
	}

	return merged, nil
}

func (row gridRow) toRecord() store.Record {
	return store.Record{
		SKU:       strings.TrimSpace(row.cells[colSKU]),
		Notes:     row.cells[colNotes],
		Level:     store.Level(row.cells[colLevel]),
		UpdatedBy: row.cells[colUpdatedBy],
		UpdatedOn: row.orig.UpdatedOn,
	}
}

func recordsEqual(a, b []store.Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].SKU != b[i].SKU ||
			a[i].Notes != b[i].Notes ||
			a[i].Level != b[i].Level ||
			a[i].UpdatedBy != b[i].UpdatedBy ||
			!a[i].UpdatedOn.Equal(b[i].UpdatedOn) {
			return false
		}
	}
	return true
}

var (
	gridHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0AF"))
	gridCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCC"))
	gridCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).Background(lipgloss.Color("#0AF"))
	gridDeletedLine = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676")).Strikethrough(true)
)

var gridColWidths = [colCount]int{14, 34, 16, 16, 17}

func (g GridModel) View() string {
	var b strings.Builder

	header := make([]string, colCount)
	for i, h := range gridHeaders {
		header[i] = gridHeaderStyle.Width(gridColWidths[i]).Render(h)
	}
	b.WriteString(strings.Join(header, " "))
	b.WriteString("\n")

	for ri, row := range g.rows {
		cells := make([]string, colCount)
		for ci, cell := range row.cells {
			content := truncateCell(cell, gridColWidths[ci])

			if g.editing && ri == g.row && ci == g.col {
				content = g.input.View()
			}

			style := gridCellStyle
			switch {
			case row.deleted:
				style = gridDeletedLine
			case ri == g.row && ci == g.col:
				style = gridCursorStyle
			}
			cells[ci] = style.Width(gridColWidths[ci]).Render(content)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		"enter edit cell (level cycles) · d delete row · n new row · ctrl+s save · esc discard",
	))

	return b.String()
}

func truncateCell(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 1 {
		return s[:w]
	}
	return s[:w-1] + "…"
}
