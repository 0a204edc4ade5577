package inventory

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/esevim/stocktrack/internal/store"
)

type ListItem struct {
	record store.Record
}

func (i ListItem) Title() string {
	return i.record.SKU
}

func (i ListItem) Description() string {
	level := renderLevel(i.record.Level.Color(), string(i.record.Level))

	updated := i.record.DisplayTime()
	if updated == "" {
		updated = "never"
	}

	description := fmt.Sprintf("%s · %s · %s", level, i.record.UpdatedBy, updated)

	if notes := strings.TrimSpace(i.record.Notes); notes != "" {
		description += "\n" + notes
	}

	return description
}

func (i ListItem) FilterValue() string {
	return strings.Join(i.record.Fields(), " ")
}

func (i ListItem) Record() store.Record {
	return i.record
}

func recordsToItems(records []store.Record) []list.Item {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = ListItem{record: r}
	}
	return items
}
