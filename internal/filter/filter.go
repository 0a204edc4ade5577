// Package filter holds the pure predicates applied to the loaded inventory
// table before display. Filters never touch storage.
package filter

import (
	"strings"

	"github.com/esevim/stocktrack/internal/store"
)

// Field names accepted by ByField.
const (
	FieldSKU       = "sku"
	FieldNotes     = "notes"
	FieldUpdatedBy = "updatedby"
)

// Criteria is the full set of active filters. Empty strings are no-ops.
// All active filters compose with AND.
type Criteria struct {
	Global    string
	SKU       string
	Notes     string
	UpdatedBy string
}

func (c Criteria) Active() bool {
	return c.Global != "" || c.SKU != "" || c.Notes != "" || c.UpdatedBy != ""
}

// Global keeps a record if any field's string form contains query,
// case-insensitively.
func Global(records []store.Record, query string) []store.Record {
	if query == "" {
		return records
	}

	q := strings.ToLower(query)
	var out []store.Record
	for _, r := range records {
		for _, field := range r.Fields() {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, r)
				break
			}
		}
	}

	return out
}

// ByField restricts the substring match to one named field.
func ByField(records []store.Record, field, query string) []store.Record {
	if query == "" {
		return records
	}

	q := strings.ToLower(query)
	var out []store.Record
	for _, r := range records {
		var value string
		switch field {
		case FieldSKU:
			value = r.SKU
		case FieldNotes:
			value = r.Notes
		case FieldUpdatedBy:
			value = r.UpdatedBy
		default:
			return nil
		}

		if strings.Contains(strings.ToLower(value), q) {
			out = append(out, r)
		}
	}

	return out
}

// Apply runs the global filter and every per-field filter in sequence.
// Order does not affect the result; they are all substring predicates.
func Apply(records []store.Record, c Criteria) []store.Record {
	out := Global(records, c.Global)
	out = ByField(out, FieldSKU, c.SKU)
	out = ByField(out, FieldNotes, c.Notes)
	out = ByField(out, FieldUpdatedBy, c.UpdatedBy)
	return out
}
