package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/esevim/stocktrack/internal/constants"
)

// Level is the enumerated inventory level of a record.
type Level string

const (
	LevelFull Level = "Full"
	LevelLow  Level = "Low"
	LevelOut  Level = "Out"
)

var levelNames = []Level{LevelFull, LevelLow, LevelOut}

// ParseLevel normalizes user input into one of the three known levels.
func ParseLevel(s string) (Level, error) {
	trimmed := strings.TrimSpace(s)
	for _, l := range levelNames {
		if strings.EqualFold(trimmed, string(l)) {
			return l, nil
		}
	}

	return "", fmt.Errorf(
		"invalid inventory level: %q. Please choose from 'Full', 'Low', or 'Out'",
		s,
	)
}

// Levels returns the valid levels in display order.
func Levels() []Level {
	return append([]Level(nil), levelNames...)
}

// Color returns the lipgloss color name used when rendering the level.
// Unknown levels (possible via grid edits) fall back to grey.
func (l Level) Color() string {
	switch l {
	case LevelFull:
		return "green"
	case LevelLow:
		return "orange"
	case LevelOut:
		return "red"
	default:
		return "grey"
	}
}

// Record is one row of the inventory table.
type Record struct {
	SKU       string
	Notes     string
	Level     Level
	UpdatedBy string
	UpdatedOn time.Time
}

// DisplayTime renders the timestamp the way the UI shows it.
func (r Record) DisplayTime() string {
	if r.UpdatedOn.IsZero() {
		return ""
	}
	return r.UpdatedOn.Format(constants.DisplayTimeLayout)
}

// Fields returns the string form of every column, in header order. The
// filter engine matches against these.
func (r Record) Fields() []string {
	return []string{
		r.SKU,
		r.Notes,
		string(r.Level),
		r.UpdatedBy,
		r.DisplayTime(),
	}
}
