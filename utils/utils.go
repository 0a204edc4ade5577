package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/esevim/stocktrack/internal/store"
)

// ValidateSKU enforces the shape a SKU may take through the form paths.
// Direct grid edits are not routed through this.
func ValidateSKU(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("sku cannot be empty")
	}

	if !isValidSKU(trimmed) {
		return "", fmt.Errorf(
			"invalid sku '%s': SKUs must only contain alphanumeric characters, hyphens, and underscores",
			trimmed,
		)
	}

	return trimmed, nil
}

func isValidSKU(input string) bool {
	return regexp.MustCompile(`^[a-zA-Z0-9-_]+$`).MatchString(input)
}

// RecordMarkdown builds the detail summary for one record, with the
// inventory level color-coded the way the level defines it.
func RecordMarkdown(r store.Record) string {
	updated := r.DisplayTime()
	if updated == "" {
		updated = "never"
	}

	return fmt.Sprintf(
		"# SKU: %s\n\n**Notes:** %s\n\n**Inventory Level:** %s\n\n**Last Updated By:** %s\n\n**Last Updated:** %s\n",
		r.SKU,
		r.Notes,
		string(r.Level),
		r.UpdatedBy,
		updated,
	)
}

// RenderRecordPreview renders the detail summary for the preview pane.
func RenderRecordPreview(r store.Record, w int) string {
	// Initiate glamour renderer to add colors to our markdown preview
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(min(w, 100)),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := renderer.Render(RecordMarkdown(r))
	if err != nil {
		return "Error rendering record" // Displayed in Preview Pane
	}

	return markdown
}
