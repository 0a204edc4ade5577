package records

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/esevim/stocktrack/internal/filter"
	"github.com/esevim/stocktrack/internal/state"
	"github.com/esevim/stocktrack/internal/tui/inventory"
)

func NewCmdRecords(s *state.State) *cobra.Command {
	var (
		global    string
		sku       string
		notes     string
		updatedBy string
	)

	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"r", "tracker"},
		Short:   "Open the interactive inventory tracker.",
		Long: heredoc.Doc(`
			Open the interactive tracker over the inventory table.

			The list can be narrowed with the search palette (press /) or
			pre-seeded with the filter flags below. Filters only narrow what
			is shown; updates always pick from the whole table.
		`),
		Example: heredoc.Doc(`
			stocktrack records
			stocktrack records --global widget
			stocktrack records --sku ABC --by "Emir Sevim"
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := filter.Criteria{
				Global:    global,
				SKU:       sku,
				Notes:     notes,
				UpdatedBy: updatedBy,
			}
			return inventory.Run(s, seed)
		},
	}

	cmd.Flags().StringVarP(&global, "global", "g", "", "Seed the search-all filter.")
	cmd.Flags().StringVar(&sku, "sku", "", "Seed the SKU filter.")
	cmd.Flags().StringVar(&notes, "notes", "", "Seed the notes filter.")
	cmd.Flags().StringVar(&updatedBy, "by", "", "Seed the updated-by filter.")

	return cmd
}
