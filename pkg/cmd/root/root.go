package root

import (
	"github.com/spf13/cobra"

	"github.com/esevim/stocktrack/internal/constants"
	"github.com/esevim/stocktrack/internal/state"
	"github.com/esevim/stocktrack/pkg/cmd/add"
	"github.com/esevim/stocktrack/pkg/cmd/initialize"
	"github.com/esevim/stocktrack/pkg/cmd/records"
	"github.com/esevim/stocktrack/pkg/cmd/settings"
	"github.com/esevim/stocktrack/pkg/cmd/update"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "stocktrack",
		Aliases: []string{"st"},
		Version: constants.Version,
		Short:   "Track warehouse inventory from a terminal form and table.",
		Long: `A single-user warehouse inventory tracker backed by a flat CSV file.

  Running with no arguments opens the interactive tracker: search and
  filter the table, update or add entries through forms, or edit the
  table directly as a grid.
  `,
		// Launch the tracker TUI by default.
		RunE: records.NewCmdRecords(s).RunE,
	}

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		add.NewCmdAdd(s),
		update.NewCmdUpdate(s),
		records.NewCmdRecords(s),
		settings.NewCmdSettings(s),
	)

	return cmd, nil
}
