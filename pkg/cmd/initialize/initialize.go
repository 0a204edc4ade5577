package initialize

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esevim/stocktrack/internal/state"
)

func NewCmdInit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"i", "init"},
		Short:   "Initialize the stocktrack config and inventory table.",
		Long:    "This command creates the config file and the inventory table with its five-column header if they do not exist yet. Safe to run repeatedly.",
		Example: "stocktrack init",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Store.EnsureInitialized(); err != nil {
				return err
			}

			fmt.Printf("Inventory table ready at %s\n", s.Store.Path())
			return nil
		},
	}

	return cmd
}
