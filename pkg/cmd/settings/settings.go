package settings

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	"github.com/esevim/stocktrack/internal/state"
)

func NewCmdSettings(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"s", "cfg"},
		Short:   "Manage the stocktrack configuration.",
		Long: heredoc.Doc(`
			Manage the configuration file: the editor roster used by the form
			surfaces and the default editor attached to CLI writes.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return chooseDefaultEditor(s)
		},
	}

	cmd.AddCommand(newCmdAddEditor(s))

	return cmd
}

func chooseDefaultEditor(s *state.State) error {
	if len(s.Config.Editors) == 0 {
		return fmt.Errorf("no editors configured; add one with 'stocktrack settings add-editor'")
	}

	sel := selection.New(
		"Select the default editor.",
		s.Config.Editors,
	)
	sel.Filter = nil

	choice, err := sel.RunPrompt()
	if err != nil {
		return err
	}

	if err := s.Config.ChangeDefaultEditor(choice); err != nil {
		return err
	}

	fmt.Printf("Default editor set to '%s'\n", choice)
	return nil
}

func newCmdAddEditor(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "add-editor [name]",
		Aliases: []string{"ae"},
		Short:   "Add a name to the editor roster.",
		Example: `stocktrack settings add-editor "Deniz Sevim"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.AddEditor(args[0]); err != nil {
				return err
			}

			fmt.Printf("Added editor '%s'\n", args[0])
			return nil
		},
	}
}
