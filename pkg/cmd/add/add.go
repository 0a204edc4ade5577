package add

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/esevim/stocktrack/internal/enhance"
	"github.com/esevim/stocktrack/internal/state"
	"github.com/esevim/stocktrack/internal/store"
	"github.com/esevim/stocktrack/utils"
)

func NewCmdAdd(s *state.State) *cobra.Command {
	var (
		level      string
		editor     string
		useEnhance bool
	)

	cmd := &cobra.Command{
		Use:     "add [sku] [notes] [--level level] [--by editor] [--enhance]",
		Aliases: []string{"a"},
		Short:   "Add a new inventory record.",
		Long: heredoc.Doc(`
			Add a new record to the inventory table without opening the tracker.

			The SKU must be unique; an existing SKU is rejected. With --enhance
			the notes are run through the configured grammar cleanup before
			saving, and the original text is kept if the cleanup fails.
		`),
		Example: heredoc.Doc(`
			stocktrack add ABC123 "received low stock shipment" --level Low
			stocktrack add XYZ-9 "full restock" --by "Enis Sevim" --enhance
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, args, level, editor, useEnhance)
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", string(store.LevelFull), "Inventory level: Full, Low, or Out.")
	cmd.Flags().StringVarP(&editor, "by", "b", "", "Editor recording the change. Defaults to the configured default editor.")
	cmd.Flags().BoolVarP(&useEnhance, "enhance", "e", false, "Clean up the notes with the configured model before saving.")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, args []string, level, editor string, useEnhance bool) error {
	sku, err := utils.ValidateSKU(args[0])
	if err != nil {
		return err
	}

	parsedLevel, err := store.ParseLevel(level)
	if err != nil {
		return err
	}

	editor, err = s.Config.ResolveEditor(editor)
	if err != nil {
		return err
	}

	notes := args[1]
	if useEnhance {
		improved, err := enhance.EnhanceOrOriginal(cmd.Context(), s.Enhancer, notes)
		if err != nil {
			fmt.Printf("Notes enhancement failed, keeping original text: %v\n", err)
		}
		notes = improved
	}

	if err := s.Store.EnsureInitialized(); err != nil {
		return err
	}

	if err := s.Store.Add(sku, notes, editor, parsedLevel); err != nil {
		return err
	}

	fmt.Printf("Added SKU '%s' (%s)\n", sku, parsedLevel)
	return nil
}
