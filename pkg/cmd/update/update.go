package update

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/esevim/stocktrack/internal/enhance"
	"github.com/esevim/stocktrack/internal/fzf"
	"github.com/esevim/stocktrack/internal/state"
	"github.com/esevim/stocktrack/internal/store"
)

func NewCmdUpdate(s *state.State) *cobra.Command {
	var (
		notes      string
		level      string
		editor     string
		useEnhance bool
	)

	cmd := &cobra.Command{
		Use:     "update [sku] [--notes notes] [--level level] [--by editor] [--enhance]",
		Aliases: []string{"u"},
		Short:   "Update an existing inventory record.",
		Long: heredoc.Doc(`
			Update a record without opening the tracker. With no SKU argument a
			fuzzy finder opens over the whole table.

			Fields not passed as flags keep their current values. The record
			timestamp is refreshed on save.
		`),
		Example: heredoc.Doc(`
			stocktrack update ABC123 --level Out
			stocktrack update --notes "restocked after audit" --enhance
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, args, notes, level, editor, useEnhance)
		},
	}

	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Replacement notes text.")
	cmd.Flags().StringVarP(&level, "level", "l", "", "Inventory level: Full, Low, or Out.")
	cmd.Flags().StringVarP(&editor, "by", "b", "", "Editor recording the change. Defaults to the configured default editor.")
	cmd.Flags().BoolVarP(&useEnhance, "enhance", "e", false, "Clean up the notes with the configured model before saving.")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, args []string, notes, level, editor string, useEnhance bool) error {
	if err := s.Store.EnsureInitialized(); err != nil {
		return err
	}

	records, err := s.Store.LoadAll()
	if err != nil {
		return err
	}

	current, err := selectRecord(records, args)
	if err != nil {
		return err
	}

	if notes == "" {
		notes = current.Notes
	}

	parsedLevel := current.Level
	if level != "" {
		parsedLevel, err = store.ParseLevel(level)
		if err != nil {
			return err
		}
	}

	editor, err = s.Config.ResolveEditor(editor)
	if err != nil {
		return err
	}

	if useEnhance {
		improved, err := enhance.EnhanceOrOriginal(cmd.Context(), s.Enhancer, notes)
		if err != nil {
			fmt.Printf("Notes enhancement failed, keeping original text: %v\n", err)
		}
		notes = improved
	}

	if err := s.Store.Upsert(current.SKU, notes, editor, parsedLevel); err != nil {
		return err
	}

	fmt.Printf("Updated SKU '%s' (%s)\n", current.SKU, parsedLevel)
	return nil
}

func selectRecord(records []store.Record, args []string) (store.Record, error) {
	if len(args) == 1 {
		for _, r := range records {
			if r.SKU == args[0] {
				return r, nil
			}
		}
		return store.Record{}, fmt.Errorf("no record with sku %q", args[0])
	}

	if len(records) == 0 {
		return store.Record{}, fmt.Errorf("inventory table is empty")
	}

	finder := fzf.NewFuzzyFinder(records, "Select a record to update...")
	return finder.Run()
}
