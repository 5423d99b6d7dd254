package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bibmerge/src/internal/arxiv"
	"bibmerge/src/internal/doi"
	"bibmerge/src/internal/fetch"
	"bibmerge/src/internal/openlibrary"
	"bibmerge/src/internal/schema"
	"bibmerge/src/internal/store"
	"bibmerge/src/internal/undo"
)

// indirection for testability
var defaultRegistry = func() fetch.ProviderMap {
	return fetch.ProviderMap{
		schema.FieldDOI:    doi.Provider{},
		schema.FieldEprint: arxiv.Provider{},
		schema.FieldISBN:   openlibrary.Provider{},
	}
}

func newFetchCmd() *cobra.Command {
	var library, id string
	var fields []string
	var yes bool
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch metadata by identifier fields and merge it into a record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, library, id, yes, func(m *fetch.Merger, rec *schema.Record) {
				m.FetchByFields(cmd.Context(), rec, fields...)
			})
		},
	}
	cmd.Flags().StringVar(&library, "library", "library.yaml", "path to the library YAML file")
	cmd.Flags().StringVar(&id, "id", "", "id of the record to update")
	cmd.Flags().StringSliceVar(&fields, "field", schema.SupportedFields(), "identifier fields to look up")
	cmd.Flags().BoolVar(&yes, "yes", false, "apply fetched changes without prompting")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// runMerge loads the target record, runs the given fetch entry point against
// it, and saves the library when at least one merge was applied.
func runMerge(cmd *cobra.Command, library, id string, yes bool, run func(*fetch.Merger, *schema.Record)) error {
	recs, err := store.Load(library)
	if err != nil {
		return err
	}
	rec, ok := store.FindByID(recs, id)
	if !ok {
		return fmt.Errorf("no record with id %q in %s", id, library)
	}
	var reviewer fetch.Reviewer = newPromptReviewer(cmd.InOrStdin(), cmd.OutOrStdout())
	if yes {
		reviewer = autoReviewer{}
	}
	sink := undo.NewStack()
	m := fetch.New(fetch.Config{
		Registry: defaultRegistry(),
		Reviewer: reviewer,
		Notifier: printNotifier{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()},
		Sink:     sink,
		Log:      log,
	})
	run(m, rec)
	m.Wait()
	if sink.Len() == 0 {
		return nil
	}
	if err := store.Save(library, recs); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", library)
	return nil
}
