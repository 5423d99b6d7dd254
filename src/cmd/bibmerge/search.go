package main

import (
	"github.com/spf13/cobra"

	"bibmerge/src/internal/crossref"
	"bibmerge/src/internal/fetch"
	"bibmerge/src/internal/schema"
)

// indirection for testability
var searchProvider fetch.EntryProvider = crossref.Provider{}

func newSearchCmd() *cobra.Command {
	var library, id string
	var yes bool
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search by the whole record and merge the best match into it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, library, id, yes, func(m *fetch.Merger, rec *schema.Record) {
				m.FetchByEntry(cmd.Context(), rec, searchProvider)
			})
		},
	}
	cmd.Flags().StringVar(&library, "library", "library.yaml", "path to the library YAML file")
	cmd.Flags().StringVar(&id, "id", "", "id of the record to update")
	cmd.Flags().BoolVar(&yes, "yes", false, "apply fetched changes without prompting")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
