package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bibmerge/src/internal/store"
)

func newExportCmd() *cobra.Command {
	var library, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the library as BibTeX",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := store.Load(library)
			if err != nil {
				return err
			}
			doc := store.ExportBibTeX(recs)
			if out == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), doc)
				return nil
			}
			return os.WriteFile(out, []byte(doc), 0o644)
		},
	}
	cmd.Flags().StringVar(&library, "library", "library.yaml", "path to the library YAML file")
	cmd.Flags().StringVar(&out, "out", "", "write BibTeX to this file instead of stdout")
	return cmd
}
