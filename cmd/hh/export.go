package main

import (
	"github.com/spf13/cobra"

	"hepharvest/internal/config"
	"hepharvest/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Append stored entries to a .bib file",
	Long: `Append every stored entry to a .bib file, skipping entries the file
already contains (matched by DOI, then by citation key). The file is
never rewritten, so manual edits survive.

Examples:
  hh export --out refs.bib`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "refs.bib", "Target .bib file")
}

// ExportResult is the JSON output for the export command.
type ExportResult struct {
	File    string `json:"file"`
	Stored  int    `json:"stored"`
	Written int    `json:"written"`
	Skipped int    `json:"skipped"`
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	st := mustOpenStore(cfg)
	defer st.Close()

	entries, err := st.List()
	if err != nil {
		exitWithError(ExitStoreError, "listing entries: %v", err)
	}

	idx, err := export.IndexFile(exportOut)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", exportOut, err)
	}
	written, err := export.WriteNew(exportOut, entries, idx)
	if err != nil {
		exitWithError(ExitError, "writing %s: %v", exportOut, err)
	}

	if humanOutput {
		outputHuman("wrote %d of %d entries to %s (%d already present)\n",
			written, len(entries), exportOut, len(entries)-written)
		return nil
	}
	return outputJSON(ExportResult{
		File:    exportOut,
		Stored:  len(entries),
		Written: written,
		Skipped: len(entries) - written,
	})
}
