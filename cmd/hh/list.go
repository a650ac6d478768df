package main

import (
	"time"

	"github.com/spf13/cobra"

	"hepharvest/internal/config"
)

var listBib bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored entries",
	Long: `List every stored entry, most recently fetched first.

Examples:
  hh list
  hh list --human
  hh list --bib > refs.bib`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listBib, "bib", false, "Print the stored BibTeX text instead of a summary")
}

// StoredEntry is one stored record in the list command's JSON output.
type StoredEntry struct {
	Key       string `json:"key"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	DOI       string `json:"doi,omitempty"`
	ArxivID   string `json:"arxiv,omitempty"`
	RecordID  string `json:"recordId,omitempty"`
	FetchedAt string `json:"fetchedAt"`
}

func runList(cmd *cobra.Command, args []string) error {
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

	if listBib {
		for _, e := range entries {
			outputHuman("%s\n", e.Bibtex)
		}
		return nil
	}
	if humanOutput {
		for _, e := range entries {
			outputHuman("%-30s %-14s %s\n", e.Key, e.Type, e.Title)
		}
		return nil
	}

	out := make([]StoredEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, StoredEntry{
			Key:       e.Key,
			Type:      e.Type,
			Title:     e.Title,
			DOI:       e.DOI,
			ArxivID:   e.ArxivID,
			RecordID:  e.RecordID,
			FetchedAt: e.FetchedAt.Format(time.RFC3339),
		})
	}
	return outputJSON(out)
}
