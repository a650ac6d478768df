package main

import (
	"context"

	"github.com/spf13/cobra"

	"hepharvest/internal/bibtex"
	"hepharvest/internal/clipboard"
)

var (
	fetchProceedings bool
	fetchForce       bool
	fetchNoSave      bool
	fetchBibOnly     bool
	fetchCopy        bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <identifier>",
	Short: "Fetch one record and reconcile it with the stored entry",
	Long: `Fetch one record from INSPIRE-HEP, normalize it to BibTeX, and merge
the confirmed fields into the stored entry for the same citation key,
keeping any manually added content.

Supported identifier formats:
  1234567                     INSPIRE record id
  10.1103/PhysRevD.104.1      DOI
  2101.00001, hep-ph/9901234  arXiv id (optionally arXiv:-prefixed)

Examples:
  hh fetch 1234567
  hh fetch arXiv:2101.00001 --proceedings
  hh fetch 10.1103/PhysRevD.104.052002 --force --human`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVar(&fetchProceedings, "proceedings", false, "Resolve proceedings titles for conference papers")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "Merge even when the record has no resolved journal")
	fetchCmd.Flags().BoolVar(&fetchNoSave, "no-save", false, "Do not store the fetched entry")
	fetchCmd.Flags().BoolVar(&fetchBibOnly, "bib", false, "Print only the BibTeX text")
	fetchCmd.Flags().BoolVar(&fetchCopy, "copy", false, "Copy the BibTeX text to the clipboard")
}

// FetchResult is the JSON output for the fetch command.
type FetchResult struct {
	Key           string   `json:"key"`
	AlternateKeys []string `json:"alternateKeys,omitempty"`
	Type          string   `json:"type"`
	Title         string   `json:"title,omitempty"`
	Authors       string   `json:"authors,omitempty"`
	Journal       string   `json:"journal,omitempty"`
	Year          string   `json:"year,omitempty"`
	DOI           string   `json:"doi,omitempty"`
	ArxivID       string   `json:"arxiv,omitempty"`
	ADSID         string   `json:"ads,omitempty"`
	Link          string   `json:"link,omitempty"`
	CitationCount *int     `json:"citationCount,omitempty"`
	Merged        bool     `json:"merged"`
	Bibtex        string   `json:"bibtex"`
}

func runFetch(cmd *cobra.Command, args []string) error {
	fetchOne(args[0])
	return nil
}

// fetchOne fetches an identifier, reconciles against the store, and prints
// the result. Shared with the pdf command.
func fetchOne(id string) {
	log := newLogger()
	h, cfg := newHarvester(log)
	h.ForceMerge = fetchForce

	e, err := h.RetrieveByID(context.Background(), id, "", fetchProceedings)
	if err != nil {
		exitWithError(ExitFetchError, "fetching %s: %v", id, err)
	}

	st := mustOpenStore(cfg)
	defer st.Close()

	merged := false
	if prev, err := st.Get(e.Key); err != nil {
		exitWithError(ExitStoreError, "reading stored entry: %v", err)
	} else if prev != nil {
		changed, text := bibtex.Update(*e, prev.Bibtex, fetchForce, log)
		if changed {
			e.Bibtex = text
			merged = true
		} else {
			e.Bibtex = prev.Bibtex
		}
	}

	if !fetchNoSave {
		if err := st.Save(*e); err != nil {
			exitWithError(ExitStoreError, "saving entry: %v", err)
		}
	}

	if fetchCopy {
		if err := clipboard.Copy(e.Bibtex); err != nil {
			log.Warn().Err(err).Msg("could not copy to clipboard")
		}
	}

	printFetched(e, merged)
}

func printFetched(e *bibtex.Entry, merged bool) {
	if fetchBibOnly || humanOutput {
		outputHuman("%s", e.Bibtex)
		return
	}
	_ = outputJSON(FetchResult{
		Key:           e.Key,
		AlternateKeys: e.AlternateKeys,
		Type:          e.Type,
		Title:         e.Title,
		Authors:       e.Authors,
		Journal:       e.Journal,
		Year:          e.Year,
		DOI:           e.DOI,
		ArxivID:       e.ArxivID,
		ADSID:         e.ADSID,
		Link:          e.Link,
		CitationCount: e.CitationCount,
		Merged:        merged,
		Bibtex:        e.Bibtex,
	})
}
