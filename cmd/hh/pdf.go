package main

import (
	"github.com/spf13/cobra"

	"hepharvest/internal/pdfmeta"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf <file.pdf>",
	Short: "Fetch the record for a paper PDF",
	Long: `Extract a DOI (or, failing that, an arXiv id) from the first pages of
a PDF and fetch the matching record, exactly as hh fetch would.

Examples:
  hh pdf ~/Downloads/2101.00001.pdf
  hh pdf paper.pdf --human`,
	Args: cobra.ExactArgs(1),
	RunE: runPdf,
}

func init() {
	rootCmd.AddCommand(pdfCmd)
	pdfCmd.Flags().BoolVar(&fetchProceedings, "proceedings", false, "Resolve proceedings titles for conference papers")
	pdfCmd.Flags().BoolVar(&fetchForce, "force", false, "Merge even when the record has no resolved journal")
	pdfCmd.Flags().BoolVar(&fetchNoSave, "no-save", false, "Do not store the fetched entry")
	pdfCmd.Flags().BoolVar(&fetchBibOnly, "bib", false, "Print only the BibTeX text")
}

func runPdf(cmd *cobra.Command, args []string) error {
	path := args[0]

	id, err := pdfmeta.ExtractDOI(path)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}
	if id == "" {
		id, err = pdfmeta.ExtractArxivID(path)
		if err != nil {
			exitWithError(ExitError, "reading %s: %v", path, err)
		}
	}
	if id == "" {
		exitWithError(ExitError, "no DOI or arXiv id found in %s", path)
	}

	fetchOne(id)
	return nil
}
