package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hepharvest/internal/bibtex"
	"hepharvest/internal/config"
)

var importCmd = &cobra.Command{
	Use:   "import <file.bib>",
	Short: "Seed the store from an existing .bib file",
	Long: `Parse a .bib file and store every entry under its citation key, so
later fetches merge fresh metadata into it instead of starting from
nothing. Existing stored entries with the same key are replaced.

Examples:
  hh import refs.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// ImportResult is the JSON output for the import command.
type ImportResult struct {
	File     string `json:"file"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	log := newLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}
	parsed, err := bibtex.ParseAll(string(data))
	if err != nil {
		exitWithError(ExitError, "parsing %s: %v", path, err)
	}

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	st := mustOpenStore(cfg)
	defer st.Close()

	imported, skipped := 0, 0
	for _, pe := range parsed {
		if pe.Key == "" {
			log.Warn().Str("type", pe.Type).Msg("skipping entry without a citation key")
			skipped++
			continue
		}
		e := bibtex.Entry{
			Type:  pe.Type,
			Key:   pe.Key,
			Title: pe.Fields["title"],
			DOI:   pe.Fields["doi"],
		}
		if strings.EqualFold(pe.Fields["archiveprefix"], "arXiv") {
			e.ArxivID = pe.Fields["eprint"]
		}
		e.Bibtex = bibtex.RenderFields(pe.Type, pe.Key, pe.Fields)
		if err := st.Save(e); err != nil {
			exitWithError(ExitStoreError, "saving %s: %v", pe.Key, err)
		}
		imported++
	}

	if humanOutput {
		outputHuman("imported %d entries from %s (%d skipped)\n", imported, path, skipped)
		return nil
	}
	return outputJSON(ImportResult{File: path, Imported: imported, Skipped: skipped})
}
