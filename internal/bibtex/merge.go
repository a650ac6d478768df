package bibtex

import (
	"github.com/rs/zerolog"
)

// mergeableFields are the service-confirmed fields copied from the canonical
// entry into stored text on every merge.
var mergeableFields = []string{"doi", "volume", "pages", "year", "journal"}

// PreviousTextField is the side field some stores keep inside an entry: the
// entry text captured at a prior fetch. Values parsed from it rank below the
// canonical entry's own fields but above leaving a field unset.
const PreviousTextField = "oldbibtex"

// Update merges the canonical entry's service-confirmed fields into
// previously stored entry text, keeping every field the text already carries.
// It returns the new text and whether it differs from the input.
//
// The merge is declined, returning the input untouched, when the stored text
// cannot be parsed or when the entry has no journal and force is unset
// (entries without a resolved journal are usually preprints, not yet ready
// to overwrite a stable citation).
func Update(e Entry, stored string, force bool, log zerolog.Logger) (bool, string) {
	parsed, err := Parse(stored)
	if err != nil {
		log.Warn().Err(err).Str("key", e.Key).Msg("stored entry text is malformed, merge skipped")
		return false, stored
	}

	if !force && e.Journal == "" {
		log.Warn().Str("key", e.Key).Msg("no journal in fetched record, merge skipped")
		return false, stored
	}

	canonical := e.FieldMap()
	previous := previousFields(parsed)

	var missing []string
	for _, name := range mergeableFields {
		if value := canonical[name]; value != "" {
			parsed.Fields[name] = value
			continue
		}
		missing = append(missing, name)
		if parsed.Fields[name] == "" && previous[name] != "" {
			parsed.Fields[name] = previous[name]
		}
	}
	if len(missing) > 0 {
		log.Info().Str("key", e.Key).Strs("fields", missing).Msg("fetched record is missing fields")
	}

	if e.ArxivID != "" {
		existing := parsed.Fields["eprint"]
		if existing != "" && existing != e.ArxivID && !force {
			log.Warn().Str("key", e.Key).Str("stored", existing).Str("fetched", e.ArxivID).
				Msg("stored eprint differs from fetched, keeping stored")
		} else {
			if existing != "" && existing != e.ArxivID {
				log.Info().Str("key", e.Key).Str("stored", existing).Str("fetched", e.ArxivID).
					Msg("replacing stored eprint")
			}
			parsed.Fields["eprint"] = e.ArxivID
			if e.ArchivePrefix != "" {
				parsed.Fields["archiveprefix"] = e.ArchivePrefix
			}
			if e.PrimaryClass != "" {
				parsed.Fields["primaryclass"] = e.PrimaryClass
			}
		}
	}

	newText := RenderFields(parsed.Type, parsed.Key, parsed.Fields)
	if newText == stored {
		return false, stored
	}
	return true, newText
}

// previousFields parses the side field holding previously fetched entry
// text, if present. A malformed side field is ignored.
func previousFields(parsed *ParsedEntry) map[string]string {
	text, ok := parsed.Fields[PreviousTextField]
	if !ok {
		return nil
	}
	prev, err := Parse(text)
	if err != nil {
		return nil
	}
	return prev.Fields
}
