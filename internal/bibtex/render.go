package bibtex

import (
	"fmt"
	"sort"
	"strings"
)

// fieldOrder is the fixed vocabulary of citation fields, in rendering order.
// Only fields present and non-empty are written.
var fieldOrder = []string{
	"author",
	"collaboration",
	"title",
	"booktitle",
	"journal",
	"volume",
	"year",
	"pages",
	"isbn",
	"school",
	"archiveprefix",
	"primaryclass",
	"eprint",
	"reportnumber",
	"doi",
}

// Render converts an entry to BibTeX text.
func Render(e Entry) string {
	return RenderFields(e.Type, e.Key, e.FieldMap())
}

// FieldMap returns the entry's citation fields as a flat name/value map,
// omitting empty values. The map uses the BibTeX field vocabulary.
func (e Entry) FieldMap() map[string]string {
	fields := map[string]string{
		"author":        e.Authors,
		"collaboration": e.Collaboration,
		"title":         e.Title,
		"booktitle":     e.BookTitle,
		"journal":       e.Journal,
		"volume":        e.Volume,
		"year":          e.Year,
		"pages":         e.Pages,
		"isbn":          e.ISBN,
		"school":        e.School,
		"archiveprefix": e.ArchivePrefix,
		"primaryclass":  e.PrimaryClass,
		"eprint":        e.ArxivID,
		"reportnumber":  e.ReportNumbers,
		"doi":           e.DOI,
	}
	for name, value := range fields {
		if value == "" {
			delete(fields, name)
		}
	}
	return fields
}

// RenderFields writes a single BibTeX entry from a flat field map.
// Known fields come first in their fixed order; any extra fields (manually
// added content carried through a merge) follow alphabetically, so repeated
// render/parse round trips are byte-stable.
func RenderFields(entryType, key string, fields map[string]string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, key))

	written := make(map[string]bool, len(fields))
	for _, name := range fieldOrder {
		if value, ok := fields[name]; ok && value != "" {
			b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, value))
			written[name] = true
		}
	}

	var extra []string
	for name, value := range fields {
		if !written[name] && value != "" {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, fields[name]))
	}

	b.WriteString("}\n")
	return b.String()
}
