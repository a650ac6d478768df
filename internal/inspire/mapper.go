package inspire

import (
	"context"
	"strconv"
	"strings"

	"hepharvest/internal/bibtex"
)

// ReadRecord maps one raw metadata record into a canonical entry, decides
// its entry type, and renders its BibTeX text. Every extraction rule
// tolerates its source field being absent; partial records yield partial
// entries. resolveProceedings enables the extra network lookup of a
// proceedings title for conference papers. suppressWarnings silences the
// classification diagnostics only; it never changes the returned entry.
func (c *Client) ReadRecord(ctx context.Context, raw Record, resolveProceedings, suppressWarnings bool) bibtex.Entry {
	m := raw.Metadata()
	e := bibtex.Entry{Type: bibtex.TypeArticle}

	if keys := m.Strings("texkeys"); len(keys) > 0 {
		e.Key = keys[0]
		e.AlternateKeys = keys[1:]
	}
	if id, ok := m.Int("control_number"); ok {
		e.RecordID = strconv.Itoa(id)
	}

	e.DOI = m.FirstValue("dois")
	if eprints := m.Slice("arxiv_eprints"); len(eprints) > 0 {
		e.ArxivID = eprints[0].String("value")
		if cats := eprints[0].Strings("categories"); len(cats) > 0 {
			e.PrimaryClass = cats[0]
		}
		if e.ArxivID != "" {
			e.ArchivePrefix = ArchivePrefix
		}
	}
	for _, ext := range m.Slice("external_system_identifiers") {
		if ext.String("schema") == ADSSchema {
			e.ADSID = ext.String("value")
			break
		}
	}

	e.ISBN = m.FirstValue("isbns")
	e.ReportNumbers = strings.Join(m.Values("report_numbers"), ", ")
	e.Collaboration = strings.Join(m.Values("collaborations"), ", ")
	if titles := m.Slice("titles"); len(titles) > 0 {
		e.Title = titles[0].String("title")
	}
	e.Authors = c.authorLine(m)

	e.EarliestDate = m.String("earliest_date")
	e.PublicationDate = m.String("preprint_date")
	if n, ok := m.Int("citation_count"); ok {
		count := n
		e.CitationCount = &count
	}
	if n, ok := m.Int("citation_count_without_self_citations"); ok {
		count := n
		e.CitationCountNoSelf = &count
	}

	pubinfo := firstPublicationInfo(m)
	if pubinfo != nil {
		e.Journal = pubinfo.String("journal_title")
		e.Volume = pubinfo.String("journal_volume")
		if year, ok := pubinfo.Int("year"); ok {
			e.Year = strconv.Itoa(year)
		}
		e.Pages = pageRange(pubinfo)
	}
	if e.Year == "" && len(e.EarliestDate) >= 4 {
		e.Year = e.EarliestDate[:4]
	}

	c.classify(ctx, &e, m, pubinfo, resolveProceedings, suppressWarnings)

	switch {
	case e.DOI != "":
		e.Link = DOIBaseURL + e.DOI
	case e.ArxivID != "":
		e.Link = ArxivAbsURL + e.ArxivID
	}

	e.Bibtex = bibtex.Render(e)
	return e
}

// classify assigns the entry type: ISBN wins, then thesis metadata, then a
// conference number inside the publication info, else article.
func (c *Client) classify(ctx context.Context, e *bibtex.Entry, m, pubinfo Record, resolveProceedings, suppressWarnings bool) {
	thesis := m.Map("thesis_info")
	cnum := ""
	if pubinfo != nil {
		cnum = pubinfo.String("cnum")
	}

	switch {
	case e.ISBN != "":
		e.Type = bibtex.TypeBook
		if thesis != nil && !suppressWarnings {
			c.log.Debug().Str("key", e.Key).Msg("record has both ISBN and thesis info, classified as book")
		}
	case thesis != nil:
		e.Type = bibtex.TypePhdThesis
		e.School = strings.Join(institutionNames(thesis), ", ")
		// The thesis's own year wins over publication info.
		if date := thesis.String("date"); len(date) >= 4 {
			e.Year = date[:4]
		}
	case cnum != "":
		e.Type = bibtex.TypeInproceedings
		if resolveProceedings {
			directURL := ""
			if parent := pubinfo.Map("parent_record"); parent != nil {
				directURL = parent.String("$ref")
			}
			e.BookTitle = c.ProceedingsTitle(ctx, cnum, directURL)
		}
	default:
		e.Type = bibtex.TypeArticle
	}
}

// authorLine formats the author list as "A and B and C". Lists longer than
// the configured cap collapse to "First and others"; a separate author
// count field wins over counting the listed entries, since responses may
// omit most author entries when the true count is large.
func (c *Client) authorLine(m Record) string {
	// Legacy shape: one first author plus a sequence of additional names.
	if first := m.String("first_author"); first != "" {
		names := append([]string{first}, m.Strings("additional_authors")...)
		return joinAuthors(names, len(names), c.maxAuthors)
	}

	authors := m.Slice("authors")
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if name := a.String("full_name"); name != "" {
			names = append(names, name)
		}
	}

	count := len(names)
	if n, ok := m.Int("author_count"); ok {
		count = n
	}
	return joinAuthors(names, count, c.maxAuthors)
}

func joinAuthors(names []string, count, limit int) string {
	if len(names) == 0 {
		return ""
	}
	if count > limit || len(names) > limit {
		return names[0] + " and others"
	}
	return strings.Join(names, " and ")
}

// firstPublicationInfo returns the first publication info entry. The field
// arrives either as a sequence of mappings or as a single mapping.
func firstPublicationInfo(m Record) Record {
	if infos := m.Slice("publication_info"); len(infos) > 0 {
		return infos[0]
	}
	return m.Map("publication_info")
}

// pageRange formats the page interval, falling back to the article id.
func pageRange(pubinfo Record) string {
	start := pubinfo.String("page_start")
	end := pubinfo.String("page_end")
	switch {
	case start != "" && end != "":
		return start + "-" + end
	case start != "":
		return start
	}
	return pubinfo.String("artid")
}

func institutionNames(thesis Record) []string {
	var names []string
	for _, inst := range thesis.Slice("institutions") {
		if name := inst.String("name"); name != "" {
			names = append(names, name)
		}
	}
	return names
}
