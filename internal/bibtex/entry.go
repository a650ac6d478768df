// Package bibtex defines the canonical bibliographic entry and renders,
// parses, and merges BibTeX entry text.
package bibtex

// Entry types assigned by record classification.
const (
	TypeArticle       = "article"
	TypeBook          = "book"
	TypeInproceedings = "inproceedings"
	TypePhdThesis     = "phdthesis"
)

// Entry is the normalized, service-agnostic representation of one
// bibliographic item. All fields except Type and Key are optional; empty
// strings and nil pointers mean the service did not report the field.
type Entry struct {
	Type string
	Key  string

	// AlternateKeys holds keys previously used for the same item, kept so
	// old citations still resolve. Never contains Key itself.
	AlternateKeys []string

	// Identifiers
	RecordID      string // numeric record id assigned by the service
	DOI           string
	ArxivID       string
	PrimaryClass  string // arXiv category of the eprint
	ArchivePrefix string // "arXiv" whenever ArxivID is set
	ADSID         string // ADS bibcode

	// People
	Authors       string // "A and B and C", or "First and others" when truncated
	Collaboration string

	// Publication data
	Title           string
	Journal         string
	Volume          string
	Year            string
	Pages           string
	ISBN            string
	ReportNumbers   string
	School          string // thesis institution(s), comma-joined
	BookTitle       string // resolved proceedings title
	EarliestDate    string
	PublicationDate string

	// Citation counts; nil when the service did not report them.
	CitationCount       *int
	CitationCountNoSelf *int

	// Link is the canonical URL for the item: DOI resolver link when a DOI
	// exists, arXiv abstract link otherwise, empty when neither exists.
	Link string

	// Bibtex is the rendered entry text for this entry alone.
	Bibtex string
}
