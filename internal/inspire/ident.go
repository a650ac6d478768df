package inspire

import (
	"regexp"
	"strings"
)

// Identifier patterns accepted on the command line.
var (
	recidPattern    = regexp.MustCompile(`^\d+$`)
	doiPattern      = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
	arxivNewPattern = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)
	arxivOldPattern = regexp.MustCompile(`^[a-z-]+(\.[A-Z]{2})?/\d{7}$`)
)

// SearchQuery turns a user-supplied identifier into the search query that
// finds its record. Supported formats:
//   - 1234567                    record id
//   - 10.1103/PhysRevD.104.1     DOI
//   - 2101.00001, hep-ph/9901234 arXiv id (optionally "arXiv:"-prefixed)
//   - recid:/doi:/arxiv: prefixed queries are passed through
//
// Anything unrecognized is searched as free text.
func SearchQuery(id string) string {
	id = strings.TrimSpace(id)

	// "arXiv:"-style prefixes pass through with the prefix lowercased.
	for _, prefix := range []string{"recid:", "doi:", "arxiv:"} {
		if strings.HasPrefix(strings.ToLower(id), prefix) {
			return prefix + id[len(prefix):]
		}
	}

	switch {
	case recidPattern.MatchString(id):
		return "recid:" + id
	case doiPattern.MatchString(id):
		return "doi:" + id
	case arxivNewPattern.MatchString(id) || arxivOldPattern.MatchString(id):
		return "arxiv:" + id
	}
	return id
}

// IsRecordID reports whether id is a bare numeric record identifier.
func IsRecordID(id string) bool {
	return recidPattern.MatchString(strings.TrimSpace(id))
}
