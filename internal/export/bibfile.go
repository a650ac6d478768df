// Package export writes stored entries out to a .bib file without
// duplicating what the file already contains.
package export

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"hepharvest/internal/store"
)

// Index tracks which citations an existing .bib file already contains,
// by citation key and by DOI.
type Index struct {
	keys map[string]bool
	dois map[string]string
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		keys: make(map[string]bool),
		dois: make(map[string]string),
	}
}

// Has reports whether an entry is already present. A DOI match wins over a
// key match, so a re-keyed entry is still recognized.
func (idx *Index) Has(key, doi string) bool {
	if doi != "" {
		if _, ok := idx.dois[normalizeDOI(doi)]; ok {
			return true
		}
	}
	return idx.keys[key]
}

// Add records one entry in the index.
func (idx *Index) Add(key, doi string) {
	if key != "" {
		idx.keys[key] = true
	}
	if doi != "" {
		idx.dois[normalizeDOI(doi)] = key
	}
}

var (
	entryStartPattern = regexp.MustCompile(`@\w+\{([^,]+),`)
	doiFieldPattern   = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[{"]([^}"]+)[}"]`)
)

// IndexFile builds an index from an existing .bib file. The file is scanned
// line by line rather than parsed, so hand-edited files that a strict parse
// would reject still index. A missing file yields an empty index.
func IndexFile(path string) (*Index, error) {
	idx := NewIndex()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var currentKey string
	for scanner.Scan() {
		line := scanner.Text()

		if m := entryStartPattern.FindStringSubmatch(line); len(m) > 1 {
			currentKey = strings.TrimSpace(m[1])
			idx.keys[currentKey] = true
		}
		if m := doiFieldPattern.FindStringSubmatch(line); len(m) > 1 {
			if doi := normalizeDOI(m[1]); doi != "" && currentKey != "" {
				idx.dois[doi] = currentKey
			}
		}
	}
	return idx, scanner.Err()
}

// normalizeDOI strips resolver prefixes and lowercases, so the same DOI
// written different ways still matches.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}

// WriteNew appends every entry not already indexed to the file at path,
// creating it if needed, and returns how many were written. Written entries
// are added to the index so duplicates within one call collapse too.
func WriteNew(path string, entries []store.Entry, idx *Index) (int, error) {
	var pending []string
	for _, e := range entries {
		if idx.Has(e.Key, e.DOI) {
			continue
		}
		pending = append(pending, e.Bibtex)
		idx.Add(e.Key, e.DOI)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if _, err := f.WriteString("\n" + strings.Join(pending, "\n")); err != nil {
		return 0, err
	}
	return len(pending), nil
}
