// Package pdfmeta pulls bibliographic identifiers out of local PDF files so
// a downloaded paper can seed a metadata fetch.
package pdfmeta

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// scanPages bounds how many pages are searched; identifiers sit on the
// first page of almost every paper.
const scanPages = 3

// DOI pattern: 10.XXXX/... with 4+ registrant digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// arXiv identifier, new scheme (2007+), optionally "arXiv:"-prefixed.
var arxivPattern = regexp.MustCompile(`(?:arXiv:)?(\d{4}\.\d{4,5})(v\d+)?`)

// ExtractDOI returns the first DOI found in the leading pages of the PDF,
// or "" when none is found (not an error).
func ExtractDOI(filePath string) (string, error) {
	text, err := leadingText(filePath)
	if err != nil {
		return "", err
	}
	return findDOI(text), nil
}

// ExtractArxivID returns the first arXiv identifier found in the leading
// pages of the PDF, or "".
func ExtractArxivID(filePath string) (string, error) {
	text, err := leadingText(filePath)
	if err != nil {
		return "", err
	}
	return findArxivID(text), nil
}

// leadingText extracts plain text from the first scanPages pages.
func leadingText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	maxPages := scanPages
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	var b strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

func findArxivID(text string) string {
	m := arxivPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

func isValidDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slash := strings.Index(doi, "/")
	return slash > 0 && slash < len(doi)-1
}
