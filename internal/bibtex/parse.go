package bibtex

import (
	"fmt"
	"strings"
	"unicode"
)

// ParsedEntry is one BibTeX entry decomposed into a flat field map.
type ParsedEntry struct {
	Type   string
	Key    string
	Fields map[string]string
}

// Parse reads the first BibTeX entry in text. Field names are lowercased;
// values keep their content with the outer delimiters stripped. Brace values
// may nest. An unterminated entry or value is an error so callers can refuse
// to merge into text they would mangle.
func Parse(text string) (*ParsedEntry, error) {
	start := strings.IndexByte(text, '@')
	if start < 0 {
		return nil, fmt.Errorf("no entry found")
	}
	return parseEntry(&parser{input: text, pos: start + 1})
}

// ParseAll reads every entry in text, in order. @comment, @string and
// @preamble blocks are skipped. An error in any entry aborts the parse so
// callers do not silently work with half a file.
func ParseAll(text string) ([]ParsedEntry, error) {
	var entries []ParsedEntry
	p := &parser{input: text}
	for {
		idx := strings.IndexByte(p.input[p.pos:], '@')
		if idx < 0 {
			return entries, nil
		}
		p.pos += idx + 1

		brace := strings.IndexByte(p.input[p.pos:], '{')
		if brace < 0 {
			return entries, fmt.Errorf("entry %d: missing entry body", len(entries)+1)
		}
		kind := strings.ToLower(strings.TrimSpace(p.input[p.pos : p.pos+brace]))
		if kind == "comment" || kind == "string" || kind == "preamble" {
			p.pos += brace
			if _, err := p.readBraced(); err != nil {
				return entries, fmt.Errorf("unterminated @%s block", kind)
			}
			continue
		}

		e, err := parseEntry(p)
		if err != nil {
			return entries, fmt.Errorf("entry %d: %w", len(entries)+1, err)
		}
		entries = append(entries, *e)
	}
}

// parseEntry reads one entry with p positioned just after its '@', leaving
// p past the closing brace.
func parseEntry(p *parser) (*ParsedEntry, error) {
	entryType, err := p.readUntil('{')
	if err != nil {
		return nil, fmt.Errorf("reading entry type: %w", err)
	}
	key, err := p.readUntil(',')
	if err != nil {
		return nil, fmt.Errorf("reading citation key: %w", err)
	}

	entry := &ParsedEntry{
		Type:   strings.ToLower(strings.TrimSpace(entryType)),
		Key:    strings.TrimSpace(key),
		Fields: make(map[string]string),
	}

	for {
		p.skipSeparators()
		if p.done() {
			return nil, fmt.Errorf("unterminated entry %q", entry.Key)
		}
		if p.peek() == '}' {
			p.pos++
			return entry, nil
		}

		name, err := p.readUntil('=')
		if err != nil {
			return nil, fmt.Errorf("reading field name: %w", err)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("empty field name in entry %q", entry.Key)
		}

		value, err := p.readValue()
		if err != nil {
			return nil, fmt.Errorf("reading field %q: %w", name, err)
		}
		entry.Fields[name] = value
	}
}

type parser struct {
	input string
	pos   int
}

func (p *parser) done() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte { return p.input[p.pos] }

// skipSeparators advances past whitespace and field-separating commas.
func (p *parser) skipSeparators() {
	for !p.done() {
		c := p.peek()
		if c == ',' || unicode.IsSpace(rune(c)) {
			p.pos++
			continue
		}
		return
	}
}

// readUntil returns the text up to the next occurrence of delim, consuming
// the delimiter.
func (p *parser) readUntil(delim byte) (string, error) {
	idx := strings.IndexByte(p.input[p.pos:], delim)
	if idx < 0 {
		return "", fmt.Errorf("missing %q", string(delim))
	}
	out := p.input[p.pos : p.pos+idx]
	p.pos += idx + 1
	return out, nil
}

// readValue reads one field value: brace-delimited (nesting allowed),
// quote-delimited, or a bare word terminated by comma or closing brace.
func (p *parser) readValue() (string, error) {
	for !p.done() && unicode.IsSpace(rune(p.peek())) {
		p.pos++
	}
	if p.done() {
		return "", fmt.Errorf("missing value")
	}

	switch p.peek() {
	case '{':
		return p.readBraced()
	case '"':
		p.pos++
		return p.readUntil('"')
	default:
		start := p.pos
		for !p.done() && p.peek() != ',' && p.peek() != '}' && p.peek() != '\n' {
			p.pos++
		}
		return strings.TrimSpace(p.input[start:p.pos]), nil
	}
}

// readBraced reads a {...} value with balanced nested braces.
func (p *parser) readBraced() (string, error) {
	p.pos++ // opening brace
	start := p.pos
	depth := 1
	for !p.done() {
		switch p.peek() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				out := p.input[start:p.pos]
				p.pos++
				return out, nil
			}
		}
		p.pos++
	}
	return "", fmt.Errorf("missing closing brace")
}
