package bibtex

import (
	"testing"
)

func TestParse_Basic(t *testing.T) {
	text := `@article{Abad:2021def,
  author = {J. Abad and K. Baker},
  title = {A Test of {CP} Violation},
  journal = {Phys. Rev. D},
  year = {2021},
}`

	got, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if got.Type != "article" {
		t.Errorf("Parse() Type = %q, want article", got.Type)
	}
	if got.Key != "Abad:2021def" {
		t.Errorf("Parse() Key = %q, want Abad:2021def", got.Key)
	}

	want := map[string]string{
		"author":  "J. Abad and K. Baker",
		"title":   "A Test of {CP} Violation",
		"journal": "Phys. Rev. D",
		"year":    "2021",
	}
	for name, value := range want {
		if got.Fields[name] != value {
			t.Errorf("Parse() field %s = %q, want %q", name, got.Fields[name], value)
		}
	}
}

func TestParse_QuotedAndBareValues(t *testing.T) {
	text := `@article{K,
  title = "Quoted Title",
  year = 2021,
}`

	got, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got.Fields["title"] != "Quoted Title" {
		t.Errorf("Parse() quoted title = %q", got.Fields["title"])
	}
	if got.Fields["year"] != "2021" {
		t.Errorf("Parse() bare year = %q", got.Fields["year"])
	}
}

func TestParse_UppercaseFieldNames(t *testing.T) {
	got, err := Parse("@Article{K,\n  TITLE = {X},\n}")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got.Type != "article" {
		t.Errorf("Parse() Type = %q, want article", got.Type)
	}
	if got.Fields["title"] != "X" {
		t.Errorf("Parse() field title = %q, want X", got.Fields["title"])
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no entry", "just some text"},
		{"missing closing brace", "@article{K,\n  title = {X},\n"},
		{"unterminated value", "@article{K,\n  title = {X"},
		{"missing key comma", "@article{K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.text); err == nil {
				t.Errorf("Parse(%q) expected error, got nil", tt.text)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	e := Entry{
		Type:    TypeBook,
		Key:     "Knuth:1997",
		Authors: "D. Knuth",
		Title:   "The Art of Computer Programming",
		ISBN:    "978-0201896831",
		Year:    "1997",
	}

	text := Render(e)
	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(Render()) error: %v", err)
	}

	if RenderFields(parsed.Type, parsed.Key, parsed.Fields) != text {
		t.Errorf("render/parse/render not byte-stable for:\n%s", text)
	}
}

func TestParseAll(t *testing.T) {
	text := `% my bibliography
@comment{anything {nested} here}
@article{First:2020abc,
  title = {First paper},
  doi = {10.1/a},
}

@string{pr = "Phys. Rev."}

@inproceedings{Second:2021xyz,
  title = {Second paper},
}
`
	entries, err := ParseAll(text)
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Key != "First:2020abc" || entries[0].Fields["doi"] != "10.1/a" {
		t.Errorf("first entry parsed wrong: %+v", entries[0])
	}
	if entries[1].Key != "Second:2021xyz" || entries[1].Type != "inproceedings" {
		t.Errorf("second entry parsed wrong: %+v", entries[1])
	}
}

func TestParseAll_AbortsOnBadEntry(t *testing.T) {
	text := `@article{Good:2020,
  title = {Fine},
}
@article{Bad:2021,
  title = {never closed
`
	if _, err := ParseAll(text); err == nil {
		t.Error("expected error for unterminated entry")
	}
}

func TestParseAll_Empty(t *testing.T) {
	entries, err := ParseAll("no entries here")
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}
