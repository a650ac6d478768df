package inspire

import "testing"

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"1234567", "recid:1234567"},
		{"10.1103/PhysRevD.104.052002", "doi:10.1103/PhysRevD.104.052002"},
		{"2101.00001", "arxiv:2101.00001"},
		{"2101.00001v2", "arxiv:2101.00001v2"},
		{"hep-ph/9901234", "arxiv:hep-ph/9901234"},
		{"arXiv:2101.00001", "arxiv:2101.00001"},
		{"doi:10.1/x", "doi:10.1/x"},
		{"recid:99", "recid:99"},
		{" 1234567 ", "recid:1234567"},
		{"some free text", "some free text"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := SearchQuery(tt.id); got != tt.want {
				t.Errorf("SearchQuery(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestIsRecordID(t *testing.T) {
	if !IsRecordID("123") {
		t.Error("IsRecordID(123) = false")
	}
	if IsRecordID("10.1/x") {
		t.Error("IsRecordID(10.1/x) = true")
	}
}
