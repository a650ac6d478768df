package harvest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"hepharvest/internal/inspire"
)

func newHarvester(t *testing.T, handler http.Handler) *Harvester {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := inspire.NewClient(
		inspire.WithBaseURL(srv.URL),
		inspire.WithHTTPClient(srv.Client()),
	)
	return New(c, zerolog.Nop())
}

const singleRecordJSON = `{"metadata": {
	"texkeys": ["Abad:2021def"],
	"control_number": 1234567,
	"titles": [{"title": "A Test of Neutrino Mixing"}],
	"authors": [{"full_name": "Abad, J."}],
	"dois": [{"value": "10.1103/PhysRevD.104.052002"}],
	"publication_info": [{"journal_title": "Phys. Rev. D", "journal_volume": "104", "year": 2021}]
}}`

func TestRetrieveByID_RecordID(t *testing.T) {
	h := newHarvester(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/literature/1234567") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, singleRecordJSON)
	}))

	e, err := h.RetrieveByID(context.Background(), "1234567", "", false)
	if err != nil {
		t.Fatalf("RetrieveByID() error: %v", err)
	}

	if e.Key != "Abad:2021def" {
		t.Errorf("Key = %q", e.Key)
	}
	if e.Journal != "Phys. Rev. D" {
		t.Errorf("Journal = %q", e.Journal)
	}
	if !strings.Contains(e.Bibtex, "@article{Abad:2021def,") {
		t.Errorf("Bibtex:\n%s", e.Bibtex)
	}
}

func TestRetrieveByID_MergesIntoStoredText(t *testing.T) {
	h := newHarvester(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, singleRecordJSON)
	}))

	stored := `@article{Abad:2021def,
  title = {A Test of Neutrino Mixing},
  note = {read this again},
}`

	e, err := h.RetrieveByID(context.Background(), "1234567", stored, false)
	if err != nil {
		t.Fatalf("RetrieveByID() error: %v", err)
	}

	if !strings.Contains(e.Bibtex, "note = {read this again}") {
		t.Errorf("merge lost manual note:\n%s", e.Bibtex)
	}
	if !strings.Contains(e.Bibtex, "journal = {Phys. Rev. D}") {
		t.Errorf("merge missing journal:\n%s", e.Bibtex)
	}
	if !strings.Contains(e.Bibtex, "doi = {10.1103/PhysRevD.104.052002}") {
		t.Errorf("merge missing doi:\n%s", e.Bibtex)
	}
}

func TestRetrieveByID_MergeDeclinedKeepsStoredText(t *testing.T) {
	// Record without a journal: the merge must refuse and keep stored
	// text byte-identical.
	h := newHarvester(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"metadata": {
			"texkeys": ["Chen:2019abc"],
			"arxiv_eprints": [{"value": "1905.01234"}]
		}}`)
	}))

	stored := "@article{Chen:2019abc,\n  title = {Preprint},\n}"

	e, err := h.RetrieveByID(context.Background(), "123", stored, false)
	if err != nil {
		t.Fatalf("RetrieveByID() error: %v", err)
	}
	if e.Bibtex != stored {
		t.Errorf("declined merge should keep stored text, got:\n%s", e.Bibtex)
	}
}

func TestRetrieveByID_FetchFailure(t *testing.T) {
	h := newHarvester(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Empty body: transport-level emptiness.
	}))

	if _, err := h.RetrieveByID(context.Background(), "1234567", "", false); err == nil {
		t.Error("RetrieveByID() expected error for empty response")
	} else if !inspire.IsEmptyResponse(err) {
		t.Errorf("error should wrap the empty-response sentinel, got %v", err)
	}
}

func TestRetrieveByID_NotFound(t *testing.T) {
	h := newHarvester(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hits": {"total": 0, "hits": []}}`)
	}))

	if _, err := h.RetrieveByID(context.Background(), "arXiv:2101.99999", "", false); err == nil {
		t.Error("RetrieveByID() expected error for zero hits")
	}
}

func TestRetrieveBatch(t *testing.T) {
	h := newHarvester(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "recid:123 or recid:456" {
			t.Errorf("batch query = %q", q)
		}
		fmt.Fprint(w, `{"hits": {"total": 2, "hits": [
			{"metadata": {"texkeys": ["A:1"], "titles": [{"title": "One"}]}},
			{"metadata": {"texkeys": ["B:2"], "titles": [{"title": "Two"}]}}
		]}}`)
	}))

	entries, err := h.RetrieveBatch(context.Background(), []string{"123", "", "456"}, "recid:%s", false)
	if err != nil {
		t.Fatalf("RetrieveBatch() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Key != "A:1" || entries[1].Key != "B:2" {
		t.Errorf("keys = %q, %q", entries[0].Key, entries[1].Key)
	}
}

func TestRetrieveCumulativeUpdates_Failure(t *testing.T) {
	h := newHarvester(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"status": 502, "message": "upstream down"}`)
	}))

	entries, err := h.RetrieveCumulativeUpdates(context.Background(), "2026-01-01", "2026-01-31")
	if err == nil {
		t.Error("RetrieveCumulativeUpdates() expected error")
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries from failed harvest", len(entries))
	}
}
