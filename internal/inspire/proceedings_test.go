package inspire

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestProceedingsTitle_ByConferenceNumber(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/conferences", func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "cnum:C20-07-01" {
			t.Errorf("conference query = %q", q)
		}
		fmt.Fprintf(w, `{"hits": {"total": 1, "hits": [
			{"metadata": {"proceedings": [{"record": {"$ref": %q}}]}}
		]}}`, srvURL+"/literature/555")
	})
	mux.HandleFunc("/literature/555", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"metadata": {"titles": [
			{"title": "Proceedings, 40th International Conference", "subtitle": "Prague, 2020"}
		]}}`)
	})

	c := newTestClient(t, mux)
	srvURL = c.baseURL

	got := c.ProceedingsTitle(context.Background(), "C20-07-01", "")
	want := "Proceedings, 40th International Conference: Prague, 2020"
	if got != want {
		t.Errorf("ProceedingsTitle() = %q, want %q", got, want)
	}
}

func TestProceedingsTitle_DirectURL(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/literature/777" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"metadata": {"titles": [{"title": "Just a Title"}]}}`)
	}))

	got := c.ProceedingsTitle(context.Background(), "C20-07-01", c.baseURL+"/literature/777")
	if got != "Just a Title" {
		t.Errorf("ProceedingsTitle() = %q", got)
	}
}

func TestProceedingsTitle_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name:    "empty response",
			handler: func(w http.ResponseWriter, r *http.Request) {},
		},
		{
			name: "malformed response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"hits": {`)
			},
		},
		{
			name: "no matching conference",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"hits": {"total": 0, "hits": []}}`)
			},
		},
		{
			name: "more than one match",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"hits": {"total": 2, "hits": [{"metadata": {}}, {"metadata": {}}]}}`)
			},
		},
		{
			name: "conference without proceedings",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"hits": {"total": 1, "hits": [{"metadata": {}}]}}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			if got := c.ProceedingsTitle(context.Background(), "C20-07-01", ""); got != "" {
				t.Errorf("ProceedingsTitle() = %q, want empty on failure", got)
			}
		})
	}
}

func TestProceedingsTitle_UntitledRecord(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"metadata": {"titles": []}}`)
	}))

	if got := c.ProceedingsTitle(context.Background(), "C1", c.baseURL+"/literature/1"); got != "" {
		t.Errorf("ProceedingsTitle() = %q, want empty for untitled record", got)
	}
}
