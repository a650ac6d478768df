// Package harvest composes the INSPIRE client and the BibTeX reconciler
// into the operations the rest of the application consumes: fetch one
// record by identifier, fetch a batch, and fetch everything changed in a
// date range.
package harvest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"hepharvest/internal/bibtex"
	"hepharvest/internal/inspire"
)

// Harvester drives harvest operations against one client. It holds no
// state across calls; every operation is an independent sequence of
// bounded, sequential fetches.
type Harvester struct {
	client *inspire.Client
	log    zerolog.Logger

	// ForceMerge overrides the merge rule requiring a resolved journal.
	ForceMerge bool
	// MaxIterations caps page fetches per pagination walk; zero means the
	// client default.
	MaxIterations int
}

// New creates a Harvester over a client.
func New(client *inspire.Client, log zerolog.Logger) *Harvester {
	return &Harvester{client: client, log: log}
}

// RetrieveByID fetches the record for one identifier, normalizes it, and,
// when storedText is non-empty, reconciles the result against it. On any
// failure the error describes which stage failed and no entry is returned;
// callers must not treat that as "record gone".
func (h *Harvester) RetrieveByID(ctx context.Context, id, storedText string, resolveProceedings bool) (*bibtex.Entry, error) {
	var res inspire.PageResult
	if inspire.IsRecordID(id) {
		res = h.client.FetchPaginated(ctx, h.client.RecordURL(id), 1)
	} else {
		res = h.client.Search(ctx, inspire.SearchQuery(id), 10, nil, 1)
	}

	if res.Outcome != inspire.OutcomeOK {
		return nil, fmt.Errorf("fetching %q: %w", id, res.Err)
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("fetching %q: %w", id, inspire.ErrNotFound)
	}
	if len(res.Records) > 1 {
		h.log.Warn().Str("id", id).Int("hits", len(res.Records)).Msg("identifier matched several records, using the first")
	}

	return h.ProcessRecord(ctx, res.Records[0], storedText, resolveProceedings)
}

// ProcessRecord normalizes an already-fetched raw record and optionally
// reconciles it against stored entry text. Used directly when the caller
// paginated results itself.
func (h *Harvester) ProcessRecord(ctx context.Context, raw inspire.Record, storedText string, resolveProceedings bool) (*bibtex.Entry, error) {
	e := h.client.ReadRecord(ctx, raw, resolveProceedings, false)
	if e.Key == "" && e.RecordID == "" {
		return nil, fmt.Errorf("record has no citation key and no record id")
	}

	if storedText != "" {
		changed, merged := bibtex.Update(e, storedText, h.ForceMerge, h.log)
		if changed {
			e.Bibtex = merged
		} else {
			e.Bibtex = storedText
		}
	}
	return &e, nil
}

// RetrieveCumulativeUpdates fetches every record updated in [fromDate,
// toDate], inclusive, already normalized and annotated with its source
// record id. An error means the harvest could not run to completion; the
// returned entries are whatever was accumulated before it stopped.
func (h *Harvester) RetrieveCumulativeUpdates(ctx context.Context, fromDate, toDate string) ([]bibtex.Entry, error) {
	entries, res := h.client.CumulativeUpdates(ctx, fromDate, toDate, h.MaxIterations)
	if res.Outcome != inspire.OutcomeOK {
		return entries, fmt.Errorf("harvesting %s..%s: %w", fromDate, toDate, res.Err)
	}
	h.log.Info().Int("records", len(entries)).Int("total", res.Total).
		Str("from", fromDate).Str("to", toDate).Msg("cumulative harvest finished")
	return entries, nil
}

// RetrieveBatch fetches a set of identifiers in one query and normalizes
// every hit. searchFormat is applied to each identifier as in
// inspire.BatchQuery.
func (h *Harvester) RetrieveBatch(ctx context.Context, ids []string, searchFormat string, resolveProceedings bool) ([]bibtex.Entry, error) {
	res := h.client.Batch(ctx, ids, searchFormat, h.MaxIterations)
	if res.Outcome != inspire.OutcomeOK {
		return nil, fmt.Errorf("batch fetch: %w", res.Err)
	}

	entries := make([]bibtex.Entry, 0, len(res.Records))
	for _, rec := range res.Records {
		e, err := h.ProcessRecord(ctx, rec, "", resolveProceedings)
		if err != nil {
			h.log.Warn().Err(err).Msg("skipping unusable record")
			continue
		}
		entries = append(entries, *e)
	}
	return entries, nil
}
