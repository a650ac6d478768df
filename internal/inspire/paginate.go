package inspire

import (
	"context"
	"encoding/json"
	"fmt"
)

// Outcome classifies how a pagination walk ended, so callers can tell a
// confirmed empty result from a failed fetch.
type Outcome int

const (
	// OutcomeOK means every page was fetched and parsed.
	OutcomeOK Outcome = iota
	// OutcomeEmptyResponse means the service returned no text.
	OutcomeEmptyResponse
	// OutcomeParseError means a page was not valid JSON.
	OutcomeParseError
	// OutcomeAPIError means the service reported an error in-band.
	OutcomeAPIError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmptyResponse:
		return "empty-response"
	case OutcomeParseError:
		return "parse-error"
	case OutcomeAPIError:
		return "api-error"
	}
	return "unknown"
}

// PageResult is the accumulated output of one pagination walk.
type PageResult struct {
	// Records holds the raw records, strictly in service order.
	Records []Record
	// Total is the hit count announced by the first page, or 0 when the
	// walk did not complete cleanly.
	Total int
	// Outcome tags how the walk ended; Err carries detail for non-OK
	// outcomes.
	Outcome Outcome
	Err     error
}

// FetchPaginated fetches pageURL and then each "next" link the responses
// embed, accumulating result records, up to maxIterations page fetches.
//
// A response with no search envelope (neither hits nor links) is taken as a
// single record, which is how single-record lookups answer. Failures end the
// walk without raising: the result keeps whatever accumulated and tags the
// outcome, per the taxonomy in Outcome. Cancelling ctx stops the walk
// before the next page fetch.
func (c *Client) FetchPaginated(ctx context.Context, pageURL string, maxIterations int) PageResult {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	var res PageResult
	current := pageURL

	for i := 0; i < maxIterations && current != ""; i++ {
		if ctx.Err() != nil {
			c.log.Info().Int("pages", i).Msg("pagination walk stopped")
			break
		}

		text := c.textFrom(ctx, current)
		if text == "" {
			c.log.Warn().Str("url", current).Msg("empty response, stopping walk")
			res.Total = 0
			res.Outcome = OutcomeEmptyResponse
			res.Err = ErrEmptyResponse
			return res
		}

		var obj map[string]any
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			c.log.Warn().Err(err).Str("url", current).Msg("unparseable response, stopping walk")
			res.Total = 0
			res.Outcome = OutcomeParseError
			res.Err = fmt.Errorf("%w: %v", ErrParse, err)
			return res
		}
		page := Record(obj)

		if apiErr := serviceError(page); apiErr != nil {
			c.log.Warn().Str("status", apiErr.Status).Str("msg", apiErr.Message).Msg("service reported an error")
			res.Records = nil
			res.Total = 0
			res.Outcome = OutcomeAPIError
			res.Err = apiErr
			return res
		}

		hits := page.Map("hits")
		links := page.Map("links")

		if hits == nil && links == nil {
			// Single-record lookup without the search envelope.
			res.Records = append(res.Records, page)
			res.Total = 1
			c.log.Info().Int("page", i+1).Msg("fetched single record")
			return res
		}

		if hits != nil {
			res.Records = append(res.Records, hits.Slice("hits")...)
			if i == 0 {
				if total, ok := hits.Int("total"); ok {
					res.Total = total
				}
			}
		}

		current = ""
		if links != nil {
			current = links.String("next")
		}

		c.log.Info().Int("page", i+1).Int("accumulated", len(res.Records)).Int("total", res.Total).
			Msg("fetched page")
	}

	return res
}

// serviceError recognizes the API-level error envelope: a valid JSON object
// carrying a status/message pair.
func serviceError(page Record) *APIError {
	message := page.String("message")
	if message == "" {
		return nil
	}
	status := page.String("status")
	if status == "" {
		if n, ok := page.Int("status"); ok {
			status = fmt.Sprintf("%d", n)
		}
	}
	if status == "" {
		return nil
	}
	return &APIError{Status: status, Message: message}
}
