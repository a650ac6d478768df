package inspire

import (
	"context"
	"encoding/json"
	"net/url"
)

// maxReferenceHops bounds how many cross-references are followed from a
// conference record to the literature record holding its proceedings title.
// The bound is explicit so a service that ever nests references deeper
// cannot drag the resolver into a chain.
const maxReferenceHops = 1

// ProceedingsTitle resolves the human-readable proceedings title for a
// conference number. When directURL is given it is fetched as the
// literature record directly; otherwise the conferences collection is
// queried for exactly one match whose proceedings reference is followed.
// Results are not cached. Any failure degrades to "" with a logged
// warning; resolution never fails the caller.
func (c *Client) ProceedingsTitle(ctx context.Context, cnum, directURL string) string {
	recordURL := directURL
	if recordURL == "" {
		recordURL = c.proceedingsRecordURL(ctx, cnum)
		if recordURL == "" {
			return ""
		}
	}

	for hop := 0; hop < maxReferenceHops; hop++ {
		title := c.literatureTitle(ctx, recordURL)
		if title != "" {
			return title
		}
	}
	return ""
}

// proceedingsRecordURL looks up the conference by number and returns the
// cross-reference URL of its proceedings record.
func (c *Client) proceedingsRecordURL(ctx context.Context, cnum string) string {
	v := url.Values{}
	v.Set("q", "cnum:"+cnum)
	res := c.FetchPaginated(ctx, c.baseURL+"/conferences?"+v.Encode(), 1)
	if res.Outcome != OutcomeOK || len(res.Records) != 1 {
		c.log.Warn().Str("cnum", cnum).Int("hits", len(res.Records)).
			Str("outcome", res.Outcome.String()).Msg("conference lookup did not yield one record")
		return ""
	}

	procs := res.Records[0].Metadata().Slice("proceedings")
	if len(procs) == 0 {
		c.log.Warn().Str("cnum", cnum).Msg("conference record has no proceedings")
		return ""
	}
	ref := procs[0].Map("record")
	if ref == nil {
		return ""
	}
	return ref.String("$ref")
}

// literatureTitle fetches a literature record and formats its first title
// as "title: subtitle", or just the title without one.
func (c *Client) literatureTitle(ctx context.Context, recordURL string) string {
	text := c.textFrom(ctx, recordURL)
	if text == "" {
		return ""
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		c.log.Warn().Err(err).Str("url", recordURL).Msg("unparseable proceedings record")
		return ""
	}

	titles := Record(obj).Metadata().Slice("titles")
	if len(titles) == 0 {
		return ""
	}
	title := titles[0].String("title")
	if title == "" {
		return ""
	}
	if subtitle := titles[0].String("subtitle"); subtitle != "" {
		return title + ": " + subtitle
	}
	return title
}
