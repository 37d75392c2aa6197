package edgar

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/phuslu/log"

	"github.com/seenimoa/alphavault/internal/extract"
	"github.com/seenimoa/alphavault/internal/filingtext"
	"github.com/seenimoa/alphavault/pkg/models"
	"github.com/seenimoa/alphavault/pkg/utils"
)

// feedCount is how many entries the browse-edgar feed returns.
const feedCount = 40

var (
	accNoRe = regexp.MustCompile(`AccNo:\s*(\d{10}-\d{2}-\d{6})`)
	filedRe = regexp.MustCompile(`Filed:\s*(\d{4}-\d{2}-\d{2})`)
	// Index links end in ".../000119312524123456/0001193125-24-123456-index.htm".
	linkAccNoRe = regexp.MustCompile(`(\d{10}-\d{2}-\d{6})-index`)
)

// FeedURL is the browse-edgar Atom feed of a company's 8-K filings.
func (c *Client) FeedURL(cik string) string {
	q := url.Values{}
	q.Set("action", "getcompany")
	q.Set("CIK", cik)
	q.Set("type", string(models.Form8K))
	q.Set("dateb", "")
	q.Set("owner", "include")
	q.Set("count", fmt.Sprint(feedCount))
	q.Set("output", "atom")
	return c.browseURL + "?" + q.Encode()
}

// MaterialEvents reads the company 8-K Atom feed and returns entries filed
// at or after since, with item numbers and deal flags taken from the entry
// summary.
func (c *Client) MaterialEvents(ctx context.Context, ticker string, since time.Time) ([]models.FilingSummary, error) {
	cik, err := c.ResolveCIK(ctx, ticker)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, c.FeedURL(cik))
	if err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("edgar: parse 8-K feed for %s: %w: %w", cik, models.ErrUpstreamFetch, err)
	}

	company := companyFromFeed(feed.Title)
	out := []models.FilingSummary{}
	for _, item := range feed.Items {
		f, ok := feedFiling(item)
		if !ok {
			continue
		}
		if !since.IsZero() && f.FiledDate.Before(since) {
			continue
		}
		f.CIK = cik
		f.CompanyName = company
		classify(&f)
		out = append(out, f)
	}
	log.Debug().Str("cik", cik).Int("entries", len(feed.Items)).Int("kept", len(out)).Msg("8-K feed read")
	return out, nil
}

// feedFiling converts one Atom entry. Entries without an accession number
// or a filing date are dropped.
func feedFiling(item *gofeed.Item) (models.FilingSummary, bool) {
	raw := item.Description
	if raw == "" {
		raw = item.Content
	}
	text, err := filingtext.Normalize(raw)
	if err != nil {
		text = raw
	}

	accession := extract.Pattern(text, accNoRe, "")
	if accession == "" {
		accession = extract.Pattern(item.Link, linkAccNoRe, "")
	}
	if accession == "" {
		return models.FilingSummary{}, false
	}

	var filed time.Time
	if d := extract.Pattern(text, filedRe, ""); d != "" {
		filed, _ = utils.ParseFilingDate(d)
	}
	if filed.IsZero() {
		switch {
		case item.UpdatedParsed != nil:
			filed = *item.UpdatedParsed
		case item.PublishedParsed != nil:
			filed = *item.PublishedParsed
		default:
			return models.FilingSummary{}, false
		}
	}

	form := models.Form8K
	if len(item.Categories) > 0 && item.Categories[0] != "" {
		form = models.FormType(strings.TrimSpace(item.Categories[0]))
	} else if head, _, ok := strings.Cut(item.Title, " - "); ok {
		form = models.FormType(strings.TrimSpace(head))
	}

	return models.FilingSummary{
		FormType:        form,
		AccessionNumber: accession,
		FiledDate:       filed,
		Summary:         eventSummary(text),
		Items:           extract.ItemNumbers(text),
		URL:             item.Link,
	}, true
}

// eventSummary keeps the item descriptions and drops the Filed/AccNo line.
func eventSummary(text string) string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || strings.Contains(l, "AccNo:") {
			continue
		}
		lines = append(lines, l)
	}
	return extract.Summary(strings.Join(lines, "; "), 300)
}

// companyFromFeed strips the CIK suffix from a feed title such as
// "APPLE INC.  (0000320193)".
func companyFromFeed(title string) string {
	if i := strings.LastIndex(title, "("); i > 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}
