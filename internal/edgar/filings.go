package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/seenimoa/alphavault/internal/filingtext"
	"github.com/seenimoa/alphavault/internal/infra"
	"github.com/seenimoa/alphavault/pkg/models"
	"github.com/seenimoa/alphavault/pkg/utils"
)

// ResolveCIK maps a ticker to its 10-digit CIK. Numeric input (with or
// without a "CIK" prefix) is taken as a CIK and only padded.
func (c *Client) ResolveCIK(ctx context.Context, ticker string) (string, error) {
	if cik, err := utils.PadCIK(ticker); err == nil {
		return cik, nil
	}
	symbol := utils.NormalizeTicker(ticker)
	if symbol == "" {
		return "", fmt.Errorf("%w: empty ticker", ErrCIKNotFound)
	}

	tickers, err := infra.Fetch(c.cache, "tickers", func() (map[string]string, error) {
		return c.loadTickers(ctx)
	})
	if err != nil {
		return "", err
	}
	cik, ok := tickers[symbol]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCIKNotFound, symbol)
	}
	return cik, nil
}

func (c *Client) loadTickers(ctx context.Context) (map[string]string, error) {
	body, err := c.get(ctx, c.tickersURL)
	if err != nil {
		return nil, err
	}
	var raw map[string]tickerEntry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("edgar: parse ticker map: %w: %w", models.ErrUpstreamFetch, err)
	}
	out := make(map[string]string, len(raw))
	for _, e := range raw {
		cik, err := utils.PadCIK(strconv.FormatInt(e.CIK, 10))
		if err != nil {
			continue
		}
		out[utils.NormalizeTicker(e.Ticker)] = cik
	}
	return out, nil
}

// Submissions returns the submissions file for a CIK.
func (c *Client) Submissions(ctx context.Context, cik string) (*Submissions, error) {
	padded, err := utils.PadCIK(cik)
	if err != nil {
		return nil, fmt.Errorf("edgar: %w", err)
	}
	return infra.Fetch(c.cache, "submissions:"+padded, func() (*Submissions, error) {
		body, err := c.get(ctx, c.dataURL+"/submissions/CIK"+padded+".json")
		if err != nil {
			return nil, err
		}
		var s Submissions
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, fmt.Errorf("edgar: parse submissions for %s: %w: %w", padded, models.ErrUpstreamFetch, err)
		}
		return &s, nil
	})
}

// Filings lists a company's recent filings of the given forms (all forms
// when none are given) filed at or after since, newest first.
func (c *Client) Filings(ctx context.Context, ticker string, forms []models.FormType, since time.Time) ([]models.FilingSummary, error) {
	cik, err := c.ResolveCIK(ctx, ticker)
	if err != nil {
		return nil, err
	}
	subs, err := c.Submissions(ctx, cik)
	if err != nil {
		return nil, err
	}

	want := make(map[models.FormType]bool, len(forms))
	for _, f := range forms {
		want[f] = true
	}

	recent := subs.Filings.Recent
	out := []models.FilingSummary{}
	for i := 0; i < recent.Len(); i++ {
		form := models.FormType(strings.TrimSpace(at(recent.Form, i)))
		if len(want) > 0 && !want[form] {
			continue
		}
		filed, err := utils.ParseFilingDate(at(recent.FilingDate, i))
		if err != nil {
			continue
		}
		if !since.IsZero() && filed.Before(since) {
			continue
		}
		accession := at(recent.AccessionNumber, i)
		doc := at(recent.PrimaryDocument, i)
		f := models.FilingSummary{
			CIK:             cik,
			CompanyName:     subs.Name,
			FormType:        form,
			AccessionNumber: accession,
			FiledDate:       filed,
			Summary:         at(recent.PrimaryDocDescription, i),
			Items:           splitItems(at(recent.Items, i)),
			PrimaryDocument: doc,
			URL:             c.DocumentURL(cik, accession, doc),
		}
		classify(&f)
		out = append(out, f)
	}
	return out, nil
}

// RecentEightKs lists 8-K and 8-K/A filings since the given time.
func (c *Client) RecentEightKs(ctx context.Context, ticker string, since time.Time) ([]models.FilingSummary, error) {
	return c.Filings(ctx, ticker, []models.FormType{models.Form8K, models.Form8KA}, since)
}

// S4Filings lists S-4 and S-4/A registrations since the given time.
func (c *Client) S4Filings(ctx context.Context, ticker string, since time.Time) ([]models.FilingSummary, error) {
	return c.Filings(ctx, ticker, []models.FormType{models.FormS4, models.FormS4A}, since)
}

// DocumentURL builds the archive URL of a filing's primary document.
func (c *Client) DocumentURL(cik, accession, doc string) string {
	if accession == "" || doc == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s/%s",
		strings.TrimRight(c.archivesURL, "/"),
		utils.TrimCIK(cik),
		strings.ReplaceAll(accession, "-", ""),
		doc,
	)
}

// FetchDocument downloads a filing's primary document and returns its
// normalized text.
func (c *Client) FetchDocument(ctx context.Context, f models.FilingSummary) (models.RawFiling, error) {
	url := f.URL
	if url == "" {
		url = c.DocumentURL(f.CIK, f.AccessionNumber, f.PrimaryDocument)
	}
	if url == "" {
		return models.RawFiling{}, fmt.Errorf("edgar: filing %s has no document URL", f.AccessionNumber)
	}
	body, err := c.get(ctx, url)
	if err != nil {
		return models.RawFiling{}, err
	}
	text, err := filingtext.Normalize(string(body))
	if err != nil {
		return models.RawFiling{}, fmt.Errorf("edgar: normalize %s: %w", url, err)
	}
	return models.RawFiling{
		Text:            text,
		FormType:        f.FormType,
		CIK:             f.CIK,
		AccessionNumber: f.AccessionNumber,
		FiledDate:       f.FiledDate,
	}, nil
}

// splitItems parses the submissions "items" column, e.g. "1.01,9.01".
func splitItems(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, it := range strings.Split(s, ",") {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// classify sets the deal flags from the form type and item numbers.
func classify(f *models.FilingSummary) {
	switch f.FormType {
	case models.FormS4, models.FormS4A, models.Form425, models.FormSCTOT, models.FormDEFM14:
		f.IsAcquisition = true
	}
	if f.HasItem("2.01") {
		f.IsAcquisition = true
	}
	f.IsMaterialAgreement = f.HasItem("1.01")
	f.IsLeadershipChange = f.HasItem("5.02")
}
