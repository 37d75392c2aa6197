// Package form8k parses Form 8-K current reports.
//
// Each supported item has its own sub-parser. A sub-parser first checks for
// the "Item N.NN" heading and returns nil when it is absent; otherwise it
// extracts fields from that item's section only, so values from one item
// never leak into another.
package form8k

import (
	"strings"
	"time"

	"github.com/seenimoa/alphavault/internal/extract"
	"github.com/seenimoa/alphavault/internal/refdata"
	"github.com/seenimoa/alphavault/pkg/models"
)

// Defaults for Parser.
const (
	DefaultMinLength     = 500
	DefaultExcerptLength = 500
	summaryLength        = 400
)

// Parser parses 8-K text. It is safe for concurrent use.
type Parser struct {
	ref        *refdata.Data
	seg        extract.Segmenter
	minLength  int
	excerptLen int
	now        func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithMinLength sets the shortest document accepted.
func WithMinLength(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.minLength = n
		}
	}
}

// WithExcerptLength sets how much input a ParseError keeps.
func WithExcerptLength(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.excerptLen = n
		}
	}
}

// WithSectionCap bounds the length of a trailing item section.
func WithSectionCap(n int) Option {
	return func(p *Parser) { p.seg = extract.NewSegmenter(n) }
}

// WithClock sets the clock used for Metadata.ParsedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a Parser. A nil ref uses the embedded reference data.
func New(ref *refdata.Data, opts ...Option) *Parser {
	if ref == nil {
		ref = refdata.Default()
	}
	p := &Parser{
		ref:        ref,
		seg:        extract.NewSegmenter(0),
		minLength:  DefaultMinLength,
		excerptLen: DefaultExcerptLength,
		now:        time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse extracts a structured record from 8-K text. Text shorter than the
// minimum length yields a *models.ParseError of kind DocumentTooShort.
func (p *Parser) Parse(text string) (*models.Form8KRecord, error) {
	if len(text) < p.minLength {
		return nil, models.NewTooShortError(models.Form8K, text, p.minLength, p.excerptLen)
	}

	md := extract.Header(text)
	md.FormType = models.Form8K
	md.ParsedAt = p.now().UTC()

	rec := &models.Form8KRecord{
		Metadata:  md,
		Items:     p.items(text),
		EventDate: coverRules.Get("event_date").Date(text),

		Item101: p.item101(text),
		Item102: p.item102(text),
		Item103: p.item103(text),
		Item201: p.item201(text),
		Item202: p.item202(text),
		Item203: p.item203(text),
		Item205: p.item205(text),
		Item206: p.item206(text),
		Item301: p.item301(text),
		Item401: p.item401(text),
		Item402: p.item402(text),
		Item501: p.item501(text),
		Item502: p.item502(text),
		Item507: p.item507(text),
		Item701: p.disclosure(text, "7.01"),
		Item801: p.disclosure(text, "8.01"),
		Item901: p.item901(text),

		Signatures: signatures(text),
	}

	rec.Acquisitions = acquisitions(rec)
	rec.MaterialAgreements = materialAgreements(rec)
	rec.LeadershipChanges = leadershipChanges(rec)
	rec.FinancialResults = rec.Item202
	if rec.Item901 != nil && len(rec.Item901.Exhibits) > 0 {
		rec.Exhibits = rec.Item901.Exhibits
	} else {
		rec.Exhibits = extract.Exhibits(text)
	}
	if rec.Exhibits == nil {
		rec.Exhibits = []models.Exhibit{}
	}

	rec.CriticalFlags = criticalFlags(text, rec)
	rec.Analytics = p.analyze(rec)
	return rec, nil
}

// ParseFiling parses raw.Text and fills metadata the document header lacks
// from the filing envelope.
func (p *Parser) ParseFiling(raw models.RawFiling) (*models.Form8KRecord, error) {
	rec, err := p.Parse(raw.Text)
	if err != nil {
		return nil, err
	}
	md := &rec.Metadata
	if md.CIK == "" {
		md.CIK = raw.CIK
	}
	if md.AccessionNumber == "" {
		md.AccessionNumber = raw.AccessionNumber
	}
	if md.FilingDate == "" && !raw.FiledDate.IsZero() {
		md.FilingDate = raw.FiledDate.Format("2006-01-02")
	}
	if raw.FormType != "" {
		md.FormType = raw.FormType
	}
	return rec, nil
}

func (p *Parser) items(text string) []models.Item8K {
	out := []models.Item8K{}
	for _, n := range extract.ItemNumbers(text) {
		out = append(out, models.Item8K{
			ItemNumber:  n,
			Description: p.ref.ItemDescription(n),
			FullText:    p.seg.ItemSection(text, n),
		})
	}
	return out
}

// maxHeadingLine bounds how far the heading title may run before the body.
const maxHeadingLine = 300

// section returns the body of item n below its heading, or ok=false when
// the item is absent. The heading title is dropped: up to the end of the
// line, or the reference description when the text has no line breaks.
func (p *Parser) section(text, n string) (body string, ok bool) {
	sec := p.seg.ItemSection(text, n)
	if sec == "" {
		return "", false
	}
	if loc := extract.ItemRegexp(n).FindStringIndex(sec); loc != nil {
		sec = sec[loc[1]:]
	}
	if nl := strings.IndexByte(sec, '\n'); nl >= 0 && nl <= maxHeadingLine {
		sec = sec[nl+1:]
	} else {
		sec = strings.TrimLeft(sec, " \t.:-–")
		if desc := p.ref.ItemDescription(n); len(sec) >= len(desc) && strings.EqualFold(sec[:len(desc)], desc) {
			sec = sec[len(desc):]
		}
	}
	return strings.TrimSpace(strings.TrimLeft(sec, " \t.:;-–")), true
}

func summary(body string) string {
	return extract.Summary(body, summaryLength)
}
