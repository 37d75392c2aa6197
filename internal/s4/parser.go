// Package s4 parses Form S-4 registration statements filed for mergers and
// acquisitions into a structured deal record.
//
// S-4 prose has no dependable item numbering, so every sub-extractor runs
// over the whole document. Each one tolerates missing data: absent values
// are nil or empty rather than errors.
package s4

import (
	"time"

	"github.com/seenimoa/alphavault/internal/dealscore"
	"github.com/seenimoa/alphavault/internal/extract"
	"github.com/seenimoa/alphavault/internal/refdata"
	"github.com/seenimoa/alphavault/pkg/models"
)

// Defaults for Parser.
const (
	DefaultMinLength     = 1000
	DefaultExcerptLength = 500
)

// Parser parses S-4 text. It holds no per-call state and is safe for
// concurrent use.
type Parser struct {
	ref        *refdata.Data
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
		minLength:  DefaultMinLength,
		excerptLen: DefaultExcerptLength,
		now:        time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse extracts a deal record from S-4 text. Text shorter than the minimum
// length yields a *models.ParseError of kind DocumentTooShort.
func (p *Parser) Parse(text string) (*models.S4Record, error) {
	if len(text) < p.minLength {
		return nil, models.NewTooShortError(models.FormS4, text, p.minLength, p.excerptLen)
	}

	rec := &models.S4Record{
		Metadata:           p.metadata(text),
		DealStructure:      dealStructure(text),
		FinancialTerms:     financialTerms(text),
		Parties:            parties(text),
		Advisors:           p.advisors(text),
		Regulatory:         regulatoryApprovals(text),
		ClosingConditions:  closingConditions(text),
		Synergies:          synergies(text),
		RiskFactors:        riskFactors(text),
		TerminationClauses: terminationClauses(text),
		ShareholderInfo:    shareholderInfo(text),
		Exhibits:           extract.Exhibits(text),
	}
	if rec.Exhibits == nil {
		rec.Exhibits = []models.Exhibit{}
	}
	rec.DealStructure.AcquirerName = rec.Parties.Acquirer
	rec.DealStructure.TargetName = rec.Parties.Target
	rec.FinancialTerms.BreakUpFeePercentage = dealscore.BreakUpFeePercentage(rec)
	rec.Analytics = dealscore.Analyze(rec)
	return rec, nil
}

// ParseFiling parses raw.Text and fills metadata the document header lacks
// from the filing envelope.
func (p *Parser) ParseFiling(raw models.RawFiling) (*models.S4Record, error) {
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

func (p *Parser) metadata(text string) models.FilingMetadata {
	md := extract.Header(text)
	md.FormType = models.FormS4
	md.ParsedAt = p.now().UTC()
	return md
}

func (p *Parser) advisors(text string) models.Advisors {
	a := models.Advisors{
		FinancialAdvisors: p.ref.MatchBanks(text),
		LegalCounsel:      p.ref.MatchLawFirms(text),
	}
	if a.FinancialAdvisors == nil {
		a.FinancialAdvisors = []string{}
	}
	if a.LegalCounsel == nil {
		a.LegalCounsel = []string{}
	}
	// Positional attribution: first match acquirer side, second target side.
	if len(a.FinancialAdvisors) > 0 {
		a.AcquirerFinancialAdvisor = a.FinancialAdvisors[0]
	}
	if len(a.FinancialAdvisors) > 1 {
		a.TargetFinancialAdvisor = a.FinancialAdvisors[1]
	}
	if len(a.LegalCounsel) > 0 {
		a.AcquirerLegalCounsel = a.LegalCounsel[0]
	}
	if len(a.LegalCounsel) > 1 {
		a.TargetLegalCounsel = a.LegalCounsel[1]
	}
	return a
}
