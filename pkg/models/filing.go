package models

import (
	"errors"
	"fmt"
	"time"
)

// FormType identifies an SEC form.
type FormType string

const (
	FormS4     FormType = "S-4"
	FormS4A    FormType = "S-4/A"
	Form8K     FormType = "8-K"
	Form8KA    FormType = "8-K/A"
	Form425    FormType = "425"
	FormDEFM14 FormType = "DEFM14A"
	FormPREM14 FormType = "PREM14A"
	FormSCTOT  FormType = "SC TO-T"
	FormSC14D9 FormType = "SC 14D9"
	FormSC13D  FormType = "SC 13D"
	Form10K    FormType = "10-K"
	Form10Q    FormType = "10-Q"
)

// RawFiling is the unparsed body of an SEC filing. Parsers never mutate it.
type RawFiling struct {
	Text            string    `json:"text"`
	FormType        FormType  `json:"form_type"`
	CIK             string    `json:"cik"`
	AccessionNumber string    `json:"accession_number"`
	FiledDate       time.Time `json:"filed_date"`
}

// FilingSummary is one entry of a filing list returned by a filing source.
type FilingSummary struct {
	CIK                 string    `json:"cik"`
	CompanyName         string    `json:"company_name,omitempty"`
	FormType            FormType  `json:"form_type"`
	AccessionNumber     string    `json:"accession_number"`
	FiledDate           time.Time `json:"filed_date"`
	Summary             string    `json:"summary,omitempty"`
	Items               []string  `json:"items,omitempty"` // 8-K item numbers, e.g. "1.01"
	PrimaryDocument     string    `json:"primary_document,omitempty"`
	URL                 string    `json:"url,omitempty"`
	IsAcquisition       bool      `json:"is_acquisition"`
	IsLeadershipChange  bool      `json:"is_leadership_change"`
	IsMaterialAgreement bool      `json:"is_material_agreement"`
}

// HasItem reports whether the filing lists the given 8-K item number.
func (f FilingSummary) HasItem(item string) bool {
	for _, it := range f.Items {
		if it == item {
			return true
		}
	}
	return false
}

// Money is a dollar amount extracted from filing prose.
// Value is expressed in millions of USD ("$2.5 billion" → 2500).
type Money struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
	Raw      string  `json:"raw,omitempty"`
}

// FilingMetadata identifies the filer and the submission.
type FilingMetadata struct {
	CompanyName          string    `json:"company_name,omitempty"`
	CIK                  string    `json:"cik,omitempty"`
	IRSNumber            string    `json:"irs_number,omitempty"`
	StateOfIncorporation string    `json:"state_of_incorporation,omitempty"`
	FiscalYearEnd        string    `json:"fiscal_year_end,omitempty"`
	SIC                  string    `json:"sic,omitempty"`
	AccessionNumber      string    `json:"accession_number,omitempty"`
	FilingDate           string    `json:"filing_date,omitempty"`
	PeriodOfReport       string    `json:"period_of_report,omitempty"`
	FormType             FormType  `json:"form_type"`
	ParsedAt             time.Time `json:"parsed_at"`
}

// Exhibit is an entry of a filing's exhibit index.
type Exhibit struct {
	Number      string `json:"number"`
	Description string `json:"description,omitempty"`
}

// --- Parse errors ---

// ErrorKind classifies a parse or fetch failure.
type ErrorKind string

const (
	KindDocumentTooShort     ErrorKind = "DocumentTooShort"
	KindMissingSection       ErrorKind = "MissingSection"
	KindUpstreamFetchFailure ErrorKind = "UpstreamFetchFailure"
)

var (
	ErrDocumentTooShort = errors.New("document too short")
	ErrMissingSection   = errors.New("section not found")
	ErrUpstreamFetch    = errors.New("upstream fetch failed")
)

// ParseError is the degraded result a parser returns instead of a record.
// It carries an excerpt of the input so callers can show what was rejected.
type ParseError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"error"`
	RawText string    `json:"raw_text,omitempty"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap maps the kind onto its sentinel so errors.Is works.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case KindDocumentTooShort:
		return ErrDocumentTooShort
	case KindMissingSection:
		return ErrMissingSection
	case KindUpstreamFetchFailure:
		return ErrUpstreamFetch
	}
	return nil
}

// NewTooShortError builds the DocumentTooShort error for a parser with the
// given minimum length, keeping at most excerptLen bytes of the input.
func NewTooShortError(form FormType, text string, minLen, excerptLen int) *ParseError {
	return &ParseError{
		Kind:    KindDocumentTooShort,
		Message: fmt.Sprintf("%s document has %d characters, need at least %d", form, len(text), minLen),
		RawText: Excerpt(text, excerptLen),
	}
}

// Excerpt returns at most n bytes of s, cut on a rune boundary.
func Excerpt(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
