package extract

import "github.com/seenimoa/alphavault/pkg/models"

// NameExpr captures a capitalized entity name ("Alpha Holdings, Inc.").
// It is case-sensitive inside otherwise case-insensitive rules.
const NameExpr = `(?-i:([A-Z][A-Za-z0-9.&'-]*(?:,?\s+(?:[A-Z][A-Za-z0-9.&'-]*|of|and|&)){0,7}))`

// EntityDescExpr matches the optional ", a Delaware corporation," that
// follows a party name.
const EntityDescExpr = `,?\s*(?:an?\s+[A-Za-z ]{0,40}?(?:corporation|company|partnership|limited|trust|N\.V\.|plc|S\.A\.),?\s*)?`

// headerRules read the SEC header block and, failing that, the cover page.
var headerRules = Rules{
	NewRule("company_name", KindText,
		`COMPANY CONFORMED NAME:\s*([^\n]+)`,
		`(?m)^\s*`+NameExpr+`\s*\n\s*\(Exact name of registrant`),
	NewRule("cik", KindText, `CENTRAL INDEX KEY:\s*(\d+)`),
	NewRule("irs_number", KindText,
		`IRS NUMBER:\s*(\d+)`,
		`(\d{2}-\d{7})\s*(?:\n\s*)?\(?I\.?R\.?S\.?\s+Employer`),
	NewRule("state_of_incorporation", KindText,
		`STATE OF INCORPORATION:\s*([A-Z]{2})`,
		`(?m)^\s*(Delaware|Nevada|New York|Maryland|Ohio|Texas|California|Pennsylvania|New Jersey)\s*\n[^\n]*\(State or other jurisdiction`),
	NewRule("fiscal_year_end", KindText, `FISCAL YEAR END:\s*(\d{4})`),
	NewRule("accession_number", KindText, `ACCESSION NUMBER:\s*([\d-]+)`),
	NewRule("filing_date", KindText, `FILED AS OF DATE:\s*(\d{8})`),
	NewRule("period_of_report", KindText, `CONFORMED PERIOD OF REPORT:\s*(\d{8})`),
	NewRule("sic", KindText, `STANDARD INDUSTRIAL CLASSIFICATION:[^\[\n]*\[(\d{4})\]`),
}

// Header reads filing metadata from the SEC header. FormType and ParsedAt
// are left for the caller.
func Header(text string) models.FilingMetadata {
	r := headerRules
	return models.FilingMetadata{
		CompanyName:          r.Get("company_name").Text(text),
		CIK:                  r.Get("cik").Text(text),
		IRSNumber:            r.Get("irs_number").Text(text),
		StateOfIncorporation: r.Get("state_of_incorporation").Text(text),
		FiscalYearEnd:        r.Get("fiscal_year_end").Text(text),
		SIC:                  r.Get("sic").Text(text),
		AccessionNumber:      r.Get("accession_number").Text(text),
		FilingDate:           r.Get("filing_date").Text(text),
		PeriodOfReport:       r.Get("period_of_report").Text(text),
	}
}
