package s4

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/seenimoa/alphavault/pkg/models"
)

const fixture = `COMPANY CONFORMED NAME:			ALPHA HOLDINGS INC
CENTRAL INDEX KEY:			0001234567
STANDARD INDUSTRIAL CLASSIFICATION:	SERVICES-PREPACKAGED SOFTWARE [7372]
IRS NUMBER:				941234567
STATE OF INCORPORATION:			DE
FISCAL YEAR END:			1231
ACCESSION NUMBER:		0001193125-24-012345
FILED AS OF DATE:		20240115

AGREEMENT AND PLAN OF MERGER

This Agreement and Plan of Merger, dated as of January 5, 2024, is entered into by and among Alpha Holdings, Inc., a Delaware corporation ("Parent"), Falcon Merger Sub, Inc., a Delaware corporation ("Merger Sub"), and Beta Systems Corp., a Delaware corporation (the "Company").

Merger Sub will merge with and into the Company, with Beta Systems Corp. continuing as the surviving corporation. The merger is expected to close in the second half of 2024.

Holders of Company common stock will receive $45.00 per share in cash and 0.5 shares of Parent common stock for each share held. The exchange ratio of 0.5000 is fixed. The aggregate consideration of approximately $1,500 million represents a premium of approximately 32% over the unaffected price and implies an enterprise value of approximately $1.8 billion.

Parent has obtained a commitment letter for a senior unsecured bridge facility of $1.0 billion, which together with cash on hand will fund the cash consideration.

Goldman Sachs & Co. LLC is acting as financial advisor to Parent and Morgan Stanley & Co. LLC is acting as financial advisor to the Company. Wachtell, Lipton, Rosen & Katz is serving as legal counsel to Parent and Skadden, Arps, Slate, Meagher & Flom LLP is serving as legal counsel to the Company.

CONDITIONS TO THE MERGER
Completion of the merger is subject to the expiration or termination of the waiting period under the Hart-Scott-Rodino Antitrust Improvements Act of 1976 and clearance by the European Commission; approval of the Company stockholders; the registration statement on Form S-4 having been declared effective; the shares of Parent common stock to be issued having been approved for listing on the NYSE; no law or order prohibiting the merger; the absence of a material adverse effect; the accuracy of the representations and warranties; and performance in all material respects of covenants. The merger is intended to qualify as a "reorganization" for federal income tax purposes.

The combination is expected to generate annual run-rate cost synergies of approximately $150 million within three years after closing, primarily from procurement and the elimination of overlapping corporate functions.

RISK FACTORS
The combined company may fail to successfully integrate the businesses of Parent and the Company. The market price of Parent common stock may decline. The combined company may be unable to retain key employees. Litigation relating to the merger could delay completion. The combined company will have substantial indebtedness.

TERMINATION
If the merger has not been completed by October 5, 2024, either party may terminate the merger agreement. Upon termination in certain circumstances the Company will be required to pay Parent a termination fee of $52.5 million. Parent will be required to pay the Company a reverse termination fee of $105 million if antitrust clearance is not obtained. The Company is subject to customary no-shop restrictions but may accept a Superior Proposal, subject to Parent's matching rights.

THE SPECIAL MEETING
The special meeting of Company stockholders will be held on March 15, 2024. Only holders of record at the close of business on February 1, 2024 are entitled to vote. Adoption of the merger agreement requires the affirmative vote of the holders of a majority of the outstanding shares of Company common stock. Certain stockholders holding approximately 12% of the outstanding shares have entered into voting agreements. Company stockholders are entitled to appraisal rights under Section 262 of the DGCL.

EXHIBIT INDEX
2.1 Agreement and Plan of Merger, dated as of January 5, 2024
5.1 Opinion of Wachtell, Lipton, Rosen & Katz
23.1 Consent of Ernst & Young LLP
`

var fixedNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func newTestParser() *Parser {
	return New(nil, WithClock(func() time.Time { return fixedNow }))
}

func mustParse(t *testing.T) *models.S4Record {
	t.Helper()
	rec, err := newTestParser().Parse(fixture)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return rec
}

// ── Errors ──

func TestParseTooShort(t *testing.T) {
	text := strings.Repeat("x", 999)
	rec, err := newTestParser().Parse(text)
	if rec != nil {
		t.Errorf("record: got %+v, want nil", rec)
	}
	if !errors.Is(err, models.ErrDocumentTooShort) {
		t.Fatalf("err: got %v, want ErrDocumentTooShort", err)
	}
	var pe *models.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err is not *models.ParseError: %T", err)
	}
	if pe.Kind != models.KindDocumentTooShort || len(pe.RawText) != DefaultExcerptLength {
		t.Errorf("ParseError: kind %q excerpt %d", pe.Kind, len(pe.RawText))
	}
}

func TestParseMinLengthOption(t *testing.T) {
	p := New(nil, WithMinLength(10))
	if _, err := p.Parse("short but long enough"); err != nil {
		t.Errorf("Parse with WithMinLength(10): %v", err)
	}
}

// ── Full document ──

func TestParseMetadata(t *testing.T) {
	md := mustParse(t).Metadata
	tests := []struct{ field, got, want string }{
		{"CompanyName", md.CompanyName, "ALPHA HOLDINGS INC"},
		{"CIK", md.CIK, "0001234567"},
		{"IRSNumber", md.IRSNumber, "941234567"},
		{"StateOfIncorporation", md.StateOfIncorporation, "DE"},
		{"FiscalYearEnd", md.FiscalYearEnd, "1231"},
		{"SIC", md.SIC, "7372"},
		{"AccessionNumber", md.AccessionNumber, "0001193125-24-012345"},
		{"FilingDate", md.FilingDate, "20240115"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.field, tt.got, tt.want)
		}
	}
	if !md.ParsedAt.Equal(fixedNow) {
		t.Errorf("ParsedAt: got %v, want %v", md.ParsedAt, fixedNow)
	}
}

func TestParseDealStructureAndParties(t *testing.T) {
	rec := mustParse(t)
	ds := rec.DealStructure
	if ds.DealType != models.DealMerger {
		t.Errorf("DealType: got %q, want merger", ds.DealType)
	}
	wantPay := []models.PaymentType{models.PaymentCash, models.PaymentStock, models.PaymentMixed}
	if !reflect.DeepEqual(ds.PaymentStructure, wantPay) {
		t.Errorf("PaymentStructure: got %v, want %v", ds.PaymentStructure, wantPay)
	}
	if ds.AgreementDate != "January 5, 2024" {
		t.Errorf("AgreementDate: got %q", ds.AgreementDate)
	}
	if ds.EffectiveDate != "second half of 2024" {
		t.Errorf("EffectiveDate: got %q", ds.EffectiveDate)
	}
	if ds.SurvivingEntity != "Beta Systems Corp." {
		t.Errorf("SurvivingEntity: got %q", ds.SurvivingEntity)
	}
	p := rec.Parties
	if p.Acquirer != "Alpha Holdings, Inc." || ds.AcquirerName != p.Acquirer {
		t.Errorf("Acquirer: got %q / %q", p.Acquirer, ds.AcquirerName)
	}
	if p.Target != "Beta Systems Corp." {
		t.Errorf("Target: got %q", p.Target)
	}
	if p.MergerSub != "Falcon Merger Sub, Inc." {
		t.Errorf("MergerSub: got %q", p.MergerSub)
	}
}

func TestDealTypeClassification(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.DealType
	}{
		{
			"merger with acquisition proposal boilerplate",
			`This Agreement and Plan of Merger is entered into by Parent and the Company. "Acquisition Proposal" means any inquiry, proposal or offer relating to any tender offer or exchange offer that, if consummated, would result in any person owning 20% or more of the Company common stock.`,
			models.DealMerger,
		},
		{
			"two-step tender offer",
			"Purchaser will commence a tender offer to acquire all outstanding shares, to be followed by the merger of Purchaser with and into the Company.",
			models.DealTenderOffer,
		},
		{
			"exchange offer",
			"Parent is making an offer to exchange all outstanding shares of Company common stock for shares of Parent common stock.",
			models.DealTenderOffer,
		},
		{
			"reverse merger",
			"Upon completion of the reverse merger, former Company stockholders will own 80% of the combined company.",
			models.DealReverseMerger,
		},
		{
			"spac",
			"This Business Combination Agreement provides for the combination of the SPAC and the Company.",
			models.DealBusinessCombination,
		},
		{"acquisition", "Parent agreed to acquire the assets of the seller.", models.DealAcquisition},
		{"none", "The registrant is offering shares of common stock.", models.DealUnknown},
	}
	for _, tt := range tests {
		if got := dealStructure(tt.text).DealType; got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseFinancialTerms(t *testing.T) {
	ft := mustParse(t).FinancialTerms
	if ft.DealValue == nil || ft.DealValue.Value != 1500 || ft.DealValue.Currency != "USD" {
		t.Errorf("DealValue: got %+v, want 1500 USD", ft.DealValue)
	}
	if ft.BreakUpFee == nil || ft.BreakUpFee.Value != 52.5 {
		t.Errorf("BreakUpFee: got %+v, want 52.5", ft.BreakUpFee)
	}
	if ft.BreakUpFeePercentage == nil || *ft.BreakUpFeePercentage != 3.5 {
		t.Errorf("BreakUpFeePercentage: got %v, want 3.5", ft.BreakUpFeePercentage)
	}
	if ft.ExchangeRatio == nil || *ft.ExchangeRatio != 0.5 {
		t.Errorf("ExchangeRatio: got %v, want 0.5", ft.ExchangeRatio)
	}
	if ft.PremiumOffered == nil || *ft.PremiumOffered != 32 {
		t.Errorf("PremiumOffered: got %v, want 32", ft.PremiumOffered)
	}
	if ft.PricePerShare == nil || *ft.PricePerShare != 45 {
		t.Errorf("PricePerShare: got %v, want 45", ft.PricePerShare)
	}
	if ft.EnterpriseValue == nil || ft.EnterpriseValue.Value != 1800 {
		t.Errorf("EnterpriseValue: got %+v, want 1800", ft.EnterpriseValue)
	}
	if ft.EquityValue != nil {
		t.Errorf("EquityValue: got %+v, want nil", ft.EquityValue)
	}
	fin := ft.Financing
	if fin.DebtFinancing == nil || fin.DebtFinancing.Value != 1000 || !fin.Committed || !fin.CashOnHand {
		t.Errorf("Financing: got %+v", fin)
	}
}

func TestParseAdvisorsPositional(t *testing.T) {
	a := mustParse(t).Advisors
	if a.AcquirerFinancialAdvisor != "Goldman Sachs" || a.TargetFinancialAdvisor != "Morgan Stanley" {
		t.Errorf("financial advisors: got %q / %q", a.AcquirerFinancialAdvisor, a.TargetFinancialAdvisor)
	}
	if a.AcquirerLegalCounsel != "Wachtell, Lipton" || a.TargetLegalCounsel != "Skadden" {
		t.Errorf("legal counsel: got %q / %q", a.AcquirerLegalCounsel, a.TargetLegalCounsel)
	}
}

func TestParseRegulatoryAndConditions(t *testing.T) {
	rec := mustParse(t)
	var got []models.Authority
	for _, r := range rec.Regulatory {
		got = append(got, r.Authority)
		if !r.Required || r.Description == "" {
			t.Errorf("approval %q: %+v", r.Authority, r)
		}
	}
	want := []models.Authority{models.AuthorityFTC, models.AuthorityDOJ, models.AuthoritySEC, models.AuthorityEC, models.AuthorityShareholders}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Regulatory: got %v, want %v", got, want)
	}

	var types []string
	for _, c := range rec.ClosingConditions {
		types = append(types, c.Type)
		if c.Satisfied {
			t.Errorf("condition %q should not be satisfied", c.Type)
		}
	}
	wantTypes := []string{"regulatory", "shareholder_approval", "registration_effectiveness", "listing",
		"no_injunction", "no_material_adverse_effect", "representations", "covenants", "tax_opinion"}
	if !reflect.DeepEqual(types, wantTypes) {
		t.Errorf("ClosingConditions: got %v, want %v", types, wantTypes)
	}
}

func TestParseSynergies(t *testing.T) {
	s := mustParse(t).Synergies
	if s.Cost == nil || s.Cost.Value != 150 {
		t.Errorf("Cost: got %+v, want 150", s.Cost)
	}
	if s.Total == nil || s.Total.Value != 150 {
		t.Errorf("Total: got %+v, want derived 150", s.Total)
	}
	if s.Revenue != nil {
		t.Errorf("Revenue: got %+v, want nil", s.Revenue)
	}
	if s.Timeframe != "three years after closing" {
		t.Errorf("Timeframe: got %q", s.Timeframe)
	}
	if !reflect.DeepEqual(s.Sources, []string{"procurement", "corporate overhead"}) {
		t.Errorf("Sources: got %v", s.Sources)
	}
}

func TestParseRiskFactors(t *testing.T) {
	rf := mustParse(t).RiskFactors
	if !rf.Integration || !rf.Regulatory || !rf.Market || !rf.Retention || !rf.Litigation || !rf.Debt {
		t.Errorf("expected flags missing: %+v", rf)
	}
	if rf.Competition || rf.Technology || rf.Operational || rf.Financial {
		t.Errorf("unexpected flags: %+v", rf)
	}
	if rf.Count != 6 || rf.RiskLevel != models.RiskMedium {
		t.Errorf("Count/Level: got %d %q, want 6 MEDIUM", rf.Count, rf.RiskLevel)
	}
}

func TestRiskLevelThresholds(t *testing.T) {
	tests := []struct {
		count int
		want  models.RiskLevel
	}{{0, models.RiskLow}, {4, models.RiskLow}, {5, models.RiskMedium}, {7, models.RiskMedium}, {8, models.RiskHigh}}
	for _, tt := range tests {
		if got := RiskLevel(tt.count); got != tt.want {
			t.Errorf("RiskLevel(%d): got %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestParseTerminationAndShareholders(t *testing.T) {
	rec := mustParse(t)
	tc := rec.TerminationClauses
	if tc.OutsideDate != "October 5, 2024" {
		t.Errorf("OutsideDate: got %q", tc.OutsideDate)
	}
	if tc.TerminationFee == nil || tc.TerminationFee.Value != 52.5 {
		t.Errorf("TerminationFee: got %+v", tc.TerminationFee)
	}
	if tc.ReverseTerminationFee == nil || tc.ReverseTerminationFee.Value != 105 {
		t.Errorf("ReverseTerminationFee: got %+v", tc.ReverseTerminationFee)
	}
	if !tc.FiduciaryOut || !tc.MatchingRights || !tc.NoShop || tc.GoShop {
		t.Errorf("clauses: got %+v", tc)
	}

	sh := rec.ShareholderInfo
	if !sh.VoteRequired || !sh.VotingAgreements || !sh.AppraisalRights {
		t.Errorf("shareholder flags: got %+v", sh)
	}
	if sh.MeetingDate != "March 15, 2024" || sh.RecordDate != "February 1, 2024" {
		t.Errorf("dates: got %q / %q", sh.MeetingDate, sh.RecordDate)
	}
	if sh.RequiredVote != "a majority of the outstanding shares of Company common stock" {
		t.Errorf("RequiredVote: got %q", sh.RequiredVote)
	}
	if sh.SupportPercentage == nil || *sh.SupportPercentage != 12 {
		t.Errorf("SupportPercentage: got %v, want 12", sh.SupportPercentage)
	}
}

func TestParseExhibits(t *testing.T) {
	ex := mustParse(t).Exhibits
	if len(ex) != 3 {
		t.Fatalf("Exhibits: got %d, want 3: %+v", len(ex), ex)
	}
	if ex[0].Number != "2.1" || !strings.HasPrefix(ex[0].Description, "Agreement and Plan of Merger") {
		t.Errorf("Exhibits[0]: got %+v", ex[0])
	}
	if ex[2].Number != "23.1" {
		t.Errorf("Exhibits[2]: got %+v", ex[2])
	}
}

func TestParseAnalytics(t *testing.T) {
	a := mustParse(t).Analytics
	want := models.DealAnalytics{
		DealQualityScore:        100,
		CompletionProbability:   75, // 70 + 15 fee + 10 votes - 20 for five approvals
		EstimatedTimelineMonths: 23, // 6 + 6 antitrust + 9 EC + 2 vote
		RiskScore:               70, // 6×5 + 5×8
		AdvisorPrestigeScore:    100,
	}
	a.BreakUpFeePercentage = nil
	if a != want {
		t.Errorf("Analytics: got %+v, want %+v", a, want)
	}
}

// ── Properties ──

func TestParseIdempotent(t *testing.T) {
	p := newTestParser()
	a, err := p.Parse(fixture)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Parse(fixture)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two parses of the same text differ")
	}
}

func TestParseAbsentData(t *testing.T) {
	text := strings.Repeat("The parties discussed various matters. ", 40)
	rec, err := newTestParser().Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.DealStructure.DealType != models.DealUnknown {
		t.Errorf("DealType: got %q, want unknown", rec.DealStructure.DealType)
	}
	if rec.FinancialTerms.DealValue != nil || rec.FinancialTerms.BreakUpFeePercentage != nil {
		t.Errorf("FinancialTerms: got %+v", rec.FinancialTerms)
	}
	if len(rec.Regulatory) != 0 || len(rec.ClosingConditions) != 0 || len(rec.Exhibits) != 0 {
		t.Errorf("collections should be empty: %+v", rec)
	}
	if rec.Regulatory == nil || rec.Advisors.FinancialAdvisors == nil {
		t.Error("empty collections should be non-nil")
	}
	if rec.RiskFactors.RiskLevel != models.RiskLow {
		t.Errorf("RiskLevel: got %q", rec.RiskFactors.RiskLevel)
	}
	if rec.Analytics.DealQualityScore != 50 || rec.Analytics.CompletionProbability != 70 || rec.Analytics.EstimatedTimelineMonths != 6 {
		t.Errorf("Analytics: got %+v", rec.Analytics)
	}
}

func TestParseFiling(t *testing.T) {
	raw := models.RawFiling{
		Text:      strings.Replace(fixture, "0001234567", "", 1),
		FormType:  models.FormS4A,
		CIK:       "0009999999",
		FiledDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	rec, err := newTestParser().ParseFiling(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Metadata.CIK != "0009999999" {
		t.Errorf("CIK: got %q", rec.Metadata.CIK)
	}
	if rec.Metadata.FilingDate != "20240115" {
		t.Errorf("FilingDate should keep header value, got %q", rec.Metadata.FilingDate)
	}
	if rec.Metadata.FormType != models.FormS4A {
		t.Errorf("FormType: got %q", rec.Metadata.FormType)
	}
}
