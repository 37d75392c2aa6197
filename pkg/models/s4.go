package models

// DealType classifies the transaction an S-4 registers.
type DealType string

const (
	DealMerger              DealType = "merger"
	DealAcquisition         DealType = "acquisition"
	DealBusinessCombination DealType = "business_combination"
	DealReverseMerger       DealType = "reverse_merger"
	DealTenderOffer         DealType = "tender_offer"
	DealUnknown             DealType = "unknown"
)

// PaymentType is one form of consideration.
type PaymentType string

const (
	PaymentCash  PaymentType = "cash"
	PaymentStock PaymentType = "stock"
	PaymentMixed PaymentType = "mixed"
)

// RiskLevel is the bucketed risk-factor count of an S-4.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Authority is a body whose approval a deal may need.
type Authority string

const (
	AuthorityFTC          Authority = "FTC"
	AuthorityDOJ          Authority = "DOJ"
	AuthoritySEC          Authority = "SEC"
	AuthorityCFIUS        Authority = "CFIUS"
	AuthorityEC           Authority = "EC"
	AuthorityShareholders Authority = "Shareholders"
)

// S4Record is the structured result of parsing a Form S-4 registration statement.
type S4Record struct {
	Metadata           FilingMetadata       `json:"metadata"`
	DealStructure      DealStructure        `json:"deal_structure"`
	FinancialTerms     FinancialTerms       `json:"financial_terms"`
	Parties            Parties              `json:"parties"`
	Advisors           Advisors             `json:"advisors"`
	Regulatory         []RegulatoryApproval `json:"regulatory"`
	ClosingConditions  []ClosingCondition   `json:"closing_conditions"`
	Synergies          Synergies            `json:"synergies"`
	RiskFactors        RiskFactors          `json:"risk_factors"`
	TerminationClauses TerminationClauses   `json:"termination_clauses"`
	ShareholderInfo    ShareholderInfo      `json:"shareholder_info"`
	Exhibits           []Exhibit            `json:"exhibits"`
	Analytics          DealAnalytics        `json:"analytics"`
}

// DealStructure describes the shape of the transaction.
type DealStructure struct {
	DealType         DealType      `json:"deal_type"`
	PaymentStructure []PaymentType `json:"payment_structure"`
	AcquirerName     string        `json:"acquirer_name,omitempty"`
	TargetName       string        `json:"target_name,omitempty"`
	SurvivingEntity  string        `json:"surviving_entity,omitempty"`
	EffectiveDate    string        `json:"effective_date,omitempty"`
	AgreementDate    string        `json:"agreement_date,omitempty"`
}

// HasPayment reports whether p is part of the consideration.
func (d DealStructure) HasPayment(p PaymentType) bool {
	for _, x := range d.PaymentStructure {
		if x == p {
			return true
		}
	}
	return false
}

// FinancialTerms holds the economic terms of the deal.
type FinancialTerms struct {
	DealValue            *Money    `json:"deal_value"`
	BreakUpFee           *Money    `json:"break_up_fee"`
	BreakUpFeePercentage *float64  `json:"break_up_fee_percentage"`
	ExchangeRatio        *float64  `json:"exchange_ratio"`
	PremiumOffered       *float64  `json:"premium_offered"` // percent
	PricePerShare        *float64  `json:"price_per_share"`
	EnterpriseValue      *Money    `json:"enterprise_value"`
	EquityValue          *Money    `json:"equity_value"`
	Financing            Financing `json:"financing"`
}

// Financing describes how the acquirer funds the deal.
type Financing struct {
	DebtFinancing   *Money `json:"debt_financing"`
	EquityFinancing *Money `json:"equity_financing"`
	CashOnHand      bool   `json:"cash_on_hand"`
	Committed       bool   `json:"committed"`
}

// Parties names the entities to the merger agreement.
type Parties struct {
	Acquirer  string `json:"acquirer,omitempty"`
	Target    string `json:"target,omitempty"`
	MergerSub string `json:"merger_sub,omitempty"`
}

// Advisors lists the banks and law firms found in the filing.
//
// The acquirer/target attribution is positional: the first reference-list
// match is assumed to advise the acquirer, the second the target.
type Advisors struct {
	FinancialAdvisors        []string `json:"financial_advisors"`
	LegalCounsel             []string `json:"legal_counsel"`
	AcquirerFinancialAdvisor string   `json:"acquirer_financial_advisor,omitempty"`
	TargetFinancialAdvisor   string   `json:"target_financial_advisor,omitempty"`
	AcquirerLegalCounsel     string   `json:"acquirer_legal_counsel,omitempty"`
	TargetLegalCounsel       string   `json:"target_legal_counsel,omitempty"`
}

// RegulatoryApproval is one approval the deal requires.
type RegulatoryApproval struct {
	Authority   Authority `json:"authority"`
	Required    bool      `json:"required"`
	Description string    `json:"description"`
}

// ClosingCondition is a condition to the consummation of the deal.
type ClosingCondition struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Satisfied   bool   `json:"satisfied"`
}

// Synergies holds the estimated synergies disclosed for the combination.
type Synergies struct {
	Total     *Money   `json:"total"`
	Cost      *Money   `json:"cost"`
	Revenue   *Money   `json:"revenue"`
	Timeframe string   `json:"timeframe,omitempty"`
	Sources   []string `json:"sources"`
}

// RiskFactors flags the risk categories the filing discusses.
type RiskFactors struct {
	Integration bool      `json:"integration"`
	Regulatory  bool      `json:"regulatory"`
	Financial   bool      `json:"financial"`
	Operational bool      `json:"operational"`
	Market      bool      `json:"market"`
	Competition bool      `json:"competition"`
	Retention   bool      `json:"retention"`
	Litigation  bool      `json:"litigation"`
	Technology  bool      `json:"technology"`
	Debt        bool      `json:"debt"`
	Count       int       `json:"count"`
	RiskLevel   RiskLevel `json:"risk_level"`
}

// TerminationClauses summarizes the termination provisions.
type TerminationClauses struct {
	OutsideDate           string `json:"outside_date,omitempty"`
	TerminationFee        *Money `json:"termination_fee"`
	ReverseTerminationFee *Money `json:"reverse_termination_fee"`
	FiduciaryOut          bool   `json:"fiduciary_out"`
	MatchingRights        bool   `json:"matching_rights"`
	NoShop                bool   `json:"no_shop"`
	GoShop                bool   `json:"go_shop"`
}

// ShareholderInfo covers the stockholder vote on the deal.
type ShareholderInfo struct {
	VoteRequired      bool     `json:"vote_required"`
	RequiredVote      string   `json:"required_vote,omitempty"`
	MeetingDate       string   `json:"meeting_date,omitempty"`
	RecordDate        string   `json:"record_date,omitempty"`
	VotingAgreements  bool     `json:"voting_agreements"`
	SupportPercentage *float64 `json:"support_percentage"`
	AppraisalRights   bool     `json:"appraisal_rights"`
}

// DealAnalytics are derived from the rest of the record on every parse.
type DealAnalytics struct {
	DealQualityScore        int      `json:"deal_quality_score"`
	CompletionProbability   int      `json:"completion_probability"`
	BreakUpFeePercentage    *float64 `json:"break_up_fee_percentage"`
	EstimatedTimelineMonths int      `json:"estimated_timeline_months"`
	RiskScore               int      `json:"risk_score"`
	AdvisorPrestigeScore    int      `json:"advisor_prestige_score"`
}

// Authorities returns the authorities whose approval is required.
func (r *S4Record) Authorities() []Authority {
	var out []Authority
	for _, a := range r.Regulatory {
		if a.Required {
			out = append(out, a.Authority)
		}
	}
	return out
}
