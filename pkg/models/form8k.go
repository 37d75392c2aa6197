package models

// MarketImpact buckets the criticality of an 8-K.
type MarketImpact string

const (
	ImpactLow    MarketImpact = "LOW"
	ImpactMedium MarketImpact = "MEDIUM"
	ImpactHigh   MarketImpact = "HIGH"
)

// Form8KRecord is the structured result of parsing a Form 8-K current report.
// Item sub-records are nil when the filing does not contain the item heading.
type Form8KRecord struct {
	Metadata  FilingMetadata `json:"metadata"`
	Items     []Item8K       `json:"items"`
	EventDate string         `json:"event_date,omitempty"`

	Item101 *MaterialAgreement      `json:"item_1_01"`
	Item102 *AgreementTermination   `json:"item_1_02"`
	Item103 *BankruptcyFiling       `json:"item_1_03"`
	Item201 *AcquisitionCompletion  `json:"item_2_01"`
	Item202 *OperatingResults       `json:"item_2_02"`
	Item203 *FinancialObligation    `json:"item_2_03"`
	Item205 *ExitCosts              `json:"item_2_05"`
	Item206 *MaterialImpairment     `json:"item_2_06"`
	Item301 *DelistingNotice        `json:"item_3_01"`
	Item401 *AccountantChange       `json:"item_4_01"`
	Item402 *NonReliance            `json:"item_4_02"`
	Item501 *ControlChange          `json:"item_5_01"`
	Item502 *OfficerChanges         `json:"item_5_02"`
	Item507 *ShareholderVoteResults `json:"item_5_07"`
	Item701 *ItemDisclosure         `json:"item_7_01"`
	Item801 *ItemDisclosure         `json:"item_8_01"`
	Item901 *FinancialExhibits      `json:"item_9_01"`

	Acquisitions       []AcquisitionEvent `json:"acquisitions"`
	MaterialAgreements []AgreementEvent   `json:"material_agreements"`
	LeadershipChanges  []OfficerChange    `json:"leadership_changes"`
	FinancialResults   *OperatingResults  `json:"financial_results"`
	Exhibits           []Exhibit          `json:"exhibits"`
	Signatures         []Signature        `json:"signatures"`
	CriticalFlags      CriticalFlags      `json:"critical_flags"`
	Analytics          Form8KAnalytics    `json:"analytics"`
}

// Item8K is one item heading of an 8-K with its segmented text.
type Item8K struct {
	ItemNumber  string `json:"item_number"`
	Description string `json:"description"`
	FullText    string `json:"full_text"`
}

// ItemDisclosure is the sub-record of items that carry free-form disclosure only.
type ItemDisclosure struct {
	Detected bool   `json:"detected"`
	Summary  string `json:"summary"`
}

// MaterialAgreement is Item 1.01, entry into a material definitive agreement.
type MaterialAgreement struct {
	Detected          bool   `json:"detected"`
	AgreementType     string `json:"agreement_type,omitempty"`
	Counterparty      string `json:"counterparty,omitempty"`
	AgreementDate     string `json:"agreement_date,omitempty"`
	Value             *Money `json:"value"`
	IsMergerAgreement bool   `json:"is_merger_agreement"`
	Summary           string `json:"summary"`
}

// AgreementTermination is Item 1.02.
type AgreementTermination struct {
	Detected        bool   `json:"detected"`
	AgreementType   string `json:"agreement_type,omitempty"`
	TerminationDate string `json:"termination_date,omitempty"`
	TerminationFee  *Money `json:"termination_fee"`
	Summary         string `json:"summary"`
}

// BankruptcyFiling is Item 1.03, bankruptcy or receivership.
type BankruptcyFiling struct {
	Detected   bool   `json:"detected"`
	Chapter    string `json:"chapter,omitempty"`
	Court      string `json:"court,omitempty"`
	CaseNumber string `json:"case_number,omitempty"`
	FilingDate string `json:"filing_date,omitempty"`
	Summary    string `json:"summary"`
}

// AcquisitionCompletion is Item 2.01, completion of acquisition or disposition of assets.
type AcquisitionCompletion struct {
	Detected       bool          `json:"detected"`
	Disposition    bool          `json:"disposition"`
	Counterparty   string        `json:"counterparty,omitempty"`
	CompletionDate string        `json:"completion_date,omitempty"`
	Consideration  *Money        `json:"consideration"`
	PaymentTypes   []PaymentType `json:"payment_types"`
	Summary        string        `json:"summary"`
}

// OperatingResults is Item 2.02, results of operations and financial condition.
type OperatingResults struct {
	Detected     bool     `json:"detected"`
	Period       string   `json:"period,omitempty"`
	Revenue      *Money   `json:"revenue"`
	NetIncome    *Money   `json:"net_income"`
	EPS          *float64 `json:"eps"`
	PressRelease string   `json:"press_release_exhibit,omitempty"`
	Summary      string   `json:"summary"`
}

// FinancialObligation is Item 2.03, creation of a direct financial obligation.
type FinancialObligation struct {
	Detected       bool     `json:"detected"`
	ObligationType string   `json:"obligation_type,omitempty"`
	Amount         *Money   `json:"amount"`
	InterestRate   *float64 `json:"interest_rate"`
	MaturityDate   string   `json:"maturity_date,omitempty"`
	Summary        string   `json:"summary"`
}

// ExitCosts is Item 2.05, costs associated with exit or disposal activities.
type ExitCosts struct {
	Detected           bool   `json:"detected"`
	EstimatedCharges   *Money `json:"estimated_charges"`
	WorkforceReduction string `json:"workforce_reduction,omitempty"`
	CompletionDate     string `json:"completion_date,omitempty"`
	Summary            string `json:"summary"`
}

// MaterialImpairment is Item 2.06.
type MaterialImpairment struct {
	Detected         bool   `json:"detected"`
	ImpairmentAmount *Money `json:"impairment_amount"`
	AssetDescription string `json:"asset_description,omitempty"`
	Summary          string `json:"summary"`
}

// DelistingNotice is Item 3.01, notice of delisting or failure to satisfy a listing rule.
type DelistingNotice struct {
	Detected     bool   `json:"detected"`
	Exchange     string `json:"exchange,omitempty"`
	Rule         string `json:"rule,omitempty"`
	NoticeDate   string `json:"notice_date,omitempty"`
	CureDeadline string `json:"cure_deadline,omitempty"`
	Summary      string `json:"summary"`
}

// AccountantChange is Item 4.01, changes in the registrant's certifying accountant.
type AccountantChange struct {
	Detected         bool   `json:"detected"`
	FormerAccountant string `json:"former_accountant,omitempty"`
	NewAccountant    string `json:"new_accountant,omitempty"`
	Dismissed        bool   `json:"dismissed"`
	Resigned         bool   `json:"resigned"`
	Disagreements    bool   `json:"disagreements"`
	Summary          string `json:"summary"`
}

// NonReliance is Item 4.02, non-reliance on previously issued financial statements.
type NonReliance struct {
	Detected        bool     `json:"detected"`
	PeriodsAffected []string `json:"periods_affected"`
	Restatement     bool     `json:"restatement"`
	Summary         string   `json:"summary"`
}

// ControlChange is Item 5.01, changes in control of the registrant.
type ControlChange struct {
	Detected       bool   `json:"detected"`
	AcquiringParty string `json:"acquiring_party,omitempty"`
	Summary        string `json:"summary"`
}

// OfficerChange is a departure or appointment of a director or officer.
type OfficerChange struct {
	Name          string `json:"name"`
	Position      string `json:"position,omitempty"`
	Action        string `json:"action"` // "departure" or "appointment"
	EffectiveDate string `json:"effective_date,omitempty"`
}

// OfficerChanges is Item 5.02.
type OfficerChanges struct {
	Detected     bool            `json:"detected"`
	Departures   []OfficerChange `json:"departures"`
	Appointments []OfficerChange `json:"appointments"`
	Summary      string          `json:"summary"`
}

// ShareholderVoteResults is Item 5.07, submission of matters to a vote of security holders.
type ShareholderVoteResults struct {
	Detected    bool     `json:"detected"`
	MeetingDate string   `json:"meeting_date,omitempty"`
	Proposals   []string `json:"proposals"`
	AllApproved bool     `json:"all_approved"`
	Summary     string   `json:"summary"`
}

// FinancialExhibits is Item 9.01, financial statements and exhibits.
type FinancialExhibits struct {
	Detected bool      `json:"detected"`
	Exhibits []Exhibit `json:"exhibits"`
}

// AcquisitionEvent is an acquisition announced (1.01) or completed (2.01) in an 8-K.
type AcquisitionEvent struct {
	Item         string `json:"item"`
	Status       string `json:"status"` // "announced" or "completed"
	Counterparty string `json:"counterparty,omitempty"`
	Value        *Money `json:"value"`
	Date         string `json:"date,omitempty"`
}

// AgreementEvent is a material agreement entered into (1.01) or terminated (1.02).
type AgreementEvent struct {
	Item          string `json:"item"`
	Action        string `json:"action"` // "entered" or "terminated"
	AgreementType string `json:"agreement_type,omitempty"`
	Counterparty  string `json:"counterparty,omitempty"`
	Date          string `json:"date,omitempty"`
}

// Signature is a conformed signature block ("/s/ Name", "Title: ...").
type Signature struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

// CriticalFlags are the red-flag conditions an 8-K can disclose.
type CriticalFlags struct {
	Bankruptcy                bool `json:"bankruptcy"`
	Delisting                 bool `json:"delisting"`
	DefaultOnSeniorSecurities bool `json:"default_on_senior_securities"`
	GoingConcern              bool `json:"going_concern"`
	MaterialWeakness          bool `json:"material_weakness"`
	Restatement               bool `json:"restatement"`
	AccountantChange          bool `json:"accountant_change"`
	ExecutiveDeparture        bool `json:"executive_departure"`
	CybersecurityIncident     bool `json:"cybersecurity_incident"`
	MaterialImpairment        bool `json:"material_impairment"`
}

// Count returns how many flags are set.
func (c CriticalFlags) Count() int {
	n := 0
	for _, b := range []bool{
		c.Bankruptcy, c.Delisting, c.DefaultOnSeniorSecurities, c.GoingConcern,
		c.MaterialWeakness, c.Restatement, c.AccountantChange, c.ExecutiveDeparture,
		c.CybersecurityIncident, c.MaterialImpairment,
	} {
		if b {
			n++
		}
	}
	return n
}

// ItemBreakdown groups the reported item numbers by category.
type ItemBreakdown struct {
	Corporate  []string `json:"corporate"`
	Financial  []string `json:"financial"`
	Governance []string `json:"governance"`
	Regulatory []string `json:"regulatory"`
	Other      []string `json:"other"`
}

// Form8KAnalytics are derived from the rest of the record on every parse.
type Form8KAnalytics struct {
	TotalItems         int           `json:"total_items"`
	CriticalityScore   int           `json:"criticality_score"`
	MarketImpact       MarketImpact  `json:"market_impact"`
	ItemBreakdown      ItemBreakdown `json:"item_breakdown"`
	CriticalFlagsCount int           `json:"critical_flags_count"`
}
