package models

import "time"

// ScoreBreakdown is one factor's row in a weighted score.
// Contribution = round(Value × EffectiveWeight / 100).
type ScoreBreakdown struct {
	Name            string  `json:"name"`
	Value           float64 `json:"value"`
	Weight          float64 `json:"weight"`
	EffectiveWeight float64 `json:"effective_weight"`
	Contribution    int     `json:"contribution"`
	Available       bool    `json:"available"`
	Detail          string  `json:"detail,omitempty"`
}

// --- M&A probability ---

// SignalReading is one behavioral signal of the M&A probability model.
type SignalReading struct {
	Name      string  `json:"name"`
	Score     int     `json:"score"`
	Weight    float64 `json:"weight"`
	Available bool    `json:"available"`
	Detail    string  `json:"detail,omitempty"`
}

// MAProbability is the cross-filing M&A likelihood of one company.
type MAProbability struct {
	Ticker           string           `json:"ticker"`
	CIK              string           `json:"cik,omitempty"`
	LookbackDays     int              `json:"lookback_days"`
	ProbabilityScore int              `json:"probability_score"`
	NominalScore     int              `json:"nominal_score"` // unavailable signals counted as 0
	RiskLevel        string           `json:"risk_level"`
	Coverage         float64          `json:"coverage"`
	Signals          []SignalReading  `json:"signals"`
	Breakdown        []ScoreBreakdown `json:"breakdown"`
	FilingsAnalyzed  int              `json:"filings_analyzed"`
	Warnings         []string         `json:"warnings,omitempty"`
	CalculatedAt     time.Time        `json:"calculated_at"`
}

// Signal returns the named reading, or false if absent.
func (p *MAProbability) Signal(name string) (SignalReading, bool) {
	for _, s := range p.Signals {
		if s.Name == name {
			return s, true
		}
	}
	return SignalReading{}, false
}

// TakeoverPremium is the estimated control premium for a target.
type TakeoverPremium struct {
	CurrentPrice   float64 `json:"current_price"`
	Sector         string  `json:"sector"`
	MarketCap      float64 `json:"market_cap"`
	BasePremium    float64 `json:"base_premium"`
	SizeAdjustment float64 `json:"size_adjustment"`
	PremiumPercent float64 `json:"premium_percent"`
	TargetPrice    float64 `json:"target_price"`
}

// TimelineComponent is the months one approval adds to a deal timeline.
type TimelineComponent struct {
	Authority string `json:"authority"`
	Months    int    `json:"months"`
}

// RegulatoryTimeline is the predicted time to close.
type RegulatoryTimeline struct {
	Approvals     []string            `json:"approvals"`
	BaseMonths    int                 `json:"base_months"`
	Months        int                 `json:"months"`
	Components    []TimelineComponent `json:"components"`
	ExpectedClose *time.Time          `json:"expected_close,omitempty"`
}

// TimelineRequest is the input to the regulatory timeline estimator.
type TimelineRequest struct {
	ApprovalsRequired []string   `json:"approvals_required"`
	AnnouncedDate     *time.Time `json:"announced_date,omitempty"`
}

// TakeoverPremiumRequest is the input to the takeover premium estimator.
type TakeoverPremiumRequest struct {
	CurrentPrice float64 `json:"current_price"`
	Sector       string  `json:"sector"`
	MarketCap    float64 `json:"market_cap"`
}

// --- Deal ranking ---

// DealCandidate is an already-parsed deal filing to be ranked.
type DealCandidate struct {
	CompanyName     string    `json:"company_name"`
	CIK             string    `json:"cik,omitempty"`
	Ticker          string    `json:"ticker,omitempty"`
	FormType        FormType  `json:"form_type"`
	FiledDate       time.Time `json:"filed_date"`
	AccessionNumber string    `json:"accession_number,omitempty"`
	Summary         string    `json:"summary,omitempty"`
	Description     string    `json:"description,omitempty"`
	Items           []string  `json:"items,omitempty"`
	URL             string    `json:"url,omitempty"`
}

// DealScore is the ranking score of one candidate.
type DealScore struct {
	Score      int              `json:"score"`
	Confidence string           `json:"confidence"`
	Emoji      string           `json:"emoji"`
	Factors    map[string]int   `json:"factors"`
	Breakdown  []ScoreBreakdown `json:"breakdown"`
}

// RankedDeal is a candidate with its score and 1-based rank.
type RankedDeal struct {
	Rank int           `json:"rank"`
	Deal DealCandidate `json:"deal"`
	DealScore
}
