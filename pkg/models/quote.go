package models

import "time"

// --- Quote scoring ---

// Quote is a real-time equity quote.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	Open          float64 `json:"open,omitempty"`
	PreviousClose float64 `json:"previous_close,omitempty"`
	DayHigh       float64 `json:"day_high,omitempty"`
	DayLow        float64 `json:"day_low,omitempty"`
	YearHigh      float64 `json:"year_high,omitempty"`
	YearLow       float64 `json:"year_low,omitempty"`
	Volume        float64 `json:"volume,omitempty"`
	AvgVolume     float64 `json:"avg_volume,omitempty"`
	MarketCap     float64 `json:"market_cap,omitempty"` // raw USD
	PE            float64 `json:"pe,omitempty"`
}

// CompanyProfile is static company data used alongside a quote.
type CompanyProfile struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	Sector        string  `json:"sector,omitempty"`
	Industry      string  `json:"industry,omitempty"`
	Beta          float64 `json:"beta,omitempty"`
	DividendYield float64 `json:"dividend_yield,omitempty"` // percent
	MarketCap     float64 `json:"market_cap,omitempty"`
}

// CompositeScore is the 0-100 investment score of a quote.
type CompositeScore struct {
	Symbol        string           `json:"symbol"`
	Overall       int              `json:"overall"`
	Rating        string           `json:"rating"`
	Technical     int              `json:"technical"`
	Momentum      int              `json:"momentum"`
	Value         int              `json:"value"`
	Sentiment     int              `json:"sentiment"`
	QualityGrade  string           `json:"quality_grade"`
	QualityPoints int              `json:"quality_points"`
	QualityScore  int              `json:"quality_score"`
	RiskRating    string           `json:"risk_rating"`
	RiskPoints    int              `json:"risk_points"`
	Insights      []string         `json:"insights"`
	Breakdown     []ScoreBreakdown `json:"breakdown"`
	CalculatedAt  time.Time        `json:"calculated_at"`
}
