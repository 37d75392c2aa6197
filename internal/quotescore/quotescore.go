// Package quotescore rates a live equity quote on a 0-100 scale from
// technical, momentum, value, sentiment and quality factors, and adds a
// quality grade, a risk rating and short textual insights.
package quotescore

import (
	"fmt"
	"strings"
	"time"

	"github.com/seenimoa/alphavault/internal/scoring"
	"github.com/seenimoa/alphavault/pkg/models"
	"github.com/seenimoa/alphavault/pkg/utils"
)

// Factor names and weights (sum 100).
const (
	FactorTechnical = "technical"
	FactorMomentum  = "momentum"
	FactorValue     = "value"
	FactorSentiment = "sentiment"
	FactorQuality   = "quality"

	weightTechnical = 25
	weightMomentum  = 20
	weightValue     = 25
	weightSentiment = 15
	weightQuality   = 15

	// NeutralSentiment is used until a news sentiment source is wired.
	NeutralSentiment = 50
)

var ratingBuckets = scoring.Buckets{
	{Min: 85, Label: "Strong Buy"},
	{Min: 70, Label: "Buy"},
	{Min: 50, Label: "Hold"},
	{Min: 35, Label: "Sell"},
	{Min: 0, Label: "Strong Sell"},
}

// Rating buckets an overall score.
func Rating(score int) string {
	return ratingBuckets.Label(float64(score))
}

// Scorer computes composite quote scores.
type Scorer struct {
	now func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithClock sets the clock used for CalculatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Scorer.
func New(opts ...Option) *Scorer {
	s := &Scorer{now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Score rates a quote. The profile is optional; without it quality and
// risk fall back to the quote's own market cap and multiple.
func (s *Scorer) Score(q models.Quote, p *models.CompanyProfile) (*models.CompositeScore, error) {
	if q.Price <= 0 {
		return nil, fmt.Errorf("quotescore: %s: price must be positive, got %v", q.Symbol, q.Price)
	}
	var prof models.CompanyProfile
	if p != nil {
		prof = *p
	}

	tech := TechnicalScore(q)
	mom := MomentumScore(q.PercentChange)
	val := ValueScore(q)
	qPts := QualityPoints(q, prof)
	grade := QualityGrade(qPts)
	gScore := GradeScore(grade)
	rPts := RiskPoints(q, prof)

	r := scoring.Score([]scoring.Factor{
		scoring.Measured(FactorTechnical, float64(tech), weightTechnical, ""),
		scoring.Measured(FactorMomentum, float64(mom), weightMomentum, utils.FormatPct(q.PercentChange)),
		scoring.Measured(FactorValue, float64(val), weightValue, ""),
		scoring.Measured(FactorSentiment, NeutralSentiment, weightSentiment, "neutral"),
		scoring.Measured(FactorQuality, float64(gScore), weightQuality, "grade "+grade),
	})

	cs := &models.CompositeScore{
		Symbol:        utils.NormalizeTicker(q.Symbol),
		Overall:       r.Score,
		Rating:        Rating(r.Score),
		Technical:     tech,
		Momentum:      mom,
		Value:         val,
		Sentiment:     NeutralSentiment,
		QualityGrade:  grade,
		QualityPoints: qPts,
		QualityScore:  gScore,
		RiskRating:    RiskRating(rPts),
		RiskPoints:    rPts,
		Breakdown:     r.Breakdown,
		CalculatedAt:  s.now().UTC(),
	}
	cs.Insights = Insights(q, prof, cs)
	return cs, nil
}

// Insights lists short observations behind a score, strongest first.
func Insights(q models.Quote, p models.CompanyProfile, cs *models.CompositeScore) []string {
	out := []string{}
	if pos, ok := rangePosition(q); ok {
		switch {
		case pos >= 0.9:
			out = append(out, "Trading near its 52-week high")
		case pos <= 0.1:
			out = append(out, "Trading near its 52-week low")
		}
	}
	if ratio, ok := volumeRatio(q); ok && ratio >= 1.5 {
		out = append(out, fmt.Sprintf("Volume %.1fx the daily average", ratio))
	}
	switch {
	case q.PercentChange >= 5:
		out = append(out, fmt.Sprintf("Strong upward move (%s)", utils.FormatPct(q.PercentChange)))
	case q.PercentChange <= -5:
		out = append(out, fmt.Sprintf("Sharp decline (%s) may offer a contrarian entry", utils.FormatPct(q.PercentChange)))
	}
	switch {
	case q.PE > 0 && q.PE < 15:
		out = append(out, fmt.Sprintf("Attractive valuation at %.1fx earnings", q.PE))
	case q.PE > 40:
		out = append(out, fmt.Sprintf("Rich valuation at %.1fx earnings", q.PE))
	}
	if mc := marketCap(q, p); mc > 0 {
		out = append(out, "Market cap "+utils.FormatUSDCompact(mc))
	}
	out = append(out, fmt.Sprintf("Quality grade %s, %s risk", cs.QualityGrade, strings.ToLower(cs.RiskRating)))
	return out
}
