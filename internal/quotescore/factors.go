package quotescore

import (
	"math"

	"github.com/seenimoa/alphavault/internal/scoring"
	"github.com/seenimoa/alphavault/pkg/models"
)

// rangePosition is where price sits in the 52-week range, 0 at the low and
// 1 at the high. ok is false without a usable range.
func rangePosition(q models.Quote) (pos float64, ok bool) {
	if q.YearHigh <= 0 || q.YearLow <= 0 || q.YearHigh <= q.YearLow || q.Price <= 0 {
		return 0, false
	}
	return scoring.Clamp((q.Price-q.YearLow)/(q.YearHigh-q.YearLow), 0, 1), true
}

// volumeRatio is today's volume over the average; ok is false without both.
func volumeRatio(q models.Quote) (ratio float64, ok bool) {
	if q.Volume <= 0 || q.AvgVolume <= 0 {
		return 0, false
	}
	return q.Volume / q.AvgVolume, true
}

// TechnicalScore starts at 50 and adds price-position, volume-confirmation
// and momentum bonuses or penalties.
func TechnicalScore(q models.Quote) int {
	score := 50

	if pos, ok := rangePosition(q); ok {
		switch {
		case pos >= 0.8:
			score += 20
		case pos >= 0.6:
			score += 10
		case pos <= 0.2:
			score -= 15
		case pos <= 0.4:
			score -= 5
		}
	}

	// Heavy volume confirms the day's direction.
	if ratio, ok := volumeRatio(q); ok && ratio >= 1.5 {
		if q.PercentChange >= 0 {
			score += 10
		} else {
			score -= 10
		}
	}

	switch {
	case q.PercentChange > 2:
		score += 10
	case q.PercentChange > 0:
		score += 5
	case q.PercentChange < -2:
		score -= 10
	case q.PercentChange < 0:
		score -= 5
	}

	if q.Open > 0 && q.Price > q.Open {
		score += 5
	}
	return scoring.ClampInt(score, 0, 100)
}

// MomentumScore rescales the day's percent change from [-20, +20] onto
// [0, 100], clamped.
func MomentumScore(percentChange float64) int {
	v := math.Round((percentChange + 20) * 100 / 40)
	return int(scoring.Clamp(v, 0, 100))
}

// ValueScore starts at 50 and rewards liquidity, contrarian entries after a
// drop and a modest earnings multiple.
func ValueScore(q models.Quote) int {
	score := 50

	if ratio, ok := volumeRatio(q); ok {
		switch {
		case ratio >= 1:
			score += 10
		case ratio < 0.5:
			score -= 10
		}
	}

	switch {
	case q.PercentChange < -5:
		score += 15
	case q.PercentChange < -2:
		score += 10
	case q.PercentChange > 10:
		score -= 10
	}

	if pos, ok := rangePosition(q); ok && pos <= 0.2 {
		score += 10
	}

	switch {
	case q.PE > 0 && q.PE < 15:
		score += 10
	case q.PE > 40:
		score -= 10
	}
	return scoring.ClampInt(score, 0, 100)
}

// QualityPoints is an additive 0-12 table: size up to 4, earnings multiple
// up to 3, dividend up to 2, low beta up to 2 and liquidity 1.
func QualityPoints(q models.Quote, p models.CompanyProfile) int {
	pts := 0
	switch mc := marketCap(q, p); {
	case mc >= 200e9:
		pts += 4
	case mc >= 10e9:
		pts += 3
	case mc >= 2e9:
		pts += 2
	case mc >= 300e6:
		pts++
	}
	switch {
	case q.PE > 0 && q.PE <= 25:
		pts += 3
	case q.PE > 25 && q.PE <= 40:
		pts += 2
	case q.PE > 40:
		pts++
	}
	switch {
	case p.DividendYield >= 2:
		pts += 2
	case p.DividendYield > 0:
		pts++
	}
	switch {
	case p.Beta > 0 && p.Beta <= 1:
		pts += 2
	case p.Beta > 1 && p.Beta <= 1.5:
		pts++
	}
	if q.AvgVolume >= 1e6 {
		pts++
	}
	return pts
}

var grades = []string{"D-", "D-", "D", "D+", "C-", "C", "C+", "B-", "B", "B+", "A-", "A", "A+"}

// QualityGrade maps quality points to a letter grade, 12 → A+ down to
// 1 or less → D-.
func QualityGrade(points int) string {
	return grades[scoring.ClampInt(points, 0, 12)]
}

var gradeScores = map[string]int{
	"A+": 100, "A": 95, "A-": 90,
	"B+": 85, "B": 80, "B-": 75,
	"C+": 70, "C": 65, "C-": 60,
	"D+": 55, "D": 50, "D-": 40,
}

// GradeScore converts a letter grade to its 0-100 score.
func GradeScore(grade string) int {
	return gradeScores[grade]
}

// RiskPoints is an additive 0-9 table: beta up to 3, small size up to 3,
// the day's move up to 2 and an absent or extreme multiple 1.
func RiskPoints(q models.Quote, p models.CompanyProfile) int {
	pts := 0
	switch {
	case p.Beta > 1.5:
		pts += 3
	case p.Beta > 1.2:
		pts += 2
	case p.Beta > 1:
		pts++
	}
	if mc := marketCap(q, p); mc > 0 {
		switch {
		case mc < 300e6:
			pts += 3
		case mc < 2e9:
			pts += 2
		case mc < 10e9:
			pts++
		}
	}
	switch move := math.Abs(q.PercentChange); {
	case move > 5:
		pts += 2
	case move > 2:
		pts++
	}
	if q.PE <= 0 || q.PE > 50 {
		pts++
	}
	return pts
}

var riskBuckets = scoring.Buckets{
	{Min: 7, Label: "Very High"},
	{Min: 5, Label: "High"},
	{Min: 3, Label: "Medium"},
	{Min: 0, Label: "Low"},
}

// RiskRating buckets risk points.
func RiskRating(points int) string {
	return riskBuckets.Label(float64(points))
}

func marketCap(q models.Quote, p models.CompanyProfile) float64 {
	if q.MarketCap > 0 {
		return q.MarketCap
	}
	return p.MarketCap
}
