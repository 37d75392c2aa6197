// Package ranking scores and orders already-parsed deal filings for
// conversational output. It never re-parses documents: every factor is
// computed from the candidate's form type, dates, item list and prose.
package ranking

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/seenimoa/alphavault/internal/refdata"
	"github.com/seenimoa/alphavault/internal/scoring"
	"github.com/seenimoa/alphavault/pkg/models"
)

// Factor names and weights (sum 100).
const (
	FactorFormType   = "form_type"
	FactorRecency    = "recency"
	FactorActivity   = "company_activity"
	FactorComplexity = "filing_complexity"
	FactorKeywords   = "keyword_signals"
	FactorItems      = "item_relevance"

	weightFormType   = 30
	weightRecency    = 20
	weightActivity   = 15
	weightComplexity = 15
	weightKeywords   = 15
	weightItems      = 5
)

// Points per matched keyword of each tier.
const (
	pointsHigh   = 12
	pointsMedium = 6
	pointsLow    = 2
)

var confidenceBuckets = scoring.Buckets{
	{Min: 75, Label: "VERY LIKELY"},
	{Min: 60, Label: "LIKELY"},
	{Min: 45, Label: "MODERATE"},
	{Min: 30, Label: "UNCERTAIN"},
	{Min: 0, Label: "UNLIKELY"},
}

var confidenceEmoji = map[string]string{
	"VERY LIKELY": "🔥",
	"LIKELY":      "✅",
	"MODERATE":    "⚖️",
	"UNCERTAIN":   "❓",
	"UNLIKELY":    "❌",
}

var formTypeScores = map[models.FormType]int{
	models.FormS4:     100,
	models.FormS4A:    100,
	models.FormSCTOT:  90,
	models.FormDEFM14: 85,
	models.FormPREM14: 85,
	models.Form425:    80,
	models.FormSC14D9: 75,
	models.Form8K:     60,
	models.Form8KA:    60,
	models.FormSC13D:  55,
	models.Form10K:    20,
	models.Form10Q:    20,
}

const defaultFormTypeScore = 30

var itemRelevance = map[string]int{
	"1.01": 100,
	"2.01": 100,
	"5.01": 90,
	"8.01": 50,
	"5.02": 40,
	"7.01": 30,
}

// Ranker scores deal candidates. It is safe for concurrent use.
type Ranker struct {
	ref *refdata.Data
	now func() time.Time
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithClock sets the clock recency is measured against.
func WithClock(now func() time.Time) Option {
	return func(r *Ranker) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Ranker. A nil ref uses the embedded keyword tiers.
func New(ref *refdata.Data, opts ...Option) *Ranker {
	if ref == nil {
		ref = refdata.Default()
	}
	r := &Ranker{ref: ref, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Score rates one candidate. peers is the batch it is ranked in and feeds
// the company activity factor; the candidate itself may be included.
func (r *Ranker) Score(d models.DealCandidate, peers []models.DealCandidate) models.DealScore {
	form := FormTypeScore(d.FormType)
	recency := RecencyScore(d.FiledDate, r.now())
	activity := ActivityScore(d, peers)
	complexity := ComplexityScore(d)
	keywords, matched := r.KeywordScore(d.Summary + " " + d.Description)

	kwDetail := "no deal keywords"
	if len(matched) > 0 {
		kwDetail = "matched: " + strings.Join(matched, ", ")
	}
	factors := []scoring.Factor{
		scoring.Measured(FactorFormType, float64(form), weightFormType, string(d.FormType)),
		scoring.Measured(FactorRecency, float64(recency), weightRecency, ""),
		scoring.Measured(FactorActivity, float64(activity), weightActivity, ""),
		scoring.Measured(FactorComplexity, float64(complexity), weightComplexity, fmt.Sprintf("%d item(s)", len(d.Items))),
		scoring.Measured(FactorKeywords, float64(keywords), weightKeywords, kwDetail),
	}
	values := map[string]int{
		FactorFormType:   form,
		FactorRecency:    recency,
		FactorActivity:   activity,
		FactorComplexity: complexity,
		FactorKeywords:   keywords,
	}
	if len(d.Items) > 0 {
		items := ItemRelevanceScore(d.Items)
		factors = append(factors, scoring.Measured(FactorItems, float64(items), weightItems, strings.Join(d.Items, ", ")))
		values[FactorItems] = items
	} else {
		factors = append(factors, scoring.Unavailable(FactorItems, weightItems, "no 8-K items"))
	}

	res := scoring.Score(factors)
	conf := Confidence(res.Score)
	return models.DealScore{
		Score:      res.Score,
		Confidence: conf,
		Emoji:      confidenceEmoji[conf],
		Factors:    values,
		Breakdown:  res.Breakdown,
	}
}

// Rank scores every candidate and orders them best first. Ties are broken
// by the newer filing, then by company name.
func (r *Ranker) Rank(deals []models.DealCandidate) []models.RankedDeal {
	out := make([]models.RankedDeal, 0, len(deals))
	for _, d := range deals {
		out = append(out, models.RankedDeal{Deal: d, DealScore: r.Score(d, deals)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Deal.FiledDate.Equal(b.Deal.FiledDate) {
			return a.Deal.FiledDate.After(b.Deal.FiledDate)
		}
		return a.Deal.CompanyName < b.Deal.CompanyName
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Confidence buckets a ranking score.
func Confidence(score int) string {
	return confidenceBuckets.Label(float64(score))
}

// Emoji returns the display marker of a confidence label.
func Emoji(confidence string) string {
	return confidenceEmoji[confidence]
}

// FormTypeScore rates how directly a form signals a deal.
func FormTypeScore(f models.FormType) int {
	if s, ok := formTypeScores[models.FormType(strings.ToUpper(strings.TrimSpace(string(f))))]; ok {
		return s
	}
	return defaultFormTypeScore
}

// RecencyScore decays with the age of the filing.
func RecencyScore(filed, now time.Time) int {
	if filed.IsZero() {
		return 0
	}
	age := now.Sub(filed).Hours() / 24
	switch {
	case age <= 7:
		return 100
	case age <= 30:
		return 80
	case age <= 90:
		return 60
	case age <= 180:
		return 40
	case age <= 365:
		return 20
	}
	return 10
}

// ActivityScore rates how many filings in the batch come from the same
// company, matched by CIK or, without one, by name.
func ActivityScore(d models.DealCandidate, peers []models.DealCandidate) int {
	n := 0
	for _, p := range peers {
		if sameCompany(d, p) {
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	switch {
	case n >= 4:
		return 100
	case n == 3:
		return 80
	case n == 2:
		return 60
	}
	return 30
}

func sameCompany(a, b models.DealCandidate) bool {
	if a.CIK != "" && b.CIK != "" {
		return strings.TrimLeft(a.CIK, "0") == strings.TrimLeft(b.CIK, "0")
	}
	return a.CompanyName != "" && strings.EqualFold(a.CompanyName, b.CompanyName)
}

// ComplexityScore rates how much a filing reports: the number of items,
// or the length of its description when it lists none.
func ComplexityScore(d models.DealCandidate) int {
	switch n := len(d.Items); {
	case n >= 4:
		return 100
	case n == 3:
		return 80
	case n == 2:
		return 60
	case n == 1:
		return 40
	}
	if len(d.Description)+len(d.Summary) > 1000 {
		return 40
	}
	return 20
}

// KeywordScore sums the tier points of every keyword found in text,
// case-insensitively, capped at 100. It returns the matched keywords.
func (r *Ranker) KeywordScore(text string) (int, []string) {
	lower := strings.ToLower(text)
	score := 0
	var matched []string
	tier := func(words []string, pts int) {
		for _, w := range words {
			if w != "" && strings.Contains(lower, strings.ToLower(w)) {
				score += pts
				matched = append(matched, w)
			}
		}
	}
	tier(r.ref.Keywords.High, pointsHigh)
	tier(r.ref.Keywords.Medium, pointsMedium)
	tier(r.ref.Keywords.Low, pointsLow)
	return min(score, 100), matched
}

// ItemRelevanceScore is the best relevance of any listed 8-K item.
func ItemRelevanceScore(items []string) int {
	best := 0
	for _, it := range items {
		best = max(best, itemRelevance[strings.TrimSpace(it)])
	}
	return best
}
