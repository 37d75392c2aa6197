// Package dealscore derives per-deal analytics from a parsed S-4 record.
// Every function is pure and works on the record alone.
package dealscore

import (
	"math"
	"sort"

	"github.com/seenimoa/alphavault/internal/regulatory"
	"github.com/seenimoa/alphavault/internal/scoring"
	"github.com/seenimoa/alphavault/pkg/models"
)

// Quality score table: a base plus presence bonuses.
const (
	qualityBase = 50

	bonusDealValue     = 15
	bonusBreakUpFee    = 10
	bonusExchangeRatio = 5
	bonusFinAdvisor    = 10
	bonusLegalCounsel  = 5
	bonusSynergies     = 10
	bonusRegulatory    = 5
)

// Completion probability table.
const (
	completionBase       = 70
	completionFeeBonus   = 15
	completionVoteBonus  = 10
	penaltyManyApprovals = 20 // more than 4 approvals
	penaltySomeApprovals = 10 // more than 2 approvals
	penaltyHighRisk      = 15 // more than 7 risk flags
)

// Analyze computes the full analytics block for a record.
func Analyze(r *models.S4Record) models.DealAnalytics {
	return models.DealAnalytics{
		DealQualityScore:        DealQualityScore(r),
		CompletionProbability:   CompletionProbability(r),
		BreakUpFeePercentage:    BreakUpFeePercentage(r),
		EstimatedTimelineMonths: EstimateTimeline(r),
		RiskScore:               RiskScore(r),
		AdvisorPrestigeScore:    AdvisorPrestigeScore(r),
	}
}

// DealQualityScore rewards the presence, not the size, of key deal terms.
func DealQualityScore(r *models.S4Record) int {
	score := qualityBase
	for _, row := range qualityBonuses(r) {
		score += row.Contribution
	}
	return scoring.ClampInt(score, 0, 100)
}

// Breakdown lists the base and the quality-score bonuses by contribution,
// highest first. Unearned bonuses keep table order at the end.
func Breakdown(r *models.S4Record) []models.ScoreBreakdown {
	rows := []models.ScoreBreakdown{{
		Name: "base", Value: 100, Weight: qualityBase, EffectiveWeight: qualityBase,
		Contribution: qualityBase, Available: true,
	}}
	rows = append(rows, qualityBonuses(r)...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Contribution > rows[j].Contribution })
	return rows
}

func qualityBonuses(r *models.S4Record) []models.ScoreBreakdown {
	ft := r.FinancialTerms
	bonus := func(name string, weight int, present bool, detail string) models.ScoreBreakdown {
		row := models.ScoreBreakdown{
			Name: name, Weight: float64(weight), EffectiveWeight: float64(weight),
			Available: true, Detail: detail,
		}
		if present {
			row.Value = 100
			row.Contribution = weight
		}
		return row
	}
	return []models.ScoreBreakdown{
		bonus("deal_value", bonusDealValue, ft.DealValue != nil, "deal value disclosed"),
		bonus("break_up_fee", bonusBreakUpFee, ft.BreakUpFee != nil, "break-up fee disclosed"),
		bonus("exchange_ratio", bonusExchangeRatio, ft.ExchangeRatio != nil, "exchange ratio disclosed"),
		bonus("financial_advisor", bonusFinAdvisor, len(r.Advisors.FinancialAdvisors) > 0, "financial advisor retained"),
		bonus("legal_counsel", bonusLegalCounsel, len(r.Advisors.LegalCounsel) > 0, "legal counsel retained"),
		bonus("synergies", bonusSynergies, r.Synergies.Total != nil, "synergy estimate disclosed"),
		bonus("regulatory", bonusRegulatory, len(r.Regulatory) > 0, "regulatory path identified"),
	}
}

// CompletionProbability estimates the chance the deal closes, 0-100.
func CompletionProbability(r *models.S4Record) int {
	p := completionBase
	if r.FinancialTerms.BreakUpFee != nil {
		p += completionFeeBonus
	}
	if r.ShareholderInfo.VotingAgreements || r.ShareholderInfo.SupportPercentage != nil {
		p += completionVoteBonus
	}
	switch n := approvalCount(r); {
	case n > 4:
		p -= penaltyManyApprovals
	case n > 2:
		p -= penaltySomeApprovals
	}
	if r.RiskFactors.Count > 7 {
		p -= penaltyHighRisk
	}
	return scoring.ClampInt(p, 0, 100)
}

// EstimateTimeline returns the expected months to close. It is not capped.
func EstimateTimeline(r *models.S4Record) int {
	return regulatory.TimelineMonths(regulatory.ForRecord(r))
}

// RiskScore is min(100, 5 per risk flag + 8 per required approval).
func RiskScore(r *models.S4Record) int {
	return scoring.ClampInt(r.RiskFactors.Count*5+approvalCount(r)*8, 0, 100)
}

// AdvisorPrestigeScore scores the matched reference-list advisors: 30 per
// bank and 20 per law firm, counting at most one per side.
func AdvisorPrestigeScore(r *models.S4Record) int {
	banks := min(len(r.Advisors.FinancialAdvisors), 2)
	firms := min(len(r.Advisors.LegalCounsel), 2)
	return scoring.ClampInt(30*banks+20*firms, 0, 100)
}

// BreakUpFeePercentage is the fee as a percentage of deal value, rounded to
// two decimals; nil when either amount is missing.
func BreakUpFeePercentage(r *models.S4Record) *float64 {
	fee, value := r.FinancialTerms.BreakUpFee, r.FinancialTerms.DealValue
	if fee == nil || value == nil || value.Value <= 0 {
		return nil
	}
	pct := math.Round(fee.Value/value.Value*100*100) / 100
	return &pct
}

func approvalCount(r *models.S4Record) int {
	return len(r.Authorities())
}
