package dealscore

import (
	"testing"

	"github.com/seenimoa/alphavault/pkg/models"
)

func f64(v float64) *float64 { return &v }

func usd(v float64) *models.Money { return &models.Money{Value: v, Currency: "USD"} }

func approvals(as ...models.Authority) []models.RegulatoryApproval {
	out := make([]models.RegulatoryApproval, len(as))
	for i, a := range as {
		out[i] = models.RegulatoryApproval{Authority: a, Required: true}
	}
	return out
}

// fullRecord has every quality-score input present.
func fullRecord() *models.S4Record {
	return &models.S4Record{
		FinancialTerms: models.FinancialTerms{
			DealValue:     usd(10000),
			BreakUpFee:    usd(350),
			ExchangeRatio: f64(0.5),
		},
		Advisors: models.Advisors{
			FinancialAdvisors: []string{"Goldman Sachs", "Morgan Stanley", "Lazard"},
			LegalCounsel:      []string{"Skadden"},
		},
		Synergies:       models.Synergies{Total: usd(500)},
		Regulatory:      approvals(models.AuthorityFTC, models.AuthorityDOJ),
		ShareholderInfo: models.ShareholderInfo{VotingAgreements: true, VoteRequired: true},
		RiskFactors:     models.RiskFactors{Count: 3},
	}
}

// ── Deal quality ──

func TestDealQualityScore(t *testing.T) {
	if got := DealQualityScore(&models.S4Record{}); got != 50 {
		t.Errorf("empty record: got %d, want 50", got)
	}
	// 50 + 15 + 10 + 5 + 10 + 5 + 10 + 5 = 110 → capped
	if got := DealQualityScore(fullRecord()); got != 100 {
		t.Errorf("full record: got %d, want 100", got)
	}
	r := &models.S4Record{FinancialTerms: models.FinancialTerms{DealValue: usd(1)}}
	if got := DealQualityScore(r); got != 65 {
		t.Errorf("deal value only: got %d, want 65", got)
	}
}

func TestBreakdownOrder(t *testing.T) {
	r := &models.S4Record{
		FinancialTerms: models.FinancialTerms{DealValue: usd(1), ExchangeRatio: f64(0.5)},
		Advisors:       models.Advisors{FinancialAdvisors: []string{"Lazard"}},
	}
	rows := Breakdown(r)
	if len(rows) != 8 {
		t.Fatalf("rows: got %d, want 8", len(rows))
	}
	want := []struct {
		name string
		c    int
	}{{"base", 50}, {"deal_value", 15}, {"financial_advisor", 10}, {"exchange_ratio", 5}}
	for i, w := range want {
		if rows[i].Name != w.name || rows[i].Contribution != w.c {
			t.Errorf("rows[%d]: got %s/%d, want %s/%d", i, rows[i].Name, rows[i].Contribution, w.name, w.c)
		}
	}
	sum := 0
	for i, row := range rows {
		if i > 0 && row.Contribution > rows[i-1].Contribution {
			t.Errorf("rows[%d] %s (%d) above rows[%d] %s (%d)", i, row.Name, row.Contribution, i-1, rows[i-1].Name, rows[i-1].Contribution)
		}
		sum += row.Contribution
	}
	if sum != DealQualityScore(r) {
		t.Errorf("sum: got %d, want %d", sum, DealQualityScore(r))
	}
}

// ── Completion probability ──

func TestCompletionProbability(t *testing.T) {
	tests := []struct {
		name string
		rec  *models.S4Record
		want int
	}{
		{"base", &models.S4Record{}, 70},
		{"fee and votes", fullRecord(), 95},
		{"three approvals", &models.S4Record{Regulatory: approvals(models.AuthorityFTC, models.AuthorityDOJ, models.AuthoritySEC)}, 60},
		{"five approvals and high risk", &models.S4Record{
			Regulatory:  approvals(models.AuthorityFTC, models.AuthorityDOJ, models.AuthoritySEC, models.AuthorityEC, models.AuthorityCFIUS),
			RiskFactors: models.RiskFactors{Count: 8},
		}, 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionProbability(tt.rec); got != tt.want {
				t.Errorf("CompletionProbability: got %d, want %d", got, tt.want)
			}
		})
	}
}

// ── Timeline / risk / prestige ──

func TestEstimateTimeline(t *testing.T) {
	// base 6 + FTC/DOJ 6 + shareholder vote 2
	if got := EstimateTimeline(fullRecord()); got != 14 {
		t.Errorf("EstimateTimeline: got %d, want 14", got)
	}
	r := &models.S4Record{Regulatory: approvals(models.AuthorityEC, models.AuthorityCFIUS)}
	if got := EstimateTimeline(r); got != 19 {
		t.Errorf("EstimateTimeline EC+CFIUS: got %d, want 19", got)
	}
}

func TestRiskScore(t *testing.T) {
	if got := RiskScore(fullRecord()); got != 31 {
		t.Errorf("RiskScore: got %d, want 31", got)
	}
	r := &models.S4Record{
		RiskFactors: models.RiskFactors{Count: 10},
		Regulatory:  approvals(models.AuthorityFTC, models.AuthorityDOJ, models.AuthorityEC, models.AuthorityCFIUS, models.AuthoritySEC, models.AuthorityShareholders),
	}
	if got := RiskScore(r); got != 98 {
		t.Errorf("RiskScore heavy: got %d, want 98", got)
	}
	r.RiskFactors.Count = 12
	if got := RiskScore(r); got != 100 {
		t.Errorf("RiskScore capped: got %d, want 100", got)
	}
}

func TestAdvisorPrestigeScore(t *testing.T) {
	// two banks counted (of three) and one law firm
	if got := AdvisorPrestigeScore(fullRecord()); got != 80 {
		t.Errorf("AdvisorPrestigeScore: got %d, want 80", got)
	}
	r := fullRecord()
	r.Advisors.LegalCounsel = []string{"Skadden", "Cravath", "Davis Polk"}
	if got := AdvisorPrestigeScore(r); got != 100 {
		t.Errorf("AdvisorPrestigeScore capped: got %d, want 100", got)
	}
}

func TestBreakUpFeePercentage(t *testing.T) {
	p := BreakUpFeePercentage(fullRecord())
	if p == nil || *p != 3.5 {
		t.Fatalf("BreakUpFeePercentage: got %v, want 3.5", p)
	}
	r := fullRecord()
	r.FinancialTerms.DealValue = nil
	if p := BreakUpFeePercentage(r); p != nil {
		t.Errorf("missing deal value: got %v, want nil", *p)
	}
}

func TestAnalyzeBounds(t *testing.T) {
	a := Analyze(fullRecord())
	for name, v := range map[string]int{
		"quality": a.DealQualityScore, "completion": a.CompletionProbability,
		"risk": a.RiskScore, "prestige": a.AdvisorPrestigeScore,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s out of range: %d", name, v)
		}
	}
}
