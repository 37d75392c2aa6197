package form8k

import (
	"github.com/seenimoa/alphavault/internal/scoring"
	"github.com/seenimoa/alphavault/pkg/models"
)

// Criticality points. The sum is capped at 100.
const (
	pointsBankruptcy       = 100
	pointsDelisting        = 90
	pointsGoingConcern     = 85
	pointsDefault          = 80
	pointsMaterialWeakness = 70
	pointsRestatement      = 60
	pointsAccountantChange = 40
	pointsItem101          = 30
	pointsItem201          = 50
	pointsItem502          = 40
)

var impactBuckets = scoring.Buckets{
	{Min: 80, Label: string(models.ImpactHigh)},
	{Min: 40, Label: string(models.ImpactMedium)},
	{Min: 0, Label: string(models.ImpactLow)},
}

func acquisitions(rec *models.Form8KRecord) []models.AcquisitionEvent {
	out := []models.AcquisitionEvent{}
	if a := rec.Item101; a != nil && a.IsMergerAgreement {
		out = append(out, models.AcquisitionEvent{
			Item: "1.01", Status: "announced", Counterparty: a.Counterparty,
			Value: a.Value, Date: a.AgreementDate,
		})
	}
	if c := rec.Item201; c != nil {
		status := "completed"
		if c.Disposition {
			status = "disposed"
		}
		out = append(out, models.AcquisitionEvent{
			Item: "2.01", Status: status, Counterparty: c.Counterparty,
			Value: c.Consideration, Date: c.CompletionDate,
		})
	}
	return out
}

func materialAgreements(rec *models.Form8KRecord) []models.AgreementEvent {
	out := []models.AgreementEvent{}
	if a := rec.Item101; a != nil {
		out = append(out, models.AgreementEvent{
			Item: "1.01", Action: "entered", AgreementType: a.AgreementType,
			Counterparty: a.Counterparty, Date: a.AgreementDate,
		})
	}
	if t := rec.Item102; t != nil {
		out = append(out, models.AgreementEvent{
			Item: "1.02", Action: "terminated", AgreementType: t.AgreementType,
			Date: t.TerminationDate,
		})
	}
	return out
}

func leadershipChanges(rec *models.Form8KRecord) []models.OfficerChange {
	out := []models.OfficerChange{}
	if oc := rec.Item502; oc != nil {
		out = append(out, oc.Departures...)
		out = append(out, oc.Appointments...)
	}
	return out
}

func criticalFlags(text string, rec *models.Form8KRecord) models.CriticalFlags {
	f := flagRules.Flags(text)
	return models.CriticalFlags{
		Bankruptcy:                rec.Item103 != nil || f["bankruptcy"],
		Delisting:                 rec.Item301 != nil || f["delisting"],
		DefaultOnSeniorSecurities: f["default"],
		GoingConcern:              f["going_concern"],
		MaterialWeakness:          f["material_weakness"],
		Restatement:               (rec.Item402 != nil && rec.Item402.Restatement) || f["restatement"],
		AccountantChange:          rec.Item401 != nil,
		ExecutiveDeparture:        rec.Item502 != nil && len(rec.Item502.Departures) > 0,
		CybersecurityIncident:     f["cybersecurity"],
		MaterialImpairment:        rec.Item206 != nil,
	}
}

// CriticalityScore sums the points of the set flags and the detected deal
// and leadership items, capped at 100.
func CriticalityScore(rec *models.Form8KRecord) int {
	f := rec.CriticalFlags
	score := 0
	add := func(on bool, pts int) {
		if on {
			score += pts
		}
	}
	add(f.Bankruptcy, pointsBankruptcy)
	add(f.Delisting, pointsDelisting)
	add(f.DefaultOnSeniorSecurities, pointsDefault)
	add(f.GoingConcern, pointsGoingConcern)
	add(f.MaterialWeakness, pointsMaterialWeakness)
	add(f.Restatement, pointsRestatement)
	add(f.AccountantChange, pointsAccountantChange)
	add(rec.Item101 != nil && rec.Item101.Detected, pointsItem101)
	add(rec.Item201 != nil && rec.Item201.Detected, pointsItem201)
	add(rec.Item502 != nil && rec.Item502.Detected, pointsItem502)
	return min(score, 100)
}

// Impact buckets a criticality score.
func Impact(score int) models.MarketImpact {
	return models.MarketImpact(impactBuckets.Label(float64(score)))
}

func (p *Parser) analyze(rec *models.Form8KRecord) models.Form8KAnalytics {
	score := CriticalityScore(rec)
	return models.Form8KAnalytics{
		TotalItems:         len(rec.Items),
		CriticalityScore:   score,
		MarketImpact:       Impact(score),
		ItemBreakdown:      p.breakdown(rec.Items),
		CriticalFlagsCount: rec.CriticalFlags.Count(),
	}
}

func (p *Parser) breakdown(items []models.Item8K) models.ItemBreakdown {
	b := models.ItemBreakdown{
		Corporate: []string{}, Financial: []string{}, Governance: []string{},
		Regulatory: []string{}, Other: []string{},
	}
	for _, it := range items {
		n := it.ItemNumber
		switch p.ref.ItemCategory(n) {
		case "corporate":
			b.Corporate = append(b.Corporate, n)
		case "financial":
			b.Financial = append(b.Financial, n)
		case "governance":
			b.Governance = append(b.Governance, n)
		case "regulatory":
			b.Regulatory = append(b.Regulatory, n)
		default:
			b.Other = append(b.Other, n)
		}
	}
	return b
}
