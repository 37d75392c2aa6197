package s4

import (
	"github.com/seenimoa/alphavault/internal/extract"
	"github.com/seenimoa/alphavault/pkg/models"
)

func dealStructure(text string) models.DealStructure {
	ds := models.DealStructure{
		DealType:         models.DealUnknown,
		PaymentStructure: []models.PaymentType{},
	}
	for _, dt := range dealTypeRules {
		if dt.rule.Flag(text) {
			ds.DealType = dt.typ
			break
		}
	}

	cash, stock := cashRule.Flag(text), stockRule.Flag(text)
	if cash {
		ds.PaymentStructure = append(ds.PaymentStructure, models.PaymentCash)
	}
	if stock {
		ds.PaymentStructure = append(ds.PaymentStructure, models.PaymentStock)
	}
	if (cash && stock) || mixedRule.Flag(text) {
		ds.PaymentStructure = append(ds.PaymentStructure, models.PaymentMixed)
	}

	r := structureRules
	ds.SurvivingEntity = r.Get("surviving_entity").Text(text)
	ds.AgreementDate = r.Get("agreement_date").Date(text)
	ds.EffectiveDate = r.Get("effective_date").Date(text)
	return ds
}

func parties(text string) models.Parties {
	r := structureRules
	return models.Parties{
		Acquirer:  r.Get("acquirer").Text(text),
		Target:    r.Get("target").Text(text),
		MergerSub: r.Get("merger_sub").Text(text),
	}
}

func financialTerms(text string) models.FinancialTerms {
	r := termRules
	return models.FinancialTerms{
		DealValue:       r.Get("deal_value").Money(text),
		BreakUpFee:      r.Get("break_up_fee").Money(text),
		ExchangeRatio:   r.Get("exchange_ratio").Number(text),
		PremiumOffered:  r.Get("premium").Number(text),
		PricePerShare:   r.Get("price_per_share").Number(text),
		EnterpriseValue: r.Get("enterprise_value").Money(text),
		EquityValue:     r.Get("equity_value").Money(text),
		Financing: models.Financing{
			DebtFinancing:   r.Get("debt_financing").Money(text),
			EquityFinancing: r.Get("equity_financing").Money(text),
			CashOnHand:      r.Get("cash_on_hand").Flag(text),
			Committed:       r.Get("committed").Flag(text),
		},
	}
}

func regulatoryApprovals(text string) []models.RegulatoryApproval {
	out := []models.RegulatoryApproval{}
	for _, rr := range regulatoryRules {
		if rr.rule.Flag(text) {
			out = append(out, models.RegulatoryApproval{
				Authority:   rr.authority,
				Required:    true,
				Description: rr.desc,
			})
		}
	}
	return out
}

func closingConditions(text string) []models.ClosingCondition {
	out := []models.ClosingCondition{}
	for _, c := range conditionRules {
		if c.rule.Flag(text) {
			out = append(out, models.ClosingCondition{Type: c.typ, Description: c.desc})
		}
	}
	return out
}

func synergies(text string) models.Synergies {
	r := synergyRules
	s := models.Synergies{
		Total:     r.Get("total").Money(text),
		Cost:      r.Get("cost").Money(text),
		Revenue:   r.Get("revenue").Money(text),
		Timeframe: r.Get("timeframe").Text(text),
		Sources:   []string{},
	}
	// "cost synergies of $X million" also satisfies the generic total rule.
	if s.Total != nil && (sameAmount(s.Total, s.Cost) || sameAmount(s.Total, s.Revenue)) {
		s.Total = nil
	}
	if s.Total == nil && (s.Cost != nil || s.Revenue != nil) {
		var v float64
		if s.Cost != nil {
			v += s.Cost.Value
		}
		if s.Revenue != nil {
			v += s.Revenue.Value
		}
		s.Total = &models.Money{Value: v, Currency: "USD", Raw: "derived"}
	}

	sentences := extract.AllPatterns(text, synergySentenceRe)
	for _, src := range synergySources {
		for _, sent := range sentences {
			if src.re.MatchString(sent) {
				s.Sources = append(s.Sources, src.name)
				break
			}
		}
	}
	return s
}

func riskFactors(text string) models.RiskFactors {
	f := riskRules.Flags(text)
	rf := models.RiskFactors{
		Integration: f["integration"],
		Regulatory:  f["regulatory"],
		Financial:   f["financial"],
		Operational: f["operational"],
		Market:      f["market"],
		Competition: f["competition"],
		Retention:   f["retention"],
		Litigation:  f["litigation"],
		Technology:  f["technology"],
		Debt:        f["debt"],
	}
	for _, v := range f {
		if v {
			rf.Count++
		}
	}
	rf.RiskLevel = RiskLevel(rf.Count)
	return rf
}

// RiskLevel buckets a risk-flag count: more than 7 is HIGH, more than 4 MEDIUM.
func RiskLevel(count int) models.RiskLevel {
	switch {
	case count > 7:
		return models.RiskHigh
	case count > 4:
		return models.RiskMedium
	}
	return models.RiskLow
}

func terminationClauses(text string) models.TerminationClauses {
	r := terminationRules
	return models.TerminationClauses{
		OutsideDate:           r.Get("outside_date").Date(text),
		TerminationFee:        r.Get("termination_fee").Money(text),
		ReverseTerminationFee: r.Get("reverse_termination_fee").Money(text),
		FiduciaryOut:          r.Get("fiduciary_out").Flag(text),
		MatchingRights:        r.Get("matching_rights").Flag(text),
		NoShop:                r.Get("no_shop").Flag(text),
		GoShop:                r.Get("go_shop").Flag(text),
	}
}

func shareholderInfo(text string) models.ShareholderInfo {
	r := shareholderRules
	return models.ShareholderInfo{
		VoteRequired:      r.Get("vote_required").Flag(text),
		RequiredVote:      r.Get("required_vote").Text(text),
		MeetingDate:       r.Get("meeting_date").Date(text),
		RecordDate:        r.Get("record_date").Date(text),
		VotingAgreements:  r.Get("voting_agreements").Flag(text),
		SupportPercentage: r.Get("support_percentage").Number(text),
		AppraisalRights:   r.Get("appraisal_rights").Flag(text),
	}
}

func sameAmount(a, b *models.Money) bool {
	return a != nil && b != nil && a.Raw == b.Raw && a.Value == b.Value
}
