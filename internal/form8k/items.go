package form8k

import (
	"regexp"
	"strings"

	"github.com/seenimoa/alphavault/internal/extract"
	"github.com/seenimoa/alphavault/pkg/models"
)

func agreementType(body string) string {
	return strings.ToLower(agreementRules.Get("type").Text(body))
}

func (p *Parser) item101(text string) *models.MaterialAgreement {
	body, ok := p.section(text, "1.01")
	if !ok {
		return nil
	}
	r := agreementRules
	return &models.MaterialAgreement{
		Detected:          true,
		AgreementType:     agreementType(body),
		Counterparty:      r.Get("counterparty").Text(body),
		AgreementDate:     r.Get("date").Date(body),
		Value:             r.Get("value").Money(body),
		IsMergerAgreement: r.Get("merger").Flag(body),
		Summary:           summary(body),
	}
}

func (p *Parser) item102(text string) *models.AgreementTermination {
	body, ok := p.section(text, "1.02")
	if !ok {
		return nil
	}
	r := agreementRules
	when := r.Get("terminated_on").Date(body)
	if when == "" {
		when = extract.LongDate(body)
	}
	return &models.AgreementTermination{
		Detected:        true,
		AgreementType:   agreementType(body),
		TerminationDate: when,
		TerminationFee:  r.Get("termination_fee").Money(body),
		Summary:         summary(body),
	}
}

func (p *Parser) item103(text string) *models.BankruptcyFiling {
	body, ok := p.section(text, "1.03")
	if !ok {
		return nil
	}
	r := bankruptcyRules
	filed := r.Get("filing_date").Date(body)
	if filed == "" {
		filed = extract.LongDate(body)
	}
	return &models.BankruptcyFiling{
		Detected:   true,
		Chapter:    r.Get("chapter").Text(body),
		Court:      r.Get("court").Text(body),
		CaseNumber: r.Get("case_number").Text(body),
		FilingDate: filed,
		Summary:    summary(body),
	}
}

func (p *Parser) item201(text string) *models.AcquisitionCompletion {
	body, ok := p.section(text, "2.01")
	if !ok {
		return nil
	}
	r := completionRules
	ac := &models.AcquisitionCompletion{
		Detected:       true,
		Disposition:    r.Get("disposition").Flag(body),
		Counterparty:   r.Get("counterparty").Text(body),
		CompletionDate: r.Get("date").Date(body),
		Consideration:  r.Get("consideration").Money(body),
		PaymentTypes:   []models.PaymentType{},
		Summary:        summary(body),
	}
	cash, stock := r.Get("cash").Flag(body), r.Get("stock").Flag(body)
	if cash {
		ac.PaymentTypes = append(ac.PaymentTypes, models.PaymentCash)
	}
	if stock {
		ac.PaymentTypes = append(ac.PaymentTypes, models.PaymentStock)
	}
	if cash && stock {
		ac.PaymentTypes = append(ac.PaymentTypes, models.PaymentMixed)
	}
	return ac
}

func (p *Parser) item202(text string) *models.OperatingResults {
	body, ok := p.section(text, "2.02")
	if !ok {
		return nil
	}
	r := resultsRules
	res := &models.OperatingResults{
		Detected:  true,
		Period:    r.Get("period").Text(body),
		Revenue:   r.Get("revenue").Money(body),
		NetIncome: r.Get("net_income").Money(body),
		EPS:       r.Get("eps").Number(body),
		Summary:   summary(body),
	}
	if ex := r.Get("press_release").Text(body); ex != "" {
		res.PressRelease = "Exhibit " + ex
	}
	return res
}

func (p *Parser) item203(text string) *models.FinancialObligation {
	body, ok := p.section(text, "2.03")
	if !ok {
		return nil
	}
	r := obligationRules
	amount := r.Get("amount").Money(body)
	if amount == nil {
		amount = extract.MoneyOf(body)
	}
	return &models.FinancialObligation{
		Detected:       true,
		ObligationType: strings.ToLower(r.Get("type").Text(body)),
		Amount:         amount,
		InterestRate:   r.Get("rate").Number(body),
		MaturityDate:   r.Get("maturity").Date(body),
		Summary:        summary(body),
	}
}

func (p *Parser) item205(text string) *models.ExitCosts {
	body, ok := p.section(text, "2.05")
	if !ok {
		return nil
	}
	r := exitRules
	return &models.ExitCosts{
		Detected:           true,
		EstimatedCharges:   r.Get("charges").Money(body),
		WorkforceReduction: r.Get("workforce").Text(body),
		CompletionDate:     r.Get("completion").Text(body),
		Summary:            summary(body),
	}
}

func (p *Parser) item206(text string) *models.MaterialImpairment {
	body, ok := p.section(text, "2.06")
	if !ok {
		return nil
	}
	r := impairmentRules
	return &models.MaterialImpairment{
		Detected:         true,
		ImpairmentAmount: r.Get("amount").Money(body),
		AssetDescription: strings.ToLower(r.Get("asset").Text(body)),
		Summary:          summary(body),
	}
}

func (p *Parser) item301(text string) *models.DelistingNotice {
	body, ok := p.section(text, "3.01")
	if !ok {
		return nil
	}
	r := delistingRules
	notice := r.Get("notice_date").Date(body)
	if notice == "" {
		notice = extract.LongDate(body)
	}
	return &models.DelistingNotice{
		Detected:     true,
		Exchange:     r.Get("exchange").Text(body),
		Rule:         r.Get("rule").Text(body),
		NoticeDate:   notice,
		CureDeadline: r.Get("cure_deadline").Date(body),
		Summary:      summary(body),
	}
}

func (p *Parser) item401(text string) *models.AccountantChange {
	body, ok := p.section(text, "4.01")
	if !ok {
		return nil
	}
	r := accountantRules
	return &models.AccountantChange{
		Detected:         true,
		FormerAccountant: r.Get("former").Text(body),
		NewAccountant:    r.Get("new").Text(body),
		Dismissed:        r.Get("dismissed").Flag(body),
		Resigned:         r.Get("resigned").Flag(body),
		Disagreements:    r.Get("mentions_disagreement").Flag(body) && !r.Get("no_disagreement").Flag(body),
		Summary:          summary(body),
	}
}

func (p *Parser) item402(text string) *models.NonReliance {
	body, ok := p.section(text, "4.02")
	if !ok {
		return nil
	}
	periods := extract.Unique(extract.AllPatterns(body, periodRe))
	for i, s := range periods {
		periods[i] = extract.CollapseSpace(s)
	}
	if periods == nil {
		periods = []string{}
	}
	return &models.NonReliance{
		Detected:        true,
		PeriodsAffected: periods,
		Restatement:     nonRelianceRules.Get("restatement").Flag(body),
		Summary:         summary(body),
	}
}

func (p *Parser) item501(text string) *models.ControlChange {
	body, ok := p.section(text, "5.01")
	if !ok {
		return nil
	}
	return &models.ControlChange{
		Detected:       true,
		AcquiringParty: controlRules.Get("acquirer").Text(body),
		Summary:        summary(body),
	}
}

func (p *Parser) item502(text string) *models.OfficerChanges {
	body, ok := p.section(text, "5.02")
	if !ok {
		return nil
	}
	oc := &models.OfficerChanges{
		Detected:     true,
		Departures:   []models.OfficerChange{},
		Appointments: []models.OfficerChange{},
		Summary:      summary(body),
	}
	for _, c := range officerChanges(body) {
		if c.Action == actionDeparture {
			oc.Departures = append(oc.Departures, c)
		} else {
			oc.Appointments = append(oc.Appointments, c)
		}
	}
	return oc
}

func (p *Parser) item507(text string) *models.ShareholderVoteResults {
	body, ok := p.section(text, "5.07")
	if !ok {
		return nil
	}
	r := voteRules
	vr := &models.ShareholderVoteResults{
		Detected:    true,
		MeetingDate: r.Get("meeting_date").Date(body),
		Proposals:   []string{},
		Summary:     summary(body),
	}
	for _, m := range proposalRe.FindAllStringSubmatch(body, -1) {
		vr.Proposals = append(vr.Proposals, extract.CollapseSpace(m[1]))
	}
	vr.AllApproved = r.Get("approved").Flag(body) && !r.Get("rejected").Flag(body)
	return vr
}

func (p *Parser) disclosure(text, n string) *models.ItemDisclosure {
	body, ok := p.section(text, n)
	if !ok {
		return nil
	}
	return &models.ItemDisclosure{Detected: true, Summary: summary(body)}
}

func (p *Parser) item901(text string) *models.FinancialExhibits {
	body, ok := p.section(text, "9.01")
	if !ok {
		return nil
	}
	ex := extract.Exhibits(body)
	if ex == nil {
		ex = []models.Exhibit{}
	}
	return &models.FinancialExhibits{Detected: true, Exhibits: ex}
}

// ── Item 5.02 ──

const (
	actionDeparture   = "departure"
	actionAppointment = "appointment"
)

// officerChanges reads departures and appointments sentence by sentence.
// A sentence can report both ("Smith resigned and the Board appointed
// Jones"): the person named before the appointment verb departs and the
// one after it is appointed.
func officerChanges(body string) []models.OfficerChange {
	var out []models.OfficerChange
	seen := map[string]bool{}
	add := func(c models.OfficerChange) {
		key := c.Action + "|" + c.Name
		if c.Name == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, c)
	}
	for _, s := range sentences(body) {
		dep := departureRe.FindStringIndex(s)
		app := appointmentRe.FindStringIndex(s)
		if dep == nil && app == nil {
			continue
		}
		people := persons(s)
		if len(people) == 0 {
			continue
		}
		when := effectiveDate(s)
		switch {
		case dep != nil && app != nil:
			before, after := splitAt(people, app[0])
			if len(before) > 0 {
				add(models.OfficerChange{Name: before[0].name, Position: position(s[:app[0]]), Action: actionDeparture, EffectiveDate: when})
			}
			if len(after) > 0 {
				add(models.OfficerChange{Name: after[0].name, Position: position(s[app[0]:]), Action: actionAppointment, EffectiveDate: when})
			} else if len(before) > 1 {
				add(models.OfficerChange{Name: before[1].name, Position: position(s[app[0]:]), Action: actionAppointment, EffectiveDate: when})
			}
		case dep != nil:
			add(models.OfficerChange{Name: people[0].name, Position: departedPosition(s), Action: actionDeparture, EffectiveDate: when})
		default:
			add(models.OfficerChange{Name: people[0].name, Position: position(s), Action: actionAppointment, EffectiveDate: when})
		}
	}
	return out
}

type person struct {
	name string
	at   int
}

func persons(s string) []person {
	var out []person
	for _, m := range personRe.FindAllStringSubmatchIndex(s, -1) {
		n := s[m[2]:m[3]]
		first, _, _ := strings.Cut(n, " ")
		if nonNames[first] {
			continue
		}
		out = append(out, person{name: n, at: m[2]})
	}
	return out
}

func splitAt(people []person, at int) (before, after []person) {
	for _, p := range people {
		if p.at < at {
			before = append(before, p)
		} else {
			after = append(after, p)
		}
	}
	return before, after
}

func position(s string) string {
	return strings.TrimRight(extract.CollapseSpace(extract.Pattern(s, positionRe, "")), ", ")
}

func departedPosition(s string) string {
	if pos := position(s); pos != "" {
		return pos
	}
	return extract.Pattern(s, boardSeatRe, "")
}

func effectiveDate(s string) string {
	return extract.CollapseSpace(extract.Pattern(s, effectiveRe, ""))
}

var abbrevRe = regexp.MustCompile(`(?:\b(?:Mr|Ms|Mrs|Dr|Jr|Sr|Inc|Corp|Co|Ltd|No|St)|\b[A-Z])$`)

// sentences splits prose on ". " while keeping titles, initials and
// corporate suffixes inside their sentence.
func sentences(text string) []string {
	text = extract.CollapseSpace(text)
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' {
			continue
		}
		if c == '.' && abbrevRe.MatchString(text[start:i]) {
			continue
		}
		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// ── Signatures ──

// signatures reads conformed signatures: a "/s/ Name" line, optionally
// followed within a few lines by "Name:" and "Title:" lines.
func signatures(text string) []models.Signature {
	out := []models.Signature{}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		m := signedRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		sig := models.Signature{Name: cleanSigned(m[1])}
		for j := i + 1; j < len(lines) && j <= i+3; j++ {
			if signedRe.MatchString(lines[j]) {
				break
			}
			if t := titleRe.FindStringSubmatch(lines[j]); t != nil {
				sig.Title = cleanSigned(t[1])
				break
			}
			if n := nameRe.FindStringSubmatch(lines[j]); n != nil && sig.Name == "" {
				sig.Name = cleanSigned(n[1])
			}
		}
		if sig.Name != "" {
			out = append(out, sig)
		}
	}
	return out
}

func cleanSigned(s string) string {
	return extract.CollapseSpace(strings.Trim(s, " \t\r_"))
}
