// Package regulatory estimates how long the approvals a deal needs will take.
// It is the single timeline table used by both the per-filing deal scorer
// and the M&A engine.
package regulatory

import (
	"strings"

	"github.com/seenimoa/alphavault/pkg/models"
)

// BaseMonths is the timeline of a deal that needs no approvals.
const BaseMonths = 6

// Months each approval adds. FTC and DOJ share one antitrust review.
const (
	AntitrustMonths   = 6
	ECMonths          = 9
	CFIUSMonths       = 4
	ShareholderMonths = 2
)

// Estimate returns the expected months to close given the required
// authorities and the per-approval components. Unknown authorities add
// nothing; duplicates count once.
func Estimate(authorities []string) (int, []models.TimelineComponent) {
	months := BaseMonths
	var comps []models.TimelineComponent
	seen := map[string]bool{}
	for _, a := range authorities {
		key := Normalize(a)
		add, label := 0, key
		switch key {
		case "FTC", "DOJ", "HSR":
			key, label, add = "ANTITRUST", "FTC/DOJ", AntitrustMonths
		case "EC":
			add = ECMonths
		case "CFIUS":
			add = CFIUSMonths
		case "SHAREHOLDERS":
			label, add = "Shareholders", ShareholderMonths
		}
		if add == 0 || seen[key] {
			continue
		}
		seen[key] = true
		months += add
		comps = append(comps, models.TimelineComponent{Authority: label, Months: add})
	}
	return months, comps
}

// TimelineMonths returns only the month estimate.
func TimelineMonths(authorities []string) int {
	m, _ := Estimate(authorities)
	return m
}

// Normalize maps the spellings seen in filings and API requests to the
// canonical authority names.
func Normalize(a string) string {
	s := strings.ToUpper(strings.TrimSpace(a))
	switch s {
	case "EUROPEAN COMMISSION", "EU":
		return "EC"
	case "SHAREHOLDER", "SHAREHOLDER VOTE", "STOCKHOLDERS", "STOCKHOLDER", "SHAREHOLDERS":
		return "SHAREHOLDERS"
	case "HART-SCOTT-RODINO", "HSR ACT":
		return "HSR"
	case "FEDERAL TRADE COMMISSION":
		return "FTC"
	case "DEPARTMENT OF JUSTICE":
		return "DOJ"
	}
	return s
}

// ForRecord lists the authorities an S-4 record requires, as strings.
func ForRecord(r *models.S4Record) []string {
	var out []string
	for _, a := range r.Authorities() {
		out = append(out, string(a))
	}
	if r.ShareholderInfo.VoteRequired && !hasAuthority(out, string(models.AuthorityShareholders)) {
		out = append(out, string(models.AuthorityShareholders))
	}
	return out
}

func hasAuthority(list []string, a string) bool {
	for _, v := range list {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
