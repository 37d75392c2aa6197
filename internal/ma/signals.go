package ma

import (
	"fmt"
	"strings"
	"time"

	"github.com/seenimoa/alphavault/pkg/models"
)

// Signal names and their nominal weights (sum 100).
const (
	SignalUnusual8K        = "unusual_8k_activity"
	SignalAgreements       = "material_agreements"
	SignalLeadership       = "leadership_changes"
	SignalBoardMeetings    = "board_meetings"
	SignalLegalCounsel     = "legal_counsel_changes"
	SignalInsiderFreeze    = "insider_freeze"
	SignalInstitutionalAcc = "institutional_accumulation"

	weightUnusual8K        = 25
	weightAgreements       = 20
	weightLeadership       = 15
	weightBoardMeetings    = 15
	weightLegalCounsel     = 10
	weightInsiderFreeze    = 10
	weightInstitutionalAcc = 5
)

// Activity compares the 8-K filing count of the most recent window with
// the window before it.
type Activity struct {
	Recent int
	Prior  int
	Ratio  float64
	Score  int
}

// AnalyzeUnusual8KActivity scores a burst of 8-K filings. Filings in
// (now-window, now] are recent, (now-2·window, now-window] are prior. With
// no prior filings the ratio is the recent count.
func AnalyzeUnusual8KActivity(filings []models.FilingSummary, now time.Time, window time.Duration) Activity {
	if window <= 0 {
		window = DefaultActivityWindow
	}
	recentFrom, priorFrom := now.Add(-window), now.Add(-2*window)
	var a Activity
	for _, f := range filings {
		switch d := f.FiledDate; {
		case d.After(now):
		case d.After(recentFrom):
			a.Recent++
		case d.After(priorFrom):
			a.Prior++
		}
	}
	if a.Prior > 0 {
		a.Ratio = float64(a.Recent) / float64(a.Prior)
	} else {
		a.Ratio = float64(a.Recent)
	}
	switch {
	case a.Ratio >= 3:
		a.Score = 100
	case a.Ratio >= 2:
		a.Score = 75
	case a.Ratio >= 1.5:
		a.Score = 50
	case a.Recent >= 3:
		a.Score = 30
	}
	return a
}

// countScore maps an event count onto a step table: steps[i] is the score
// for i+1 events; counts past the table get the last step.
func countScore(n int, steps ...int) int {
	if n <= 0 || len(steps) == 0 {
		return 0
	}
	if n > len(steps) {
		n = len(steps)
	}
	return steps[n-1]
}

func agreementsScore(filings []models.FilingSummary, s4s []models.FilingSummary) (int, string) {
	if len(s4s) > 0 {
		return 100, fmt.Sprintf("%d S-4 registration(s) on file", len(s4s))
	}
	n := 0
	for _, f := range filings {
		if f.IsMaterialAgreement || f.IsAcquisition || f.HasItem("1.01") || f.HasItem("2.01") {
			n++
		}
	}
	return countScore(n, 40, 70, 100), fmt.Sprintf("%d material agreement or acquisition filing(s)", n)
}

func leadershipScore(filings []models.FilingSummary) (int, string) {
	n := 0
	for _, f := range filings {
		if f.IsLeadershipChange || f.HasItem("5.02") {
			n++
		}
	}
	return countScore(n, 35, 70, 100), fmt.Sprintf("%d leadership change filing(s)", n)
}

// boardMeetingsScore counts filings that report board or stockholder
// meeting outcomes: votes (5.07), bylaw amendments (5.03) and meeting
// announcements.
func boardMeetingsScore(filings []models.FilingSummary) (int, string) {
	n := 0
	for _, f := range filings {
		s := strings.ToLower(f.Summary)
		if f.HasItem("5.07") || f.HasItem("5.03") ||
			strings.Contains(s, "special meeting") || strings.Contains(s, "board of directors") {
			n++
		}
	}
	return countScore(n, 30, 60, 100), fmt.Sprintf("%d board or stockholder meeting filing(s)", n)
}

// legalCounselScore scores elite M&A law firms named in filing text.
// documents is how many S-4 documents were read in full.
func legalCounselScore(firms []string, documents int) (int, string) {
	if len(firms) == 0 {
		return 0, fmt.Sprintf("no elite M&A counsel named in %d S-4 document(s)", documents)
	}
	return countScore(len(firms), 60, 100), "counsel named: " + strings.Join(firms, ", ")
}

// within keeps the filings filed on or after since.
func within(filings []models.FilingSummary, since time.Time) []models.FilingSummary {
	var out []models.FilingSummary
	for _, f := range filings {
		if !f.FiledDate.Before(since) {
			out = append(out, f)
		}
	}
	return out
}

// merge concatenates filing lists, dropping repeated accession numbers.
func merge(lists ...[]models.FilingSummary) []models.FilingSummary {
	var out []models.FilingSummary
	seen := map[string]bool{}
	for _, l := range lists {
		for _, f := range l {
			if f.AccessionNumber != "" {
				if seen[f.AccessionNumber] {
					continue
				}
				seen[f.AccessionNumber] = true
			}
			out = append(out, f)
		}
	}
	return out
}
