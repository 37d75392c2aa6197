package ranking

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/seenimoa/alphavault/pkg/models"
	"github.com/seenimoa/alphavault/pkg/utils"
)

// DefaultNarrateLimit is how many deals Narrate lists when limit <= 0.
const DefaultNarrateLimit = 10

// Narrate renders ranked deals as a markdown summary for chat output: a
// headline, one list entry per deal and a factor table for the leader.
func Narrate(ranked []models.RankedDeal, limit int) string {
	if len(ranked) == 0 {
		return "No deal filings matched.\n"
	}
	if limit <= 0 {
		limit = DefaultNarrateLimit
	}
	shown := ranked
	if len(shown) > limit {
		shown = shown[:limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Top %d of %d deal filings\n\n", len(shown), len(ranked))
	for _, r := range shown {
		d := r.Deal
		name := d.CompanyName
		if name == "" {
			name = "Unknown company"
		}
		if d.Ticker != "" {
			name = fmt.Sprintf("%s (%s)", name, d.Ticker)
		}
		fmt.Fprintf(&b, "%d. %s **%s** filed %s", r.Rank, r.Emoji, name, d.FormType)
		if !d.FiledDate.IsZero() {
			fmt.Fprintf(&b, " on %s", utils.FormatDate(d.FiledDate))
		}
		fmt.Fprintf(&b, " | score %d, %s\n", r.Score, strings.ToLower(r.Confidence))
		if s := oneLine(d.Summary); s != "" {
			fmt.Fprintf(&b, "   - %s\n", s)
		}
		if d.URL != "" {
			fmt.Fprintf(&b, "   - [filing](%s)\n", d.URL)
		}
	}

	top := shown[0]
	fmt.Fprintf(&b, "\n### Why %s ranks first\n\n", top.Deal.CompanyName)
	b.WriteString("| Factor | Score | Weight | Contribution |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, row := range top.Breakdown {
		if !row.Available {
			fmt.Fprintf(&b, "| %s | n/a | %.0f | - |\n", row.Name, row.Weight)
			continue
		}
		fmt.Fprintf(&b, "| %s | %.0f | %.2f | %d |\n", row.Name, row.Value, row.EffectiveWeight, row.Contribution)
	}
	return b.String()
}

// RenderHTML converts narrated markdown to HTML with GitHub Flavored
// Markdown tables.
func RenderHTML(markdown string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

const summaryWidth = 160

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= summaryWidth {
		return s
	}
	cut := strings.LastIndexByte(s[:summaryWidth], ' ')
	if cut <= 0 {
		cut = summaryWidth
	}
	return s[:cut] + "…"
}
