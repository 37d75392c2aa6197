package extract

import (
	"regexp"
	"strings"
	"time"
)

// DefaultSectionCap bounds a section that has no following item heading.
const DefaultSectionCap = 5000

// DateBareExpr matches a long-form date ("January 5, 2024") without capturing.
const DateBareExpr = `(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}`

// DateExpr is DateBareExpr as a capture group.
const DateExpr = `(` + DateBareExpr + `)`

var (
	anyItemRe   = regexp.MustCompile(`(?i)Item\s+(\d+\.\d+)`)
	itemHeadRe  = regexp.MustCompile(`(?im)^\s*Item\s+(\d+\.\d{2})\b`)
	longDateRe  = regexp.MustCompile(`(?i)` + DateExpr)
	itemReCache = map[string]*regexp.Regexp{}
)

// Segmenter cuts 8-K style "Item N.NN" sections out of a filing.
type Segmenter struct {
	// Cap is the maximum section length when no next heading is found.
	Cap int
}

// NewSegmenter returns a segmenter with the given cap; limit <= 0 uses
// DefaultSectionCap.
func NewSegmenter(limit int) Segmenter {
	if limit <= 0 {
		limit = DefaultSectionCap
	}
	return Segmenter{Cap: limit}
}

// ItemSection returns the text from the first "Item <itemNumber>" heading
// up to, excluding, the next "Item N.N" heading. Without a following
// heading the section runs to the end of text, bounded by Cap. It returns
// "" when the item does not occur.
//
// Only the first occurrence of the item is considered; a later repeat of
// the same number (an exhibit quoting the heading, say) ends the section
// like any other heading.
func (s Segmenter) ItemSection(text, itemNumber string) string {
	loc := ItemRegexp(itemNumber).FindStringIndex(text)
	if loc == nil {
		return ""
	}
	start, headEnd := loc[0], loc[1]
	end := len(text)
	if next := anyItemRe.FindStringIndex(text[headEnd:]); next != nil {
		end = headEnd + next[0]
	} else if limit := s.limit(); end-start > limit {
		end = start + limit
		for end > start && text[end]&0xC0 == 0x80 {
			end--
		}
	}
	return text[start:end]
}

func (s Segmenter) limit() int {
	if s.Cap <= 0 {
		return DefaultSectionCap
	}
	return s.Cap
}

// ItemSection segments with the default cap.
func ItemSection(text, itemNumber string) string {
	return Segmenter{Cap: DefaultSectionCap}.ItemSection(text, itemNumber)
}

// HasItem reports whether text contains an "Item <itemNumber>" heading.
func HasItem(text, itemNumber string) bool {
	return ItemRegexp(itemNumber).MatchString(text)
}

// ItemRegexp returns the case-insensitive heading expression for an item
// number, with the dot escaped and a word boundary after the number.
// Expressions for the fixed item set are precompiled.
func ItemRegexp(itemNumber string) *regexp.Regexp {
	if re, ok := itemReCache[itemNumber]; ok {
		return re
	}
	return compileItem(itemNumber)
}

func compileItem(itemNumber string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)Item\s+` + regexp.QuoteMeta(itemNumber) + `\b`)
}

func init() {
	for _, n := range []string{
		"1.01", "1.02", "1.03", "1.04", "1.05", "2.01", "2.02", "2.03", "2.04", "2.05", "2.06",
		"3.01", "3.02", "3.03", "4.01", "4.02", "5.01", "5.02", "5.03", "5.04", "5.05",
		"5.06", "5.07", "5.08", "6.01", "7.01", "8.01", "9.01",
	} {
		itemReCache[n] = compileItem(n)
	}
}

// ItemNumbers lists the distinct item numbers that start a line in text,
// in order of first appearance. Inline references ("see Item 9.01") are
// not headings and are skipped.
func ItemNumbers(text string) []string {
	re := itemHeadRe
	if !strings.Contains(strings.TrimSpace(text), "\n") {
		// Flattened documents lose their line structure; take any mention.
		re = anyItemRe
	}
	return Unique(AllPatterns(text, re))
}

// LongDate returns the first long-form date in text, or "".
func LongDate(text string) string {
	return CollapseSpace(Pattern(text, longDateRe, ""))
}

// ParseLongDate parses "January 5, 2024".
func ParseLongDate(s string) (time.Time, bool) {
	t, err := time.Parse("January 2, 2006", CollapseSpace(strings.TrimSpace(s)))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
