// Package filingtext turns EDGAR documents (HTML, inline XBRL or plain text)
// into the line-structured plain text the parsers expect.
package filingtext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	markupRe     = regexp.MustCompile(`(?i)<\s*(?:html|body|div|p|table|font|span|br)\b`)
	horizontalRe = regexp.MustCompile(`[ \t\f\v\x{00a0}\x{2009}\x{200b}]+`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
	pageNumberRe = regexp.MustCompile(`^(?:Page\s*)?\d+$|^-\s*\d+\s*-$|^[A-Z]?-\d+$`)
)

// block-level elements that end a line of text.
const blockSelector = "p, div, br, tr, li, h1, h2, h3, h4, h5, h6, table, center, blockquote"

// IsMarkup reports whether raw looks like an HTML document or fragment.
func IsMarkup(raw string) bool {
	head := raw
	if len(head) > 4096 {
		head = head[:4096]
	}
	return markupRe.MatchString(head)
}

// Normalize returns the readable text of a filing. Markup is stripped with
// block elements converted to line breaks; whitespace is collapsed in all
// cases.
func Normalize(raw string) (string, error) {
	if !IsMarkup(raw) {
		return CollapseWhitespace(raw), nil
	}
	text, err := htmlToText(raw)
	if err != nil {
		return "", err
	}
	return CollapseWhitespace(text), nil
}

func htmlToText(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse filing html: %w", err)
	}

	doc.Find("script, style, head, [hidden], [style*='display:none'], [style*='display: none']").Remove()
	// Inline XBRL keeps its machine-readable header in <ix:header>.
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) == "ix:header" {
			sel.Remove()
		}
	})
	// Bare page numbers between pages.
	doc.Find("p, div").Each(func(_ int, sel *goquery.Selection) {
		if sel.Children().Length() > 0 {
			return
		}
		if t := strings.TrimSpace(sel.Text()); len(t) < 20 && pageNumberRe.MatchString(t) {
			sel.Remove()
		}
	})
	doc.Find("td, th").Each(func(_ int, sel *goquery.Selection) {
		sel.AfterHtml(" ")
	})
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		sel.AfterHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}

// CollapseWhitespace collapses runs of horizontal whitespace, trims each
// line and keeps at most one blank line between paragraphs.
func CollapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(horizontalRe.ReplaceAllString(l, " "))
	}
	s = strings.Join(lines, "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
