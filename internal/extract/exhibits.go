package extract

import (
	"regexp"
	"strings"

	"github.com/seenimoa/alphavault/pkg/models"
)

var (
	exhibitIndexRe = regexp.MustCompile(`(?i)exhibit\s+index|index\s+to\s+exhibits|\(d\)\s+exhibits`)
	exhibitLineRe  = regexp.MustCompile(`(?im)^[ \t]*(?:Exhibit[ \t]+(?:No\.?[ \t]*)?)?(\d{1,3}\.(?:\d{1,3}|[A-Z]{3})[A-Za-z]?)[ \t]*[-–:.]?[ \t]+(\S[^\n]{3,200})$`)
	exhibitInline  = regexp.MustCompile(`(?i)Exhibit\s+(\d{1,3}\.\d{1,3})\b[ \t]*[-–:]?[ \t]*([^\n.;]{0,150})`)
)

// maxExhibitRegion bounds the text scanned after an exhibit index heading.
const maxExhibitRegion = 20000

// Exhibits parses the exhibit index of a filing. When no index heading is
// present, inline "Exhibit N.N" references are collected instead. Numbers
// are unique and kept in order of appearance.
func Exhibits(text string) []models.Exhibit {
	var out []models.Exhibit
	seen := map[string]bool{}
	add := func(num, desc string) {
		num = strings.TrimSpace(num)
		if num == "" || seen[num] {
			return
		}
		seen[num] = true
		out = append(out, models.Exhibit{Number: num, Description: CollapseSpace(strings.Trim(desc, " -–:."))})
	}

	if loc := exhibitIndexRe.FindStringIndex(text); loc != nil {
		region := text[loc[1]:]
		if len(region) > maxExhibitRegion {
			region = region[:maxExhibitRegion]
		}
		for _, m := range exhibitLineRe.FindAllStringSubmatch(region, -1) {
			add(m[1], m[2])
		}
		if len(out) > 0 {
			return out
		}
	}
	for _, m := range exhibitInline.FindAllStringSubmatch(text, -1) {
		add(m[1], m[2])
	}
	return out
}
