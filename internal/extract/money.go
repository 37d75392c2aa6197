package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/alphavault/pkg/models"
)

// MoneyExpr matches a dollar amount with a million/billion unit, capturing
// the number and the unit. Embed it in field patterns.
const MoneyExpr = `\$\s*([\d,]+(?:\.\d+)?)\s*(million|billion)`

// PercentExpr matches a percentage, capturing the number.
const PercentExpr = `([\d,]+(?:\.\d+)?)\s*(?:%|percent\b)`

// NumberExpr matches a plain decimal number.
const NumberExpr = `([\d,]+(?:\.\d+)?)`

var (
	moneyRe  = regexp.MustCompile(`(?i)` + MoneyExpr)
	numberRe = regexp.MustCompile(`^[\d,]+(?:\.\d+)?$`)
	thousand = decimal.NewFromInt(1000)
)

// ParseMoney converts a number and a unit to USD millions: "1,500" million
// is 1500, "2.5" billion is 2500. Thousands separators are stripped.
func ParseMoney(number, unit string) (float64, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(number), ",", ""))
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "million":
	case "billion":
		d = d.Mul(thousand)
	default:
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

// MoneyOf extracts the first dollar amount in text.
func MoneyOf(text string) *models.Money {
	return MoneyWith(text, moneyRe)
}

// MoneyWith extracts the first match of re as money. re must contain a
// number group followed by a unit group (see MoneyExpr).
func MoneyWith(text string, re *regexp.Regexp) *models.Money {
	if re == nil {
		return nil
	}
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil
	}
	return moneyFromSubmatch(text, loc)
}

func moneyFromSubmatch(text string, loc []int) *models.Money {
	var number string
	numStart := -1
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			continue
		}
		g := text[loc[i]:loc[i+1]]
		if number == "" {
			if numberRe.MatchString(strings.TrimSpace(g)) {
				number, numStart = g, loc[i]
			}
			continue
		}
		v, ok := ParseMoney(number, g)
		if !ok {
			continue
		}
		start := numStart
		if d := strings.LastIndex(text[loc[0]:numStart], "$"); d >= 0 {
			start = loc[0] + d
		}
		return &models.Money{
			Value:    v,
			Currency: "USD",
			Raw:      text[start:loc[i+1]],
		}
	}
	return nil
}

// ParseNumber parses a decimal number with optional thousands separators.
func ParseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 {
	d := decimal.NewFromFloat(f).Round(2)
	r, _ := d.Float64()
	return r
}
