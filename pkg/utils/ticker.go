package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeTicker normalizes a user-input ticker to the form EDGAR's
// company_tickers.json uses: uppercase, no "$" prefix, share classes
// separated by a dash (BRK.B → BRK-B).
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(strings.ToUpper(ticker))

	// Remove $ prefix if present (common in chat)
	ticker = strings.TrimPrefix(ticker, "$")

	return strings.NewReplacer(".", "-", "/", "-", " ", "-").Replace(ticker)
}

// IsValidTicker reports whether s looks like a US ticker after
// normalization: 1-5 letters with an optional 1-2 character class suffix.
func IsValidTicker(s string) bool {
	t := NormalizeTicker(s)
	base, class, hasClass := strings.Cut(t, "-")
	if len(base) == 0 || len(base) > 5 || !isAlpha(base) {
		return false
	}
	if hasClass {
		return len(class) >= 1 && len(class) <= 2 && isAlnum(class)
	}
	return true
}

// PadCIK returns the 10-digit zero-padded CIK EDGAR's JSON APIs expect.
func PadCIK(cik string) (string, error) {
	cik = strings.TrimSpace(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(cik)), "CIK"))
	n, err := strconv.ParseUint(cik, 10, 64)
	if err != nil || n == 0 || n > 9999999999 {
		return "", fmt.Errorf("invalid CIK %q", cik)
	}
	return fmt.Sprintf("%010d", n), nil
}

// TrimCIK drops the leading zeros of a CIK, as EDGAR archive paths use.
func TrimCIK(cik string) string {
	t := strings.TrimLeft(strings.TrimSpace(cik), "0")
	if t == "" {
		return "0"
	}
	return t
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func isAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
