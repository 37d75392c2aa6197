// Package refdata holds the reference lists the parsers and scorers match
// against: advisor names, sector premiums, ranking keywords and 8-K item
// metadata. Defaults are embedded; a user file can override any section.
package refdata

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Keywords are the deal-ranking keyword tiers.
type Keywords struct {
	High   []string `yaml:"high" json:"high"`
	Medium []string `yaml:"medium" json:"medium"`
	Low    []string `yaml:"low" json:"low"`
}

// ItemCategories lists the 8-K item numbers of each breakdown bucket.
type ItemCategories struct {
	Corporate  []string `yaml:"corporate" json:"corporate"`
	Financial  []string `yaml:"financial" json:"financial"`
	Governance []string `yaml:"governance" json:"governance"`
	Regulatory []string `yaml:"regulatory" json:"regulatory"`
}

// Data is a complete reference data set.
type Data struct {
	LawFirms         []string           `yaml:"law_firms" json:"law_firms"`
	InvestmentBanks  []string           `yaml:"investment_banks" json:"investment_banks"`
	SectorPremiums   map[string]float64 `yaml:"sector_premiums" json:"sector_premiums"`
	DefaultPremium   float64            `yaml:"default_premium" json:"default_premium"`
	Keywords         Keywords           `yaml:"keywords" json:"keywords"`
	ItemDescriptions map[string]string  `yaml:"item_descriptions" json:"item_descriptions"`
	ItemCategories   ItemCategories     `yaml:"item_categories" json:"item_categories"`
}

// Default returns a fresh copy of the embedded reference data.
func Default() *Data {
	d, err := parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("refdata: embedded defaults: %v", err))
	}
	return d
}

// Load reads a YAML file and overlays it on the defaults. Sections absent
// from the file keep their default value. An empty path returns Default().
func Load(path string) (*Data, error) {
	d := Default()
	if path == "" {
		return d, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference data %s: %w", path, err)
	}
	if err := d.Overlay(raw); err != nil {
		return nil, fmt.Errorf("parse reference data %s: %w", path, err)
	}
	return d, nil
}

// Overlay merges YAML-encoded data into d.
func (d *Data) Overlay(raw []byte) error {
	var o Data
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return err
	}
	if len(o.LawFirms) > 0 {
		d.LawFirms = o.LawFirms
	}
	if len(o.InvestmentBanks) > 0 {
		d.InvestmentBanks = o.InvestmentBanks
	}
	for k, v := range o.SectorPremiums {
		d.SectorPremiums[k] = v
	}
	if o.DefaultPremium > 0 {
		d.DefaultPremium = o.DefaultPremium
	}
	if len(o.Keywords.High)+len(o.Keywords.Medium)+len(o.Keywords.Low) > 0 {
		d.Keywords = o.Keywords
	}
	for k, v := range o.ItemDescriptions {
		d.ItemDescriptions[k] = v
	}
	c := o.ItemCategories
	if len(c.Corporate)+len(c.Financial)+len(c.Governance)+len(c.Regulatory) > 0 {
		d.ItemCategories = c
	}
	return nil
}

func parse(raw []byte) (*Data, error) {
	d := &Data{
		SectorPremiums:   map[string]float64{},
		ItemDescriptions: map[string]string{},
	}
	if err := yaml.Unmarshal(raw, d); err != nil {
		return nil, err
	}
	return d, nil
}

// SectorPremium returns the base premium for sector, matched
// case-insensitively, and whether the sector was known.
func (d *Data) SectorPremium(sector string) (float64, bool) {
	if p, ok := d.SectorPremiums[sector]; ok {
		return p, true
	}
	for k, p := range d.SectorPremiums {
		if strings.EqualFold(k, strings.TrimSpace(sector)) {
			return p, true
		}
	}
	return d.DefaultPremium, false
}

// ItemDescription returns the official title of an 8-K item.
func (d *Data) ItemDescription(item string) string {
	if s, ok := d.ItemDescriptions[item]; ok {
		return s
	}
	return "Unknown Item"
}

// ItemCategory returns the breakdown bucket of an 8-K item number.
func (d *Data) ItemCategory(item string) string {
	switch {
	case contains(d.ItemCategories.Corporate, item):
		return "corporate"
	case contains(d.ItemCategories.Financial, item):
		return "financial"
	case contains(d.ItemCategories.Governance, item):
		return "governance"
	case contains(d.ItemCategories.Regulatory, item):
		return "regulatory"
	}
	return "other"
}

// MatchLawFirms returns the law firms mentioned in text, in list order.
func (d *Data) MatchLawFirms(text string) []string {
	return matchNames(text, d.LawFirms)
}

// MatchBanks returns the investment banks mentioned in text, in list order.
func (d *Data) MatchBanks(text string) []string {
	return matchNames(text, d.InvestmentBanks)
}

func matchNames(text string, names []string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, n := range names {
		if n != "" && containsWord(lower, strings.ToLower(n)) {
			out = append(out, n)
		}
	}
	return out
}

// containsWord reports whether name occurs in text not embedded in a longer
// word, so "UBS" does not match "substantial".
func containsWord(text, name string) bool {
	for off := 0; ; {
		i := strings.Index(text[off:], name)
		if i < 0 {
			return false
		}
		start, end := off+i, off+i+len(name)
		if (start == 0 || !isWordByte(text[start-1])) && (end == len(text) || !isWordByte(text[end])) {
			return true
		}
		off = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
