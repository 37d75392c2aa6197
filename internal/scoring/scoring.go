// Package scoring implements the weighted-factor scorer shared by every
// engine: factors in, a 0-100 score plus a contribution breakdown out, and a
// threshold table to bucket the score into a label.
package scoring

import (
	"math"
	"sort"

	"github.com/seenimoa/alphavault/pkg/models"
)

// Factor is one weighted input. Value is on a 0-100 scale; Weight is the
// nominal share of 100. An unavailable factor is excluded and the weights of
// the others are scaled up to fill its share.
type Factor struct {
	Name      string
	Value     float64
	Weight    float64
	Available bool
	Detail    string
}

// Measured returns an available factor.
func Measured(name string, value, weight float64, detail string) Factor {
	return Factor{Name: name, Value: value, Weight: weight, Available: true, Detail: detail}
}

// Unavailable returns a factor with no data behind it.
func Unavailable(name string, weight float64, detail string) Factor {
	return Factor{Name: name, Weight: weight, Detail: detail}
}

// Result is a weighted score.
type Result struct {
	Score     int
	Raw       float64
	Coverage  float64 // available weight / nominal weight, 0-1
	Breakdown []models.ScoreBreakdown

	// Nominal is the weighted average over the nominal weights, with every
	// unavailable factor counted as 0. It equals Raw × Coverage before rounding.
	Nominal      float64
	NominalScore int
}

// Score combines factors into a 0-100 score. The breakdown is sorted by
// contribution, highest first; the sum of contributions is within
// len(factors) of Score.
func Score(factors []Factor) Result {
	var nominal, avail float64
	for _, f := range factors {
		nominal += f.Weight
		if f.Available {
			avail += f.Weight
		}
	}

	res := Result{Breakdown: make([]models.ScoreBreakdown, 0, len(factors))}
	if nominal > 0 {
		res.Coverage = round2(avail / nominal)
	}

	for _, f := range factors {
		row := models.ScoreBreakdown{
			Name:      f.Name,
			Weight:    f.Weight,
			Available: f.Available,
			Detail:    f.Detail,
		}
		if f.Available && avail > 0 {
			v := Clamp(f.Value, 0, 100)
			eff := f.Weight / avail * 100
			row.Value = v
			row.EffectiveWeight = round2(eff)
			row.Contribution = int(math.Round(v * eff / 100))
			res.Raw += v * eff / 100
			res.Nominal += v * f.Weight / nominal
		}
		res.Breakdown = append(res.Breakdown, row)
	}

	res.Raw = Clamp(res.Raw, 0, 100)
	res.Score = int(math.Round(res.Raw))
	res.Nominal = Clamp(res.Nominal, 0, 100)
	res.NominalScore = int(math.Round(res.Nominal))
	sort.SliceStable(res.Breakdown, func(i, j int) bool {
		return res.Breakdown[i].Contribution > res.Breakdown[j].Contribution
	})
	return res
}

// Bucket maps scores at or above Min to Label.
type Bucket struct {
	Min   float64
	Label string
}

// Buckets is a threshold table in descending Min order.
type Buckets []Bucket

// Label returns the label of the first bucket whose Min the score reaches.
// Scores below every threshold get the last label.
func (b Buckets) Label(score float64) string {
	for _, bk := range b {
		if score >= bk.Min {
			return bk.Label
		}
	}
	if len(b) == 0 {
		return ""
	}
	return b[len(b)-1].Label
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
