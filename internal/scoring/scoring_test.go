package scoring

import (
	"math"
	"testing"
)

func sumContrib(r Result) int {
	n := 0
	for _, b := range r.Breakdown {
		n += b.Contribution
	}
	return n
}

func TestScoreAllAvailable(t *testing.T) {
	r := Score([]Factor{
		Measured("a", 80, 25, ""),
		Measured("b", 40, 25, ""),
		Measured("c", 100, 50, ""),
	})
	// 20 + 10 + 50
	if r.Score != 80 {
		t.Errorf("Score: got %d, want 80", r.Score)
	}
	if r.Coverage != 1 {
		t.Errorf("Coverage: got %v, want 1", r.Coverage)
	}
	if r.Breakdown[0].Name != "c" || r.Breakdown[0].Contribution != 50 {
		t.Errorf("Breakdown[0]: got %+v, want c/50", r.Breakdown[0])
	}
	if got := sumContrib(r); got != 80 {
		t.Errorf("sum contributions: got %d, want 80", got)
	}
}

func TestScoreRenormalizesUnavailable(t *testing.T) {
	r := Score([]Factor{
		Measured("a", 100, 45, ""),
		Measured("b", 100, 40, ""),
		Unavailable("c", 15, "no data source"),
	})
	if r.Score != 100 {
		t.Errorf("Score: got %d, want 100", r.Score)
	}
	if r.Coverage != 0.85 {
		t.Errorf("Coverage: got %v, want 0.85", r.Coverage)
	}
	// 100·45/100 + 100·40/100 with c counted as 0.
	if r.NominalScore != 85 || math.Abs(r.Nominal-r.Raw*r.Coverage) > 1e-9 {
		t.Errorf("Nominal: got %v (%d), want 85", r.Nominal, r.NominalScore)
	}
	for _, b := range r.Breakdown {
		if b.Name == "c" && (b.Available || b.Contribution != 0 || b.EffectiveWeight != 0) {
			t.Errorf("unavailable row: got %+v", b)
		}
	}
}

func TestScoreNothingAvailable(t *testing.T) {
	r := Score([]Factor{Unavailable("a", 50, ""), Unavailable("b", 50, "")})
	if r.Score != 0 || r.Coverage != 0 || r.NominalScore != 0 {
		t.Errorf("got score %d coverage %v nominal %d, want 0 0 0", r.Score, r.Coverage, r.NominalScore)
	}
	if len(r.Breakdown) != 2 {
		t.Errorf("Breakdown len: got %d, want 2", len(r.Breakdown))
	}
}

func TestScoreClampsValues(t *testing.T) {
	r := Score([]Factor{Measured("hot", 250, 50, ""), Measured("cold", -40, 50, "")})
	if r.Score != 50 {
		t.Errorf("Score: got %d, want 50", r.Score)
	}
}

func TestScoreBoundsAndBreakdownSum(t *testing.T) {
	weights := []float64{25, 20, 15, 15, 10, 10, 5}
	for seed := 0; seed < 200; seed++ {
		fs := make([]Factor, len(weights))
		for i, w := range weights {
			v := math.Mod(float64(seed*37+i*53), 101)
			fs[i] = Factor{Name: string(rune('a' + i)), Value: v, Weight: w, Available: (seed+i)%5 != 0}
		}
		r := Score(fs)
		if r.Score < 0 || r.Score > 100 {
			t.Fatalf("seed %d: score %d out of range", seed, r.Score)
		}
		if d := sumContrib(r) - r.Score; d > len(fs) || d < -len(fs) {
			t.Fatalf("seed %d: sum %d vs score %d", seed, sumContrib(r), r.Score)
		}
		for i := 1; i < len(r.Breakdown); i++ {
			if r.Breakdown[i].Contribution > r.Breakdown[i-1].Contribution {
				t.Fatalf("seed %d: breakdown not sorted", seed)
			}
		}
	}
}

func TestBuckets(t *testing.T) {
	b := Buckets{{70, "VERY HIGH"}, {50, "HIGH"}, {30, "MODERATE"}, {0, "LOW"}}
	tests := []struct {
		score float64
		want  string
	}{
		{100, "VERY HIGH"}, {70, "VERY HIGH"}, {69.9, "HIGH"}, {50, "HIGH"},
		{30, "MODERATE"}, {29, "LOW"}, {0, "LOW"}, {-5, "LOW"},
	}
	for _, tt := range tests {
		if got := b.Label(tt.score); got != tt.want {
			t.Errorf("Label(%v): got %q, want %q", tt.score, got, tt.want)
		}
	}
	if got := (Buckets{}).Label(10); got != "" {
		t.Errorf("empty buckets: got %q", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(120, 0, 100) != 100 || Clamp(-1, 0, 100) != 0 || Clamp(42, 0, 100) != 42 {
		t.Error("Clamp out of bounds")
	}
	if ClampInt(120, 0, 100) != 100 || ClampInt(-1, 0, 100) != 0 || ClampInt(42, 0, 100) != 42 {
		t.Error("ClampInt out of bounds")
	}
}
