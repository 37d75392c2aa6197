package ma

import (
	"fmt"
	"math"

	"github.com/seenimoa/alphavault/internal/regulatory"
	"github.com/seenimoa/alphavault/pkg/models"
)

// Market cap thresholds (USD) of the premium size adjustment.
const (
	smallCapLimit = 1e9
	largeCapLimit = 50e9
	sizeAdjust    = 5.0
)

// CalculateTakeoverPremium estimates the control premium an acquirer would
// pay for a target: the sector's base premium, +5 points below a $1B
// market cap and -5 above $50B. MarketCap is in USD.
func (e *Engine) CalculateTakeoverPremium(req models.TakeoverPremiumRequest) (*models.TakeoverPremium, error) {
	if req.CurrentPrice <= 0 {
		return nil, fmt.Errorf("ma: current price must be positive, got %v", req.CurrentPrice)
	}
	if req.MarketCap < 0 {
		return nil, fmt.Errorf("ma: market cap must not be negative, got %v", req.MarketCap)
	}
	base, _ := e.ref.SectorPremium(req.Sector)

	var adj float64
	switch {
	case req.MarketCap > 0 && req.MarketCap < smallCapLimit:
		adj = sizeAdjust
	case req.MarketCap > largeCapLimit:
		adj = -sizeAdjust
	}
	pct := base + adj
	return &models.TakeoverPremium{
		CurrentPrice:   req.CurrentPrice,
		Sector:         req.Sector,
		MarketCap:      req.MarketCap,
		BasePremium:    base,
		SizeAdjustment: adj,
		PremiumPercent: pct,
		TargetPrice:    math.Round(req.CurrentPrice*(1+pct/100)*100) / 100,
	}, nil
}

// PredictRegulatoryTimeline estimates the months to close from the
// approvals a deal needs. With an announcement date the expected close
// date is that date plus the estimate.
func (e *Engine) PredictRegulatoryTimeline(req models.TimelineRequest) *models.RegulatoryTimeline {
	months, comps := regulatory.Estimate(req.ApprovalsRequired)
	if comps == nil {
		comps = []models.TimelineComponent{}
	}
	approvals := req.ApprovalsRequired
	if approvals == nil {
		approvals = []string{}
	}
	t := &models.RegulatoryTimeline{
		Approvals:  approvals,
		BaseMonths: regulatory.BaseMonths,
		Months:     months,
		Components: comps,
	}
	if req.AnnouncedDate != nil && !req.AnnouncedDate.IsZero() {
		at := req.AnnouncedDate.AddDate(0, months, 0)
		t.ExpectedClose = &at
	}
	return t
}
