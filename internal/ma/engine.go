// Package ma scores how likely a company is to be involved in an M&A
// transaction from its recent filing behavior, and estimates takeover
// premiums and regulatory timelines for announced deals.
package ma

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/alphavault/internal/refdata"
	"github.com/seenimoa/alphavault/internal/scoring"
	"github.com/seenimoa/alphavault/pkg/models"
)

// Defaults for Engine.
const (
	DefaultLookbackDays   = 90
	DefaultActivityWindow = 30 * 24 * time.Hour
)

// FilingSource supplies the filing lists the engine scores. The EDGAR
// client implements it.
type FilingSource interface {
	// RecentEightKs lists 8-K filings filed on or after since.
	RecentEightKs(ctx context.Context, ticker string, since time.Time) ([]models.FilingSummary, error)
	// S4Filings lists S-4 registrations filed on or after since.
	S4Filings(ctx context.Context, ticker string, since time.Time) ([]models.FilingSummary, error)
	// MaterialEvents lists categorized current-report events filed on or after since.
	MaterialEvents(ctx context.Context, ticker string, since time.Time) ([]models.FilingSummary, error)
}

// DocumentFetcher is implemented by sources that can return the text of a
// filing's primary document. The engine reads S-4 documents through it to
// find the counsel named on a deal.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, f models.FilingSummary) (models.RawFiling, error)
}

// maxCounselDocuments bounds how many S-4 documents are read per call.
const maxCounselDocuments = 2

var riskBuckets = scoring.Buckets{
	{Min: 70, Label: "VERY HIGH"},
	{Min: 50, Label: "HIGH"},
	{Min: 30, Label: "MODERATE"},
	{Min: 0, Label: "LOW"},
}

// Engine computes M&A analytics. It is safe for concurrent use.
type Engine struct {
	source FilingSource
	ref    *refdata.Data
	window time.Duration
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRefData sets the reference data (law firms, sector premiums).
func WithRefData(ref *refdata.Data) Option {
	return func(e *Engine) {
		if ref != nil {
			e.ref = ref
		}
	}
}

// WithActivityWindow sets the window of the unusual 8-K activity signal.
func WithActivityWindow(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.window = time.Duration(days) * 24 * time.Hour
		}
	}
}

// WithClock sets the engine clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an Engine. source may be nil when only the premium and
// timeline estimators are used.
func NewEngine(source FilingSource, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		ref:    refdata.Default(),
		window: DefaultActivityWindow,
		now:    time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// fetched holds the three filing lists; a nil error slot means the fetch
// succeeded.
type fetched struct {
	eightKs, s4s, events []models.FilingSummary
	errs                 map[string]error
}

func (f *fetched) ok(name string) bool { return f.errs[name] == nil }

// CalculateMAProbability scores the ticker's M&A likelihood over the last
// lookbackDays (DefaultLookbackDays when <= 0).
//
// The three filing lists are fetched concurrently. A failed fetch is
// logged and reported in Warnings, and the signals that depend only on it
// are marked unavailable. Only when every fetch fails is an error wrapping
// models.ErrUpstreamFetch returned.
func (e *Engine) CalculateMAProbability(ctx context.Context, ticker string, lookbackDays int) (*models.MAProbability, error) {
	if e.source == nil {
		return nil, fmt.Errorf("ma: no filing source configured: %w", models.ErrUpstreamFetch)
	}
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	now := e.now().UTC()
	since := now.AddDate(0, 0, -lookbackDays)
	fetchFrom := since
	if w := now.Add(-2 * e.window); w.Before(fetchFrom) {
		fetchFrom = w
	}

	data := e.fetch(ctx, ticker, fetchFrom)
	if len(data.errs) == 3 {
		var errs []error
		for _, err := range data.errs {
			errs = append(errs, err)
		}
		return nil, fmt.Errorf("ma: all filing fetches failed for %s: %w: %w", ticker, models.ErrUpstreamFetch, errors.Join(errs...))
	}

	res := &models.MAProbability{
		Ticker:       ticker,
		LookbackDays: lookbackDays,
		CalculatedAt: now,
	}
	for _, name := range []string{"eight_ks", "s4", "material_events"} {
		if err := data.errs[name]; err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s unavailable: %v", name, err))
		}
	}

	eightKs := within(data.eightKs, since)
	s4s := within(data.s4s, since)
	events := within(data.events, since)
	currents := merge(eightKs, events)
	res.FilingsAnalyzed = len(currents) + len(s4s)
	for _, l := range [][]models.FilingSummary{eightKs, s4s, events} {
		if len(l) > 0 && res.CIK == "" {
			res.CIK = l[0].CIK
		}
	}

	factors := make([]scoring.Factor, 0, 7)
	factor := func(name string, weight float64, available bool, score func() (int, string)) {
		if !available {
			factors = append(factors, scoring.Unavailable(name, weight, "source unavailable"))
			return
		}
		v, detail := score()
		factors = append(factors, scoring.Measured(name, float64(v), weight, detail))
	}

	factor(SignalUnusual8K, weightUnusual8K, data.ok("eight_ks"), func() (int, string) {
		a := AnalyzeUnusual8KActivity(data.eightKs, now, e.window)
		return a.Score, fmt.Sprintf("%d recent vs %d prior 8-K filings (ratio %.1f)", a.Recent, a.Prior, a.Ratio)
	})
	factor(SignalAgreements, weightAgreements, data.ok("eight_ks") || data.ok("s4") || data.ok("material_events"), func() (int, string) {
		return agreementsScore(currents, s4s)
	})
	factor(SignalLeadership, weightLeadership, data.ok("eight_ks") || data.ok("material_events"), func() (int, string) {
		return leadershipScore(currents)
	})
	factor(SignalBoardMeetings, weightBoardMeetings, data.ok("eight_ks") || data.ok("material_events"), func() (int, string) {
		return boardMeetingsScore(currents)
	})
	counsel := e.counselEvidence(ctx, ticker, s4s, merge(events, s4s))
	res.Warnings = append(res.Warnings, counsel.warnings...)
	if firms := e.ref.MatchLawFirms(strings.Join(counsel.texts, "\n")); len(firms) > 0 || counsel.documents > 0 {
		v, detail := legalCounselScore(firms, counsel.documents)
		factors = append(factors, scoring.Measured(SignalLegalCounsel, float64(v), weightLegalCounsel, detail))
	} else {
		factors = append(factors, scoring.Unavailable(SignalLegalCounsel, weightLegalCounsel, "no filing text that names counsel"))
	}
	factors = append(factors,
		scoring.Unavailable(SignalInsiderFreeze, weightInsiderFreeze, "no insider trading data source"),
		scoring.Unavailable(SignalInstitutionalAcc, weightInstitutionalAcc, "no institutional holdings data source"),
	)

	r := scoring.Score(factors)
	res.ProbabilityScore = r.Score
	res.NominalScore = r.NominalScore
	res.RiskLevel = riskBuckets.Label(float64(r.Score))
	res.Coverage = r.Coverage
	res.Breakdown = r.Breakdown
	for _, f := range factors {
		res.Signals = append(res.Signals, models.SignalReading{
			Name:      f.Name,
			Score:     int(f.Value),
			Weight:    f.Weight,
			Available: f.Available,
			Detail:    f.Detail,
		})
	}

	log.Info().
		Str("ticker", ticker).
		Int("score", res.ProbabilityScore).
		Str("risk", res.RiskLevel).
		Float64("coverage", res.Coverage).
		Int("filings", res.FilingsAnalyzed).
		Msg("M&A probability calculated")
	return res, nil
}

// evidence is the filing text searched for deal counsel.
type evidence struct {
	texts     []string
	documents int // S-4 documents read in full
	warnings  []string
}

// counselEvidence collects filing summaries and, when the source can fetch
// documents, the text of the most recent S-4 registrations.
func (e *Engine) counselEvidence(ctx context.Context, ticker string, s4s, summaries []models.FilingSummary) evidence {
	var ev evidence
	for _, f := range summaries {
		if f.Summary != "" {
			ev.texts = append(ev.texts, f.Summary)
		}
	}
	docs, ok := e.source.(DocumentFetcher)
	if !ok {
		return ev
	}
	recent := append([]models.FilingSummary(nil), s4s...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].FiledDate.After(recent[j].FiledDate) })
	if len(recent) > maxCounselDocuments {
		recent = recent[:maxCounselDocuments]
	}
	for _, f := range recent {
		raw, err := docs.FetchDocument(ctx, f)
		if err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Str("accession", f.AccessionNumber).Msg("S-4 document fetch failed")
			ev.warnings = append(ev.warnings, fmt.Sprintf("S-4 document %s unavailable: %v", f.AccessionNumber, err))
			continue
		}
		ev.texts = append(ev.texts, raw.Text)
		ev.documents++
	}
	return ev
}

func (e *Engine) fetch(ctx context.Context, ticker string, since time.Time) *fetched {
	data := &fetched{errs: map[string]error{}}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	run := func(name string, fn func(context.Context, string, time.Time) ([]models.FilingSummary, error), dst *[]models.FilingSummary) {
		g.Go(func() error {
			list, err := fn(gctx, ticker, since)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn().Err(err).Str("ticker", ticker).Str("source", name).Msg("filing fetch failed")
				data.errs[name] = err
				return nil // non-fatal
			}
			*dst = list
			return nil
		})
	}
	run("eight_ks", e.source.RecentEightKs, &data.eightKs)
	run("s4", e.source.S4Filings, &data.s4s)
	run("material_events", e.source.MaterialEvents, &data.events)

	_ = g.Wait()
	return data
}
