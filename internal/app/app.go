// Package app wires configuration into the filing parsers, the EDGAR
// client and the analytics engines shared by the CLI and the API server.
package app

import (
	"fmt"
	"time"

	"github.com/phuslu/log"

	"github.com/seenimoa/alphavault/internal/config"
	"github.com/seenimoa/alphavault/internal/edgar"
	"github.com/seenimoa/alphavault/internal/form8k"
	"github.com/seenimoa/alphavault/internal/ma"
	"github.com/seenimoa/alphavault/internal/quotescore"
	"github.com/seenimoa/alphavault/internal/ranking"
	"github.com/seenimoa/alphavault/internal/refdata"
	"github.com/seenimoa/alphavault/internal/s4"
)

// Version is set at build time with -ldflags "-X ...app.Version=v1.2.3".
var Version = "dev"

// App holds all application components.
type App struct {
	Config  *config.Config
	RefData *refdata.Data
	Edgar   *edgar.Client
	S4      *s4.Parser
	Form8K  *form8k.Parser
	MA      *ma.Engine
	Ranker  *ranking.Ranker
	Quotes  *quotescore.Scorer
}

// Option adjusts how New builds components.
type Option func(*options)

type options struct {
	source ma.FilingSource
	now    func() time.Time
}

// WithFilingSource replaces the EDGAR client as the M&A engine's source.
func WithFilingSource(src ma.FilingSource) Option {
	return func(o *options) { o.source = src }
}

// WithClock fixes the clock of every time-dependent component.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds the application from cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	ref, err := refdata.Load(cfg.RefData.Path)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	client := edgar.NewClient(
		edgar.WithUserAgent(cfg.Edgar.UserAgent),
		edgar.WithDataURL(cfg.Edgar.DataURL),
		edgar.WithArchivesURL(cfg.Edgar.ArchivesURL),
		edgar.WithBrowseURL(cfg.Edgar.BrowseURL),
		edgar.WithTickersURL(cfg.Edgar.TickersURL),
		edgar.WithRateLimit(cfg.Edgar.RateLimit),
		edgar.WithTimeout(cfg.Edgar.Timeout()),
		edgar.WithCacheTTL(cfg.Edgar.CacheDuration()),
	)
	if cfg.Edgar.UserAgent == "" {
		log.Warn().Str("user_agent", client.UserAgent()).Msg("no EDGAR identity configured; set ALPHAVAULT_EDGAR_USER_AGENT")
	}

	var source ma.FilingSource = client
	if o.source != nil {
		source = o.source
	}

	return &App{
		Config:  cfg,
		RefData: ref,
		Edgar:   client,
		S4: s4.New(ref,
			s4.WithMinLength(cfg.Parser.S4MinLength),
			s4.WithExcerptLength(cfg.Parser.ExcerptLength),
			s4.WithClock(o.now),
		),
		Form8K: form8k.New(ref,
			form8k.WithMinLength(cfg.Parser.Form8KMinLength),
			form8k.WithExcerptLength(cfg.Parser.ExcerptLength),
			form8k.WithSectionCap(cfg.Parser.SectionCap),
			form8k.WithClock(o.now),
		),
		MA: ma.NewEngine(source,
			ma.WithRefData(ref),
			ma.WithActivityWindow(cfg.Analytics.ActivityWindowDays),
			ma.WithClock(o.now),
		),
		Ranker: ranking.New(ref, ranking.WithClock(o.now)),
		Quotes: quotescore.New(quotescore.WithClock(o.now)),
	}, nil
}
