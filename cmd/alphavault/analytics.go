package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seenimoa/alphavault/internal/ranking"
	"github.com/seenimoa/alphavault/pkg/models"
	"github.com/seenimoa/alphavault/pkg/utils"
)

// --- M&A Command ---

var maCmd = &cobra.Command{
	Use:   "ma [ticker|cik]",
	Short: "Score the probability that a company is in play",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lookback, _ := cmd.Flags().GetInt("lookback")
		asJSON, _ := cmd.Flags().GetBool("json")
		if lookback <= 0 {
			lookback = cfg.Analytics.LookbackDays
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		res, err := a.MA.CalculateMAProbability(cmd.Context(), args[0], lookback)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return printJSON(out, res)
		}
		fmt.Fprintf(out, "🎯 M&A probability: %s — %d/100 (%s)\n", res.Ticker, res.ProbabilityScore, res.RiskLevel)
		fmt.Fprintf(out, "   Lookback: %d days, %d filings, coverage %.0f%% (nominal score %d)\n",
			res.LookbackDays, res.FilingsAnalyzed, res.Coverage*100, res.NominalScore)
		for _, s := range res.Signals {
			if !s.Available {
				fmt.Fprintf(out, "   %-22s  n/a\n", s.Name)
				continue
			}
			fmt.Fprintf(out, "   %-22s %4d  (weight %.2f) %s\n", s.Name, s.Score, s.Weight, s.Detail)
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "   ⚠️  %s\n", w)
		}
		return nil
	},
}

func init() {
	maCmd.Flags().Int("lookback", 0, "lookback window in days (default from config)")
	maCmd.Flags().Bool("json", false, "print the full result as JSON")
}

// --- Premium Command ---

var premiumCmd = &cobra.Command{
	Use:   "premium",
	Short: "Estimate the takeover premium for a target",
	Long: `Estimate the control premium from sector and market capitalization.

Example:
  alphavault premium --price 42.50 --sector Technology --market-cap 5e9`,
	RunE: func(cmd *cobra.Command, args []string) error {
		price, _ := cmd.Flags().GetFloat64("price")
		sector, _ := cmd.Flags().GetString("sector")
		mcap, _ := cmd.Flags().GetFloat64("market-cap")

		a, err := newApp()
		if err != nil {
			return err
		}
		p, err := a.MA.CalculateTakeoverPremium(models.TakeoverPremiumRequest{
			CurrentPrice: price, Sector: sector, MarketCap: mcap,
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "💰 Takeover premium: %s\n", utils.FormatPct(p.PremiumPercent))
		fmt.Fprintf(out, "   Base %s, size adjustment %s\n", utils.FormatPct(p.BasePremium), utils.FormatPct(p.SizeAdjustment))
		fmt.Fprintf(out, "   Target price: %s (current %s)\n", utils.FormatUSD(p.TargetPrice), utils.FormatUSD(p.CurrentPrice))
		return nil
	},
}

func init() {
	premiumCmd.Flags().Float64("price", 0, "current share price")
	premiumCmd.Flags().String("sector", "", "target sector")
	premiumCmd.Flags().Float64("market-cap", 0, "market capitalization in USD")
}

// --- Timeline Command ---

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Predict the regulatory timeline to close a deal",
	Long: `Predict months to close from the approvals a deal needs.

Example:
  alphavault timeline --approvals FTC,DOJ,"European Commission" --announced 2024-01-15`,
	RunE: func(cmd *cobra.Command, args []string) error {
		approvals, _ := cmd.Flags().GetStringSlice("approvals")
		announced, _ := cmd.Flags().GetString("announced")

		req := models.TimelineRequest{ApprovalsRequired: approvals}
		if announced != "" {
			t, err := utils.ParseFilingDate(announced)
			if err != nil {
				return fmt.Errorf("invalid --announced: %w", err)
			}
			req.AnnouncedDate = &t
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		tl := a.MA.PredictRegulatoryTimeline(req)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "⏳ Estimated timeline: %d months (base %d)\n", tl.Months, tl.BaseMonths)
		for _, c := range tl.Components {
			fmt.Fprintf(out, "   + %-22s %d months\n", c.Authority, c.Months)
		}
		if tl.ExpectedClose != nil {
			fmt.Fprintf(out, "   Expected close: %s\n", utils.FormatDate(*tl.ExpectedClose))
		}
		return nil
	},
}

func init() {
	timelineCmd.Flags().StringSlice("approvals", nil, "required approvals (FTC, DOJ, CFIUS, European Commission, ...)")
	timelineCmd.Flags().String("announced", "", "announcement date (YYYY-MM-DD)")
}

// --- Rank Command ---

var rankCmd = &cobra.Command{
	Use:   "rank [file|-]",
	Short: "Rank deal filings from a JSON array of candidates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asHTML, _ := cmd.Flags().GetBool("html")

		body, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		var deals []models.DealCandidate
		if err := json.Unmarshal(body, &deals); err != nil {
			return fmt.Errorf("decode deals: %w", err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		md := ranking.Narrate(a.Ranker.Rank(deals), limit)
		if asHTML {
			html, err := ranking.RenderHTML(md)
			if err != nil {
				return err
			}
			md = html
		}
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rankCmd.Flags().Int("limit", ranking.DefaultNarrateLimit, "number of deals to show")
	rankCmd.Flags().Bool("html", false, "render the summary as HTML")
}

// --- Quote Command ---

var quoteCmd = &cobra.Command{
	Use:   "quote [file|-]",
	Short: "Compute the composite score of a stock quote",
	Long: `Score a quote read as JSON: {"quote": {...}, "profile": {...}}.
The profile is optional.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		var in struct {
			Quote   models.Quote           `json:"quote"`
			Profile *models.CompanyProfile `json:"profile"`
		}
		if err := json.Unmarshal(body, &in); err != nil {
			return fmt.Errorf("decode quote: %w", err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		cs, err := a.Quotes.Score(in.Quote, in.Profile)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "📊 %s — %d/100 %s\n", cs.Symbol, cs.Overall, cs.Rating)
		fmt.Fprintf(out, "   Technical %d · Momentum %d · Value %d · Sentiment %d\n",
			cs.Technical, cs.Momentum, cs.Value, cs.Sentiment)
		fmt.Fprintf(out, "   Quality %s · Risk %s\n", cs.QualityGrade, cs.RiskRating)
		if len(cs.Insights) > 0 {
			fmt.Fprintf(out, "   %s\n", strings.Join(cs.Insights, "\n   "))
		}
		return nil
	},
}
