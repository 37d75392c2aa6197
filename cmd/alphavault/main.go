// AlphaVault — SEC filing intelligence for deal research
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/alphavault/api"
	"github.com/seenimoa/alphavault/internal/app"
	"github.com/seenimoa/alphavault/internal/config"
	"github.com/seenimoa/alphavault/internal/logging"
	"github.com/seenimoa/alphavault/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	commit = "unknown"
	date   = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "alphavault",
	Short: "AlphaVault — SEC filing intelligence for deal research",
	Long: `AlphaVault parses S-4 registration statements and 8-K current reports,
scores merger activity from EDGAR filing streams, ranks deal filings and
scores stock quotes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		level := cfg.Logging.Level
		if override, _ := cmd.Flags().GetString("log-level"); override != "" {
			level = override
		}
		logging.Setup(level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(maCmd)
	rootCmd.AddCommand(premiumCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(quoteCmd)
}

// newApp builds the components for the current config.
func newApp() (*app.App, error) {
	return app.New(cfg)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "AlphaVault %s\n", app.Version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return api.NewServer(a).ListenAndServe(cfg.API.Addr())
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintln(out, "  AlphaVault — System Status")
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintf(out, "  Version:       %s (%s)\n", app.Version, commit)
		fmt.Fprintf(out, "  Date (ET):     %s\n", utils.FormatDate(utils.NowET()))
		fmt.Fprintln(out)

		fmt.Fprintln(out, "  Configuration:")
		fmt.Fprintf(out, "    EDGAR data:    %s\n", cfg.Edgar.DataURL)
		fmt.Fprintf(out, "    Rate limit:    %d req/s\n", cfg.Edgar.RateLimit)
		fmt.Fprintf(out, "    Lookback:      %d days\n", cfg.Analytics.LookbackDays)
		fmt.Fprintf(out, "    API Server:    %s\n", cfg.API.Addr())
		fmt.Fprintln(out)

		fmt.Fprintln(out, "  Credentials:")
		for _, k := range config.CheckCredentials(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Fprintf(out, "    %-25s %s\n", k.Name+":", status)
			if k.Note != "" {
				fmt.Fprintf(out, "    %-25s ⚠️  %s\n", "", k.Note)
			}
		}

		offline, _ := cmd.Flags().GetBool("offline")
		if !offline {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			fmt.Fprintln(out)
			if err := a.Edgar.Ping(ctx); err != nil {
				fmt.Fprintf(out, "  EDGAR:         ❌ %v\n", err)
			} else {
				fmt.Fprintln(out, "  EDGAR:         ✅ reachable")
			}
		}

		fmt.Fprintln(out, "═══════════════════════════════════════")
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("offline", false, "skip the EDGAR connectivity check")
}
