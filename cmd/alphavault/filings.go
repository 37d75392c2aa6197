package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/alphavault/internal/filingtext"
	"github.com/seenimoa/alphavault/pkg/models"
	"github.com/seenimoa/alphavault/pkg/utils"
)

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// --- Parse Command ---

var parseCmd = &cobra.Command{
	Use:   "parse [s4|8k] [file|-]",
	Short: "Parse an S-4 or 8-K document into a structured record",
	Long: `Parse a filing document (HTML or plain text) and print the record as JSON.

Examples:
  alphavault parse s4 merger-s4.htm
  alphavault parse 8k - < current-report.txt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := parseFormArg(args[0])
		if err != nil {
			return err
		}
		body, err := readInput(cmd, args[1])
		if err != nil {
			return err
		}
		text, err := filingtext.Normalize(string(body))
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}

		raw := models.RawFiling{Text: text, FormType: form}
		var rec any
		if form == models.FormS4 {
			rec, err = a.S4.ParseFiling(raw)
		} else {
			rec, err = a.Form8K.ParseFiling(raw)
		}
		var perr *models.ParseError
		if errors.As(err, &perr) {
			_ = printJSON(cmd.OutOrStdout(), perr)
			return perr
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), rec)
	},
}

func parseFormArg(s string) (models.FormType, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "")) {
	case "s4":
		return models.FormS4, nil
	case "8k":
		return models.Form8K, nil
	}
	return "", fmt.Errorf("unknown form %q (want s4 or 8k)", s)
}

// --- Fetch Command ---

var fetchCmd = &cobra.Command{
	Use:   "fetch [ticker|cik]",
	Short: "List recent EDGAR filings for a company",
	Long: `List recent filings from the EDGAR submissions API.

Examples:
  alphavault fetch AAPL
  alphavault fetch AAPL --form S-4 --since 2024-01-01
  alphavault fetch AAPL --form 8-K --parse`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := utils.NormalizeTicker(args[0])
		forms, _ := cmd.Flags().GetStringSlice("form")
		sinceStr, _ := cmd.Flags().GetString("since")
		limit, _ := cmd.Flags().GetInt("limit")
		parse, _ := cmd.Flags().GetBool("parse")

		var since time.Time
		if sinceStr != "" {
			t, err := utils.ParseFilingDate(sinceStr)
			if err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}
			since = t
		}
		formTypes := make([]models.FormType, 0, len(forms))
		for _, f := range forms {
			formTypes = append(formTypes, models.FormType(strings.ToUpper(strings.TrimSpace(f))))
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		filings, err := a.Edgar.Filings(cmd.Context(), ticker, formTypes, since)
		if err != nil {
			return err
		}
		if limit > 0 && len(filings) > limit {
			filings = filings[:limit]
		}

		out := cmd.OutOrStdout()
		if !parse {
			fmt.Fprintf(out, "📄 %s — %d filings\n", ticker, len(filings))
			for _, f := range filings {
				flags := ""
				if f.IsAcquisition {
					flags += " [M&A]"
				}
				if f.IsMaterialAgreement {
					flags += " [agreement]"
				}
				if f.IsLeadershipChange {
					flags += " [leadership]"
				}
				fmt.Fprintf(out, "  %s  %-8s %s %s%s\n",
					utils.FormatDate(f.FiledDate), f.FormType, f.AccessionNumber, strings.Join(f.Items, ","), flags)
			}
			return nil
		}

		if len(filings) == 0 {
			return fmt.Errorf("no filings for %s", ticker)
		}
		raw, err := a.Edgar.FetchDocument(cmd.Context(), filings[0])
		if err != nil {
			return err
		}
		var rec any
		switch raw.FormType {
		case models.FormS4, models.FormS4A:
			rec, err = a.S4.ParseFiling(raw)
		case models.Form8K, models.Form8KA:
			rec, err = a.Form8K.ParseFiling(raw)
		default:
			return fmt.Errorf("no parser for form %s", raw.FormType)
		}
		if err != nil {
			return err
		}
		return printJSON(out, rec)
	},
}

func init() {
	fetchCmd.Flags().StringSlice("form", nil, "form types to include (e.g. 8-K,S-4)")
	fetchCmd.Flags().String("since", "", "only filings on or after this date (YYYY-MM-DD)")
	fetchCmd.Flags().Int("limit", 20, "maximum filings to list")
	fetchCmd.Flags().Bool("parse", false, "fetch and parse the most recent S-4 or 8-K document")
}
