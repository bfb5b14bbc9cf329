package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/date"
	"github.com/etnz/finmgr/eodhd"
	"github.com/etnz/finmgr/market"
	"github.com/etnz/finmgr/renderer"
	"github.com/google/subcommands"
)

type npvCmd struct {
	input string
	start string
	end   string
	fetch bool
}

func (*npvCmd) Name() string     { return "npv" }
func (*npvCmd) Synopsis() string { return "report the daily net present value of every position" }
func (*npvCmd) Usage() string {
	return `fm npv [-i <file>] -s <start_date> [-e <end_date>] [-fetch]

  Reads JSONL transactions and reports, for every day of the range and per
  account type, the value of each position at its closing price.

  Prices are read from the -prices-file. With -fetch, the prices missing
  over the range are first fetched from eodhd.com and saved back; this
  requires the EODHD_API_KEY environment variable.

  Dates accept ISO dates or relative ones like -1w or 0d for today.
`
}

func (c *npvCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "-", "JSONL transactions file, '-' for stdin")
	f.StringVar(&c.start, "s", "-1m", "first day of the report")
	f.StringVar(&c.end, "e", "0d", "last day of the report")
	f.BoolVar(&c.fetch, "fetch", false, "fetch missing prices from eodhd.com first")
}

func (c *npvCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := parseRange(c.start, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	transactions, err := readTransactions(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	prices, err := market.Load(*pricesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.fetch {
		if err := LoadEnv(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %q: %v\n", *envFile, err)
			return subcommands.ExitFailure
		}
		key := os.Getenv(eodhd.APIKeyEnv)
		if key == "" {
			fmt.Fprintf(os.Stderr, "Error: %s is not set\n", eodhd.APIKeyEnv)
			return subcommands.ExitFailure
		}
		client := eodhd.NewClient(key, logger())
		// a partial update is still worth saving.
		updateErr := client.Update(ctx, prices, tradedSecurities(transactions), r)
		if err := prices.Save(*pricesFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving prices: %v\n", err)
			return subcommands.ExitFailure
		}
		if updateErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", updateErr)
		}
	}

	printMarkdown(renderer.DailyMarkdown(npvReport(transactions, prices, r)))
	return subcommands.ExitSuccess
}

// npvReport values the positions over r. Transactions before r are folded
// into the starting portfolio.
func npvReport(transactions []finmgr.Transaction, prices finmgr.PriceLookup, r date.Range) finmgr.Report {
	operations := []finmgr.TransactionOperation{finmgr.AverageCostBasis{}}
	daily := []finmgr.DailyOperation{finmgr.NetPresentValue{Prices: prices}}
	history, current := finmgr.Split(transactions, r.From)
	start := finmgr.Process(finmgr.NewPortfolio(), operations, history)
	return finmgr.Daily(start, operations, daily, current, r)
}

// parseRange parses an inclusive date range.
func parseRange(start, end string) (date.Range, error) {
	from, err := date.Parse(start)
	if err != nil {
		return date.Range{}, fmt.Errorf("invalid start date: %w", err)
	}
	to, err := date.Parse(end)
	if err != nil {
		return date.Range{}, fmt.Errorf("invalid end date: %w", err)
	}
	if to.Before(from) {
		return date.Range{}, fmt.Errorf("end date %s is before start date %s", to, from)
	}
	return date.NewRange(from, to), nil
}

// tradedSecurities returns the named securities involved in transactions,
// sorted.
func tradedSecurities(transactions []finmgr.Transaction) []finmgr.Security {
	var list []finmgr.Security
	for _, tx := range transactions {
		s, ok := tx.Security.Get()
		if !ok || s.IsUnknown() || slices.Contains(list, s) {
			continue
		}
		list = append(list, s)
	}
	slices.SortFunc(list, func(a, b finmgr.Security) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return list
}
