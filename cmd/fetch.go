package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/eodhd"
	"github.com/etnz/finmgr/market"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	start  string
	end    string
	apiKey string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch daily closing prices from eodhd.com" }
func (*fetchCmd) Usage() string {
	return `fm fetch [-s <start_date>] [-e <end_date>] <symbol:currency>...

  Fetches the daily closes missing from the -prices-file over the date
  range, for every security given as SYMBOL:CURRENCY (e.g. XEQT:CAD), and
  saves them back.

  Requires the EODHD_API_KEY environment variable to be set, possibly in
  the -env-file, or passed with -eodhd-api-key.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "-1m", "first day to fetch")
	f.StringVar(&c.end, "e", "0d", "last day to fetch")
	f.StringVar(&c.apiKey, "eodhd-api-key", "", "EODHD API key, takes precedence over the "+eodhd.APIKeyEnv+" environment variable")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := parseRange(c.start, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one SYMBOL:CURRENCY is required")
		return subcommands.ExitUsageError
	}
	securities := make([]finmgr.Security, 0, f.NArg())
	for _, arg := range f.Args() {
		s, err := parseSecurity(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		securities = append(securities, s)
	}

	if err := LoadEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %q: %v\n", *envFile, err)
		return subcommands.ExitFailure
	}
	key := c.apiKey
	if key == "" {
		key = os.Getenv(eodhd.APIKeyEnv)
	}
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable\n", eodhd.APIKeyEnv)
		return subcommands.ExitFailure
	}

	prices, err := market.Load(*pricesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}
	before := prices.Len()

	client := eodhd.NewClient(key, logger())
	updateErr := client.Update(ctx, prices, securities, r)
	if err := prices.Save(*pricesFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving prices: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Fetched %d new closes into %s\n", prices.Len()-before, *pricesFile)
	if updateErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", updateErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseSecurity parses a "SYMBOL:CURRENCY" argument.
func parseSecurity(arg string) (finmgr.Security, error) {
	symbol, currency, ok := strings.Cut(arg, ":")
	s := finmgr.NewSecurity(symbol, currency)
	if !ok || s.Symbol == "" {
		return finmgr.Security{}, fmt.Errorf("invalid security %q, want SYMBOL:CURRENCY", arg)
	}
	if !finmgr.IsKnownCurrency(s.Currency) {
		return finmgr.Security{}, fmt.Errorf("invalid security %q: unknown currency %q", arg, s.Currency)
	}
	return s, nil
}
