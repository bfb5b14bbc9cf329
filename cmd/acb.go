package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/renderer"
	"github.com/google/subcommands"
)

type acbCmd struct {
	input string
}

func (*acbCmd) Name() string     { return "acb" }
func (*acbCmd) Synopsis() string { return "compute the average cost basis of every position" }
func (*acbCmd) Usage() string {
	return `fm acb [-i <file>]

  Reads JSONL transactions, as written by 'fm parse', folds them in date
  order into an average cost basis portfolio and prints, per account type,
  the quantity held, the cost basis and the cost per share of every
  security.
`
}

func (c *acbCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "-", "JSONL transactions file, '-' for stdin")
}

func (c *acbCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	transactions, err := readTransactions(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	operations := []finmgr.TransactionOperation{finmgr.AverageCostBasis{}}
	p := finmgr.Process(finmgr.NewPortfolio(), operations, transactions)
	printMarkdown(renderer.PortfolioMarkdown(p))
	return subcommands.ExitSuccess
}
