package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/parse"
	"github.com/etnz/finmgr/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

type parseCmd struct {
	validate bool
	output   string
	markdown bool
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "parse brokerage statements into transactions" }
func (*parseCmd) Usage() string {
	return `fm parse [-validate] [-o <file>] [-md] <path>...

  Parses every statement found in the given paths. Directories are
  traversed recursively and files are dispatched on their extension
  (.csv, .xlsx, .pdf). Documents no parser recognizes are skipped.

  Transactions are written as JSONL, sorted by date, to stdout or to the
  -o file.
`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.validate, "validate", false, "drop transactions that fail validation, logging the violations")
	f.StringVar(&c.output, "o", "", "output file for the JSONL transactions (defaults to stdout)")
	f.BoolVar(&c.markdown, "md", false, "print a markdown table instead of JSONL")
}

func (c *parseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one statement file or folder is required")
		return subcommands.ExitUsageError
	}
	log := logger()

	registry := parse.NewRegistry(DefaultParsers(log))
	transactions := finmgr.SortTransactions(registry.Walk(f.Args()...))
	if c.validate {
		transactions = validTransactions(log, transactions)
	}

	if c.markdown {
		printMarkdown(renderer.TransactionsMarkdown(transactions))
		return subcommands.ExitSuccess
	}

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	if err := finmgr.EncodeTransactions(w, transactions); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// validTransactions filters out the transactions that fail validation.
func validTransactions(log zerolog.Logger, transactions []finmgr.Transaction) []finmgr.Transaction {
	valid := make([]finmgr.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if err := finmgr.Validate(tx); err != nil {
			log.Warn().Err(err).Str("transaction", renderer.Transaction(tx)).Msg("invalid transaction dropped")
			continue
		}
		valid = append(valid, tx)
	}
	return valid
}
