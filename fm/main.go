// Command fm parses brokerage statements and reports on the portfolio they
// describe.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/finmgr/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Shell completion, exits when invoked by the shell.
	cmd.Completion().Complete("fm")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
