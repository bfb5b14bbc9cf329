package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finmgr/docs"
	"github.com/google/subcommands"
)

// topicCmd prints pages of the embedded user guide.
type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the fm user guide" }
func (*topicCmd) Usage() string {
	return `fm topic [statements|transactions|acb|npv|*]...

  Prints the user guide pages: the supported statement formats, the
  transaction exchange format, and the acb and npv reports. '*' prints the
  whole guide. Without argument, prints the list of pages.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pages := f.Args()
	if len(pages) == 0 {
		pages = []string{docs.Index}
	}
	guide, err := docs.GetTopics(pages...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: no such page: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(guide)
	return subcommands.ExitSuccess
}
