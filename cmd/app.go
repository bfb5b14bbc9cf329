// Package cmd implements the fm command line application: parsing brokerage
// statements and running portfolio operations over the result.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/eodhd"
	"github.com/etnz/finmgr/parse"
	"github.com/etnz/finmgr/questrade"
	"github.com/etnz/finmgr/rbc"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Commands lists every fm subcommand.
var Commands = []subcommands.Command{
	&parseCmd{},
	&acbCmd{},
	&npvCmd{},
	&fetchCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&parseCmd{}, "statements")

	c.Register(&acbCmd{}, "reports")
	c.Register(&npvCmd{}, "reports")

	c.Register(&fetchCmd{}, "market")

	c.Register(&topicCmd{}, "help")
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	logLevel   = flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	logPretty  = flag.Bool("log-pretty", true, "Human readable logs on stderr instead of JSON")
	envFile    = flag.String("env-file", ".env", "Optional file of environment variables to load, like "+eodhd.APIKeyEnv)
	pricesFile = flag.String("prices-file", "prices.jsonl", "Path to the daily closing prices file (JSONL format)")
)

// NewLogger builds the application logger writing to out.
//
// Unknown levels fall back to info.
func NewLogger(out io.Writer, level string, pretty bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// logger returns the logger configured by the global flags.
func logger() zerolog.Logger { return NewLogger(os.Stderr, *logLevel, *logPretty) }

// LoadEnv loads environment variables from filename. Variables already set
// win, and a missing file is not an error.
func LoadEnv(filename string) error {
	err := godotenv.Load(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// DefaultParsers returns the standard parser list for each document kind.
func DefaultParsers(log zerolog.Logger) parse.Config {
	return parse.Config{
		CSV: []parse.Parser[parse.Lines]{
			rbc.NewCSV(log),
		},
		XLSX: []parse.Parser[parse.Rows]{
			questrade.NewXLSX(log),
		},
		PDF: []parse.Parser[parse.Lines]{
			questrade.NewPDF(questrade.CurrentRevision(), log),
			questrade.NewPDF(questrade.LegacyRevision(), log),
		},
		Logger: log,
	}
}

// readTransactions decodes JSONL transactions from filename, or stdin when
// filename is empty or "-".
func readTransactions(filename string) ([]finmgr.Transaction, error) {
	if filename == "" || filename == "-" {
		return finmgr.DecodeTransactions(os.Stdin)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open transactions file %q: %w", filename, err)
	}
	defer f.Close()
	return finmgr.DecodeTransactions(f)
}

// printMarkdown renders md on the terminal, or prints it raw when it cannot
// be rendered.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
