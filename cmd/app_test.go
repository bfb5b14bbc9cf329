package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/date"
	"github.com/etnz/finmgr/docs"
	"github.com/etnz/finmgr/market"
	"github.com/etnz/finmgr/parse"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rbcExport is a minimal RBC activity export.
const rbcExport = `"Activity Export as of Mar 31, 2021 10:02:13 PM ET"

"Account","68000001"
"Period","2021-03-01 to 2021-03-31"

"Filters"
"Activity","All"

"Date","Activity","Symbol","Symbol Description","Quantity","Price","Settlement Date","Account","Value","Currency","Description"
"2021-03-01","Deposits & Contributions","","","","","2021-03-01","68000001","5000.00","CAD","CONTRIBUTION"
"2021-03-02","Buy","XEQ","ISHARES MSCI EAFE IMI INDEX ETF","100","27.45","2021-03-04","68000001","-2745.00","CAD","BOUGHT 100 XEQ"
`

// execute runs a command with args the way subcommands does.
func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return c.Execute(context.Background(), f)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "warn", false)
	log.Info().Msg("hidden")
	log.Warn().Str("path", "a.csv").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"path":"a.csv"`)
	assert.Contains(t, out, `"level":"warn"`)

	assert.Equal(t, zerolog.InfoLevel, NewLogger(&buf, "verbose", false).GetLevel())
	assert.Equal(t, zerolog.DebugLevel, NewLogger(&buf, "DEBUG", true).GetLevel())
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadEnv(filepath.Join(dir, "missing.env")))

	filename := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(filename, []byte("FM_TEST_LOADED=yes\nFM_TEST_SET=file\n"), 0644))
	t.Setenv("FM_TEST_SET", "env")
	require.NoError(t, LoadEnv(filename))
	defer os.Unsetenv("FM_TEST_LOADED")

	assert.Equal(t, "yes", os.Getenv("FM_TEST_LOADED"))
	assert.Equal(t, "env", os.Getenv("FM_TEST_SET"))
}

func TestDefaultParsers(t *testing.T) {
	registry := parse.NewRegistry(DefaultParsers(zerolog.Nop()))
	want := "csv=[rbc-csv] xlsx=[questrade-xlsx] pdf=[questrade-pdf-current questrade-pdf-legacy]"
	assert.Equal(t, want, registry.String())
}

func TestParseSecurity(t *testing.T) {
	tests := []struct {
		arg     string
		want    finmgr.Security
		wantErr bool
	}{
		{arg: "XEQT:CAD", want: finmgr.NewSecurity("XEQT", "CAD")},
		{arg: "vti:usd", want: finmgr.NewSecurity("VTI", "USD")},
		{arg: "XEQT", wantErr: true},
		{arg: ":CAD", wantErr: true},
		{arg: "XEQT:ZZZ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseSecurity(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRange(t *testing.T) {
	r, err := parseRange("2021-03-01", "2021-03-31")
	require.NoError(t, err)
	assert.Equal(t, date.New(2021, 3, 1), r.From)
	assert.Equal(t, 31, r.Len())

	_, err = parseRange("2021-03-31", "2021-03-01")
	assert.Error(t, err)
	_, err = parseRange("yesterday", "0d")
	assert.Error(t, err)
}

func TestTradedSecurities(t *testing.T) {
	vti := finmgr.NewSecurity("VTI", "USD")
	xeqt := finmgr.NewSecurity("XEQT", "CAD")
	unknown := finmgr.NewSecurity(finmgr.UnknownSymbol, "CAD")
	on := date.New(2021, 3, 1)

	transactions := []finmgr.Transaction{
		finmgr.NewBuy(on, finmgr.UnknownAccount, xeqt, finmgr.Q(1), finmgr.M(10, "CAD"), finmgr.M(0, "CAD")),
		finmgr.NewDeposit(on, finmgr.UnknownAccount, finmgr.M(100, "CAD")),
		finmgr.NewBuy(on, finmgr.UnknownAccount, vti, finmgr.Q(1), finmgr.M(10, "USD"), finmgr.M(0, "USD")),
		finmgr.NewBuy(on, finmgr.UnknownAccount, unknown, finmgr.Q(1), finmgr.M(10, "CAD"), finmgr.M(0, "CAD")),
		finmgr.NewBuy(on, finmgr.UnknownAccount, xeqt, finmgr.Q(2), finmgr.M(10, "CAD"), finmgr.M(0, "CAD")),
	}
	assert.Equal(t, []finmgr.Security{vti, xeqt}, tradedSecurities(transactions))
}

func TestValidTransactions(t *testing.T) {
	on := date.New(2021, 3, 1)
	xeqt := finmgr.NewSecurity("XEQT", "CAD")
	valid := finmgr.NewBuy(on, finmgr.UnknownAccount, xeqt, finmgr.Q(1), finmgr.M(10, "CAD"), finmgr.M(0, "CAD"))
	invalid := valid
	invalid.Net = finmgr.M(-1, "CAD")

	var buf bytes.Buffer
	got := validTransactions(NewLogger(&buf, "warn", false), []finmgr.Transaction{valid, invalid})
	assert.Len(t, got, 1)
	assert.Contains(t, buf.String(), "invalid transaction dropped")
}

func TestParseThenReport(t *testing.T) {
	dir := t.TempDir()
	statements := filepath.Join(dir, "statements")
	require.NoError(t, os.Mkdir(statements, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(statements, "rbc.csv"), []byte(rbcExport), 0644))
	output := filepath.Join(dir, "transactions.jsonl")

	require.Equal(t, subcommands.ExitSuccess, execute(t, &parseCmd{}, "-validate", "-o", output, statements))

	transactions, err := readTransactions(output)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, finmgr.Deposit, transactions[0].Action)
	assert.Equal(t, finmgr.Buy, transactions[1].Action)

	assert.Equal(t, subcommands.ExitSuccess, execute(t, &acbCmd{}, "-i", output))

	prices := market.NewPrices()
	prices.Set(finmgr.NewSecurity("XEQ", "CAD"), date.New(2021, 3, 2), decimal.NewFromFloat(27.5))
	previous := *pricesFile
	defer func() { *pricesFile = previous }()
	*pricesFile = filepath.Join(dir, "prices.jsonl")
	require.NoError(t, prices.Save(*pricesFile))

	assert.Equal(t, subcommands.ExitSuccess, execute(t, &npvCmd{}, "-i", output, "-s", "2021-03-01", "-e", "2021-03-05"))
	assert.Equal(t, subcommands.ExitUsageError, execute(t, &npvCmd{}, "-i", output, "-s", "2021-03-05", "-e", "2021-03-01"))
}

func TestNPVReportIncludesHistory(t *testing.T) {
	xeqt := finmgr.NewSecurity("XEQT", "CAD")
	buy := func(on date.Date) finmgr.Transaction {
		return finmgr.NewBuy(on, finmgr.UnknownAccount, xeqt, finmgr.Q(10), finmgr.M(20, "CAD"), finmgr.M(0, "CAD"))
	}
	prices := market.NewPrices()
	prices.Set(xeqt, date.New(2021, 3, 1), decimal.NewFromInt(25))

	r := date.NewRange(date.New(2021, 3, 2), date.New(2021, 3, 3))
	report := npvReport([]finmgr.Transaction{buy(date.New(2021, 2, 1)), buy(date.New(2021, 3, 3))}, prices, r)

	for on, want := range map[date.Date]finmgr.Money{
		date.New(2021, 3, 2): finmgr.M(250, "CAD"),
		date.New(2021, 3, 3): finmgr.M(500, "CAD"),
	} {
		got, ok := report.Get(on, finmgr.NonRegistered, "NPV", xeqt)
		require.True(t, ok, "missing NPV on %v", on)
		assert.True(t, got.Equal(want), "NPV(%v) = %v, want %v", on, got, want)
	}
}

func TestCommandErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.jsonl")
	assert.Equal(t, subcommands.ExitUsageError, execute(t, &parseCmd{}))
	assert.Equal(t, subcommands.ExitFailure, execute(t, &acbCmd{}, "-i", missing))
	assert.Equal(t, subcommands.ExitUsageError, execute(t, &fetchCmd{}, "-s", "2021-03-01", "-e", "2021-03-05"))
	assert.Equal(t, subcommands.ExitUsageError, execute(t, &fetchCmd{}, "-s", "2021-03-01", "-e", "2021-03-05", "XEQT"))
	assert.Equal(t, subcommands.ExitFailure, execute(t, &topicCmd{}, "nope"))
	assert.Equal(t, subcommands.ExitSuccess, execute(t, &topicCmd{}))
}

func TestTopicUsageListsPages(t *testing.T) {
	pages, err := docs.GetAllTopics()
	require.NoError(t, err)
	usage := (&topicCmd{}).Usage()
	for _, page := range pages {
		assert.Contains(t, usage, page)
	}
}

func TestCommandsAreDocumented(t *testing.T) {
	for _, c := range Commands {
		assert.True(t, strings.HasPrefix(c.Usage(), "fm "+c.Name()+" "), "usage of %s", c.Name())
		assert.NotEmpty(t, c.Synopsis())
	}
}
