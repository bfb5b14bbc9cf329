package questrade

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/date"
	"github.com/etnz/finmgr/parse"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

var activities = parse.Rows{
	xlsxHeader,
	{"2021-03-01 12:00:00 AM", "2021-03-03 12:00:00 AM", "Buy", "XEQ", "ISHARES MSCI EAFE", "100", "27.45", "-2745.00", "-4.95", "-2749.95", "CAD", "51234567", "Trades", "Individual TFSA"},
	{"2021-03-31 12:00:00 AM", "2021-03-31 12:00:00 AM", "", "", "INTEREST", "0", "0", "0", "0", "-1.23", "CAD", "51234567", "Interest", "Individual TFSA"},
	{"2021-04-01 12:00:00 AM", "2021-04-01 12:00:00 AM", "DIV", "VTI", "VANGUARD TOTAL STOCK MARKET", "0", "0", "0", "0", "12.10", "USD", "51234568", "Dividends", "Individual margin"},
	{"2021-04-02 12:00:00 AM", "2021-04-02 12:00:00 AM", "XYZ", "", "UNKNOWN CODE", "", "", "", "", "1.00", "CAD", "51234569", "Other", "Joint"},
	{"2021-04-03 12:00:00 AM", "2021-04-03 12:00:00 AM", "Buy", "XEQ", "BAD CURRENCY", "1", "1", "-1", "0", "-1", "ZZZ", "51234567", "Trades", "Individual TFSA"},
	{"not a date", "", "Buy", "XEQ", "BAD DATE", "1", "1", "-1", "0", "-1", "CAD", "51234567", "Trades", "Individual TFSA"},
	{},
}

func TestXLSXMatches(t *testing.T) {
	p := NewXLSX(zerolog.Nop())
	assert.True(t, p.Matches(activities))
	assert.False(t, p.Matches(parse.Rows{append(append([]string{}, xlsxHeader...), "", "")}), "blank columns")
	assert.False(t, p.Matches(parse.Rows{append(append([]string{}, xlsxHeader...), "Extra")}))
	assert.False(t, p.Matches(parse.Rows{xlsxHeader[:13]}))
	assert.False(t, p.Matches(parse.Rows{{"Date", "Activity"}}))
	assert.False(t, p.Matches(nil))
}

func TestXLSXParse(t *testing.T) {
	got := NewXLSX(zerolog.Nop()).Parse(activities)
	require.Len(t, got, 4)

	buy := got[0]
	assert.Equal(t, date.New(2021, 3, 1), buy.Date)
	assert.Equal(t, date.New(2021, 3, 3), buy.Settlement)
	assert.Equal(t, finmgr.Buy, buy.Action)
	assert.Equal(t, finmgr.Account{ID: "51234567", Alias: "51234567", Type: finmgr.TFSA}, buy.Account)
	assert.Equal(t, finmgr.NewSecurity("XEQ", "CAD"), buy.SecurityOrZero())
	assert.True(t, buy.Net.Equal(finmgr.M(-2749.95, "CAD")))
	assert.NoError(t, finmgr.Validate(buy))

	interest := got[1]
	assert.Equal(t, finmgr.Fee, interest.Action)
	assert.False(t, interest.Security.IsPresent())
	assert.False(t, interest.Quantity.IsPresent())
	assert.False(t, interest.Commission.IsPresent())

	div := got[2]
	assert.Equal(t, finmgr.Distribution, div.Action)
	assert.Equal(t, finmgr.NonRegistered, div.Account.Type)
	assert.Equal(t, "USD", div.Currency)
	assert.Equal(t, finmgr.NewSecurity("VTI", "USD"), div.SecurityOrZero())

	other := got[3]
	assert.Equal(t, finmgr.Other, other.Action)
	assert.Equal(t, finmgr.UnknownAccountType, other.Account.Type)
}

func TestXLSXAction(t *testing.T) {
	tests := []struct {
		code, activity string
		want           finmgr.Action
	}{
		{"CON", "Deposits", finmgr.Deposit},
		{"REI", "Dividend reinvestment", finmgr.Reinvest},
		{"Sell", "Trades", finmgr.Sell},
		{"DEP", "Dividends", finmgr.Distribution},
		{"EFT", "Withdrawals", finmgr.Withdrawal},
		{"WDR", "Withdrawals", finmgr.Withdrawal},
		{"FXT", "Other", finmgr.Exchange},
		{"HST", "Fees and rebates", finmgr.Fee},
		{"BRW", "Other", finmgr.Journal},
		{"NAC", "Corporate actions", finmgr.Corporate},
		{"", "Interest", finmgr.Fee},
		{"", "Dividends", finmgr.Distribution},
		{"???", "", finmgr.Other},
	}
	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.activity, func(t *testing.T) {
			if got := xlsxAction(tt.code, tt.activity); got != tt.want {
				t.Errorf("xlsxAction(%q, %q) = %v, want %v", tt.code, tt.activity, got, tt.want)
			}
		})
	}
}

// TestXLSXFile parses a generated export through the registry.
func TestXLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Activities.xlsx")
	f := xlsx.NewFile()
	sh, err := f.AddSheet("Activities")
	require.NoError(t, err)
	for _, cells := range activities[:4] {
		row := sh.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	require.NoError(t, f.Save(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	r := parse.NewRegistry(parse.Config{
		XLSX:   []parse.Parser[parse.Rows]{NewXLSX(zerolog.Nop())},
		Logger: zerolog.Nop(),
	})
	got := r.Parse(parse.XLSX, bytes.NewReader(content))
	require.Len(t, got, 3)
	assert.Equal(t, finmgr.Buy, got[0].Action)
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2021-03-01 00:00:00 AM")
	require.NoError(t, err)
	assert.Equal(t, date.New(2021, 3, 1), got)

	for _, cell := range []string{"0d", "-1w", "+2m", "03/01/2021"} {
		_, err := parseDate(cell)
		assert.Error(t, err, cell)
	}
}
