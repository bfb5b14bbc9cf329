// Package rbc parses the activity CSV exports of RBC Direct Investing.
package rbc

import (
	"fmt"
	"strings"

	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/date"
	"github.com/etnz/finmgr/parse"
	"github.com/rs/zerolog"
)

// Header is the column header of the export, found on line 9.
const Header = `"Date","Activity","Symbol","Symbol Description","Quantity","Price","Settlement Date","Account","Value","Currency","Description"`

// headerLine is the 0-based index of the header line.
const headerLine = 8

const columns = 11

var actions = finmgr.ActionTable{
	"dividends":                finmgr.Distribution,
	"return of capital":        finmgr.Distribution,
	"buy":                      finmgr.Buy,
	"deposits & contributions": finmgr.Deposit,
}

// CSV parses RBC activity exports. Every account is non-registered.
type CSV struct {
	log zerolog.Logger
}

// NewCSV returns a parser for RBC activity exports.
func NewCSV(log zerolog.Logger) *CSV {
	return &CSV{log: log.With().Str("parser", "rbc-csv").Logger()}
}

func (p *CSV) Name() string { return "rbc-csv" }

// Matches compares line 9 to the header, ignoring case.
func (p *CSV) Matches(doc parse.Lines) bool {
	return len(doc) > headerLine && strings.EqualFold(strings.TrimSpace(doc[headerLine]), Header)
}

// Parse returns a transaction per activity line after the header.
func (p *CSV) Parse(doc parse.Lines) []finmgr.Transaction {
	var transactions []finmgr.Transaction
	for i := headerLine + 1; i < len(doc); i++ {
		if strings.TrimSpace(doc[i]) == "" {
			continue
		}
		t, err := ParseLine(doc[i])
		if err != nil {
			p.log.Debug().Err(err).Int("line", i+1).Msg("skipped")
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions
}

// ParseLine parses one activity line.
func ParseLine(line string) (finmgr.Transaction, error) {
	cols := parse.SplitCSV(line)
	if len(cols) != columns {
		return finmgr.Transaction{}, fmt.Errorf("got %d columns, want %d", len(cols), columns)
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	cur := "CAD"
	if strings.EqualFold(cols[9], "usd") {
		cur = "USD"
	}
	on, err := date.ParseISO(cols[0])
	if err != nil {
		return finmgr.Transaction{}, err
	}
	settlement, err := date.ParseISO(cols[6])
	if err != nil {
		return finmgr.Transaction{}, err
	}
	quantity, err := parse.CleanAmount(cols[4])
	if err != nil {
		return finmgr.Transaction{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := parse.CleanAmount(cols[5])
	if err != nil {
		return finmgr.Transaction{}, fmt.Errorf("price: %w", err)
	}
	value, err := parse.CleanAmount(cols[8])
	if err != nil {
		return finmgr.Transaction{}, fmt.Errorf("value: %w", err)
	}

	t := finmgr.Transaction{
		Date:        on,
		Settlement:  settlement,
		Action:      actions.Lookup(cols[1]),
		Account:     finmgr.Account{ID: cols[7], Alias: cols[7], Type: finmgr.NonRegistered},
		Currency:    cur,
		Description: cols[10],
		Quantity:    finmgr.Some(finmgr.Q(quantity)),
		Price:       finmgr.Some(finmgr.M(price, cur)),
		Gross:       finmgr.Some(finmgr.M(value, cur)),
		Net:         finmgr.M(value, cur),
	}
	if cols[2] != "" {
		t.Security = finmgr.Some(finmgr.NewSecurity(cols[2], cur))
	}
	if strings.EqualFold(cols[1], "return of capital") {
		t.Distribution.ReturnOfCapital = finmgr.Some(finmgr.M(value, cur))
	}
	return t, nil
}
