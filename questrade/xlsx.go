package questrade

import (
	"fmt"
	"strings"

	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/date"
	"github.com/etnz/finmgr/parse"
	"github.com/rs/zerolog"
)

// xlsxHeader lists the columns of the activity export, in order.
var xlsxHeader = []string{
	"Transaction Date",
	"Settlement Date",
	"Action",
	"Symbol",
	"Description",
	"Quantity",
	"Price",
	"Gross Amount",
	"Commission",
	"Net Amount",
	"Currency",
	"Account #",
	"Activity Type",
	"Account Type",
}

const (
	colDate = iota
	colSettlement
	colAction
	colSymbol
	colDescription
	colQuantity
	colPrice
	colGross
	colCommission
	colNet
	colCurrency
	colAccount
	colActivityType
	colAccountType
)

var xlsxActions = finmgr.ActionTable{
	"con":  finmgr.Deposit,
	"rei":  finmgr.Reinvest,
	"buy":  finmgr.Buy,
	"sell": finmgr.Sell,
	"div":  finmgr.Distribution,
	"dep":  finmgr.Distribution,
	"eft":  finmgr.Withdrawal,
	"wdl":  finmgr.Withdrawal,
	"wdr":  finmgr.Withdrawal,
	"fxt":  finmgr.Exchange,
	"hst":  finmgr.Fee,
	"fch":  finmgr.Fee,
	"brw":  finmgr.Journal,
	"dis":  finmgr.Corporate,
	"nac":  finmgr.Corporate,
}

var xlsxAccountTypes = map[string]finmgr.AccountType{
	"individual tfsa":   finmgr.TFSA,
	"individual rrsp":   finmgr.RRSP,
	"individual margin": finmgr.NonRegistered,
}

// XLSX parses the activity export of Questrade accounts.
type XLSX struct {
	log zerolog.Logger
}

// NewXLSX returns a parser for Questrade activity exports.
func NewXLSX(log zerolog.Logger) *XLSX {
	return &XLSX{log: log.With().Str("parser", "questrade-xlsx").Logger()}
}

func (p *XLSX) Name() string { return "questrade-xlsx" }

// Matches checks the header row: every column, in order, and nothing else.
// A header with extra blank cells is not a match.
func (p *XLSX) Matches(doc parse.Rows) bool {
	if len(doc) == 0 {
		return false
	}
	header := doc[0]
	if len(header) != len(xlsxHeader) {
		return false
	}
	for i, name := range xlsxHeader {
		if header[i] != name {
			return false
		}
	}
	return true
}

func trimTrailingBlanks(row []string) []string {
	for len(row) > 0 && strings.TrimSpace(row[len(row)-1]) == "" {
		row = row[:len(row)-1]
	}
	return row
}

// Parse returns a transaction per data row. Rows that cannot be read are
// skipped.
func (p *XLSX) Parse(doc parse.Rows) []finmgr.Transaction {
	var transactions []finmgr.Transaction
	for i, row := range doc[1:] {
		if len(trimTrailingBlanks(row)) == 0 {
			continue
		}
		t, err := ParseRow(row)
		if err != nil {
			p.log.Debug().Err(err).Int("row", i+2).Msg("skipped")
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions
}

// ParseRow parses one row of the activity export.
func ParseRow(row []string) (finmgr.Transaction, error) {
	cells := make([]string, len(xlsxHeader))
	for i := range cells {
		if i < len(row) {
			cells[i] = strings.TrimSpace(row[i])
		}
	}

	cur := strings.ToUpper(cells[colCurrency])
	if !finmgr.IsKnownCurrency(cur) {
		return finmgr.Transaction{}, fmt.Errorf("unknown currency %q", cells[colCurrency])
	}
	on, err := parseDate(cells[colDate])
	if err != nil {
		return finmgr.Transaction{}, err
	}
	settlement, err := parseDate(cells[colSettlement])
	if err != nil {
		return finmgr.Transaction{}, err
	}

	quantity, err := parse.QuantityOrAbsent(cells[colQuantity])
	if err != nil {
		return finmgr.Transaction{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := parse.OptionalMoney(cells[colPrice], cur)
	if err != nil {
		return finmgr.Transaction{}, fmt.Errorf("price: %w", err)
	}
	gross, err := parse.OptionalMoney(cells[colGross], cur)
	if err != nil {
		return finmgr.Transaction{}, fmt.Errorf("gross amount: %w", err)
	}
	commission, err := parse.NonZeroMoney(cells[colCommission], cur)
	if err != nil {
		return finmgr.Transaction{}, fmt.Errorf("commission: %w", err)
	}
	net, err := parse.CleanAmount(cells[colNet])
	if err != nil {
		return finmgr.Transaction{}, fmt.Errorf("net amount: %w", err)
	}

	t := finmgr.Transaction{
		Date:       on,
		Settlement: settlement,
		Action:     xlsxAction(cells[colAction], cells[colActivityType]),
		Account: finmgr.Account{
			ID:    cells[colAccount],
			Alias: cells[colAccount],
			Type:  xlsxAccountType(cells[colAccountType]),
		},
		Currency:    cur,
		Description: cells[colDescription],
		Quantity:    quantity,
		Price:       price,
		Gross:       gross,
		Commission:  commission,
		Net:         finmgr.M(net, cur),
	}
	if cells[colSymbol] != "" {
		t.Security = finmgr.Some(finmgr.NewSecurity(cells[colSymbol], cur))
	}
	return t, nil
}

// parseDate reads the date part of a timestamp cell, "2021-03-01 00:00:00 AM".
func parseDate(cell string) (date.Date, error) {
	if len(cell) > 10 {
		cell = cell[:10]
	}
	return date.ParseISO(cell)
}

// xlsxAction maps the action code. Interest and some distributions have no
// code and are told apart by the activity type.
func xlsxAction(code, activity string) finmgr.Action {
	if strings.TrimSpace(code) == "" {
		if strings.EqualFold(strings.TrimSpace(activity), "interest") {
			return finmgr.Fee
		}
		return finmgr.Distribution
	}
	return xlsxActions.Lookup(code)
}

func xlsxAccountType(name string) finmgr.AccountType {
	if t, ok := xlsxAccountTypes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return finmgr.UnknownAccountType
}
