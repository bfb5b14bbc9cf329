package parse

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/etnz/finmgr"
	"github.com/shopspring/decimal"
)

// SplitCSV splits one CSV line into fields, removing the quotes around
// fields. Malformed quoting is tolerated.
func SplitCSV(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	fields, err := r.Read()
	if err != nil {
		return nil
	}
	return fields
}

// CleanAmount parses an amount as printed on statements: "$1,234.50",
// "(12.00)" or "-12". Parentheses mean a negative amount, a lone "-" or an
// empty string means zero.
func CleanAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	} else if strings.HasPrefix(s, "(") {
		negative = true
		s = s[1:]
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = s[1:]
	}
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// MustAmount is like CleanAmount but returns zero on malformed input.
func MustAmount(s string) decimal.Decimal {
	d, _ := CleanAmount(s)
	return d
}

// OptionalMoney returns the amount in currency cur, or absent when s is
// blank or a dash.
func OptionalMoney(s string, cur string) (finmgr.Optional[finmgr.Money], error) {
	if isBlank(s) {
		return finmgr.None[finmgr.Money](), nil
	}
	d, err := CleanAmount(s)
	if err != nil {
		return finmgr.None[finmgr.Money](), err
	}
	return finmgr.Some(finmgr.M(d, cur)), nil
}

// NonZeroMoney is like OptionalMoney but a zero amount is also absent.
func NonZeroMoney(s string, cur string) (finmgr.Optional[finmgr.Money], error) {
	m, err := OptionalMoney(s, cur)
	if err != nil {
		return m, err
	}
	if v, ok := m.Get(); ok && v.IsZero() {
		return finmgr.None[finmgr.Money](), nil
	}
	return m, nil
}

// QuantityOrAbsent returns the quantity, or absent when s is blank, a dash
// or zero.
func QuantityOrAbsent(s string) (finmgr.Optional[finmgr.Quantity], error) {
	if isBlank(s) {
		return finmgr.None[finmgr.Quantity](), nil
	}
	d, err := CleanAmount(s)
	if err != nil {
		return finmgr.None[finmgr.Quantity](), err
	}
	if d.IsZero() {
		return finmgr.None[finmgr.Quantity](), nil
	}
	return finmgr.Some(finmgr.Q(d)), nil
}

func isBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "-"
}
