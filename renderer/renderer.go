// Package renderer formats transactions, portfolios and daily reports as
// markdown.
package renderer

import (
	"sort"

	"github.com/etnz/finmgr"
)

// moneyTotals sums amounts per currency.
type moneyTotals map[string]finmgr.Money

func (t moneyTotals) add(m finmgr.Money) {
	if sum, ok := t[m.Currency()]; ok {
		t[m.Currency()] = sum.Add(m)
		return
	}
	t[m.Currency()] = m
}

// strings returns the totals sorted by currency.
func (t moneyTotals) strings() []string {
	currencies := make([]string, 0, len(t))
	for c := range t {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	list := make([]string, 0, len(currencies))
	for _, c := range currencies {
		list = append(list, t[c].String()+" "+c)
	}
	return list
}

func optionalMoney(m finmgr.Optional[finmgr.Money]) string {
	if v, ok := m.Get(); ok {
		return v.String()
	}
	return ""
}

func optionalQuantity(q finmgr.Optional[finmgr.Quantity]) string {
	if v, ok := q.Get(); ok {
		return v.String()
	}
	return ""
}
