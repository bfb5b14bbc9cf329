// Package market stores daily closing prices of securities.
package market

import (
	"sort"

	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/date"
	"github.com/shopspring/decimal"
)

// Lookback is how many days before the requested date a close is still used,
// to cover weekends and market holidays.
const Lookback = 5

// Prices holds the daily closing prices of securities, in their currency.
//
// Prices implements finmgr.PriceLookup.
type Prices struct {
	closes map[finmgr.Security]*date.History[decimal.Decimal]
}

// NewPrices returns an empty price store.
func NewPrices() *Prices {
	return &Prices{closes: make(map[finmgr.Security]*date.History[decimal.Decimal])}
}

// Set records the close of a security on a day, overwriting any previous
// value.
func (p *Prices) Set(s finmgr.Security, on date.Date, close decimal.Decimal) {
	h, ok := p.closes[s]
	if !ok {
		h = new(date.History[decimal.Decimal])
		p.closes[s] = h
	}
	h.Append(on, close)
}

// Get returns the close recorded exactly on a day.
func (p *Prices) Get(s finmgr.Security, on date.Date) (finmgr.Money, bool) {
	h, ok := p.closes[s]
	if !ok {
		return finmgr.Money{}, false
	}
	v, ok := h.Get(on)
	if !ok {
		return finmgr.Money{}, false
	}
	return finmgr.M(v, s.Currency), true
}

// ClosingPrice returns the close on a day, or the latest close of the
// previous Lookback days.
func (p *Prices) ClosingPrice(s finmgr.Security, on date.Date) (finmgr.Money, bool) {
	h, ok := p.closes[s]
	if !ok {
		return finmgr.Money{}, false
	}
	v, day, ok := h.ValueAsOf(on)
	if !ok || on.Sub(day) > Lookback {
		return finmgr.Money{}, false
	}
	return finmgr.M(v, s.Currency), true
}

// Latest returns the most recent day with a close for the security.
func (p *Prices) Latest(s finmgr.Security) (date.Date, bool) {
	h, ok := p.closes[s]
	if !ok || h.Len() == 0 {
		return date.Date{}, false
	}
	on, _ := h.Latest()
	return on, true
}

// Missing returns the range of days to fetch so that the store covers r:
// from the day after the latest close, or r.From if the security is unknown.
func (p *Prices) Missing(s finmgr.Security, r date.Range) (date.Range, bool) {
	latest, ok := p.Latest(s)
	if !ok || latest.Before(r.From) {
		return r, true
	}
	if !latest.Before(r.To) {
		return date.Range{}, false
	}
	return date.NewRange(latest.Add(1), r.To), true
}

// Len returns the number of closes in the store.
func (p *Prices) Len() int {
	n := 0
	for _, h := range p.closes {
		n += h.Len()
	}
	return n
}

// Securities returns the securities with prices, sorted.
func (p *Prices) Securities() []finmgr.Security {
	list := make([]finmgr.Security, 0, len(p.closes))
	for s := range p.closes {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Less(list[j]) })
	return list
}

// Merge copies every close of o into p.
func (p *Prices) Merge(o *Prices) {
	for s, h := range o.closes {
		for on, v := range h.Values() {
			p.Set(s, on, v)
		}
	}
}
