package finmgr

import "github.com/etnz/finmgr/date"

// TransactionOperation is a pure function folding one transaction into a
// portfolio. It must return a new Portfolio and leave its input untouched.
type TransactionOperation interface {
	Name() string
	Process(Portfolio, Transaction) Portfolio
}

// DailyOperation is a pure, read-only computation over one holding on a
// given date, returning an amount per security.
type DailyOperation interface {
	Name() string
	Process(Holding, date.Date) map[Security]Money
}

// AverageCostBasis maintains, per account type and security, the quantity
// held and its cost basis.
//
// Buy and Reinvest add the quantity and the net amount. Sell keeps the cost
// basis per unit constant. A Distribution with a return of capital adds that
// amount to the cost basis. Other actions have no effect.
type AverageCostBasis struct{}

// Name implements TransactionOperation.
func (AverageCostBasis) Name() string { return "ACB" }

// Process implements TransactionOperation.
func (AverageCostBasis) Process(p Portfolio, t Transaction) Portfolio {
	sec, ok := t.Security.Get()
	if !ok {
		return p
	}
	h := p.Holding(t.Account.Type)
	quantity, costBasis := h.Quantity(sec), h.CostBasis(sec)

	switch t.Action {
	case Buy, Reinvest:
		quantity = quantity.Add(t.QuantityOrZero())
		costBasis = costBasis.Add(t.Net)

	case Sell:
		sold := quantity.Add(t.QuantityOrZero())
		if !quantity.IsZero() {
			// per unit cost basis is computed on the quantity before the sale.
			costBasis = costBasis.Div(quantity).Mul(sold)
		}
		quantity = sold

	case Distribution:
		roc, ok := t.Distribution.ReturnOfCapital.Get()
		if !ok {
			return p
		}
		costBasis = costBasis.Add(roc)

	default:
		return p
	}
	return p.With(t.Account.Type, h.With(sec, quantity, costBasis))
}

// PriceLookup supplies historical closing prices.
type PriceLookup interface {
	// ClosingPrice returns the closing price of the security on that date, in
	// the security's currency, and false if it is not known.
	ClosingPrice(s Security, on date.Date) (Money, bool)
}

// PriceFunc adapts a function to the PriceLookup interface.
type PriceFunc func(s Security, on date.Date) (Money, bool)

// ClosingPrice implements PriceLookup.
func (f PriceFunc) ClosingPrice(s Security, on date.Date) (Money, bool) { return f(s, on) }

// NetPresentValue values every recorded position of a holding at its closing
// price: quantity × price. A missing price values the position at zero, and a
// fully sold position is exactly zero without a price lookup.
type NetPresentValue struct {
	Prices PriceLookup
}

// Name implements DailyOperation.
func (NetPresentValue) Name() string { return "NPV" }

// Process implements DailyOperation.
func (n NetPresentValue) Process(h Holding, on date.Date) map[Security]Money {
	values := make(map[Security]Money)
	for _, s := range h.Recorded() {
		quantity := h.Quantity(s)
		if quantity.IsZero() {
			values[s] = M(0, s.Currency)
			continue
		}
		price := M(0, s.Currency)
		if n.Prices != nil {
			if p, ok := n.Prices.ClosingPrice(s, on); ok {
				price = p
			}
		}
		values[s] = price.Mul(quantity)
	}
	return values
}
