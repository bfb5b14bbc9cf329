package finmgr

import (
	"maps"
	"slices"
)

// Portfolio is an immutable mapping from account type to Holding.
//
// Its zero value is an empty portfolio. Transaction operations produce a new
// Portfolio for every transaction, so intermediate values can be kept and
// compared safely.
type Portfolio struct {
	holdings map[AccountType]Holding
}

// NewPortfolio returns a portfolio seeded with an empty holding for each of
// the given account types.
func NewPortfolio(seeds ...AccountType) Portfolio {
	p := Portfolio{holdings: make(map[AccountType]Holding)}
	for _, t := range seeds {
		p.holdings[t] = Holding{}
	}
	return p
}

// Holding returns the holding of an account type, empty if unknown.
func (p Portfolio) Holding(t AccountType) Holding { return p.holdings[t] }

// AccountTypes returns the account types of the portfolio in a stable order.
func (p Portfolio) AccountTypes() []AccountType {
	return slices.Sorted(maps.Keys(p.holdings))
}

// With returns a copy of p where the account type has the given holding.
func (p Portfolio) With(t AccountType, h Holding) Portfolio {
	n := Portfolio{holdings: maps.Clone(p.holdings)}
	if n.holdings == nil {
		n.holdings = make(map[AccountType]Holding)
	}
	n.holdings[t] = h
	return n
}

// Equal reports whether two portfolios have equal holdings for the same
// account types.
func (p Portfolio) Equal(o Portfolio) bool {
	return maps.EqualFunc(p.holdings, o.holdings, Holding.Equal)
}
