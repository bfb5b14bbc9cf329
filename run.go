package finmgr

import (
	"maps"
	"slices"

	"github.com/etnz/finmgr/date"
)

// SortTransactions returns a copy of the transactions sorted by transaction
// date, ties keeping their input order.
func SortTransactions(transactions []Transaction) []Transaction {
	sorted := slices.Clone(transactions)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	})
	return sorted
}

// Split separates transactions dated before on from the others, keeping their
// order.
func Split(transactions []Transaction, on date.Date) (before, after []Transaction) {
	for _, t := range transactions {
		if t.Date.Before(on) {
			before = append(before, t)
			continue
		}
		after = append(after, t)
	}
	return before, after
}

// Process applies every operation to every transaction in order, threading
// the portfolio value forward, and returns the final portfolio.
func Process(start Portfolio, operations []TransactionOperation, transactions []Transaction) Portfolio {
	p := start
	for _, t := range SortTransactions(transactions) {
		p = apply(p, operations, t)
	}
	return p
}

func apply(p Portfolio, operations []TransactionOperation, t Transaction) Portfolio {
	for _, op := range operations {
		p = op.Process(p, t)
	}
	return p
}

// Report holds daily operation results:
// date → account type → operation name → security → amount.
type Report map[date.Date]map[AccountType]map[string]map[Security]Money

// Dates returns the report dates in chronological order.
func (r Report) Dates() []date.Date {
	return slices.SortedFunc(maps.Keys(r), func(a, b date.Date) int { return a.Sub(b) })
}

// Get returns the amount reported for one cell, and false if absent.
func (r Report) Get(on date.Date, t AccountType, operation string, s Security) (Money, bool) {
	m, ok := r[on][t][operation][s]
	return m, ok
}

// Total returns the sum of the amounts reported by an operation for an account
// type on a date.
func (r Report) Total(on date.Date, t AccountType, operation string) Money {
	var total Money
	for _, m := range r[on][t][operation] {
		total = total.Add(m)
	}
	return total
}

// Daily folds transactions day by day over an inclusive date range and
// evaluates every daily operation against every account type's holding at the
// end of each day.
//
// On each date only the transactions of that date are applied: start must
// already hold any earlier history, and transactions outside the range are
// ignored. Every date of the range has an entry, even when no transaction
// happened on it.
func Daily(start Portfolio, operations []TransactionOperation, daily []DailyOperation, transactions []Transaction, r date.Range) Report {
	byDate := make(map[date.Date][]Transaction)
	for _, t := range SortTransactions(transactions) {
		if r.Contains(t.Date) {
			byDate[t.Date] = append(byDate[t.Date], t)
		}
	}

	p := start

	report := make(Report, r.Len())
	for on := range r.Days() {
		for _, t := range byDate[on] {
			p = apply(p, operations, t)
		}
		accounts := make(map[AccountType]map[string]map[Security]Money)
		for _, accountType := range p.AccountTypes() {
			results := make(map[string]map[Security]Money, len(daily))
			for _, op := range daily {
				results[op.Name()] = op.Process(p.Holding(accountType), on)
			}
			accounts[accountType] = results
		}
		report[on] = accounts
	}
	return report
}
