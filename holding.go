package finmgr

import (
	"iter"
	"maps"
	"slices"
)

// Holding is the part of a Portfolio scoped to one account type: which
// securities are tracked, in what quantity and at what cost basis.
//
// A Holding is immutable, every update returns a new value and leaves the
// receiver untouched. A security whose quantity drops to exactly zero has its
// cost basis reset to zero and is no longer tracked; its zero quantity stays
// recorded so that daily operations can report it.
type Holding struct {
	tracked    map[Security]struct{}
	quantities map[Security]Quantity
	costBases  map[Security]Money
}

// Quantity returns the quantity held of a security, zero if unknown.
func (h Holding) Quantity(s Security) Quantity {
	if q, ok := h.quantities[s]; ok {
		return q
	}
	return Q(0)
}

// CostBasis returns the cost basis of a security, zero if unknown.
//
// The cost basis is the signed sum of net amounts spent, so it is negative
// for a long position.
func (h Holding) CostBasis(s Security) Money {
	if cb, ok := h.costBases[s]; ok {
		return cb
	}
	return M(0, s.Currency)
}

// ACBPerShare returns the average cost basis per unit of a security as a
// positive amount. With a zero quantity it returns the stored cost basis.
func (h Holding) ACBPerShare(s Security) Money {
	q, cb := h.Quantity(s), h.CostBasis(s)
	if q.IsZero() {
		return cb
	}
	return cb.Div(q).Neg()
}

// IsTracked reports whether the security is currently held.
func (h Holding) IsTracked(s Security) bool {
	_, ok := h.tracked[s]
	return ok
}

// Securities returns the tracked securities sorted by symbol.
func (h Holding) Securities() []Security {
	return sortSecurities(maps.Keys(h.tracked))
}

// Recorded returns every security with a recorded quantity, including those
// fully sold, sorted by symbol.
func (h Holding) Recorded() []Security {
	return sortSecurities(maps.Keys(h.quantities))
}

func sortSecurities(keys iter.Seq[Security]) []Security {
	return slices.SortedFunc(keys, func(a, b Security) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
}

// IsEmpty reports whether the holding records nothing.
func (h Holding) IsEmpty() bool { return len(h.quantities) == 0 && len(h.costBases) == 0 }

// With returns a copy of h where the security has the given quantity and cost
// basis. A zero quantity resets the cost basis and stops tracking the security.
func (h Holding) With(s Security, quantity Quantity, costBasis Money) Holding {
	n := Holding{
		tracked:    maps.Clone(h.tracked),
		quantities: maps.Clone(h.quantities),
		costBases:  maps.Clone(h.costBases),
	}
	if n.tracked == nil {
		n.tracked = make(map[Security]struct{})
	}
	if n.quantities == nil {
		n.quantities = make(map[Security]Quantity)
	}
	if n.costBases == nil {
		n.costBases = make(map[Security]Money)
	}

	n.quantities[s] = quantity
	if quantity.IsZero() {
		n.costBases[s] = M(0, s.Currency)
		delete(n.tracked, s)
		return n
	}
	n.costBases[s] = costBasis
	n.tracked[s] = struct{}{}
	return n
}

// Equal reports whether two holdings record the same quantities and cost bases.
func (h Holding) Equal(o Holding) bool {
	if len(h.tracked) != len(o.tracked) {
		return false
	}
	for s := range h.tracked {
		if !o.IsTracked(s) {
			return false
		}
	}
	return maps.EqualFunc(h.quantities, o.quantities, Quantity.Equal) &&
		maps.EqualFunc(h.costBases, o.costBases, Money.Equal)
}
