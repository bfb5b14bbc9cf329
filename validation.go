package finmgr

import (
	"errors"
	"fmt"
)

// Violation is a field-level validation failure.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) Error() string { return fmt.Sprintf("%s: %s", v.Field, v.Message) }

// Violations checks a transaction's internal consistency and returns every
// failed rule.
//
// Rules: every present amount is in the transaction currency, and so is the
// security; the commission is zero or negative; the settlement is not before
// the transaction date; trades carry a security and a quantity; for Buy and
// Sell, gross = -(price × quantity) and net = gross + commission.
func Violations(t Transaction) []Violation {
	var list []Violation
	add := func(field, format string, args ...any) {
		list = append(list, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if t.Currency == "" {
		add("currency", "is missing")
	} else if !IsKnownCurrency(t.Currency) {
		add("currency", "%q is not a known currency code", t.Currency)
	}
	for _, a := range t.amounts() {
		if m, ok := a.value.Get(); ok && m.Currency() != t.Currency {
			add(a.name, "currency %q differs from transaction currency %q", m.Currency(), t.Currency)
		}
	}
	if sec, ok := t.Security.Get(); ok && sec.Currency != t.Currency {
		add("security", "currency %q differs from transaction currency %q", sec.Currency, t.Currency)
	}

	if c, ok := t.Commission.Get(); ok && c.IsPositive() {
		add("commission", "must be zero or negative, got %s", c)
	}
	if t.Settlement.Before(t.Date) {
		add("settlement", "%s is before transaction date %s", t.Settlement, t.Date)
	}

	if t.Action.IsTrade() {
		if !t.Security.IsPresent() {
			add("security", "is required for %s", t.Action)
		}
		if !t.Quantity.IsPresent() {
			add("quantity", "is required for %s", t.Action)
		}
	}

	if t.Action == Buy || t.Action == Sell {
		price, hasPrice := t.Price.Get()
		quantity, hasQuantity := t.Quantity.Get()
		gross, hasGross := t.Gross.Get()
		if hasPrice && hasQuantity && hasGross && price.SameCurrency(gross) {
			if want := price.Mul(quantity).Neg(); !gross.Equal(want) {
				add("gross", "%s must be -(price × quantity) = %s", gross, want)
			}
		}
		if hasGross && gross.SameCurrency(t.Net) {
			want := gross
			if c, ok := t.Commission.Get(); ok && c.SameCurrency(gross) {
				want = gross.Add(c)
			}
			if !t.Net.Equal(want) {
				add("net", "%s must be gross + commission = %s", t.Net, want)
			}
		}
	}
	return list
}

// Validate returns nil if the transaction is consistent, or the joined list of
// violations.
func Validate(t Transaction) error {
	violations := Violations(t)
	errs := make([]error, 0, len(violations))
	for _, v := range violations {
		errs = append(errs, v)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid %s on %s: %w", t.Action, t.Date, errors.Join(errs...))
}

// Valid is the pass/fail predicate over a transaction.
func Valid(t Transaction) bool { return len(Violations(t)) == 0 }
