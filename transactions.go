package finmgr

import "github.com/etnz/finmgr/date"

// Transaction is the canonical investment transaction every statement parser
// produces and every operation consumes.
//
// Transactions are values: they are produced once, by parsing, and never
// mutated. All monetary fields of a transaction share one currency.
// Quantities and amounts are signed: a Buy has a positive quantity and a
// negative net amount, a Sell the opposite.
type Transaction struct {
	Date        date.Date          // Date the transaction took place.
	Settlement  date.Date          // Settlement date, never before Date.
	Action      Action             // Kind of transaction.
	Account     Account            // Account the transaction belongs to.
	Security    Optional[Security] // Absent for pure cash movements.
	Currency    string             // Currency of every monetary field.
	Description string             // Free text from the statement.

	Quantity   Optional[Quantity]
	Price      Optional[Money]
	Gross      Optional[Money]
	Commission Optional[Money] // Absent when no commission was charged.
	Net        Money

	Distribution DistributionDetails // Breakdown of a distribution, mostly absent.
}

// DistributionDetails holds the tax breakdown of a distribution.
type DistributionDetails struct {
	ReturnOfCapital                 Optional[Money]
	CapitalGain                     Optional[Money]
	EligibleDividend                Optional[Money]
	NonEligibleDividend             Optional[Money]
	ForeignBusinessIncome           Optional[Money]
	ForeignNonBusinessIncome        Optional[Money]
	OtherIncome                     Optional[Money]
	NonReportableDistribution       Optional[Money]
	CapitalGainsDeductionEligible   Optional[Money]
	ForeignBusinessIncomeTaxPaid    Optional[Money]
	ForeignNonBusinessIncomeTaxPaid Optional[Money]
}

// fields returns the named distribution amounts in a stable order.
func (d DistributionDetails) fields() []namedAmount {
	return []namedAmount{
		{"returnOfCapital", d.ReturnOfCapital},
		{"capitalGain", d.CapitalGain},
		{"eligibleDividend", d.EligibleDividend},
		{"nonEligibleDividend", d.NonEligibleDividend},
		{"foreignBusinessIncome", d.ForeignBusinessIncome},
		{"foreignNonBusinessIncome", d.ForeignNonBusinessIncome},
		{"otherIncome", d.OtherIncome},
		{"nonReportableDistribution", d.NonReportableDistribution},
		{"capitalGainsDeductionEligible", d.CapitalGainsDeductionEligible},
		{"foreignBusinessIncomeTaxPaid", d.ForeignBusinessIncomeTaxPaid},
		{"foreignNonBusinessIncomeTaxPaid", d.ForeignNonBusinessIncomeTaxPaid},
	}
}

// fieldPtrs returns pointers to the named distribution amounts, for decoding.
func (d *DistributionDetails) fieldPtrs() map[string]*Optional[Money] {
	return map[string]*Optional[Money]{
		"returnOfCapital":                 &d.ReturnOfCapital,
		"capitalGain":                     &d.CapitalGain,
		"eligibleDividend":                &d.EligibleDividend,
		"nonEligibleDividend":             &d.NonEligibleDividend,
		"foreignBusinessIncome":           &d.ForeignBusinessIncome,
		"foreignNonBusinessIncome":        &d.ForeignNonBusinessIncome,
		"otherIncome":                     &d.OtherIncome,
		"nonReportableDistribution":       &d.NonReportableDistribution,
		"capitalGainsDeductionEligible":   &d.CapitalGainsDeductionEligible,
		"foreignBusinessIncomeTaxPaid":    &d.ForeignBusinessIncomeTaxPaid,
		"foreignNonBusinessIncomeTaxPaid": &d.ForeignNonBusinessIncomeTaxPaid,
	}
}

type namedAmount struct {
	name  string
	value Optional[Money]
}

// amounts returns every monetary field of the transaction with its name.
func (t Transaction) amounts() []namedAmount {
	list := []namedAmount{
		{"price", t.Price},
		{"gross", t.Gross},
		{"commission", t.Commission},
		{"net", Some(t.Net)},
	}
	return append(list, t.Distribution.fields()...)
}

// Equal reports whether two transactions hold the same values.
func (t Transaction) Equal(o Transaction) bool {
	if t.Date != o.Date || t.Settlement != o.Settlement || t.Action != o.Action ||
		t.Account != o.Account || t.Security != o.Security || t.Currency != o.Currency ||
		t.Description != o.Description {
		return false
	}
	if !equalOptional(t.Quantity, o.Quantity) {
		return false
	}
	a, b := t.amounts(), o.amounts()
	for i := range a {
		if !equalOptional(a[i].value, b[i].value) {
			return false
		}
	}
	return true
}

// SecurityOrZero returns the security of the transaction, the zero Security
// when absent.
func (t Transaction) SecurityOrZero() Security { return t.Security.Or(Security{}) }

// QuantityOrZero returns the quantity of the transaction, zero when absent.
func (t Transaction) QuantityOrZero() Quantity { return t.Quantity.Or(Q(0)) }

// NewBuy returns a Buy settled on the same day. Gross and net amounts are
// derived from the price, the quantity and the commission (zero or negative).
func NewBuy(on date.Date, account Account, security Security, quantity Quantity, price, commission Money) Transaction {
	return newTrade(Buy, on, account, security, quantity, price, commission)
}

// NewSell returns a Sell of 'quantity' units (a positive number) settled on
// the same day. The recorded quantity is negative.
func NewSell(on date.Date, account Account, security Security, quantity Quantity, price, commission Money) Transaction {
	return newTrade(Sell, on, account, security, quantity.Neg(), price, commission)
}

// NewReinvest returns a Reinvest, a Buy funded by a distribution.
func NewReinvest(on date.Date, account Account, security Security, quantity Quantity, price Money) Transaction {
	return newTrade(Reinvest, on, account, security, quantity, price, M(0, price.Currency()))
}

func newTrade(action Action, on date.Date, account Account, security Security, quantity Quantity, price, commission Money) Transaction {
	gross := price.Mul(quantity).Neg()
	t := Transaction{
		Date:       on,
		Settlement: on,
		Action:     action,
		Account:    account,
		Security:   Some(security),
		Currency:   security.Currency,
		Quantity:   Some(quantity),
		Price:      Some(price),
		Gross:      Some(gross),
		Net:        gross.Add(commission),
	}
	if !commission.IsZero() {
		t.Commission = Some(commission)
	}
	return t
}

// NewDistribution returns a cash Distribution of 'amount' on a security.
func NewDistribution(on date.Date, account Account, security Security, amount Money) Transaction {
	return Transaction{
		Date:       on,
		Settlement: on,
		Action:     Distribution,
		Account:    account,
		Security:   Some(security),
		Currency:   security.Currency,
		Net:        amount,
	}
}

// NewReturnOfCapital returns a Distribution whose return of capital
// component is 'amount', the total for the position.
func NewReturnOfCapital(on date.Date, account Account, security Security, amount Money) Transaction {
	t := NewDistribution(on, account, security, M(0, security.Currency))
	t.Distribution.ReturnOfCapital = Some(amount)
	return t
}

// NewDeposit returns a cash Deposit into an account.
func NewDeposit(on date.Date, account Account, amount Money) Transaction {
	return Transaction{
		Date:       on,
		Settlement: on,
		Action:     Deposit,
		Account:    account,
		Currency:   amount.Currency(),
		Net:        amount,
	}
}

// SettledOn returns a copy of t with the given settlement date.
func (t Transaction) SettledOn(on date.Date) Transaction {
	t.Settlement = on
	return t
}

// Described returns a copy of t with the given description.
func (t Transaction) Described(description string) Transaction {
	t.Description = description
	return t
}
