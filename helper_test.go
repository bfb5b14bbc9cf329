package finmgr

import "github.com/etnz/finmgr/date"

var (
	margin = Account{ID: "51234567", Alias: "Margin", Type: NonRegistered}
	tfsa   = Account{ID: "51234568", Alias: "TFSA", Type: TFSA}

	VTI = NewSecurity("VTI", "CAD")
	XEQ = NewSecurity("XEQ", "CAD")

	day0 = date.New(1980, 1, 1)
)

// CAD is a helper for test to create canadian money from const
func CAD(v float64) Money { return M(v, "CAD") }

// buyVTI buys 100 VTI at 100 with a 5 commission: net -10005.
func buyVTI(on date.Date, account Account) Transaction {
	return NewBuy(on, account, VTI, Q(100), CAD(100), CAD(-5)).SettledOn(on.Add(3))
}

// buyVTIHigher buys 100 VTI at 105 with a 5 commission: net -10505.
func buyVTIHigher(on date.Date, account Account) Transaction {
	return NewBuy(on, account, VTI, Q(100), CAD(105), CAD(-5)).SettledOn(on.Add(3))
}

// sellVTI sells 100 VTI at 100 with a 5 commission: net 9995.
func sellVTI(on date.Date, account Account) Transaction {
	return NewSell(on, account, VTI, Q(100), CAD(100), CAD(-5)).SettledOn(on.Add(3))
}
