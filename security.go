package finmgr

import "strings"

// Security is a tradeable asset identified by its symbol and the currency it
// is traded in. It is comparable and used as a map key.
type Security struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
}

// UnknownSymbol is the symbol of securities a statement does not name.
const UnknownSymbol = "UNKNOWN"

// NewSecurity returns a normalized Security.
func NewSecurity(symbol, currency string) Security {
	return Security{
		Symbol:   strings.ToUpper(strings.TrimSpace(symbol)),
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
	}
}

// String returns the symbol.
func (s Security) String() string { return s.Symbol }

// Less orders securities by symbol then currency.
func (s Security) Less(o Security) bool {
	if s.Symbol != o.Symbol {
		return s.Symbol < o.Symbol
	}
	return s.Currency < o.Currency
}

// IsUnknown reports whether the statement did not name the security.
func (s Security) IsUnknown() bool { return s.Symbol == UnknownSymbol }
