package finmgr

import (
	"fmt"
	"strings"
)

// Action is the kind of an investment transaction.
type Action string

// Transaction actions.
const (
	Buy          Action = "buy"
	Sell         Action = "sell"
	Deposit      Action = "deposit"
	Withdrawal   Action = "withdrawal"
	Fee          Action = "fee"
	Exchange     Action = "exchange"
	Distribution Action = "distribution"
	Reinvest     Action = "reinvest"
	Corporate    Action = "corporate"
	Journal      Action = "journal"
	Other        Action = "other"
)

var actions = []Action{Buy, Sell, Deposit, Withdrawal, Fee, Exchange, Distribution, Reinvest, Corporate, Journal, Other}

// ParseAction parses the canonical name of an action, case-insensitive.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range actions {
		if string(a) == s {
			return a, nil
		}
	}
	return Other, fmt.Errorf("unknown action %q", s)
}

// IsTrade reports whether the action exchanges units of a security.
func (a Action) IsTrade() bool { return a == Buy || a == Sell || a == Reinvest }

// IsCashOnly reports whether the action only moves cash and never concerns a
// security.
func (a Action) IsCashOnly() bool {
	switch a {
	case Deposit, Withdrawal, Fee, Exchange, Journal:
		return true
	}
	return false
}

// ActionTable maps vendor action codes (lower-cased) to actions.
type ActionTable map[string]Action

// Lookup returns the action for a vendor code, Other when the code is unknown.
func (t ActionTable) Lookup(code string) Action {
	if a, ok := t[strings.ToLower(strings.TrimSpace(code))]; ok {
		return a
	}
	return Other
}
