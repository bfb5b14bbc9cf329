package finmgr

import "strings"

// AccountType tags an account with its registration (tax) status. Holdings
// are segregated per account type.
type AccountType string

// Account types.
const (
	TFSA                AccountType = "TFSA"
	RESP                AccountType = "RESP"
	RRSP                AccountType = "RRSP"
	NonRegistered       AccountType = "NON_REGISTERED"
	CorporateInvestment AccountType = "CORPORATE_INVESTMENT"
	CorporateCash       AccountType = "CORPORATE_CASH"
	Personal            AccountType = "PERSONAL"
	UnknownAccountType  AccountType = "UNKNOWN"
)

var accountTypes = []AccountType{TFSA, RESP, RRSP, NonRegistered, CorporateInvestment, CorporateCash, Personal}

// ParseAccountType returns the account type named s (case-insensitive), or
// UnknownAccountType.
func ParseAccountType(s string) AccountType {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, t := range accountTypes {
		if string(t) == s {
			return t
		}
	}
	return UnknownAccountType
}

// Account identifies the brokerage account a transaction belongs to.
type Account struct {
	ID    string      `json:"account"`
	Alias string      `json:"alias,omitempty"`
	Type  AccountType `json:"accountType"`
}

// UnknownAccount is used by statements that do not name the account.
var UnknownAccount = Account{ID: "UNKNOWN", Alias: "UNKNOWN", Type: NonRegistered}

func (a Account) String() string {
	if a.Alias != "" && a.Alias != a.ID {
		return a.Alias + " (" + a.ID + ")"
	}
	return a.ID
}
