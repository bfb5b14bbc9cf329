package finmgr

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/finmgr/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Transactions are exchanged as JSONL: one flat JSON object per line, with a
// single currency field and absent amounts omitted.
//
//	{"date":"2021-03-01","settles":"2021-03-03","action":"buy","account":"123","accountType":"TFSA",
//	 "symbol":"VTI","currency":"USD","quantity":100,"price":100,"gross":-10000,"commission":-5,"net":-10005}

// MarshalJSON implements the json.Marshaler interface.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date)
	if t.Settlement != t.Date {
		w.Append("settles", t.Settlement)
	}
	w.Append("action", t.Action)
	w.EmbedFrom(t.Account)
	if sec, ok := t.Security.Get(); ok {
		w.Append("symbol", sec.Symbol)
	}
	w.Append("currency", t.Currency)
	w.Optional("description", t.Description)
	if q, ok := t.Quantity.Get(); ok {
		w.Append("quantity", q)
	}
	w.Amount("price", t.Price)
	w.Amount("gross", t.Gross)
	w.Amount("commission", t.Commission)
	w.Amount("net", Some(t.Net))
	for _, a := range t.Distribution.fields() {
		w.Amount(a.name, a.value)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var j struct {
		Account
		Date        date.Date        `json:"date"`
		Settles     *date.Date       `json:"settles"`
		Action      string           `json:"action"`
		Symbol      string           `json:"symbol"`
		Currency    string           `json:"currency"`
		Description string           `json:"description"`
		Quantity    *decimal.Decimal `json:"quantity"`
		Net         *decimal.Decimal `json:"net"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	amounts, err := decodeAmounts(data)
	if err != nil {
		return err
	}

	action, err := ParseAction(j.Action)
	if err != nil {
		return err
	}
	if j.Net == nil {
		return fmt.Errorf("missing property %q", "net")
	}

	nt := Transaction{
		Date:        j.Date,
		Settlement:  j.Date,
		Action:      action,
		Account:     j.Account,
		Currency:    j.Currency,
		Description: j.Description,
		Net:         M(*j.Net, j.Currency),
	}
	if j.Settles != nil {
		nt.Settlement = *j.Settles
	}
	if j.Symbol != "" {
		nt.Security = Some(NewSecurity(j.Symbol, j.Currency))
	}
	if j.Quantity != nil {
		nt.Quantity = Some(Q(*j.Quantity))
	}
	amount := func(name string) Optional[Money] {
		if v := amounts[name]; v != nil {
			return Some(M(*v, j.Currency))
		}
		return None[Money]()
	}
	nt.Price = amount("price")
	nt.Gross = amount("gross")
	nt.Commission = amount("commission")
	for name, ptr := range nt.Distribution.fieldPtrs() {
		*ptr = amount(name)
	}
	*t = nt
	return nil
}

// amountNames lists every monetary property of a transaction line.
var amountNames = func() []string {
	names := []string{"price", "gross", "commission"}
	for _, a := range (DistributionDetails{}).fields() {
		names = append(names, a.name)
	}
	return names
}()

// decodeAmounts reads the monetary properties of a transaction line.
func decodeAmounts(data []byte) (map[string]*decimal.Decimal, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	amounts := make(map[string]*decimal.Decimal)
	for _, name := range amountNames {
		msg, ok := raw[name]
		if !ok || string(msg) == "null" {
			continue
		}
		var d decimal.Decimal
		if err := json.Unmarshal(msg, &d); err != nil {
			return nil, fmt.Errorf("property %q must be a number: %w", name, err)
		}
		amounts[name] = &d
	}
	return amounts, nil
}

// EncodeTransactions writes transactions as JSONL.
func EncodeTransactions(w io.Writer, transactions []Transaction) error {
	for _, tx := range transactions {
		line, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("cannot encode %s on %s: %w", tx.Action, tx.Date, err)
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTransactions reads JSONL transactions, skipping blank lines.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var list []Transaction
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal([]byte(line), &tx); err != nil {
			return nil, fmt.Errorf("parse error on line %d: %w", i, err)
		}
		list = append(list, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
