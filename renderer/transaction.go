package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/finmgr"
	md "github.com/nao1215/markdown"
)

// Transaction renders a transaction to a string.
func Transaction(tx finmgr.Transaction) string {
	sec := tx.SecurityOrZero()
	switch tx.Action {
	case finmgr.Buy, finmgr.Reinvest:
		return fmt.Sprintf("Bought %s of %s for %s", tx.QuantityOrZero(), sec, tx.Net.Neg())
	case finmgr.Sell:
		return fmt.Sprintf("Sold %s of %s for %s", tx.QuantityOrZero().Neg(), sec, tx.Net)
	case finmgr.Distribution:
		if roc, ok := tx.Distribution.ReturnOfCapital.Get(); ok {
			return fmt.Sprintf("Distribution of %s for %s, %s return of capital", tx.Net, sec, roc)
		}
		return fmt.Sprintf("Distribution of %s for %s", tx.Net, sec)
	case finmgr.Deposit:
		return fmt.Sprintf("Deposited %s", tx.Net)
	case finmgr.Withdrawal:
		return fmt.Sprintf("Withdrew %s", tx.Net.Neg())
	case finmgr.Fee:
		return fmt.Sprintf("Fee of %s", tx.Net.Neg())
	default:
		return fmt.Sprintf("%s of %s", tx.Action, tx.Net)
	}
}

// TransactionsMarkdown renders transactions as a table, in the given order.
func TransactionsMarkdown(transactions []finmgr.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Transactions")
	if len(transactions) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Date", "Settles", "Account", "Action", "Symbol", "Quantity", "Price", "Commission", "Net"},
	}
	for _, tx := range transactions {
		symbol := ""
		if sec, ok := tx.Security.Get(); ok {
			symbol = sec.Symbol
		}
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			tx.Settlement.String(),
			tx.Account.String(),
			string(tx.Action),
			symbol,
			optionalQuantity(tx.Quantity),
			optionalMoney(tx.Price),
			optionalMoney(tx.Commission),
			tx.Net.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
