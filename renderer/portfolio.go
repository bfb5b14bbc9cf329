package renderer

import (
	"bytes"

	"github.com/etnz/finmgr"
	md "github.com/nao1215/markdown"
)

// PortfolioMarkdown renders the open positions of every account type with
// their cost basis.
func PortfolioMarkdown(p finmgr.Portfolio) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Portfolio")

	empty := true
	for _, accountType := range p.AccountTypes() {
		h := p.Holding(accountType)
		securities := h.Securities()
		if len(securities) == 0 {
			continue
		}
		empty = false
		doc.H2(string(accountType))

		table := md.TableSet{
			Header: []string{"Security", "Currency", "Quantity", "Cost Basis", "ACB per Share"},
		}
		totals := make(moneyTotals)
		for _, s := range securities {
			cb := h.CostBasis(s).Neg()
			totals.add(cb)
			table.Rows = append(table.Rows, []string{
				s.Symbol,
				s.Currency,
				h.Quantity(s).String(),
				cb.String(),
				h.ACBPerShare(s).Round().String(),
			})
		}
		doc.Table(table)
		doc.BulletList(prefix("Total cost basis: ", totals.strings())...)
	}
	if empty {
		doc.PlainText("No open position.")
	}
	return doc.String()
}

func prefix(p string, list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = p + s
	}
	return out
}
