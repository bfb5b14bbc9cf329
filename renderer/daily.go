package renderer

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/etnz/finmgr"
	md "github.com/nao1215/markdown"
)

// DailyMarkdown renders a daily report: one table per account type and
// operation, one row per date and one column per security.
func DailyMarkdown(r finmgr.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Daily Report")

	dates := r.Dates()
	if len(dates) == 0 {
		doc.PlainText("Empty report.")
		return doc.String()
	}
	doc.PlainText(fmt.Sprintf("From %s to %s.", dates[0], dates[len(dates)-1]))

	for _, accountType := range accountTypes(r) {
		for _, operation := range operations(r, accountType) {
			securities := reportedSecurities(r, accountType, operation)
			if len(securities) == 0 {
				continue
			}
			doc.H2(fmt.Sprintf("%s %s", accountType, operation))

			header := []string{"Date"}
			for _, s := range securities {
				header = append(header, s.Symbol)
			}
			table := md.TableSet{Header: append(header, "Total")}
			for _, on := range dates {
				row := []string{on.String()}
				totals := make(moneyTotals)
				for _, s := range securities {
					m, ok := r.Get(on, accountType, operation, s)
					if !ok {
						row = append(row, "")
						continue
					}
					totals.add(m)
					row = append(row, m.String())
				}
				table.Rows = append(table.Rows, append(row, joinTotals(totals)))
			}
			doc.Table(table)
		}
	}
	return doc.String()
}

func joinTotals(t moneyTotals) string {
	s := ""
	for i, v := range t.strings() {
		if i > 0 {
			s += ", "
		}
		s += v
	}
	return s
}

func accountTypes(r finmgr.Report) []finmgr.AccountType {
	seen := make(map[finmgr.AccountType]struct{})
	for _, accounts := range r {
		for t := range accounts {
			seen[t] = struct{}{}
		}
	}
	list := make([]finmgr.AccountType, 0, len(seen))
	for t := range seen {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

func operations(r finmgr.Report, t finmgr.AccountType) []string {
	seen := make(map[string]struct{})
	for _, accounts := range r {
		for name := range accounts[t] {
			seen[name] = struct{}{}
		}
	}
	list := make([]string, 0, len(seen))
	for name := range seen {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

func reportedSecurities(r finmgr.Report, t finmgr.AccountType, operation string) []finmgr.Security {
	seen := make(map[finmgr.Security]struct{})
	for _, accounts := range r {
		for s := range accounts[t][operation] {
			seen[s] = struct{}{}
		}
	}
	list := make([]finmgr.Security, 0, len(seen))
	for s := range seen {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Less(list[j]) })
	return list
}
