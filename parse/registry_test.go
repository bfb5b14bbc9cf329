package parse

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

var (
	acct = finmgr.Account{ID: "1", Alias: "1", Type: finmgr.TFSA}
	xeq  = finmgr.NewSecurity("XEQ", "CAD")
)

// prefixParser matches documents whose first line starts with prefix and
// returns one deposit per following line.
type prefixParser struct {
	name, prefix string
	calls        int
}

func (p *prefixParser) Name() string { return p.name }

func (p *prefixParser) Matches(doc Lines) bool {
	return len(doc) > 0 && strings.HasPrefix(doc[0], p.prefix)
}

func (p *prefixParser) Parse(doc Lines) []finmgr.Transaction {
	p.calls++
	var list []finmgr.Transaction
	for range doc[1:] {
		list = append(list, finmgr.NewDeposit(date.New(2021, 1, 1), acct, finmgr.M(1, "CAD")))
	}
	return list
}

// headerParser matches spreadsheets whose first cell is "Date".
type headerParser struct{}

func (headerParser) Name() string { return "header" }

func (headerParser) Matches(doc Rows) bool {
	return len(doc) > 0 && len(doc[0]) > 0 && doc[0][0] == "Date"
}

func (headerParser) Parse(doc Rows) []finmgr.Transaction {
	var list []finmgr.Transaction
	for _, row := range doc[1:] {
		on, err := date.ParseISO(row[0])
		if err != nil {
			continue
		}
		list = append(list, finmgr.NewDistribution(on, acct, xeq, finmgr.M(MustAmount(row[1]), "CAD")))
	}
	return list
}

type panicParser struct{}

func (panicParser) Name() string                     { return "panic" }
func (panicParser) Matches(Lines) bool               { return true }
func (panicParser) Parse(Lines) []finmgr.Transaction { panic("boom") }

func newRegistry(t *testing.T, log *bytes.Buffer, csv ...Parser[Lines]) *Registry {
	t.Helper()
	return NewRegistry(Config{
		CSV:    csv,
		XLSX:   []Parser[Rows]{headerParser{}},
		PDF:    csv,
		Logger: zerolog.New(log),
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want Kind
		ok   bool
	}{
		{"a/b/Activity.csv", CSV, true},
		{"statement.PDF", PDF, true},
		{"export.xlsx", XLSX, true},
		{"notes.txt", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		got, ok := KindOf(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("KindOf(%q) = %q, %v, want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRegistryFirstMatchWins(t *testing.T) {
	first := &prefixParser{name: "first", prefix: "A"}
	second := &prefixParser{name: "second", prefix: "A"}
	var log bytes.Buffer
	r := newRegistry(t, &log, first, second)

	got := r.ParseCSV(Lines{"A header", "x", "y"})
	assert.Len(t, got, 2)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "second parser must not be tried")
	assert.Contains(t, log.String(), `"parser":"first"`)
}

func TestRegistryNoMatch(t *testing.T) {
	p := &prefixParser{name: "p", prefix: "B"}
	var log bytes.Buffer
	r := newRegistry(t, &log, p)

	assert.Empty(t, r.ParseCSV(Lines{"A header", "x"}))
	assert.Empty(t, r.ParseCSV(nil))
	assert.Equal(t, 0, p.calls)
	assert.Contains(t, log.String(), "no parser matches")
}

func TestRegistryRecoversFromPanics(t *testing.T) {
	var log bytes.Buffer
	r := newRegistry(t, &log, panicParser{})
	assert.Empty(t, r.ParseCSV(Lines{"anything"}))
	assert.Contains(t, log.String(), "boom")
}

func TestRegistryUnreadableDocuments(t *testing.T) {
	var log bytes.Buffer
	r := newRegistry(t, &log, &prefixParser{name: "p", prefix: "A"})

	assert.Empty(t, r.Parse(XLSX, strings.NewReader("not a zip archive")))
	assert.Empty(t, r.Parse(PDF, strings.NewReader("not a pdf")))
	assert.Empty(t, r.ParseFile(filepath.Join(t.TempDir(), "missing.csv")))
	assert.Contains(t, log.String(), `"level":"error"`)
}

func writeXLSX(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f := xlsx.NewFile()
	sh, err := f.AddSheet("Activities")
	require.NoError(t, err)
	for _, cells := range rows {
		row := sh.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	require.NoError(t, f.Save(path))
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.xlsx")
	writeXLSX(t, path, [][]string{
		{"Date", "Amount"},
		{"2021-03-01", "12.50"},
		{"2021-03-02", "$1,000.00"},
	})
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := LoadXLSX(f)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2021-03-02", "$1,000.00"}, rows[2])
}

func TestWalk(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "2021")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("A\nx\ny\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.csv"), []byte("A\r\nz\r\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.csv"), []byte("B\nz\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "readme.txt"), []byte("A\nz\n"), 0o644))
	writeXLSX(t, filepath.Join(sub, "d.xlsx"), [][]string{
		{"Date", "Amount"},
		{"2021-03-01", "12.50"},
	})

	var log bytes.Buffer
	r := newRegistry(t, &log, &prefixParser{name: "p", prefix: "A"})
	got := r.Walk(dir, filepath.Join(dir, "missing"))

	// "2021" sorts before "a.csv": b.csv, d.xlsx, then a.csv.
	require.Len(t, got, 4)
	actions := []finmgr.Action{}
	for _, tx := range got {
		actions = append(actions, tx.Action)
	}
	assert.Equal(t, []finmgr.Action{finmgr.Deposit, finmgr.Distribution, finmgr.Deposit, finmgr.Deposit}, actions)
	assert.True(t, got[1].Net.Equal(finmgr.M(12.5, "CAD")))
	assert.Contains(t, log.String(), "missing")
}

func TestLoadLines(t *testing.T) {
	lines, err := LoadLines(strings.NewReader("\uFEFFheader\r\nline 1\n\nline 3"))
	require.NoError(t, err)
	assert.Equal(t, Lines{"header", "line 1", "", "line 3"}, lines)
}
