// Package parse extracts canonical transactions from brokerage statements.
//
// A statement is loaded into a document, its text lines (CSV exports, PDF
// text dumps) or its rows of cells (XLSX exports), and handed to a Registry
// that tries its configured vendor parsers in order. The first parser whose
// Matches accepts the document parses it. A document no parser matches, or
// that cannot be read, yields no transactions: failures are logged, never
// returned.
package parse

import (
	"path/filepath"
	"strings"

	"github.com/etnz/finmgr"
)

// Kind is the kind of a statement document.
type Kind string

// Document kinds.
const (
	CSV  Kind = "csv"
	XLSX Kind = "xlsx"
	PDF  Kind = "pdf"
)

// KindOf returns the document kind of a file from its extension.
func KindOf(path string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))); k {
	case CSV, XLSX, PDF:
		return k, true
	}
	return "", false
}

// Lines is a text document: a CSV export or the text extracted from a PDF.
type Lines []string

// Rows is a spreadsheet document: the cell values of the first sheet.
type Rows [][]string

// Document is the set of document shapes.
type Document interface{ Lines | Rows }

// Parser is implemented by every vendor parser.
//
// Matches must only inspect a fixed window of the document (a header line,
// a few lines at known offsets) so that trying every parser on every document
// is cheap. Parse extracts the transactions, skipping what it cannot read.
type Parser[D Document] interface {
	Name() string
	Matches(D) bool
	Parse(D) []finmgr.Transaction
}
