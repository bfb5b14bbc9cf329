package parse

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/finmgr"
	"github.com/rs/zerolog"
)

// Config lists the parsers of a Registry, in the order they are tried.
type Config struct {
	CSV  []Parser[Lines]
	XLSX []Parser[Rows]
	PDF  []Parser[Lines]

	Logger zerolog.Logger
}

// Registry dispatches documents to the first matching parser of their kind.
//
// No error escapes a Registry: I/O failures, malformed input and documents no
// parser matches all produce an empty result and a log event.
type Registry struct {
	csv  []Parser[Lines]
	xlsx []Parser[Rows]
	pdf  []Parser[Lines]
	log  zerolog.Logger
}

// NewRegistry returns a Registry configured with cfg.
func NewRegistry(cfg Config) *Registry {
	return &Registry{csv: cfg.CSV, xlsx: cfg.XLSX, pdf: cfg.PDF, log: cfg.Logger}
}

// ParseCSV returns the transactions of a CSV document.
func (r *Registry) ParseCSV(doc Lines) []finmgr.Transaction {
	return dispatch(r.log.With().Str("kind", string(CSV)).Logger(), r.csv, doc)
}

// ParseXLSX returns the transactions of a spreadsheet document.
func (r *Registry) ParseXLSX(doc Rows) []finmgr.Transaction {
	return dispatch(r.log.With().Str("kind", string(XLSX)).Logger(), r.xlsx, doc)
}

// ParsePDF returns the transactions of the text lines of a PDF document.
func (r *Registry) ParsePDF(doc Lines) []finmgr.Transaction {
	return dispatch(r.log.With().Str("kind", string(PDF)).Logger(), r.pdf, doc)
}

// dispatch tries each parser in order and short-circuits on the first match.
func dispatch[D Document](log zerolog.Logger, parsers []Parser[D], doc D) (transactions []finmgr.Transaction) {
	defer func() {
		if err := recover(); err != nil {
			log.Error().Interface("panic", err).Msg("parser failed, document skipped")
			transactions = nil
		}
	}()
	for _, p := range parsers {
		if !p.Matches(doc) {
			log.Debug().Str("parser", p.Name()).Msg("did not match")
			continue
		}
		transactions = p.Parse(doc)
		log.Info().Str("parser", p.Name()).Int("transactions", len(transactions)).Msg("parsed document")
		return transactions
	}
	log.Info().Msg("no parser matches the document")
	return nil
}

// Parse reads a document of the given kind and returns its transactions.
func (r *Registry) Parse(kind Kind, in io.Reader) []finmgr.Transaction {
	log := r.log.With().Str("kind", string(kind)).Logger()
	switch kind {
	case CSV:
		doc, err := LoadLines(in)
		if err != nil {
			log.Error().Err(err).Msg("cannot read document")
			return nil
		}
		return r.ParseCSV(doc)
	case XLSX:
		doc, err := LoadXLSX(in)
		if err != nil {
			log.Error().Err(err).Msg("cannot read document")
			return nil
		}
		return r.ParseXLSX(doc)
	case PDF:
		doc, err := LoadPDF(in)
		if err != nil {
			log.Error().Err(err).Msg("cannot read document")
			return nil
		}
		return r.ParsePDF(doc)
	}
	log.Error().Msg("unsupported document kind")
	return nil
}

// ParseFile reads a statement file, dispatched on its extension, and returns
// its transactions.
func (r *Registry) ParseFile(path string) []finmgr.Transaction {
	log := r.log.With().Str("path", path).Logger()
	kind, ok := KindOf(path)
	if !ok {
		log.Debug().Msg("unsupported file extension, skipped")
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Msg("cannot open document")
		return nil
	}
	sub := &Registry{csv: r.csv, xlsx: r.xlsx, pdf: r.pdf, log: log}
	return sub.Parse(kind, bytes.NewReader(content))
}

// Walk parses every statement file found under the given paths. Directories
// are traversed recursively, in lexical order. A path that cannot be read
// is logged and skipped.
func (r *Registry) Walk(paths ...string) []finmgr.Transaction {
	var transactions []finmgr.Transaction
	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				r.log.Error().Err(err).Str("path", path).Msg("cannot traverse")
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			transactions = append(transactions, r.ParseFile(path)...)
			return nil
		})
		if err != nil {
			r.log.Error().Err(err).Str("path", root).Msg("cannot traverse")
		}
	}
	return transactions
}

// String describes the registry configuration.
func (r *Registry) String() string {
	return fmt.Sprintf("csv=%s xlsx=%s pdf=%s", names(r.csv), names(r.xlsx), names(r.pdf))
}

func names[D Document](parsers []Parser[D]) []string {
	list := make([]string, 0, len(parsers))
	for _, p := range parsers {
		list = append(list, p.Name())
	}
	return list
}
