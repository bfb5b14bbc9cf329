package market

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/date"
	"github.com/shopspring/decimal"
)

// The price file is a JSONL file, one close per line, sorted by security then
// date so that it stays readable and diffs well:
//
//	{"date":"2021-03-01","symbol":"XEQ","currency":"CAD","close":27.45}

// jclose is one line of the price file.
type jclose struct {
	Date     date.Date       `json:"date"`
	Symbol   string          `json:"symbol"`
	Currency string          `json:"currency"`
	Close    decimal.Decimal `json:"close"`
}

// Decode reads closes from a JSONL stream into p.
func (p *Prices) Decode(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if strings.TrimSpace(string(line)) == "" {
			continue
		}
		var j jclose
		if err := json.Unmarshal(line, &j); err != nil {
			return fmt.Errorf("line %d: not a correct json: %w", i, err)
		}
		if j.Symbol == "" || j.Currency == "" {
			return fmt.Errorf("line %d: symbol and currency are required", i)
		}
		if j.Date.IsZero() {
			return fmt.Errorf("line %d: date is required", i)
		}
		p.Set(finmgr.NewSecurity(j.Symbol, j.Currency), j.Date, j.Close)
	}
	return scanner.Err()
}

// Encode writes every close of p as JSONL.
func (p *Prices) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, s := range p.Securities() {
		for on, v := range p.closes[s].Values() {
			if err := enc.Encode(jclose{Date: on, Symbol: s.Symbol, Currency: s.Currency, Close: v}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load reads a price file. A missing file is an empty store.
func Load(path string) (*Prices, error) {
	p := NewPrices()
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open price file %q: %w", path, err)
	}
	defer f.Close()
	if err := p.Decode(f); err != nil {
		return nil, fmt.Errorf("cannot read price file %q: %w", path, err)
	}
	return p, nil
}

// Save writes the price file, replacing it atomically.
func (p *Prices) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("cannot create price file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := p.Encode(w); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write price file: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write price file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write price file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
