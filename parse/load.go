package parse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/tealeg/xlsx/v3"
)

// ErrEncrypted is returned when loading a password protected PDF.
var ErrEncrypted = errors.New("encrypted document")

// LoadLines reads a text document, one entry per line, without the line
// terminators. A leading byte order mark is dropped.
func LoadLines(in io.Reader) (Lines, error) {
	var lines Lines
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return lines, nil
}

// LoadXLSX reads the first sheet of a spreadsheet. Empty cells are kept so
// that every value stays at its column index.
func LoadXLSX(in io.Reader) (Rows, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading spreadsheet: %w", err)
	}
	file, err := xlsx.OpenBinary(content)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, errors.New("spreadsheet has no sheet")
	}
	sheet := file.Sheets[0]
	defer sheet.Close()

	var rows Rows
	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		var row []string
		err := r.ForEachCell(func(c *xlsx.Cell) error {
			row = append(row, c.String())
			return nil
		})
		rows = append(rows, row)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet.Name, err)
	}
	return rows, nil
}

// LoadPDF extracts the text lines of a PDF document, page after page, top to
// bottom. Fragments on the same baseline are joined into a single line.
func LoadPDF(in io.Reader) (lines Lines, err error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	// the pdf package panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return nil, ErrEncrypted
	}
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		for _, row := range rows {
			if line := joinRow(row.Content); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines, nil
}

// joinRow concatenates text fragments, inserting a space where fragments do
// not touch.
func joinRow(texts []pdf.Text) string {
	var b strings.Builder
	end := math.Inf(-1)
	for _, t := range texts {
		if b.Len() > 0 && t.X-end > t.FontSize*0.15 {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		end = t.X + t.W
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
