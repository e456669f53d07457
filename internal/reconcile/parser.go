// Package reconcile reads payment settlement event files and feeds them to the expense engine.
package reconcile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/encoding"
	"github.com/MrJamesThe3rd/cuotas/internal/expense"
	"github.com/MrJamesThe3rd/cuotas/internal/mapping"
)

const (
	colPaymentID = "payment_id"
	colStatus    = "status"
	colAmount    = "amount"
	colDate      = "date"
)

var requiredCols = []string{colPaymentID, colStatus}

// DefaultComma separates fields when the parser is built with a zero delimiter.
const DefaultComma = ';'

// Parser reads event CSVs: a header row naming payment_id and status, optionally amount and
// date, followed by one event per row.
type Parser struct {
	comma rune
}

func NewParser(comma rune) *Parser {
	if comma == 0 {
		comma = DefaultComma
	}

	return &Parser{comma: comma}
}

// colIndex maps lower-cased header names to their position.
type colIndex map[string]int

func (c colIndex) value(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func (p *Parser) Parse(r io.Reader) ([]expense.PaymentUpdate, error) {
	utf8r, cs, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = p.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		cols    colIndex
		updates []expense.PaymentUpdate
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		if isBlank(row) {
			continue
		}

		line, _ := reader.FieldPos(0)

		if cols == nil {
			if cols, err = header(row); err != nil {
				return nil, fmt.Errorf("row %d: %w", line, err)
			}

			continue
		}

		u, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		updates = append(updates, u)
	}

	if cols == nil {
		return nil, fmt.Errorf("missing header: expected columns %s", strings.Join(requiredCols, ", "))
	}

	slog.Info("parsed event file", "charset", cs, "events", len(updates))

	return updates, nil
}

func header(row []string) (colIndex, error) {
	cols := make(colIndex, len(row))

	for i, cell := range row {
		if name := strings.ToLower(strings.TrimSpace(cell)); name != "" {
			cols[name] = i
		}
	}

	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	return cols, nil
}

func parseRow(cols colIndex, row []string) (expense.PaymentUpdate, error) {
	var u expense.PaymentUpdate

	id, err := uuid.Parse(cols.value(row, colPaymentID))
	if err != nil {
		return u, fmt.Errorf("invalid payment id: %w", err)
	}

	status, err := expense.ParsePaymentStatus(cols.value(row, colStatus))
	if err != nil {
		return u, err
	}

	u.PaymentID = id
	u.Status = status

	if s := cols.value(row, colAmount); s != "" {
		a, err := parseAmount(s)
		if err != nil {
			return u, fmt.Errorf("invalid amount %q: %w", s, err)
		}

		u.Amount = &a
	}

	if s := cols.value(row, colDate); s != "" {
		d, err := mapping.ParseDate(s)
		if err != nil {
			return u, err
		}

		u.Date = &d
	}

	return u, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
