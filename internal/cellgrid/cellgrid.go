// Package cellgrid provides a simple CSV-backed calc.CellProvider for
// the reference CLI: rows and columns of a CSV file addressed as A1,
// B2, and so on.
package cellgrid

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/tablecalc/tablecalc/pkg/calc"
)

// Grid is a rectangular CSV-backed cell store, in memory. It implements
// calc.CellProvider: a cell outside the loaded range reports absent
// rather than an error, the way a blank spreadsheet cell would.
type Grid struct {
	rows [][]string
}

// Load reads a CSV file into a Grid.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening grid file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading grid file: %w", err)
	}
	return &Grid{rows: rows}, nil
}

// NewFromRows builds a Grid directly from an in-memory row set, mainly
// for tests.
func NewFromRows(rows [][]string) *Grid {
	return &Grid{rows: rows}
}

// CellValue implements calc.CellProvider. Row 1 is the first CSV row,
// column A is the first CSV field.
func (g *Grid) CellValue(addr string) (string, bool) {
	cols, row := calc.SplitCellAddress(addr)
	rowIdx := row - 1
	colIdx := calc.LettersToIndex(cols) - 1

	if rowIdx < 0 || rowIdx >= len(g.rows) {
		return "", false
	}
	record := g.rows[rowIdx]
	if colIdx < 0 || colIdx >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[colIdx]), true
}

// RowCount reports how many data rows are loaded.
func (g *Grid) RowCount() int { return len(g.rows) }
