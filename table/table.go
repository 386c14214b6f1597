// Copyright 2024 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table implements an in-memory table of typed cells with named
// columns. A cell is a union of a string, a number (float64) or a null, the
// explicit representation of a missing value. Nulls compare unequal to
// everything, including other nulls, matching the usual NaN semantics of
// missing data.
package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"

	"golang.org/x/exp/slices"
)

type cellKind uint8

const (
	nullCell cellKind = iota
	stringCell
	numberCell
)

// Cell is a single table value: a string, a number or a null. The zero value
// is a null.
type Cell struct {
	kind   cellKind
	number float64
	str    string
}

// Null creates a missing-value cell.
func Null() Cell { return Cell{} }

// String creates a string-valued cell.
func String(s string) Cell { return Cell{kind: stringCell, str: s} }

// Number creates a number-valued cell. A NaN argument is indistinguishable
// from a null.
func Number(x float64) Cell { return Cell{kind: numberCell, number: x} }

// IsNull checks whether the cell holds no usable value. A NaN number counts
// as null.
func (c Cell) IsNull() bool {
	return c.kind == nullCell || (c.kind == numberCell && math.IsNaN(c.number))
}

// Number returns the cell's numeric value, and whether the cell indeed holds
// a non-null number.
func (c Cell) Number() (float64, bool) {
	if c.kind != numberCell || math.IsNaN(c.number) {
		return 0.0, false
	}
	return c.number, true
}

// Equal compares two cells by value. Nulls are never equal to anything, not
// even to other nulls.
func (c Cell) Equal(c2 Cell) bool {
	if c.IsNull() || c2.IsNull() || c.kind != c2.kind {
		return false
	}
	if c.kind == numberCell {
		return c.number == c2.number
	}
	return c.str == c2.str
}

// String implements fmt.Stringer. Nulls print as the empty string.
func (c Cell) String() string {
	switch c.kind {
	case stringCell:
		return c.str
	case numberCell:
		if math.IsNaN(c.number) {
			return ""
		}
		return strconv.FormatFloat(c.number, 'g', -1, 64)
	}
	return ""
}

// MarshalJSON implements json.Marshaler. Nulls become JSON null.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.IsNull() {
		return []byte("null"), nil
	}
	if c.kind == numberCell {
		return json.Marshal(c.number)
	}
	return json.Marshal(c.str)
}

// UnmarshalJSON implements json.Unmarshaler: JSON null, numbers and strings
// become the corresponding cells.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Annotate(err, "failed to parse cell")
	}
	switch x := v.(type) {
	case nil:
		*c = Null()
	case float64:
		*c = Number(x)
	case string:
		*c = String(x)
	default:
		return errors.Reason("unsupported cell value: %v", v)
	}
	return nil
}

// Column is a read-only view of a single named table column.
type Column struct {
	name  string
	cells []Cell
}

// Name of the column.
func (c *Column) Name() string { return c.name }

// Cells of the column in row order. The slice is shared with the table and
// must not be modified.
func (c *Column) Cells() []Cell { return c.cells }

// Distinct returns the distinct non-null cell values in the order of their
// first occurrence.
func (c *Column) Distinct() []Cell {
	var res []Cell
	for _, cell := range c.cells {
		if cell.IsNull() {
			continue
		}
		seen := false
		for _, d := range res {
			if d.Equal(cell) {
				seen = true
				break
			}
		}
		if !seen {
			res = append(res, cell)
		}
	}
	return res
}

// Table is a rectangular collection of cells with named columns, stored
// column-major.
//
// A typical use:
//
//	t := table.New("group", "value")
//	t.AddRow(table.String("control"), table.Number(12.5))
//	t.AddRow(table.String("test"), table.Number(15.2))
type Table struct {
	header  []string
	columns [][]Cell
}

// New creates an empty table with the given column names.
func New(header ...string) *Table {
	return &Table{header: header, columns: make([][]Cell, len(header))}
}

// Header returns the column names.
func (t *Table) Header() []string { return t.header }

// NumRows in the table.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0])
}

// NumColumns in the table.
func (t *Table) NumColumns() int { return len(t.columns) }

// AddRow appends a row of cells. It panics if the number of cells differs
// from the number of columns; the table must remain rectangular.
func (t *Table) AddRow(cells ...Cell) {
	if len(cells) != len(t.columns) {
		panic(errors.Reason("row size [%d] != number of columns [%d]",
			len(cells), len(t.columns)))
	}
	for i, c := range cells {
		t.columns[i] = append(t.columns[i], c)
	}
}

// Column returns the named column, or nil if no such column exists.
func (t *Table) Column(name string) *Column {
	i := slices.Index(t.header, name)
	if i < 0 {
		return nil
	}
	return &Column{name: name, cells: t.columns[i]}
}

// row collects the i'th row as strings for printing.
func (t *Table) row(i int) []string {
	res := make([]string, len(t.columns))
	for j, col := range t.columns {
		res[j] = col[i].String()
	}
	return res
}

// Params are parameters for pretty-printing or CSV export of Table data.
type Params struct {
	Rows        int  // max. number of rows to write; 0 = unlimited (default)
	NoHeader    bool // whether to print the header, default - yes
	MaxColWidth int  // for WriteText only; 0 = unlimited, otherwise must be >= 4
}

func (t *Table) numPrintRows(p Params) int {
	n := t.NumRows()
	if p.Rows > 0 && p.Rows < n {
		n = p.Rows
	}
	return n
}

// WriteCSV writes the entire table to w in CSV format.
func (t *Table) WriteCSV(w io.Writer, p Params) error {
	cw := csv.NewWriter(w)
	if !p.NoHeader && len(t.header) > 0 {
		if err := cw.Write(t.header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for i := 0; i < t.numPrintRows(p); i++ {
		if err := cw.Write(t.row(i)); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Annotate(err, "failed to flush written rows")
	}
	return nil
}

// WriteText writes the table as a text formatted for ease of reading: cells
// right-aligned to the widest value in their column, columns separated by
// " | ", and the header separated from the data by dashes.
func (t *Table) WriteText(w io.Writer, p Params) error {
	if p.MaxColWidth != 0 && p.MaxColWidth < 4 {
		return errors.Reason("MaxColWidth [%d] must be 0 or >= 4", p.MaxColWidth)
	}
	var out [][]string
	if !p.NoHeader && len(t.header) > 0 {
		out = append(out, t.header, nil) // nil = the dashed separator row
	}
	for i := 0; i < t.numPrintRows(p); i++ {
		out = append(out, t.row(i))
	}

	widths := make([]int, len(t.columns))
	for _, row := range out {
		for i, s := range row {
			if widths[i] < len(s) {
				widths[i] = len(s)
				if p.MaxColWidth > 0 && widths[i] > p.MaxColWidth {
					widths[i] = p.MaxColWidth
				}
			}
		}
	}

	for _, row := range out {
		cells := make([]string, len(widths))
		for i, width := range widths {
			if row == nil {
				cells[i] = strings.Repeat("-", width)
				continue
			}
			s := row[i]
			if len([]rune(s)) > width {
				s = string([]rune(s)[:width-2]) + ".."
			}
			cells[i] = fmt.Sprintf("%[2]*[1]s", s, width)
		}
		if _, err := fmt.Fprintf(w, "%s\n", strings.Join(cells, " | ")); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	return nil
}
