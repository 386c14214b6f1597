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

package table

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"
)

// ParseCell converts a raw CSV field into a Cell. Empty fields and the
// common missing-value markers become nulls, fields that parse as floats
// become numbers, and everything else is a string.
func ParseCell(field string) Cell {
	s := strings.TrimSpace(field)
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return Null()
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(x) {
			return Null()
		}
		return Number(x)
	}
	return String(s)
}

// ReadCSV reads an entire CSV table from r. The first row is the header; all
// rows must have the same number of fields as the header.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Reason("CSV input is empty: no header row")
	}
	if err != nil {
		return nil, errors.Annotate(err, "failed to read CSV header")
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	t := New(header...)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Annotate(err, "failed to read CSV row")
		}
		cells := make([]Cell, len(row))
		for i, f := range row {
			cells[i] = ParseCell(f)
		}
		t.AddRow(cells...)
	}
	return t, nil
}

// ReadCSVFile reads a CSV table from the file at path.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open file '%s'", path)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Annotate(err, "failed to read CSV from '%s'", path)
	}
	return t, nil
}
