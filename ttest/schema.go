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

package ttest

import (
	"context"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/stockparfait/message"
	"github.com/stockparfait/welch/table"
)

// Config is the schema of a t-test run for the command line app.
type Config struct {
	Data        string   `json:"data" required:"true"`                 // CSV file with the observations
	Independent string   `json:"independent variable" required:"true"` // grouping column
	Dependent   string   `json:"dependent variable" required:"true"`   // observations column
	Groups      []string `json:"control test values" required:"true"` // [control, test]
}

var _ message.Message = &Config{}

// InitMessage implements message.Message. The number of group values is
// deliberately not checked here; the t-test validator owns that check.
func (c *Config) InitMessage(js any) error {
	return errors.Annotate(message.Init(c, js), "failed to init Config")
}

// Run loads the configured CSV data and runs Welch's t-test on it. Group
// values are parsed with the same rules as CSV cells, so e.g. "1.5" matches
// numeric cells and "control" matches string cells.
func Run(ctx context.Context, c *Config) (*Result, error) {
	tbl, err := table.ReadCSVFile(c.Data)
	if err != nil {
		return nil, errors.Annotate(err, "failed to read data from '%s'", c.Data)
	}
	logging.Debugf(ctx, "loaded %d rows from '%s'", tbl.NumRows(), c.Data)
	groups := make([]table.Cell, len(c.Groups))
	for i, g := range c.Groups {
		groups[i] = table.ParseCell(g)
	}
	return Welch(tbl, c.Independent, c.Dependent, groups)
}
