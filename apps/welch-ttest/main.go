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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/stockparfait/message"
	"github.com/stockparfait/welch/table"
	"github.com/stockparfait/welch/ttest"
)

type Flags struct {
	LogLevel logging.Level
	Config   string // config file, JSON or TOML by extension
	CSV      bool   // dump CSV format; default: text
	JSON     bool   // dump the permissive {result | error} JSON form
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("welch-ttest", flag.ExitOnError)
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.StringVar(&flags.Config, "conf", "", "config file, JSON or .toml (required)")
	fs.BoolVar(&flags.CSV, "csv", false, "print result table in CSV format; default: text")
	fs.BoolVar(&flags.JSON, "json", false,
		"print the result or the error message as a JSON object")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	if flags.Config == "" {
		return nil, errors.Reason("missing required -conf argument")
	}
	return &flags, err
}

// readConfig populates c from a JSON config file, or from a TOML file when
// the path has a .toml extension.
func readConfig(c *ttest.Config, path string) error {
	if strings.ToLower(filepath.Ext(path)) != ".toml" {
		return message.FromFile(c, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Annotate(err, "failed to open config file '%s'", path)
	}
	defer f.Close()

	var js map[string]any
	if err := toml.NewDecoder(f).Decode(&js); err != nil {
		return errors.Annotate(err, "failed to read config file '%s'", path)
	}
	return c.InitMessage(js)
}

func printData(ctx context.Context, flags *Flags, w io.Writer) error {
	var config ttest.Config
	if err := readConfig(&config, flags.Config); err != nil {
		return errors.Annotate(err, "failed to read config '%s'", flags.Config)
	}
	res, err := ttest.Run(ctx, &config)
	if flags.JSON {
		// The permissive convention: a failed t-test prints as an error
		// object, not as a process failure.
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ttest.NewOutcome(res, err)); err != nil {
			return errors.Annotate(err, "failed to print JSON")
		}
		return nil
	}
	if err != nil {
		return errors.Annotate(err, "t-test failed")
	}
	tbl := res.Table()
	if flags.CSV {
		if err := tbl.WriteCSV(w, table.Params{}); err != nil {
			return errors.Annotate(err, "failed to print CSV")
		}
		return nil
	}
	if err := tbl.WriteText(w, table.Params{}); err != nil {
		return errors.Annotate(err, "failed to print text")
	}
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := printData(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
