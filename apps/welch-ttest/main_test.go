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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stockparfait/logging"
	"github.com/stockparfait/testutil"
	"github.com/stockparfait/welch/ttest"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(t *testing.T) {
	t.Parallel()

	tmpdir, tmpdirErr := os.MkdirTemp("", "test_welch_ttest")
	defer os.RemoveAll(tmpdir)

	Convey("Setup succeeded", t, func() {
		So(tmpdirErr, ShouldBeNil)
	})

	Convey("parseFlags", t, func() {
		flags, err := parseFlags([]string{
			"-conf", "path/to/config", "-log-level", "warning", "-csv", "-json"})
		So(err, ShouldBeNil)
		So(flags.Config, ShouldEqual, "path/to/config")
		So(flags.LogLevel, ShouldEqual, logging.Warning)
		So(flags.CSV, ShouldBeTrue)
		So(flags.JSON, ShouldBeTrue)

		_, err = parseFlags([]string{})
		So(err, ShouldNotBeNil)
	})

	Convey("printData works", t, func() {
		ctx := context.Background()
		dataFile := filepath.Join(tmpdir, "data.csv")
		So(testutil.WriteFile(dataFile, `group,value
control,12.5
control,13.2
control,11.8
control,14.1
test,15.2
test,14.8
test,16.1
test,15.7
`), ShouldBeNil)

		configFile := filepath.Join(tmpdir, "config.json")
		So(testutil.WriteFile(configFile, fmt.Sprintf(`
{
  "data": "%s",
  "independent variable": "group",
  "dependent variable": "value",
  "control test values": ["control", "test"]
}`, dataFile)), ShouldBeNil)

		Convey("print text", func() {
			flags, err := parseFlags([]string{"-conf", configFile})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(printData(ctx, flags, &buf), ShouldBeNil)
			out := buf.String()
			So(out, ShouldContainSubstring, "Statistic |")
			So(out, ShouldContainSubstring, "t_statistic")
			So(out, ShouldContainSubstring, "mean_difference")
		})

		Convey("print CSV", func() {
			flags, err := parseFlags([]string{"-conf", configFile, "-csv"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(printData(ctx, flags, &buf), ShouldBeNil)
			out := buf.String()
			So(out, ShouldContainSubstring, "Statistic,Value\n")
			So(out, ShouldContainSubstring, "n_control,4\n")
			So(out, ShouldContainSubstring, "control_value,control\n")
		})

		Convey("print JSON", func() {
			flags, err := parseFlags([]string{"-conf", configFile, "-json"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(printData(ctx, flags, &buf), ShouldBeNil)
			var out ttest.Outcome
			So(json.Unmarshal(buf.Bytes(), &out), ShouldBeNil)
			So(out.Error, ShouldEqual, "")
			So(out.Result, ShouldNotBeNil)
			So(testutil.Round(out.Result.TStatistic, 5), ShouldEqual, -4.4903)
			So(out.Result.NControl, ShouldEqual, 4)
		})

		Convey("print JSON error outcome", func() {
			badConfig := filepath.Join(tmpdir, "bad.json")
			So(testutil.WriteFile(badConfig, fmt.Sprintf(`
{
  "data": "%s",
  "independent variable": "cohort",
  "dependent variable": "value",
  "control test values": ["control", "test"]
}`, dataFile)), ShouldBeNil)
			flags, err := parseFlags([]string{"-conf", badConfig, "-json"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(printData(ctx, flags, &buf), ShouldBeNil)
			var out ttest.Outcome
			So(json.Unmarshal(buf.Bytes(), &out), ShouldBeNil)
			So(out.Result, ShouldBeNil)
			So(out.Error, ShouldContainSubstring, `"cohort"`)
		})

		Convey("TOML config", func() {
			tomlConfig := filepath.Join(tmpdir, "config.toml")
			So(testutil.WriteFile(tomlConfig, fmt.Sprintf(`
data = "%s"
"independent variable" = "group"
"dependent variable" = "value"
"control test values" = ["control", "test"]
`, dataFile)), ShouldBeNil)
			flags, err := parseFlags([]string{"-conf", tomlConfig, "-csv"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(printData(ctx, flags, &buf), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "n_test,4\n")
		})

		Convey("failed t-test is an error without -json", func() {
			badConfig := filepath.Join(tmpdir, "bad2.json")
			So(testutil.WriteFile(badConfig, fmt.Sprintf(`
{
  "data": "%s",
  "independent variable": "group",
  "dependent variable": "value",
  "control test values": ["x", "y"]
}`, dataFile)), ShouldBeNil)
			flags, err := parseFlags([]string{"-conf", badConfig})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(printData(ctx, flags, &buf), ShouldNotBeNil)
		})
	})
}
