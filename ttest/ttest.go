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

// Package ttest runs Welch's two-sample t-test over a table: it partitions
// the rows into a control and a test group by the values of an independent
// column, and tests the dependent column for a difference in group means.
//
// The package offers two failure conventions over the same computation:
// Welch returns a regular Go error (always a *Error, classified by KindOf),
// and WelchOutcome returns an Outcome holding either the result or a single
// error message.
package ttest

import (
	"errors"

	"github.com/stockparfait/welch/stats"
	"github.com/stockparfait/welch/table"
)

// Result of Welch's t-test. The JSON field names are the de facto interface
// for the serialized form; see also Outcome.
//
// The t-statistic is (control mean - test mean) / standard error, so it is
// negative when the test group's mean is larger. MeanDifference is the
// opposite convention, test - control.
type Result struct {
	TStatistic       float64    `json:"t_statistic"`
	PValue           float64    `json:"p_value"`
	DegreesOfFreedom float64    `json:"degrees_of_freedom"`
	MeanControl      float64    `json:"mean_control"`
	MeanTest         float64    `json:"mean_test"`
	StdControl       float64    `json:"std_control"`
	StdTest          float64    `json:"std_test"`
	NControl         int        `json:"n_control"`
	NTest            int        `json:"n_test"`
	MeanDifference   float64    `json:"mean_difference"`
	ControlValue     table.Cell `json:"control_value"`
	TestValue        table.Cell `json:"test_value"`
}

// Table renders the result as a two-column Statistic / Value table suitable
// for table.WriteText or table.WriteCSV.
func (r *Result) Table() *table.Table {
	t := table.New("Statistic", "Value")
	t.AddRow(table.String("t_statistic"), table.Number(r.TStatistic))
	t.AddRow(table.String("p_value"), table.Number(r.PValue))
	t.AddRow(table.String("degrees_of_freedom"), table.Number(r.DegreesOfFreedom))
	t.AddRow(table.String("mean_control"), table.Number(r.MeanControl))
	t.AddRow(table.String("mean_test"), table.Number(r.MeanTest))
	t.AddRow(table.String("std_control"), table.Number(r.StdControl))
	t.AddRow(table.String("std_test"), table.Number(r.StdTest))
	t.AddRow(table.String("n_control"), table.Number(float64(r.NControl)))
	t.AddRow(table.String("n_test"), table.Number(float64(r.NTest)))
	t.AddRow(table.String("mean_difference"), table.Number(r.MeanDifference))
	t.AddRow(table.String("control_value"), r.ControlValue)
	t.AddRow(table.String("test_value"), r.TestValue)
	return t
}

// Welch runs Welch's two-sample t-test on tbl. The independent column
// partitions the rows into groups; groups must hold exactly two values, the
// control group value first and the test group value second. The dependent
// column holds the observations; null cells are dropped, and each group must
// retain at least 2 observations.
//
// The call is pure: it does not modify the table and holds no state across
// calls. All failures are *Error values classified by KindOf; there is no
// partial result.
func Welch(tbl *table.Table, independent, dependent string, groups []table.Cell) (*Result, error) {
	if err := validateInputs(tbl, independent, dependent, groups); err != nil {
		return nil, err
	}
	control, test, err := extractGroups(tbl, independent, dependent, groups)
	if err != nil {
		return nil, err
	}
	return compute(control, test, groups[0], groups[1])
}

// Outcome is the permissive variant of a t-test outcome: failures are
// reported as a message in Error rather than as a Go error, mirroring APIs
// that return a single {"error": message} mapping. Exactly one of Result and
// Error is set.
type Outcome struct {
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// NewOutcome converts a (result, error) pair into an Outcome.
func NewOutcome(r *Result, err error) *Outcome {
	if err != nil {
		return &Outcome{Error: err.Error()}
	}
	return &Outcome{Result: r}
}

// WelchOutcome is Welch with the permissive failure convention.
func WelchOutcome(tbl *table.Table, independent, dependent string, groups []table.Cell) *Outcome {
	return NewOutcome(Welch(tbl, independent, dependent, groups))
}

// validateInputs checks the structural preconditions before any computation.
// Note, that it deliberately does not check that the two group values are
// present in the independent column; extractGroups reports that per group.
func validateInputs(tbl *table.Table, independent, dependent string, groups []table.Cell) *Error {
	if tbl == nil || tbl.NumRows() == 0 {
		return errorf(KindInvalidData, "table is empty")
	}
	indep := tbl.Column(independent)
	if indep == nil {
		return errorf(KindInvalidColumn, "column %q not found in table", independent)
	}
	if tbl.Column(dependent) == nil {
		return errorf(KindInvalidColumn, "column %q not found in table", dependent)
	}
	if d := len(indep.Distinct()); d > 2 {
		return errorf(KindInvalidData,
			"independent column %q has %d distinct values; at most 2 are allowed for a t-test",
			independent, d)
	}
	if len(groups) != 2 {
		return errorf(KindInvalidData,
			"groups must contain exactly 2 values [control, test], got %d", len(groups))
	}
	if groups[0].Equal(groups[1]) {
		return errorf(KindInvalidData,
			"control and test values must differ, got '%s' for both", groups[0])
	}
	return nil
}

// extractGroups projects the dependent column per group, dropping nulls.
func extractGroups(tbl *table.Table, independent, dependent string, groups []table.Cell) (control, test []float64, err *Error) {
	if control, err = groupData(tbl, independent, dependent, groups[0], "control"); err != nil {
		return nil, nil, err
	}
	if test, err = groupData(tbl, independent, dependent, groups[1], "test"); err != nil {
		return nil, nil, err
	}
	return control, test, nil
}

func groupData(tbl *table.Table, independent, dependent string, value table.Cell, label string) ([]float64, *Error) {
	indep := tbl.Column(independent).Cells()
	dep := tbl.Column(dependent).Cells()
	rows := 0 // matching rows before dropping nulls
	var data []float64
	for i, c := range indep {
		if !c.Equal(value) {
			continue
		}
		rows++
		d := dep[i]
		if d.IsNull() {
			continue
		}
		x, ok := d.Number()
		if !ok {
			return nil, errorf(KindInvalidData,
				"%s group has a non-numeric value '%s' in column %q", label, d, dependent)
		}
		data = append(data, x)
	}
	if rows == 0 {
		return nil, errorf(KindInvalidData, "no data found for %s value '%s'", label, value)
	}
	if len(data) == 0 {
		return nil, errorf(KindInvalidData, "no valid data in %s group", label)
	}
	if len(data) < 2 {
		return nil, errorf(KindInvalidData,
			"%s group must have at least 2 observations, got %d", label, len(data))
	}
	return data, nil
}

// compute runs the numeric core and assembles the result. Panics out of the
// numeric layer are converted to KindFailure errors; callers rely on seeing
// only this package's error taxonomy.
func compute(control, test []float64, controlValue, testValue table.Cell) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = errorf(KindFailure, "t-test calculation failed: %v", r)
		}
	}()
	cs := stats.NewSample(control)
	ts := stats.NewSample(test)
	tt, terr := stats.WelchTTest(cs, ts)
	if terr != nil {
		if errors.Is(terr, stats.ErrIndeterminate) {
			return nil, errorf(KindStatistical, "%s", terr.Error())
		}
		return nil, errorf(KindFailure, "t-test calculation failed: %s", terr.Error())
	}
	return &Result{
		TStatistic:       tt.T,
		PValue:           tt.P,
		DegreesOfFreedom: tt.DoF,
		MeanControl:      cs.Mean(),
		MeanTest:         ts.Mean(),
		StdControl:       cs.SampleSigma(),
		StdTest:          ts.SampleSigma(),
		NControl:         len(control),
		NTest:            len(test),
		MeanDifference:   ts.Mean() - cs.Mean(),
		ControlValue:     controlValue,
		TestValue:        testValue,
	}, nil
}
