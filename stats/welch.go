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

package stats

import (
	"math"

	"github.com/stockparfait/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrIndeterminate is returned by WelchTTest when the t-statistic is an
// indeterminate 0/0 form: both samples have zero variance and equal means.
var ErrIndeterminate = errors.Reason(
	"t-statistic is indeterminate (0/0): both samples have zero variance and equal means")

// TTest is the outcome of a two-sample t-test.
type TTest struct {
	T   float64 // the t-statistic
	P   float64 // two-sided p-value, in [0..1]
	DoF float64 // degrees of freedom, generally non-integer
}

// WelchTTest computes Welch's unequal-variance t-test for two samples of at
// least 2 observations each. The statistic is the difference of the means
// (x1 - x2) scaled by the standard error sqrt(s1^2/n1 + s2^2/n2), where s^2
// is the unbiased sample variance. The two-sided p-value uses Student's T
// c.d.f. with the Welch-Satterthwaite degrees of freedom:
//
//	df = (s1^2/n1 + s2^2/n2)^2 /
//	     [ (s1^2/n1)^2/(n1-1) + (s2^2/n2)^2/(n2-1) ]
//
// When both samples have zero variance, the standard error vanishes: a
// nonzero mean difference then yields t = +-Inf with p = 0 and the pooled
// n1+n2-2 degrees of freedom (the Welch formula is itself 0/0 there), and an
// exact tie of the means is reported as ErrIndeterminate.
func WelchTTest(x1, x2 *Sample) (*TTest, error) {
	n1 := len(x1.Data())
	n2 := len(x2.Data())
	if n1 < 2 || n2 < 2 {
		return nil, errors.Reason(
			"each sample must have at least 2 observations, got %d and %d", n1, n2)
	}
	v1 := x1.SampleVariance() / float64(n1)
	v2 := x2.SampleVariance() / float64(n2)
	diff := x1.Mean() - x2.Mean()

	if v1 == 0.0 && v2 == 0.0 {
		if diff == 0.0 {
			return nil, ErrIndeterminate
		}
		t := math.Inf(1)
		if diff < 0.0 {
			t = math.Inf(-1)
		}
		return &TTest{T: t, P: 0.0, DoF: float64(n1 + n2 - 2)}, nil
	}

	t := diff / math.Sqrt(v1+v2)
	dof := (v1 + v2) * (v1 + v2) /
		(v1*v1/float64(n1-1) + v2*v2/float64(n2-1))
	dist := distuv.StudentsT{Mu: 0.0, Sigma: 1.0, Nu: dof}
	return &TTest{T: t, P: 2.0 * dist.Survival(math.Abs(t)), DoF: dof}, nil
}
