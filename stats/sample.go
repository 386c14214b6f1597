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

// Package stats implements the numerical core of Welch's two-sample t-test:
// a Sample container with cached descriptive statistics, and the t-test
// itself.
package stats

import (
	"math"
)

// Sample stores an unordered set of numerical data (float64) and computes
// various statistics over it.
type Sample struct {
	data     []float64 // keep it private, so we correctly use caches
	sum      *float64  // cached sum of samples (for mean computation)
	sumSqDev *float64  // cached sum of squared deviations (for variance)
}

// NewSample creates a new Sample around data. Note, that it reuses the slice
// without copying. Use Copy() if you need to decouple your input from the
// Sample.
func NewSample(data []float64) *Sample {
	return &Sample{data: data}
}

// Data returns the sample data.
func (s *Sample) Data() []float64 { return s.data }

// Copy creates a deep copy of the Sample. The original data slice can then
// be safely modified without affecting the copy.
func (s *Sample) Copy() *Sample {
	cp := make([]float64, len(s.data))
	copy(cp, s.data)
	return NewSample(cp)
}

// Sum of samples, cached.
func (s *Sample) Sum() float64 {
	if s.sum == nil {
		sum := 0.0
		for _, d := range s.data {
			sum += d
		}
		s.sum = &sum
	}
	return *s.sum
}

// Mean computes the mean of the Sample, cached.
func (s *Sample) Mean() float64 {
	if len(s.data) == 0 {
		return 0.0
	}
	return s.Sum() / float64(len(s.data))
}

// SumSquaredDev computes the sum of squared deviations from the mean,
// cached.
func (s *Sample) SumSquaredDev() float64 {
	if s.sumSqDev == nil {
		mean := s.Mean()
		v := 0.0
		for _, d := range s.data {
			v += (d - mean) * (d - mean)
		}
		s.sumSqDev = &v
	}
	return *s.sumSqDev
}

// Variance of the Sample (sigma squared), the biased population estimate
// with the n denominator.
func (s *Sample) Variance() float64 {
	if len(s.data) == 0 {
		return 0.0
	}
	return s.SumSquaredDev() / float64(len(s.data))
}

// Sigma computes the standard deviation of the Sample.
func (s *Sample) Sigma() float64 {
	return math.Sqrt(s.Variance())
}

// SampleVariance is the unbiased variance estimate with the n-1 denominator.
// It requires at least 2 data points, and returns 0.0 otherwise.
func (s *Sample) SampleVariance() float64 {
	if len(s.data) < 2 {
		return 0.0
	}
	return s.SumSquaredDev() / float64(len(s.data)-1)
}

// SampleSigma is the standard deviation based on the unbiased variance
// estimate.
func (s *Sample) SampleSigma() float64 {
	return math.Sqrt(s.SampleVariance())
}
