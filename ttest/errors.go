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
	"errors"
	"fmt"
)

// Kind classifies the failures returned by this package, so callers can
// switch over the enumerated kinds instead of matching error strings.
type Kind int

const (
	// KindUnknown is the zero Kind; errors created by this package never
	// carry it, so it doubles as "not a t-test error".
	KindUnknown Kind = iota
	// KindInvalidColumn: a named column is absent from the table.
	KindInvalidColumn
	// KindInvalidData: the inputs violate a structural precondition: bad
	// shape, too many groups, empty groups, insufficient samples.
	KindInvalidData
	// KindStatistical: the numeric computation has no defined result.
	KindStatistical
	// KindFailure: an unexpected failure wrapped at the package boundary.
	KindFailure
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInvalidColumn:
		return "invalid column"
	case KindInvalidData:
		return "invalid data"
	case KindStatistical:
		return "statistical error"
	case KindFailure:
		return "t-test failure"
	}
	return "unknown"
}

// Error is the only error type returned by this package. Use KindOf or the
// Kind method to classify a failure.
type Error struct {
	kind    Kind
	message string
}

var _ error = &Error{}

func errorf(k Kind, format string, a ...any) *Error {
	return &Error{kind: k, message: fmt.Sprintf(format, a...)}
}

// Error implements the error interface.
func (e *Error) Error() string { return e.message }

// Kind returns the failure classification.
func (e *Error) Kind() Kind { return e.kind }

// KindOf extracts the failure Kind from err. It returns KindUnknown for nil
// and for errors that did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindUnknown
}
