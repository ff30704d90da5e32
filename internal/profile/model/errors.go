/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package model

import (
	"errors"
	"fmt"
)

// FormatError reports malformed external consent input, such as an unknown grant name or an
// unparseable date string.
type FormatError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid value %v for consent field '%s': %v", e.Value, e.Field, e.Err)
	}
	return fmt.Sprintf("invalid value %v for consent field '%s'", e.Value, e.Field)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// InvalidStateError reports an operation evaluated against a record that lacks data the
// operation depends on.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return "invalid consent state: " + e.Reason
}

// ErrMissingGrantDate is returned when validity is evaluated on a record without a grant date.
var ErrMissingGrantDate = &InvalidStateError{Reason: "grantDate is not set"}

// IsFormatError reports whether err carries a *FormatError.
func IsFormatError(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}

// IsInvalidStateError reports whether err carries an *InvalidStateError.
func IsInvalidStateError(err error) bool {
	var stateErr *InvalidStateError
	return errors.As(err, &stateErr)
}
