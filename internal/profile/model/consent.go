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
	"fmt"
	"time"
)

// Disposition is the stored state of a consent decision.
type Disposition string

const (
	DispositionGrant Disposition = "GRANT"
	DispositionDeny  Disposition = "DENY"
)

// ConsentRecord is the current decision a profile holds for a single consent type.
// Type identifiers are defined outside this service and are never validated here.
type ConsentRecord struct {
	TypeIdentifier string
	Grant          Disposition
	GrantDate      *time.Time // moment from which the consent applies
	RevokeDate     *time.Time // nil means the consent never expires
}

// NewConsentRecord builds a record from its four fields. Dates are copied.
func NewConsentRecord(typeIdentifier string, grant Disposition, grantDate, revokeDate *time.Time) ConsentRecord {
	return ConsentRecord{
		TypeIdentifier: typeIdentifier,
		Grant:          grant,
		GrantDate:      copyTime(grantDate),
		RevokeDate:     copyTime(revokeDate),
	}
}

// IsValidAt reports whether the consent holds at testTime. Both date bounds are exclusive.
// A record without a grant date cannot be evaluated and returns ErrMissingGrantDate.
func (c ConsentRecord) IsValidAt(testTime time.Time) (bool, error) {
	if c.GrantDate == nil {
		return false, ErrMissingGrantDate
	}
	if c.Grant != DispositionGrant {
		return false, nil
	}
	if !c.GrantDate.Before(testTime) {
		return false, nil
	}
	if c.RevokeDate != nil && !c.RevokeDate.After(testTime) {
		return false, nil
	}
	return true, nil
}

// IsValidNow evaluates IsValidAt against the current wall clock.
func (c ConsentRecord) IsValidNow() (bool, error) {
	return c.IsValidAt(time.Now())
}

// Equal compares all four fields, dates by instant.
func (c ConsentRecord) Equal(other ConsentRecord) bool {
	return c.TypeIdentifier == other.TypeIdentifier &&
		c.Grant == other.Grant &&
		equalTime(c.GrantDate, other.GrantDate) &&
		equalTime(c.RevokeDate, other.RevokeDate)
}

// Clone returns a copy that shares no date pointers with c.
func (c ConsentRecord) Clone() ConsentRecord {
	return NewConsentRecord(c.TypeIdentifier, c.Grant, c.GrantDate, c.RevokeDate)
}

func (c ConsentRecord) String() string {
	return fmt.Sprintf("Consent{typeIdentifier='%s', grant=%s, grantDate=%s, revokeDate=%s}",
		c.TypeIdentifier, c.Grant, formatOptionalTime(c.GrantDate), formatOptionalTime(c.RevokeDate))
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := *t
	return &value
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "null"
	}
	return t.UTC().Format(time.RFC3339Nano)
}
