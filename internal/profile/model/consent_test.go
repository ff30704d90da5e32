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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := ISO8601DateFormat{}.Parse(value)
	require.NoError(t, err)
	return &parsed
}

func TestIsValidAt_OpenEndedGrant(t *testing.T) {
	grantDate := date(t, "2020-01-01T00:00:00Z")
	record := NewConsentRecord("newsletter", DispositionGrant, grantDate, nil)

	tests := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{"before grant date", grantDate.Add(-time.Hour), false},
		{"exactly at grant date", *grantDate, false},
		{"one nanosecond after grant date", grantDate.Add(time.Nanosecond), true},
		{"years after grant date", grantDate.AddDate(10, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := record.IsValidAt(tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, valid)
		})
	}
}

func TestIsValidAt_BoundedGrant(t *testing.T) {
	grantDate := date(t, "2020-01-01T00:00:00Z")
	revokeDate := date(t, "2021-01-01T00:00:00Z")
	record := NewConsentRecord("analytics", DispositionGrant, grantDate, revokeDate)

	tests := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{"before grant date", grantDate.Add(-time.Second), false},
		{"at grant date", *grantDate, false},
		{"inside interval", grantDate.AddDate(0, 6, 0), true},
		{"just before revoke date", revokeDate.Add(-time.Nanosecond), true},
		{"at revoke date", *revokeDate, false},
		{"after revoke date", revokeDate.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := record.IsValidAt(tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, valid)
		})
	}
}

func TestIsValidAt_DenyIsNeverValid(t *testing.T) {
	grantDate := date(t, "2020-01-01T00:00:00Z")
	record := NewConsentRecord("newsletter", DispositionDeny, grantDate, nil)

	for _, at := range []time.Time{grantDate.AddDate(-1, 0, 0), *grantDate, grantDate.AddDate(1, 0, 0)} {
		valid, err := record.IsValidAt(at)
		require.NoError(t, err)
		assert.False(t, valid, "deny must not be valid at %s", at)
	}
}

func TestIsValidAt_MissingGrantDateFails(t *testing.T) {
	for _, grant := range []Disposition{DispositionGrant, DispositionDeny} {
		record := NewConsentRecord("newsletter", grant, nil, nil)
		valid, err := record.IsValidAt(time.Now())
		assert.False(t, valid)
		assert.ErrorIs(t, err, ErrMissingGrantDate)
		assert.True(t, IsInvalidStateError(err))
	}
}

func TestIsValidNow(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	valid, err := NewConsentRecord("a", DispositionGrant, &past, nil).IsValidNow()
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = NewConsentRecord("a", DispositionGrant, &future, nil).IsValidNow()
	require.NoError(t, err)
	assert.False(t, valid, "consent granted in the future is not valid yet")

	valid, err = NewConsentRecord("a", DispositionGrant, &past, &past).IsValidNow()
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestNewConsentRecord_CopiesDates(t *testing.T) {
	grantDate := date(t, "2020-01-01T00:00:00Z")
	record := NewConsentRecord("newsletter", DispositionGrant, grantDate, nil)

	*grantDate = grantDate.AddDate(5, 0, 0)
	assert.Equal(t, 2020, record.GrantDate.Year())
}

func TestConsentRecord_Equal(t *testing.T) {
	utc := date(t, "2020-01-01T10:00:00Z")
	offset := date(t, "2020-01-01T12:00:00+02:00")

	a := NewConsentRecord("newsletter", DispositionGrant, utc, nil)
	b := NewConsentRecord("newsletter", DispositionGrant, offset, nil)
	assert.True(t, a.Equal(b), "same instant in different zones")

	c := NewConsentRecord("newsletter", DispositionDeny, utc, nil)
	assert.False(t, a.Equal(c))

	d := NewConsentRecord("newsletter", DispositionGrant, utc, utc)
	assert.False(t, a.Equal(d))
}

func TestConsentRecord_String(t *testing.T) {
	record := NewConsentRecord("newsletter", DispositionGrant, date(t, "2020-01-01"), nil)
	assert.Equal(t, "Consent{typeIdentifier='newsletter', grant=GRANT, grantDate=2020-01-01T00:00:00Z, revokeDate=null}",
		record.String())
}

func TestParseCommandKind(t *testing.T) {
	for _, name := range []string{"GRANT", "DENY", "REVOKE"} {
		kind, err := ParseCommandKind(name)
		require.NoError(t, err)
		assert.Equal(t, CommandKind(name), kind)
	}
	for _, name := range []string{"grant", "Revoke", "", " GRANT", "ALLOW"} {
		_, err := ParseCommandKind(name)
		assert.True(t, IsFormatError(err), "expected format error for %q", name)
	}
}

func TestConsentCommand_ForcesDisposition(t *testing.T) {
	record := NewConsentRecord("newsletter", DispositionGrant, nil, nil)

	deny := DenyConsent(record)
	stored, ok := deny.Record()
	require.True(t, ok)
	assert.Equal(t, CommandDeny, deny.Kind())
	assert.Equal(t, DispositionDeny, stored.Grant)

	revoke := RevokeConsent("newsletter")
	_, ok = revoke.Record()
	assert.False(t, ok)
	assert.Equal(t, "newsletter", revoke.TypeIdentifier())
}
