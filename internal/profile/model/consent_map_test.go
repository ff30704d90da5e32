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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingDateFormat struct{}

func (failingDateFormat) Parse(string) (time.Time, error) {
	return time.Time{}, errors.New("unparseable")
}

func (failingDateFormat) Format(t time.Time) string {
	return t.String()
}

func TestConsentCommandFromMap_Grant(t *testing.T) {
	cmd, err := ConsentCommandFromMap(map[string]interface{}{
		"typeIdentifier": "newsletter",
		"grant":          "GRANT",
		"grantDate":      "2020-01-01T00:00:00Z",
		"revokeDate":     "2021-01-01T00:00:00.5Z",
	}, ISO8601DateFormat{})
	require.NoError(t, err)

	assert.Equal(t, CommandGrant, cmd.Kind())
	record, ok := cmd.Record()
	require.True(t, ok)
	assert.Equal(t, "newsletter", record.TypeIdentifier)
	assert.Equal(t, DispositionGrant, record.Grant)
	assert.Equal(t, 2020, record.GrantDate.Year())
	assert.Equal(t, 500*time.Millisecond, time.Duration(record.RevokeDate.Nanosecond()))
}

func TestConsentCommandFromMap_Revoke(t *testing.T) {
	cmd, err := ConsentCommandFromMap(map[string]interface{}{
		"typeIdentifier": "newsletter",
		"grant":          "REVOKE",
	}, ISO8601DateFormat{})
	require.NoError(t, err)
	assert.Equal(t, CommandRevoke, cmd.Kind())
	assert.Equal(t, "newsletter", cmd.TypeIdentifier())
}

func TestConsentCommandFromMap_BlankDatesAreAbsent(t *testing.T) {
	cmd, err := ConsentCommandFromMap(map[string]interface{}{
		"typeIdentifier": "newsletter",
		"grant":          "DENY",
		"grantDate":      "   ",
		"revokeDate":     "",
	}, failingDateFormat{})
	require.NoError(t, err)

	record, ok := cmd.Record()
	require.True(t, ok)
	assert.Nil(t, record.GrantDate)
	assert.Nil(t, record.RevokeDate)
	assert.Equal(t, DispositionDeny, record.Grant)
}

func TestConsentCommandFromMap_Errors(t *testing.T) {
	tests := []struct {
		name          string
		input         map[string]interface{}
		dateFormat    DateFormat
		expectedField string
	}{
		{
			name:          "lowercase grant",
			input:         map[string]interface{}{"typeIdentifier": "a", "grant": "grant"},
			dateFormat:    ISO8601DateFormat{},
			expectedField: KeyGrant,
		},
		{
			name:          "missing grant",
			input:         map[string]interface{}{"typeIdentifier": "a"},
			dateFormat:    ISO8601DateFormat{},
			expectedField: KeyGrant,
		},
		{
			name:          "grant of wrong type",
			input:         map[string]interface{}{"typeIdentifier": "a", "grant": true},
			dateFormat:    ISO8601DateFormat{},
			expectedField: KeyGrant,
		},
		{
			name:          "type identifier of wrong type",
			input:         map[string]interface{}{"typeIdentifier": 42, "grant": "GRANT"},
			dateFormat:    ISO8601DateFormat{},
			expectedField: KeyTypeIdentifier,
		},
		{
			name:          "unparseable grant date",
			input:         map[string]interface{}{"typeIdentifier": "a", "grant": "GRANT", "grantDate": "yesterday"},
			dateFormat:    ISO8601DateFormat{},
			expectedField: KeyGrantDate,
		},
		{
			name: "revoke date rejected by the date format",
			input: map[string]interface{}{"typeIdentifier": "a", "grant": "GRANT",
				"revokeDate": "2020-01-01"},
			dateFormat:    failingDateFormat{},
			expectedField: KeyRevokeDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConsentCommandFromMap(tt.input, tt.dateFormat)
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.expectedField, formatErr.Field)
		})
	}
}

func TestConsentRecordFromMap_RejectsRevoke(t *testing.T) {
	_, err := ConsentRecordFromMap(map[string]interface{}{"typeIdentifier": "a", "grant": "REVOKE"},
		ISO8601DateFormat{})
	assert.True(t, IsFormatError(err))
}

func TestToMap_OmitsAbsentDates(t *testing.T) {
	record := NewConsentRecord("newsletter", DispositionDeny, nil, nil)
	assert.Equal(t, map[string]interface{}{
		"typeIdentifier": "newsletter",
		"grant":          "DENY",
	}, record.ToMap(ISO8601DateFormat{}))
}

func TestToMap_RoundTrip(t *testing.T) {
	grantDate := time.Date(2020, 1, 1, 8, 30, 15, 123456789, time.FixedZone("IST", 19800))
	revokeDate := grantDate.AddDate(1, 0, 0)

	records := []ConsentRecord{
		NewConsentRecord("newsletter", DispositionGrant, &grantDate, nil),
		NewConsentRecord("newsletter", DispositionGrant, &grantDate, &revokeDate),
		NewConsentRecord("tracking", DispositionDeny, nil, nil),
		NewConsentRecord("", DispositionDeny, nil, &revokeDate),
	}

	for _, record := range records {
		restored, err := ConsentRecordFromMap(record.ToMap(ISO8601DateFormat{}), ISO8601DateFormat{})
		require.NoError(t, err)
		assert.True(t, record.Equal(restored), "round trip changed %s into %s", record, restored)
	}
}

func TestISO8601DateFormat_Parse(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2020-01-01", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-01-01T10:15", time.Date(2020, 1, 1, 10, 15, 0, 0, time.UTC)},
		{"2020-01-01T10:15:30", time.Date(2020, 1, 1, 10, 15, 30, 0, time.UTC)},
		{"2020-01-01T10:15:30.25", time.Date(2020, 1, 1, 10, 15, 30, 250000000, time.UTC)},
		{"2020-01-01T10:15:30Z", time.Date(2020, 1, 1, 10, 15, 30, 0, time.UTC)},
		{"2020-01-01T12:15:30+02:00", time.Date(2020, 1, 1, 10, 15, 30, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			parsed, err := ISO8601DateFormat{}.Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(parsed), "expected %s, got %s", tt.expected, parsed)
		})
	}

	_, err := ISO8601DateFormat{}.Parse("01/02/2020")
	assert.Error(t, err)
}
