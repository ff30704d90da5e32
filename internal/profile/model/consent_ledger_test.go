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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsentLedger_NewsletterScenario(t *testing.T) {
	ledger := NewConsentLedger()
	cmd, err := ConsentCommandFromMap(map[string]interface{}{
		"typeIdentifier": "newsletter",
		"grant":          "GRANT",
		"grantDate":      "2020-01-01",
	}, ISO8601DateFormat{})
	require.NoError(t, err)

	assert.True(t, ledger.Apply(cmd))
	require.Equal(t, 1, ledger.Len())

	record, ok := ledger.Get("newsletter")
	require.True(t, ok)
	valid, err := record.IsValidAt(*date(t, "2020-06-01"))
	require.NoError(t, err)
	assert.True(t, valid)
	valid, err = record.IsValidAt(*date(t, "2019-01-01"))
	require.NoError(t, err)
	assert.False(t, valid)

	revoke, err := ConsentCommandFromMap(map[string]interface{}{
		"typeIdentifier": "newsletter",
		"grant":          "REVOKE",
	}, ISO8601DateFormat{})
	require.NoError(t, err)

	assert.True(t, ledger.Apply(revoke))
	assert.Equal(t, 0, ledger.Len())
	assert.False(t, ledger.Apply(revoke), "second revoke has nothing to remove")
	assert.Equal(t, 0, ledger.Len())
}

func TestConsentLedger_ReplaceDiscardsPreviousRecord(t *testing.T) {
	ledger := NewConsentLedger()
	ledger.Apply(GrantConsent(NewConsentRecord("newsletter", DispositionGrant,
		date(t, "2020-01-01"), date(t, "2021-01-01"))))

	assert.True(t, ledger.Apply(DenyConsent(NewConsentRecord("newsletter", DispositionDeny, nil, nil))))

	record, ok := ledger.Get("newsletter")
	require.True(t, ok)
	assert.Equal(t, DispositionDeny, record.Grant)
	assert.Nil(t, record.GrantDate, "dates of the replaced record are not merged")
	assert.Nil(t, record.RevokeDate)
	assert.Equal(t, 1, ledger.Len())
}

func TestConsentLedger_RevokeAbsentLeavesLedgerUnchanged(t *testing.T) {
	ledger := NewConsentLedger()
	ledger.Apply(GrantConsent(NewConsentRecord("newsletter", DispositionGrant, date(t, "2020-01-01"), nil)))
	ledger.Apply(DenyConsent(NewConsentRecord("tracking", DispositionDeny, date(t, "2020-01-01"), nil)))
	before := ledger.Records()

	assert.False(t, ledger.Apply(RevokeConsent("marketing")))

	after := ledger.Records()
	require.Len(t, after, len(before))
	for i := range before {
		assert.True(t, before[i].Equal(after[i]))
	}
}

func TestConsentLedger_AcceptsRecordsWithoutTemporalChecks(t *testing.T) {
	ledger := NewConsentLedger()
	assert.True(t, ledger.Apply(GrantConsent(NewConsentRecord("future", DispositionGrant, date(t, "2999-01-01"), nil))))
	assert.True(t, ledger.Apply(GrantConsent(NewConsentRecord("expired", DispositionGrant,
		date(t, "2000-01-01"), date(t, "2001-01-01")))))
	assert.True(t, ledger.Apply(GrantConsent(NewConsentRecord("undated", DispositionGrant, nil, nil))))
	assert.Equal(t, 3, ledger.Len())
}

func TestConsentLedger_PreservesInsertionOrder(t *testing.T) {
	ledger := NewConsentLedger()
	for _, typeIdentifier := range []string{"c", "a", "b"} {
		ledger.Apply(GrantConsent(NewConsentRecord(typeIdentifier, DispositionGrant, nil, nil)))
	}
	ledger.Apply(DenyConsent(NewConsentRecord("a", DispositionDeny, nil, nil)))
	assert.Equal(t, []string{"c", "a", "b"}, ledger.TypeIdentifiers(), "replacing keeps the position")

	ledger.Apply(RevokeConsent("c"))
	ledger.Apply(GrantConsent(NewConsentRecord("c", DispositionGrant, nil, nil)))
	assert.Equal(t, []string{"a", "b", "c"}, ledger.TypeIdentifiers())
}

func TestConsentLedger_CloneIsIndependent(t *testing.T) {
	ledger := NewConsentLedger()
	ledger.Apply(GrantConsent(NewConsentRecord("newsletter", DispositionGrant, date(t, "2020-01-01"), nil)))

	clone := ledger.Clone()
	clone.Apply(RevokeConsent("newsletter"))

	assert.Equal(t, 1, ledger.Len())
	assert.Equal(t, 0, clone.Len())
}

func TestConsentLedger_JSON(t *testing.T) {
	ledger := NewConsentLedger()
	ledger.Apply(GrantConsent(NewConsentRecord("newsletter", DispositionGrant, date(t, "2020-01-01"), nil)))
	ledger.Apply(DenyConsent(NewConsentRecord("tracking", DispositionDeny, nil, date(t, "2030-05-01T10:00:00Z"))))

	data, err := json.Marshal(ledger)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"typeIdentifier":"newsletter","grant":"GRANT","grantDate":"2020-01-01T00:00:00Z"},
		{"typeIdentifier":"tracking","grant":"DENY","revokeDate":"2030-05-01T10:00:00Z"}
	]`, string(data))

	restored := NewConsentLedger()
	require.NoError(t, json.Unmarshal(data, restored))
	assert.Equal(t, ledger.TypeIdentifiers(), restored.TypeIdentifiers())
	for _, record := range ledger.Records() {
		other, ok := restored.Get(record.TypeIdentifier)
		require.True(t, ok)
		assert.True(t, record.Equal(other))
	}
}

func TestLedgerFromMaps_RejectsRevoke(t *testing.T) {
	_, err := LedgerFromMaps([]map[string]interface{}{
		{"typeIdentifier": "a", "grant": "REVOKE"},
	}, ISO8601DateFormat{})
	assert.True(t, IsFormatError(err))
}
