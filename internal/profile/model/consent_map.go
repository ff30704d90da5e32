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
	"strings"
	"time"
)

// Keys of the generic map shape a single consent travels in.
const (
	KeyTypeIdentifier = "typeIdentifier"
	KeyGrant          = "grant"
	KeyGrantDate      = "grantDate"
	KeyRevokeDate     = "revokeDate"
)

// ConsentCommandFromMap builds a command from an untyped consent map such as a decoded event
// property. Only keys present in the map are read. The grant name must match exactly and
// blank dates count as absent.
func ConsentCommandFromMap(consentMap map[string]interface{}, dateFormat DateFormat) (ConsentCommand, error) {

	typeIdentifier, err := optionalString(consentMap, KeyTypeIdentifier)
	if err != nil {
		return ConsentCommand{}, err
	}
	grantName, err := optionalString(consentMap, KeyGrant)
	if err != nil {
		return ConsentCommand{}, err
	}
	if _, ok := consentMap[KeyGrant]; !ok {
		return ConsentCommand{}, &FormatError{Field: KeyGrant, Value: nil}
	}
	kind, err := ParseCommandKind(grantName)
	if err != nil {
		return ConsentCommand{}, err
	}
	grantDate, err := optionalDate(consentMap, KeyGrantDate, dateFormat)
	if err != nil {
		return ConsentCommand{}, err
	}
	revokeDate, err := optionalDate(consentMap, KeyRevokeDate, dateFormat)
	if err != nil {
		return ConsentCommand{}, err
	}

	switch kind {
	case CommandRevoke:
		return RevokeConsent(typeIdentifier), nil
	case CommandDeny:
		return DenyConsent(ConsentRecord{TypeIdentifier: typeIdentifier, GrantDate: grantDate, RevokeDate: revokeDate}), nil
	default:
		return GrantConsent(ConsentRecord{TypeIdentifier: typeIdentifier, GrantDate: grantDate, RevokeDate: revokeDate}), nil
	}
}

// ConsentRecordFromMap is ConsentCommandFromMap restricted to stored dispositions. A REVOKE
// grant is rejected since it never describes a stored record.
func ConsentRecordFromMap(consentMap map[string]interface{}, dateFormat DateFormat) (ConsentRecord, error) {

	cmd, err := ConsentCommandFromMap(consentMap, dateFormat)
	if err != nil {
		return ConsentRecord{}, err
	}
	record, ok := cmd.Record()
	if !ok {
		return ConsentRecord{}, &FormatError{Field: KeyGrant, Value: string(CommandRevoke)}
	}
	return record, nil
}

// ToMap renders the record in the generic map shape. Dates are emitted only when set.
func (c ConsentRecord) ToMap(dateFormat DateFormat) map[string]interface{} {
	consentMap := map[string]interface{}{
		KeyTypeIdentifier: c.TypeIdentifier,
		KeyGrant:          string(c.Grant),
	}
	if c.GrantDate != nil {
		consentMap[KeyGrantDate] = dateFormat.Format(*c.GrantDate)
	}
	if c.RevokeDate != nil {
		consentMap[KeyRevokeDate] = dateFormat.Format(*c.RevokeDate)
	}
	return consentMap
}

func optionalString(consentMap map[string]interface{}, key string) (string, error) {
	raw, ok := consentMap[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", &FormatError{Field: key, Value: raw}
	}
	return value, nil
}

func optionalDate(consentMap map[string]interface{}, key string, dateFormat DateFormat) (*time.Time, error) {
	value, err := optionalString(consentMap, key)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := dateFormat.Parse(value)
	if err != nil {
		return nil, &FormatError{Field: key, Value: value, Err: err}
	}
	return &parsed, nil
}
