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
	"fmt"
)

// ConsentLedger keeps the single current record per consent type of a profile. Iteration
// follows insertion order so serialized profiles are stable.
type ConsentLedger struct {
	order   []string
	records map[string]ConsentRecord
}

// NewConsentLedger returns an empty ledger.
func NewConsentLedger() *ConsentLedger {
	return &ConsentLedger{records: make(map[string]ConsentRecord)}
}

// Apply executes cmd against the ledger. A revoke removes the stored record and reports
// whether there was one to remove. Grant and deny always replace the stored record and
// return true. Dates are not checked here; validity is evaluated by readers.
func (l *ConsentLedger) Apply(cmd ConsentCommand) bool {
	if l.records == nil {
		l.records = make(map[string]ConsentRecord)
	}
	if cmd.Kind() == CommandRevoke {
		return l.remove(cmd.TypeIdentifier())
	}
	record, _ := cmd.Record()
	if _, exists := l.records[record.TypeIdentifier]; !exists {
		l.order = append(l.order, record.TypeIdentifier)
	}
	l.records[record.TypeIdentifier] = record
	return true
}

func (l *ConsentLedger) remove(typeIdentifier string) bool {
	if _, exists := l.records[typeIdentifier]; !exists {
		return false
	}
	delete(l.records, typeIdentifier)
	for i, key := range l.order {
		if key == typeIdentifier {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a copy of the record stored for typeIdentifier.
func (l *ConsentLedger) Get(typeIdentifier string) (ConsentRecord, bool) {
	record, ok := l.records[typeIdentifier]
	if !ok {
		return ConsentRecord{}, false
	}
	return record.Clone(), true
}

func (l *ConsentLedger) Len() int {
	return len(l.order)
}

// TypeIdentifiers lists the stored types in insertion order.
func (l *ConsentLedger) TypeIdentifiers() []string {
	return append([]string{}, l.order...)
}

// Records returns copies of the stored records in insertion order.
func (l *ConsentLedger) Records() []ConsentRecord {
	records := make([]ConsentRecord, 0, len(l.order))
	for _, key := range l.order {
		records = append(records, l.records[key].Clone())
	}
	return records
}

func (l *ConsentLedger) Clone() *ConsentLedger {
	clone := NewConsentLedger()
	for _, record := range l.Records() {
		clone.Apply(CommandFor(record))
	}
	return clone
}

// ToMaps renders every record in the generic map shape, in ledger order.
func (l *ConsentLedger) ToMaps(dateFormat DateFormat) []map[string]interface{} {
	maps := make([]map[string]interface{}, 0, len(l.order))
	for _, record := range l.Records() {
		maps = append(maps, record.ToMap(dateFormat))
	}
	return maps
}

// LedgerFromMaps rebuilds a ledger from the output of ToMaps.
func LedgerFromMaps(consentMaps []map[string]interface{}, dateFormat DateFormat) (*ConsentLedger, error) {
	ledger := NewConsentLedger()
	for i, consentMap := range consentMaps {
		record, err := ConsentRecordFromMap(consentMap, dateFormat)
		if err != nil {
			return nil, fmt.Errorf("consent at position %d: %w", i, err)
		}
		ledger.Apply(CommandFor(record))
	}
	return ledger, nil
}

func (l *ConsentLedger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.ToMaps(ISO8601DateFormat{}))
}

func (l *ConsentLedger) UnmarshalJSON(data []byte) error {
	var consentMaps []map[string]interface{}
	if err := json.Unmarshal(data, &consentMaps); err != nil {
		return err
	}
	ledger, err := LedgerFromMaps(consentMaps, ISO8601DateFormat{})
	if err != nil {
		return err
	}
	*l = *ledger
	return nil
}
