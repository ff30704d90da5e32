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

// CommandKind names what a ConsentCommand does to a profile's ledger.
type CommandKind string

const (
	CommandGrant  CommandKind = "GRANT"
	CommandDeny   CommandKind = "DENY"
	CommandRevoke CommandKind = "REVOKE"
)

// ParseCommandKind accepts only the exact canonical names.
func ParseCommandKind(value string) (CommandKind, error) {
	switch CommandKind(value) {
	case CommandGrant, CommandDeny, CommandRevoke:
		return CommandKind(value), nil
	default:
		return "", &FormatError{Field: KeyGrant, Value: value}
	}
}

// ConsentCommand is an instruction applied to a consent ledger. Grant and deny carry the
// record to store; revoke only names the type to remove.
type ConsentCommand struct {
	kind           CommandKind
	typeIdentifier string
	record         ConsentRecord
}

// GrantConsent stores record as a granted consent.
func GrantConsent(record ConsentRecord) ConsentCommand {
	record.Grant = DispositionGrant
	return ConsentCommand{kind: CommandGrant, typeIdentifier: record.TypeIdentifier, record: record.Clone()}
}

// DenyConsent stores record as an explicit negative consent.
func DenyConsent(record ConsentRecord) ConsentCommand {
	record.Grant = DispositionDeny
	return ConsentCommand{kind: CommandDeny, typeIdentifier: record.TypeIdentifier, record: record.Clone()}
}

// RevokeConsent removes whatever decision is stored for typeIdentifier.
func RevokeConsent(typeIdentifier string) ConsentCommand {
	return ConsentCommand{kind: CommandRevoke, typeIdentifier: typeIdentifier}
}

// CommandFor wraps a stored record in the command matching its disposition.
func CommandFor(record ConsentRecord) ConsentCommand {
	if record.Grant == DispositionDeny {
		return DenyConsent(record)
	}
	return GrantConsent(record)
}

func (c ConsentCommand) Kind() CommandKind {
	return c.kind
}

func (c ConsentCommand) TypeIdentifier() string {
	return c.typeIdentifier
}

// Record returns the record carried by a grant or deny command. ok is false for revokes.
func (c ConsentCommand) Record() (ConsentRecord, bool) {
	if c.kind == CommandRevoke {
		return ConsentRecord{}, false
	}
	return c.record.Clone(), true
}
