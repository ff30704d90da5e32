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

package log

import (
	"log/slog"
	"time"
)

// AuditEvent is one entry of the audit trail.
type AuditEvent struct {
	RecordedAt    time.Time
	InitiatorID   string
	InitiatorType string
	TargetID      string
	TargetType    string
	ActionID      string
	TraceID       string
	Data          interface{}
}

// Audit logs event at info level as an "audit" attribute group.
func (l *Logger) Audit(event AuditEvent) {
	if event.RecordedAt.IsZero() {
		event.RecordedAt = time.Now()
	}

	attrs := []any{
		slog.String("recordedAt", event.RecordedAt.UTC().Format(time.RFC3339Nano)),
		slog.String("actionId", event.ActionID),
		slog.String("initiatorId", event.InitiatorID),
		slog.String("initiatorType", event.InitiatorType),
		slog.String("targetId", event.TargetID),
		slog.String("targetType", event.TargetType),
	}
	if event.TraceID != "" {
		attrs = append(attrs, slog.String("traceId", event.TraceID))
	}
	if event.Data != nil {
		attrs = append(attrs, slog.Any("data", event.Data))
	}
	l.internal.Info("AUDIT", slog.Group("audit", attrs...))
}

// Action IDs for audit logging
const (
	ActionAddProfile    = "add-profile"
	ActionUpdateProfile = "update-profile"
	ActionDeleteProfile = "delete-profile"
	ActionMergeProfile  = "mark-profile-merged"

	ActionGrantConsent  = "grant-consent"
	ActionDenyConsent   = "deny-consent"
	ActionRevokeConsent = "revoke-consent"

	ActionAuthenticationFailure = "authentication-failure"
)

// Initiator types
const (
	InitiatorTypeUser   = "user"
	InitiatorTypeSystem = "system"
)

// Target types
const (
	TargetTypeProfile = "profile"
	TargetTypeConsent = "consent"
)
