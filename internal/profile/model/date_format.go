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

// DateFormat converts consent dates to and from their external string form.
type DateFormat interface {
	Parse(value string) (time.Time, error)
	Format(t time.Time) string
}

// ISO8601DateFormat formats instants as RFC 3339 in UTC with nanosecond precision, and
// parses the common ISO 8601 shapes sent by clients. Values without a zone are read as UTC.
type ISO8601DateFormat struct{}

var iso8601Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (ISO8601DateFormat) Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var firstErr error
	for _, layout := range iso8601Layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func (ISO8601DateFormat) Format(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
