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

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_IncrementCommand(t *testing.T) {
	m := New()
	m.IncrementCommand("GRANT", OutcomeApplied)
	m.IncrementCommand("GRANT", OutcomeApplied)
	m.IncrementCommand("REVOKE", OutcomeNoop)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ConsentCommands.WithLabelValues("GRANT", OutcomeApplied)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ConsentCommands.WithLabelValues("REVOKE", OutcomeNoop)))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementCommand("GRANT", OutcomeApplied)
		m.ObserveApplyLatency(time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncrementCommand("DENY", OutcomeRejected)
	m.ObserveApplyLatency(3 * time.Millisecond)

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cds_consent_commands_total{kind="DENY",outcome="rejected"} 1`)
	assert.Contains(t, string(body), "cds_consent_apply_duration_seconds_count 1")
}
