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
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeApplied  = "applied"
	OutcomeNoop     = "noop"
	OutcomeRejected = "rejected"
)

// Metrics provides observability for consent commands.
type Metrics struct {
	// Consent commands by command kind and outcome
	ConsentCommands *prometheus.CounterVec

	// Time spent applying a consent command, lock wait and persistence included
	ApplyLatency prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New registers the consent metrics on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		ConsentCommands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cds_consent_commands_total",
			Help: "Total consent commands by kind and outcome",
		}, []string{"kind", "outcome"}), // outcome: "applied", "noop", "rejected"

		ApplyLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cds_consent_apply_duration_seconds",
			Help:    "Duration of consent command application",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		gatherer: registry,
	}
}

// IncrementCommand records the outcome of a consent command.
func (m *Metrics) IncrementCommand(kind, outcome string) {
	if m != nil {
		m.ConsentCommands.WithLabelValues(kind, outcome).Inc()
	}
}

// ObserveApplyLatency records the duration of one consent command.
func (m *Metrics) ObserveApplyLatency(d time.Duration) {
	if m != nil {
		m.ApplyLatency.Observe(d.Seconds())
	}
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
