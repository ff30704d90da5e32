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

package services

import (
	"net/http"

	"github.com/wso2/profile-consent-service/internal/health_check/handler"
	"github.com/wso2/profile-consent-service/internal/health_check/provider"
	"github.com/wso2/profile-consent-service/internal/system/constants"
)

// HealthService registers the health and readiness endpoints.
type HealthService struct {
	handler *handler.HealthHandler
}

// NewHealthService creates a new HealthService instance.
func NewHealthService(mux *http.ServeMux, healthProvider provider.HealthCheckProviderInterface) *HealthService {
	instance := &HealthService{
		handler: handler.NewHealthHandler(healthProvider),
	}
	mux.HandleFunc("GET "+constants.HealthPath, instance.handler.HandleHealth)
	mux.HandleFunc("GET "+constants.ReadyPath, instance.handler.HandleReadiness)
	return instance
}
