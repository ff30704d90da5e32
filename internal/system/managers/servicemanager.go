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

package managers

import (
	"net/http"

	healthprovider "github.com/wso2/profile-consent-service/internal/health_check/provider"
	"github.com/wso2/profile-consent-service/internal/profile/provider"
	"github.com/wso2/profile-consent-service/internal/system/constants"
	"github.com/wso2/profile-consent-service/internal/system/mcp"
	"github.com/wso2/profile-consent-service/internal/system/metrics"
	"github.com/wso2/profile-consent-service/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux              *http.ServeMux
	profilesProvider provider.ProfilesProviderInterface
	healthProvider   healthprovider.HealthCheckProviderInterface
	metrics          *metrics.Metrics
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, profilesProvider provider.ProfilesProviderInterface,
	healthProvider healthprovider.HealthCheckProviderInterface, consentMetrics *metrics.Metrics) ServiceManagerInterface {

	return &ServiceManager{
		mux:              mux,
		profilesProvider: profilesProvider,
		healthProvider:   healthProvider,
		metrics:          consentMetrics,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	services.NewProfileService(sm.mux, apiBasePath, sm.profilesProvider)
	services.NewConsentService(sm.mux, apiBasePath, sm.profilesProvider)
	services.NewHealthService(sm.mux, sm.healthProvider)
	mcp.Initialize(sm.mux, sm.profilesProvider)
	if sm.metrics != nil {
		sm.mux.Handle("GET "+constants.MetricsPath, sm.metrics.Handler())
	}
	return nil
}
