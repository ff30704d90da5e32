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
	"fmt"
	"net/http"

	"github.com/wso2/profile-consent-service/internal/profile/handler"
	"github.com/wso2/profile-consent-service/internal/profile/provider"
	"github.com/wso2/profile-consent-service/internal/system/constants"
	"github.com/wso2/profile-consent-service/internal/system/security"
	"github.com/wso2/profile-consent-service/internal/system/utils"
)

type ConsentService struct {
	handler *handler.ConsentHandler
}

func NewConsentService(mux *http.ServeMux, apiBasePath string, profilesProvider provider.ProfilesProviderInterface) *ConsentService {
	instance := &ConsentService{
		handler: handler.NewConsentHandler(profilesProvider),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *ConsentService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	consents := fmt.Sprintf("%s/%s/{%s}/consents", apiBasePath, constants.ProfileApiPath, constants.ProfileIdPathParam)
	consent := fmt.Sprintf("%s/{%s}", consents, constants.TypeIdentifierPathParam)
	view := func(next http.HandlerFunc) http.HandlerFunc {
		return security.RequireScope(constants.ScopeConsentView, next, utils.HandleError)
	}

	mux.HandleFunc(fmt.Sprintf("POST %s", consents),
		security.RequireScope(constants.ScopeConsentUpdate, s.handler.ApplyConsent, utils.HandleError))
	mux.HandleFunc(fmt.Sprintf("GET %s", consents), view(s.handler.GetConsents))
	mux.HandleFunc(fmt.Sprintf("GET %s", consent), view(s.handler.GetConsent))
	mux.HandleFunc(fmt.Sprintf("GET %s/validity", consent), view(s.handler.GetConsentValidity))
}
