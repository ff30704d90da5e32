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

type ProfileService struct {
	profileHandler *handler.ProfileHandler
}

func NewProfileService(mux *http.ServeMux, apiBasePath string, profilesProvider provider.ProfilesProviderInterface) *ProfileService {

	instance := &ProfileService{
		profileHandler: handler.NewProfileHandler(profilesProvider),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *ProfileService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	profiles := fmt.Sprintf("%s/%s", apiBasePath, constants.ProfileApiPath)
	profile := fmt.Sprintf("%s/{%s}", profiles, constants.ProfileIdPathParam)
	view := func(next http.HandlerFunc) http.HandlerFunc {
		return security.RequireScope(constants.ScopeProfileView, next, utils.HandleError)
	}
	update := func(next http.HandlerFunc) http.HandlerFunc {
		return security.RequireScope(constants.ScopeProfileUpdate, next, utils.HandleError)
	}

	mux.HandleFunc(fmt.Sprintf("POST %s", profiles), update(s.profileHandler.CreateProfile))
	mux.HandleFunc(fmt.Sprintf("GET %s", profile), view(s.profileHandler.GetProfile))
	mux.HandleFunc(fmt.Sprintf("DELETE %s", profile), update(s.profileHandler.DeleteProfile))
	mux.HandleFunc(fmt.Sprintf("PATCH %s/properties", profile), update(s.profileHandler.PatchProperties))
	mux.HandleFunc(fmt.Sprintf("PATCH %s/system-properties", profile), update(s.profileHandler.PatchSystemProperties))
	mux.HandleFunc(fmt.Sprintf("PUT %s/segments", profile), update(s.profileHandler.ReplaceSegments))
	mux.HandleFunc(fmt.Sprintf("PUT %s/scores", profile), update(s.profileHandler.ReplaceScores))
	mux.HandleFunc(fmt.Sprintf("PUT %s/merged-with", profile), update(s.profileHandler.SetMergedWith))
	mux.HandleFunc(fmt.Sprintf("GET %s/merged", profile), view(s.profileHandler.GetMergedProfiles))
}
