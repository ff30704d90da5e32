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

package handler

import (
	"fmt"
	"net/http"

	"github.com/wso2/profile-consent-service/internal/profile/model"
	"github.com/wso2/profile-consent-service/internal/profile/provider"
	"github.com/wso2/profile-consent-service/internal/system/constants"
	"github.com/wso2/profile-consent-service/internal/system/log"
	"github.com/wso2/profile-consent-service/internal/system/utils"
)

type ProfileHandler struct {
	provider provider.ProfilesProviderInterface
}

func NewProfileHandler(profilesProvider provider.ProfilesProviderInterface) *ProfileHandler {

	return &ProfileHandler{provider: profilesProvider}
}

// CreateProfile handles profile creation requests
func (ph *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {

	var request CreateProfileRequest
	if err := utils.DecodeJSON(r, &request, "profile"); err != nil {
		utils.HandleError(w, r, err)
		return
	}

	profileService := ph.provider.GetProfileService()
	profile, err := profileService.CreateProfile(r.Context(), request.ProfileId, request.Properties, request.SystemProperties)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("%s/%s/%s", constants.ApiBasePath, constants.ProfileApiPath, profile.ProfileId()))
	utils.WriteJSON(w, http.StatusCreated, toProfileResponse(profile))
}

// GetProfile handles profile retrieval requests
func (ph *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	profile, err := ph.provider.GetProfileService().GetProfile(r.Context(), profileId)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

// DeleteProfile handles profile deletion requests
func (ph *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	if err := ph.provider.GetProfileService().DeleteProfile(r.Context(), profileId); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	log.GetLogger().Info(fmt.Sprintf("Profile %s deleted", profileId), log.TraceID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// PatchProperties merges the request body into the profile properties.
func (ph *ProfileHandler) PatchProperties(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	var properties model.AttributeBag
	if err := utils.DecodeJSON(r, &properties, "properties"); err != nil {
		utils.HandleError(w, r, err)
		return
	}

	profile, err := ph.provider.GetProfileService().SetProperties(r.Context(), profileId, properties)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

// PatchSystemProperties merges the request body into the profile system properties.
func (ph *ProfileHandler) PatchSystemProperties(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	var systemProperties model.AttributeBag
	if err := utils.DecodeJSON(r, &systemProperties, "system properties"); err != nil {
		utils.HandleError(w, r, err)
		return
	}

	profile, err := ph.provider.GetProfileService().SetSystemProperties(r.Context(), profileId, systemProperties)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (ph *ProfileHandler) ReplaceSegments(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	var request SegmentsRequest
	if err := utils.DecodeJSON(r, &request, "segments"); err != nil {
		utils.HandleError(w, r, err)
		return
	}

	profile, err := ph.provider.GetProfileService().ReplaceSegments(r.Context(), profileId, request.Segments)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (ph *ProfileHandler) ReplaceScores(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	var request ScoresRequest
	if err := utils.DecodeJSON(r, &request, "scores"); err != nil {
		utils.HandleError(w, r, err)
		return
	}

	profile, err := ph.provider.GetProfileService().ReplaceScores(r.Context(), profileId, request.Scores)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

// SetMergedWith records or clears the merge marker of the profile.
func (ph *ProfileHandler) SetMergedWith(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	var request MergedWithRequest
	if err := utils.DecodeJSON(r, &request, "merge marker"); err != nil {
		utils.HandleError(w, r, err)
		return
	}

	profile, err := ph.provider.GetProfileService().MarkMerged(r.Context(), profileId, request.MergedWith)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

// GetMergedProfiles lists the profiles merged into the given profile.
func (ph *ProfileHandler) GetMergedProfiles(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	mergedIds, err := ph.provider.GetProfileService().FindMergedProfiles(r.Context(), profileId)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, MergedProfilesResponse{ProfileId: profileId, MergedProfileIds: mergedIds})
}
