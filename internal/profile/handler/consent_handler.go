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
	"time"

	"github.com/wso2/profile-consent-service/internal/profile/provider"
	"github.com/wso2/profile-consent-service/internal/system/constants"
	errors2 "github.com/wso2/profile-consent-service/internal/system/errors"
	"github.com/wso2/profile-consent-service/internal/system/utils"
)

type ConsentHandler struct {
	provider provider.ProfilesProviderInterface
	now      func() time.Time
}

func NewConsentHandler(profilesProvider provider.ProfilesProviderInterface) *ConsentHandler {

	return &ConsentHandler{provider: profilesProvider, now: time.Now}
}

// ApplyConsent applies a consent command given as a consent map.
func (ch *ConsentHandler) ApplyConsent(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	var consentMap map[string]interface{}
	if err := utils.DecodeJSON(r, &consentMap, "consent"); err != nil {
		utils.HandleError(w, r, err)
		return
	}

	applied, err := ch.provider.GetConsentService().ApplyConsentMap(r.Context(), profileId, consentMap)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ApplyConsentResponse{Applied: applied})
}

// GetConsents lists the consents of the profile in the order they were recorded.
func (ch *ConsentHandler) GetConsents(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	records, err := ch.provider.GetConsentService().GetConsents(r.Context(), profileId)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toConsentMaps(records))
}

func (ch *ConsentHandler) GetConsent(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	typeIdentifier := r.PathValue(constants.TypeIdentifierPathParam)
	record, err := ch.provider.GetConsentService().GetConsent(r.Context(), profileId, typeIdentifier)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, record.ToMap(apiDateFormat))
}

// GetConsentValidity reports whether the consent is in force at the instant given by the
// "at" query parameter, or now when it is absent.
func (ch *ConsentHandler) GetConsentValidity(w http.ResponseWriter, r *http.Request) {

	profileId := r.PathValue(constants.ProfileIdPathParam)
	typeIdentifier := r.PathValue(constants.TypeIdentifierPathParam)

	at := ch.now()
	if raw := r.URL.Query().Get(constants.ValidityAtQueryParam); raw != "" {
		parsed, err := apiDateFormat.Parse(raw)
		if err != nil {
			utils.HandleError(w, r, errors2.BadRequest(errors2.BAD_REQUEST,
				fmt.Sprintf("Query parameter '%s' is not an ISO 8601 date: %s", constants.ValidityAtQueryParam, raw)))
			return
		}
		at = parsed
	}

	valid, err := ch.provider.GetConsentService().IsConsentValid(r.Context(), profileId, typeIdentifier, at)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ConsentValidityResponse{
		TypeIdentifier: typeIdentifier,
		At:             apiDateFormat.Format(at),
		Valid:          valid,
	})
}
