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
	"github.com/wso2/profile-consent-service/internal/profile/model"
)

// CreateProfileRequest is the body of a profile creation request. An empty profile_id asks
// the service to generate one.
type CreateProfileRequest struct {
	ProfileId        string             `json:"profile_id"`
	Properties       model.AttributeBag `json:"properties"`
	SystemProperties model.AttributeBag `json:"system_properties"`
}

type SegmentsRequest struct {
	Segments []string `json:"segments"`
}

// ScoresRequest replaces the scores. A null scores value marks them as not computed.
type ScoresRequest struct {
	Scores map[string]int `json:"scores"`
}

// MergedWithRequest sets the merge marker. An empty merged_with clears it.
type MergedWithRequest struct {
	MergedWith string `json:"merged_with"`
}

type ProfileResponse struct {
	ProfileId        string                   `json:"profile_id"`
	ItemType         string                   `json:"item_type"`
	Scope            string                   `json:"scope"`
	IsAnonymous      bool                     `json:"is_anonymous"`
	Properties       model.AttributeBag       `json:"properties"`
	SystemProperties model.AttributeBag       `json:"system_properties"`
	Segments         []string                 `json:"segments"`
	Scores           *map[string]int          `json:"scores,omitempty"`
	MergedWith       string                   `json:"merged_with,omitempty"`
	Consents         []map[string]interface{} `json:"consents"`
}

type ApplyConsentResponse struct {
	Applied bool `json:"applied"`
}

type ConsentValidityResponse struct {
	TypeIdentifier string `json:"type_identifier"`
	At             string `json:"at"`
	Valid          bool   `json:"valid"`
}

type MergedProfilesResponse struct {
	ProfileId        string   `json:"profile_id"`
	MergedProfileIds []string `json:"merged_profile_ids"`
}

var apiDateFormat model.DateFormat = model.ISO8601DateFormat{}

func toProfileResponse(profile *model.Profile) ProfileResponse {
	response := ProfileResponse{
		ProfileId:        profile.ProfileId(),
		ItemType:         profile.ItemType(),
		Scope:            profile.Scope(),
		IsAnonymous:      profile.IsAnonymousProfile(),
		Properties:       profile.Properties(),
		SystemProperties: profile.SystemProperties(),
		Segments:         profile.Segments(),
		Consents:         toConsentMaps(profile.Consents()),
	}
	if scores, ok := profile.Scores(); ok {
		response.Scores = &scores
	}
	if target, ok := profile.MergedWith(); ok {
		response.MergedWith = target
	}
	return response
}

func toConsentMaps(records []model.ConsentRecord) []map[string]interface{} {
	consents := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		consents = append(consents, record.ToMap(apiDateFormat))
	}
	return consents
}
