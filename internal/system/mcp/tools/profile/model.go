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

package profile

// cds_get_profile
type GetProfileInput struct {
	ProfileID string `json:"profile_id"`
}

type ProfileOutput struct {
	ProfileID        string                   `json:"profile_id"`
	IsAnonymous      bool                     `json:"is_anonymous"`
	Properties       map[string]interface{}   `json:"properties"`
	SystemProperties map[string]interface{}   `json:"system_properties"`
	Segments         []string                 `json:"segments"`
	Scores           *map[string]int          `json:"scores,omitempty"`
	MergedWith       string                   `json:"merged_with,omitempty"`
	Consents         []map[string]interface{} `json:"consents"`
}

// cds_list_consents
type ListConsentsInput struct {
	ProfileID string `json:"profile_id"`
}

type ListConsentsOutput struct {
	Consents []map[string]interface{} `json:"consents"`
}

// cds_check_consent
type CheckConsentInput struct {
	ProfileID      string `json:"profile_id"`
	TypeIdentifier string `json:"type_identifier"`
	// ISO 8601 instant. Defaults to now.
	At string `json:"at,omitempty"`
}

type CheckConsentOutput struct {
	TypeIdentifier string `json:"type_identifier"`
	At             string `json:"at"`
	Valid          bool   `json:"valid"`
}

// cds_find_merged_profiles
type FindMergedProfilesInput struct {
	ProfileID string `json:"profile_id"`
}

type FindMergedProfilesOutput struct {
	MergedProfileIDs []string `json:"merged_profile_ids"`
}
