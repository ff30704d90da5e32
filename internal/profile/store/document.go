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

package store

import (
	"fmt"

	"github.com/wso2/profile-consent-service/internal/profile/model"
)

// profileDocument is the persisted shape of a profile shared by the postgres and mongodb
// stores. Consents use the generic consent map shape with ISO 8601 dates.
type profileDocument struct {
	ProfileId        string                   `json:"profile_id" bson:"profile_id"`
	Properties       map[string]interface{}   `json:"properties" bson:"properties"`
	SystemProperties map[string]interface{}   `json:"system_properties" bson:"system_properties"`
	Segments         []string                 `json:"segments" bson:"segments"`
	Scores           *map[string]int          `json:"scores,omitempty" bson:"scores,omitempty"`
	MergedWith       *string                  `json:"merged_with,omitempty" bson:"merged_with,omitempty"`
	Consents         []map[string]interface{} `json:"consents" bson:"consents"`
}

var documentDateFormat model.DateFormat = model.ISO8601DateFormat{}

func toDocument(profile *model.Profile) profileDocument {
	doc := profileDocument{
		ProfileId:        profile.ProfileId(),
		Properties:       profile.Properties().ToMap(),
		SystemProperties: profile.SystemProperties().ToMap(),
		Segments:         profile.Segments(),
		Consents:         profile.ConsentLedger().ToMaps(documentDateFormat),
	}
	if scores, ok := profile.Scores(); ok {
		doc.Scores = &scores
	}
	if target, ok := profile.MergedWith(); ok {
		doc.MergedWith = &target
	}
	return doc
}

func fromDocument(doc profileDocument) (*model.Profile, error) {
	profile := model.NewProfile(doc.ProfileId)

	properties, err := model.AttributeBagOf(doc.Properties)
	if err != nil {
		return nil, fmt.Errorf("properties of profile %s: %w", doc.ProfileId, err)
	}
	profile.SetProperties(properties)

	systemProperties, err := model.AttributeBagOf(doc.SystemProperties)
	if err != nil {
		return nil, fmt.Errorf("system properties of profile %s: %w", doc.ProfileId, err)
	}
	profile.SetSystemProperties(systemProperties)

	profile.SetSegments(doc.Segments)
	if doc.Scores != nil {
		profile.SetScores(*doc.Scores)
	}
	if doc.MergedWith != nil {
		profile.SetMergedWith(*doc.MergedWith)
	}

	ledger, err := model.LedgerFromMaps(doc.Consents, documentDateFormat)
	if err != nil {
		return nil, fmt.Errorf("consents of profile %s: %w", doc.ProfileId, err)
	}
	profile.RestoreConsents(ledger)
	return profile, nil
}
