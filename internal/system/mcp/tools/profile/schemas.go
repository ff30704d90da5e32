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

import "github.com/google/jsonschema-go/jsonschema"

var profileIDSchema = &jsonschema.Schema{
	Type:        "string",
	Description: "Unique profile identifier.",
}

var getProfileInputSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"profile_id"},
	Properties: map[string]*jsonschema.Schema{
		"profile_id": profileIDSchema,
	},
}

var listConsentsInputSchema = getProfileInputSchema

var findMergedProfilesInputSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"profile_id"},
	Properties: map[string]*jsonschema.Schema{
		"profile_id": {
			Type:        "string",
			Description: "Profile that the returned profiles were merged into.",
		},
	},
}

var checkConsentInputSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"profile_id", "type_identifier"},
	Properties: map[string]*jsonschema.Schema{
		"profile_id": profileIDSchema,
		"type_identifier": {
			Type:        "string",
			Description: "Consent type, for example \"newsletter\".",
		},
		"at": {
			Type:        "string",
			Description: "ISO 8601 instant to evaluate the consent at. Defaults to now.",
		},
	},
}
