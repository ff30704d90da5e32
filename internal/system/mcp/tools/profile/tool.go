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

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	profileModel "github.com/wso2/profile-consent-service/internal/profile/model"
	"github.com/wso2/profile-consent-service/internal/profile/provider"
)

var dateFormat profileModel.DateFormat = profileModel.ISO8601DateFormat{}

type Tools struct {
	profiles provider.ProfilesProviderInterface
	now      func() time.Time
}

func NewTools(profiles provider.ProfilesProviderInterface) *Tools {
	return &Tools{profiles: profiles, now: time.Now}
}

func (t *Tools) RegisterTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "cds_get_profile",
		Description: "Retrieve a single profile with its consents by profile_id.",
		InputSchema: getProfileInputSchema,
		Annotations: &mcp.ToolAnnotations{
			Title:        "Get Profile",
			ReadOnlyHint: true,
		},
	}, t.getProfile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cds_list_consents",
		Description: "List the consents recorded for a profile, oldest first.",
		InputSchema: listConsentsInputSchema,
		Annotations: &mcp.ToolAnnotations{
			Title:        "List Consents",
			ReadOnlyHint: true,
		},
	}, t.listConsents)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cds_check_consent",
		Description: "Check whether a consent of the profile is in force at a given instant.",
		InputSchema: checkConsentInputSchema,
		Annotations: &mcp.ToolAnnotations{
			Title:        "Check Consent",
			ReadOnlyHint: true,
		},
	}, t.checkConsent)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cds_find_merged_profiles",
		Description: "List the profiles that were merged into the given profile.",
		InputSchema: findMergedProfilesInputSchema,
		Annotations: &mcp.ToolAnnotations{
			Title:        "Find Merged Profiles",
			ReadOnlyHint: true,
		},
	}, t.findMergedProfiles)
}

func (t *Tools) getProfile(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetProfileInput,
) (*mcp.CallToolResult, ProfileOutput, error) {

	if strings.TrimSpace(input.ProfileID) == "" {
		return nil, ProfileOutput{}, fmt.Errorf("profile_id is required")
	}

	p, err := t.profiles.GetProfileService().GetProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, ProfileOutput{}, fmt.Errorf("failed to fetch profile: %w", err)
	}

	output := ProfileOutput{
		ProfileID:        p.ProfileId(),
		IsAnonymous:      p.IsAnonymousProfile(),
		Properties:       p.Properties().ToMap(),
		SystemProperties: p.SystemProperties().ToMap(),
		Segments:         p.Segments(),
		Consents:         consentMaps(p.Consents()),
	}
	if scores, ok := p.Scores(); ok {
		output.Scores = &scores
	}
	if target, ok := p.MergedWith(); ok {
		output.MergedWith = target
	}
	return nil, output, nil
}

func (t *Tools) listConsents(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ListConsentsInput,
) (*mcp.CallToolResult, ListConsentsOutput, error) {

	if strings.TrimSpace(input.ProfileID) == "" {
		return nil, ListConsentsOutput{}, fmt.Errorf("profile_id is required")
	}

	records, err := t.profiles.GetConsentService().GetConsents(ctx, input.ProfileID)
	if err != nil {
		return nil, ListConsentsOutput{}, fmt.Errorf("failed to list consents: %w", err)
	}
	return nil, ListConsentsOutput{Consents: consentMaps(records)}, nil
}

func (t *Tools) checkConsent(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input CheckConsentInput,
) (*mcp.CallToolResult, CheckConsentOutput, error) {

	if strings.TrimSpace(input.ProfileID) == "" {
		return nil, CheckConsentOutput{}, fmt.Errorf("profile_id is required")
	}
	if strings.TrimSpace(input.TypeIdentifier) == "" {
		return nil, CheckConsentOutput{}, fmt.Errorf("type_identifier is required")
	}

	at := t.now()
	if input.At != "" {
		parsed, err := dateFormat.Parse(input.At)
		if err != nil {
			return nil, CheckConsentOutput{}, fmt.Errorf("at is not an ISO 8601 instant: %s", input.At)
		}
		at = parsed
	}

	valid, err := t.profiles.GetConsentService().IsConsentValid(ctx, input.ProfileID, input.TypeIdentifier, at)
	if err != nil {
		return nil, CheckConsentOutput{}, fmt.Errorf("failed to check consent: %w", err)
	}
	return nil, CheckConsentOutput{
		TypeIdentifier: input.TypeIdentifier,
		At:             dateFormat.Format(at),
		Valid:          valid,
	}, nil
}

func (t *Tools) findMergedProfiles(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input FindMergedProfilesInput,
) (*mcp.CallToolResult, FindMergedProfilesOutput, error) {

	if strings.TrimSpace(input.ProfileID) == "" {
		return nil, FindMergedProfilesOutput{}, fmt.Errorf("profile_id is required")
	}

	ids, err := t.profiles.GetProfileService().FindMergedProfiles(ctx, input.ProfileID)
	if err != nil {
		return nil, FindMergedProfilesOutput{}, fmt.Errorf("failed to find merged profiles: %w", err)
	}
	return nil, FindMergedProfilesOutput{MergedProfileIDs: ids}, nil
}

func consentMaps(records []profileModel.ConsentRecord) []map[string]interface{} {
	consents := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		consents = append(consents, record.ToMap(dateFormat))
	}
	return consents
}
