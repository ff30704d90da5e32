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

package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/wso2/profile-consent-service/internal/profile/model"
	errors2 "github.com/wso2/profile-consent-service/internal/system/errors"
	"github.com/wso2/profile-consent-service/internal/system/lock"
	"github.com/wso2/profile-consent-service/internal/system/log"
)

// ProfileServiceInterface defines the service interface for profile identity records.
type ProfileServiceInterface interface {
	CreateProfile(ctx context.Context, profileId string, properties, systemProperties model.AttributeBag) (*model.Profile, error)
	GetProfile(ctx context.Context, profileId string) (*model.Profile, error)
	DeleteProfile(ctx context.Context, profileId string) error
	SetProperties(ctx context.Context, profileId string, properties model.AttributeBag) (*model.Profile, error)
	SetSystemProperties(ctx context.Context, profileId string, systemProperties model.AttributeBag) (*model.Profile, error)
	ReplaceSegments(ctx context.Context, profileId string, segments []string) (*model.Profile, error)
	ReplaceScores(ctx context.Context, profileId string, scores map[string]int) (*model.Profile, error)
	MarkMerged(ctx context.Context, profileId, targetProfileId string) (*model.Profile, error)
	FindMergedProfiles(ctx context.Context, targetProfileId string) ([]string, error)
	IsAnonymousProfile(ctx context.Context, profileId string) (bool, error)
}

// ProfileService is the default implementation.
type ProfileService struct {
	access *ProfileAccess
}

func NewProfileService(access *ProfileAccess) ProfileServiceInterface {
	return &ProfileService{access: access}
}

// CreateProfile stores a new profile. An empty id is replaced with a generated one.
func (ps *ProfileService) CreateProfile(ctx context.Context, profileId string, properties,
	systemProperties model.AttributeBag) (*model.Profile, error) {

	if profileId == "" {
		profileId = uuid.New().String()
	}
	profile := model.NewProfile(profileId)
	profile.SetProperties(properties)
	profile.SetSystemProperties(systemProperties)

	added, err := ps.access.store.AddProfile(ctx, profile)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, errors2.NewClientError(errors2.PROFILE_ALREADY_EXISTS.WithDescription(
			fmt.Sprintf("A profile with Id %s already exists.", profileId)), http.StatusConflict)
	}
	ps.access.invalidate(profileId)
	audit(ctx, log.ActionAddProfile, profileId, log.TargetTypeProfile, nil)
	return profile, nil
}

// GetProfile retrieves a snapshot of the profile.
func (ps *ProfileService) GetProfile(ctx context.Context, profileId string) (*model.Profile, error) {

	return ps.access.snapshot(ctx, profileId)
}

// DeleteProfile removes the profile. Profiles merged into it keep their marker.
func (ps *ProfileService) DeleteProfile(ctx context.Context, profileId string) error {

	unlock, err := ps.access.locker.Lock(ctx, lock.ProfileLockKey(profileId))
	if err != nil {
		return lockError(profileId, err)
	}
	defer unlock()

	deleted, err := ps.access.store.DeleteProfile(ctx, profileId)
	if err != nil {
		return err
	}
	ps.access.invalidate(profileId)
	if !deleted {
		return profileNotFound(profileId)
	}
	audit(ctx, log.ActionDeleteProfile, profileId, log.TargetTypeProfile, nil)
	return nil
}

// SetProperties merges properties into the profile. A null value removes the property.
func (ps *ProfileService) SetProperties(ctx context.Context, profileId string,
	properties model.AttributeBag) (*model.Profile, error) {

	profile, err := ps.access.mutate(ctx, profileId, func(profile *model.Profile) (bool, error) {
		for name, value := range properties {
			if value.IsNull() {
				profile.RemoveProperty(name)
				continue
			}
			profile.SetProperty(name, value)
		}
		return len(properties) > 0, nil
	})
	if err != nil {
		return nil, err
	}
	audit(ctx, log.ActionUpdateProfile, profileId, log.TargetTypeProfile, map[string]interface{}{
		"properties": properties.Keys(),
	})
	return profile, nil
}

// SetSystemProperties merges system properties into the profile. A null value removes the
// property.
func (ps *ProfileService) SetSystemProperties(ctx context.Context, profileId string,
	systemProperties model.AttributeBag) (*model.Profile, error) {

	profile, err := ps.access.mutate(ctx, profileId, func(profile *model.Profile) (bool, error) {
		merged := profile.SystemProperties()
		for name, value := range systemProperties {
			if value.IsNull() {
				delete(merged, name)
				continue
			}
			merged[name] = value
		}
		profile.SetSystemProperties(merged)
		return len(systemProperties) > 0, nil
	})
	if err != nil {
		return nil, err
	}
	audit(ctx, log.ActionUpdateProfile, profileId, log.TargetTypeProfile, map[string]interface{}{
		"system_properties": systemProperties.Keys(),
	})
	return profile, nil
}

func (ps *ProfileService) ReplaceSegments(ctx context.Context, profileId string, segments []string) (*model.Profile, error) {

	profile, err := ps.access.mutate(ctx, profileId, func(profile *model.Profile) (bool, error) {
		profile.SetSegments(segments)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	audit(ctx, log.ActionUpdateProfile, profileId, log.TargetTypeProfile, map[string]interface{}{
		"segments": profile.Segments(),
	})
	return profile, nil
}

// ReplaceScores overwrites the scores. nil marks the scores as not computed.
func (ps *ProfileService) ReplaceScores(ctx context.Context, profileId string, scores map[string]int) (*model.Profile, error) {

	profile, err := ps.access.mutate(ctx, profileId, func(profile *model.Profile) (bool, error) {
		profile.SetScores(scores)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	audit(ctx, log.ActionUpdateProfile, profileId, log.TargetTypeProfile, nil)
	return profile, nil
}

// MarkMerged records that profileId was merged into targetProfileId. An empty target clears
// the marker. The marker is informational and does not freeze the profile.
func (ps *ProfileService) MarkMerged(ctx context.Context, profileId, targetProfileId string) (*model.Profile, error) {

	if targetProfileId == profileId {
		return nil, errors2.BadRequest(errors2.INVALID_MERGE_TARGET, "A profile cannot be merged into itself.")
	}
	if targetProfileId != "" {
		target, err := ps.access.store.GetProfile(ctx, targetProfileId)
		if err != nil {
			return nil, err
		}
		if target == nil {
			return nil, errors2.BadRequest(errors2.INVALID_MERGE_TARGET,
				fmt.Sprintf("Merge target profile %s does not exist.", targetProfileId))
		}
	}

	profile, err := ps.access.mutate(ctx, profileId, func(profile *model.Profile) (bool, error) {
		current, merged := profile.MergedWith()
		if targetProfileId == "" {
			profile.ClearMergedWith()
			return merged, nil
		}
		profile.SetMergedWith(targetProfileId)
		return !merged || current != targetProfileId, nil
	})
	if err != nil {
		return nil, err
	}
	audit(ctx, log.ActionMergeProfile, profileId, log.TargetTypeProfile, map[string]interface{}{
		"merged_with": targetProfileId,
	})
	return profile, nil
}

// FindMergedProfiles lists the profiles whose merge marker names targetProfileId.
func (ps *ProfileService) FindMergedProfiles(ctx context.Context, targetProfileId string) ([]string, error) {

	if _, err := ps.access.snapshot(ctx, targetProfileId); err != nil {
		return nil, err
	}
	return ps.access.store.FindProfilesMergedInto(ctx, targetProfileId)
}

func (ps *ProfileService) IsAnonymousProfile(ctx context.Context, profileId string) (bool, error) {

	profile, err := ps.access.snapshot(ctx, profileId)
	if err != nil {
		return false, err
	}
	return profile.IsAnonymousProfile(), nil
}
