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
	"errors"
	"fmt"
	"time"

	"github.com/wso2/profile-consent-service/internal/profile/model"
	"github.com/wso2/profile-consent-service/internal/profile/store"
	"github.com/wso2/profile-consent-service/internal/system/cache"
	cdscontext "github.com/wso2/profile-consent-service/internal/system/context"
	errors2 "github.com/wso2/profile-consent-service/internal/system/errors"
	"github.com/wso2/profile-consent-service/internal/system/lock"
	"github.com/wso2/profile-consent-service/internal/system/log"
)

// ProfileAccess is shared by the profile and consent services. Mutations run under the
// profile lock and invalidate the snapshot cache. Profile reads are served from snapshots;
// consent reads always go to the store.
type ProfileAccess struct {
	store     store.ProfileStoreInterface
	locker    lock.ProfileLocker
	snapshots *cache.Cache[*model.Profile]
}

func NewProfileAccess(profileStore store.ProfileStoreInterface, locker lock.ProfileLocker,
	snapshotTTL time.Duration) *ProfileAccess {

	return &ProfileAccess{
		store:     profileStore,
		locker:    locker,
		snapshots: cache.NewCache[*model.Profile](snapshotTTL),
	}
}

// PurgeExpiredSnapshots drops cached snapshots whose TTL has passed.
func (a *ProfileAccess) PurgeExpiredSnapshots() int {
	return a.snapshots.PurgeExpired()
}

// snapshot returns a private copy of the current profile state.
func (a *ProfileAccess) snapshot(ctx context.Context, profileId string) (*model.Profile, error) {

	profile, err := a.snapshots.GetOrLoad(profileId, func() (*model.Profile, error) {
		return a.store.GetProfile(ctx, profileId)
	}, func(p *model.Profile) bool { return p != nil })
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, profileNotFound(profileId)
	}
	return profile.Clone(), nil
}

// current reads the profile straight from the store. Consent reads use it because the
// snapshot cache is local to this process and a revoke on another instance does not
// invalidate it.
func (a *ProfileAccess) current(ctx context.Context, profileId string) (*model.Profile, error) {

	profile, err := a.store.GetProfile(ctx, profileId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, profileNotFound(profileId)
	}
	return profile, nil
}

// mutate applies fn to the stored profile while holding its lock. The profile is written
// back only when fn reports a change.
func (a *ProfileAccess) mutate(ctx context.Context, profileId string,
	fn func(profile *model.Profile) (bool, error)) (*model.Profile, error) {

	logger := log.GetLogger()
	unlock, err := a.locker.Lock(ctx, lock.ProfileLockKey(profileId))
	if err != nil {
		return nil, lockError(profileId, err)
	}
	defer unlock()

	profile, err := a.store.GetProfile(ctx, profileId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, profileNotFound(profileId)
	}
	if target, merged := profile.MergedWith(); merged {
		logger.Warn(fmt.Sprintf("Updating profile %s that is merged into %s", profileId, target),
			log.TraceID(ctx))
	}

	changed, err := fn(profile)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := a.store.UpdateProfile(ctx, profile); err != nil {
			return nil, err
		}
		a.snapshots.Delete(profileId)
	}
	return profile, nil
}

func (a *ProfileAccess) invalidate(profileId string) {
	a.snapshots.Delete(profileId)
}

func profileNotFound(profileId string) *errors2.ClientError {
	return errors2.NotFound(errors2.PROFILE_NOT_FOUND, fmt.Sprintf("No profile found with the given Id: %s", profileId))
}

func lockError(profileId string, err error) error {
	var serverError *errors2.ServerError
	if errors.As(err, &serverError) {
		return serverError
	}
	errorMsg := fmt.Sprintf("Could not acquire the lock for profile: %s", profileId)
	log.GetLogger().Debug(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.LOCK_ACQUIRE.WithDescription(errorMsg), err)
}

func audit(ctx context.Context, action, targetId, targetType string, data interface{}) {
	initiatorId, initiatorType := "system", log.InitiatorTypeSystem
	if principal, ok := cdscontext.GetPrincipal(ctx); ok && principal.Subject != "" {
		initiatorId, initiatorType = principal.Subject, log.InitiatorTypeUser
	}
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorId,
		InitiatorType: initiatorType,
		TargetID:      targetId,
		TargetType:    targetType,
		ActionID:      action,
		TraceID:       cdscontext.GetTraceID(ctx),
		Data:          data,
	})
}
