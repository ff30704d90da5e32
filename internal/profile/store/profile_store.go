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
	"context"

	"github.com/wso2/profile-consent-service/internal/profile/model"
)

// ProfileStoreInterface persists whole profiles. Implementations hand out copies, so a
// profile returned by GetProfile can be mutated freely before UpdateProfile.
type ProfileStoreInterface interface {
	// AddProfile stores a new profile. It returns false when the id is already taken.
	AddProfile(ctx context.Context, profile *model.Profile) (bool, error)
	// GetProfile returns nil without an error when no profile has the id.
	GetProfile(ctx context.Context, profileId string) (*model.Profile, error)
	// UpdateProfile replaces a stored profile. A missing profile yields PROFILE_NOT_FOUND.
	UpdateProfile(ctx context.Context, profile *model.Profile) error
	// DeleteProfile returns false when there was nothing to delete.
	DeleteProfile(ctx context.Context, profileId string) (bool, error)
	// FindProfilesMergedInto lists the ids of profiles whose merge marker names targetProfileId.
	FindProfilesMergedInto(ctx context.Context, targetProfileId string) ([]string, error)
}
