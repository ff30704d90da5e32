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
	"fmt"
	"sort"
	"sync"

	"github.com/wso2/profile-consent-service/internal/profile/model"
	errors2 "github.com/wso2/profile-consent-service/internal/system/errors"
)

// InMemoryProfileStore keeps profiles in process. Profiles are cloned on the way in and out.
type InMemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*model.Profile
}

func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{profiles: make(map[string]*model.Profile)}
}

func (s *InMemoryProfileStore) AddProfile(_ context.Context, profile *model.Profile) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[profile.ProfileId()]; exists {
		return false, nil
	}
	s.profiles[profile.ProfileId()] = profile.Clone()
	return true, nil
}

func (s *InMemoryProfileStore) GetProfile(_ context.Context, profileId string) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[profileId]
	if !ok {
		return nil, nil
	}
	return profile.Clone(), nil
}

func (s *InMemoryProfileStore) UpdateProfile(_ context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[profile.ProfileId()]; !exists {
		return errors2.NotFound(errors2.PROFILE_NOT_FOUND,
			fmt.Sprintf("No profile found with the given Id: %s", profile.ProfileId()))
	}
	s.profiles[profile.ProfileId()] = profile.Clone()
	return nil
}

func (s *InMemoryProfileStore) DeleteProfile(_ context.Context, profileId string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[profileId]; !exists {
		return false, nil
	}
	delete(s.profiles, profileId)
	return true, nil
}

func (s *InMemoryProfileStore) FindProfilesMergedInto(_ context.Context, targetProfileId string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profileIds := []string{}
	for id, profile := range s.profiles {
		if target, ok := profile.MergedWith(); ok && target == targetProfileId {
			profileIds = append(profileIds, id)
		}
	}
	sort.Strings(profileIds)
	return profileIds, nil
}
