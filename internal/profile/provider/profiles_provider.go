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

package provider

import (
	"time"

	"github.com/wso2/profile-consent-service/internal/profile/service"
	"github.com/wso2/profile-consent-service/internal/profile/store"
	"github.com/wso2/profile-consent-service/internal/system/lock"
	"github.com/wso2/profile-consent-service/internal/system/metrics"
)

// ProfilesProviderInterface defines the interface for the profiles provider.
type ProfilesProviderInterface interface {
	GetProfileService() service.ProfileServiceInterface
	GetConsentService() service.ConsentServiceInterface
	PurgeExpiredSnapshots() int
}

// ProfilesProvider is the default implementation of the ProfilesProviderInterface. Both
// services share one store, locker and snapshot cache.
type ProfilesProvider struct {
	profileService service.ProfileServiceInterface
	consentService service.ConsentServiceInterface
	access         *service.ProfileAccess
}

// NewProfilesProvider creates a new instance of ProfilesProvider.
func NewProfilesProvider(profileStore store.ProfileStoreInterface, locker lock.ProfileLocker,
	consentMetrics *metrics.Metrics, snapshotTTL time.Duration) ProfilesProviderInterface {

	access := service.NewProfileAccess(profileStore, locker, snapshotTTL)
	return &ProfilesProvider{
		profileService: service.NewProfileService(access),
		consentService: service.NewConsentService(access, consentMetrics),
		access:         access,
	}
}

// GetProfileService returns the profile service instance.
func (pp *ProfilesProvider) GetProfileService() service.ProfileServiceInterface {

	return pp.profileService
}

// GetConsentService returns the consent service instance.
func (pp *ProfilesProvider) GetConsentService() service.ConsentServiceInterface {

	return pp.consentService
}

// PurgeExpiredSnapshots drops expired entries from the shared snapshot cache.
func (pp *ProfilesProvider) PurgeExpiredSnapshots() int {

	return pp.access.PurgeExpiredSnapshots()
}
