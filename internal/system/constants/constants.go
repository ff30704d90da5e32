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

package constants

const ApiBasePath = "/api/v1"
const ProfileApiPath = "profiles"
const MetricsPath = "/metrics"
const HealthPath = "/health"
const ReadyPath = "/ready"

// Path parameters used by the profile and consent routes.
const (
	ProfileIdPathParam      = "profileId"
	TypeIdentifierPathParam = "typeIdentifier"
	ValidityAtQueryParam    = "at"
)

// Data source types.
const (
	DataSourceMemory   = "memory"
	DataSourcePostgres = "postgres"
	DataSourceMongoDB  = "mongodb"
)

// Profile lock types.
const (
	LockMemory   = "memory"
	LockPostgres = "postgres"
	LockRedis    = "redis"
)

// Scopes carried by access tokens.
const (
	ScopeProfileView   = "profile:view"
	ScopeProfileUpdate = "profile:update"
	ScopeConsentView   = "consent:view"
	ScopeConsentUpdate = "consent:update"
)
