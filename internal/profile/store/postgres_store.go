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
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/wso2/profile-consent-service/internal/profile/model"
	"github.com/wso2/profile-consent-service/internal/system/database/provider"
	"github.com/wso2/profile-consent-service/internal/system/database/scripts"
	errors2 "github.com/wso2/profile-consent-service/internal/system/errors"
	"github.com/wso2/profile-consent-service/internal/system/log"
)

const dbType = "postgres"

// PostgresProfileStore keeps one row per profile. Attribute bags, scores and consents are
// JSONB columns and segments a text array.
type PostgresProfileStore struct {
	dbProvider provider.DBProviderInterface
}

func NewPostgresProfileStore(dbProvider provider.DBProviderInterface) *PostgresProfileStore {
	return &PostgresProfileStore{dbProvider: dbProvider}
}

// InitSchema creates the profile table when it does not exist yet.
func (s *PostgresProfileStore) InitSchema(ctx context.Context) error {

	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		return errors2.NewServerError(errors2.DB_CLIENT_INIT, err)
	}
	if err := dbClient.InitDatabase(ctx, scripts.Schema[dbType]); err != nil {
		return errors2.NewServerError(errors2.DB_CLIENT_INIT, errors.Wrap(err, "failed to create profile schema"))
	}
	log.GetLogger().Info("Profile schema created successfully")
	return nil
}

// AddProfile inserts a new profile. An existing id is left untouched and reported as false.
func (s *PostgresProfileStore) AddProfile(ctx context.Context, profile *model.Profile) (bool, error) {

	logger := log.GetLogger()
	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		errorMsg := "Failed to get database client for adding a profile"
		logger.Debug(errorMsg, log.Error(err))
		return false, serverError(errors2.ADD_PROFILE, errorMsg, err)
	}

	args, err := profileColumns(profile)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to marshal profile with Id: %s", profile.ProfileId())
		logger.Debug(errorMsg, log.Error(err))
		return false, serverError(errors2.MARSHAL_JSON, errorMsg, err)
	}

	inserted, err := dbClient.ExecuteStatement(ctx, scripts.InsertProfile[dbType], args...)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert profile with Id: %s", profile.ProfileId())
		logger.Debug(errorMsg, log.Error(err))
		return false, serverError(errors2.ADD_PROFILE, errorMsg, errors.Wrap(err, "insert profile"))
	}
	if inserted == 0 {
		logger.Debug("Profile already exists: " + profile.ProfileId())
		return false, nil
	}
	logger.Info("Profile added successfully: " + profile.ProfileId())
	return true, nil
}

// GetProfile retrieves a profile by its Id
func (s *PostgresProfileStore) GetProfile(ctx context.Context, profileId string) (*model.Profile, error) {

	logger := log.GetLogger()
	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client while fetching profile with Id: %s", profileId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, serverError(errors2.GET_PROFILE, errorMsg, err)
	}

	results, err := dbClient.ExecuteQuery(ctx, scripts.GetProfile[dbType], profileId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed fetching profile with Id: %s", profileId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, serverError(errors2.GET_PROFILE, errorMsg, errors.Wrap(err, "select profile"))
	}
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No profile found with the given Id: %s", profileId))
		return nil, nil
	}

	profile, err := scanProfileRow(results[0])
	if err != nil {
		errorMsg := fmt.Sprintf("Failed reading stored profile with Id: %s", profileId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, serverError(errors2.STORED_CONSENT_CORRUPT, errorMsg, err)
	}
	return profile, nil
}

// UpdateProfile replaces the stored row of an existing profile.
func (s *PostgresProfileStore) UpdateProfile(ctx context.Context, profile *model.Profile) error {

	logger := log.GetLogger()
	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for updating profile with Id: %s", profile.ProfileId())
		logger.Debug(errorMsg, log.Error(err))
		return serverError(errors2.UPDATE_PROFILE, errorMsg, err)
	}

	args, err := profileColumns(profile)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to marshal profile with Id: %s", profile.ProfileId())
		logger.Debug(errorMsg, log.Error(err))
		return serverError(errors2.MARSHAL_JSON, errorMsg, err)
	}

	updated, err := dbClient.ExecuteStatement(ctx, scripts.UpdateProfile[dbType], args...)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to update profile with Id: %s", profile.ProfileId())
		logger.Debug(errorMsg, log.Error(err))
		return serverError(errors2.UPDATE_PROFILE, errorMsg, errors.Wrap(err, "update profile"))
	}
	if updated == 0 {
		return errors2.NotFound(errors2.PROFILE_NOT_FOUND,
			fmt.Sprintf("No profile found with the given Id: %s", profile.ProfileId()))
	}
	return nil
}

// DeleteProfile removes a profile row.
func (s *PostgresProfileStore) DeleteProfile(ctx context.Context, profileId string) (bool, error) {

	logger := log.GetLogger()
	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for deleting profile with Id: %s", profileId)
		logger.Debug(errorMsg, log.Error(err))
		return false, serverError(errors2.DELETE_PROFILE, errorMsg, err)
	}

	deleted, err := dbClient.ExecuteStatement(ctx, scripts.DeleteProfile[dbType], profileId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to delete profile with Id: %s", profileId)
		logger.Debug(errorMsg, log.Error(err))
		return false, serverError(errors2.DELETE_PROFILE, errorMsg, errors.Wrap(err, "delete profile"))
	}
	return deleted > 0, nil
}

// FindProfilesMergedInto lists the profiles carrying a merge marker to targetProfileId.
func (s *PostgresProfileStore) FindProfilesMergedInto(ctx context.Context, targetProfileId string) ([]string, error) {

	logger := log.GetLogger()
	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		errorMsg := "Failed to get db client for filtering merged profiles"
		logger.Debug(errorMsg, log.Error(err))
		return nil, serverError(errors2.FILTER_PROFILES, errorMsg, err)
	}

	results, err := dbClient.ExecuteQuery(ctx, scripts.FindProfilesMergedInto[dbType], targetProfileId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch profiles merged into: %s", targetProfileId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, serverError(errors2.FILTER_PROFILES, errorMsg, errors.Wrap(err, "select merged profiles"))
	}

	profileIds := make([]string, 0, len(results))
	for _, row := range results {
		id, _ := textValue(row["profile_id"])
		profileIds = append(profileIds, id)
	}
	return profileIds, nil
}

// profileColumns returns the statement arguments shared by insert and update, in column order.
func profileColumns(profile *model.Profile) ([]interface{}, error) {

	doc := toDocument(profile)
	propertiesJSON, err := json.Marshal(doc.Properties)
	if err != nil {
		return nil, errors.Wrap(err, "marshal properties")
	}
	systemPropertiesJSON, err := json.Marshal(doc.SystemProperties)
	if err != nil {
		return nil, errors.Wrap(err, "marshal system properties")
	}
	consentsJSON, err := json.Marshal(doc.Consents)
	if err != nil {
		return nil, errors.Wrap(err, "marshal consents")
	}
	var scoresJSON interface{}
	if doc.Scores != nil {
		encoded, err := json.Marshal(*doc.Scores)
		if err != nil {
			return nil, errors.Wrap(err, "marshal scores")
		}
		scoresJSON = string(encoded)
	}
	var mergedWith interface{}
	if doc.MergedWith != nil {
		mergedWith = *doc.MergedWith
	}

	return []interface{}{
		doc.ProfileId,
		string(propertiesJSON),
		string(systemPropertiesJSON),
		pq.Array(doc.Segments),
		scoresJSON,
		mergedWith,
		string(consentsJSON),
	}, nil
}

func scanProfileRow(row map[string]interface{}) (*model.Profile, error) {

	var doc profileDocument
	doc.ProfileId, _ = textValue(row["profile_id"])

	if err := unmarshalColumn(row, "properties", &doc.Properties); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(row, "system_properties", &doc.SystemProperties); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(row, "consents", &doc.Consents); err != nil {
		return nil, err
	}
	if _, ok := textValue(row["scores"]); ok {
		var scores map[string]int
		if err := unmarshalColumn(row, "scores", &scores); err != nil {
			return nil, err
		}
		if scores == nil {
			scores = map[string]int{}
		}
		doc.Scores = &scores
	}
	if mergedWith, ok := textValue(row["merged_with"]); ok {
		doc.MergedWith = &mergedWith
	}

	var segments pq.StringArray
	if err := segments.Scan(row["segments"]); err != nil {
		return nil, errors.Wrap(err, "scan segments")
	}
	doc.Segments = segments

	return fromDocument(doc)
}

func unmarshalColumn(row map[string]interface{}, column string, target interface{}) error {
	raw, ok := textValue(row[column])
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return errors.Wrapf(err, "unmarshal column %s", column)
	}
	return nil
}

// textValue normalizes the string and []byte values lib/pq returns for text columns.
func textValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

func serverError(msg errors2.ErrorMessage, description string, cause error) *errors2.ServerError {
	return errors2.NewServerError(msg.WithDescription(description), cause)
}
