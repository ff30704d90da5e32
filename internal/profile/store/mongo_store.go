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

	"github.com/pkg/errors"
	"github.com/wso2/profile-consent-service/internal/profile/model"
	errors2 "github.com/wso2/profile-consent-service/internal/system/errors"
	"github.com/wso2/profile-consent-service/internal/system/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileStore keeps one document per profile, keyed by a unique profile_id index.
type MongoProfileStore struct {
	Collection *mongo.Collection
}

func NewMongoProfileStore(db *mongo.Database, collectionName string) *MongoProfileStore {
	return &MongoProfileStore{
		Collection: db.Collection(collectionName),
	}
}

// EnsureIndexes creates the unique profile id index and the merge marker index.
func (s *MongoProfileStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profile_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "merged_with", Value: 1}},
		},
	})
	if err != nil {
		return errors2.NewServerError(errors2.DB_CLIENT_INIT, errors.Wrap(err, "create profile indexes"))
	}
	return nil
}

func (s *MongoProfileStore) AddProfile(ctx context.Context, profile *model.Profile) (bool, error) {

	logger := log.GetLogger()
	_, err := s.Collection.InsertOne(ctx, toDocument(profile))
	if mongo.IsDuplicateKeyError(err) {
		logger.Debug("Profile already exists: " + profile.ProfileId())
		return false, nil
	}
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert profile with Id: %s", profile.ProfileId())
		logger.Debug(errorMsg, log.Error(err))
		return false, serverError(errors2.ADD_PROFILE, errorMsg, errors.Wrap(err, "insert profile"))
	}
	logger.Info("Profile added successfully: " + profile.ProfileId())
	return true, nil
}

func (s *MongoProfileStore) GetProfile(ctx context.Context, profileId string) (*model.Profile, error) {

	logger := log.GetLogger()
	raw, err := s.Collection.FindOne(ctx, bson.M{"profile_id": profileId}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		logger.Debug(fmt.Sprintf("No profile found with the given Id: %s", profileId))
		return nil, nil
	}
	if err != nil {
		errorMsg := fmt.Sprintf("Failed fetching profile with Id: %s", profileId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, serverError(errors2.GET_PROFILE, errorMsg, errors.Wrap(err, "find profile"))
	}

	doc, err := decodeProfileDocument(raw)
	if err == nil {
		var profile *model.Profile
		if profile, err = fromDocument(doc); err == nil {
			return profile, nil
		}
	}
	errorMsg := fmt.Sprintf("Failed reading stored profile with Id: %s", profileId)
	logger.Debug(errorMsg, log.Error(err))
	return nil, serverError(errors2.STORED_CONSENT_CORRUPT, errorMsg, err)
}

func (s *MongoProfileStore) UpdateProfile(ctx context.Context, profile *model.Profile) error {

	logger := log.GetLogger()
	result, err := s.Collection.ReplaceOne(ctx, bson.M{"profile_id": profile.ProfileId()}, toDocument(profile))
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to update profile with Id: %s", profile.ProfileId())
		logger.Debug(errorMsg, log.Error(err))
		return serverError(errors2.UPDATE_PROFILE, errorMsg, errors.Wrap(err, "replace profile"))
	}
	if result.MatchedCount == 0 {
		return errors2.NotFound(errors2.PROFILE_NOT_FOUND,
			fmt.Sprintf("No profile found with the given Id: %s", profile.ProfileId()))
	}
	return nil
}

func (s *MongoProfileStore) DeleteProfile(ctx context.Context, profileId string) (bool, error) {

	result, err := s.Collection.DeleteOne(ctx, bson.M{"profile_id": profileId})
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to delete profile with Id: %s", profileId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return false, serverError(errors2.DELETE_PROFILE, errorMsg, errors.Wrap(err, "delete profile"))
	}
	return result.DeletedCount > 0, nil
}

func (s *MongoProfileStore) FindProfilesMergedInto(ctx context.Context, targetProfileId string) ([]string, error) {

	logger := log.GetLogger()
	findOptions := options.Find().
		SetProjection(bson.M{"profile_id": 1}).
		SetSort(bson.D{{Key: "profile_id", Value: 1}})
	cursor, err := s.Collection.Find(ctx, bson.M{"merged_with": targetProfileId}, findOptions)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch profiles merged into: %s", targetProfileId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, serverError(errors2.FILTER_PROFILES, errorMsg, errors.Wrap(err, "find merged profiles"))
	}
	defer cursor.Close(ctx)

	profileIds := []string{}
	for cursor.Next(ctx) {
		var row struct {
			ProfileId string `bson:"profile_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, serverError(errors2.FILTER_PROFILES, "Failed to decode merged profile", err)
		}
		profileIds = append(profileIds, row.ProfileId)
	}
	if err := cursor.Err(); err != nil {
		return nil, serverError(errors2.FILTER_PROFILES, "Failed to iterate merged profiles", err)
	}
	return profileIds, nil
}

// decodeProfileDocument decodes nested documents as maps rather than ordered bson.D values,
// so attribute bags come back in the same shape they were written.
func decodeProfileDocument(raw bson.Raw) (profileDocument, error) {
	var doc profileDocument
	decoder, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(raw))
	if err != nil {
		return doc, errors.Wrap(err, "create decoder")
	}
	decoder.DefaultDocumentM()
	if err := decoder.Decode(&doc); err != nil {
		return doc, errors.Wrap(err, "decode profile document")
	}
	return doc, nil
}
