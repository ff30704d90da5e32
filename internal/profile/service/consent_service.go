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
	"time"

	"github.com/wso2/profile-consent-service/internal/profile/model"
	errors2 "github.com/wso2/profile-consent-service/internal/system/errors"
	"github.com/wso2/profile-consent-service/internal/system/log"
	"github.com/wso2/profile-consent-service/internal/system/metrics"
)

const unknownCommandKind = "UNKNOWN"

// ConsentServiceInterface defines the service interface for the consent ledger of a profile.
type ConsentServiceInterface interface {
	ApplyConsent(ctx context.Context, profileId string, cmd model.ConsentCommand) (bool, error)
	ApplyConsentMap(ctx context.Context, profileId string, consentMap map[string]interface{}) (bool, error)
	GetConsents(ctx context.Context, profileId string) ([]model.ConsentRecord, error)
	GetConsent(ctx context.Context, profileId, typeIdentifier string) (model.ConsentRecord, error)
	IsConsentValid(ctx context.Context, profileId, typeIdentifier string, at time.Time) (bool, error)
	IsConsentValidNow(ctx context.Context, profileId, typeIdentifier string) (bool, error)
}

// ConsentService is the default implementation.
type ConsentService struct {
	access     *ProfileAccess
	metrics    *metrics.Metrics
	dateFormat model.DateFormat
	now        func() time.Time
}

func NewConsentService(access *ProfileAccess, consentMetrics *metrics.Metrics) ConsentServiceInterface {
	return &ConsentService{
		access:     access,
		metrics:    consentMetrics,
		dateFormat: model.ISO8601DateFormat{},
		now:        time.Now,
	}
}

// ApplyConsent applies one consent command to the profile ledger. It returns false when a
// revoke found nothing to remove.
func (cs *ConsentService) ApplyConsent(ctx context.Context, profileId string, cmd model.ConsentCommand) (bool, error) {

	start := time.Now()
	defer func() {
		cs.metrics.ObserveApplyLatency(time.Since(start))
	}()

	kind := string(cmd.Kind())
	if cmd.TypeIdentifier() == "" {
		cs.metrics.IncrementCommand(kind, metrics.OutcomeRejected)
		return false, errors2.BadRequest(errors2.CONSENT_FORMAT, "typeIdentifier is required.")
	}

	var applied bool
	_, err := cs.access.mutate(ctx, profileId, func(profile *model.Profile) (bool, error) {
		applied = profile.SetConsent(cmd)
		return applied, nil
	})
	if err != nil {
		cs.metrics.IncrementCommand(kind, metrics.OutcomeRejected)
		return false, err
	}

	if !applied {
		cs.metrics.IncrementCommand(kind, metrics.OutcomeNoop)
		log.GetLogger().Debug(fmt.Sprintf("No consent of type %s to revoke on profile %s",
			cmd.TypeIdentifier(), profileId), log.TraceID(ctx))
		return false, nil
	}
	cs.metrics.IncrementCommand(kind, metrics.OutcomeApplied)
	audit(ctx, auditAction(cmd.Kind()), profileId, log.TargetTypeConsent, map[string]interface{}{
		"type_identifier": cmd.TypeIdentifier(),
	})
	return true, nil
}

// ApplyConsentMap parses the generic consent map and applies the resulting command.
func (cs *ConsentService) ApplyConsentMap(ctx context.Context, profileId string,
	consentMap map[string]interface{}) (bool, error) {

	cmd, err := model.ConsentCommandFromMap(consentMap, cs.dateFormat)
	if err != nil {
		cs.metrics.IncrementCommand(unknownCommandKind, metrics.OutcomeRejected)
		log.GetLogger().Debug("Rejected consent map", log.Error(err), log.TraceID(ctx))
		return false, errors2.BadRequest(errors2.CONSENT_FORMAT, err.Error())
	}
	return cs.ApplyConsent(ctx, profileId, cmd)
}

// GetConsents returns the consents of the profile in insertion order.
func (cs *ConsentService) GetConsents(ctx context.Context, profileId string) ([]model.ConsentRecord, error) {

	profile, err := cs.access.current(ctx, profileId)
	if err != nil {
		return nil, err
	}
	return profile.Consents(), nil
}

func (cs *ConsentService) GetConsent(ctx context.Context, profileId, typeIdentifier string) (model.ConsentRecord, error) {

	profile, err := cs.access.current(ctx, profileId)
	if err != nil {
		return model.ConsentRecord{}, err
	}
	record, ok := profile.Consent(typeIdentifier)
	if !ok {
		return model.ConsentRecord{}, errors2.NotFound(errors2.CONSENT_NOT_FOUND,
			fmt.Sprintf("Profile %s has no consent of type %s.", profileId, typeIdentifier))
	}
	return record, nil
}

// IsConsentValid reports whether the consent of the given type is in force at the given
// instant. A profile without such a consent has no valid consent.
func (cs *ConsentService) IsConsentValid(ctx context.Context, profileId, typeIdentifier string,
	at time.Time) (bool, error) {

	profile, err := cs.access.current(ctx, profileId)
	if err != nil {
		return false, err
	}
	record, ok := profile.Consent(typeIdentifier)
	if !ok {
		return false, nil
	}
	valid, err := record.IsValidAt(at)
	if err != nil {
		return false, errors2.NewClientError(errors2.CONSENT_INVALID_STATE.WithDescription(err.Error()),
			http.StatusUnprocessableEntity)
	}
	return valid, nil
}

func (cs *ConsentService) IsConsentValidNow(ctx context.Context, profileId, typeIdentifier string) (bool, error) {

	return cs.IsConsentValid(ctx, profileId, typeIdentifier, cs.now())
}

func auditAction(kind model.CommandKind) string {
	switch kind {
	case model.CommandGrant:
		return log.ActionGrantConsent
	case model.CommandDeny:
		return log.ActionDenyConsent
	default:
		return log.ActionRevokeConsent
	}
}
