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

package model

import (
	"fmt"
	"sort"
)

const (
	// ProfileItemType identifies profiles among the other items of the platform.
	ProfileItemType = "profile"

	// SystemScope is the scope shared by every observation context. Profiles always live in it
	// so data collected under one scope stays visible to all of them.
	SystemScope = "systemscope"

	// AnonymousProfileProperty is the system property flagging a not yet identified profile.
	AnonymousProfileProperty = "isAnonymousProfile"
)

// Profile is the aggregate holding a user's attributes, segment and score caches, merge
// marker and consent ledger. The zero value is an empty profile without an identifier.
// A Profile is not safe for concurrent mutation; callers serialize writers per profile id.
type Profile struct {
	profileId        string
	properties       AttributeBag
	systemProperties AttributeBag
	segments         map[string]struct{}
	scores           map[string]int
	mergedWith       *string
	consents         ConsentLedger
}

// NewEmptyProfile returns a profile without an identifier and with every collection initialized.
func NewEmptyProfile() *Profile {
	return NewProfile("")
}

// NewProfile returns an empty profile with the given identifier.
func NewProfile(profileId string) *Profile {
	return &Profile{
		profileId:        profileId,
		properties:       AttributeBag{},
		systemProperties: AttributeBag{},
		segments:         map[string]struct{}{},
		consents:         *NewConsentLedger(),
	}
}

func (p *Profile) ProfileId() string {
	return p.profileId
}

func (p *Profile) ItemType() string {
	return ProfileItemType
}

// Scope is always SystemScope for profiles.
func (p *Profile) Scope() string {
	return SystemScope
}

func (p *Profile) SetProperty(name string, value AttributeValue) {
	if p.properties == nil {
		p.properties = AttributeBag{}
	}
	p.properties[name] = value.Clone()
}

// GetProperty returns the property value, ok is false when the property is not set.
func (p *Profile) GetProperty(name string) (AttributeValue, bool) {
	value, ok := p.properties[name]
	if !ok {
		return AttributeValue{}, false
	}
	return value.Clone(), true
}

func (p *Profile) RemoveProperty(name string) {
	delete(p.properties, name)
}

func (p *Profile) Properties() AttributeBag {
	return p.properties.Clone()
}

func (p *Profile) SetProperties(properties AttributeBag) {
	p.properties = bagOrEmpty(properties)
}

func (p *Profile) SetSystemProperty(name string, value AttributeValue) {
	if p.systemProperties == nil {
		p.systemProperties = AttributeBag{}
	}
	p.systemProperties[name] = value.Clone()
}

func (p *Profile) GetSystemProperty(name string) (AttributeValue, bool) {
	value, ok := p.systemProperties[name]
	if !ok {
		return AttributeValue{}, false
	}
	return value.Clone(), true
}

func (p *Profile) SystemProperties() AttributeBag {
	return p.systemProperties.Clone()
}

func (p *Profile) SetSystemProperties(systemProperties AttributeBag) {
	p.systemProperties = bagOrEmpty(systemProperties)
}

// IsAnonymousProfile reports whether the anonymous system property is the boolean true.
// A missing property and a property of any other kind both read as false.
func (p *Profile) IsAnonymousProfile() bool {
	value, ok := p.systemProperties[AnonymousProfileProperty]
	if !ok {
		return false
	}
	anonymous, isBool := value.AsBool()
	return isBool && anonymous
}

// Segments returns the segment ids sorted.
func (p *Profile) Segments() []string {
	segments := make([]string, 0, len(p.segments))
	for segment := range p.segments {
		segments = append(segments, segment)
	}
	sort.Strings(segments)
	return segments
}

func (p *Profile) InSegment(segmentId string) bool {
	_, ok := p.segments[segmentId]
	return ok
}

// SetSegments replaces the segment set wholesale.
func (p *Profile) SetSegments(segmentIds []string) {
	p.segments = make(map[string]struct{}, len(segmentIds))
	for _, segmentId := range segmentIds {
		p.segments[segmentId] = struct{}{}
	}
}

// Scores returns a copy of the scores. ok is false when scores were never computed, which
// differs from an empty score map.
func (p *Profile) Scores() (map[string]int, bool) {
	if p.scores == nil {
		return nil, false
	}
	scores := make(map[string]int, len(p.scores))
	for k, v := range p.scores {
		scores[k] = v
	}
	return scores, true
}

// SetScores replaces the scores wholesale. A nil map marks the scores as not computed.
func (p *Profile) SetScores(scores map[string]int) {
	if scores == nil {
		p.scores = nil
		return
	}
	p.scores = make(map[string]int, len(scores))
	for k, v := range scores {
		p.scores[k] = v
	}
}

// MergedWith returns the id of the profile this one was merged into, if any.
func (p *Profile) MergedWith() (string, bool) {
	if p.mergedWith == nil {
		return "", false
	}
	return *p.mergedWith, true
}

// SetMergedWith records the merge marker. It does not move any data and does not stop
// further mutation of this profile.
func (p *Profile) SetMergedWith(targetProfileId string) {
	p.mergedWith = &targetProfileId
}

func (p *Profile) ClearMergedWith() {
	p.mergedWith = nil
}

// SetConsent applies cmd to the consent ledger and returns the ledger's result.
func (p *Profile) SetConsent(cmd ConsentCommand) bool {
	return p.consents.Apply(cmd)
}

func (p *Profile) Consent(typeIdentifier string) (ConsentRecord, bool) {
	return p.consents.Get(typeIdentifier)
}

// Consents returns the stored records in ledger order.
func (p *Profile) Consents() []ConsentRecord {
	return p.consents.Records()
}

func (p *Profile) ConsentCount() int {
	return p.consents.Len()
}

// Clone returns a deep copy sharing no state with p.
func (p *Profile) Clone() *Profile {
	clone := &Profile{
		profileId:        p.profileId,
		properties:       p.properties.Clone(),
		systemProperties: p.systemProperties.Clone(),
		segments:         make(map[string]struct{}, len(p.segments)),
		consents:         *p.consents.Clone(),
	}
	for segment := range p.segments {
		clone.segments[segment] = struct{}{}
	}
	clone.scores, _ = p.Scores()
	if p.mergedWith != nil {
		target := *p.mergedWith
		clone.mergedWith = &target
	}
	return clone
}

// RestoreConsents replaces the ledger, used by stores when loading a profile.
func (p *Profile) RestoreConsents(ledger *ConsentLedger) {
	if ledger == nil {
		ledger = NewConsentLedger()
	}
	p.consents = *ledger.Clone()
}

// ConsentLedger returns a copy of the ledger.
func (p *Profile) ConsentLedger() *ConsentLedger {
	return p.consents.Clone()
}

func (p *Profile) String() string {
	mergedWith := "null"
	if p.mergedWith != nil {
		mergedWith = "'" + *p.mergedWith + "'"
	}
	scores, _ := p.Scores()
	return fmt.Sprintf("Profile{properties=%v, systemProperties=%v, segments=%v, scores=%v, mergedWith=%s, "+
		"consents=%v, itemId='%s', itemType='%s', scope='%s'}",
		p.properties.ToMap(), p.systemProperties.ToMap(), p.Segments(), scores, mergedWith,
		p.consents.Records(), p.profileId, ProfileItemType, SystemScope)
}

func bagOrEmpty(bag AttributeBag) AttributeBag {
	if bag == nil {
		return AttributeBag{}
	}
	return bag.Clone()
}
