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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyProfile_Defaults(t *testing.T) {
	profile := NewEmptyProfile()

	assert.Equal(t, "", profile.ProfileId())
	assert.Empty(t, profile.Properties())
	assert.Empty(t, profile.SystemProperties())
	assert.NotNil(t, profile.Segments())
	assert.Empty(t, profile.Segments())
	_, computed := profile.Scores()
	assert.False(t, computed, "scores are absent until computed")
	_, merged := profile.MergedWith()
	assert.False(t, merged)
	assert.Equal(t, 0, profile.ConsentCount())
	assert.False(t, profile.IsAnonymousProfile())
}

func TestProfile_ZeroValueIsUsable(t *testing.T) {
	var profile Profile

	assert.Empty(t, profile.Properties())
	assert.Empty(t, profile.Segments())
	assert.Equal(t, 0, profile.ConsentCount())
	assert.False(t, profile.IsAnonymousProfile())

	profile.SetProperty("email", StringValue("a@example.com"))
	profile.SetSystemProperty(AnonymousProfileProperty, BoolValue(true))
	assert.True(t, profile.IsAnonymousProfile())

	assert.False(t, profile.SetConsent(RevokeConsent("newsletter")))
	assert.True(t, profile.SetConsent(GrantConsent(NewConsentRecord("newsletter", DispositionGrant,
		date(t, "2020-01-01"), nil))))
	_, ok := profile.Consent("newsletter")
	assert.True(t, ok)

	clone := profile.Clone()
	assert.Equal(t, 1, clone.ConsentCount())
	_, ok = clone.GetProperty("email")
	assert.True(t, ok)
}

func TestProfile_ScopeIsSystemScope(t *testing.T) {
	assert.Equal(t, SystemScope, NewProfile("p1").Scope())
	assert.Equal(t, SystemScope, NewEmptyProfile().Scope())
	assert.Equal(t, ProfileItemType, NewProfile("p1").ItemType())
}

func TestProfile_Properties(t *testing.T) {
	profile := NewProfile("p1")
	_, ok := profile.GetProperty("email")
	assert.False(t, ok)

	profile.SetProperty("email", StringValue("a@example.com"))
	value, ok := profile.GetProperty("email")
	require.True(t, ok)
	email, isString := value.AsString()
	assert.True(t, isString)
	assert.Equal(t, "a@example.com", email)

	profile.SetProperty("nickname", NullValue())
	value, ok = profile.GetProperty("nickname")
	assert.True(t, ok, "a null value is still present")
	assert.True(t, value.IsNull())

	profile.RemoveProperty("email")
	_, ok = profile.GetProperty("email")
	assert.False(t, ok)
}

func TestProfile_IsAnonymousProfile(t *testing.T) {
	tests := []struct {
		name     string
		value    *AttributeValue
		expected bool
	}{
		{"absent", nil, false},
		{"boolean true", ptr(BoolValue(true)), true},
		{"boolean false", ptr(BoolValue(false)), false},
		{"string true", ptr(StringValue("true")), false},
		{"number one", ptr(NumberValue(1)), false},
		{"null", ptr(NullValue()), false},
		{"list of true", ptr(ListValue(BoolValue(true))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := NewProfile("p1")
			if tt.value != nil {
				profile.SetSystemProperty(AnonymousProfileProperty, *tt.value)
			}
			assert.Equal(t, tt.expected, profile.IsAnonymousProfile())
		})
	}
}

func TestProfile_IsAnonymousProfileIsRecomputed(t *testing.T) {
	profile := NewProfile("p1")
	profile.SetSystemProperty(AnonymousProfileProperty, BoolValue(true))
	assert.True(t, profile.IsAnonymousProfile())

	profile.SetSystemProperty(AnonymousProfileProperty, BoolValue(false))
	assert.False(t, profile.IsAnonymousProfile())
}

func TestProfile_SetConsentDelegatesToLedger(t *testing.T) {
	profile := NewProfile("p1")

	assert.False(t, profile.SetConsent(RevokeConsent("newsletter")))
	assert.True(t, profile.SetConsent(GrantConsent(NewConsentRecord("newsletter", DispositionGrant,
		date(t, "2020-01-01"), nil))))
	assert.Equal(t, 1, profile.ConsentCount())
	assert.True(t, profile.SetConsent(RevokeConsent("newsletter")))
	_, ok := profile.Consent("newsletter")
	assert.False(t, ok)
}

func TestProfile_MergedWithDoesNotBlockMutation(t *testing.T) {
	profile := NewProfile("anonymous-1")
	profile.SetMergedWith("known-1")

	target, ok := profile.MergedWith()
	require.True(t, ok)
	assert.Equal(t, "known-1", target)

	assert.True(t, profile.SetConsent(GrantConsent(NewConsentRecord("newsletter", DispositionGrant, nil, nil))))
	profile.SetProperty("city", StringValue("Colombo"))
	_, ok = profile.GetProperty("city")
	assert.True(t, ok)

	profile.ClearMergedWith()
	_, ok = profile.MergedWith()
	assert.False(t, ok)
}

func TestProfile_SegmentsAndScores(t *testing.T) {
	profile := NewProfile("p1")
	profile.SetSegments([]string{"vip", "active", "vip"})
	assert.Equal(t, []string{"active", "vip"}, profile.Segments())
	assert.True(t, profile.InSegment("vip"))

	profile.SetSegments(nil)
	assert.Empty(t, profile.Segments())

	profile.SetScores(map[string]int{})
	scores, computed := profile.Scores()
	assert.True(t, computed, "empty scores are computed scores")
	assert.Empty(t, scores)

	profile.SetScores(map[string]int{"engagement": 7})
	scores, _ = profile.Scores()
	scores["engagement"] = 100
	stored, _ := profile.Scores()
	assert.Equal(t, 7, stored["engagement"], "callers get copies")

	profile.SetScores(nil)
	_, computed = profile.Scores()
	assert.False(t, computed)
}

func TestProfile_CloneIsDeep(t *testing.T) {
	profile := NewProfile("p1")
	profile.SetProperty("tags", ListValue(StringValue("a")))
	profile.SetSegments([]string{"vip"})
	profile.SetScores(map[string]int{"s": 1})
	profile.SetMergedWith("p2")
	profile.SetConsent(GrantConsent(NewConsentRecord("newsletter", DispositionGrant, nil, nil)))

	clone := profile.Clone()
	clone.SetProperty("tags", StringValue("b"))
	clone.SetSegments(nil)
	clone.SetScores(nil)
	clone.SetMergedWith("p3")
	clone.SetConsent(RevokeConsent("newsletter"))

	tags, _ := profile.GetProperty("tags")
	assert.Equal(t, KindList, tags.Kind())
	assert.Equal(t, []string{"vip"}, profile.Segments())
	_, computed := profile.Scores()
	assert.True(t, computed)
	target, _ := profile.MergedWith()
	assert.Equal(t, "p2", target)
	assert.Equal(t, 1, profile.ConsentCount())
}

func TestAttributeValueOf(t *testing.T) {
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "alice", "age": 30, "vip": true, "nothing": null,
		"tags": ["a", 1], "address": {"city": "Colombo"}
	}`), &decoded))

	bag, err := AttributeBagOf(decoded)
	require.NoError(t, err)

	assert.Equal(t, KindString, bag["name"].Kind())
	age, ok := bag["age"].AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 30.0, age)
	assert.Equal(t, KindBool, bag["vip"].Kind())
	assert.True(t, bag["nothing"].IsNull())
	tags, ok := bag["tags"].AsList()
	require.True(t, ok)
	assert.Len(t, tags, 2)
	address, ok := bag["address"].AsMap()
	require.True(t, ok)
	assert.Equal(t, StringValue("Colombo"), address["city"])

	assert.Equal(t, decoded, bag.ToMap())

	_, err = AttributeValueOf(struct{}{})
	assert.Error(t, err)
	_, err = AttributeValueOf(map[int]string{1: "a"})
	assert.Error(t, err)
}

type namedMap map[string]interface{}
type namedList []interface{}

func TestAttributeValueOf_NamedCollections(t *testing.T) {
	value, err := AttributeValueOf(namedMap{"items": namedList{"x", true}})
	require.NoError(t, err)
	fields, ok := value.AsMap()
	require.True(t, ok)
	items, ok := fields["items"].AsList()
	require.True(t, ok)
	assert.True(t, items[1].Equal(BoolValue(true)))
}

func TestAttributeBag_JSON(t *testing.T) {
	bag := AttributeBag{
		"isAnonymousProfile": BoolValue(true),
		"visits":             NumberValue(3),
		"meta":               MapValue(map[string]AttributeValue{"k": ListValue(NullValue())}),
	}
	data, err := json.Marshal(bag)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isAnonymousProfile":true,"visits":3,"meta":{"k":[null]}}`, string(data))

	var restored AttributeBag
	require.NoError(t, json.Unmarshal(data, &restored))
	for k, v := range bag {
		assert.True(t, v.Equal(restored[k]), "attribute %s", k)
	}
	assert.Equal(t, []string{"isAnonymousProfile", "meta", "visits"}, restored.Keys())
}

func ptr(v AttributeValue) *AttributeValue {
	return &v
}
