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
	"fmt"
	"reflect"
	"sort"
)

// AttributeKind enumerates the shapes an attribute value can take.
type AttributeKind int

const (
	KindNull AttributeKind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

func (k AttributeKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "null"
	}
}

// AttributeValue is a JSON-shaped value held in a profile attribute bag. The zero value is null.
type AttributeValue struct {
	kind    AttributeKind
	str     string
	num     float64
	boolean bool
	list    []AttributeValue
	fields  map[string]AttributeValue
}

func NullValue() AttributeValue {
	return AttributeValue{}
}

func StringValue(v string) AttributeValue {
	return AttributeValue{kind: KindString, str: v}
}

func NumberValue(v float64) AttributeValue {
	return AttributeValue{kind: KindNumber, num: v}
}

func BoolValue(v bool) AttributeValue {
	return AttributeValue{kind: KindBool, boolean: v}
}

func ListValue(items ...AttributeValue) AttributeValue {
	list := make([]AttributeValue, len(items))
	for i, item := range items {
		list[i] = item.Clone()
	}
	return AttributeValue{kind: KindList, list: list}
}

func MapValue(fields map[string]AttributeValue) AttributeValue {
	copied := make(map[string]AttributeValue, len(fields))
	for k, v := range fields {
		copied[k] = v.Clone()
	}
	return AttributeValue{kind: KindMap, fields: copied}
}

// AttributeValueOf converts a decoded JSON or BSON value into an AttributeValue.
func AttributeValueOf(raw interface{}) (AttributeValue, error) {
	switch v := raw.(type) {
	case nil:
		return NullValue(), nil
	case AttributeValue:
		return v.Clone(), nil
	case string:
		return StringValue(v), nil
	case bool:
		return BoolValue(v), nil
	case float64:
		return NumberValue(v), nil
	case float32:
		return NumberValue(float64(v)), nil
	case int:
		return NumberValue(float64(v)), nil
	case int32:
		return NumberValue(float64(v)), nil
	case int64:
		return NumberValue(float64(v)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return AttributeValue{}, fmt.Errorf("invalid number %q: %w", v, err)
		}
		return NumberValue(f), nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]AttributeValue, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := AttributeValueOf(rv.Index(i).Interface())
			if err != nil {
				return AttributeValue{}, err
			}
			items[i] = item
		}
		return AttributeValue{kind: KindList, list: items}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return AttributeValue{}, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		fields := make(map[string]AttributeValue, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			field, err := AttributeValueOf(iter.Value().Interface())
			if err != nil {
				return AttributeValue{}, err
			}
			fields[iter.Key().String()] = field
		}
		return AttributeValue{kind: KindMap, fields: fields}, nil
	}
	return AttributeValue{}, fmt.Errorf("unsupported attribute value type %T", raw)
}

func (v AttributeValue) Kind() AttributeKind {
	return v.kind
}

func (v AttributeValue) IsNull() bool {
	return v.kind == KindNull
}

func (v AttributeValue) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

func (v AttributeValue) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

func (v AttributeValue) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

func (v AttributeValue) AsList() ([]AttributeValue, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return ListValue(v.list...).list, true
}

func (v AttributeValue) AsMap() (map[string]AttributeValue, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return MapValue(v.fields).fields, true
}

// Interface converts the value back to plain Go types as produced by encoding/json.
func (v AttributeValue) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.boolean
	case KindList:
		items := make([]interface{}, len(v.list))
		for i, item := range v.list {
			items[i] = item.Interface()
		}
		return items
	case KindMap:
		fields := make(map[string]interface{}, len(v.fields))
		for k, field := range v.fields {
			fields[k] = field.Interface()
		}
		return fields
	default:
		return nil
	}
}

func (v AttributeValue) Clone() AttributeValue {
	switch v.kind {
	case KindList:
		return ListValue(v.list...)
	case KindMap:
		return MapValue(v.fields)
	default:
		return v
	}
}

func (v AttributeValue) Equal(other AttributeValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.boolean == other.boolean
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for k, field := range v.fields {
			otherField, ok := other.fields[k]
			if !ok || !field.Equal(otherField) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (v AttributeValue) String() string {
	return fmt.Sprintf("%v", v.Interface())
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := AttributeValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// AttributeBag maps attribute names to values. Profiles use it for properties and system
// properties.
type AttributeBag map[string]AttributeValue

// AttributeBagOf converts a decoded JSON or BSON object into a bag.
func AttributeBagOf(raw map[string]interface{}) (AttributeBag, error) {
	bag := make(AttributeBag, len(raw))
	for k, v := range raw {
		value, err := AttributeValueOf(v)
		if err != nil {
			return nil, fmt.Errorf("attribute '%s': %w", k, err)
		}
		bag[k] = value
	}
	return bag, nil
}

// ToMap converts the bag to plain Go values.
func (b AttributeBag) ToMap() map[string]interface{} {
	raw := make(map[string]interface{}, len(b))
	for k, v := range b {
		raw[k] = v.Interface()
	}
	return raw
}

func (b AttributeBag) Clone() AttributeBag {
	clone := make(AttributeBag, len(b))
	for k, v := range b {
		clone[k] = v.Clone()
	}
	return clone
}

// Keys returns the attribute names sorted.
func (b AttributeBag) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
