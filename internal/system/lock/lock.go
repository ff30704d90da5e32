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

package lock

import (
	"context"
	"hash/fnv"
	"sync"
)

// ProfileLocker serializes mutations per key. Lock blocks until the key is free or ctx
// is done. The returned unlock func is safe to call more than once.
type ProfileLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// ProfileLockKey namespaces a profile id for lockers shared with other key spaces.
func ProfileLockKey(profileId string) string {
	return "profile:" + profileId
}

// advisoryKey maps a string key onto the bigint space of postgres advisory locks.
func advisoryKey(key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64())
}

// once wraps release so repeated unlock calls are ignored.
func once(release func()) func() {
	var o sync.Once
	return func() {
		o.Do(release)
	}
}
