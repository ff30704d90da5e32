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

package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/wso2/profile-consent-service/internal/system/log"
	"golang.org/x/sync/singleflight"
)

type CacheItem[V any] struct {
	Value      V
	Expiration time.Time
}

// Cache is a TTL cache. Values are stored as given, so callers cache immutable snapshots.
type Cache[V any] struct {
	items map[string]CacheItem[V]
	mutex sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group
	// generation changes on every Delete. Loads that started before a Delete do not
	// cache their result.
	generation uint64
}

// NewCache creates a new cache with a TTL (time-to-live)
func NewCache[V any](defaultTTL time.Duration) *Cache[V] {
	return &Cache[V]{
		items: make(map[string]CacheItem[V]),
		ttl:   defaultTTL,
		now:   time.Now,
	}
}

// Set adds an item to the cache
func (c *Cache[V]) Set(key string, value V) {

	log.GetLogger().Debug(fmt.Sprint("Setting cache for key: ", key))
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = CacheItem[V]{
		Value:      value,
		Expiration: c.now().Add(c.ttl),
	}
}

// Get retrieves an item from the cache
func (c *Cache[V]) Get(key string) (V, bool) {

	logger := log.GetLogger()
	c.mutex.RLock()
	item, found := c.items[key]
	c.mutex.RUnlock()

	var zero V
	if !found {
		logger.Debug(fmt.Sprint("Cache not found for key: ", key))
		return zero, false
	}
	if c.now().After(item.Expiration) {
		logger.Debug(fmt.Sprint("Cache expired for key: ", key))
		c.mutex.Lock()
		if current, ok := c.items[key]; ok && current.Expiration.Equal(item.Expiration) {
			delete(c.items, key)
		}
		c.mutex.Unlock()
		return zero, false
	}
	return item.Value, true
}

// Delete removes an item from the cache
func (c *Cache[V]) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
	c.generation++
	c.group.Forget(key)
}

// PurgeExpired drops every expired item and returns how many were dropped.
func (c *Cache[V]) PurgeExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	purged := 0
	for key, item := range c.items {
		if now.After(item.Expiration) {
			delete(c.items, key)
			purged++
		}
	}
	return purged
}

// GetOrLoad returns the cached value or runs load once for all concurrent callers missing
// the same key. Values are cached only when cacheable reports true for them.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error), cacheable func(V) bool) (V, error) {

	if value, ok := c.Get(key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mutex.RLock()
		startGeneration := c.generation
		c.mutex.RUnlock()

		value, err := load()
		if err != nil {
			return value, err
		}
		if cacheable == nil || cacheable(value) {
			c.mutex.Lock()
			if c.generation == startGeneration {
				c.items[key] = CacheItem[V]{Value: value, Expiration: c.now().Add(c.ttl)}
			}
			c.mutex.Unlock()
		}
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	value, _ := result.(V)
	return value, nil
}

// Len returns the number of entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}
