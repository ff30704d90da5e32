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
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetDelete(t *testing.T) {
	c := NewCache[string](time.Minute)
	c.Set("k", "v")

	value, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", value)

	c.Delete("k")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache[int](time.Second)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.Set("k", 1)

	now = now.Add(500 * time.Millisecond)
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entries are evicted on read")
}

func TestCache_GetOrLoadCollapsesConcurrentMisses(t *testing.T) {
	c := NewCache[string](time.Minute)
	var loads int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := c.GetOrLoad("k", func() (string, error) {
				atomic.AddInt32(&loads, 1)
				<-release
				return "loaded", nil
			}, nil)
			assert.NoError(t, err)
			results[i] = value
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	for _, value := range results {
		assert.Equal(t, "loaded", value)
	}
	value, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "loaded", value)
}

func TestCache_GetOrLoadSkipsUncacheable(t *testing.T) {
	c := NewCache[*string](time.Minute)
	value, err := c.GetOrLoad("missing", func() (*string, error) { return nil, nil },
		func(v *string) bool { return v != nil })
	require.NoError(t, err)
	assert.Nil(t, value)
	assert.Equal(t, 0, c.Len())
}

func TestCache_GetOrLoadError(t *testing.T) {
	c := NewCache[string](time.Minute)
	_, err := c.GetOrLoad("k", func() (string, error) { return "", errors.New("boom") }, nil)
	require.EqualError(t, err, "boom")
	assert.Equal(t, 0, c.Len())
}

func TestCache_DeleteDuringLoadDiscardsResult(t *testing.T) {
	c := NewCache[string](time.Minute)
	value, err := c.GetOrLoad("k", func() (string, error) {
		c.Delete("k")
		return "stale", nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "stale", value)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_PurgeExpired(t *testing.T) {
	c := NewCache[string](time.Second)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("old", "a")
	now = now.Add(800 * time.Millisecond)
	c.Set("new", "b")
	now = now.Add(400 * time.Millisecond)

	assert.Equal(t, 1, c.PurgeExpired())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("new")
	assert.True(t, ok)
	assert.Equal(t, 0, c.PurgeExpired())
}
