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
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/profile-consent-service/internal/system/database/provider"
	"github.com/wso2/profile-consent-service/internal/system/database/scripts"
	"github.com/wso2/profile-consent-service/internal/system/log"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	os.Exit(m.Run())
}

// advisoryServer mimics the advisory lock functions of a postgres server.
type advisoryServer struct {
	mu             sync.Mutex
	held           map[int64]bool
	failedAttempts int
}

func (s *advisoryServer) failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failedAttempts
}

func (s *advisoryServer) heldCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.held)
}

type advisoryConnector struct {
	server *advisoryServer
}

func (c *advisoryConnector) Connect(context.Context) (driver.Conn, error) {
	return &advisoryConn{server: c.server}, nil
}

func (c *advisoryConnector) Driver() driver.Driver {
	return advisoryDriver{}
}

type advisoryDriver struct{}

func (advisoryDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open through the connector")
}

type advisoryConn struct {
	server *advisoryServer
}

func (c *advisoryConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not supported")
}

func (c *advisoryConn) Close() error {
	return nil
}

func (c *advisoryConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions are not supported")
}

func (c *advisoryConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	lockID, ok := args[0].Value.(int64)
	if !ok {
		return nil, fmt.Errorf("unexpected lock id %v", args[0].Value)
	}

	s := c.server
	s.mu.Lock()
	defer s.mu.Unlock()
	switch query {
	case scripts.TryAdvisoryLock["postgres"]:
		if s.held[lockID] {
			s.failedAttempts++
			return &boolRows{value: false}, nil
		}
		s.held[lockID] = true
		return &boolRows{value: true}, nil
	case scripts.AdvisoryUnlock["postgres"]:
		wasHeld := s.held[lockID]
		delete(s.held, lockID)
		return &boolRows{value: wasHeld}, nil
	}
	return nil, fmt.Errorf("unexpected query %q", query)
}

type boolRows struct {
	value bool
	read  bool
}

func (r *boolRows) Columns() []string {
	return []string{"result"}
}

func (r *boolRows) Close() error {
	return nil
}

func (r *boolRows) Next(dest []driver.Value) error {
	if r.read {
		return io.EOF
	}
	r.read = true
	dest[0] = r.value
	return nil
}

func newTestPostgresLocker(t *testing.T, maxOpenConns int) (*PostgresLocker, *advisoryServer) {
	server := &advisoryServer{held: map[int64]bool{}}
	db := sql.OpenDB(&advisoryConnector{server: server})
	db.SetMaxOpenConns(maxOpenConns)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresLocker(provider.NewLockDBProviderWithDB(db), 5*time.Millisecond), server
}

func TestPostgresLocker_WaitersDoNotPinConnections(t *testing.T) {
	locker, server := newTestPostgresLocker(t, 2)

	unlockA, err := locker.Lock(context.Background(), "a")
	require.NoError(t, err)

	type result struct {
		unlock func()
		err    error
	}
	waiter := make(chan result, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		unlock, err := locker.Lock(ctx, "a")
		waiter <- result{unlock: unlock, err: err}
	}()
	assert.Eventually(t, func() bool { return server.failures() >= 2 }, 2*time.Second, 5*time.Millisecond)

	// One connection is held by "a"; the waiter must leave the other free between attempts.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := locker.Lock(ctx, "b")
	require.NoError(t, err)

	select {
	case <-waiter:
		t.Fatal("waiter acquired a held lock")
	default:
	}

	unlockA()
	select {
	case r := <-waiter:
		require.NoError(t, r.err)
		r.unlock()
	case <-time.After(2 * time.Second):
		t.Fatal("waiter did not acquire the released lock")
	}
	unlockB()
	assert.Equal(t, 0, server.heldCount())
}

func TestPostgresLocker_WaitHonoursContext(t *testing.T) {
	locker, server := newTestPostgresLocker(t, 4)

	unlock, err := locker.Lock(context.Background(), "p-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "p-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	assert.Equal(t, 0, server.heldCount())

	unlock, err = locker.Lock(context.Background(), "p-1")
	require.NoError(t, err)
	unlock()
}

func TestLockers_ImplementProfileLocker(t *testing.T) {
	locker, _ := newTestPostgresLocker(t, 1)
	lockers := []ProfileLocker{NewKeyedMutex(), locker, NewRedisLocker(nil, time.Second, time.Millisecond)}

	unlock, err := lockers[0].Lock(context.Background(), "p-1")
	require.NoError(t, err)
	unlock()
	assert.Len(t, lockers, 3)
}
