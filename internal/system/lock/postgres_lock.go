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
	"fmt"
	"time"

	"github.com/wso2/profile-consent-service/internal/system/database/client"
	"github.com/wso2/profile-consent-service/internal/system/database/provider"
	"github.com/wso2/profile-consent-service/internal/system/database/scripts"
	"github.com/wso2/profile-consent-service/internal/system/errors"
	"github.com/wso2/profile-consent-service/internal/system/log"
)

// PostgresLocker implements ProfileLocker using PostgreSQL session advisory locks. Each held
// lock pins one connection of the locker's pool until it is released; waiters hand their
// connection back between attempts.
type PostgresLocker struct {
	dbProvider    provider.DBProviderInterface
	retryInterval time.Duration
}

// NewPostgresLocker expects a provider with a pool of its own, such as provider.LockDBProvider.
// Sharing the profile store's pool lets lock holders starve the store of connections.
func NewPostgresLocker(dbProvider provider.DBProviderInterface, retryInterval time.Duration) *PostgresLocker {
	return &PostgresLocker{dbProvider: dbProvider, retryInterval: retryInterval}
}

func (l *PostgresLocker) Lock(ctx context.Context, key string) (func(), error) {

	logger := log.GetLogger()
	dbClient, err := l.dbProvider.GetDBClient()
	if err != nil {
		errorMsg := "Failed during DB client creation for advisory lock acquiring."
		logger.Error(errorMsg, log.Error(err))
		return nil, errors.NewServerError(errors.DB_CLIENT_INIT.WithDescription(errorMsg), err)
	}

	lockID := advisoryKey(key)
	logger.Debug(fmt.Sprintf("Generated lock Id: %d for key: %s", lockID, key))

	for {
		conn, acquired, err := l.tryLock(ctx, dbClient, key, lockID)
		if err != nil {
			return nil, err
		}
		if acquired {
			return once(func() { l.release(conn, key, lockID) }), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}
}

// tryLock makes one pg_try_advisory_lock attempt. The connection is kept only when the lock
// was taken.
func (l *PostgresLocker) tryLock(ctx context.Context, dbClient client.DBClientInterface, key string,
	lockID int64) (*sql.Conn, bool, error) {

	logger := log.GetLogger()
	conn, err := dbClient.Conn(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		errorMsg := "Failed to reserve a connection for advisory lock acquiring."
		logger.Error(errorMsg, log.Error(err))
		return nil, false, errors.NewServerError(errors.LOCK_ACQUIRE.WithDescription(errorMsg), err)
	}

	var acquired bool
	err = conn.QueryRowContext(ctx, scripts.TryAdvisoryLock["postgres"], lockID).Scan(&acquired)
	if err != nil {
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		errorMsg := fmt.Sprintf("Failed to execute pg_try_advisory_lock for key: %s", key)
		logger.Error(errorMsg, log.Error(err))
		return nil, false, errors.NewServerError(errors.LOCK_ACQUIRE.WithDescription(errorMsg), err)
	}
	if !acquired {
		_ = conn.Close()
		return nil, false, nil
	}
	return conn, true, nil
}

func (l *PostgresLocker) release(conn *sql.Conn, key string, lockID int64) {

	logger := log.GetLogger()
	var released bool
	err := conn.QueryRowContext(context.Background(), scripts.AdvisoryUnlock["postgres"], lockID).Scan(&released)
	if err != nil || !released {
		logger.Error(fmt.Sprintf("pg_advisory_unlock failed for key: %s", key), log.Error(err))
		// Dropping the session releases every advisory lock it holds.
		_ = conn.Raw(func(interface{}) error { return driver.ErrBadConn })
	} else {
		logger.Debug(fmt.Sprintf("Advisory lock released for lock id: %d", lockID))
	}
	_ = conn.Close()
}
