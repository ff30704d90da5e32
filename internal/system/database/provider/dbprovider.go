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

package provider

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/wso2/profile-consent-service/internal/system/config"
	"github.com/wso2/profile-consent-service/internal/system/database/client"
)

// DBConfig represents the local database configuration.
type DBConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient() (client.DBClientInterface, error)
}

// DBProvider is the implementation of DBProviderInterface. The pool is opened once and
// shared by every client it hands out.
type DBProvider struct{}

var (
	pool   *sql.DB
	poolMu sync.Mutex
)

// NewDBProvider creates a new instance of DBProvider.
func NewDBProvider() DBProviderInterface {

	return &DBProvider{}
}

// GetDBClient returns a client over the shared pool, opening it on first use.
func (d *DBProvider) GetDBClient() (client.DBClientInterface, error) {

	poolMu.Lock()
	defer poolMu.Unlock()
	if pool != nil {
		return client.NewDBClient(pool), nil
	}

	runtimeConfig := config.GetCDSRuntime().Config
	db, err := openPool(runtimeConfig, runtimeConfig.DataSource.MaxOpenConns)
	if err != nil {
		return nil, err
	}
	pool = db
	return client.NewDBClient(pool), nil
}

// LockDBProvider owns a pool of its own for session advisory locks. Every held lock pins
// one of its connections, so lock holders never take connections from the shared pool the
// profile store reads and writes through.
type LockDBProvider struct {
	mu           sync.Mutex
	db           *sql.DB
	maxOpenConns int
}

// NewLockDBProvider returns a provider whose pool is opened on first use and capped at
// maxOpenConns connections.
func NewLockDBProvider(maxOpenConns int) *LockDBProvider {

	return &LockDBProvider{maxOpenConns: maxOpenConns}
}

// NewLockDBProviderWithDB wraps an already opened pool.
func NewLockDBProviderWithDB(db *sql.DB) *LockDBProvider {

	return &LockDBProvider{db: db}
}

func (d *LockDBProvider) GetDBClient() (client.DBClientInterface, error) {

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db != nil {
		return client.NewDBClient(d.db), nil
	}

	db, err := openPool(config.GetCDSRuntime().Config, d.maxOpenConns)
	if err != nil {
		return nil, err
	}
	d.db = db
	return client.NewDBClient(d.db), nil
}

// Close releases the lock pool. Advisory locks still held are released with their sessions.
func (d *LockDBProvider) Close() error {

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

func openPool(cfg config.Config, maxOpenConns int) (*sql.DB, error) {

	dbConfig := getDBConfig(cfg)
	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// SetTestDB installs an already opened pool, used by integration tests.
func SetTestDB(db *sql.DB) {

	poolMu.Lock()
	defer poolMu.Unlock()
	pool = db
}

// Close releases the shared pool.
func Close() error {

	poolMu.Lock()
	defer poolMu.Unlock()
	if pool == nil {
		return nil
	}
	err := pool.Close()
	pool = nil
	return err
}

func getDBConfig(cfg config.Config) DBConfig {

	var dbConfig DBConfig

	dbConfig.driverName = "postgres"
	dbConfig.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DataSource.Hostname, cfg.DataSource.Port, cfg.DataSource.Username, cfg.DataSource.Password,
		cfg.DataSource.Name, cfg.DataSource.SSLMode)

	return dbConfig
}
