//go:build integration

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

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/wso2/profile-consent-service/internal/system/config"
	"github.com/wso2/profile-consent-service/internal/system/database/provider"
	"github.com/wso2/profile-consent-service/internal/system/lock"
	"github.com/wso2/profile-consent-service/internal/system/log"
	"github.com/wso2/profile-consent-service/test/setup"
)

var (
	mongoDB        *provider.MongoDB
	redisClient    *redis.Client
	lockDBProvider *provider.LockDBProvider
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	config.OverrideCDSRuntime(config.Config{
		Log: config.LogConfig{
			LogLevel: "DEBUG",
		},
	})
	_ = log.Init("ERROR")

	pg, err := setup.SetupTestPostgres(ctx)
	if err != nil {
		fmt.Println("Failed to start test DB:", err)
		os.Exit(1)
	}
	provider.SetTestDB(pg.DB)

	lockDB, err := sql.Open("postgres", pg.DSN)
	if err != nil {
		fmt.Println("Failed to open the lock pool:", err)
		os.Exit(1)
	}
	lockDB.SetMaxOpenConns(4)
	lockDBProvider = provider.NewLockDBProviderWithDB(lockDB)

	mongo, err := setup.SetupTestMongo(ctx)
	if err != nil {
		fmt.Println("Failed to start test MongoDB:", err)
		_ = pg.Container.Terminate(ctx)
		os.Exit(1)
	}
	mongoDB, err = provider.ConnectMongoDB(ctx, config.MongoDBConfig{URI: mongo.URI, Database: "cds_test"})
	if err != nil {
		fmt.Println("Failed to connect to test MongoDB:", err)
		os.Exit(1)
	}

	rd, err := setup.SetupTestRedis(ctx)
	if err != nil {
		fmt.Println("Failed to start test Redis:", err)
		os.Exit(1)
	}
	redisClient, err = lock.NewRedisClient(ctx, rd.URL)
	if err != nil {
		fmt.Println("Failed to connect to test Redis:", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = redisClient.Close()
	_ = mongoDB.Close(ctx)
	_ = lockDBProvider.Close()
	_ = provider.Close()
	_ = rd.Container.Terminate(ctx)
	_ = mongo.Container.Terminate(ctx)
	_ = pg.Container.Terminate(ctx)

	os.Exit(code)
}
