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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	healthprovider "github.com/wso2/profile-consent-service/internal/health_check/provider"
	healthservice "github.com/wso2/profile-consent-service/internal/health_check/service"
	"github.com/wso2/profile-consent-service/internal/profile/provider"
	"github.com/wso2/profile-consent-service/internal/profile/store"
	"github.com/wso2/profile-consent-service/internal/system/config"
	"github.com/wso2/profile-consent-service/internal/system/constants"
	dbprovider "github.com/wso2/profile-consent-service/internal/system/database/provider"
	"github.com/wso2/profile-consent-service/internal/system/lock"
	"github.com/wso2/profile-consent-service/internal/system/log"
	"github.com/wso2/profile-consent-service/internal/system/managers"
	"github.com/wso2/profile-consent-service/internal/system/metrics"
	"github.com/wso2/profile-consent-service/internal/system/schedulers"
	"github.com/wso2/profile-consent-service/internal/system/security"
)

const shutdownTimeout = 15 * time.Second

// backends holds the connections opened for the configured store and lock, so that they
// can be checked for readiness and closed on shutdown.
type backends struct {
	profileStore store.ProfileStoreInterface
	locker       lock.ProfileLocker
	checks       []healthservice.ReadinessCheck
	closers      []func(ctx context.Context) error
}

func main() {
	cdsHome := getCDSHome()
	const configFile = "/repository/conf/deployment.yaml"

	envFiles, err := filepath.Glob(filepath.Join(cdsHome, "repository/conf/*.env"))
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	// Load the configuration file
	cdsConfig, err := config.LoadConfig(cdsHome, configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize runtime configurations.
	if err := config.InitializeCDSRuntime(cdsHome, cdsConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize runtime: %v\n", err)
		os.Exit(1)
	}

	if err := log.InitWithWriter(cdsConfig.Log.LogLevel, cdsConfig.Log.Format, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := initBackends(ctx, cdsConfig)
	if err != nil {
		logger.Fatal("Failed to initialize backends", log.Error(err))
	}
	defer b.close()

	consentMetrics := metrics.New()
	profilesProvider := provider.NewProfilesProvider(b.profileStore, b.locker, consentMetrics, cdsConfig.Cache.ProfileTTL)
	go schedulers.StartSnapshotSweepScheduler(ctx, profilesProvider, cdsConfig.Cache.ProfileTTL)

	mux := initMultiplexer(profilesProvider, healthprovider.NewHealthCheckProvider(b.checks...), consentMetrics)

	serverAddr := fmt.Sprintf("%s:%d", cdsConfig.Addr.Host, cdsConfig.Addr.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           security.WithTraceID(security.EnableCORS(cdsConfig.Auth.CORSAllowedOrigins, mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Profile consent service starting", log.String("address", serverAddr),
			log.String("datasource", cdsConfig.DataSource.Type), log.String("lock", cdsConfig.Lock.Type))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve requests", log.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Shutting down profile consent service")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", log.Error(err))
		}
	}
}

// initBackends opens the profile store and the profile lock named by the configuration.
func initBackends(ctx context.Context, cfg *config.Config) (*backends, error) {

	b := &backends{}
	switch cfg.DataSource.Type {
	case constants.DataSourceMemory:
		b.profileStore = store.NewInMemoryProfileStore()
	case constants.DataSourcePostgres:
		dbProvider := dbprovider.NewDBProvider()
		postgresStore := store.NewPostgresProfileStore(dbProvider)
		if err := postgresStore.InitSchema(ctx); err != nil {
			return nil, err
		}
		b.profileStore = postgresStore
		b.checks = append(b.checks, healthservice.ReadinessCheck{Name: "postgres", Check: func(ctx context.Context) error {
			dbClient, err := dbProvider.GetDBClient()
			if err != nil {
				return err
			}
			_, err = dbClient.ExecuteQuery(ctx, "SELECT 1")
			return err
		}})
		b.closers = append(b.closers, func(context.Context) error { return dbprovider.Close() })
	case constants.DataSourceMongoDB:
		mongoDB, err := dbprovider.ConnectMongoDB(ctx, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		mongoStore := store.NewMongoProfileStore(mongoDB.Database, cfg.MongoDB.Collection)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			_ = mongoDB.Close(ctx)
			return nil, err
		}
		b.profileStore = mongoStore
		b.checks = append(b.checks, healthservice.ReadinessCheck{Name: "mongodb", Check: func(ctx context.Context) error {
			return mongoDB.Client.Ping(ctx, nil)
		}})
		b.closers = append(b.closers, mongoDB.Close)
	default:
		return nil, fmt.Errorf("unsupported datasource type %q", cfg.DataSource.Type)
	}

	switch cfg.Lock.Type {
	case constants.LockMemory:
		b.locker = lock.NewKeyedMutex()
	case constants.LockPostgres:
		lockDBProvider := dbprovider.NewLockDBProvider(cfg.Lock.MaxConns)
		b.locker = lock.NewPostgresLocker(lockDBProvider, cfg.Lock.RetryInterval)
		b.closers = append(b.closers, func(context.Context) error { return lockDBProvider.Close() })
	case constants.LockRedis:
		redisClient, err := lock.NewRedisClient(ctx, cfg.Lock.RedisURL)
		if err != nil {
			b.close()
			return nil, err
		}
		b.locker = lock.NewRedisLocker(redisClient, cfg.Lock.TTL, cfg.Lock.RetryInterval)
		b.checks = append(b.checks, healthservice.ReadinessCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
		b.closers = append(b.closers, closeRedis(redisClient))
	default:
		b.close()
		return nil, fmt.Errorf("unsupported lock type %q", cfg.Lock.Type)
	}

	return b, nil
}

func closeRedis(client *redis.Client) func(context.Context) error {
	return func(context.Context) error { return client.Close() }
}

func (b *backends) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			log.GetLogger().Warn("Failed to close backend connection", log.Error(err))
		}
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(profilesProvider provider.ProfilesProviderInterface,
	healthProvider healthprovider.HealthCheckProviderInterface, consentMetrics *metrics.Metrics) *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, profilesProvider, healthProvider, consentMetrics)

	// Register the services.
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

func getCDSHome() string {

	// Parse project directory from command line arguments.
	projectHomeFlag := flag.String("cdsHome", "", "Path to profile consent service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		return *projectHomeFlag
	}
	// If no command line argument is provided, use the current working directory.
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get current working directory: %v\n", err)
		os.Exit(1)
	}
	return dir
}
