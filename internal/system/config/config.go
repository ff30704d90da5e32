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

package config

import "time"

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
	// Format is "text" or "json".
	Format   string `yaml:"format"`
}

type AuthConfig struct {
	Enabled            bool     `yaml:"enabled"`
	JWTSecret          string   `yaml:"jwt_secret"`
	Audience           string   `yaml:"audience"`
	Issuer             string   `yaml:"issuer"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type DataSourceConfig struct {
	Type     string `yaml:"type"`
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	// MaxOpenConns bounds the postgres pool. Zero leaves database/sql defaults.
	MaxOpenConns int `yaml:"max_open_conns"`
}

type MongoDBConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type LockConfig struct {
	Type          string        `yaml:"type"`
	RedisURL      string        `yaml:"redis_url"`
	TTL           time.Duration `yaml:"ttl"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	// MaxConns caps the pool the postgres locker keeps apart from the datasource pool.
	MaxConns int `yaml:"max_conns"`
}

type CacheConfig struct {
	ProfileTTL time.Duration `yaml:"profile_ttl"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	DataSource DataSourceConfig `yaml:"datasource"`
	MongoDB    MongoDBConfig    `yaml:"mongodb"`
	Lock       LockConfig       `yaml:"lock"`
	Cache      CacheConfig      `yaml:"cache"`
}

// ApplyDefaults fills values left empty in the deployment file.
func (c *Config) ApplyDefaults() {
	if c.Addr.Host == "" {
		c.Addr.Host = "0.0.0.0"
	}
	if c.Addr.Port == 0 {
		c.Addr.Port = 8900
	}
	if c.Log.LogLevel == "" {
		c.Log.LogLevel = "INFO"
	}
	if c.DataSource.Type == "" {
		c.DataSource.Type = "memory"
	}
	if c.DataSource.SSLMode == "" {
		c.DataSource.SSLMode = "disable"
	}
	if c.MongoDB.Collection == "" {
		c.MongoDB.Collection = "profiles"
	}
	if c.Lock.Type == "" {
		c.Lock.Type = "memory"
	}
	if c.Lock.TTL == 0 {
		c.Lock.TTL = 10 * time.Second
	}
	if c.Lock.RetryInterval == 0 {
		c.Lock.RetryInterval = 25 * time.Millisecond
	}
	if c.Lock.MaxConns == 0 {
		c.Lock.MaxConns = 10
	}
	if c.Cache.ProfileTTL == 0 {
		c.Cache.ProfileTTL = 30 * time.Second
	}
}
