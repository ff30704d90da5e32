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

import "sync"

// CDSRuntime holds the runtime configuration for the CDS server.
type CDSRuntime struct {
	CDSHome string `yaml:"cds_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *CDSRuntime
	runtimeMu     sync.RWMutex
	once          sync.Once
)

// InitializeCDSRuntime initializes the CDSRuntime configuration.
func InitializeCDSRuntime(cdsHome string, config *Config) error {

	once.Do(func() {
		runtimeMu.Lock()
		defer runtimeMu.Unlock()
		runtimeConfig = &CDSRuntime{
			CDSHome: cdsHome,
			Config:  *config,
		}
	})

	return nil
}

// GetCDSRuntime returns the CDSRuntime configuration.
func GetCDSRuntime() *CDSRuntime {

	runtimeMu.RLock()
	defer runtimeMu.RUnlock()
	if runtimeConfig == nil {
		panic("CDSRuntime is not initialized")
	}
	return runtimeConfig
}

// OverrideCDSRuntime replaces the runtime configuration, used by tests.
func OverrideCDSRuntime(conf Config) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	runtimeConfig = &CDSRuntime{
		Config: conf,
	}
}
