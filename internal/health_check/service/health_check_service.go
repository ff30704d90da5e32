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

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wso2/profile-consent-service/internal/system/log"
)

const readinessTimeout = 2 * time.Second

// ReadinessCheck probes one backend the service depends on.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) error
}

// HealthCheckService is the default implementation.
type HealthCheckService struct {
	checks []ReadinessCheck
}

func NewHealthCheckService(checks ...ReadinessCheck) HealthCheckServiceInterface {
	return &HealthCheckService{checks: checks}
}

// CheckReadiness runs every check in order and reports the first failure.
func (h *HealthCheckService) CheckReadiness(ctx context.Context) error {

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			log.GetLogger().Warn(fmt.Sprintf("Readiness check %s failed", check.Name), log.Error(err))
			return fmt.Errorf("%s connectivity check failed: %w", check.Name, err)
		}
	}
	return nil
}
