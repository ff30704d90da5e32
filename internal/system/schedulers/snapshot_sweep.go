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

package schedulers

import (
	"context"
	"fmt"
	"time"

	"github.com/wso2/profile-consent-service/internal/system/log"
)

// SnapshotSweeper drops expired profile snapshots.
type SnapshotSweeper interface {
	PurgeExpiredSnapshots() int
}

// StartSnapshotSweepScheduler periodically purges expired snapshots until ctx is done.
func StartSnapshotSweepScheduler(ctx context.Context, sweeper SnapshotSweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger := log.GetLogger()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if purged := sweeper.PurgeExpiredSnapshots(); purged > 0 {
				logger.Debug(fmt.Sprintf("Purged %d expired profile snapshots", purged))
			}
		}
	}
}
