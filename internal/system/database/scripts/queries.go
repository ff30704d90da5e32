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

package scripts

// Schema creates the tables backing the postgres profile store.
var Schema = map[string][]string{
	"postgres": {
		`CREATE TABLE IF NOT EXISTS profiles (
			profile_id        VARCHAR(255) PRIMARY KEY,
			properties        JSONB NOT NULL DEFAULT '{}'::jsonb,
			system_properties JSONB NOT NULL DEFAULT '{}'::jsonb,
			segments          TEXT[] NOT NULL DEFAULT '{}',
			scores            JSONB,
			merged_with       VARCHAR(255),
			consents          JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_merged_with ON profiles (merged_with)`,
	},
}

var InsertProfile = map[string]string{
	"postgres": `INSERT INTO profiles (profile_id, properties, system_properties, segments, scores, merged_with, consents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (profile_id) DO NOTHING`,
}

var GetProfile = map[string]string{
	"postgres": `SELECT profile_id, properties::text AS properties, system_properties::text AS system_properties, segments,
		scores::text AS scores, merged_with, consents::text AS consents
		FROM profiles WHERE profile_id = $1`,
}

var UpdateProfile = map[string]string{
	"postgres": `UPDATE profiles SET properties = $2, system_properties = $3, segments = $4, scores = $5,
		merged_with = $6, consents = $7, updated_at = NOW() WHERE profile_id = $1`,
}

var DeleteProfile = map[string]string{
	"postgres": `DELETE FROM profiles WHERE profile_id = $1`,
}

var FindProfilesMergedInto = map[string]string{
	"postgres": `SELECT profile_id FROM profiles WHERE merged_with = $1 ORDER BY profile_id`,
}

var TryAdvisoryLock = map[string]string{
	"postgres": `SELECT pg_try_advisory_lock($1)`,
}

var AdvisoryUnlock = map[string]string{
	"postgres": `SELECT pg_advisory_unlock($1)`,
}
