/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

const (
	queryGetEntry = `
		SELECT value
		FROM kv_entries
		WHERE key = ?`

	queryGetEntryVersion = `
		SELECT version
		FROM kv_entries
		WHERE key = ?`

	queryUpsertEntry = `
		INSERT INTO kv_entries (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = kv_entries.version + 1,
			updated_at = CURRENT_TIMESTAMP`

	queryDeleteEntry = `
		DELETE FROM kv_entries WHERE key = ?`
)
