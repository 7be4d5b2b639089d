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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"uptran-invest-go/internal/models"
)

func Load() (*models.Config, error) {
	sessionTTL, err := getEnvDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	pollingInterval, err := getEnvDuration("SESSION_POLLING_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	redisPingTimeout, err := getEnvDuration("REDIS_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	backend := strings.ToLower(getEnvString("STORAGE_BACKEND", models.BackendSqlite))
	if backend != models.BackendSqlite && backend != models.BackendRedis {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: expected sqlite or redis", backend)
	}

	return &models.Config{
		Storage: models.StorageConfig{
			Backend: backend,
		},
		Database: models.DatabaseConfig{
			Path:            getEnvString("DATABASE_PATH", "accounts.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Redis: models.RedisConfig{
			Addr:        getEnvString("REDIS_ADDR", "localhost:6379"),
			Password:    getEnvString("REDIS_PASSWORD", ""),
			DB:          getEnvInt("REDIS_DB", 0),
			KeyPrefix:   getEnvString("REDIS_KEY_PREFIX", "uptran:"),
			PingTimeout: redisPingTimeout,
		},
		Accounts: models.AccountsConfig{
			SessionTTL:    sessionTTL,
			AdminId:       getEnvString("ADMIN_ID", "admin-uptran-001"),
			AdminEmail:    getEnvString("ADMIN_EMAIL", "admin@uptran.local"),
			AdminPassword: getEnvString("ADMIN_PASSWORD", "change-me"),
			SeedFile:      getEnvString("SEED_FILE", "seed.yaml"),
			SeedAdmin:     getEnvBool("SEED_ADMIN", true),
		},
		Sessions: models.SessionsConfig{
			PollingInterval: pollingInterval,
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
