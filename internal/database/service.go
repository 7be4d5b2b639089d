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

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"uptran-invest-go/internal/models"
	"uptran-invest-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.KVStore.
var _ store.KVStore = (*Service)(nil)

const memoryPath = ":memory:"

type Service struct {
	db *sql.DB
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	dsn := cfg.Path + "?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000"
	if cfg.Path == memoryPath {
		// Every new connection to :memory: gets its own empty database
		dsn = memoryPath
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
		cfg.ConnMaxLifetime = 0
		cfg.ConnMaxIdleTime = 0
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// Set connection timeouts and limits
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zap.L().Warn("Failed to close database after ping failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{db: db}
	if err := service.initSchema(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zap.L().Warn("Failed to close database after schema failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema(ctx context.Context) error {
	schema := `
	-- Key-value documents (one JSON value per collection key)
	CREATE TABLE IF NOT EXISTS kv_entries (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Create index for updated_at for recency queries
	CREATE INDEX IF NOT EXISTS idx_kv_entries_updated_at ON kv_entries(updated_at);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Service) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, store.ErrEmptyKey
	}
	zap.L().Debug("Reading key", zap.String("key", key))

	var value string
	err := s.db.QueryRowContext(ctx, queryGetEntry, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrKeyNotFound, key)
		}
		zap.L().Error("Failed to read key", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("unable to read key %s: %w", key, err)
	}

	return []byte(value), nil
}

func (s *Service) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return store.ErrEmptyKey
	}

	if _, err := s.db.ExecContext(ctx, queryUpsertEntry, key, string(value)); err != nil {
		zap.L().Error("Failed to write key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("unable to write key %s: %w", key, err)
	}

	zap.L().Debug("Wrote key", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// SetMany writes every entry inside one database transaction
func (s *Service) SetMany(ctx context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		if key == "" {
			return store.ErrEmptyKey
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Start database transaction for atomicity
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, queryUpsertEntry, key, string(entries[key])); err != nil {
			return fmt.Errorf("failed to write key %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Debug("Wrote keys atomically", zap.Strings("keys", keys))
	return nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return store.ErrEmptyKey
	}

	if _, err := s.db.ExecContext(ctx, queryDeleteEntry, key); err != nil {
		zap.L().Error("Failed to delete key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("unable to delete key %s: %w", key, err)
	}
	return nil
}

// Version returns how many times key has been written, or 0 if it was never written
func (s *Service) Version(ctx context.Context, key string) (int64, error) {
	var version int64
	err := s.db.QueryRowContext(ctx, queryGetEntryVersion, key).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("unable to read version of %s: %w", key, err)
	}
	return version, nil
}
