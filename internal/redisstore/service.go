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

package redisstore

import (
	"context"
	"errors"
	"fmt"

	"uptran-invest-go/internal/models"
	"uptran-invest-go/internal/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.KVStore.
var _ store.KVStore = (*Service)(nil)

const defaultKeyPrefix = "uptran:"

// Service stores each collection as a plain string value under prefix+key
type Service struct {
	client *redis.Client
	prefix string
}

func NewService(ctx context.Context, cfg models.RedisConfig) (*Service, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Connecting to Redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			zap.L().Warn("Failed to close redis client after ping failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	zap.L().Info("Redis service initialized successfully")
	return NewWithClient(client, cfg.KeyPrefix), nil
}

// NewWithClient wraps an existing client; an empty prefix falls back to "uptran:"
func NewWithClient(client *redis.Client, prefix string) *Service {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Service{client: client, prefix: prefix}
}

func (s *Service) Close() {
	if err := s.client.Close(); err != nil {
		zap.L().Warn("Failed to close redis connection", zap.Error(err))
	}
}

func (s *Service) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, store.ErrEmptyKey
	}

	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", store.ErrKeyNotFound, key)
		}
		zap.L().Error("Failed to read key", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("unable to read key %s: %w", key, err)
	}
	return value, nil
}

func (s *Service) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return store.ErrEmptyKey
	}

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		zap.L().Error("Failed to write key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("unable to write key %s: %w", key, err)
	}
	return nil
}

// SetMany writes every entry inside a MULTI/EXEC block
func (s *Service) SetMany(ctx context.Context, entries map[string][]byte) error {
	for key := range entries {
		if key == "" {
			return store.ErrEmptyKey
		}
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range entries {
			pipe.Set(ctx, s.prefix+key, value, 0)
		}
		return nil
	})
	if err != nil {
		zap.L().Error("Failed to write keys atomically", zap.Int("count", len(entries)), zap.Error(err))
		return fmt.Errorf("unable to write %d keys: %w", len(entries), err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return store.ErrEmptyKey
	}

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		zap.L().Error("Failed to delete key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("unable to delete key %s: %w", key, err)
	}
	return nil
}
