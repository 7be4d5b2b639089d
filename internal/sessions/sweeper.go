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

// Package sessions runs the background check that expires stale logins.
package sessions

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"uptran-invest-go/internal/models"

	"go.uber.org/zap"
)

// SessionChecker is the part of the account manager the sweeper drives
type SessionChecker interface {
	ReloadSession(ctx context.Context) error
	CurrentUser() *models.User
	IsAuthenticated(ctx context.Context) (bool, error)
}

// SweeperConfig contains configuration for Sweeper
type SweeperConfig struct {
	Checker         SessionChecker
	PollingInterval time.Duration
}

// Stats summarises the sweeper's activity since start
type Stats struct {
	Sweeps      int
	Expirations int
	Failures    int
	LastSweep   time.Time
	LastUserId  string
}

// Sweeper periodically asks the account manager whether the current session is
// still valid, which logs out an expired session as a side effect.
type Sweeper struct {
	checker         SessionChecker
	pollingInterval time.Duration

	mutex sync.RWMutex
	stats Stats

	started  atomic.Bool
	stopOnce sync.Once
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewSweeper creates a new session sweeper
func NewSweeper(cfg SweeperConfig) (*Sweeper, error) {
	if cfg.Checker == nil {
		return nil, fmt.Errorf("session checker cannot be nil")
	}
	if cfg.PollingInterval <= 0 {
		return nil, fmt.Errorf("polling interval must be positive, got %s", cfg.PollingInterval)
	}

	return &Sweeper{
		checker:         cfg.Checker,
		pollingInterval: cfg.PollingInterval,
		stopChan:        make(chan struct{}),
		doneChan:        make(chan struct{}),
	}, nil
}

// Start launches the polling loop. It returns immediately; later calls are ignored.
func (s *Sweeper) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	zap.L().Info("Starting session sweeper", zap.Duration("polling_interval", s.pollingInterval))
	go s.pollLoop(ctx)
}

// Stop signals the loop to exit and waits for it. A sweeper that was never
// started is marked done without waiting.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		zap.L().Info("Stopping session sweeper")
		close(s.stopChan)
		if s.started.CompareAndSwap(false, true) {
			close(s.doneChan)
		}
	})
	<-s.doneChan
	zap.L().Info("Session sweeper stopped")
}

// Done is closed once the polling loop has exited
func (s *Sweeper) Done() <-chan struct{} {
	return s.doneChan
}

func (s *Sweeper) Stats() Stats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.stats
}

func (s *Sweeper) pollLoop(ctx context.Context) {
	defer close(s.doneChan)

	ticker := time.NewTicker(s.pollingInterval)
	defer ticker.Stop()

	s.Sweep(ctx)

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Sweep reloads the stored session before checking it, so logins made by other
// processes are honoured. It reports whether a session expired.
func (s *Sweeper) Sweep(ctx context.Context) bool {
	var before *models.User
	authenticated := false
	err := s.checker.ReloadSession(ctx)
	if err == nil {
		before = s.checker.CurrentUser()
		authenticated, err = s.checker.IsAuthenticated(ctx)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.stats.Sweeps++
	s.stats.LastSweep = time.Now()
	if err != nil {
		s.stats.Failures++
		zap.L().Error("Session check failed", zap.Error(err))
		return false
	}

	if before == nil {
		return false
	}
	if authenticated {
		s.stats.LastUserId = before.Id
		return false
	}

	s.stats.Expirations++
	zap.L().Info("Session expired by sweeper",
		zap.String("user_id", before.Id),
		zap.String("email", before.Email))
	return true
}
