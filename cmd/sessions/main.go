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

package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"uptran-invest-go/internal/common"
	"uptran-invest-go/internal/config"
	"uptran-invest-go/internal/sessions"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func main() {
	intervalFlag := flag.Duration("interval", 0, "Override SESSION_POLLING_INTERVAL")
	reportFlag := flag.Duration("report", 10*time.Minute, "How often to log sweeper statistics")
	onceFlag := flag.Bool("once", false, "Run a single sweep and exit")
	flag.Parse()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zap.L().Info("Starting session sweeper")

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	interval := cfg.Sessions.PollingInterval
	if *intervalFlag > 0 {
		interval = *intervalFlag
	}

	sweeper, err := sessions.NewSweeper(sessions.SweeperConfig{
		Checker:         services.Accounts,
		PollingInterval: interval,
	})
	if err != nil {
		zap.L().Fatal("Failed to create sweeper", zap.Error(err))
	}

	if *onceFlag {
		expired := sweeper.Sweep(ctx)
		zap.L().Info("Single sweep complete", zap.Bool("expired", expired))
		return
	}

	g, gctx := errgroup.WithContext(ctx)

	sweeper.Start(gctx)

	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("Received shutdown signal, stopping sweeper")

		stopped := make(chan struct{})
		go func() {
			sweeper.Stop()
			close(stopped)
		}()

		select {
		case <-stopped:
			return nil
		case <-time.After(shutdownTimeout):
			return fmt.Errorf("sweeper did not stop within %s", shutdownTimeout)
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(*reportFlag)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stats := sweeper.Stats()
				zap.L().Info("Session sweeper statistics",
					zap.Int("sweeps", stats.Sweeps),
					zap.Int("expirations", stats.Expirations),
					zap.Int("failures", stats.Failures),
					zap.Time("last_sweep", stats.LastSweep))
			case <-gctx.Done():
				return nil
			}
		}
	})

	zap.L().Info("Session sweeper running", zap.Duration("polling_interval", interval))
	zap.L().Info("Press Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		zap.L().Error("Session sweeper exited with error", zap.Error(err))
	}

	stats := sweeper.Stats()
	zap.L().Info("Session sweeper stopped gracefully",
		zap.Int("sweeps", stats.Sweeps),
		zap.Int("expirations", stats.Expirations))
}
