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
	"errors"
	"flag"
	"fmt"

	"uptran-invest-go/internal/common"
	"uptran-invest-go/internal/config"
	"uptran-invest-go/internal/store"

	"go.uber.org/zap"
)

// versionedStore is implemented by backends that track a write counter per key
type versionedStore interface {
	Version(ctx context.Context, key string) (int64, error)
}

var collectionKeys = []string{
	store.KeyUsers,
	store.KeyCurrentUser,
	store.KeyDepositHistory,
	store.KeyWithdrawalRequests,
	store.KeyInvestmentAssets,
	store.KeyWalletAddresses,
}

// describeKey reports whether a collection is stored and, when the backend tracks it, its write version
func describeKey(ctx context.Context, kv store.KVStore, key string) (string, error) {
	value, err := kv.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "absent", nil
	}
	if err != nil {
		return "", err
	}

	if vs, ok := kv.(versionedStore); ok {
		version, err := vs.Version(ctx, key)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d bytes, v%d", len(value), version), nil
	}
	return fmt.Sprintf("%d bytes", len(value)), nil
}

func printStorageReport(ctx context.Context, services *common.Services) {
	common.PrintHeader(fmt.Sprintf("STORAGE REPORT (%s)", services.Backend), common.DefaultWidth)
	for i, key := range collectionKeys {
		isLast := i == len(collectionKeys)-1
		desc, err := describeKey(ctx, services.Store, key)
		if err != nil {
			zap.L().Error("Failed to inspect key", zap.String("key", key), zap.Error(err))
			desc = "error: " + err.Error()
		}
		fmt.Printf("%s %-20s %s\n", common.BoxPrefix(isLast), key, desc)
	}
}

func reconcileAll(services *common.Services) int {
	mismatches := 0
	for _, user := range services.Accounts.Users() {
		if _, err := services.Accounts.ReconcileBalance(user.Id); err != nil {
			mismatches++
			fmt.Printf("✗ %s (%s): %s\n", user.FullName(), user.Email, err)
		}
	}
	return mismatches
}

func runInit(ctx context.Context, services *common.Services) {
	zap.L().Info("Seeding catalog, wallet addresses and admin account")

	catalog := services.Accounts.InvestmentAssets()
	assets := 0
	for _, section := range catalog {
		assets += len(section)
	}

	zap.L().Info("Initialization complete",
		zap.Int("users", len(services.Accounts.Users())),
		zap.Int("catalog_sections", len(catalog)),
		zap.Int("catalog_assets", assets),
		zap.Int("wallets", len(services.Accounts.WalletAddresses())))
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	initFlag := flag.Bool("init", false, "Seed defaults and the admin account")
	reconcileFlag := flag.Bool("reconcile", false, "Check every balance against its transaction log")
	flag.Parse()

	// Initialize services at top level
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	// Seeding happens while the account manager loads
	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if *initFlag {
		runInit(ctx, services)
	}

	printStorageReport(ctx, services)

	if *reconcileFlag {
		mismatches := reconcileAll(services)
		common.PrintFooter(fmt.Sprintf("RECONCILIATION: %d mismatches", mismatches), common.DefaultWidth)
		if mismatches > 0 {
			zap.L().Warn("Balance reconciliation found mismatches", zap.Int("count", mismatches))
		}
	}
}
