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
	"sort"
	"strings"

	"uptran-invest-go/internal/common"
	"uptran-invest-go/internal/config"
	"uptran-invest-go/internal/models"

	"go.uber.org/zap"
)

// parseUpdates turns "BTC=addr1,ETH=addr2" into a currency map
func parseUpdates(raw string) (map[string]string, error) {
	updates := make(map[string]string)
	if raw == "" {
		return updates, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid wallet update %q, expected CURRENCY=ADDRESS", pair)
		}
		updates[strings.ToUpper(parts[0])] = parts[1]
	}
	return updates, nil
}

func printWallets(wallets models.WalletAddresses) {
	currencies := make([]string, 0, len(wallets))
	for currency := range wallets {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	fmt.Printf("\n┌─ Platform deposit wallets\n")
	fmt.Printf("│  Currencies: %d\n", len(currencies))
	common.PrintBoxSeparator(98)
	for i, currency := range currencies {
		isLast := i == len(currencies)-1
		fmt.Printf("%s %-10s → %s\n", common.BoxPrefix(isLast), currency, wallets[currency])
	}
}

func printUserDeposits(user common.UserInfo, deposits []models.Deposit) {
	fmt.Printf("\n┌─ User: %s (%s)\n", user.Name, user.Email)
	fmt.Printf("│  Account: %s\n", user.AccountNumber)
	fmt.Printf("│  Deposits: %d\n", len(deposits))
	common.PrintBoxSeparator(98)
	for i, d := range deposits {
		isLast := i == len(deposits)-1
		fmt.Printf("%s %-8s %-6s %12s  %s\n", common.BoxPrefix(isLast), common.ShortId(d.Id), d.Asset,
			common.FormatAmount(d.Amount), common.ColorStatus(d.Status))
		if d.Reference != "" {
			fmt.Printf("%s   Reference: %s\n", common.BoxDetailPrefix(isLast), d.Reference)
		}
	}
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	emailFlag := flag.String("email", "", "Also list deposits for this user (optional)")
	setFlag := flag.String("set", "", "Comma-separated CURRENCY=ADDRESS pairs to merge into the wallet map")
	flag.Parse()

	updates, err := parseUpdates(*setFlag)
	if err != nil {
		logger.Fatal("Invalid --set value", zap.Error(err))
	}

	logger.Info("Starting wallet query")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if len(updates) > 0 {
		if err := services.Accounts.UpdateWalletAddresses(ctx, updates); err != nil {
			logger.Fatal("Failed to update wallet addresses", zap.Error(err))
		}
		logger.Info("Wallet addresses updated", zap.Int("count", len(updates)))
	}

	common.PrintHeader("WALLET ADDRESSES REPORT", common.WideWidth)
	wallets := services.Accounts.WalletAddresses()
	printWallets(wallets)

	if *emailFlag != "" {
		users, err := common.InitializeUsers(services.Accounts, *emailFlag, logger)
		if err != nil {
			logger.Fatal("Failed to initialize users", zap.Error(err))
		}
		for _, user := range users {
			printUserDeposits(user, services.Accounts.DepositHistory(user.Id))
		}
	}

	summary := fmt.Sprintf("SUMMARY: %d wallet addresses configured", len(wallets))
	common.PrintFooter(summary, common.WideWidth)

	logger.Info("Wallet query completed", zap.Int("wallets", len(wallets)))
}
