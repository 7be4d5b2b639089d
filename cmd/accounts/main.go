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

	"uptran-invest-go/internal/accounts"
	"uptran-invest-go/internal/api"
	"uptran-invest-go/internal/common"
	"uptran-invest-go/internal/config"
	"uptran-invest-go/internal/profit"

	"go.uber.org/zap"
)

type accountStats struct {
	totalUsers      int
	fundedUsers     int
	openInvestments int
	mismatches      int
}

func printUserHeader(user common.UserInfo, balance string, pending string) {
	fmt.Printf("\n┌─ User: %s (%s)\n", user.Name, user.Email)
	fmt.Printf("│  ID: %s  Account: %s\n", user.Id, user.AccountNumber)
	fmt.Printf("│  Balance: %s  Pending profit: %s\n", balance, pending)
	common.PrintBoxSeparator(78)
}

func printInvestments(manager *accounts.Manager, userId string) (int, error) {
	user, err := manager.GetUser(userId)
	if err != nil {
		return 0, err
	}

	open := 0
	for i, inv := range user.Investments {
		isLast := i == len(user.Investments)-1
		result, err := manager.InvestmentProfit(userId, inv.Id)
		if err != nil {
			fmt.Printf("%s %-24s %12s  %s\n", common.BoxPrefix(isLast), inv.PlanName,
				common.FormatAmount(inv.Amount), common.ColorStatus(inv.Status))
			continue
		}
		if !result.IsCompleted {
			open++
		}
		fmt.Printf("%s %-24s %12s  %s  day %d/%d (%.1f%%)\n", common.BoxPrefix(isLast), inv.PlanName,
			common.FormatAmount(inv.Amount), common.ColorStatus(inv.Status),
			result.DaysPassed, result.DurationInDays, result.ProgressPercentage)
		printProfitDetail(result, inv.WithdrawnProfit.String(), isLast)
	}
	return open, nil
}

func printProfitDetail(result *profit.Result, withdrawn string, isLast bool) {
	fmt.Printf("%s   Profit: %s (daily %s, withdrawn %s)\n", common.BoxDetailPrefix(isLast),
		common.FormatAmount(result.CurrentProfit), common.FormatAmount(result.DailyProfit), withdrawn)
}

func processUser(ctx context.Context, user common.UserInfo, services *common.Services, logger *zap.Logger, stats *accountStats) error {
	balance, err := services.ApiService.GetUserBalance(ctx, user.Id)
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}

	printUserHeader(user, common.FormatAmount(balance.Balance), common.FormatAmount(balance.PendingProfit))
	if balance.Balance.IsPositive() {
		stats.fundedUsers++
	}

	open, err := printInvestments(services.Accounts, user.Id)
	if err != nil {
		return fmt.Errorf("failed to list investments: %w", err)
	}
	stats.openInvestments += open

	if _, err := services.Accounts.ReconcileBalance(user.Id); err != nil {
		if !errors.Is(err, accounts.ErrBalanceMismatch) {
			return err
		}
		stats.mismatches++
		fmt.Printf("   ✗ %s\n", err)
		logger.Warn("Balance does not reconcile", zap.String("user_id", user.Id), zap.String("error_kind", api.ErrorKind(err)))
	}

	return nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	emailFlag := flag.String("email", "", "Filter by specific user email (optional)")
	historyFlag := flag.Int("history", 0, "Also print the N most recent transactions per user")
	flag.Parse()

	logger.Info("Starting account report")

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

	if err := services.ApiService.HealthCheck(ctx); err != nil {
		logger.Fatal("Storage health check failed", zap.Error(err))
	}

	// Initialize users based on filter
	users, err := common.InitializeUsers(services.Accounts, *emailFlag, logger)
	if err != nil {
		logger.Fatal("Failed to initialize users", zap.Error(err))
	}

	common.PrintHeader("ACCOUNT REPORT", common.DefaultWidth)

	stats := accountStats{}
	for _, user := range users {
		stats.totalUsers++
		if err := processUser(ctx, user, services, logger, &stats); err != nil {
			logger.Error("Failed to process user",
				zap.String("user_id", user.Id),
				zap.String("user_name", user.Name),
				zap.Error(err))
			continue
		}

		if *historyFlag > 0 {
			records, err := services.ApiService.GetTransactionHistory(ctx, user.Id, *historyFlag, 0)
			if err != nil {
				logger.Error("Failed to get transaction history", zap.String("user_id", user.Id), zap.Error(err))
				continue
			}
			for _, r := range records {
				fmt.Printf("   %s  %-18s %12s  %s\n", r.ProcessedAt.Format("2006-01-02 15:04"), r.Type,
					common.FormatAmount(r.Amount), r.Description)
			}
		}
	}

	// Print footer summary
	summary := fmt.Sprintf("SUMMARY: %d users, %d funded, %d open investments, %d balance mismatches",
		stats.totalUsers, stats.fundedUsers, stats.openInvestments, stats.mismatches)
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Account report completed",
		zap.Int("users_queried", stats.totalUsers),
		zap.Int("funded_users", stats.fundedUsers),
		zap.Int("open_investments", stats.openInvestments),
		zap.Int("mismatches", stats.mismatches))
}
