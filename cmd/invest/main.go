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

	"uptran-invest-go/internal/accounts"
	"uptran-invest-go/internal/common"
	"uptran-invest-go/internal/config"
	"uptran-invest-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// parseInvestment validates the investment flags; it returns nil when no amount was given
func parseInvestment(amountValue, roiValue, plan, assetId string, duration int) (*accounts.InvestmentInput, error) {
	if amountValue == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(amountValue)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %w", err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero")
	}
	roi, err := decimal.NewFromString(roiValue)
	if err != nil {
		return nil, fmt.Errorf("invalid roi format: %w", err)
	}
	if assetId == "" && plan == "" {
		return nil, fmt.Errorf("--plan or --asset is required with --amount")
	}
	return &accounts.InvestmentInput{
		PlanName: plan,
		AssetId:  assetId,
		Amount:   amount,
		Roi:      roi,
		Duration: duration,
	}, nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	emailFlag := flag.String("email", "", "User email (required)")
	passwordFlag := flag.String("password", "", "User password (required)")
	assetFlag := flag.String("asset", "", "Catalog asset ID to invest in")
	planFlag := flag.String("plan", "", "Plan name when not using a catalog asset")
	amountFlag := flag.String("amount", "", "Amount to invest")
	roiFlag := flag.String("roi", "0", "ROI percent when not using a catalog asset")
	durationFlag := flag.Int("duration", 0, "Duration in days when not using a catalog asset")
	withdrawFlag := flag.String("withdraw-profit", "", "Withdraw accrued profit from the investment with this ID")
	flag.Parse()

	if *emailFlag == "" || *passwordFlag == "" {
		zap.L().Fatal("--email and --password are required")
	}

	// Flags are validated before login so a bad value never leaves a session behind
	investment, err := parseInvestment(*amountFlag, *roiFlag, *planFlag, *assetFlag, *durationFlag)
	if err != nil {
		zap.L().Fatal("Invalid flags", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	manager := services.Accounts
	user, err := manager.Login(ctx, *emailFlag, *passwordFlag)
	if err != nil {
		zap.L().Fatal("Login failed", zap.String("email", *emailFlag), zap.Error(err))
	}
	defer func() {
		if err := manager.Logout(ctx); err != nil {
			zap.L().Warn("Failed to clear session", zap.Error(err))
		}
	}()

	opCtx := models.WithOperator(ctx, &models.Operator{Id: user.Id, Source: "cli"})

	switch {
	case *withdrawFlag != "":
		result := services.ApiService.WithdrawProfit(opCtx, user.Id, *withdrawFlag)
		if !result.Success {
			common.PrintHeader("PROFIT WITHDRAWAL FAILED", common.DefaultWidth)
			fmt.Printf("Reason: %s (%s)\n", result.Error, result.ErrorKind)
			common.PrintSeparator("=", common.DefaultWidth)
			return
		}
		common.PrintHeader("PROFIT WITHDRAWN", common.DefaultWidth)
		fmt.Printf("Investment:  %s\n", result.RecordId)
		fmt.Printf("Amount:      %s\n", common.FormatAmount(result.Amount))
		fmt.Printf("New Balance: %s\n", common.FormatAmount(result.NewBalance))
		fmt.Printf("Status:      %s\n", common.ColorStatus(result.Status))
		common.PrintSeparator("=", common.DefaultWidth)

	case investment != nil:
		inv, err := manager.AddInvestment(opCtx, user.Id, *investment)
		if err != nil {
			common.PrintHeader("INVESTMENT FAILED", common.DefaultWidth)
			fmt.Printf("Reason: %v\n", err)
			common.PrintSeparator("=", common.DefaultWidth)
			return
		}
		common.PrintHeader("INVESTMENT OPENED", common.DefaultWidth)
		fmt.Printf("ID:       %s\n", inv.Id)
		fmt.Printf("Plan:     %s\n", inv.PlanName)
		fmt.Printf("Amount:   %s\n", common.FormatAmount(inv.Amount))
		fmt.Printf("ROI:      %s%%\n", inv.Roi.String())
		fmt.Printf("Duration: %d days\n", inv.Duration)
		common.PrintSeparator("=", common.DefaultWidth)

	default:
		printInvestments(manager, user)
	}
}

func printInvestments(manager *accounts.Manager, user *models.User) {
	common.PrintHeader(fmt.Sprintf("INVESTMENTS: %s", user.Email), common.DefaultWidth)
	if len(user.Investments) == 0 {
		fmt.Println("No investments")
		common.PrintSeparator("=", common.DefaultWidth)
		return
	}
	for _, inv := range user.Investments {
		res, err := manager.InvestmentProfit(user.Id, inv.Id)
		if err != nil {
			zap.L().Warn("Failed to compute profit", zap.String("investment_id", inv.Id), zap.Error(err))
			continue
		}
		fmt.Printf("%s  %-20s %12s  profit %12s  withdrawn %12s  %s\n",
			common.ShortId(inv.Id), inv.PlanName, common.FormatAmount(inv.Amount),
			common.FormatAmount(res.CurrentProfit), common.FormatAmount(inv.WithdrawnProfit),
			common.ColorStatus(inv.Status))
	}
	common.PrintSeparator("=", common.DefaultWidth)
}
