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
	"strings"

	"uptran-invest-go/internal/common"
	"uptran-invest-go/internal/config"
	"uptran-invest-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	emailFlag := flag.String("email", "", "User email (required)")
	assetFlag := flag.String("asset", "", "Asset that was sent, e.g. BTC (required)")
	amountFlag := flag.String("amount", "", "Deposited amount (required)")
	referenceFlag := flag.String("reference", "", "Transaction hash or other reference")
	flag.Parse()

	if *emailFlag == "" || *assetFlag == "" || *amountFlag == "" {
		zap.L().Fatal("--email, --asset and --amount are required")
	}

	amount, err := decimal.NewFromString(*amountFlag)
	if err != nil {
		zap.L().Fatal("Invalid amount format", zap.String("amount", *amountFlag), zap.Error(err))
	}
	asset := strings.ToUpper(*assetFlag)

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	user, err := services.Accounts.GetUserByEmail(*emailFlag)
	if err != nil {
		zap.L().Fatal("User not found", zap.String("email", *emailFlag), zap.Error(err))
	}

	address, ok := services.Accounts.WalletAddress(asset)
	if !ok {
		zap.L().Warn("No platform wallet configured for asset", zap.String("asset", asset))
	}

	opCtx := models.WithOperator(ctx, &models.Operator{Id: user.Id, Source: "cli"})
	result := services.ApiService.SubmitDeposit(opCtx, user.Id, asset, amount, *referenceFlag)
	if !result.Success {
		common.PrintHeader("DEPOSIT FAILED", common.DefaultWidth)
		fmt.Printf("Reason: %s (%s)\n", result.Error, result.ErrorKind)
		common.PrintSeparator("=", common.DefaultWidth)
		zap.L().Fatal("Deposit submission failed", zap.String("error_kind", result.ErrorKind))
	}

	common.PrintHeader("DEPOSIT SUBMITTED", common.DefaultWidth)
	fmt.Printf("User:        %s (%s)\n", user.FullName(), user.Email)
	fmt.Printf("Deposit ID:  %s\n", result.RecordId)
	fmt.Printf("Asset:       %s\n", asset)
	fmt.Printf("Amount:      %s\n", common.FormatAmount(result.Amount))
	if address != "" {
		fmt.Printf("Wallet:      %s\n", address)
	}
	fmt.Printf("Status:      %s\n", common.ColorStatus(result.Status))
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Println("The balance is credited once an administrator approves the deposit")
}
