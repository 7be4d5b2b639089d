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

type withdrawalRequest struct {
	email       string
	currency    string
	amount      decimal.Decimal
	destination string
	note        string
}

func parseAndValidateFlags() (*withdrawalRequest, error) {
	emailFlag := flag.String("email", "", "User email (required)")
	currencyFlag := flag.String("currency", "", "Payout currency (e.g., BTC, USDT) (required)")
	amountFlag := flag.String("amount", "", "Amount to withdraw (required)")
	destinationFlag := flag.String("destination", "", "Destination wallet address (required)")
	noteFlag := flag.String("note", "", "Optional note for the reviewer")
	flag.Parse()

	if *emailFlag == "" || *currencyFlag == "" || *amountFlag == "" || *destinationFlag == "" {
		return nil, fmt.Errorf("all flags are required: --email, --currency, --amount, --destination")
	}

	amount, err := decimal.NewFromString(*amountFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %w", err)
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("amount must be greater than zero")
	}

	if len([]rune(*noteFlag)) > models.MaxWithdrawalNoteLength {
		return nil, fmt.Errorf("note must be at most %d characters", models.MaxWithdrawalNoteLength)
	}

	return &withdrawalRequest{
		email:       *emailFlag,
		currency:    strings.ToUpper(*currencyFlag),
		amount:      amount,
		destination: *destinationFlag,
		note:        *noteFlag,
	}, nil
}

func printWithdrawalSummary(user *models.User, req *withdrawalRequest) {
	common.PrintHeader("WITHDRAWAL REQUEST", common.DefaultWidth)
	fmt.Printf("User:              %s (%s)\n", user.FullName(), user.Email)
	fmt.Printf("Account:           %s\n", user.AccountNumber)
	fmt.Printf("Currency:          %s\n", req.currency)
	fmt.Printf("Current Balance:   %s\n", common.FormatAmount(user.Balance))
	fmt.Printf("Withdrawal Amount: %s\n", common.FormatAmount(req.amount))
	fmt.Printf("Destination:       %s\n", req.destination)
	common.PrintSeparator("=", common.DefaultWidth)

	if user.Balance.LessThan(req.amount) {
		fmt.Printf("\n%s Balance does not cover the request today; it will only be paid out if the balance covers it at approval\n",
			common.ColorStatus("pending"))
	}
	fmt.Println()
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse and validate command line flags
	req, err := parseAndValidateFlags()
	if err != nil {
		zap.L().Fatal("Invalid flags", zap.Error(err))
	}

	zap.L().Info("Starting withdrawal request",
		zap.String("email", req.email),
		zap.String("currency", req.currency),
		zap.String("amount", req.amount.String()),
		zap.String("destination", req.destination))

	// Load configuration and initialize services
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	zap.L().Info("Initializing services")
	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	// Find user by email
	targetUser, err := services.Accounts.GetUserByEmail(req.email)
	if err != nil {
		common.PrintHeader("WITHDRAWAL FAILED", common.DefaultWidth)
		fmt.Printf("Error: User not found for email %s\n", req.email)
		common.PrintSeparator("=", common.DefaultWidth)
		zap.L().Fatal("User not found", zap.String("email", req.email), zap.Error(err))
	}

	printWithdrawalSummary(targetUser, req)

	opCtx := models.WithOperator(ctx, &models.Operator{Id: targetUser.Id, Source: "cli"})
	result := services.ApiService.RequestWithdrawal(opCtx, targetUser.Id, req.amount, req.currency, req.destination, req.note)
	if !result.Success {
		common.PrintHeader("WITHDRAWAL FAILED", common.DefaultWidth)
		fmt.Printf("Reason: %s (%s)\n", result.Error, result.ErrorKind)
		if result.ErrorKind == "not_allowed" {
			fmt.Println("The account must be approved before withdrawals can be requested")
		}
		common.PrintSeparator("=", common.DefaultWidth)
		zap.L().Fatal("Withdrawal request failed",
			zap.String("error_kind", result.ErrorKind),
			zap.String("error", result.Error))
	}

	fmt.Printf("Withdrawal request submitted\n")
	fmt.Printf("   Request ID: %s\n", result.RecordId)
	fmt.Printf("   Status:     %s\n\n", common.ColorStatus(result.Status))

	zap.L().Info("Withdrawal request submitted",
		zap.String("user_id", targetUser.Id),
		zap.String("request_id", result.RecordId),
		zap.String("amount", req.amount.String()))
}
