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
	"regexp"
	"sort"

	"uptran-invest-go/internal/accounts"
	"uptran-invest-go/internal/common"
	"uptran-invest-go/internal/config"
	"uptran-invest-go/internal/models"

	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	firstFlag := flag.String("first", "", "User's first name (required)")
	lastFlag := flag.String("last", "", "User's last name (required)")
	emailFlag := flag.String("email", "", "User's email address (required)")
	passwordFlag := flag.String("password", "", "User's password (required)")
	phoneFlag := flag.String("phone", "", "User's phone number")
	countryFlag := flag.String("country", "", "User's country")
	dobFlag := flag.String("dob", "", "User's date of birth (YYYY-MM-DD)")
	approveFlag := flag.Bool("approve", false, "Approve the account and KYC right away")
	flag.Parse()

	// Validate required flags
	if *firstFlag == "" || *lastFlag == "" || *emailFlag == "" || *passwordFlag == "" {
		zap.L().Fatal("Required flags: --first, --last, --email and --password")
	}

	for _, name := range []string{*firstFlag, *lastFlag} {
		if err := validateName(name); err != nil {
			zap.L().Fatal("Invalid name", zap.Error(err))
		}
	}
	if err := validateEmail(*emailFlag); err != nil {
		zap.L().Fatal("Invalid email", zap.Error(err))
	}
	if err := validatePassword(*passwordFlag); err != nil {
		zap.L().Fatal("Invalid password", zap.Error(err))
	}

	zap.L().Info("Starting user registration",
		zap.String("first_name", *firstFlag),
		zap.String("last_name", *lastFlag),
		zap.String("email", *emailFlag))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	zap.L().Info("Initializing services", zap.String("backend", cfg.Storage.Backend))
	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	user, err := services.Accounts.Register(ctx, accounts.RegisterInput{
		FirstName:   *firstFlag,
		LastName:    *lastFlag,
		Email:       *emailFlag,
		Password:    *passwordFlag,
		Phone:       *phoneFlag,
		Country:     *countryFlag,
		DateOfBirth: *dobFlag,
	})
	if err != nil {
		if errors.Is(err, accounts.ErrDuplicateUser) {
			zap.L().Fatal("User already exists with this email", zap.String("email", *emailFlag))
		}
		zap.L().Fatal("Failed to register user", zap.Error(err))
	}

	if *approveFlag {
		opCtx := models.WithOperator(ctx, &models.Operator{Id: cfg.Accounts.AdminId, Source: "cli"})
		result := services.ApiService.UpdateKycStatus(opCtx, user.Id, models.KycApproved, "")
		if !result.Success {
			zap.L().Fatal("Failed to approve user", zap.String("error_kind", result.ErrorKind), zap.String("error", result.Error))
		}
		user, err = services.Accounts.GetUser(user.Id)
		if err != nil {
			zap.L().Fatal("Failed to reload user", zap.Error(err))
		}
	}

	fmt.Println()
	common.PrintHeader("USER REGISTERED", common.DefaultWidth)
	fmt.Printf("ID:             %s\n", user.Id)
	fmt.Printf("Name:           %s\n", user.FullName())
	fmt.Printf("Email:          %s\n", user.Email)
	fmt.Printf("Account Number: %s\n", user.AccountNumber)
	fmt.Printf("Approved:       %t\n", user.IsApproved)
	fmt.Printf("KYC Status:     %s\n", common.ColorStatus(string(user.KycStatus)))
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Println()

	wallets := services.Accounts.WalletAddresses()
	if len(wallets) > 0 {
		fmt.Println("Deposit funds to one of the platform wallets:")
		currencies := make([]string, 0, len(wallets))
		for currency := range wallets {
			currencies = append(currencies, currency)
		}
		sort.Strings(currencies)
		for _, currency := range currencies {
			fmt.Printf("  %-6s %s\n", currency, wallets[currency])
		}
		fmt.Println()
	}

	zap.L().Info("User registered successfully",
		zap.String("id", user.Id),
		zap.Bool("approved", user.IsApproved))
}
