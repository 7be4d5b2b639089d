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

	"go.uber.org/zap"
)

type profileFlags struct {
	email       string
	password    string
	first       string
	last        string
	phone       string
	country     string
	dob         string
	newPassword string
	submitKyc   bool
}

// buildUpdate turns the non-empty flags into a patch; ok is false when nothing changes
func buildUpdate(f profileFlags) (update accounts.UserUpdate, ok bool) {
	set := func(dst **string, v string) {
		if v != "" {
			s := v
			*dst = &s
			ok = true
		}
	}
	set(&update.FirstName, f.first)
	set(&update.LastName, f.last)
	set(&update.Phone, f.phone)
	set(&update.Country, f.country)
	set(&update.DateOfBirth, f.dob)
	set(&update.Password, f.newPassword)
	if f.submitKyc {
		status := models.KycSubmitted
		update.KycStatus = &status
		ok = true
	}
	return update, ok
}

func printProfile(manager *accounts.Manager, user *models.User) {
	common.PrintHeader(fmt.Sprintf("PROFILE: %s", user.Email), common.DefaultWidth)
	fmt.Printf("Name:          %s\n", user.FullName())
	fmt.Printf("Account:       %s\n", user.AccountNumber)
	fmt.Printf("Phone:         %s\n", user.Phone)
	fmt.Printf("Country:       %s\n", user.Country)
	fmt.Printf("Balance:       %s\n", common.FormatAmount(user.Balance))
	fmt.Printf("Approved:      %t\n", user.IsApproved)
	fmt.Printf("KYC:           %s\n", common.ColorStatus(string(user.KycStatus)))
	if user.KycRejectionReason != "" {
		fmt.Printf("KYC Reason:    %s\n", user.KycRejectionReason)
	}
	fmt.Printf("Session Until: %s\n", common.FormatTime(user.LoginExpiry))

	requests := manager.WithdrawalRequestsForUser(user.Id)
	common.PrintBoxSeparator(common.DefaultWidth - 1)
	fmt.Printf("│  Withdrawal requests: %d\n", len(requests))
	for i, r := range requests {
		isLast := i == len(requests)-1
		fmt.Printf("%s%s %s to %s  %s\n", common.BoxPrefix(isLast), common.FormatAmount(r.Amount), r.Currency,
			r.WalletAddress, common.ColorStatus(r.Status))
		fmt.Printf("%sRequested %s\n", common.BoxDetailPrefix(isLast), common.FormatTime(&r.RequestDate))
	}
	common.PrintSeparator("=", common.DefaultWidth)
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	var f profileFlags
	flag.StringVar(&f.email, "email", "", "User email (required)")
	flag.StringVar(&f.password, "password", "", "User password (required)")
	flag.StringVar(&f.first, "first", "", "New first name")
	flag.StringVar(&f.last, "last", "", "New last name")
	flag.StringVar(&f.phone, "phone", "", "New phone number")
	flag.StringVar(&f.country, "country", "", "New country")
	flag.StringVar(&f.dob, "dob", "", "New date of birth (YYYY-MM-DD)")
	flag.StringVar(&f.newPassword, "new-password", "", "New password")
	flag.BoolVar(&f.submitKyc, "submit-kyc", false, "Mark KYC documents as submitted")
	flag.Parse()

	if f.email == "" || f.password == "" {
		zap.L().Fatal("--email and --password are required")
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
	user, err := manager.Login(ctx, f.email, f.password)
	if err != nil {
		zap.L().Fatal("Login failed", zap.String("email", f.email), zap.Error(err))
	}

	if update, ok := buildUpdate(f); ok {
		userId := user.Id
		if user, err = manager.UpdateUser(ctx, userId, update); err != nil {
			// A failed update must not leave the login behind
			if logoutErr := manager.Logout(ctx); logoutErr != nil {
				zap.L().Warn("Failed to clear session", zap.Error(logoutErr))
			}
			zap.L().Fatal("Profile update failed", zap.String("user_id", userId), zap.Error(err))
		}
		zap.L().Info("Profile updated", zap.String("user_id", userId))
	}

	if err := manager.RefreshSession(ctx); err != nil {
		zap.L().Warn("Failed to refresh session", zap.Error(err))
	}
	if current := manager.CurrentUser(); current != nil {
		user = current
	}

	printProfile(manager, user)
}
