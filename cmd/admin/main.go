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

	"uptran-invest-go/internal/accounts"
	"uptran-invest-go/internal/common"
	"uptran-invest-go/internal/config"
	"uptran-invest-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type adminFlags struct {
	email             string
	password          string
	listPending       bool
	approveDeposit    string
	approveWithdrawal string
	rejectWithdrawal  string
	approveUser       string
	kycUser           string
	kycStatus         string
	kycReason         string
	addAsset          string
	section           string
	roi               string
	minAmount         string
	maxAmount         string
	duration          int
	deleteAsset       string
	updateAsset       string
	name              string
	listCatalog       bool

	assetInput  accounts.AssetInput
	assetUpdate accounts.AssetUpdate
}

func parseFlags() (*adminFlags, error) {
	f := &adminFlags{}
	flag.StringVar(&f.email, "email", "", "Admin email (required)")
	flag.StringVar(&f.password, "password", "", "Admin password (required)")
	flag.BoolVar(&f.listPending, "list-pending", false, "List pending deposits, withdrawals and KYC submissions")
	flag.StringVar(&f.approveDeposit, "approve-deposit", "", "Approve the deposit with this ID")
	flag.StringVar(&f.approveWithdrawal, "approve-withdrawal", "", "Approve the withdrawal request with this ID")
	flag.StringVar(&f.rejectWithdrawal, "reject-withdrawal", "", "Reject the withdrawal request with this ID")
	flag.StringVar(&f.approveUser, "approve-user", "", "Approve the user with this ID")
	flag.StringVar(&f.kycUser, "kyc", "", "Set the KYC status of the user with this ID (use with --status)")
	flag.StringVar(&f.kycStatus, "status", "", "KYC status: not_submitted, submitted, approved, rejected")
	flag.StringVar(&f.kycReason, "reason", "", "Rejection reason for --status rejected")
	flag.StringVar(&f.addAsset, "add-asset", "", "Add a catalog asset with this name (use with --section)")
	flag.StringVar(&f.section, "section", "", "Catalog section for --add-asset")
	flag.StringVar(&f.roi, "roi", "", "ROI percent for --add-asset or --update-asset")
	flag.StringVar(&f.minAmount, "min", "", "Minimum amount for --add-asset or --update-asset")
	flag.StringVar(&f.maxAmount, "max", "", "Maximum amount, 0 for no maximum")
	flag.IntVar(&f.duration, "duration", -1, "Duration in days for --add-asset or --update-asset")
	flag.StringVar(&f.name, "name", "", "New name for --update-asset")
	flag.StringVar(&f.deleteAsset, "delete-asset", "", "Delete the catalog asset with this ID")
	flag.StringVar(&f.updateAsset, "update-asset", "", "Update the catalog asset with this ID")
	flag.BoolVar(&f.listCatalog, "list-catalog", false, "List the investment catalog")
	flag.Parse()

	if f.email == "" || f.password == "" {
		return nil, fmt.Errorf("--email and --password are required")
	}

	actions := 0
	for _, set := range []bool{
		f.listPending, f.approveDeposit != "", f.approveWithdrawal != "", f.rejectWithdrawal != "",
		f.approveUser != "", f.kycUser != "", f.addAsset != "", f.deleteAsset != "",
		f.updateAsset != "", f.listCatalog,
	} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		return nil, fmt.Errorf("exactly one action flag is required")
	}

	if f.kycUser != "" && !models.KycStatus(f.kycStatus).Valid() {
		return nil, fmt.Errorf("invalid --status %q", f.kycStatus)
	}
	if f.addAsset != "" && f.section == "" {
		return nil, fmt.Errorf("--section is required with --add-asset")
	}

	var err error
	if f.addAsset != "" {
		if f.assetInput, err = parseAssetInput(f); err != nil {
			return nil, err
		}
	}
	if f.updateAsset != "" {
		if f.assetUpdate, err = parseAssetUpdate(f); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func parseOptionalDecimal(value, name string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return &d, nil
}

func parseAssetUpdate(f *adminFlags) (accounts.AssetUpdate, error) {
	var upd accounts.AssetUpdate
	var err error
	if upd.Roi, err = parseOptionalDecimal(f.roi, "roi"); err != nil {
		return upd, err
	}
	if upd.MinAmount, err = parseOptionalDecimal(f.minAmount, "min"); err != nil {
		return upd, err
	}
	if upd.MaxAmount, err = parseOptionalDecimal(f.maxAmount, "max"); err != nil {
		return upd, err
	}
	if f.name != "" {
		upd.Name = &f.name
	}
	if f.duration >= 0 {
		upd.Duration = &f.duration
	}
	return upd, nil
}

func parseAssetInput(f *adminFlags) (accounts.AssetInput, error) {
	in := accounts.AssetInput{Name: f.addAsset}
	upd, err := parseAssetUpdate(f)
	if err != nil {
		return in, err
	}
	if upd.Roi != nil {
		in.Roi = *upd.Roi
	}
	if upd.MinAmount != nil {
		in.MinAmount = *upd.MinAmount
	}
	if upd.MaxAmount != nil {
		in.MaxAmount = *upd.MaxAmount
	}
	if upd.Duration != nil {
		in.Duration = *upd.Duration
	}
	return in, nil
}

func printAsset(title string, asset *models.InvestmentAsset) {
	common.PrintHeader(title, common.DefaultWidth)
	fmt.Printf("ID:       %s\n", asset.Id)
	fmt.Printf("Section:  %s\n", asset.Section)
	fmt.Printf("Name:     %s\n", asset.Name)
	fmt.Printf("ROI:      %s%%\n", asset.Roi.String())
	fmt.Printf("Range:    %s - %s\n", common.FormatAmount(asset.MinAmount), common.FormatAmount(asset.MaxAmount))
	fmt.Printf("Duration: %d days\n", asset.Duration)
	common.PrintSeparator("=", common.DefaultWidth)
}

func printCatalog(manager *accounts.Manager) {
	catalog := manager.InvestmentAssets()
	for _, section := range manager.Sections() {
		common.PrintHeader(strings.ToUpper(section), common.DefaultWidth)
		assets := catalog[section]
		for i, a := range assets {
			isLast := i == len(assets)-1
			fmt.Printf("%s%s (%s)\n", common.BoxPrefix(isLast), a.Name, a.Id)
			fmt.Printf("%sROI %s%% over %d days, %s - %s\n", common.BoxDetailPrefix(isLast), a.Roi.String(), a.Duration,
				common.FormatAmount(a.MinAmount), common.FormatAmount(a.MaxAmount))
		}
	}
	common.PrintSeparator("=", common.DefaultWidth)
}

func printPending(services *common.Services) {
	manager := services.Accounts

	common.PrintHeader("PENDING DEPOSITS", common.DefaultWidth)
	count := 0
	for _, d := range manager.Deposits() {
		if d.Status != models.DepositPending {
			continue
		}
		count++
		fmt.Printf("%-36s  %-24s  %-6s  %12s  %s\n", d.Id, d.UserEmail, d.Asset, common.FormatAmount(d.Amount), common.FormatTime(&d.Date))
	}
	if count == 0 {
		fmt.Println("No pending deposits")
	}

	common.PrintHeader("PENDING WITHDRAWALS", common.DefaultWidth)
	count = 0
	for _, w := range manager.WithdrawalRequests() {
		if w.Status != models.WithdrawalPending {
			continue
		}
		count++
		fmt.Printf("%-36s  %-24s  %-6s  %12s  %s\n", w.Id, w.UserEmail, w.Currency, common.FormatAmount(w.Amount), w.WalletAddress)
		if w.Note != "" {
			fmt.Printf("    Note: %s\n", w.Note)
		}
	}
	if count == 0 {
		fmt.Println("No pending withdrawals")
	}

	common.PrintHeader("PENDING KYC", common.DefaultWidth)
	pending := manager.UsersWithPendingKyc()
	for _, u := range pending {
		fmt.Printf("%-36s  %-24s  %s\n", u.Id, u.Email, u.FullName())
	}
	if len(pending) == 0 {
		fmt.Println("No pending KYC submissions")
	}
	common.PrintSeparator("=", common.DefaultWidth)
}

func printResult(title string, result *models.OperationResult) error {
	if !result.Success {
		common.PrintHeader(title+" FAILED", common.DefaultWidth)
		fmt.Printf("Reason: %s (%s)\n", result.Error, result.ErrorKind)
		common.PrintSeparator("=", common.DefaultWidth)
		return fmt.Errorf("%s: %s", result.ErrorKind, result.Error)
	}

	common.PrintHeader(title, common.DefaultWidth)
	if result.RecordId != "" {
		fmt.Printf("Record:      %s\n", result.RecordId)
	}
	if result.UserId != "" {
		fmt.Printf("User:        %s\n", result.UserId)
	}
	if result.Status != "" {
		fmt.Printf("Status:      %s\n", common.ColorStatus(result.Status))
	}
	if !result.Amount.IsZero() {
		fmt.Printf("Amount:      %s\n", common.FormatAmount(result.Amount))
	}
	if !result.NewBalance.IsZero() {
		fmt.Printf("New Balance: %s\n", common.FormatAmount(result.NewBalance))
	}
	if result.Status == models.WithdrawalApproved && !result.Settled {
		fmt.Println("Balance did not cover the request; approved without debiting")
	}
	common.PrintSeparator("=", common.DefaultWidth)
	return nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	f, err := parseFlags()
	if err != nil {
		flag.Usage()
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

	admin, err := services.Accounts.Login(ctx, f.email, f.password)
	if err != nil {
		zap.L().Fatal("Login failed", zap.String("email", f.email), zap.Error(err))
	}

	// The admin session is cleared before any exit so it never outlives this command
	actionErr := fmt.Errorf("account %s is not an administrator", f.email)
	if admin.IsAdmin {
		opCtx := models.WithOperator(ctx, &models.Operator{Id: admin.Id, Source: "cli"})
		actionErr = runAction(opCtx, services, f)
	}

	if err := services.Accounts.Logout(ctx); err != nil {
		zap.L().Warn("Failed to clear admin session", zap.Error(err))
	}
	if actionErr != nil {
		zap.L().Fatal("Admin action failed", zap.Error(actionErr))
	}
}

func runAction(ctx context.Context, services *common.Services, f *adminFlags) error {
	api := services.ApiService
	manager := services.Accounts

	switch {
	case f.listPending:
		printPending(services)
	case f.approveDeposit != "":
		return printResult("DEPOSIT APPROVED", api.ApproveDeposit(ctx, f.approveDeposit))
	case f.approveWithdrawal != "":
		return printResult("WITHDRAWAL APPROVED", api.ApproveWithdrawal(ctx, f.approveWithdrawal))
	case f.rejectWithdrawal != "":
		return printResult("WITHDRAWAL REJECTED", api.RejectWithdrawal(ctx, f.rejectWithdrawal))
	case f.approveUser != "":
		return printResult("USER APPROVED", api.ApproveUser(ctx, f.approveUser))
	case f.kycUser != "":
		return printResult("KYC UPDATED", api.UpdateKycStatus(ctx, f.kycUser, models.KycStatus(f.kycStatus), f.kycReason))
	case f.addAsset != "":
		asset, err := manager.AddInvestmentAsset(ctx, f.section, f.assetInput)
		if err != nil {
			return fmt.Errorf("unable to add asset: %w", err)
		}
		printAsset("ASSET ADDED", asset)
	case f.updateAsset != "":
		if _, err := manager.UpdateInvestmentAsset(ctx, f.updateAsset, f.assetUpdate); err != nil {
			return fmt.Errorf("unable to update asset %s: %w", f.updateAsset, err)
		}
		asset, err := manager.FindInvestmentAsset(f.updateAsset)
		if err != nil {
			return fmt.Errorf("updated asset %s not found: %w", f.updateAsset, err)
		}
		printAsset("ASSET UPDATED", asset)
	case f.listCatalog:
		printCatalog(manager)
	case f.deleteAsset != "":
		removed, err := manager.DeleteInvestmentAsset(ctx, f.deleteAsset)
		if err != nil {
			return fmt.Errorf("unable to delete asset %s: %w", f.deleteAsset, err)
		}
		if removed {
			fmt.Printf("Asset %s deleted\n", f.deleteAsset)
		} else {
			fmt.Printf("Asset %s not found, nothing to delete\n", f.deleteAsset)
		}
	}
	return nil
}
