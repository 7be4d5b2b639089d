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

package api

import (
	"context"

	"uptran-invest-go/internal/accounts"
	"uptran-invest-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RequestWithdrawal queues a payout request for admin review
func (s *AccountService) RequestWithdrawal(ctx context.Context, userId string, amount decimal.Decimal, currency, walletAddress, note string) *models.OperationResult {
	request, err := s.accounts.AddWithdrawalRequest(ctx, userId, accounts.WithdrawalInput{
		Amount:        amount,
		Currency:      currency,
		WalletAddress: walletAddress,
		Note:          note,
	})
	if err != nil {
		logFailure(ctx, "Withdrawal request failed", err,
			zap.String("user_id", userId),
			zap.String("currency", currency),
			zap.String("amount", amount.String()))
		return failure(err)
	}

	return &models.OperationResult{
		Success:  true,
		UserId:   request.UserId,
		RecordId: request.Id,
		Status:   request.Status,
		Amount:   request.Amount,
	}
}

// ApproveWithdrawal approves a pending request. Settled reports whether the balance was debited.
func (s *AccountService) ApproveWithdrawal(ctx context.Context, requestId string) *models.OperationResult {
	request, err := s.accounts.ApproveWithdrawalRequest(ctx, requestId)
	if err != nil {
		logFailure(ctx, "Withdrawal approval failed", err, zap.String("request_id", requestId))
		return failure(err)
	}

	result := s.withdrawalResult(request)
	zap.L().Info("Withdrawal approved via api",
		append(operatorFields(ctx),
			zap.String("request_id", requestId),
			zap.Bool("settled", request.Settled),
			zap.String("new_balance", result.NewBalance.String()))...)
	return result
}

// RejectWithdrawal rejects a pending request without touching the balance
func (s *AccountService) RejectWithdrawal(ctx context.Context, requestId string) *models.OperationResult {
	request, err := s.accounts.RejectWithdrawalRequest(ctx, requestId)
	if err != nil {
		logFailure(ctx, "Withdrawal rejection failed", err, zap.String("request_id", requestId))
		return failure(err)
	}

	zap.L().Info("Withdrawal rejected via api", append(operatorFields(ctx), zap.String("request_id", requestId))...)
	return s.withdrawalResult(request)
}

// WithdrawProfit credits an investment's accrued profit to the owner's balance
func (s *AccountService) WithdrawProfit(ctx context.Context, userId, investmentId string) *models.OperationResult {
	withdrawal, err := s.accounts.WithdrawInvestmentProfit(ctx, userId, investmentId)
	if err != nil {
		logFailure(ctx, "Profit withdrawal failed", err,
			zap.String("user_id", userId),
			zap.String("investment_id", investmentId))
		return failure(err)
	}

	return &models.OperationResult{
		Success:    true,
		UserId:     withdrawal.User.Id,
		RecordId:   withdrawal.Investment.Id,
		Status:     withdrawal.Investment.Status,
		Amount:     withdrawal.WithdrawnAmount,
		NewBalance: withdrawal.User.Balance,
		Settled:    true,
	}
}

func (s *AccountService) withdrawalResult(request *models.WithdrawalRequest) *models.OperationResult {
	result := &models.OperationResult{
		Success:  true,
		UserId:   request.UserId,
		RecordId: request.Id,
		Status:   request.Status,
		Amount:   request.Amount,
		Settled:  request.Settled,
	}
	if user, err := s.accounts.GetUser(request.UserId); err == nil {
		result.NewBalance = user.Balance
	}
	return result
}
