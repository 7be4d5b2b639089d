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

// SubmitDeposit records a user's claim that funds were sent to a platform wallet
func (s *AccountService) SubmitDeposit(ctx context.Context, userId, asset string, amount decimal.Decimal, reference string) *models.OperationResult {
	deposit, err := s.accounts.AddDeposit(ctx, userId, accounts.DepositInput{
		Asset:     asset,
		Amount:    amount,
		Reference: reference,
	})
	if err != nil {
		logFailure(ctx, "Deposit submission failed", err,
			zap.String("user_id", userId),
			zap.String("asset", asset),
			zap.String("amount", amount.String()))
		return failure(err)
	}

	return &models.OperationResult{
		Success:  true,
		UserId:   deposit.UserId,
		RecordId: deposit.Id,
		Status:   deposit.Status,
		Amount:   deposit.Amount,
	}
}

// ApproveDeposit credits a pending deposit to its owner
func (s *AccountService) ApproveDeposit(ctx context.Context, depositId string) *models.OperationResult {
	deposit, err := s.accounts.ApproveDeposit(ctx, depositId)
	if err != nil {
		logFailure(ctx, "Deposit approval failed", err, zap.String("deposit_id", depositId))
		return failure(err)
	}

	result := &models.OperationResult{
		Success:  true,
		UserId:   deposit.UserId,
		RecordId: deposit.Id,
		Status:   deposit.Status,
		Amount:   deposit.Amount,
	}
	if user, err := s.accounts.GetUser(deposit.UserId); err == nil {
		result.NewBalance = user.Balance
	}

	zap.L().Info("Deposit approved via api",
		append(operatorFields(ctx),
			zap.String("deposit_id", depositId),
			zap.String("user_id", deposit.UserId),
			zap.String("new_balance", result.NewBalance.String()))...)
	return result
}
