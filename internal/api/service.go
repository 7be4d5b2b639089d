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
	"errors"
	"fmt"

	"uptran-invest-go/internal/accounts"
	"uptran-invest-go/internal/models"
	"uptran-invest-go/internal/store"

	"go.uber.org/zap"
)

// AccountService wraps the account manager with result-typed operations for CLIs and callers
// that want a success flag and a stable error kind instead of Go errors.
type AccountService struct {
	accounts *accounts.Manager
	kv       store.KVStore
}

func NewAccountService(manager *accounts.Manager, kv store.KVStore) *AccountService {
	return &AccountService{
		accounts: manager,
		kv:       kv,
	}
}

// Accounts exposes the underlying manager for read paths that need full records
func (s *AccountService) Accounts() *accounts.Manager {
	return s.accounts
}

func (s *AccountService) HealthCheck(ctx context.Context) error {
	_, err := s.kv.Get(ctx, store.KeyUsers)
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{accounts.ErrDuplicateUser, "duplicate_user"},
	{accounts.ErrInvalidCredentials, "invalid_credentials"},
	{accounts.ErrUserNotFound, "user_not_found"},
	{accounts.ErrNotApproved, "not_allowed"},
	{accounts.ErrInvalidInput, "invalid_input"},
	{accounts.ErrInvalidAmount, "invalid_amount"},
	{accounts.ErrAmountOutOfRange, "amount_out_of_range"},
	{accounts.ErrNoteTooLong, "note_too_long"},
	{accounts.ErrInvalidKycStatus, "invalid_kyc_status"},
	{accounts.ErrDepositNotFound, "deposit_not_found"},
	{accounts.ErrWithdrawalNotFound, "withdrawal_not_found"},
	{accounts.ErrInvestmentNotFound, "investment_not_found"},
	{accounts.ErrNoProfitAvailable, "no_profit_available"},
	{accounts.ErrAssetNotFound, "asset_not_found"},
	{accounts.ErrInvalidState, "invalid_state"},
	{accounts.ErrBalanceMismatch, "balance_mismatch"},
}

// ErrorKind maps an error to its stable result code; unknown errors are "internal"
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}

func failure(err error) *models.OperationResult {
	return &models.OperationResult{
		Success:   false,
		ErrorKind: ErrorKind(err),
		Error:     err.Error(),
	}
}

// logFailure logs expected business outcomes at info and everything else at error
func logFailure(ctx context.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, operatorFields(ctx)...)
	fields = append(fields, zap.Error(err))
	if ErrorKind(err) == "internal" {
		zap.L().Error(msg, fields...)
		return
	}
	zap.L().Info(msg, fields...)
}

func operatorFields(ctx context.Context) []zap.Field {
	op := models.GetOperator(ctx)
	if op == nil {
		return nil
	}
	return []zap.Field{
		zap.String("operator_id", op.Id),
		zap.String("operator_source", op.Source),
	}
}
