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
	"fmt"

	"uptran-invest-go/internal/models"

	"go.uber.org/zap"
)

// GetUserBalance returns the spendable balance and the profit accrued but not yet withdrawn
func (s *AccountService) GetUserBalance(ctx context.Context, userId string) (*models.UserBalance, error) {
	if userId == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	user, err := s.accounts.GetUser(userId)
	if err != nil {
		zap.L().Error("Failed to get user balance", zap.String("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve balance: %w", err)
	}

	pending, err := s.accounts.PendingProfit(userId)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate pending profit: %w", err)
	}

	return &models.UserBalance{
		UserId:        user.Id,
		AccountNumber: user.AccountNumber,
		Balance:       user.Balance,
		PendingProfit: pending,
	}, nil
}

// GetTransactionHistory returns a page of the user's transactions, most recent first
func (s *AccountService) GetTransactionHistory(ctx context.Context, userId string, limit, offset int) ([]models.TransactionRecord, error) {
	if userId == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	user, err := s.accounts.GetUser(userId)
	if err != nil {
		zap.L().Error("Failed to get transaction history", zap.String("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve transaction history: %w", err)
	}

	// The log is append-only, so reversing it yields most recent first
	transactions := make([]models.Transaction, len(user.Transactions))
	for i, tx := range user.Transactions {
		transactions[len(transactions)-1-i] = tx
	}

	if offset >= len(transactions) {
		return []models.TransactionRecord{}, nil
	}
	end := offset + limit
	if end > len(transactions) {
		end = len(transactions)
	}

	page := transactions[offset:end]
	result := make([]models.TransactionRecord, len(page))
	for i, tx := range page {
		result[i] = models.TransactionRecord{
			Id:          tx.Id,
			Type:        tx.Type,
			Amount:      tx.Amount,
			Description: tx.Description,
			ProcessedAt: tx.Date,
		}
	}

	return result, nil
}
