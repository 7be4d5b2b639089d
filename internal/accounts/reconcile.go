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

package accounts

import (
	"fmt"

	"uptran-invest-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReconcileBalance replays the user's transaction log and compares the result with the
// stored balance. It returns the expected balance; a drift yields ErrBalanceMismatch.
func (m *Manager) ReconcileBalance(userId string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userId)
	if u == nil {
		return decimal.Zero, ErrUserNotFound
	}

	expected := decimal.Zero
	for _, tx := range u.Transactions {
		switch tx.Type {
		case models.TransactionDeposit, models.TransactionProfitWithdrawal:
			expected = expected.Add(tx.Amount)
		case models.TransactionWithdraw:
			expected = expected.Sub(tx.Amount)
		}
	}

	if !expected.Equal(u.Balance) {
		zap.L().Warn("Balance mismatch",
			zap.String("user_id", userId),
			zap.String("stored", u.Balance.String()),
			zap.String("calculated", expected.String()))
		return expected, fmt.Errorf("%w: stored %s, calculated %s", ErrBalanceMismatch, u.Balance.String(), expected.String())
	}
	return expected, nil
}
