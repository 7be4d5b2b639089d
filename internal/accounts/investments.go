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
	"context"
	"fmt"

	"uptran-invest-go/internal/models"
	"uptran-invest-go/internal/profit"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvestmentInput describes a new position. When AssetId names a catalog asset,
// the plan name, ROI and duration come from the catalog and the amount must fall
// inside the asset's limits.
type InvestmentInput struct {
	PlanName string
	AssetId  string
	Amount   decimal.Decimal
	Roi      decimal.Decimal
	Duration int
}

// ProfitWithdrawal is the outcome of crediting accrued profit to a balance
type ProfitWithdrawal struct {
	User            *models.User
	Investment      models.Investment
	WithdrawnAmount decimal.Decimal
}

// AddInvestment opens an active investment for an approved user. The balance is not debited.
func (m *Manager) AddInvestment(ctx context.Context, userId string, in InvestmentInput) (*models.Investment, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userId)
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !u.IsApproved {
		return nil, ErrNotApproved
	}

	if in.AssetId != "" {
		asset := m.findAsset(in.AssetId)
		if asset == nil {
			return nil, ErrAssetNotFound
		}
		if in.Amount.LessThan(asset.MinAmount) || (asset.MaxAmount.IsPositive() && in.Amount.GreaterThan(asset.MaxAmount)) {
			return nil, fmt.Errorf("%w: %s accepts %s to %s", ErrAmountOutOfRange,
				asset.Name, asset.MinAmount.String(), asset.MaxAmount.String())
		}
		if in.PlanName == "" {
			in.PlanName = asset.Name
		}
		in.Roi = asset.Roi
		in.Duration = asset.Duration
	}

	if in.PlanName == "" {
		return nil, fmt.Errorf("%w: plan name is required", ErrInvalidInput)
	}
	if in.Roi.IsNegative() || in.Duration < 0 {
		return nil, fmt.Errorf("%w: roi and duration cannot be negative", ErrInvalidInput)
	}

	investment := models.Investment{
		Id:              newId(),
		PlanName:        in.PlanName,
		AssetId:         in.AssetId,
		Amount:          in.Amount,
		Roi:             in.Roi,
		Duration:        in.Duration,
		StartDate:       m.timestamp(),
		Status:          models.InvestmentActive,
		WithdrawnProfit: decimal.Zero,
	}
	u.Investments = append(u.Investments, investment)

	if err := m.persistUser(ctx, u); err != nil {
		return nil, err
	}

	zap.L().Info("Investment opened",
		zap.String("investment_id", investment.Id),
		zap.String("user_id", u.Id),
		zap.String("plan", investment.PlanName),
		zap.String("amount", investment.Amount.String()),
		zap.String("roi", investment.Roi.String()),
		zap.Int("duration", investment.Duration))
	return &investment, nil
}

// WithdrawInvestmentProfit credits the profit accrued since the last withdrawal and
// logs a profit_withdrawal transaction. A completed term also closes the investment.
func (m *Manager) WithdrawInvestmentProfit(ctx context.Context, userId, investmentId string) (*ProfitWithdrawal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userId)
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !u.IsApproved {
		return nil, ErrNotApproved
	}

	idx := investmentIndex(u, investmentId)
	if idx < 0 {
		return nil, ErrInvestmentNotFound
	}
	inv := &u.Investments[idx]

	result, ok := profit.Calculate(*inv, m.now())
	if !ok {
		return nil, ErrNoProfitAvailable
	}
	available := result.CurrentProfit.Sub(inv.WithdrawnProfit)
	if !available.IsPositive() {
		return nil, ErrNoProfitAvailable
	}

	u.Balance = u.Balance.Add(available)
	inv.ProfitWithdrawn = true
	inv.WithdrawnProfit = inv.WithdrawnProfit.Add(available)
	inv.WithdrawnDate = m.timestamp()
	if result.IsCompleted {
		inv.Status = models.InvestmentCompleted
	}
	m.appendTransaction(u, models.Transaction{
		Type:        models.TransactionProfitWithdrawal,
		Amount:      available,
		Description: fmt.Sprintf("Profit withdrawal from %s", inv.PlanName),
	})

	if err := m.persistUser(ctx, u); err != nil {
		return nil, err
	}

	zap.L().Info("Investment profit withdrawn",
		zap.String("investment_id", investmentId),
		zap.String("user_id", userId),
		zap.String("amount", available.String()),
		zap.String("new_balance", u.Balance.String()),
		zap.Bool("completed", result.IsCompleted))

	return &ProfitWithdrawal{
		User:            u.Clone(),
		Investment:      *inv,
		WithdrawnAmount: available,
	}, nil
}

// InvestmentProfit returns the accrual snapshot of one investment
func (m *Manager) InvestmentProfit(userId, investmentId string) (*profit.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userId)
	if u == nil {
		return nil, ErrUserNotFound
	}
	idx := investmentIndex(u, investmentId)
	if idx < 0 {
		return nil, ErrInvestmentNotFound
	}
	result, ok := profit.Calculate(u.Investments[idx], m.now())
	if !ok {
		return nil, ErrNoProfitAvailable
	}
	return result, nil
}

// PendingProfit sums the accrued, not yet withdrawn profit across the user's investments
func (m *Manager) PendingProfit(userId string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userId)
	if u == nil {
		return decimal.Zero, ErrUserNotFound
	}

	now := m.now()
	total := decimal.Zero
	for _, inv := range u.Investments {
		result, ok := profit.Calculate(inv, now)
		if !ok {
			continue
		}
		if pending := result.CurrentProfit.Sub(inv.WithdrawnProfit); pending.IsPositive() {
			total = total.Add(pending)
		}
	}
	return total, nil
}

func investmentIndex(u *models.User, investmentId string) int {
	for i := range u.Investments {
		if u.Investments[i].Id == investmentId {
			return i
		}
	}
	return -1
}
