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
	"unicode/utf8"

	"uptran-invest-go/internal/models"
	"uptran-invest-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DepositInput describes a deposit the user claims to have sent
type DepositInput struct {
	Asset     string
	Amount    decimal.Decimal
	Reference string
}

// WithdrawalInput describes a payout the user asks for
type WithdrawalInput struct {
	Amount        decimal.Decimal
	Currency      string
	WalletAddress string
	Note          string
}

// AddDeposit records a pending deposit in the ledger. The ledger is the only copy;
// per-user history is derived from it by DepositHistory.
func (m *Manager) AddDeposit(ctx context.Context, userId string, in DepositInput) (*models.Deposit, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.Asset == "" {
		return nil, fmt.Errorf("%w: asset is required", ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userId)
	if u == nil {
		return nil, ErrUserNotFound
	}

	deposit := models.Deposit{
		Id:        newId(),
		UserId:    u.Id,
		UserName:  u.FullName(),
		UserEmail: u.Email,
		Asset:     in.Asset,
		Amount:    in.Amount,
		Reference: in.Reference,
		Status:    models.DepositPending,
		Date:      m.now(),
	}
	m.deposits = append(m.deposits, deposit)

	if err := m.persist(ctx, store.KeyDepositHistory); err != nil {
		return nil, err
	}

	zap.L().Info("Deposit recorded",
		zap.String("deposit_id", deposit.Id),
		zap.String("user_id", u.Id),
		zap.String("asset", deposit.Asset),
		zap.String("amount", deposit.Amount.String()))
	return &deposit, nil
}

// ApproveDeposit credits the owner's balance and logs a deposit transaction.
// Only pending deposits can be approved, so a deposit is never credited twice.
func (m *Manager) ApproveDeposit(ctx context.Context, depositId string) (*models.Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.depositIndex(depositId)
	if idx < 0 {
		return nil, ErrDepositNotFound
	}
	deposit := &m.deposits[idx]
	if deposit.Status != models.DepositPending {
		return nil, fmt.Errorf("%w: deposit %s is %s", ErrInvalidState, depositId, deposit.Status)
	}

	u := m.findUser(deposit.UserId)
	if u == nil {
		return nil, ErrUserNotFound
	}

	oldBalance := u.Balance
	deposit.Status = models.DepositApproved
	deposit.ApprovedDate = m.timestamp()
	u.Balance = u.Balance.Add(deposit.Amount)
	m.appendTransaction(u, models.Transaction{
		Type:        models.TransactionDeposit,
		Amount:      deposit.Amount,
		Description: fmt.Sprintf("Approved deposit via %s", deposit.Asset),
	})

	keys := []string{store.KeyDepositHistory, store.KeyUsers}
	if m.session != nil && m.session.Id == u.Id {
		m.session = u.Clone()
		keys = append(keys, store.KeyCurrentUser)
	}
	if err := m.persist(ctx, keys...); err != nil {
		return nil, err
	}

	zap.L().Info("Deposit approved",
		zap.String("deposit_id", depositId),
		zap.String("user_id", u.Id),
		zap.String("amount", deposit.Amount.String()),
		zap.String("old_balance", oldBalance.String()),
		zap.String("new_balance", u.Balance.String()))

	out := *deposit
	return &out, nil
}

// Deposits returns the whole ledger in insertion order
func (m *Manager) Deposits() []models.Deposit {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.Deposit(nil), m.deposits...)
}

// DepositHistory returns the user's deposits, most recent first
func (m *Manager) DepositHistory(userId string) []models.Deposit {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Deposit
	for i := len(m.deposits) - 1; i >= 0; i-- {
		if m.deposits[i].UserId == userId {
			out = append(out, m.deposits[i])
		}
	}
	return out
}

// AddWithdrawalRequest queues a payout for review. Funds are not reserved.
func (m *Manager) AddWithdrawalRequest(ctx context.Context, userId string, in WithdrawalInput) (*models.WithdrawalRequest, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.Currency == "" || in.WalletAddress == "" {
		return nil, fmt.Errorf("%w: currency and wallet address are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Note) > models.MaxWithdrawalNoteLength {
		return nil, ErrNoteTooLong
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userId)
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !u.IsApproved {
		zap.L().Info("Withdrawal request rejected, user not approved", zap.String("user_id", userId))
		return nil, ErrNotApproved
	}

	request := models.WithdrawalRequest{
		Id:            newId(),
		UserId:        u.Id,
		UserName:      u.FullName(),
		UserEmail:     u.Email,
		Amount:        in.Amount,
		Currency:      in.Currency,
		WalletAddress: in.WalletAddress,
		Note:          in.Note,
		Status:        models.WithdrawalPending,
		RequestDate:   m.now(),
	}
	m.withdrawals = append(m.withdrawals, request)

	if err := m.persist(ctx, store.KeyWithdrawalRequests); err != nil {
		return nil, err
	}

	zap.L().Info("Withdrawal requested",
		zap.String("request_id", request.Id),
		zap.String("user_id", u.Id),
		zap.String("currency", request.Currency),
		zap.String("amount", request.Amount.String()))
	return &request, nil
}

// ApproveWithdrawalRequest marks a pending request approved. The balance is debited only
// when it still covers the amount; otherwise the request is approved unsettled and the
// balance is left as is.
func (m *Manager) ApproveWithdrawalRequest(ctx context.Context, requestId string) (*models.WithdrawalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.withdrawalIndex(requestId)
	if idx < 0 {
		return nil, ErrWithdrawalNotFound
	}
	request := &m.withdrawals[idx]
	if request.Status != models.WithdrawalPending {
		return nil, fmt.Errorf("%w: withdrawal %s is %s", ErrInvalidState, requestId, request.Status)
	}

	request.Status = models.WithdrawalApproved
	request.ApprovedDate = m.timestamp()
	keys := []string{store.KeyWithdrawalRequests}

	u := m.findUser(request.UserId)
	switch {
	case u == nil:
		zap.L().Warn("Withdrawal approved for unknown user", zap.String("request_id", requestId))
	case u.Balance.GreaterThanOrEqual(request.Amount):
		u.Balance = u.Balance.Sub(request.Amount)
		request.Settled = true
		m.appendTransaction(u, models.Transaction{
			Type:        models.TransactionWithdraw,
			Amount:      request.Amount,
			Description: fmt.Sprintf("Approved withdrawal to %s wallet", request.Currency),
		})
		keys = append(keys, store.KeyUsers)
		if m.session != nil && m.session.Id == u.Id {
			m.session = u.Clone()
			keys = append(keys, store.KeyCurrentUser)
		}
	default:
		zap.L().Warn("Withdrawal approved without settlement, insufficient balance",
			zap.String("request_id", requestId),
			zap.String("user_id", u.Id),
			zap.String("balance", u.Balance.String()),
			zap.String("amount", request.Amount.String()))
	}

	if err := m.persist(ctx, keys...); err != nil {
		return nil, err
	}

	zap.L().Info("Withdrawal approved",
		zap.String("request_id", requestId),
		zap.Bool("settled", request.Settled))

	out := *request
	return &out, nil
}

// RejectWithdrawalRequest marks a pending request rejected; balances are untouched
func (m *Manager) RejectWithdrawalRequest(ctx context.Context, requestId string) (*models.WithdrawalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.withdrawalIndex(requestId)
	if idx < 0 {
		return nil, ErrWithdrawalNotFound
	}
	request := &m.withdrawals[idx]
	if request.Status != models.WithdrawalPending {
		return nil, fmt.Errorf("%w: withdrawal %s is %s", ErrInvalidState, requestId, request.Status)
	}

	request.Status = models.WithdrawalRejected
	request.RejectedDate = m.timestamp()

	if err := m.persist(ctx, store.KeyWithdrawalRequests); err != nil {
		return nil, err
	}

	zap.L().Info("Withdrawal rejected", zap.String("request_id", requestId))
	out := *request
	return &out, nil
}

// WithdrawalRequests returns the whole queue in insertion order
func (m *Manager) WithdrawalRequests() []models.WithdrawalRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.WithdrawalRequest(nil), m.withdrawals...)
}

// WithdrawalRequestsForUser returns the user's requests, most recent first
func (m *Manager) WithdrawalRequestsForUser(userId string) []models.WithdrawalRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.WithdrawalRequest
	for i := len(m.withdrawals) - 1; i >= 0; i-- {
		if m.withdrawals[i].UserId == userId {
			out = append(out, m.withdrawals[i])
		}
	}
	return out
}

func (m *Manager) depositIndex(depositId string) int {
	for i := range m.deposits {
		if m.deposits[i].Id == depositId {
			return i
		}
	}
	return -1
}

func (m *Manager) withdrawalIndex(requestId string) int {
	for i := range m.withdrawals {
		if m.withdrawals[i].Id == requestId {
			return i
		}
	}
	return -1
}
