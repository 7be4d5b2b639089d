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

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RegisterInput carries the caller-supplied fields of a new account
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Phone       string
	Country     string
	DateOfBirth string
}

// UserUpdate is a shallow patch; nil fields are left unchanged
type UserUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Password    *string
	Phone       *string
	Country     *string
	DateOfBirth *string
	Balance     *decimal.Decimal
	IsApproved  *bool
	KycStatus   *models.KycStatus
}

// Register creates an unapproved account with a zero balance and logs it in.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findUserByEmail(in.Email) != nil {
		zap.L().Info("Registration rejected, email in use", zap.String("email", in.Email))
		return nil, ErrDuplicateUser
	}

	now := m.now()
	u := &models.User{
		Id:            newId(),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Password:      in.Password,
		Phone:         in.Phone,
		Country:       in.Country,
		DateOfBirth:   in.DateOfBirth,
		Balance:       decimal.Zero,
		AccountNumber: generateAccountNumber(now),
		Investments:   []models.Investment{},
		Transactions:  []models.Transaction{},
		CreatedAt:     now,
		KycStatus:     models.KycNotSubmitted,
	}
	m.users = append(m.users, u)

	if err := m.startSession(ctx, u); err != nil {
		return nil, err
	}

	zap.L().Info("User registered",
		zap.String("user_id", u.Id),
		zap.String("email", u.Email),
		zap.String("account_number", u.AccountNumber))
	return u.Clone(), nil
}

// GetUser returns a copy of the user with the given id
func (m *Manager) GetUser(userId string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userId)
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u.Clone(), nil
}

// GetUserByEmail returns a copy of the user with the given email (exact match)
func (m *Manager) GetUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUserByEmail(email)
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u.Clone(), nil
}

// Users returns copies of every user in registration order
func (m *Manager) Users() []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u.Clone())
	}
	return out
}

// UpdateUser applies a shallow patch and refreshes the session snapshot if it belongs to the user.
func (m *Manager) UpdateUser(ctx context.Context, userId string, update UserUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userId)
	if u == nil {
		return nil, ErrUserNotFound
	}

	if update.Email != nil && *update.Email != u.Email {
		if *update.Email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
		}
		if m.findUserByEmail(*update.Email) != nil {
			return nil, ErrDuplicateUser
		}
	}
	if update.Balance != nil && update.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance cannot be negative", ErrInvalidAmount)
	}
	if update.KycStatus != nil && !update.KycStatus.Valid() {
		return nil, ErrInvalidKycStatus
	}

	applyString(&u.FirstName, update.FirstName)
	applyString(&u.LastName, update.LastName)
	applyString(&u.Email, update.Email)
	applyString(&u.Password, update.Password)
	applyString(&u.Phone, update.Phone)
	applyString(&u.Country, update.Country)
	applyString(&u.DateOfBirth, update.DateOfBirth)
	if update.Balance != nil {
		u.Balance = *update.Balance
	}
	if update.IsApproved != nil {
		u.IsApproved = *update.IsApproved
	}
	if update.KycStatus != nil {
		u.KycStatus = *update.KycStatus
	}

	if err := m.persistUser(ctx, u); err != nil {
		return nil, err
	}

	zap.L().Debug("User updated", zap.String("user_id", userId))
	return u.Clone(), nil
}

// ApproveUser allows the user to invest and request withdrawals
func (m *Manager) ApproveUser(ctx context.Context, userId string) (*models.User, error) {
	approved := true
	return m.UpdateUser(ctx, userId, UserUpdate{IsApproved: &approved})
}

// UpdateKycStatus records a KYC decision. Moving to approved also approves the account,
// whatever its previous approval state.
func (m *Manager) UpdateKycStatus(ctx context.Context, userId string, status models.KycStatus, rejectionReason string) (*models.User, error) {
	if !status.Valid() {
		return nil, ErrInvalidKycStatus
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userId)
	if u == nil {
		return nil, ErrUserNotFound
	}

	u.KycStatus = status
	u.KycUpdateDate = m.timestamp()
	if rejectionReason != "" {
		u.KycRejectionReason = rejectionReason
	}
	if status == models.KycApproved {
		u.IsApproved = true
	}

	if err := m.persistUser(ctx, u); err != nil {
		return nil, err
	}

	zap.L().Info("KYC status updated",
		zap.String("user_id", userId),
		zap.String("status", string(status)),
		zap.Bool("is_approved", u.IsApproved))
	return u.Clone(), nil
}

// UsersWithPendingKyc lists non-admin users whose KYC has been submitted for review
func (m *Manager) UsersWithPendingKyc() []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.User
	for _, u := range m.users {
		if u.KycStatus == models.KycSubmitted && !u.IsAdmin {
			out = append(out, *u.Clone())
		}
	}
	return out
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
