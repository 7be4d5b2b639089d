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

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// KycStatus is the know-your-customer verification state of a user
type KycStatus string

const (
	KycNotSubmitted KycStatus = "not_submitted"
	KycSubmitted    KycStatus = "submitted"
	KycApproved     KycStatus = "approved"
	KycRejected     KycStatus = "rejected"
)

// Valid reports whether s is one of the known KYC states
func (s KycStatus) Valid() bool {
	switch s {
	case KycNotSubmitted, KycSubmitted, KycApproved, KycRejected:
		return true
	}
	return false
}

// Transaction types recorded in a user's transaction log
const (
	TransactionDeposit          = "deposit"
	TransactionWithdraw         = "withdraw"
	TransactionProfitWithdrawal = "profit_withdrawal"
)

// Investment statuses
const (
	InvestmentActive    = "active"
	InvestmentCompleted = "completed"
)

// User represents an investor account. Passwords are stored as entered.
type User struct {
	Id                 string          `json:"id"`
	FirstName          string          `json:"firstName"`
	LastName           string          `json:"lastName"`
	Email              string          `json:"email"`
	Password           string          `json:"password"`
	Phone              string          `json:"phone"`
	Country            string          `json:"country"`
	DateOfBirth        string          `json:"dateOfBirth"`
	Balance            decimal.Decimal `json:"balance"`
	AccountNumber      string          `json:"accountNumber"`
	Investments        []Investment    `json:"investments"`
	Transactions       []Transaction   `json:"transactions"`
	CreatedAt          time.Time       `json:"createdAt"`
	IsAdmin            bool            `json:"isAdmin"`
	IsApproved         bool            `json:"isApproved"`
	KycStatus          KycStatus       `json:"kycStatus"`
	KycRejectionReason string          `json:"kycRejectionReason,omitempty"`
	KycUpdateDate      *time.Time      `json:"kycUpdateDate,omitempty"`
	LoginExpiry        *time.Time      `json:"loginExpiry"`
}

// FullName is the display name snapshotted onto ledger records
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Clone returns a deep copy so callers cannot mutate manager state
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Investments = append([]Investment(nil), u.Investments...)
	c.Transactions = append([]Transaction(nil), u.Transactions...)
	if u.LoginExpiry != nil {
		t := *u.LoginExpiry
		c.LoginExpiry = &t
	}
	if u.KycUpdateDate != nil {
		t := *u.KycUpdateDate
		c.KycUpdateDate = &t
	}
	return &c
}

// Investment is a fixed-term position held by one user
type Investment struct {
	Id              string          `json:"id"`
	PlanName        string          `json:"planName"`
	AssetId         string          `json:"assetId,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Roi             decimal.Decimal `json:"roi"`
	Duration        int             `json:"duration"`
	StartDate       *time.Time      `json:"startDate"`
	Status          string          `json:"status"`
	ProfitWithdrawn bool            `json:"profitWithdrawn"`
	WithdrawnProfit decimal.Decimal `json:"withdrawnProfit"`
	WithdrawnDate   *time.Time      `json:"withdrawnDate,omitempty"`
}

// Transaction is an append-only entry in a user's history
type Transaction struct {
	Id          string          `json:"id"`
	Type        string          `json:"type"` // "deposit", "withdraw", "profit_withdrawal"
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}
