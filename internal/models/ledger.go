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

// Deposit statuses
const (
	DepositPending  = "pending"
	DepositApproved = "approved"
)

// Withdrawal request statuses
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// MaxWithdrawalNoteLength bounds the free-text note on a withdrawal request
const MaxWithdrawalNoteLength = 500

// Deposit is a user-declared deposit awaiting admin approval
type Deposit struct {
	Id           string          `json:"id"`
	UserId       string          `json:"userId"`
	UserName     string          `json:"userName"`
	UserEmail    string          `json:"userEmail"`
	Asset        string          `json:"asset"`
	Amount       decimal.Decimal `json:"amount"`
	Reference    string          `json:"reference,omitempty"`
	Status       string          `json:"status"`
	Date         time.Time       `json:"date"`
	ApprovedDate *time.Time      `json:"approvedDate,omitempty"`
}

// WithdrawalRequest is a payout request queued for admin review.
// Settled is true only when approval actually debited the balance.
type WithdrawalRequest struct {
	Id            string          `json:"id"`
	UserId        string          `json:"userId"`
	UserName      string          `json:"userName"`
	UserEmail     string          `json:"userEmail"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	WalletAddress string          `json:"walletAddress"`
	Note          string          `json:"note,omitempty"`
	Status        string          `json:"status"`
	Settled       bool            `json:"settled"`
	RequestDate   time.Time       `json:"requestDate"`
	ApprovedDate  *time.Time      `json:"approvedDate,omitempty"`
	RejectedDate  *time.Time      `json:"rejectedDate,omitempty"`
}
