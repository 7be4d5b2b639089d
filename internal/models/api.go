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

// UserBalance represents a user's spendable balance and accrued, not yet withdrawn, profit
type UserBalance struct {
	UserId        string          `json:"user_id"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	PendingProfit decimal.Decimal `json:"pending_profit"`
}

// TransactionRecord represents a transaction in the user's history
type TransactionRecord struct {
	Id          string          `json:"id"`
	Type        string          `json:"type"` // "deposit", "withdraw", "profit_withdrawal"
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// OperationResult represents the outcome of a mutating account operation.
// ErrorKind carries a stable machine-readable code such as "user_not_found".
type OperationResult struct {
	Success    bool            `json:"success"`
	UserId     string          `json:"user_id,omitempty"`
	RecordId   string          `json:"record_id,omitempty"`
	Status     string          `json:"status,omitempty"`
	Amount     decimal.Decimal `json:"amount,omitempty"`
	NewBalance decimal.Decimal `json:"new_balance,omitempty"`
	Settled    bool            `json:"settled,omitempty"`
	ErrorKind  string          `json:"error_kind,omitempty"`
	Error      string          `json:"error,omitempty"`
}
