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

import "errors"

// Sentinel errors returned by Manager operations. Callers match them with errors.Is.
var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotApproved        = errors.New("user is not approved")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrAmountOutOfRange   = errors.New("amount outside plan limits")
	ErrNoteTooLong        = errors.New("note exceeds maximum length")
	ErrInvalidKycStatus   = errors.New("invalid kyc status")
	ErrDepositNotFound    = errors.New("deposit not found")
	ErrWithdrawalNotFound = errors.New("withdrawal request not found")
	ErrInvestmentNotFound = errors.New("investment not found")
	ErrNoProfitAvailable  = errors.New("no profit available to withdraw")
	ErrAssetNotFound      = errors.New("investment asset not found")
	ErrInvalidState       = errors.New("record is not in a state that allows this operation")
	ErrBalanceMismatch    = errors.New("balance does not match transaction history")
)
