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

	"uptran-invest-go/internal/models"

	"go.uber.org/zap"
)

// UpdateKycStatus records a KYC review decision
func (s *AccountService) UpdateKycStatus(ctx context.Context, userId string, status models.KycStatus, reason string) *models.OperationResult {
	user, err := s.accounts.UpdateKycStatus(ctx, userId, status, reason)
	if err != nil {
		logFailure(ctx, "KYC update failed", err,
			zap.String("user_id", userId),
			zap.String("status", string(status)))
		return failure(err)
	}

	zap.L().Info("KYC status updated via api",
		append(operatorFields(ctx),
			zap.String("user_id", userId),
			zap.String("status", string(status)))...)

	return &models.OperationResult{
		Success:    true,
		UserId:     user.Id,
		Status:     string(user.KycStatus),
		NewBalance: user.Balance,
	}
}

// ApproveUser lets a user invest and request withdrawals
func (s *AccountService) ApproveUser(ctx context.Context, userId string) *models.OperationResult {
	user, err := s.accounts.ApproveUser(ctx, userId)
	if err != nil {
		logFailure(ctx, "User approval failed", err, zap.String("user_id", userId))
		return failure(err)
	}

	zap.L().Info("User approved via api", append(operatorFields(ctx), zap.String("user_id", userId))...)
	return &models.OperationResult{
		Success:    true,
		UserId:     user.Id,
		Status:     "approved",
		NewBalance: user.Balance,
	}
}
