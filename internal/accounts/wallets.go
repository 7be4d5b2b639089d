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
	"uptran-invest-go/internal/store"

	"go.uber.org/zap"
)

// WalletAddresses returns a copy of the platform deposit addresses keyed by currency
func (m *Manager) WalletAddresses() models.WalletAddresses {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(models.WalletAddresses, len(m.wallets))
	for currency, address := range m.wallets {
		out[currency] = address
	}
	return out
}

// WalletAddress returns the deposit address for currency
func (m *Manager) WalletAddress(currency string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	address, ok := m.wallets[currency]
	return address, ok
}

// UpdateWalletAddresses merges addresses into the map; currencies not named keep their address
func (m *Manager) UpdateWalletAddresses(ctx context.Context, addresses map[string]string) error {
	for currency, address := range addresses {
		if currency == "" || address == "" {
			return fmt.Errorf("%w: currency and address are required", ErrInvalidInput)
		}
	}
	if len(addresses) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.wallets == nil {
		m.wallets = models.WalletAddresses{}
	}
	for currency, address := range addresses {
		m.wallets[currency] = address
	}

	if err := m.persist(ctx, store.KeyWalletAddresses); err != nil {
		return err
	}

	zap.L().Info("Wallet addresses updated", zap.Int("updated", len(addresses)), zap.Int("total", len(m.wallets)))
	return nil
}
