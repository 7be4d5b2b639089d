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

	"uptran-invest-go/internal/models"
	"uptran-invest-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AdminSeed is the fixed identity of the single administrator account
type AdminSeed struct {
	Id        string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// DefaultCatalog returns the built-in investment sections
func DefaultCatalog() models.Catalog {
	asset := func(id, name string, roi, min, max int64, duration int, section string) models.InvestmentAsset {
		return models.InvestmentAsset{
			Id:        id,
			Name:      name,
			Roi:       decimal.NewFromInt(roi),
			MinAmount: decimal.NewFromInt(min),
			MaxAmount: decimal.NewFromInt(max),
			Duration:  duration,
			Section:   section,
		}
	}

	return models.Catalog{
		"Crypto Index Funds": {
			asset("btc-fund", "Bitcoin Index Fund", 15, 100, 50000, 30, "Crypto Index Funds"),
			asset("eth-fund", "Ethereum Index Fund", 18, 200, 30000, 45, "Crypto Index Funds"),
		},
		"ETF": {
			asset("tech-etf", "Technology ETF", 12, 500, 100000, 90, "ETF"),
			asset("energy-etf", "Clean Energy ETF", 14, 300, 75000, 60, "ETF"),
		},
	}
}

// DefaultWalletAddresses returns the built-in platform deposit addresses
func DefaultWalletAddresses() models.WalletAddresses {
	return models.WalletAddresses{
		"BTC":  "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
		"USDT": "0x742d35Cc6634C0532925a3b8D404C0e8f",
		"ETH":  "0x742d35Cc6634C0532925a3b8D40c0e8f",
	}
}

// seedDefaults writes catalog and wallet defaults only when their keys are absent
func (m *Manager) seedDefaults(ctx context.Context, catalog models.Catalog, wallets models.WalletAddresses) error {
	var keys []string

	if m.catalog == nil {
		if catalog == nil {
			catalog = DefaultCatalog()
		}
		m.catalog = catalog.Clone()
		keys = append(keys, store.KeyInvestmentAssets)
		zap.L().Info("Seeding investment catalog", zap.Int("sections", len(m.catalog)))
	}

	if m.wallets == nil {
		if wallets == nil {
			wallets = DefaultWalletAddresses()
		}
		m.wallets = make(models.WalletAddresses, len(wallets))
		for currency, address := range wallets {
			m.wallets[currency] = address
		}
		keys = append(keys, store.KeyWalletAddresses)
		zap.L().Info("Seeding wallet addresses", zap.Int("currencies", len(m.wallets)))
	}

	if len(keys) == 0 {
		return nil
	}
	return m.persist(ctx, keys...)
}

// seedAdmin upserts the administrator by its stable id. An existing admin keeps
// its balance, investments and history; only identity and flags are re-asserted.
// Any other record claiming admin rights is demoted.
func (m *Manager) seedAdmin(ctx context.Context, seed AdminSeed) error {
	if seed.Id == "" || seed.Email == "" {
		return ErrInvalidInput
	}

	for _, u := range m.users {
		if u.Id != seed.Id && u.IsAdmin {
			zap.L().Warn("Demoting unexpected admin record", zap.String("user_id", u.Id))
			u.IsAdmin = false
		}
	}

	if other := m.findUserByEmail(seed.Email); other != nil && other.Id != seed.Id {
		return ErrDuplicateUser
	}

	admin := m.findUser(seed.Id)
	if admin == nil {
		admin = &models.User{
			Id:            seed.Id,
			Balance:       decimal.Zero,
			AccountNumber: "ACADMIN001",
			Investments:   []models.Investment{},
			Transactions:  []models.Transaction{},
			CreatedAt:     m.now(),
		}
		m.users = append(m.users, admin)
		zap.L().Info("Creating admin account", zap.String("id", seed.Id), zap.String("email", seed.Email))
	} else {
		zap.L().Info("Admin account present, re-asserting identity", zap.String("id", seed.Id))
	}

	admin.FirstName = seed.FirstName
	admin.LastName = seed.LastName
	admin.Email = seed.Email
	admin.Password = seed.Password
	admin.Phone = seed.Phone
	admin.IsAdmin = true
	admin.IsApproved = true
	admin.KycStatus = models.KycApproved
	admin.LoginExpiry = nil

	return m.persistUser(ctx, admin)
}
