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
	"strconv"
	"strings"
	"sync"
	"time"

	"uptran-invest-go/internal/models"
	"uptran-invest-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSessionTTL is the validity window of a non-admin login
const DefaultSessionTTL = 24 * time.Hour

// Config contains the dependencies and settings of a Manager
type Config struct {
	Store      store.KVStore
	SessionTTL time.Duration

	// Admin, when set, is upserted on every start.
	Admin *AdminSeed

	// Seeds written only when the corresponding key is absent.
	DefaultCatalog models.Catalog
	DefaultWallets models.WalletAddresses

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Manager owns users, the current session, the deposit and withdrawal ledgers,
// the investment catalog and wallet addresses. Every mutation is written through
// to the key-value store before the call returns.
type Manager struct {
	mu         sync.Mutex
	kv         store.KVStore
	now        func() time.Time
	sessionTTL time.Duration

	users       []*models.User
	session     *models.User
	deposits    []models.Deposit
	withdrawals []models.WithdrawalRequest
	catalog     models.Catalog
	wallets     models.WalletAddresses
}

// NewManager loads all persisted collections, seeds missing defaults and upserts the admin.
func NewManager(ctx context.Context, cfg Config) (*Manager, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}

	m := &Manager{
		kv:         cfg.Store,
		now:        cfg.Clock,
		sessionTTL: cfg.SessionTTL,
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.sessionTTL <= 0 {
		m.sessionTTL = DefaultSessionTTL
	}

	if err := m.load(ctx); err != nil {
		return nil, err
	}

	if err := m.seedDefaults(ctx, cfg.DefaultCatalog, cfg.DefaultWallets); err != nil {
		return nil, err
	}

	if cfg.Admin != nil {
		if err := m.seedAdmin(ctx, *cfg.Admin); err != nil {
			return nil, err
		}
	}

	// A persisted session that expired while the process was down is dropped on load
	if m.session != nil && m.sessionExpired(m.session) {
		zap.L().Info("Persisted session expired, logging out", zap.String("user_id", m.session.Id))
		if err := m.clearSession(ctx); err != nil {
			return nil, err
		}
	}

	zap.L().Info("Account manager initialized",
		zap.Int("users", len(m.users)),
		zap.Int("deposits", len(m.deposits)),
		zap.Int("withdrawal_requests", len(m.withdrawals)),
		zap.Int("catalog_sections", len(m.catalog)),
		zap.Bool("session_active", m.session != nil))
	return m, nil
}

// load replaces in-memory state with what the store currently holds
func (m *Manager) load(ctx context.Context) error {
	var users []*models.User
	if _, err := store.LoadJSON(ctx, m.kv, store.KeyUsers, &users); err != nil {
		return err
	}

	var session *models.User
	if _, err := store.LoadJSON(ctx, m.kv, store.KeyCurrentUser, &session); err != nil {
		return err
	}

	var deposits []models.Deposit
	if _, err := store.LoadJSON(ctx, m.kv, store.KeyDepositHistory, &deposits); err != nil {
		return err
	}

	var withdrawals []models.WithdrawalRequest
	if _, err := store.LoadJSON(ctx, m.kv, store.KeyWithdrawalRequests, &withdrawals); err != nil {
		return err
	}

	var catalog models.Catalog
	if _, err := store.LoadJSON(ctx, m.kv, store.KeyInvestmentAssets, &catalog); err != nil {
		return err
	}

	var wallets models.WalletAddresses
	if _, err := store.LoadJSON(ctx, m.kv, store.KeyWalletAddresses, &wallets); err != nil {
		return err
	}

	m.users = users
	m.session = session
	m.deposits = deposits
	m.withdrawals = withdrawals
	m.catalog = catalog
	m.wallets = wallets
	return nil
}

// persist writes the given collections in one atomic store call. On failure the
// in-memory state is reloaded so it never runs ahead of storage.
func (m *Manager) persist(ctx context.Context, keys ...string) error {
	values := make(map[string]any, len(keys))
	for _, key := range keys {
		switch key {
		case store.KeyUsers:
			values[key] = m.usersForSave()
		case store.KeyCurrentUser:
			values[key] = m.session
		case store.KeyDepositHistory:
			values[key] = m.depositsForSave()
		case store.KeyWithdrawalRequests:
			values[key] = m.withdrawalsForSave()
		case store.KeyInvestmentAssets:
			values[key] = m.catalog
		case store.KeyWalletAddresses:
			values[key] = m.wallets
		default:
			return fmt.Errorf("unknown collection key %q", key)
		}
	}

	var err error
	if len(values) == 1 {
		err = store.SaveJSON(ctx, m.kv, keys[0], values[keys[0]])
	} else {
		err = store.SaveJSONMany(ctx, m.kv, values)
	}
	if err != nil {
		zap.L().Error("Failed to persist collections, reloading from store",
			zap.Strings("keys", keys),
			zap.Error(err))
		if reloadErr := m.load(ctx); reloadErr != nil {
			zap.L().Error("Failed to reload state after persist failure", zap.Error(reloadErr))
		}
		return err
	}
	return nil
}

// persistUser writes the user collection and, when u holds the session, the refreshed session snapshot
func (m *Manager) persistUser(ctx context.Context, u *models.User) error {
	if m.session != nil && m.session.Id == u.Id {
		m.session = u.Clone()
		return m.persist(ctx, store.KeyUsers, store.KeyCurrentUser)
	}
	return m.persist(ctx, store.KeyUsers)
}

// Empty collections are written as [] rather than null
func (m *Manager) usersForSave() []*models.User {
	if m.users == nil {
		return []*models.User{}
	}
	return m.users
}

func (m *Manager) depositsForSave() []models.Deposit {
	if m.deposits == nil {
		return []models.Deposit{}
	}
	return m.deposits
}

func (m *Manager) withdrawalsForSave() []models.WithdrawalRequest {
	if m.withdrawals == nil {
		return []models.WithdrawalRequest{}
	}
	return m.withdrawals
}

func (m *Manager) findUser(userId string) *models.User {
	for _, u := range m.users {
		if u.Id == userId {
			return u
		}
	}
	return nil
}

func (m *Manager) findUserByEmail(email string) *models.User {
	for _, u := range m.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// appendTransaction records an entry in the user's append-only log
func (m *Manager) appendTransaction(u *models.User, tx models.Transaction) models.Transaction {
	tx.Id = newId()
	tx.Date = m.now()
	u.Transactions = append(u.Transactions, tx)
	return tx
}

func (m *Manager) timestamp() *time.Time {
	t := m.now()
	return &t
}

func newId() string {
	return uuid.New().String()
}

// generateAccountNumber returns "AC" + base36 millis + a 4 character random suffix.
// Uniqueness is practical, not enforced.
func generateAccountNumber(now time.Time) string {
	millis := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return "AC" + millis + suffix
}
