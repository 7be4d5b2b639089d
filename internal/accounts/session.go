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

// Login establishes a session for the user matching both email and password exactly.
// A failed attempt leaves any existing session untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUserByEmail(email)
	if u == nil || u.Password != password {
		zap.L().Info("Login rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	if err := m.startSession(ctx, u); err != nil {
		return nil, err
	}

	zap.L().Info("User logged in", zap.String("user_id", u.Id), zap.Bool("is_admin", u.IsAdmin))
	return u.Clone(), nil
}

// Logout clears the session. Calling it without a session is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.clearSession(ctx)
}

// RefreshSession pushes a non-admin session's expiry out by a fresh TTL
func (m *Manager) RefreshSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || m.session.IsAdmin {
		return nil
	}
	u := m.findUser(m.session.Id)
	if u == nil {
		return m.clearSession(ctx)
	}
	return m.startSession(ctx, u)
}

// IsAuthenticated reports whether a live session exists. A non-admin session past
// its expiry is logged out as a side effect.
func (m *Manager) IsAuthenticated(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return false, nil
	}
	if m.sessionExpired(m.session) {
		zap.L().Info("Session expired", zap.String("user_id", m.session.Id))
		if err := m.clearSession(ctx); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// CurrentUser returns a copy of the session snapshot, or nil without a session
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.session.Clone()
}

// startSession stamps a fresh expiry on non-admin users and stores the session snapshot
func (m *Manager) startSession(ctx context.Context, u *models.User) error {
	if u.IsAdmin {
		u.LoginExpiry = nil
	} else {
		expiry := m.now().Add(m.sessionTTL)
		u.LoginExpiry = &expiry
	}
	m.session = u.Clone()

	if err := m.persist(ctx, store.KeyUsers, store.KeyCurrentUser); err != nil {
		return fmt.Errorf("unable to store session: %w", err)
	}
	return nil
}

// ReloadSession replaces the in-memory session with the one currently stored, so a
// long-running process sees logins and logouts made by other processes.
func (m *Manager) ReloadSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var session *models.User
	if _, err := store.LoadJSON(ctx, m.kv, store.KeyCurrentUser, &session); err != nil {
		return fmt.Errorf("unable to reload session: %w", err)
	}
	m.session = session
	return nil
}

// clearSession deletes the stored session first; memory is only cleared once storage agrees
func (m *Manager) clearSession(ctx context.Context) error {
	if err := m.kv.Delete(ctx, store.KeyCurrentUser); err != nil {
		return fmt.Errorf("unable to clear session: %w", err)
	}
	if m.session != nil {
		zap.L().Info("Session cleared", zap.String("user_id", m.session.Id))
	}
	m.session = nil
	return nil
}

func (m *Manager) sessionExpired(u *models.User) bool {
	return !u.IsAdmin && u.LoginExpiry != nil && m.now().After(*u.LoginExpiry)
}
