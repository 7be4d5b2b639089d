package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrEmptyKey    = errors.New("key cannot be empty")
)

// Keys under which the account manager persists its collections.
const (
	KeyUsers              = "users"
	KeyCurrentUser        = "currentUser"
	KeyDepositHistory     = "depositHistory"
	KeyWithdrawalRequests = "withdrawalRequests"
	KeyInvestmentAssets   = "investmentAssets"
	KeyWalletAddresses    = "walletAddresses"
)

// KVStore defines the contract that every backend (SQLite, Redis, ...) must satisfy.
// Values are opaque JSON documents.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all entries atomically: either every key is updated or none is.
	SetMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error

	// --- Lifecycle ---
	Close()
}

// LoadJSON decodes the value stored under key into v.
// It returns false without error when the key is absent.
func LoadJSON(ctx context.Context, kv KVStore, key string, v any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("unable to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("unable to decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, kv KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("unable to encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("unable to save %s: %w", key, err)
	}
	return nil
}

// SaveJSONMany encodes every value and stores them in a single atomic write.
func SaveJSONMany(ctx context.Context, kv KVStore, values map[string]any) error {
	entries := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("unable to encode %s: %w", key, err)
		}
		entries[key] = data
	}
	if err := kv.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("unable to save %d keys: %w", len(entries), err)
	}
	return nil
}
