package store

import (
	"context"
	"errors"
	"testing"
)

// mapStore is a minimal in-memory KVStore used to exercise the JSON helpers.
type mapStore struct {
	data    map[string][]byte
	failSet bool
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string][]byte)}
}

func (m *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

func (m *mapStore) Set(_ context.Context, key string, value []byte) error {
	if m.failSet {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func (m *mapStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	for k, v := range entries {
		if err := m.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

func (m *mapStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mapStore) Close() {}

func TestKVStoreInterfaceExists(t *testing.T) {
	var _ KVStore = newMapStore()
	_ = ErrKeyNotFound
	_ = ErrEmptyKey
}

func TestLoadJSON_MissingKey(t *testing.T) {
	kv := newMapStore()
	var out map[string]string

	found, err := LoadJSON(context.Background(), kv, KeyWalletAddresses, &out)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if found {
		t.Errorf("Expected missing key to report found=false")
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	kv := newMapStore()
	ctx := context.Background()
	in := map[string]string{"BTC": "bc1-address", "ETH": "0xabc"}

	if err := SaveJSON(ctx, kv, KeyWalletAddresses, in); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	var out map[string]string
	found, err := LoadJSON(ctx, kv, KeyWalletAddresses, &out)
	if err != nil || !found {
		t.Fatalf("LoadJSON failed: found=%v err=%v", found, err)
	}
	if out["BTC"] != "bc1-address" || out["ETH"] != "0xabc" {
		t.Errorf("Unexpected round trip result: %v", out)
	}
}

func TestLoadJSON_CorruptValue(t *testing.T) {
	kv := newMapStore()
	kv.data[KeyUsers] = []byte("{not json")

	var out []map[string]any
	if _, err := LoadJSON(context.Background(), kv, KeyUsers, &out); err == nil {
		t.Fatalf("Expected decode error for corrupt value")
	}
}

func TestSaveJSON_PropagatesBackendError(t *testing.T) {
	kv := newMapStore()
	kv.failSet = true

	if err := SaveJSON(context.Background(), kv, KeyUsers, []string{}); err == nil {
		t.Fatalf("Expected backend error to propagate")
	}
}
