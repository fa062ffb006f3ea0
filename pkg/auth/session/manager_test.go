package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.data[key]
	return ok, nil
}

func (m *mockStore) RevokedTokenKey(tokenID string) string {
	return "revoked:" + tokenID
}

func newTestManager(store *mockStore, now time.Time) *Manager {
	return &Manager{store: store, keyer: store, now: func() time.Time { return now }}
}

func TestRevokeUntilExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	manager := newTestManager(store, now)
	ctx := context.Background()

	if err := manager.Revoke(ctx, "jti-1", now.Add(2*time.Hour)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ttl := store.ttls["revoked:jti-1"]; ttl != 2*time.Hour {
		t.Fatalf("expected ttl of remaining lifetime, got %v", ttl)
	}

	revoked, err := manager.IsRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Fatalf("expected jti-1 revoked, got %v err=%v", revoked, err)
	}
	revoked, err = manager.IsRevoked(ctx, "jti-2")
	if err != nil || revoked {
		t.Fatalf("expected jti-2 active, got %v err=%v", revoked, err)
	}
}

func TestRevokeSkipsExpiredTokens(t *testing.T) {
	now := time.Now()
	store := newMockStore()
	manager := newTestManager(store, now)

	if err := manager.Revoke(context.Background(), "old", now.Add(-time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if len(store.data) != 0 {
		t.Fatalf("expired token should not be stored")
	}
}

func TestRevokeValidation(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store, time.Now())

	if err := manager.Revoke(context.Background(), " ", time.Now().Add(time.Hour)); err == nil {
		t.Fatal("expected error for empty token id")
	}
	if _, err := manager.IsRevoked(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty token id")
	}

	store.err = errors.New("redis down")
	if _, err := manager.IsRevoked(context.Background(), "jti"); err == nil {
		t.Fatal("expected store error to surface")
	}
}

func TestNewManagerRequiresClient(t *testing.T) {
	if _, err := NewManager(nil); err == nil {
		t.Fatal("expected error for nil client")
	}
}
