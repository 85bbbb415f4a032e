package use_cases

import (
	"context"
	"sync"
	"time"

	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	json "github.com/goccy/go-json"
)

// MockCache hält Werte als JSON im Speicher, solange keine Fn gesetzt ist.
type MockCache struct {
	GetFn func(ctx context.Context, key string, dest any) (bool, *app_errors.AppError)
	SetFn func(ctx context.Context, key string, val any, ttl time.Duration) *app_errors.AppError
	DelFn func(ctx context.Context, key string) error

	GetCalled int
	SetCalled int
	DelCalled int

	mu    sync.Mutex
	store map[string][]byte
}

func (m *MockCache) Get(ctx context.Context, key string, dest any) (bool, *app_errors.AppError) {
	m.mu.Lock()
	m.GetCalled++
	raw, ok := m.store[key]
	m.mu.Unlock()

	if m.GetFn != nil {
		return m.GetFn(ctx, key, dest)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, app_errors.NewAppError(500, app_errors.ErrInternal, "internal_error", err)
	}
	return true, nil
}

func (m *MockCache) Set(ctx context.Context, key string, val any, ttl time.Duration) *app_errors.AppError {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalled++

	if m.SetFn != nil {
		return m.SetFn(ctx, key, val, ttl)
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return app_errors.NewAppError(500, app_errors.ErrInternal, "internal_error", err)
	}
	if m.store == nil {
		m.store = map[string][]byte{}
	}
	m.store[key] = raw
	return nil
}

func (m *MockCache) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DelCalled++

	if m.DelFn != nil {
		return m.DelFn(ctx, key)
	}
	delete(m.store, key)
	return nil
}
