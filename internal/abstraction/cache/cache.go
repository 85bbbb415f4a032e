package cache

import (
	"context"
	"time"

	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

// Cache speichert JSON-serialisierbare Werte mit Ablaufzeit.
// Get liefert found=false bei einem Cache-Miss, ohne Fehler.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, *app_errors.AppError)
	Set(ctx context.Context, key string, value any, ttl time.Duration) *app_errors.AppError
	Del(ctx context.Context, key string) error
}
