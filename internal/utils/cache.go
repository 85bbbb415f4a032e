package utils

import (
	"context"
	"errors"
	"time"

	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// GetCacheData versucht, einen Wert aus Redis zu lesen und in den generischen Typ T zu unmarshalen.
// Gibt bei Cache-Miss (nil, nil) zurück.
func GetCacheData[T any](ctx context.Context, rdb *redis.Client, cacheKey string) (*T, *app_errors.AppError) {
	var data T
	found, err := GetCacheInto(ctx, rdb, cacheKey, &data)
	if err != nil || !found {
		return nil, err
	}
	return &data, nil
}

// GetCacheInto liest cacheKey und unmarshalt den JSON-Wert nach dest.
// Rückgabe: found=false bei Cache-Miss; *app_errors.AppError bei Redis- oder JSON-Fehlern.
func GetCacheInto(ctx context.Context, rdb *redis.Client, cacheKey string, dest any) (bool, *app_errors.AppError) {
	val, err := rdb.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, app_errors.NewStorageError(err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, app_errors.NewAppError(500, app_errors.ErrInternal, "internal_error", err)
	}
	return true, nil
}

// SetCacheData serialisiert das gegebene Objekt (T) als JSON und speichert es mit Ablaufzeit in Redis.
func SetCacheData[T any](ctx context.Context, rdb *redis.Client, cacheKey string, data *T, expire time.Duration) *app_errors.AppError {
	bytes, err := json.Marshal(data)
	if err != nil {
		return app_errors.NewAppError(500, app_errors.ErrInternal, "internal_error", err)
	}

	if err := rdb.Set(ctx, cacheKey, bytes, expire).Err(); err != nil {
		return app_errors.NewStorageError(err)
	}

	return nil
}

// DeleteCacheData löscht den angegebenen cacheKey aus Redis. Kein Fehler, wenn der Key fehlt.
func DeleteCacheData(ctx context.Context, rdb *redis.Client, cacheKey string) error {
	return rdb.Del(ctx, cacheKey).Err()
}
