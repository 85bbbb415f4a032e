package session_repo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix     = "session:"
	userSessionKeyPrefix = "user_sessions:"
	sweepBatch           = 100
)

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func userSessionsKey(principalID string) string {
	return userSessionKeyPrefix + principalID
}

// loginScript verdrängt alle Sessions des Benutzers mit anderer Herkunft und legt die neue an.
// Alles in einem Skript, damit zwei gleichzeitige Logins nicht beide überleben.
// KEYS[1] = user_sessions:<principal>, KEYS[2] = session:<token>
// ARGV = origin, principal, username, role, now_ms, ttl_ms, token
var loginScript = redis.NewScript(`
local evicted = 0
local tokens = redis.call('SMEMBERS', KEYS[1])
for _, t in ipairs(tokens) do
	local key = '` + sessionKeyPrefix + `' .. t
	local origin = redis.call('HGET', key, 'origin')
	if not origin then
		redis.call('SREM', KEYS[1], t)
	elseif origin ~= ARGV[1] then
		redis.call('DEL', key)
		redis.call('SREM', KEYS[1], t)
		evicted = evicted + 1
	end
end
redis.call('HSET', KEYS[2],
	'principal', ARGV[2],
	'username', ARGV[3],
	'role', ARGV[4],
	'origin', ARGV[1],
	'login_at', ARGV[5],
	'last_activity', ARGV[5])
redis.call('PEXPIRE', KEYS[2], ARGV[6])
redis.call('SADD', KEYS[1], ARGV[7])
redis.call('PEXPIRE', KEYS[1], ARGV[6])
return evicted
`)

// refreshScript aktualisiert last_activity nur, wenn die Session noch existiert.
// Eine verdrängte Session wird so nicht wiederbelebt.
// KEYS[1] = session:<token>, KEYS[2] = user_sessions:<principal>
// ARGV = now_ms, ttl_ms
var refreshScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HSET', KEYS[1], 'last_activity', ARGV[1])
redis.call('PEXPIRE', KEYS[1], ARGV[2])
redis.call('PEXPIRE', KEYS[2], ARGV[2])
return 1
`)

type SessionRepo struct {
	redis *redis.Client
}

func NewSessionRepo(redis *redis.Client) SessionRepoContract {
	return &SessionRepo{
		redis: redis,
	}
}

// Create liefert die Zahl der verdrängten Sessions.
func (r *SessionRepo) Create(ctx context.Context, s *entity.SessionEntity, ttl time.Duration) (int, *app_errors.AppError) {
	keys := []string{userSessionsKey(s.PrincipalID), sessionKey(s.Token)}
	evicted, err := loginScript.Run(ctx, r.redis, keys,
		s.Origin,
		s.PrincipalID,
		s.Username,
		string(s.Role),
		s.LastActivity.UnixMilli(),
		ttl.Milliseconds(),
		s.Token,
	).Int()
	if err != nil {
		return 0, app_errors.NewStorageError(err)
	}
	return evicted, nil
}

func (r *SessionRepo) Find(ctx context.Context, token string) (*entity.SessionEntity, *app_errors.AppError) {
	fields, err := r.redis.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, app_errors.NewStorageError(err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	lastActivity, convErr := strconv.ParseInt(fields["last_activity"], 10, 64)
	if convErr != nil {
		return nil, app_errors.NewStorageError(fmt.Errorf("session %s: invalid last_activity: %w", token, convErr))
	}
	loginAt, convErr := strconv.ParseInt(fields["login_at"], 10, 64)
	if convErr != nil {
		loginAt = lastActivity
	}

	return &entity.SessionEntity{
		Token:        token,
		PrincipalID:  fields["principal"],
		Username:     fields["username"],
		Role:         entity.UserRole(fields["role"]),
		Origin:       fields["origin"],
		LoginAt:      time.UnixMilli(loginAt).UTC(),
		LastActivity: time.UnixMilli(lastActivity).UTC(),
	}, nil
}

func (r *SessionRepo) Refresh(ctx context.Context, principalID, token string, at time.Time, ttl time.Duration) (bool, *app_errors.AppError) {
	keys := []string{sessionKey(token), userSessionsKey(principalID)}
	ok, err := refreshScript.Run(ctx, r.redis, keys, at.UnixMilli(), ttl.Milliseconds()).Int()
	if err != nil {
		return false, app_errors.NewStorageError(err)
	}
	return ok == 1, nil
}

// Delete ist idempotent.
func (r *SessionRepo) Delete(ctx context.Context, principalID, token string) *app_errors.AppError {
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(token))
		pipe.SRem(ctx, userSessionsKey(principalID), token)
		return nil
	})
	if err != nil {
		return app_errors.NewStorageError(err)
	}
	return nil
}

// Sweep entfernt Sessions, deren letzte Aktivität vor cutoff liegt, und räumt verwaiste
// Einträge in den user_sessions-Sets auf. Liefert die Zahl der entfernten Sessions.
func (r *SessionRepo) Sweep(ctx context.Context, cutoff time.Time) (int, *app_errors.AppError) {
	removed := 0
	cutoffMs := cutoff.UnixMilli()

	iter := r.redis.Scan(ctx, 0, userSessionKeyPrefix+"*", sweepBatch).Iterator()
	for iter.Next(ctx) {
		setKey := iter.Val()
		tokens, err := r.redis.SMembers(ctx, setKey).Result()
		if err != nil {
			return removed, app_errors.NewStorageError(err)
		}

		for _, token := range tokens {
			raw, err := r.redis.HGet(ctx, sessionKey(token), "last_activity").Result()
			if err == redis.Nil {
				if err := r.redis.SRem(ctx, setKey, token).Err(); err != nil {
					return removed, app_errors.NewStorageError(err)
				}
				continue
			}
			if err != nil {
				return removed, app_errors.NewStorageError(err)
			}

			last, convErr := strconv.ParseInt(raw, 10, 64)
			if convErr == nil && last >= cutoffMs {
				continue
			}

			_, err = r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, sessionKey(token))
				pipe.SRem(ctx, setKey, token)
				return nil
			})
			if err != nil {
				return removed, app_errors.NewStorageError(err)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, app_errors.NewStorageError(err)
	}

	return removed, nil
}
