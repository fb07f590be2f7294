package auth

import (
	"context"
	"time"

	"github.com/QRVault/QR-Backend/internal/utils"
	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps sessions in Redis hashes so they survive app
// restarts without touching postgres. Layout:
//
//	session:<token>        hash {user_id, expires_at}, TTL = session TTL
//	user_sessions:<userID> set of session keys, for bulk destroy
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// OpenRedis parses the DSN, applies pool settings and verifies connectivity.
func OpenRedis(dsn string) (*redis.Client, error) {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 100
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func sessionKey(token string) string  { return "session:" + token }
func userSetKey(userID string) string { return "user_sessions:" + userID }

func (s *RedisSessionStore) Create(ctx context.Context, userID string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(s.ttl)
	key := sessionKey(token)

	fields := map[string]any{
		"user_id":    userID,
		"expires_at": expiresAt.Format(time.RFC3339),
	}
	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return "", err
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return "", err
	}
	if err := s.client.SAdd(ctx, userSetKey(userID), key).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisSessionStore) Resolve(ctx context.Context, token string) (utils.SessionData, error) {
	data, err := s.client.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return utils.SessionData{}, err
	}
	if len(data) == 0 {
		return utils.SessionData{}, ErrSessionNotFound
	}

	expiresAt, err := time.Parse(time.RFC3339, data["expires_at"])
	if err != nil {
		return utils.SessionData{}, err
	}
	if expiresAt.Before(time.Now()) {
		return utils.SessionData{}, ErrSessionNotFound
	}

	return utils.SessionData{
		UserID:    data["user_id"],
		ExpiresAt: expiresAt,
	}, nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	key := sessionKey(token)

	userID, err := s.client.HGet(ctx, key, "user_id").Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.client.SRem(ctx, userSetKey(userID), key).Err(); err != nil {
		return err
	}
	return s.client.Del(ctx, key).Err()
}

func (s *RedisSessionStore) DestroyAllForUser(ctx context.Context, userID string) error {
	setKey := userSetKey(userID)

	keys, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return s.client.Del(ctx, setKey).Err()
}
