package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	PurposeVerifyEmail   = "verify_email"
	PurposePasswordReset = "password_reset"
)

// TokenStore keeps one-time tokens (email verification, password reset) and
// the refresh-token revocation list. Entries expire on their own.
type TokenStore interface {
	SaveOneTimeToken(ctx context.Context, purpose, token, userID string, ttl time.Duration) error
	// ConsumeOneTimeToken returns the user id a token was issued for and
	// deletes it, making every token single-use. Returns empty string when
	// the token is unknown or expired.
	ConsumeOneTimeToken(ctx context.Context, purpose, token string) (string, error)
	// PeekOneTimeToken reads without deleting, for checks that must not
	// invalidate the token when they fail.
	PeekOneTimeToken(ctx context.Context, purpose, token string) (string, error)
	RevokeRefreshToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRefreshTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func oneTimeKey(purpose, token string) string {
	return fmt.Sprintf("token:%s:%s", purpose, token)
}

func revokedKey(jti string) string {
	return fmt.Sprintf("revoked_refresh:%s", jti)
}

func (s *redisTokenStore) SaveOneTimeToken(ctx context.Context, purpose, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, oneTimeKey(purpose, token), userID, ttl).Err()
}

func (s *redisTokenStore) ConsumeOneTimeToken(ctx context.Context, purpose, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, oneTimeKey(purpose, token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *redisTokenStore) PeekOneTimeToken(ctx context.Context, purpose, token string) (string, error) {
	userID, err := s.client.Get(ctx, oneTimeKey(purpose, token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *redisTokenStore) RevokeRefreshToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to revoke.
		return nil
	}
	return s.client.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

func (s *redisTokenStore) IsRefreshTokenRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := s.client.Get(ctx, revokedKey(jti)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
