package service

import (
	"context"
	"time"

	"medisafe/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const tokenScanBatch = 100

// TokenStore tracks issued token ids in Redis. A token is live only while its key exists.
type TokenStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewTokenStore(redisClient *redis.Client, log *logrus.Logger) *TokenStore {
	return &TokenStore{redisClient: redisClient, log: log}
}

func (s *TokenStore) Save(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.redisClient.Set(ctx, key, "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store token %s in Redis: %+v", key, err)
		return err
	}
	return nil
}

func (s *TokenStore) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, key).Result()
	if err != nil {
		s.log.Warnf("Failed to check token validity: %+v", err)
		return false, err
	}
	return exists > 0, nil
}

func (s *TokenStore) Revoke(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to revoke tokens: %+v", err)
		return err
	}
	return nil
}

// RevokeUser revokes every access and refresh token of a user (password change, account removal)
func (s *TokenStore) RevokeUser(ctx context.Context, userID uuid.UUID) error {
	subject := jwt.Subject{UserID: userID}
	for _, tokenType := range []jwt.TokenType{jwt.AccessToken, jwt.RefreshToken} {
		pattern := jwt.StoreKey(tokenType, subject, "*")
		iter := s.redisClient.Scan(ctx, 0, pattern, tokenScanBatch).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			s.log.Warnf("Failed to scan %s tokens of user %s: %+v", tokenType, userID, err)
			return err
		}
		if err := s.Revoke(ctx, keys...); err != nil {
			return err
		}
	}
	return nil
}
