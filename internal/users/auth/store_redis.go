// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gdlists/demonlist/internal/platform/apperr"
	"github.com/gdlists/demonlist/internal/platform/constants"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// # Layout
//
//   - auth:session:<tokenHash>        → userID (with session TTL)
//   - auth:user_sessions:<userID>     → set of active token hashes
//
// The per-user set makes RevokeAll possible without scanning the keyspace.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Create stores a session keyed by token hash and indexes it under the user.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Create(context context.Context, tokenHash string, userID string, ttl time.Duration) error {
	sessionKey := constants.RedisPrefixSession + tokenHash
	indexKey := constants.RedisPrefixUserSession + userID

	pipe := repository.client.TxPipeline()
	pipe.Set(context, sessionKey, userID, ttl)
	pipe.SAdd(context, indexKey, tokenHash)
	// Keep the index alive at least as long as its newest session.
	pipe.Expire(context, indexKey, ttl)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	return nil
}

/*
FindUserID resolves the owner of an active session.

Description: Returns apperr.NotFound if the session is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - string: UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindUserID(context context.Context, tokenHash string) (string, error) {
	sessionKey := constants.RedisPrefixSession + tokenHash

	userID, err := repository.client.Get(context, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session")
		}
		return "", fmt.Errorf("redis_session_find_failed: %w", err)
	}

	return userID, nil
}

/*
Revoke removes a single session and its index entry.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	sessionKey := constants.RedisPrefixSession + tokenHash

	// Resolve the owner so the index entry can be removed too. An absent
	// session means another revocation already won; that is not an error.
	userID, err := repository.client.Get(context, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("redis_session_revoke_lookup_failed: %w", err)
	}

	pipe := repository.client.TxPipeline()
	pipe.Del(context, sessionKey)
	pipe.SRem(context, constants.RedisPrefixUserSession+userID, tokenHash)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}

	return nil
}

/*
RevokeAll removes every session belonging to the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {
	indexKey := constants.RedisPrefixUserSession + userID

	tokenHashes, err := repository.client.SMembers(context, indexKey).Result()
	if err != nil {
		return fmt.Errorf("redis_session_revoke_all_lookup_failed: %w", err)
	}

	pipe := repository.client.TxPipeline()
	for _, tokenHash := range tokenHashes {
		pipe.Del(context, constants.RedisPrefixSession+tokenHash)
	}
	pipe.Del(context, indexKey)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}

	return nil
}
