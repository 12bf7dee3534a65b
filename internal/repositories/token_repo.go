package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mkowal/todoapi/internal/models"
)

const accountTokensPrefix = "account:%s:tokens"

// RedisTokenRepository keeps each account's valid tokens in a Redis set.
// Set members are "purpose:token" (JWT strings never contain a colon), so
// SADD/SREM/SISMEMBER give the targeted add/remove/membership operations
// that keep concurrent logins and logouts from clobbering each other.
type RedisTokenRepository struct {
	client *redis.Client
}

func NewRedisTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{client: client}
}

func tokenKey(accountID uuid.UUID) string {
	return fmt.Sprintf(accountTokensPrefix, accountID)
}

func tokenMember(token models.AccountToken) string {
	return token.Purpose + ":" + token.Token
}

func parseTokenMember(member string) (models.AccountToken, bool) {
	purpose, token, ok := strings.Cut(member, ":")
	if !ok || purpose == "" || token == "" {
		return models.AccountToken{}, false
	}
	return models.AccountToken{Purpose: purpose, Token: token}, true
}

func (r *RedisTokenRepository) Add(ctx context.Context, accountID uuid.UUID, token models.AccountToken) error {
	err := r.client.SAdd(ctx, tokenKey(accountID), tokenMember(token)).Err()
	if err != nil {
		return fmt.Errorf("failed to add token: %w", err)
	}
	return nil
}

func (r *RedisTokenRepository) Contains(ctx context.Context, accountID uuid.UUID, token models.AccountToken) (bool, error) {
	ok, err := r.client.SIsMember(ctx, tokenKey(accountID), tokenMember(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return ok, nil
}

// Remove drops every entry whose token string equals tokenString, whatever
// its purpose. Removing an absent token is not an error.
func (r *RedisTokenRepository) Remove(ctx context.Context, accountID uuid.UUID, tokenString string) error {
	key := tokenKey(accountID)

	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to list tokens: %w", err)
	}

	var matched []interface{}
	for _, member := range members {
		if entry, ok := parseTokenMember(member); ok && entry.Token == tokenString {
			matched = append(matched, member)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	if err := r.client.SRem(ctx, key, matched...).Err(); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

func (r *RedisTokenRepository) List(ctx context.Context, accountID uuid.UUID) ([]models.AccountToken, error) {
	members, err := r.client.SMembers(ctx, tokenKey(accountID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}

	var tokens []models.AccountToken
	for _, member := range members {
		entry, ok := parseTokenMember(member)
		if !ok {
			continue
		}
		tokens = append(tokens, entry)
	}
	return tokens, nil
}

func (r *RedisTokenRepository) RemoveAll(ctx context.Context, accountID uuid.UUID) error {
	if err := r.client.Del(ctx, tokenKey(accountID)).Err(); err != nil {
		return fmt.Errorf("failed to remove tokens: %w", err)
	}
	return nil
}
