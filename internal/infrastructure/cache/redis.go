// Package cache adaptateur Redis du cache applicatif (tableau de bord).
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dashboard"
)

var _ dashboard.Cache = (*RedisCache)(nil)

// RedisCache implémente dashboard.Cache sur go-redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache construit l'adaptateur et vérifie la connexion.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connexion redis %s: %w", addr, err)
	}
	return &RedisCache{client: client}, nil
}

// Get renvoie la valeur, ou (nil, nil) si la clé est absente.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

// Set enregistre la valeur avec expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// DeletePrefix supprime toutes les clés commençant par prefix, par balayage
// SCAN pour ne pas bloquer le serveur.
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %s: %w", prefix, err)
	}
	return nil
}

// Close ferme la connexion.
func (c *RedisCache) Close() error { return c.client.Close() }
