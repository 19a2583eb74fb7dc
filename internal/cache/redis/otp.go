// Package redis provides an OTP cache shared between server instances.
package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/dokugo-server/internal/model"
)

const defaultPrefix = "otp"

var _ model.OTPCache = (*OTPCache)(nil)

// OTPCache stores codes as Redis keys with a native TTL.
type OTPCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewOTPCache creates a cache on top of client. An empty prefix means "otp".
func NewOTPCache(client goredis.UniversalClient, prefix string) *OTPCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &OTPCache{client: client, prefix: prefix}
}

func (c *OTPCache) key(identity string) string {
	return c.prefix + ":" + identity
}

func (c *OTPCache) Set(ctx context.Context, identity, code string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(identity), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

// consumeRetries bounds how often Consume re-runs after a concurrent write to
// the watched key.
const consumeRetries = 4

// Consume compares and deletes the code inside a WATCH transaction. A writer
// that touches the key between the read and the delete aborts the
// transaction, so two callers can never both consume one code.
func (c *OTPCache) Consume(ctx context.Context, identity, code string) error {
	key := c.key(identity)

	for i := 0; i < consumeRetries; i++ {
		err := c.client.Watch(ctx, func(tx *goredis.Tx) error {
			stored, err := tx.Get(ctx, key).Result()
			if err != nil {
				return err
			}
			if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
				return model.ErrOTPMismatch
			}

			_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
				pipe.Del(ctx, key)
				return nil
			})
			return err
		}, key)

		switch {
		case err == nil:
			return nil
		case errors.Is(err, goredis.TxFailedErr):
			continue
		case errors.Is(err, goredis.Nil):
			return model.ErrOTPNotFound
		case errors.Is(err, model.ErrOTPMismatch):
			return err
		default:
			return fmt.Errorf("failed to consume otp: %w", err)
		}
	}

	// Every attempt lost to a concurrent writer, which either consumed the
	// code or replaced it.
	return model.ErrOTPNotFound
}

func (c *OTPCache) Delete(ctx context.Context, identity string) error {
	if err := c.client.Del(ctx, c.key(identity)).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}

// Ping checks that Redis is reachable.
func (c *OTPCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
