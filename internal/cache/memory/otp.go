// Package memory provides an in-process OTP cache with per-entry expiry.
//
// Entries are lost on restart, which suits a single-instance deployment.
// Use the redis package when several instances share OTP state.
package memory

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/dtroode/dokugo-server/internal/model"
)

var _ model.OTPCache = (*OTPCache)(nil)

// OTPCache stores codes in a ttlcache with touch-on-hit disabled, so reads
// never extend a code's lifetime.
type OTPCache struct {
	// mu orders Set against Consume so a compare and its delete see one code.
	mu    sync.Mutex
	items *ttlcache.Cache[string, string]
}

func NewOTPCache() *OTPCache {
	return &OTPCache{
		items: ttlcache.New[string, string](
			ttlcache.WithDisableTouchOnHit[string, string](),
		),
	}
}

func (c *OTPCache) Set(_ context.Context, identity, code string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Set(identity, code, ttl)
	return nil
}

func (c *OTPCache) Consume(_ context.Context, identity, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.items.Get(identity)
	if item == nil {
		return model.ErrOTPNotFound
	}
	if subtle.ConstantTimeCompare([]byte(item.Value()), []byte(code)) != 1 {
		return model.ErrOTPMismatch
	}

	c.items.Delete(identity)
	return nil
}

func (c *OTPCache) Delete(_ context.Context, identity string) error {
	c.items.Delete(identity)
	return nil
}

// Start runs the expiry loop until Stop is called.
func (c *OTPCache) Start() {
	c.items.Start()
}

func (c *OTPCache) Stop() {
	c.items.Stop()
}
