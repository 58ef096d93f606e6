package reportgen

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

const (
	cacheVersionKey = "farmreport:report:version"
	cachePrefix     = "farmreport:report"
)

// Cache stores rendered reports in Redis under versioned keys. A nil Cache or
// one without a client is a no-op.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) enabled() bool { return c != nil && c.client != nil && c.ttl > 0 }

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
	}
	return ver, nil
}

// Key derives the cache key of one report: the output kind plus a blake2b
// digest of the canonical JSON encoding of the data.
func (c *Cache) Key(ctx context.Context, kind Kind, data *reportdata.ReportData) (string, error) {
	digest, err := Fingerprint(kind, data)
	if err != nil {
		return "", err
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%s:v%d", cachePrefix, kind, digest, ver), nil
}

// Get returns the cached body for key. The boolean reports a hit.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !c.enabled() {
		return nil, false, nil
	}
	body, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// Set stores body under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, body []byte) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Set(ctx, key, body, c.ttl).Err()
}

// Bump invalidates every cached report by moving to the next version.
func (c *Cache) Bump(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

// Fingerprint hashes kind and data. encoding/json sorts map keys, so equal
// data always yields the same digest.
func Fingerprint(kind Kind, data *reportdata.ReportData) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("reportgen: fingerprint: %w", err)
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil)), nil
}
