package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/r2s-cli/internal/model"
	"github.com/khanhnv2901/r2s-cli/internal/security"
	"github.com/khanhnv2901/r2s-cli/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/r2s-cli/internal/shared/errors"
)

// entryDTO is the serialized form of a cached scan result. The blob layout is
// implementation-defined and carries no compatibility promise across versions.
type entryDTO struct {
	Key       string          `json:"key"`
	Findings  []model.Finding `json:"findings"`
	CreatedAt time.Time       `json:"created_at"`
}

// Cache persists scan results as JSON blobs under a per-user cache directory,
// keyed by the scanned root and the configuration fingerprint. Every failure
// mode degrades to cache-miss semantics; nothing here is fatal.
type Cache struct {
	dir string
	ttl time.Duration
	log *zap.SugaredLogger
	mu  sync.Mutex
}

// New builds a cache rooted at dir. An empty dir falls back to the user cache
// directory. A nil logger is replaced with a no-op one.
func New(dir string, ttl time.Duration, log *zap.SugaredLogger) *Cache {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if dir == "" {
		if userDir, err := os.UserCacheDir(); err == nil {
			dir = filepath.Join(userDir, "r2s-cli")
		} else {
			dir = filepath.Join(os.TempDir(), "r2s-cli")
		}
	}
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTLSecs * time.Second
	}
	return &Cache{dir: dir, ttl: ttl, log: log}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Key derives the cache key for a resolved scan root under a configuration
// fingerprint.
func Key(root, fingerprint string) string {
	h := sha256.Sum256([]byte(root + "\x00" + fingerprint))
	return hex.EncodeToString(h[:])
}

// Get returns the cached findings for key, or false when there is no entry,
// the entry is unreadable, or its age exceeds the TTL.
func (c *Cache) Get(key string) ([]model.Finding, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	path, err := c.entryPath(key)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.log.Debugw("cache lookup", "key", key, "error", sharedErrors.ErrCacheMiss)
		return nil, false
	}

	var entry entryDTO
	if err := json.Unmarshal(data, &entry); err != nil {
		c.log.Warnw("discarding corrupt cache entry", "path", path, "error", err)
		return nil, false
	}

	if time.Since(entry.CreatedAt) > c.ttl {
		c.log.Debugw("cache lookup", "key", key, "created_at", entry.CreatedAt,
			"error", sharedErrors.ErrCacheExpired)
		return nil, false
	}

	return entry.Findings, true
}

// Set writes findings under key. Failures are logged and swallowed; the cache
// is an optimization, not a correctness source.
func (c *Cache) Set(key string, findings []model.Finding) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, constants.DefaultDirPerm); err != nil {
		c.log.Warnw("cannot create cache directory", "dir", c.dir, "error", err)
		return
	}

	path, err := c.entryPath(key)
	if err != nil {
		c.log.Warnw("invalid cache entry path", "key", key, "error", err)
		return
	}

	entry := entryDTO{Key: key, Findings: findings, CreatedAt: time.Now().UTC()}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		c.log.Warnw("cannot serialize cache entry", "key", key, "error", err)
		return
	}

	if err := os.WriteFile(path, data, constants.DefaultFilePerm); err != nil {
		c.log.Warnw("cannot write cache entry", "path", path, "error", err)
	}
}

// Clear removes every entry in the cache directory. Individual deletion
// errors are logged and do not abort the sweep.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(c.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			c.log.Warnw("cannot remove cache entry", "path", path, "error", err)
		}
	}
}

func (c *Cache) entryPath(key string) (string, error) {
	return security.ResolveWithin(c.dir, key+".json")
}
