package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// ErrMiss is returned when a cache-only lookup finds nothing.
var ErrMiss = errors.New("cache miss")

// SearchEntry is the metadata stored next to a cached response body.
type SearchEntry struct {
	Vertical string    `json:"vertical"`
	Query    string    `json:"query"`
	Scope    string    `json:"scope,omitempty"`
	SavedAt  time.Time `json:"saved_at"`
}

// SearchCache stores search API responses on disk as <key>.meta.json and
// <key>.body where key is sha256(vertical + scope + normalized query). No
// eviction policy is included; see PurgeSearchCacheByAge.
type SearchCache struct {
	Dir string
	// Scope names the request parameters that shape a response, such as
	// country, language and result count. Entries saved under one scope
	// are never served for another.
	Scope string
	// MaxAge, when positive, makes entries older than this a miss.
	MaxAge time.Duration
	// StrictPerms, when true, uses 0700 directories and 0600 files.
	StrictPerms bool
}

func (c *SearchCache) ensureDir() error {
	if c == nil || c.Dir == "" {
		return errors.New("cache dir not configured")
	}
	perm := os.FileMode(0o755)
	if c.StrictPerms {
		perm = 0o700
	}
	if err := os.MkdirAll(c.Dir, perm); err != nil {
		return err
	}
	if c.StrictPerms {
		_ = os.Chmod(c.Dir, 0o700)
	}
	return nil
}

func (c *SearchCache) fileMode() os.FileMode {
	if c.StrictPerms {
		return 0o600
	}
	return 0o644
}

// SearchKey derives the cache key for a vertical, request scope and query.
// Queries are case folded with surrounding whitespace removed, so "STRASSE"
// and "straße" share an entry.
func SearchKey(vertical, scope, query string) string {
	norm := cases.Fold().String(strings.TrimSpace(query))
	h := sha256.Sum256([]byte(vertical + "\n" + scope + "\n" + norm))
	return hex.EncodeToString(h[:])
}

func (c *SearchCache) key(vertical, query string) string {
	return SearchKey(vertical, c.Scope, query)
}

func (c *SearchCache) metaPath(key string) string { return filepath.Join(c.Dir, key+".meta.json") }
func (c *SearchCache) bodyPath(key string) string { return filepath.Join(c.Dir, key+".body") }

// LoadMeta returns entry metadata if present.
func (c *SearchCache) LoadMeta(_ context.Context, vertical, query string) (*SearchEntry, error) {
	if err := c.ensureDir(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(c.metaPath(c.key(vertical, query)))
	if err != nil {
		return nil, err
	}
	var e SearchEntry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// LoadBody returns the cached body. Entries older than MaxAge are reported
// as ErrMiss.
func (c *SearchCache) LoadBody(ctx context.Context, vertical, query string) ([]byte, error) {
	meta, err := c.LoadMeta(ctx, vertical, query)
	if err != nil {
		return nil, err
	}
	if c.MaxAge > 0 && time.Since(meta.SavedAt) > c.MaxAge {
		return nil, ErrMiss
	}
	return os.ReadFile(c.bodyPath(c.key(vertical, query)))
}

// Save stores a new cache entry to disk. The body is written before the
// metadata so a present meta file always has a body.
func (c *SearchCache) Save(_ context.Context, vertical, query string, body []byte) error {
	if err := c.ensureDir(); err != nil {
		return err
	}
	key := c.key(vertical, query)
	if err := os.WriteFile(c.bodyPath(key), body, c.fileMode()); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	meta := SearchEntry{
		Vertical: vertical,
		Query:    strings.TrimSpace(query),
		Scope:    c.Scope,
		SavedAt:  time.Now().UTC(),
	}
	data, err := json.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	tmp := c.metaPath(key) + ".tmp"
	if err := os.WriteFile(tmp, data, c.fileMode()); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return os.Rename(tmp, c.metaPath(key))
}
