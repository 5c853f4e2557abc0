package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/schemaguard/schemaguard/schema"
	"github.com/schemaguard/schemaguard/validator"
)

// schemaInput is the two ways a schema document can be provided to a tool.
// Exactly one of File or Content must be set.
type schemaInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a schema document on disk (JSON or YAML)"`
	Content string `json:"content,omitempty" jsonschema:"Inline schema document content (JSON or YAML)"`
}

// dataInput is the two ways a data payload can be provided to a tool.
// Exactly one of File or Content must be set.
type dataInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a data document on disk (JSON or YAML)"`
	Content string `json:"content,omitempty" jsonschema:"Inline data content (JSON or YAML)"`
}

// resolve loads and parses the schema from whichever input was provided.
func (s schemaInput) resolve() (*schema.Schema, error) {
	switch {
	case s.File != "" && s.Content != "":
		return nil, fmt.Errorf("exactly one of schema file or content must be provided (got both)")
	case s.File != "":
		data, err := os.ReadFile(s.File)
		if err != nil {
			return nil, err
		}
		return schema.FromFile(s.File, data)
	case s.Content != "":
		if int64(len(s.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline schema size %d bytes exceeds maximum %d bytes; use file input instead, or set SCHEMAGUARD_MAX_INLINE_SIZE to increase",
				len(s.Content), cfg.MaxInlineSize)
		}
		return sniffSchema([]byte(s.Content))
	default:
		return nil, fmt.Errorf("exactly one of schema file or content must be provided (got none)")
	}
}

// resolve loads and decodes the data payload from whichever input was
// provided. Unlike schemas, any JSON value is acceptable.
func (d dataInput) resolve() (any, error) {
	switch {
	case d.File != "" && d.Content != "":
		return nil, fmt.Errorf("exactly one of data file or content must be provided (got both)")
	case d.File != "":
		raw, err := os.ReadFile(d.File)
		if err != nil {
			return nil, err
		}
		return decodeData(d.File, raw)
	case d.Content != "":
		if int64(len(d.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline data size %d bytes exceeds maximum %d bytes; use file input instead, or set SCHEMAGUARD_MAX_INLINE_SIZE to increase",
				len(d.Content), cfg.MaxInlineSize)
		}
		return decodeData("", []byte(d.Content))
	default:
		return nil, fmt.Errorf("exactly one of data file or content must be provided (got none)")
	}
}

// sniffSchema parses inline schema content, JSON first when it looks like
// JSON, YAML otherwise.
func sniffSchema(data []byte) (*schema.Schema, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return schema.FromJSON(data)
	}
	return schema.FromYAML(data)
}

// decodeData parses a data document chosen by extension, falling back to
// sniffing for inline content and unrecognized extensions.
func decodeData(path string, data []byte) (any, error) {
	useJSON := false
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		useJSON = true
	case ".yaml", ".yml":
	default:
		trimmed := strings.TrimSpace(string(data))
		useJSON = strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") ||
			strings.HasPrefix(trimmed, `"`)
	}

	var raw any
	if useJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON data: %w", err)
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML data: %w", err)
	}
	return normalizeYAML(raw), nil
}

// normalizeYAML converts map[any]any nodes from YAML decoding into
// map[string]any so validation sees the same shapes JSON decoding produces.
func normalizeYAML(v any) any {
	switch node := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(val)
		}
		return out
	case map[string]any:
		for k, val := range node {
			node[k] = normalizeYAML(val)
		}
		return node
	case []any:
		for i, val := range node {
			node[i] = normalizeYAML(val)
		}
		return node
	default:
		return v
	}
}

// cacheEntry holds a cached validator with insertion order and TTL expiry.
type cacheEntry struct {
	validator *validator.Validator
	insertAt  time.Time
	expiresAt time.Time
}

// validatorCacheStore is a session-scoped cache for built validators, keyed
// by schema content hash plus the behavior flags. Building a validator
// recompiles the schema, so repeated calls against the same schema reuse
// the compiled checker.
type validatorCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var validatorCache = &validatorCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached validator or nil. Expired entries are lazily removed.
func (c *validatorCacheStore) get(key string) *validator.Validator {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.validator
	}
	return nil
}

// put stores a validator, evicting the oldest entry if at capacity.
func (c *validatorCacheStore) put(key string, v *validator.Validator, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{validator: v, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *validatorCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper; it stops when ctx
// is cancelled.
func (c *validatorCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	var sweeping atomic.Bool
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !sweeping.CompareAndSwap(false, true) {
					continue
				}
				c.sweep()
				sweeping.Store(false)
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *validatorCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *validatorCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey derives the cache key for a built validator. Hashing the
// canonical JSON makes file and inline inputs of the same document share
// an entry.
func makeCacheKey(s *schema.Schema, cfg validator.Config) string {
	h := sha256.Sum256(s.JSON())
	return fmt.Sprintf("%s:%s:%t:%t:%t",
		hex.EncodeToString(h[:]), cfg.Kind, cfg.CoerceTypes, cfg.StripUnknownProps, cfg.Required)
}

// buildValidator builds (or fetches from cache) a validator for the given
// schema and config.
func buildValidator(s *schema.Schema, vcfg validator.Config) (*validator.Validator, error) {
	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s, vcfg)
		if cached := validatorCache.get(key); cached != nil {
			return cached, nil
		}
	}

	v, err := validator.Build(vcfg)
	if err != nil {
		return nil, err
	}
	if key != "" {
		validatorCache.put(key, v, cfg.CacheTTL)
	}
	return v, nil
}
