package mcpserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaguard/schemaguard/validator"
)

func TestSchemaInputResolve(t *testing.T) {
	t.Run("inline JSON", func(t *testing.T) {
		s, err := schemaInput{Content: `{"type":"integer"}`}.resolve()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"integer"}`, string(s.JSON()))
	})

	t.Run("inline YAML", func(t *testing.T) {
		s, err := schemaInput{Content: "type: integer\n"}.resolve()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"integer"}`, string(s.JSON()))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.yaml")
		require.NoError(t, os.WriteFile(path, []byte("type: string\n"), 0o600))

		s, err := schemaInput{File: path}.resolve()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"string"}`, string(s.JSON()))
		assert.Equal(t, path, s.Source())
	})

	t.Run("neither provided", func(t *testing.T) {
		_, err := schemaInput{}.resolve()
		assert.ErrorContains(t, err, "got none")
	})

	t.Run("both provided", func(t *testing.T) {
		_, err := schemaInput{File: "x.json", Content: "{}"}.resolve()
		assert.ErrorContains(t, err, "got both")
	})
}

func TestDataInputResolve(t *testing.T) {
	t.Run("inline JSON object", func(t *testing.T) {
		v, err := dataInput{Content: `{"age":42}`}.resolve()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"age": float64(42)}, v)
	})

	t.Run("inline YAML normalizes keys", func(t *testing.T) {
		v, err := dataInput{Content: "user:\n  name: ada\n"}.resolve()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"user": map[string]any{"name": "ada"}}, v)
	})

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.json")
		require.NoError(t, os.WriteFile(path, []byte(`[1,2]`), 0o600))

		v, err := dataInput{File: path}.resolve()
		require.NoError(t, err)
		assert.Equal(t, []any{float64(1), float64(2)}, v)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := dataInput{Content: `{"age":`}.resolve()
		assert.ErrorContains(t, err, "invalid JSON")
	})

	t.Run("neither provided", func(t *testing.T) {
		_, err := dataInput{}.resolve()
		assert.ErrorContains(t, err, "got none")
	})
}

func TestValidatorCache(t *testing.T) {
	newCache := func(maxSize int) *validatorCacheStore {
		return &validatorCacheStore{entries: make(map[string]*cacheEntry), maxSize: maxSize}
	}
	build := func(t *testing.T) *validator.Validator {
		t.Helper()
		s, err := schemaInput{Content: `{"type":"integer"}`}.resolve()
		require.NoError(t, err)
		v, err := validator.Build(validator.Config{Kind: validator.KindBody, Name: "t", Schema: s})
		require.NoError(t, err)
		return v
	}

	t.Run("put then get", func(t *testing.T) {
		c := newCache(4)
		v := build(t)
		c.put("k", v, time.Minute)
		assert.Same(t, v, c.get("k"))
		assert.Equal(t, 1, c.size())
	})

	t.Run("expired entries are dropped", func(t *testing.T) {
		c := newCache(4)
		c.put("k", build(t), -time.Second)
		assert.Nil(t, c.get("k"))
		assert.Equal(t, 0, c.size())
	})

	t.Run("eviction at capacity", func(t *testing.T) {
		c := newCache(2)
		c.put("a", build(t), time.Minute)
		time.Sleep(time.Millisecond)
		c.put("b", build(t), time.Minute)
		time.Sleep(time.Millisecond)
		c.put("c", build(t), time.Minute)

		assert.Equal(t, 2, c.size())
		assert.Nil(t, c.get("a"))
		assert.NotNil(t, c.get("c"))
	})

	t.Run("sweep removes expired", func(t *testing.T) {
		c := newCache(4)
		c.put("dead", build(t), -time.Second)
		c.put("live", build(t), time.Minute)
		c.sweep()
		assert.Equal(t, 1, c.size())
	})

	t.Run("reset clears everything", func(t *testing.T) {
		c := newCache(4)
		c.put("k", build(t), time.Minute)
		c.reset()
		assert.Equal(t, 0, c.size())
	})
}

func TestMakeCacheKey(t *testing.T) {
	s1, err := schemaInput{Content: `{"type":"integer"}`}.resolve()
	require.NoError(t, err)
	s2, err := schemaInput{Content: "type: integer\n"}.resolve()
	require.NoError(t, err)
	s3, err := schemaInput{Content: `{"type":"string"}`}.resolve()
	require.NoError(t, err)

	vcfg := validator.Config{Kind: validator.KindBody}
	assert.Equal(t, makeCacheKey(s1, vcfg), makeCacheKey(s2, vcfg))
	assert.NotEqual(t, makeCacheKey(s1, vcfg), makeCacheKey(s3, vcfg))

	coerced := vcfg
	coerced.CoerceTypes = true
	assert.NotEqual(t, makeCacheKey(s1, vcfg), makeCacheKey(s1, coerced))
}
