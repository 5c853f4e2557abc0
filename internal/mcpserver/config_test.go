package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	t.Run("unset returns fallback", func(t *testing.T) {
		assert.True(t, envBool("SCHEMAGUARD_TEST_BOOL", true))
		assert.False(t, envBool("SCHEMAGUARD_TEST_BOOL", false))
	})

	t.Run("valid value", func(t *testing.T) {
		t.Setenv("SCHEMAGUARD_TEST_BOOL", "true")
		assert.True(t, envBool("SCHEMAGUARD_TEST_BOOL", false))
	})

	t.Run("invalid value returns fallback", func(t *testing.T) {
		t.Setenv("SCHEMAGUARD_TEST_BOOL", "maybe")
		assert.True(t, envBool("SCHEMAGUARD_TEST_BOOL", true))
	})
}

func TestEnvInt(t *testing.T) {
	t.Run("unset returns fallback", func(t *testing.T) {
		assert.Equal(t, 32, envInt("SCHEMAGUARD_TEST_INT", 32))
	})

	t.Run("valid value", func(t *testing.T) {
		t.Setenv("SCHEMAGUARD_TEST_INT", "64")
		assert.Equal(t, 64, envInt("SCHEMAGUARD_TEST_INT", 32))
	})

	t.Run("non-positive returns fallback", func(t *testing.T) {
		t.Setenv("SCHEMAGUARD_TEST_INT", "0")
		assert.Equal(t, 32, envInt("SCHEMAGUARD_TEST_INT", 32))
	})
}

func TestEnvDuration(t *testing.T) {
	t.Run("unset returns fallback", func(t *testing.T) {
		assert.Equal(t, time.Minute, envDuration("SCHEMAGUARD_TEST_DUR", time.Minute))
	})

	t.Run("valid value", func(t *testing.T) {
		t.Setenv("SCHEMAGUARD_TEST_DUR", "30s")
		assert.Equal(t, 30*time.Second, envDuration("SCHEMAGUARD_TEST_DUR", time.Minute))
	})

	t.Run("invalid value returns fallback", func(t *testing.T) {
		t.Setenv("SCHEMAGUARD_TEST_DUR", "soon")
		assert.Equal(t, time.Minute, envDuration("SCHEMAGUARD_TEST_DUR", time.Minute))
	})
}
