package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Host)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 10, cfg.HistoryLimit)
}

func TestConfigNormalize(t *testing.T) {
	cfg := NewConfig(WithHost("http://localhost:11434"))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)

	cfg = NewConfig(WithHost("http://localhost:11434/"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)

	// An already-canonical host is untouched.
	cfg = NewConfig(WithHost("http://localhost:11434/v1"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig(WithHost("http://localhost:11434"), WithModel(""))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithMaxAttempts(0))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithHistoryLimit(0))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithBaseDelay(-time.Second))
	assert.Error(t, cfg.Validate())
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("succeeds after failures", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(context.Background(), func() error {
			attempts++
			if attempts < 3 {
				return assert.AnError
			}
			return nil
		}, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		err := RetryWithBackoff(context.Background(), func() error { return assert.AnError }, 2, 0)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("rejects non-positive attempts", func(t *testing.T) {
		err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("stops once cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		err := RetryWithBackoff(ctx, func() error {
			attempts++
			cancel()
			return assert.AnError
		}, 5, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})
}
