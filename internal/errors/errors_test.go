package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		err := Wrap(ErrNotFound, "fetch object")
		require.Error(t, err)
		assert.Equal(t, "fetch object: not found", err.Error())
		assert.True(t, Is(err, ErrNotFound))
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("preserves chain through multiple wraps", func(t *testing.T) {
		err := Wrap(Wrap(ErrUnavailable, "inner"), "outer")
		assert.True(t, Is(err, ErrUnavailable))
		assert.Equal(t, "outer: inner: unavailable", err.Error())
	})
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("stage failed: %w", ErrAccessDenied)
	assert.True(t, Is(err, ErrAccessDenied))
	assert.False(t, Is(err, ErrNotFound))
}

func TestNew(t *testing.T) {
	err := New("something broke")
	require.Error(t, err)
	assert.Equal(t, "something broke", err.Error())
}
