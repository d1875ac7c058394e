package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	t.Run("zeros all bytes", func(t *testing.T) {
		b := []byte{0x01, 0x02, 0x03, 0x04}
		Zero(b)
		assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, b)
	})

	t.Run("handles nil slice", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero(nil) })
	})

	t.Run("handles empty slice", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero([]byte{}) })
	})
}
