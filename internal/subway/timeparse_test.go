package subway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSecondsStrict(t *testing.T) {
	t.Run("M:SS is minutes and seconds", func(t *testing.T) {
		sec, ok := ParseSecondsStrict("2:30")
		assert.True(t, ok)
		assert.Equal(t, 150, sec)
	})

	t.Run("plain integer is seconds verbatim, never multiplied", func(t *testing.T) {
		sec, ok := ParseSecondsStrict("150")
		assert.True(t, ok)
		assert.Equal(t, 150, sec)
	})

	t.Run("plain float rounds to nearest second", func(t *testing.T) {
		sec, ok := ParseSecondsStrict("150.6")
		assert.True(t, ok)
		assert.Equal(t, 151, sec)
	})

	t.Run("thousands comma is stripped", func(t *testing.T) {
		sec, ok := ParseSecondsStrict("1,500")
		assert.True(t, ok)
		assert.Equal(t, 1500, sec)
	})

	t.Run("empty string is not ok", func(t *testing.T) {
		_, ok := ParseSecondsStrict("")
		assert.False(t, ok)
	})

	t.Run("unparseable string is not ok", func(t *testing.T) {
		_, ok := ParseSecondsStrict("abc")
		assert.False(t, ok)
	})

	t.Run("M:SS with single-digit seconds", func(t *testing.T) {
		sec, ok := ParseSecondsStrict("1:05")
		assert.True(t, ok)
		assert.Equal(t, 65, sec)
	})
}

func TestFormatMMSS(t *testing.T) {
	t.Run("renders minutes and seconds", func(t *testing.T) {
		assert.Equal(t, "2:30", FormatMMSS(150))
	})

	t.Run("pads single-digit seconds", func(t *testing.T) {
		assert.Equal(t, "1:05", FormatMMSS(65))
	})
}
