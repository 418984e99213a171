package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUtils_MinMax(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Min(2, 5))
	assert.Equal(2, Min(5, 2))
	assert.Equal(5, Max(2, 5))
	assert.Equal(5, Max(5, 2))
	assert.Equal(0.25, Min(0.25, 0.75))
}

func TestUtils_Abs(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(3, Abs(-3))
	assert.Equal(3, Abs(3))
	assert.Equal(1.5, Abs(-1.5))
}

func TestUtils_Clamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1, Clamp(-5, 1, 64))
	assert.Equal(64, Clamp(100, 1, 64))
	assert.Equal(10, Clamp(10, 1, 64))
}

func TestUtils_Contains(t *testing.T) {
	assert := assert.New(t)

	modes := []string{"darken", "lighten", "screen"}
	assert.True(Contains(modes, "screen"))
	assert.False(Contains(modes, "overlay"))
}

func TestUtils_FormatTime(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal("1m 10.00s", FormatTime(70*time.Second))
	assert.Equal("1h 1m 5.00s", FormatTime(time.Hour+time.Minute+5*time.Second))
}

func TestUtils_IsValidUrl(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsValidUrl("https://example.com/image.png"))
	assert.False(IsValidUrl("image.png"))
	assert.False(IsValidUrl("/tmp/image.png"))
}

func TestUtils_DecorateText(t *testing.T) {
	assert := assert.New(t)

	s := DecorateText("done", SuccessMessage)
	assert.True(strings.HasPrefix(s, SuccessColor))
	assert.True(strings.HasSuffix(s, DefaultColor))
}
