package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#569CD6", ColorFromRGB(0x56, 0x9c, 0xd6)},
		{"#ce9178", ColorFromRGB(0xce, 0x91, 0x78)},
		{"6A9955", ColorFromRGB(0x6a, 0x99, 0x55)},
		{"#fff", ColorFromRGB(255, 255, 255)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ColorFromHex(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equals(tt.want), "got %s want %s", got, tt.want)
		})
	}
}

func TestColorFromHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "nothex!"} {
		_, err := ColorFromHex(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestColorEquals(t *testing.T) {
	assert.True(t, ColorDefault.Equals(Color{Default: true}))
	assert.False(t, ColorDefault.Equals(ColorFromRGB(0, 0, 0)))
	assert.True(t, ColorFromRGB(1, 2, 3).Equals(ColorFromRGB(1, 2, 3)))
	assert.Equal(t, "#010203", ColorFromRGB(1, 2, 3).String())
	assert.Equal(t, "default", ColorDefault.String())
}

func TestColorBlend(t *testing.T) {
	black := ColorFromRGB(0, 0, 0)
	white := ColorFromRGB(255, 255, 255)

	assert.True(t, black.Blend(white, 0).Equals(black))
	assert.True(t, black.Blend(white, 1).Equals(white))

	mid := black.Blend(white, 0.5)
	assert.Greater(t, mid.R, uint8(0))
	assert.Less(t, mid.R, uint8(255))

	assert.True(t, ColorDefault.Blend(white, 0.2).IsDefault())
}

func TestStyleMerge(t *testing.T) {
	base := NewStyle(ColorFromRGB(10, 10, 10)).WithBackground(ColorFromRGB(1, 1, 1))
	over := NewStyle(ColorFromRGB(200, 0, 0)).Bold()

	merged := base.Merge(over)
	assert.True(t, merged.Foreground.Equals(ColorFromRGB(200, 0, 0)))
	assert.True(t, merged.Background.Equals(ColorFromRGB(1, 1, 1)))
	assert.True(t, merged.Attributes.Has(AttrBold))
	assert.False(t, merged.Attributes.Has(AttrItalic))
}

func TestRuneWidth(t *testing.T) {
	assert.Equal(t, 1, RuneWidth('a'))
	assert.Equal(t, 2, RuneWidth('世'))
	assert.Equal(t, 1, RuneWidth('\x01'))
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(2, 3, 10, 20)
	assert.Equal(t, 20, r.Width())
	assert.Equal(t, 10, r.Height())
	assert.Equal(t, 0, ScreenRect{Left: 5, Right: 1}.Width())
}
