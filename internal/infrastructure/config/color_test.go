package config

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}, false},
		{"b4b4c8", color.RGBA{180, 180, 200, 255}, false},
		{"#10203040", color.RGBA{16, 32, 48, 64}, false},
		{"#fff", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDestructionConfig_ParsePalette(t *testing.T) {
	palette, err := DefaultTuning().Destruction.ParsePalette()
	require.NoError(t, err)
	assert.Len(t, palette, 4)

	bad := DestructionConfig{Palette: []string{"#ffffff", "oops"}}
	_, err = bad.ParsePalette()
	assert.ErrorContains(t, err, "destruction palette")
}
