package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" into an opaque-by-default RGBA
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ParsePalette parses the destruction palette. Any malformed entry is an error.
func (c DestructionConfig) ParsePalette() ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(c.Palette))
	for _, s := range c.Palette {
		col, err := ParseHexColor(s)
		if err != nil {
			return nil, fmt.Errorf("destruction palette: %w", err)
		}
		out = append(out, col)
	}
	return out, nil
}
