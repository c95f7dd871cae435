package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gutpipe/internal/config"
	"gutpipe/internal/dataprocessing"
)

// palette maps treatment labels to their base colors
type palette map[string]color.NRGBA

// newPalette builds the treatment palette from configuration
func newPalette(cfg config.ChartsConfig) (palette, error) {
	abx, err := parseHexColor(cfg.ABXColor)
	if err != nil {
		return nil, fmt.Errorf("invalid ABX color: %w", err)
	}
	placebo, err := parseHexColor(cfg.PlaceboColor)
	if err != nil {
		return nil, fmt.Errorf("invalid placebo color: %w", err)
	}
	return palette{
		dataprocessing.TreatmentABX:     abx,
		dataprocessing.TreatmentPlacebo: placebo,
	}, nil
}

// parseHexColor parses "#RRGGBB" into an opaque color
func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("expected #RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("expected #RRGGBB, got %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}, nil
}

// withAlpha returns c with its opacity scaled to alpha in (0, 1]
func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(alpha * 0xFF)
	return c
}
