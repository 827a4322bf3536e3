// Package theme converts theme values (hex/decimal triplets) into terminal
// escape sequences, builds 101-step gradients between named endpoints, and
// detects whether the terminal supports 24-bit color.
//
// Grounded on original_source/src/btop_theme.h's hex_to_color/dec_to_color/
// truecolor_to_256/generateGradients, reworked into small pure Go functions.
package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osmet/vitals/internal/apperrors"
)

// RGB holds a color's decimal components, or (-1,-1,-1) for "terminal default".
type RGB struct {
	R, G, B int
}

// Default is the sentinel for "use the terminal's own foreground/background".
var Default = RGB{-1, -1, -1}

// IsDefault reports whether c represents the terminal-default color.
func (c RGB) IsDefault() bool { return c.R < 0 || c.G < 0 || c.B < 0 }

// Hex renders c as "#RRGGBB", for handing off to color-aware libraries
// (lipgloss.Color) that take hex strings rather than raw CSI escapes.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseValue parses a theme value: "#RRGGBB", "#GG" (greyscale), or
// "r g b" decimal triplets. An invalid value is a configuration error.
func ParseValue(value string) (RGB, error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "#") {
		return hexToDec(value)
	}
	fields := strings.Fields(value)
	if len(fields) != 3 {
		return Default, apperrors.New(apperrors.ErrConfiguration,
			fmt.Sprintf("invalid theme color value %q", value),
			`use "#RRGGBB", "#GG", or three space-separated decimal integers`)
	}
	var rgb [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Default, apperrors.New(apperrors.ErrConfiguration,
				fmt.Sprintf("invalid theme color value %q", value), "")
		}
		rgb[i] = clampByte(n)
	}
	return RGB{rgb[0], rgb[1], rgb[2]}, nil
}

func hexToDec(hexa string) (RGB, error) {
	h := strings.TrimPrefix(hexa, "#")
	switch len(h) {
	case 2:
		v, err := strconv.ParseInt(h, 16, 32)
		if err != nil {
			return Default, invalidHex(hexa)
		}
		return RGB{int(v), int(v), int(v)}, nil
	case 6:
		r, err1 := strconv.ParseInt(h[0:2], 16, 32)
		g, err2 := strconv.ParseInt(h[2:4], 16, 32)
		b, err3 := strconv.ParseInt(h[4:6], 16, 32)
		if err1 != nil || err2 != nil || err3 != nil {
			return Default, invalidHex(hexa)
		}
		return RGB{int(r), int(g), int(b)}, nil
	default:
		return Default, invalidHex(hexa)
	}
}

func invalidHex(hexa string) error {
	return apperrors.New(apperrors.ErrConfiguration,
		fmt.Sprintf("invalid hex theme value %q", hexa),
		`use "#RRGGBB" or "#GG"`)
}

func clampByte(n int) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// To256 downsamples a 24-bit color to the 6x6x6 color cube (plus the
// greyscale ramp), matching truecolor_to_256.
func To256(c RGB) int {
	r, g, b := c.R, c.G, c.B
	if roundDiv(r, 11) == roundDiv(g, 11) && roundDiv(g, 11) == roundDiv(b, 11) {
		return 232 + roundDiv(r, 11)
	}
	return roundDiv(r, 51)*36 + roundDiv(g, 51)*6 + roundDiv(b, 51) + 16
}

func roundDiv(n, d int) int {
	if d == 0 {
		return 0
	}
	// round-half-away-from-zero, matching std::round on a positive quotient.
	return int(float64(n)/float64(d) + 0.5)
}

// EscapeSeq builds the CSI sequence for c, foreground or background,
// optionally downsampled to 256-color.
func EscapeSeq(c RGB, fg, truecolor bool) string {
	depth := "38"
	if !fg {
		depth = "48"
	}
	if c.IsDefault() {
		if fg {
			return "\x1b[39m"
		}
		return "\x1b[49m"
	}
	if truecolor {
		return fmt.Sprintf("\x1b[%s;2;%d;%d;%dm", depth, c.R, c.G, c.B)
	}
	return fmt.Sprintf("\x1b[%s;5;%dm", depth, To256(c))
}
