// Package render implements the box/meter/graph compositor of spec.md
// §4.4–4.6: fixed-width bars and braille/block/tty graphs built from raw
// escape-sequence runs. The lipgloss-styled chrome around them (status
// line, help overlay) lives in internal/app/chrome.go instead, since it
// isn't part of the spec-exact box/meter/graph algorithms this package
// reproduces.
//
// Grounded on original_source/src/btop_theme.h-adjacent rendering logic
// (the gradient/meter/graph algorithms themselves live in btop's Meter/
// Graph classes, not reproduced in original_source/, so §4.5/§4.6's
// textual algorithm descriptions are followed directly); the teacher's
// internal/monitor/styles.go informed the separate lipgloss chrome layer.
package render

import (
	"strings"

	"github.com/osmet/vitals/internal/theme"
)

// Meter is a fixed-width horizontal bar over a named gradient, with a
// 101-entry memoized render cache, per spec.md §4.5 and §3's Meter cache.
type Meter struct {
	width    int
	gradient string
	invert   bool
	palette  *theme.Palette

	cache [101]string
	have  [101]bool
}

// NewMeter constructs a Meter; width <= 0 is clamped to 1.
func NewMeter(width int, gradient string, invert bool, palette *theme.Palette) *Meter {
	if width <= 0 {
		width = 1
	}
	return &Meter{width: width, gradient: gradient, invert: invert, palette: palette}
}

// Reset clears the memoized cache, used on width/gradient/invert or
// theme change per spec.md §3's Meter cache invariant.
func (m *Meter) Reset() {
	m.have = [101]bool{}
}

// Render returns the glyph run for value (clamped to [0, 100]), building
// and memoizing it on first use. Implements spec.md §4.5 exactly: for each
// column i in [1, width], threshold = round(i*100/width); once value is
// below threshold the remainder of the bar is a single background run.
func (m *Meter) Render(value int) string {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	if m.have[value] {
		return m.cache[value]
	}

	var sb strings.Builder
	for i := 1; i <= m.width; i++ {
		threshold := roundDiv(i*100, m.width)
		if value >= threshold {
			gradientAt := threshold
			if m.invert {
				gradientAt = 100 - threshold
			}
			sb.WriteString(theme.EscapeSeq(m.palette.At(m.gradient, gradientAt), true, m.palette.Truecolor))
			sb.WriteString("│")
		} else {
			sb.WriteString(m.palette.Escape("meter_bg", true))
			sb.WriteString(strings.Repeat(" ", m.width-i+1))
			break
		}
	}
	sb.WriteString("\x1b[0m")

	out := sb.String()
	m.cache[value] = out
	m.have[value] = true
	return out
}

func roundDiv(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(float64(n)/float64(d) + 0.5)
}

// foregroundGlyphCount reports how many non-background glyphs render(p)
// would draw; exposed for Testable Property #5 (meter monotonicity)
// without depending on escape-sequence string internals.
func foregroundGlyphCount(value, width int) int {
	count := 0
	for i := 1; i <= width; i++ {
		threshold := roundDiv(i*100, width)
		if value >= threshold {
			count++
		} else {
			break
		}
	}
	return count
}
