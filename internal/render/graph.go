// Graph implements the sliding-window box/meter/graph compositor of
// spec.md §4.6: numeric series packed two-per-glyph-column (braille/block)
// or one-per-column (tty) via a fixed 5x5 intensity lookup, with a
// double-buffered rolling window so each tick appends one column and
// drops the oldest.
//
// Grounded on original_source/src/btop_draw.cpp's Graph::_create and
// Symbols::graph_symbols (the exact 25-entry braille_up/down, block_up/
// down, and tty glyph tables are copied verbatim from there).
package render

import (
	"math"
	"strings"

	"github.com/osmet/vitals/internal/theme"
)

// SymbolFamily selects the glyph set a Graph packs samples into, a closed
// sum type chosen once at construction per spec.md §9.
type SymbolFamily int

const (
	SymbolBraille SymbolFamily = iota
	SymbolBlock
	SymbolTTY
)

// ParseSymbolFamily maps a config/CLI string to a SymbolFamily, defaulting
// to braille for unrecognized input.
func ParseSymbolFamily(s string) SymbolFamily {
	switch s {
	case "block":
		return SymbolBlock
	case "tty":
		return SymbolTTY
	default:
		return SymbolBraille
	}
}

var brailleUp = [25]string{
	" ", "⢀", "⢠", "⢰", "⢸",
	"⡀", "⣀", "⣠", "⣰", "⣸",
	"⡄", "⣄", "⣤", "⣴", "⣼",
	"⡆", "⣆", "⣦", "⣶", "⣾",
	"⡇", "⣇", "⣧", "⣷", "⣿",
}

var brailleDown = [25]string{
	" ", "⠈", "⠘", "⠸", "⢸",
	"⠁", "⠉", "⠙", "⠹", "⢹",
	"⠃", "⠋", "⠛", "⠻", "⢻",
	"⠇", "⠏", "⠟", "⠿", "⢿",
	"⡇", "⡏", "⡟", "⡿", "⣿",
}

var blockUp = [25]string{
	" ", "▗", "▗", "▐", "▐",
	"▖", "▄", "▄", "▟", "▟",
	"▖", "▄", "▄", "▟", "▟",
	"▌", "▙", "▙", "█", "█",
	"▌", "▙", "▙", "█", "█",
}

var blockDown = [25]string{
	" ", "▝", "▝", "▐", "▐",
	"▘", "▀", "▀", "▜", "▜",
	"▘", "▀", "▀", "▜", "▜",
	"▌", "▛", "▛", "█", "█",
	"▌", "▛", "▛", "█", "█",
}

var ttyGlyphs = [25]string{
	" ", "░", "░", "▒", "▒",
	"░", "░", "▒", "▒", "█",
	"░", "▒", "▒", "▒", "█",
	"▒", "▒", "▒", "█", "█",
	"▒", "█", "█", "█", "█",
}

func glyphTable(symbol SymbolFamily, invert bool) *[25]string {
	switch symbol {
	case SymbolBlock:
		if invert {
			return &blockDown
		}
		return &blockUp
	case SymbolTTY:
		return &ttyGlyphs
	default:
		if invert {
			return &brailleDown
		}
		return &brailleUp
	}
}

// GraphConfig is a Graph's fixed construction-time configuration; per
// spec.md §3's Graph cache invariant, width and height never change after
// construction.
type GraphConfig struct {
	Width     int
	Height    int
	Gradient  string
	Symbol    SymbolFamily
	Invert    bool
	AllowZero bool
	MaxValue  int
	Offset    int
}

// Graph is the sliding-window glyph cache of spec.md §3/§4.6: one glyph
// slice per row, rolled forward one column per Push, plus the last raw
// sample used to pair against the next one.
type Graph struct {
	cfg       GraphConfig
	palette   *theme.Palette
	rows      [][]string
	last      int // 0 until the first sample arrives (see haveValue)
	haveValue bool
}

// NewGraph constructs a Graph with a blank-filled window of cfg.Width
// columns; width/height below 1 are clamped to 1.
func NewGraph(cfg GraphConfig, palette *theme.Palette) *Graph {
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.Height < 1 {
		cfg.Height = 1
	}
	g := &Graph{cfg: cfg, palette: palette, last: 0}
	g.rows = make([][]string, cfg.Height)
	for r := range g.rows {
		row := make([]string, cfg.Width)
		for c := range row {
			row[c] = " "
		}
		g.rows[r] = row
	}
	return g
}

// normalize implements spec.md §4.6's value transform: v <- clamp((v +
// offset) * 100 / max_value, 0, 100) when max_value > 0; otherwise the raw
// value is clamped to [0, 100] directly.
func (g *Graph) normalize(v float64) int {
	if g.cfg.MaxValue > 0 {
		v = (v + float64(g.cfg.Offset)) * 100 / float64(g.cfg.MaxValue)
	}
	iv := int(math.Round(v))
	if iv < 0 {
		iv = 0
	}
	if iv > 100 {
		iv = 100
	}
	return iv
}

// Push appends one new sample: per spec.md §4.6, it shifts the display
// window left by one glyph column and packs the newest sample against the
// previous one via the 5x5 intensity lookup, returning the rendered,
// colored output.
func (g *Graph) Push(value float64) string {
	v := g.normalize(value)
	last := v
	if g.haveValue {
		last = g.last
	}

	table := glyphTable(g.cfg.Symbol, g.cfg.Invert)
	height := g.cfg.Height
	mod := 0.1
	if height == 1 {
		mod = 0.3
	}

	for row := 0; row < height; row++ {
		curHigh, curLow := 100, 0
		if height > 1 {
			curHigh = int(math.Round(100 * float64(height-row) / float64(height)))
			curLow = int(math.Round(100 * float64(height-row-1) / float64(height)))
		}

		var result [2]int
		for i, val := range [2]int{last, v} {
			switch {
			case val >= curHigh:
				result[i] = 4
			case val <= curLow:
				result[i] = 0
			default:
				span := curHigh - curLow
				result[i] = int(math.Round(float64(val-curLow)*4/float64(span) + mod))
			}
			if !g.cfg.AllowZero && row == height-1 && result[i] == 0 {
				result[i] = 1
			}
		}

		glyph := table[result[0]*5+result[1]]
		r := g.rows[row]
		copy(r, r[1:])
		r[len(r)-1] = glyph
	}

	g.last = v
	g.haveValue = true
	return g.render()
}

// Rebuild replaces the window wholesale from history (oldest first),
// used on resize or configuration change per spec.md §4.6. Only the most
// recent Width samples matter; Rebuild re-derives them by replaying Push.
func (g *Graph) Rebuild(history []float64) string {
	width := g.cfg.Width
	for r := range g.rows {
		row := make([]string, width)
		for c := range row {
			row[c] = " "
		}
		g.rows[r] = row
	}
	g.haveValue = false
	g.last = 0

	if len(history) > width {
		history = history[len(history)-width:]
	}
	var out string
	for _, v := range history {
		out = g.Push(v)
	}
	if len(history) == 0 {
		out = g.render()
	}
	return out
}

func (g *Graph) render() string {
	if g.cfg.Height == 1 {
		color := g.palette.Escape("inactive_fg", false)
		if g.last >= 1 {
			color = theme.EscapeSeq(g.palette.At(g.cfg.Gradient, g.last), true, g.palette.Truecolor)
		}
		return color + strings.Join(g.rows[0], "") + "\x1b[0m"
	}

	var sb strings.Builder
	for i := 0; i < g.cfg.Height; i++ {
		if i > 0 {
			sb.WriteString(moveDown(1))
			sb.WriteString(moveLeft(g.cfg.Width))
		}
		pct := i * 100 / (g.cfg.Height - 1)
		if g.cfg.Invert {
			sb.WriteString(theme.EscapeSeq(g.palette.At(g.cfg.Gradient, pct), true, g.palette.Truecolor))
			sb.WriteString(strings.Join(g.rows[g.cfg.Height-1-i], ""))
		} else {
			sb.WriteString(theme.EscapeSeq(g.palette.At(g.cfg.Gradient, 100-pct), true, g.palette.Truecolor))
			sb.WriteString(strings.Join(g.rows[i], ""))
		}
	}
	sb.WriteString("\x1b[0m")
	return sb.String()
}

// Glyphs exposes the current window's raw glyph rows (without color
// escapes), for tests that check Testable Property #4 (graph pack
// round-trip) without parsing escape sequences.
func (g *Graph) Glyphs() [][]string {
	out := make([][]string, len(g.rows))
	for i, row := range g.rows {
		cp := make([]string, len(row))
		copy(cp, row)
		out[i] = cp
	}
	return out
}
