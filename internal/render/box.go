// Box is the frame/chrome primitive of spec.md §4.4: a titled rectangle
// drawn with Unicode box-drawing glyphs and positioned via absolute CSI
// cursor moves.
//
// Grounded on original_source/src/btop_draw.cpp's createBox (Symbols::h_line/
// v_line/left_up/.../title_left/title_right, the Mv::to/Mv::r move helpers).
package render

import (
	"fmt"
	"strings"

	"github.com/osmet/vitals/internal/theme"
)

const (
	boxHLine     = "─"
	boxVLine     = "│"
	boxLeftUp    = "┌"
	boxRightUp   = "┐"
	boxLeftDown  = "└"
	boxRightDown = "┘"
	boxTitleL    = "┤"
	boxTitleR    = "├"
)

var superscript = [10]string{"⁰", "¹", "²", "³", "⁴", "⁵", "⁶", "⁷", "⁸", "⁹"}

// Box is the §4.4 box configuration: position, size, line color, title/
// subtitle text, fill flag, and an optional superscript box number.
type Box struct {
	X, Y          int
	Width, Height int
	LineColor     theme.RGB
	Title         string
	Subtitle      string
	Fill          bool
	Numbering     int
	Truecolor     bool
}

// Render emits the box's escape-sequence output: top/bottom horizontal
// lines, left/right verticals, corners, and the title/subtitle segments
// bracketed by ┤…├, per spec.md §4.4. titleColor/hiFG color the title text
// and the numbering superscript respectively.
func (b *Box) Render(titleColor, hiFG theme.RGB) string {
	if b.Width < 2 || b.Height < 2 {
		return ""
	}
	lc := theme.EscapeSeq(b.LineColor, true, b.Truecolor)

	var sb strings.Builder
	sb.WriteString("\x1b[0m")
	sb.WriteString(lc)

	for _, row := range [2]int{b.Y, b.Y + b.Height - 1} {
		sb.WriteString(moveTo(row, b.X))
		sb.WriteString(strings.Repeat(boxHLine, b.Width-1))
	}

	for row := b.Y + 1; row < b.Y+b.Height-1; row++ {
		sb.WriteString(moveTo(row, b.X))
		sb.WriteString(boxVLine)
		if b.Fill {
			sb.WriteString(strings.Repeat(" ", b.Width-2))
		} else {
			sb.WriteString(moveRight(b.Width - 2))
		}
		sb.WriteString(boxVLine)
	}

	sb.WriteString(moveTo(b.Y, b.X) + boxLeftUp)
	sb.WriteString(moveTo(b.Y, b.X+b.Width-1) + boxRightUp)
	sb.WriteString(moveTo(b.Y+b.Height-1, b.X) + boxLeftDown)
	sb.WriteString(moveTo(b.Y+b.Height-1, b.X+b.Width-1) + boxRightDown)

	if b.Title != "" {
		numbering := ""
		if b.Numbering > 0 && b.Numbering < len(superscript) {
			numbering = theme.EscapeSeq(hiFG, true, b.Truecolor) + superscript[b.Numbering]
		}
		sb.WriteString(moveTo(b.Y, b.X+2))
		sb.WriteString(boxTitleL + "\x1b[1m" + numbering)
		sb.WriteString(theme.EscapeSeq(titleColor, true, b.Truecolor) + b.Title)
		sb.WriteString("\x1b[22m" + lc + boxTitleR)
	}
	if b.Subtitle != "" {
		sb.WriteString(moveTo(b.Y+b.Height-1, b.X+2))
		sb.WriteString(boxTitleL + theme.EscapeSeq(titleColor, true, b.Truecolor) + b.Subtitle)
		sb.WriteString(lc + boxTitleR)
	}

	sb.WriteString("\x1b[0m")
	sb.WriteString(moveTo(b.Y+1, b.X+1))
	return sb.String()
}

func moveTo(row, col int) string { return fmt.Sprintf("\x1b[%d;%df", row, col) }

func moveRight(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dC", n)
}

func moveDown(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dB", n)
}

func moveLeft(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dD", n)
}
