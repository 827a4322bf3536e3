package render

import (
	"strings"
	"testing"

	"github.com/osmet/vitals/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxRenderContainsFrameGlyphs(t *testing.T) {
	p, err := newTestPalette()
	require.NoError(t, err)

	b := &Box{
		X: 1, Y: 1, Width: 10, Height: 5,
		LineColor: p.Colors["div_line"],
		Title:     "cpu",
		Subtitle:  "2.4GHz",
		Fill:      true,
		Truecolor: true,
	}
	out := b.Render(p.Colors["title"], p.Colors["hi_fg"])

	assert.Contains(t, out, boxLeftUp)
	assert.Contains(t, out, boxRightUp)
	assert.Contains(t, out, boxLeftDown)
	assert.Contains(t, out, boxRightDown)
	assert.Contains(t, out, boxTitleL+"\x1b[1m")
	assert.Contains(t, out, "cpu")
	assert.Contains(t, out, "2.4GHz")
}

func TestBoxFillClearsInteriorWithSpaces(t *testing.T) {
	p, err := newTestPalette()
	require.NoError(t, err)

	filled := (&Box{X: 0, Y: 0, Width: 8, Height: 4, LineColor: p.Colors["div_line"], Fill: true}).
		Render(p.Colors["title"], p.Colors["hi_fg"])
	unfilled := (&Box{X: 0, Y: 0, Width: 8, Height: 4, LineColor: p.Colors["div_line"], Fill: false}).
		Render(p.Colors["title"], p.Colors["hi_fg"])

	assert.True(t, strings.Contains(filled, strings.Repeat(" ", 6)))
	assert.False(t, strings.Contains(unfilled, strings.Repeat(" ", 6)))
}

func TestBoxTooSmallRendersEmpty(t *testing.T) {
	b := &Box{X: 0, Y: 0, Width: 1, Height: 1}
	assert.Equal(t, "", b.Render(theme.RGB{}, theme.RGB{}))
}
