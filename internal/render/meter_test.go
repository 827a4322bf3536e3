package render

import (
	"testing"

	"github.com/osmet/vitals/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPalette() (*theme.Palette, error) {
	return theme.Build(nil, true, true)
}

func TestMeterRenderIsMemoizedAndClamped(t *testing.T) {
	p, err := newTestPalette()
	require.NoError(t, err)
	m := NewMeter(10, "cpu", false, p)

	low := m.Render(-5)
	assert.Equal(t, m.Render(0), low, "negative values clamp to 0")

	high := m.Render(500)
	assert.Equal(t, m.Render(100), high, "values above 100 clamp to 100")

	first := m.Render(42)
	assert.True(t, m.have[42])
	assert.Equal(t, first, m.Render(42), "second render of the same value is the memoized string")
}

func TestMeterResetClearsCache(t *testing.T) {
	p, err := newTestPalette()
	require.NoError(t, err)
	m := NewMeter(10, "cpu", false, p)
	m.Render(50)
	assert.True(t, m.have[50])
	m.Reset()
	assert.False(t, m.have[50])
}

// TestMeterMonotonicity is Testable Property #5: for any gradient, the
// number of foreground glyphs render(p1) draws is <= that of render(p2)
// whenever p1 <= p2.
func TestMeterMonotonicity(t *testing.T) {
	widths := []int{1, 5, 13, 40}
	for _, width := range widths {
		prev := -1
		for p := 0; p <= 100; p++ {
			count := foregroundGlyphCount(p, width)
			assert.GreaterOrEqual(t, count, prev)
			prev = count
		}
	}
}

func TestFullWidthAtValue100(t *testing.T) {
	assert.Equal(t, 20, foregroundGlyphCount(100, 20))
	assert.Equal(t, 0, foregroundGlyphCount(0, 20))
}
