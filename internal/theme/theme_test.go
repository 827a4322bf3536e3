package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValueHexAndGreyscaleAndDecimal(t *testing.T) {
	c, err := ParseValue("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, RGB{255, 128, 0}, c)

	c, err = ParseValue("#aa")
	require.NoError(t, err)
	assert.Equal(t, RGB{170, 170, 170}, c)

	c, err = ParseValue("10 20 30")
	require.NoError(t, err)
	assert.Equal(t, RGB{10, 20, 30}, c)

	_, err = ParseValue("#zz")
	assert.Error(t, err)
}

func TestTo256GreyscaleRamp(t *testing.T) {
	assert.Equal(t, 232, To256(RGB{0, 0, 0}))
}

func TestBuildForcesMainBgToDefaultWhenThemeBackgroundFalse(t *testing.T) {
	p, err := Build(map[string]string{"main_bg": "#000000"}, false, false)
	require.NoError(t, err)
	assert.Equal(t, Default, p.Colors["main_bg"])
	assert.Equal(t, "\x1b[49m", p.Escape("main_bg", true))
}

func TestBuildUnknownNameIgnored(t *testing.T) {
	p, err := Build(map[string]string{"not_a_real_key": "#ffffff"}, true, true)
	require.NoError(t, err)
	_, ok := p.Colors["not_a_real_key"]
	assert.False(t, ok)
}

func TestGradientFlatWhenNoEndDefined(t *testing.T) {
	colors := map[string]RGB{"cpu_start": {10, 20, 30}}
	grads := buildGradients(colors)
	_, ok := grads["cpu"]
	assert.False(t, ok, "gradient should not be generated without an _end color")
}

func TestGradientEndpointsMatchSourceColors(t *testing.T) {
	colors := map[string]RGB{
		"cpu_start": {0, 0, 0},
		"cpu_mid":   {50, 50, 50},
		"cpu_end":   {100, 100, 100},
	}
	grads := buildGradients(colors)
	g, ok := grads["cpu"]
	require.True(t, ok)
	assert.Equal(t, colors["cpu_start"], g[0])
	assert.Equal(t, colors["cpu_end"], g[100])
}

func TestParseFlatThemeFile(t *testing.T) {
	src := `main_bg=#000000
main_fg="#cccccc"
# a comment
unknown_key=#ffffff
`
	entries, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "#000000", entries["main_bg"])
	assert.Equal(t, "#cccccc", entries["main_fg"])
	_, ok := entries["unknown_key"]
	assert.False(t, ok)
}

func TestDetectTruecolorPrecedence(t *testing.T) {
	assert.True(t, detectTruecolorEnv("truecolor", "", ""))
	assert.True(t, detectTruecolorEnv("TRUECOLOR", "", "xterm")) // case-insensitive, beats TERM
	assert.True(t, detectTruecolorEnv("", "", "xterm-direct"))
	assert.True(t, detectTruecolorEnv("", "iTerm.app", ""))
	assert.False(t, detectTruecolorEnv("", "", "xterm-256color"))
}
