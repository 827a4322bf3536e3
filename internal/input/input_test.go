package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmet/vitals/internal/sampler"
)

func feedAll(d *Decoder, s []byte) []tea.Msg {
	var out []tea.Msg
	for _, b := range s {
		out = append(out, d.Feed(b)...)
	}
	return out
}

func TestDecodeArrowKeys(t *testing.T) {
	var d Decoder
	msgs := feedAll(&d, []byte("\x1b[A"))
	require.Len(t, msgs, 1)
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyUp}, msgs[0])
}

func TestDecodePlainRune(t *testing.T) {
	var d Decoder
	msgs := feedAll(&d, []byte("q"))
	require.Len(t, msgs, 1)
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, msgs[0])
}

func TestDecodeMultiByteUTF8Rune(t *testing.T) {
	var d Decoder
	msgs := feedAll(&d, []byte("é"))
	require.Len(t, msgs, 1)
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'é'}}, msgs[0])
}

func TestDecodeSGRMousePress(t *testing.T) {
	var d Decoder
	msgs := feedAll(&d, []byte("\x1b[<0;10;5M"))
	require.Len(t, msgs, 1)
	mm, ok := msgs[0].(tea.MouseMsg)
	require.True(t, ok)
	assert.Equal(t, 9, mm.X)
	assert.Equal(t, 4, mm.Y)
	assert.Equal(t, tea.MouseActionPress, mm.Action)
}

func TestDecodeSGRMouseButtonClassification(t *testing.T) {
	var d Decoder
	msgs := feedAll(&d, []byte("\x1b[<2;10;5M"))
	require.Len(t, msgs, 1)
	mm, ok := msgs[0].(tea.MouseMsg)
	require.True(t, ok)
	assert.Equal(t, tea.MouseButtonRight, mm.Button)
}

func TestDecodeSGRMouseWheelUp(t *testing.T) {
	var d Decoder
	msgs := feedAll(&d, []byte("\x1b[<64;10;5M"))
	require.Len(t, msgs, 1)
	mm, ok := msgs[0].(tea.MouseMsg)
	require.True(t, ok)
	assert.Equal(t, tea.MouseButtonWheelUp, mm.Button)
}

func TestDecodeHomeEndTilde(t *testing.T) {
	var d Decoder
	msgs := feedAll(&d, []byte("\x1b[1~\x1b[4~"))
	require.Len(t, msgs, 2)
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyHome}, msgs[0])
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyEnd}, msgs[1])
}

func TestDispatcherQuit(t *testing.T) {
	d := NewDispatcher()
	act := d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, ActionQuit, act.Kind)
}

func TestDispatcherSortCycleWrapsBothDirections(t *testing.T) {
	d := NewDispatcher()
	act := d.Dispatch(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, ActionSortChanged, act.Kind)
	assert.Equal(t, sampler.SortCPULazy, act.SortKey, "cycling left from the start wraps to the last sort key")
}

func TestDispatcherFilterModeAppendsAndBackspaces(t *testing.T) {
	d := NewDispatcher()
	act := d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	assert.Equal(t, ActionToggleFilterMode, act.Kind)

	act = d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	assert.Equal(t, "f", act.FilterText)
	act = d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	assert.Equal(t, "fi", act.FilterText)

	act = d.Dispatch(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "f", act.FilterText)

	act = d.Dispatch(tea.KeyMsg{Type: tea.KeyDelete})
	assert.Equal(t, "", act.FilterText)
}

func TestDispatcherFilterModeCapturesQWithoutQuitting(t *testing.T) {
	d := NewDispatcher()
	d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	act := d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, ActionToggleFilterMode, act.Kind, "while filtering, typed 'q' edits the filter, it does not quit")
	assert.Equal(t, "q", act.FilterText)
}

func TestDispatcherMouseZoneHitTest(t *testing.T) {
	d := NewDispatcher()
	d.SetZones([]Zone{{X: 0, Y: 0, W: 10, H: 3, Name: "cpu_box"}})
	act := d.Dispatch(tea.MouseMsg{X: 5, Y: 1, Action: tea.MouseActionPress})
	assert.Equal(t, ActionZoneClicked, act.Kind)
	assert.Equal(t, "cpu_box", act.Zone)
}

func TestDispatcherMouseUnmatchedClickReportedVerbatim(t *testing.T) {
	d := NewDispatcher()
	d.SetZones([]Zone{{X: 0, Y: 0, W: 10, H: 3, Name: "cpu_box"}})
	act := d.Dispatch(tea.MouseMsg{X: 50, Y: 50, Action: tea.MouseActionPress})
	assert.Equal(t, ActionUnmatchedClick, act.Kind)
	assert.Equal(t, 50, act.X)
	assert.Equal(t, 50, act.Y)
}

func TestDispatcherHelpKeyTogglesHelp(t *testing.T) {
	d := NewDispatcher()
	act := d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Equal(t, ActionToggleHelp, act.Kind)
}

func TestHelpLinesCoverEveryBinding(t *testing.T) {
	lines := HelpLines()
	require.Len(t, lines, 14)
	assert.Contains(t, lines, "q  quit")
	assert.Contains(t, lines, "?  help")
}
