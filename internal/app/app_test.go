package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmet/vitals/internal/config"
	"github.com/osmet/vitals/internal/input"
	"github.com/osmet/vitals/internal/sampler"
	"github.com/osmet/vitals/internal/theme"
)

func testApp(t *testing.T) *App {
	t.Helper()
	pal, err := theme.Build(nil, true, true)
	require.NoError(t, err)
	cfg := config.DefaultAppConfig()
	a := New(cfg, nil, pal, nil)
	a.graphs = newGraphSet(20, 1, pal)
	return a
}

func TestFormatBytesScalesUnits(t *testing.T) {
	assert.Equal(t, "512B", formatBytes(512))
	assert.Equal(t, "1.0KiB", formatBytes(1024))
	assert.Equal(t, "1.5KiB", formatBytes(1536))
	assert.Equal(t, "1.0MiB", formatBytes(1024*1024))
}

func TestGraphWidthClampsToMinimum(t *testing.T) {
	assert.Equal(t, 10, graphWidth(10))
	assert.Equal(t, 36, graphWidth(80))
}

func TestProjectDisplayFlatModeSkipsFilteredOut(t *testing.T) {
	st := dashboardState{
		treeMode: false,
		processes: []*sampler.ProcessRecord{
			{PID: 1, FilteredOut: false},
			{PID: 2, FilteredOut: true},
			{PID: 3, FilteredOut: false},
		},
	}
	projectDisplay(&st)
	require.Len(t, st.display, 2)
	assert.Equal(t, 1, st.display[0].PID)
	assert.Equal(t, 3, st.display[1].PID)
}

func TestProjectDisplayTreeModeUsesProjection(t *testing.T) {
	st := dashboardState{
		treeMode:  true,
		collapsed: map[int]bool{},
		processes: []*sampler.ProcessRecord{
			{PID: 1, PPID: 0},
			{PID: 2, PPID: 1},
		},
	}
	projectDisplay(&st)
	require.Len(t, st.display, 2)
	assert.NotEmpty(t, st.display[1].TreePrefix)
}

func TestClampSelectionBoundsToDisplayLength(t *testing.T) {
	st := dashboardState{display: make([]*sampler.ProcessRecord, 3), selected: 99}
	clampSelection(&st)
	assert.Equal(t, 2, st.selected)

	st.selected = -5
	clampSelection(&st)
	assert.Equal(t, 0, st.selected)

	st.display = nil
	clampSelection(&st)
	assert.Equal(t, 0, st.selected)
	assert.Equal(t, 0, st.scroll)
}

func TestApplyActionQuitSignalsWithoutPanicking(t *testing.T) {
	a := testApp(t)
	a.applyAction(input.Action{Kind: input.ActionQuit})
	select {
	case <-a.quitCh:
	default:
		t.Fatal("expected quitCh to be closed")
	}
}

func TestApplyActionToggleTreeReprojects(t *testing.T) {
	a := testApp(t)
	a.state.processes = []*sampler.ProcessRecord{{PID: 1, PPID: 0}, {PID: 2, PPID: 1}}
	a.state.collapsed = map[int]bool{}
	projectDisplay(&a.state)

	before := a.state.treeMode
	a.applyAction(input.Action{Kind: input.ActionToggleTree})
	assert.NotEqual(t, before, a.state.treeMode)
}

func TestApplyActionSortChangedUpdatesSortKey(t *testing.T) {
	a := testApp(t)
	a.applyAction(input.Action{Kind: input.ActionSortChanged, SortKey: sampler.SortMemory})
	assert.Equal(t, sampler.SortMemory, a.state.sortKey)
}

func TestHandleZoneClickTogglesCollapse(t *testing.T) {
	a := testApp(t)
	a.state.processes = []*sampler.ProcessRecord{{PID: 7, PPID: 0}}
	a.state.collapsed = map[int]bool{}
	a.state.treeMode = true
	projectDisplay(&a.state)
	a.state.selected = 0

	a.stateMu.Lock()
	a.handleZoneClick("proc_row")
	a.stateMu.Unlock()

	assert.True(t, a.state.collapsed[7])
}

func TestApplyActionToggleHelpFlipsState(t *testing.T) {
	a := testApp(t)
	assert.False(t, a.state.showHelp)
	a.applyAction(input.Action{Kind: input.ActionToggleHelp})
	assert.True(t, a.state.showHelp)
	a.applyAction(input.Action{Kind: input.ActionToggleHelp})
	assert.False(t, a.state.showHelp)
}

func TestNewChromeBuildsStylesFromPalette(t *testing.T) {
	pal, err := theme.Build(nil, true, true)
	require.NoError(t, err)
	c := newChrome(pal)
	rendered := c.key.Render("q")
	assert.Contains(t, rendered, "q")
}

func TestSortKeyLabelCoversAllKeys(t *testing.T) {
	cases := map[sampler.SortKey]string{
		sampler.SortPID:       "pid",
		sampler.SortName:      "name",
		sampler.SortCommand:   "command",
		sampler.SortThreads:   "threads",
		sampler.SortUser:      "user",
		sampler.SortMemory:    "memory",
		sampler.SortCPUDirect: "cpu",
		sampler.SortCPULazy:   "cpu_lazy",
	}
	for key, want := range cases {
		assert.Equal(t, want, sortKeyLabel(key))
	}
}

func TestTruncateClampsNegativeWidth(t *testing.T) {
	assert.Equal(t, "a", truncate("abcdef", -3))
	assert.Equal(t, "abcdef", truncate("abcdef", 100))
	assert.Equal(t, "abc", truncate("abcdef", 3))
}
