package app

import (
	"github.com/osmet/vitals/internal/render"
	"github.com/osmet/vitals/internal/theme"
)

// graphSet owns the per-series Graph/Meter caches. Run builds it once from
// the terminal width at startup; a later resize does not rebuild it, so
// the graphs and meters keep their initial width. Per spec.md §3's cache
// invariant, width/height never change after construction.
type graphSet struct {
	width int

	cpuAggregate *render.Graph
	cpuCores     []*render.Graph
	memUsed      *render.Meter
	memAvailable *render.Meter
	memCached    *render.Meter
	memFree      *render.Meter
	netDown      *render.Graph
	netUp        *render.Graph
}

// newGraphSet constructs a graphSet sized for width columns: the aggregate
// CPU and network graphs are 2 rows tall, and the coreCount per-core graphs
// are 1 row tall each.
func newGraphSet(width, coreCount int, palette *theme.Palette) *graphSet {
	if width < 1 {
		width = 1
	}
	gs := &graphSet{
		width:        width,
		cpuAggregate: render.NewGraph(render.GraphConfig{Width: width, Height: 2, Gradient: "cpu", Symbol: render.SymbolBraille}, palette),
		memUsed:      render.NewMeter(width, "used", false, palette),
		memAvailable: render.NewMeter(width, "available", false, palette),
		memCached:    render.NewMeter(width, "cached", false, palette),
		memFree:      render.NewMeter(width, "free", false, palette),
		netDown:      render.NewGraph(render.GraphConfig{Width: width, Height: 2, Gradient: "download", Symbol: render.SymbolBraille}, palette),
		netUp:        render.NewGraph(render.GraphConfig{Width: width, Height: 2, Gradient: "upload", Symbol: render.SymbolBraille, Invert: true}, palette),
	}
	gs.cpuCores = make([]*render.Graph, coreCount)
	for i := range gs.cpuCores {
		gs.cpuCores[i] = render.NewGraph(render.GraphConfig{Width: width, Height: 1, Gradient: "cpu", Symbol: render.SymbolBraille}, palette)
	}
	return gs
}

// ensureCoreCount grows the per-core graph slice on the first tick that
// reports more cores than previously seen (e.g. a container's CPU quota
// changing). Existing graphs are left alone so their windows survive.
func (gs *graphSet) ensureCoreCount(n int, palette *theme.Palette) {
	for len(gs.cpuCores) < n {
		gs.cpuCores = append(gs.cpuCores, render.NewGraph(render.GraphConfig{
			Width: gs.width, Height: 1, Gradient: "cpu", Symbol: render.SymbolBraille,
		}, palette))
	}
}
