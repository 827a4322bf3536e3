// Package app wires the process-table engine, system samplers, frequency
// sampler, renderer, and input dispatcher into the three-goroutine
// tick/input/render model of spec.md §5, and owns the terminal facade's
// startup/shutdown lifecycle.
//
// Grounded on the teacher's internal/monitor update loop (a single
// ticker driving re-render) generalized to spec.md §5's stricter rules:
// ticks that arrive while a sample is still in flight are skipped, not
// queued, and input is decoded on its own goroutine so a slow sample
// never blocks keystrokes.
package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osmet/vitals/internal/config"
	"github.com/osmet/vitals/internal/cpufreq"
	"github.com/osmet/vitals/internal/input"
	"github.com/osmet/vitals/internal/logger"
	"github.com/osmet/vitals/internal/sampler"
	"github.com/osmet/vitals/internal/term"
	"github.com/osmet/vitals/internal/theme"
)

// shutdownJoin is how long Run waits for the tick/input/render goroutines
// to notice the stop signal before forcing the terminal back to its
// original state regardless, per spec.md §5's shutdown sequence.
const shutdownJoin = 250 * time.Millisecond

// App owns the goroutines and shared state of a single vitals run.
type App struct {
	cfg     *config.AppConfig
	term    *term.Terminal
	palette *theme.Palette
	log     logger.Logger

	collector *sampler.Collector
	system    *sampler.SystemSampler
	freq      *cpufreq.Sampler
	decoder   input.Decoder
	dispatch  *input.Dispatcher

	graphs *graphSet

	stateMu sync.Mutex
	state   dashboardState

	sampling atomic.Bool
	stopAll  atomic.Bool

	outputMu sync.Mutex
	renderCh chan struct{}
	stopCh   chan struct{}
	quitOnce sync.Once
	quitCh   chan struct{}

	started time.Time
}

// New constructs an App ready to Run. cfg and pal must be non-nil; t may
// be nil only in tests that never call Run.
func New(cfg *config.AppConfig, t *term.Terminal, pal *theme.Palette, log logger.Logger) *App {
	if log == nil {
		log = logger.Noop()
	}
	a := &App{
		cfg:       cfg,
		term:      t,
		palette:   pal,
		log:       log,
		collector: sampler.NewCollector(log),
		system:    sampler.NewSystemSampler(),
		freq:      &cpufreq.Sampler{},
		dispatch:  input.NewDispatcher(),
		renderCh:  make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		quitCh:    make(chan struct{}),
	}
	a.state.sortKey = sampler.ParseSortKey(cfg.SortKey)
	a.state.reverse = cfg.Reverse
	a.state.treeMode = cfg.TreeMode
	a.state.collapsed = make(map[int]bool)
	a.freq.Init()
	return a
}

// Run starts the tick, input, and render goroutines and blocks until ctx
// is cancelled or the user quits, then executes spec.md §5's shutdown
// sequence: signal the cooperative stop flag, wait up to shutdownJoin for
// the goroutines to exit, and force-restore the terminal either way.
func (a *App) Run(ctx context.Context) error {
	a.started = time.Now()

	cols, _, err := a.term.Size()
	if err != nil {
		cols = 80
	}
	a.graphs = newGraphSet(graphWidth(cols), 1, a.palette)

	a.collectOnce()

	var wg sync.WaitGroup
	wg.Add(3)
	go a.tickLoop(&wg)
	go a.inputLoop(&wg)
	go a.renderLoop(&wg)

	select {
	case <-ctx.Done():
	case <-a.quitCh:
	}

	a.stopAll.Store(true)
	a.collector.RequestStop()
	close(a.stopCh)

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(shutdownJoin):
		a.log.Warn("goroutines did not exit within %s, forcing terminal restore", shutdownJoin)
	}

	a.term.Restore()
	return nil
}

// requestQuit signals Run to begin shutdown; safe to call more than once
// or concurrently from multiple goroutines.
func (a *App) requestQuit() {
	a.quitOnce.Do(func() { close(a.quitCh) })
}

// signalRender wakes the render goroutine; the channel is buffered by one
// so a burst of ticks/keystrokes collapses into a single pending redraw
// instead of queuing up stale frames.
func (a *App) signalRender() {
	select {
	case a.renderCh <- struct{}{}:
	default:
	}
}

func (a *App) tickLoop(wg *sync.WaitGroup) {
	defer wg.Done()
	interval := time.Duration(a.cfg.UpdateMS) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			if a.stopAll.Load() {
				return
			}
			// Skip, don't queue: a tick that lands while the previous
			// sample is still running is dropped entirely, per spec.md §5.
			if !a.sampling.CompareAndSwap(false, true) {
				continue
			}
			a.collectOnce()
			a.sampling.Store(false)
			a.signalRender()
		}
	}
}

func (a *App) inputLoop(wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-a.stopCh:
			return
		case b, ok := <-a.term.Bytes():
			if !ok {
				return
			}
			for _, msg := range a.decoder.Feed(b) {
				act := a.dispatch.Dispatch(msg)
				a.applyAction(act)
			}
		}
	}
}

func (a *App) renderLoop(wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-a.stopCh:
			return
		case <-a.renderCh:
			if a.stopAll.Load() {
				return
			}
			a.renderFrame()
		}
	}
}

// collectOnce runs one full sample: process table, system CPU/mem/net,
// CPU frequency, and tree projection, all under the state lock for the
// duration of the (cheap) bookkeeping, per spec.md §4.1's "one ordered,
// filtered vector per tick" contract.
func (a *App) collectOnce() {
	intervalMS := float64(a.cfg.UpdateMS)
	uptime := time.Since(a.started).Seconds()

	a.stateMu.Lock()
	opts := sampler.CollectOptions{
		Sort:          a.state.sortKey,
		Reverse:       a.state.reverse,
		Filter:        a.state.filter,
		IntervalMS:    intervalMS,
		UptimeSeconds: uptime,
		TreeMode:      a.state.treeMode,
	}
	a.stateMu.Unlock()

	processes := a.collector.Collect(opts)
	if processes == nil {
		return // stop was requested mid-scan
	}

	cpuInfo, err := a.system.SampleCPU()
	if err != nil {
		a.log.Warn("cpu sample failed: %v", err)
	}
	memInfo, err := a.system.SampleMemory()
	if err != nil {
		a.log.Warn("memory sample failed: %v", err)
	}
	netInfo, err := a.system.SampleNetwork(intervalMS / 1000)
	if err != nil {
		a.log.Warn("network sample failed: %v", err)
	}
	// §4.3: 0 from either cluster means "unknown, keep last displayed
	// value" rather than a reading to display — the performance cluster
	// is the representative figure when both read back a valid
	// frequency, but a momentarily-idle performance cluster must not
	// blank out a valid efficiency-cluster reading, and an all-zero
	// sample keeps whatever was last shown instead of resetting to 0.
	eMHz, pMHz := a.freq.Frequencies()
	switch {
	case pMHz > 0:
		cpuInfo.FrequencyMHz = pMHz
	case eMHz > 0:
		cpuInfo.FrequencyMHz = eMHz
	default:
		cpuInfo.FrequencyMHz = a.state.cpu.FrequencyMHz
	}

	a.stateMu.Lock()
	a.state.processes = processes
	a.state.cpu = cpuInfo
	a.state.mem = memInfo
	a.state.net = netInfo
	a.state.ticks++
	projectDisplay(&a.state)
	clampSelection(&a.state)
	a.stateMu.Unlock()
}

// applyAction applies one routed input action to the shared state,
// re-running the tree projection where the action changes it. No action
// forces a recollect: sort and reverse changes take effect at the next
// tick's collection.
func (a *App) applyAction(act input.Action) {
	switch act.Kind {
	case input.ActionQuit:
		a.requestQuit()
		return
	case input.ActionNone:
		return
	}

	a.stateMu.Lock()
	switch act.Kind {
	case input.ActionToggleTree:
		a.state.treeMode = !a.state.treeMode
		projectDisplay(&a.state)
	case input.ActionToggleReverse:
		a.state.reverse = !a.state.reverse
	case input.ActionTogglePerCore:
		a.state.perCore = !a.state.perCore
	case input.ActionToggleFilterMode:
		a.state.filtering = !a.state.filtering
		a.state.filter = act.FilterText
		projectDisplay(&a.state)
	case input.ActionSortChanged:
		a.state.sortKey = act.SortKey
	case input.ActionSelectUp:
		a.state.selected--
	case input.ActionSelectDown:
		a.state.selected++
	case input.ActionSelectPageUp:
		a.state.selected -= processPageSize
	case input.ActionSelectPageDown:
		a.state.selected += processPageSize
	case input.ActionSelectHome:
		a.state.selected = 0
	case input.ActionSelectEnd:
		a.state.selected = len(a.state.display) - 1
	case input.ActionZoneClicked:
		a.handleZoneClick(act.Zone)
	case input.ActionToggleHelp:
		a.state.showHelp = !a.state.showHelp
	}
	clampSelection(&a.state)
	a.stateMu.Unlock()

	a.signalRender()
}

// processPageSize is the row count a page-up/page-down action moves the
// selection by; the process box's actual visible height varies with the
// terminal size, so this is a reasonable fixed default rather than a
// precise "one page" jump.
const processPageSize = 10

// handleZoneClick implements the portion of spec.md §4.7's zone table
// that toggles a tree node's collapsed state when its row is clicked.
func (a *App) handleZoneClick(zone string) {
	if zone != "proc_row" {
		return
	}
	if a.state.selected < 0 || a.state.selected >= len(a.state.display) {
		return
	}
	rec := a.state.display[a.state.selected]
	a.state.collapsed[rec.PID] = !a.state.collapsed[rec.PID]
	projectDisplay(&a.state)
}

func graphWidth(cols int) int {
	w := cols/2 - 4
	if w < 10 {
		w = 10
	}
	return w
}
