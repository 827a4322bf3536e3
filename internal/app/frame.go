package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osmet/vitals/internal/render"
	"github.com/osmet/vitals/internal/sampler"
	"github.com/osmet/vitals/internal/theme"
)

// renderFrame composes one full dashboard frame from the current state
// and writes it to the terminal under the output lock, per spec.md §5's
// "single terminal writer, exclusive access" rule.
func (a *App) renderFrame() {
	cols, rows, err := a.term.Size()
	if err != nil {
		cols, rows = 80, 24
	}

	a.stateMu.Lock()
	st := a.state
	st.display = append([]*sampler.ProcessRecord(nil), a.state.display...)
	a.stateMu.Unlock()

	var sb strings.Builder
	sb.WriteString("\x1b[2J\x1b[H")

	cpuBox := render.Box{X: 1, Y: 1, Width: cols/2 - 1, Height: rows/2 - 1,
		LineColor: a.palette.Colors["cpu_box"], Title: "cpu", Fill: true, Truecolor: a.palette.Truecolor}
	sb.WriteString(cpuBox.Render(a.palette.Colors["title"], a.palette.Colors["hi_fg"]))
	sb.WriteString(a.renderCPUBody(&st, cpuBox.Width-2))

	memBox := render.Box{X: cols/2 + 1, Y: 1, Width: cols - cols/2 - 1, Height: rows/2 - 1,
		LineColor: a.palette.Colors["mem_box"], Title: "mem", Fill: true, Truecolor: a.palette.Truecolor}
	sb.WriteString(memBox.Render(a.palette.Colors["title"], a.palette.Colors["hi_fg"]))
	sb.WriteString(a.renderMemBody(&st, memBox.Width-2))

	procBox := render.Box{X: 1, Y: rows/2 + 1, Width: cols - 1, Height: rows - rows/2 - 1,
		LineColor: a.palette.Colors["proc_box"], Title: fmt.Sprintf("proc (%d)", len(st.display)), Fill: true, Truecolor: a.palette.Truecolor}
	sb.WriteString(procBox.Render(a.palette.Colors["title"], a.palette.Colors["hi_fg"]))
	sb.WriteString(a.renderProcessRows(&st, procBox.Width-2, procBox.Height-2))

	sb.WriteString(a.renderStatusLine(&st, cols, rows))
	if st.showHelp {
		sb.WriteString(a.renderHelpOverlay(cols, rows))
	}

	a.outputMu.Lock()
	_, _ = a.term.Write([]byte(sb.String()))
	a.outputMu.Unlock()
}

func (a *App) renderCPUBody(st *dashboardState, width int) string {
	var sb strings.Builder
	label := "n/a"
	if st.cpu.FrequencyMHz > 0 {
		label = fmt.Sprintf("%.2fGHz", float64(st.cpu.FrequencyMHz)/1000)
	}
	sb.WriteString(fmt.Sprintf("aggregate %3.0f%% %s\r\n", st.cpu.AggregatePct, label))
	sb.WriteString(a.graphs.cpuAggregate.Push(st.cpu.AggregatePct))
	sb.WriteString("\r\n")

	if st.perCore {
		a.graphs.ensureCoreCount(len(st.cpu.CorePercent), a.palette)
		for i, pct := range st.cpu.CorePercent {
			if i >= len(a.graphs.cpuCores) {
				break
			}
			sb.WriteString(fmt.Sprintf("c%-2d ", i))
			sb.WriteString(a.graphs.cpuCores[i].Push(pct))
			sb.WriteString("\r\n")
		}
	}
	return sb.String()
}

func (a *App) renderMemBody(st *dashboardState, width int) string {
	var sb strings.Builder
	rows := []struct {
		label string
		used  uint64
		meter *render.Meter
	}{
		{"used", st.mem.Used, a.graphs.memUsed},
		{"avail", st.mem.Available, a.graphs.memAvailable},
		{"cached", st.mem.Cached, a.graphs.memCached},
		{"free", st.mem.Free, a.graphs.memFree},
	}
	for _, r := range rows {
		pct := 0
		if st.mem.Total > 0 {
			pct = int(100 * r.used / st.mem.Total)
		}
		sb.WriteString(fmt.Sprintf("%-6s %6s ", r.label, formatBytes(r.used)))
		sb.WriteString(r.meter.Render(pct))
		sb.WriteString("\r\n")
	}

	sb.WriteString(fmt.Sprintf("down %10s\r\n", formatRate(avgRate(st.net, false))))
	sb.WriteString(a.graphs.netDown.Push(avgRate(st.net, false)))
	sb.WriteString("\r\n")
	sb.WriteString(fmt.Sprintf("up   %10s\r\n", formatRate(avgRate(st.net, true))))
	sb.WriteString(a.graphs.netUp.Push(avgRate(st.net, true)))

	// Capped to the first 3 mounts of DiskOrder (sorted by mount path) so
	// the box never outgrows its fixed height on a host with many mount
	// points.
	const maxDisks = 3
	for i, mount := range st.mem.DiskOrder {
		if i >= maxDisks {
			break
		}
		d := st.mem.Disks[mount]
		sb.WriteString(fmt.Sprintf("\r\n%-6s %3.0f%% of %s", truncateLabel(mount, 6), d.UsedPercent, formatBytes(d.TotalBytes)))
	}
	return sb.String()
}

// truncateLabel shortens a mount path to fit a fixed-width column,
// keeping the trailing segment (the most identifying part of a path).
func truncateLabel(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[len(s)-width:]
}

func avgRate(net sampler.NetInfo, upload bool) float64 {
	var total float64
	for _, iface := range net.Interfaces {
		if upload {
			total += iface.UploadRate
		} else {
			total += iface.DownloadRate
		}
	}
	return total
}

// renderProcessRows draws up to height process rows starting at st.scroll,
// highlighting the selected row per spec.md §4.2's selection/scroll model.
func (a *App) renderProcessRows(st *dashboardState, width, height int) string {
	var sb strings.Builder
	start := st.scroll
	if start > len(st.display) {
		start = len(st.display)
	}
	end := start + height
	if end > len(st.display) {
		end = len(st.display)
	}

	processColor := a.palette.Escape("proc_misc", false)
	selBG := theme.EscapeSeq(a.palette.Colors["selected_bg"], false, a.palette.Truecolor)
	selFG := theme.EscapeSeq(a.palette.Colors["selected_fg"], true, a.palette.Truecolor)

	for i := start; i < end; i++ {
		rec := st.display[i]
		line := fmt.Sprintf("%-7d %s%-20s %6.1f%% %8s %-10s",
			rec.PID, rec.TreePrefix, truncate(rec.Name, 20-len(rec.TreePrefix)),
			rec.CPUPercent, formatBytes(rec.RSSBytes), rec.User)
		if i == st.selected {
			sb.WriteString(selBG + selFG + line + "\x1b[0m\r\n")
		} else {
			sb.WriteString(processColor + line + "\x1b[0m\r\n")
		}
	}
	return sb.String()
}

func truncate(s string, n int) string {
	if n < 1 {
		n = 1
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// renderStatusLine, like the help overlay, uses lipgloss-styled chrome
// instead of spec.md's raw box/meter/graph output, per the teacher's
// styles.go idiom: the status text itself isn't a spec-exact algorithm,
// just a hint line.
func (a *App) renderStatusLine(st *dashboardState, cols, rows int) string {
	sortName := sortKeyLabel(st.sortKey)
	status := fmt.Sprintf("[q]uit [t]ree:%v [r]everse:%v [c]ore sort:%s [?]help", st.treeMode, st.reverse, sortName)
	if st.filtering || st.filter != "" {
		status += " filter:/" + st.filter
	}
	styled := newChrome(a.palette).status.Render(status)
	return "\x1b[" + strconv.Itoa(rows) + ";1f" + styled
}

func sortKeyLabel(k sampler.SortKey) string {
	switch k {
	case sampler.SortPID:
		return "pid"
	case sampler.SortName:
		return "name"
	case sampler.SortCommand:
		return "command"
	case sampler.SortThreads:
		return "threads"
	case sampler.SortUser:
		return "user"
	case sampler.SortMemory:
		return "memory"
	case sampler.SortCPUDirect:
		return "cpu"
	default:
		return "cpu_lazy"
	}
}
