package app

import (
	"fmt"

	"github.com/osmet/vitals/internal/proctable"
	"github.com/osmet/vitals/internal/sampler"
)

// dashboardState is the shared, mutex-guarded data the tick goroutine
// writes and the render goroutine reads, per spec.md §5's "sampler
// updates state under a short-lived lock" data-flow rule.
type dashboardState struct {
	cpu sampler.CPUInfo
	mem sampler.MemInfo
	net sampler.NetInfo

	processes []*sampler.ProcessRecord
	display   []*sampler.ProcessRecord

	sortKey  sampler.SortKey
	reverse  bool
	treeMode bool
	perCore  bool
	showHelp bool

	filter    string
	filtering bool
	collapsed map[int]bool
	selected  int
	scroll    int

	lastErr string
	ticks   uint64
}

func projectDisplay(s *dashboardState) {
	if s.treeMode {
		s.display = proctable.Project(s.processes, proctable.Options{
			Filter:    s.filter,
			Collapsed: s.collapsed,
		})
		return
	}
	s.display = make([]*sampler.ProcessRecord, 0, len(s.processes))
	for _, r := range s.processes {
		if !r.FilteredOut {
			s.display = append(s.display, r)
		}
	}
}

// clampSelection keeps the selected row inside [0, len(display)-1], per
// spec.md §4.2's scroll/selection bounds.
func clampSelection(s *dashboardState) {
	if len(s.display) == 0 {
		s.selected = 0
		s.scroll = 0
		return
	}
	if s.selected < 0 {
		s.selected = 0
	}
	if s.selected >= len(s.display) {
		s.selected = len(s.display) - 1
	}
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

func formatRate(bytesPerSec float64) string {
	return formatBytes(uint64(bytesPerSec)) + "/s"
}
