// Package sampler implements the process-table engine and system-wide
// collectors: per-tick enumeration of processes with CPU/RSS/user
// resolution, sorting including the "lazy-CPU" promotion pass, and
// system-wide CPU/memory/network/disk readers.
//
// Grounded on github.com/rileyhilliard/rr's internal/monitor/parsers/linux.go
// (system-wide /proc parsing shape) and ja7ad/consumption's pkg/system/proc
// (per-pid /proc/<pid>/stat field layout, ClockTicks/PageSize env overrides).
package sampler

// ProcessRecord is one process' identity, cached static fields, and the
// dynamic fields refreshed every tick. Mirrors spec.md §3's "Process record".
type ProcessRecord struct {
	PID  int
	PPID int

	Name    string // cached executable short name
	Command string // cached full command line
	User    string // cached resolved user name

	Threads       int
	RSSBytes      uint64
	CPUPercent    float64 // instantaneous, since previous sample
	CPUCumulative float64 // cumulative, since process start
	CPUTicks      uint64  // raw accumulated user+system ticks
	StartTicks    uint64  // process-start tick (since boot)

	// UI fields, populated by the tree projection or left zero in flat mode.
	TreePrefix  string
	Collapsed   bool
	FilteredOut bool
	TreeIndex   int
}

// SortKey selects the field processes are ordered by.
type SortKey int

const (
	SortPID SortKey = iota
	SortName
	SortCommand
	SortThreads
	SortUser
	SortMemory
	SortCPUDirect
	SortCPULazy
)

// ParseSortKey maps the config/CLI string form to a SortKey, defaulting to
// SortCPULazy for unrecognized input.
func ParseSortKey(s string) SortKey {
	switch s {
	case "pid":
		return SortPID
	case "name":
		return SortName
	case "command":
		return SortCommand
	case "threads":
		return SortThreads
	case "user":
		return SortUser
	case "memory":
		return SortMemory
	case "cpu":
		return SortCPUDirect
	case "cpu_lazy":
		return SortCPULazy
	default:
		return SortCPULazy
	}
}

// CollectOptions are the per-call inputs to Collector.Collect, matching
// spec.md §4.1's listed inputs.
type CollectOptions struct {
	Sort          SortKey
	Reverse       bool
	Filter        string
	IntervalMS    float64 // clamped to >= 1 internally
	UptimeSeconds float64
	// TreeMode defers filtering to the tree projection step (proctable),
	// per spec.md §4.1: "Filtering in tree mode is deferred to the
	// projection step."
	TreeMode bool
}

// CPUInfo is one tick's system-wide CPU sample: aggregate and per-core
// utilization percentages plus the current frequency.
type CPUInfo struct {
	Name           string
	FrequencyMHz   int
	FrequencyLabel string // human string; "" when unavailable
	CorePercent    []float64
	AggregatePct   float64
}

// MemInfo holds the named memory buckets and per-mount disk usage, in bytes.
type MemInfo struct {
	Used      uint64
	Available uint64
	Cached    uint64
	Free      uint64
	Total     uint64
	SwapUsed  uint64
	SwapFree  uint64
	SwapTotal uint64

	Disks      map[string]DiskInfo
	DiskOrder  []string
}

// DiskInfo is one mounted filesystem's usage, sourced from /proc/mounts +
// statfs(2). Added by SPEC_FULL.md §3.
type DiskInfo struct {
	MountPoint  string
	Device      string
	Label       string
	TotalBytes  uint64
	UsedBytes   uint64
	FreeBytes   uint64
	UsedPercent float64
	FreePercent float64
}

// NetInterface is one network interface's absolute counters.
type NetInterface struct {
	Name         string
	UploadBytes  uint64
	DownloadBytes uint64
	UploadRate   float64 // bytes/sec since previous sample
	DownloadRate float64
}

// NetInfo is the full set of interfaces observed this tick.
type NetInfo struct {
	Interfaces map[string]NetInterface
}

// Snapshot groups one tick's process vector (from Collector.Collect) with
// the system-wide CPU, memory and network samples (from SystemSampler).
type Snapshot struct {
	Processes []*ProcessRecord
	CPU       CPUInfo
	Mem       MemInfo
	Net       NetInfo
}
