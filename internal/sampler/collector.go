package sampler

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/osmet/vitals/internal/logger"
)

const (
	// cacheMissEviction is how many consecutive scans a pid can be absent
	// from before its cache entry is evicted.
	cacheMissEviction = 5
	// cacheSlackPIDs is how far the cache size may exceed the live-pid
	// count before a hygiene rebuild is forced.
	cacheSlackPIDs = 100
	// hygieneEveryN triggers an unconditional cache rebuild every N
	// successful collections.
	hygieneEveryN = 5
)

type cacheEntry struct {
	name       string
	command    string
	user       string
	ticks      uint64
	startTicks uint64
	misses     int
}

// Collector is the process-table engine of spec.md §4.1: it owns the
// per-pid cache and produces one ordered, filtered process vector per tick.
type Collector struct {
	mu          sync.Mutex
	cache       map[int]*cacheEntry
	users       *userTable
	collections int
	lastSeen    []*ProcessRecord
	log         logger.Logger
	stop        atomic.Bool
}

// NewCollector constructs a Collector ready to Collect.
func NewCollector(log logger.Logger) *Collector {
	if log == nil {
		log = logger.Noop()
	}
	return &Collector{
		cache: make(map[int]*cacheEntry),
		users: newUserTable(),
		log:   log,
	}
}

// RequestStop sets the cooperative stop flag spec.md §5 requires; Collect
// checks it between pid iterations and exits early with an empty result.
func (c *Collector) RequestStop() { c.stop.Store(true) }

// Collect produces, once per tick, an up-to-date process vector per
// spec.md §4.1.
func (c *Collector) Collect(opts CollectOptions) []*ProcessRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	intervalMS := opts.IntervalMS
	if intervalMS < 1 {
		intervalMS = 1
	}
	clk := float64(clockTicks())
	uptime := opts.UptimeSeconds

	pids, err := listPIDs()
	if err != nil {
		c.log.Warn("failed to enumerate processes: %v", err)
		return c.lastSeen
	}

	seen := make(map[int]bool, len(pids))
	records := make([]*ProcessRecord, 0, len(pids))

	for _, pid := range pids {
		if c.stop.Load() {
			return nil
		}

		stat, err := readProcStat(pid)
		if err != nil {
			continue // transient: process vanished mid-scan
		}
		seen[pid] = true

		entry, existed := c.cache[pid]
		pidReused := existed && stat.ticks < entry.ticks
		if !existed || pidReused {
			name, _ := readProcComm(pid)
			cmd, _ := readProcCmdline(pid)
			uid, _ := readProcUID(pid)
			user := c.users.Resolve(uid)
			if user == "" {
				user = uid
			}
			entry = &cacheEntry{
				name:       name,
				command:    cmd,
				user:       user,
				ticks:      stat.ticks,
				startTicks: stat.startTicks,
			}
			c.cache[pid] = entry
		}
		entry.misses = 0

		var instant float64
		if existed && !pidReused {
			instant = instantaneousCPUPercent(stat.ticks, entry.ticks, intervalMS, clk)
		}
		entry.ticks = stat.ticks

		cumulative := cumulativeCPUPercent(stat.ticks, entry.startTicks, uptime, clk)

		rss, _ := readProcRSS(pid) // transient I/O errors swallowed

		rec := &ProcessRecord{
			PID:           pid,
			PPID:          stat.ppid,
			Name:          entry.name,
			Command:       entry.command,
			User:          entry.user,
			Threads:       stat.threads,
			RSSBytes:      rss,
			CPUPercent:    instant,
			CPUCumulative: cumulative,
			CPUTicks:      stat.ticks,
			StartTicks:    entry.startTicks,
		}
		records = append(records, rec)
	}

	c.evictLocked(seen)
	c.collections++

	if !opts.TreeMode {
		applyFilter(records, opts.Filter)
	}

	sortRecords(records, opts.Sort, opts.Reverse)

	c.lastSeen = records
	return records
}

// evictLocked implements the two eviction rules of spec.md §3's cache
// lifecycle plus the periodic hygiene rebuild of §4.1.
func (c *Collector) evictLocked(seen map[int]bool) {
	for pid, entry := range c.cache {
		if !seen[pid] {
			entry.misses++
			if entry.misses >= cacheMissEviction {
				delete(c.cache, pid)
			}
		}
	}

	rebuild := c.collections > 0 && c.collections%hygieneEveryN == 0
	rebuild = rebuild || len(c.cache) > len(seen)+cacheSlackPIDs
	if rebuild {
		for pid := range c.cache {
			if !seen[pid] {
				delete(c.cache, pid)
			}
		}
	}
}

// applyFilter keeps a record iff the filter is empty or any of
// {decimal pid, name, command, user} contains it as a substring.
func applyFilter(records []*ProcessRecord, filter string) {
	if filter == "" {
		return
	}
	for _, r := range records {
		matches := strings.Contains(strconv.Itoa(r.PID), filter) ||
			strings.Contains(r.Name, filter) ||
			strings.Contains(r.Command, filter) ||
			strings.Contains(r.User, filter)
		r.FilteredOut = !matches
	}
}
