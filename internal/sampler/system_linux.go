//go:build linux

package sampler

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"
	"syscall"
)

type jiffies struct {
	idle  uint64
	total uint64
}

// SystemSampler reads system-wide CPU, memory, network, and disk state from
// procfs. Grounded on github.com/rileyhilliard/rr's
// internal/monitor/parsers/linux.go (aggregate + per-core /proc/stat
// parsing, /proc/net/dev field layout), extended with /proc/mounts +
// statfs(2) for disk usage per SPEC_FULL.md §3.
type SystemSampler struct {
	prevAgg   jiffies
	prevCores []jiffies
	prevNet   map[string]netCounters
}

type netCounters struct {
	rx, tx uint64
}

// NewSystemSampler constructs a SystemSampler with no prior sample.
func NewSystemSampler() *SystemSampler {
	return &SystemSampler{prevNet: make(map[string]netCounters)}
}

// SampleCPU reads /proc/stat and returns aggregate + per-core utilization
// percentages computed as a delta against the previous sample (0 on the
// first call, since there is nothing to diff against).
func (s *SystemSampler) SampleCPU() (CPUInfo, error) {
	f, err := os.Open("/proc/stat")
	if err != nil {
		return CPUInfo{}, err
	}
	defer f.Close()

	var agg jiffies
	var cores []jiffies

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "cpu") {
			continue
		}
		j, ok := parseCPULine(fields)
		if !ok {
			continue
		}
		if fields[0] == "cpu" {
			agg = j
		} else {
			cores = append(cores, j)
		}
	}
	if err := sc.Err(); err != nil {
		return CPUInfo{}, err
	}

	info := CPUInfo{}
	info.AggregatePct = percentDelta(s.prevAgg, agg)
	info.CorePercent = make([]float64, len(cores))
	for i, c := range cores {
		var prev jiffies
		if i < len(s.prevCores) {
			prev = s.prevCores[i]
		}
		info.CorePercent[i] = percentDelta(prev, c)
	}

	s.prevAgg = agg
	s.prevCores = cores
	return info, nil
}

func parseCPULine(fields []string) (jiffies, bool) {
	if len(fields) < 8 {
		return jiffies{}, false
	}
	vals := make([]uint64, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return jiffies{}, false
		}
		vals = append(vals, v)
	}
	user, nice, system, idle, iowait := vals[0], vals[1], vals[2], vals[3], vals[4]
	irq, softirq, steal := uint64(0), uint64(0), uint64(0)
	if len(vals) > 5 {
		irq = vals[5]
	}
	if len(vals) > 6 {
		softirq = vals[6]
	}
	if len(vals) > 7 {
		steal = vals[7]
	}
	total := user + nice + system + idle + iowait + irq + softirq + steal
	return jiffies{idle: idle + iowait, total: total}, true
}

func percentDelta(prev, cur jiffies) float64 {
	if prev.total == 0 || cur.total <= prev.total {
		return 0
	}
	totalDelta := cur.total - prev.total
	idleDelta := cur.idle - prev.idle
	if cur.idle < prev.idle {
		idleDelta = 0
	}
	if totalDelta == 0 {
		return 0
	}
	return 100 * float64(totalDelta-idleDelta) / float64(totalDelta)
}

// SampleMemory reads /proc/meminfo for the named buckets and /proc/mounts +
// statfs(2) for per-mount disk usage.
func (s *SystemSampler) SampleMemory() (MemInfo, error) {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return MemInfo{}, err
	}
	fields := map[string]uint64{}
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := sc.Text()
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			continue
		}
		name := line[:colon]
		rest := strings.Fields(line[colon+1:])
		if len(rest) == 0 {
			continue
		}
		v, err := strconv.ParseUint(rest[0], 10, 64)
		if err != nil {
			continue
		}
		fields[name] = v * 1024 // all meminfo values are in kB
	}

	mem := MemInfo{
		Total:     fields["MemTotal"],
		Free:      fields["MemFree"],
		Available: fields["MemAvailable"],
		Cached:    fields["Cached"],
		SwapTotal: fields["SwapTotal"],
		SwapFree:  fields["SwapFree"],
	}
	mem.SwapUsed = mem.SwapTotal - mem.SwapFree
	buffers := fields["Buffers"]
	mem.Used = mem.Total - mem.Free - buffers - mem.Cached

	disks, order := sampleDisks()
	mem.Disks = disks
	mem.DiskOrder = order
	return mem, nil
}

// sampleDisks reads /proc/mounts and statfs(2)'s each real filesystem
// mount point, skipping pseudo/virtual filesystem types.
func sampleDisks() (map[string]DiskInfo, []string) {
	out := make(map[string]DiskInfo)
	var order []string

	f, err := os.Open("/proc/mounts")
	if err != nil {
		return out, order
	}
	defer f.Close()

	skip := map[string]bool{
		"proc": true, "sysfs": true, "devtmpfs": true, "devpts": true,
		"tmpfs": true, "cgroup": true, "cgroup2": true, "overlay": true,
		"squashfs": true, "debugfs": true, "tracefs": true, "mqueue": true,
		"securityfs": true, "pstore": true, "bpf": true, "autofs": true,
		"configfs": true, "fusectl": true,
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		device, mountPoint, fsType := fields[0], fields[1], fields[2]
		if skip[fsType] || !strings.HasPrefix(device, "/dev/") {
			continue
		}

		var stat syscall.Statfs_t
		if err := syscall.Statfs(mountPoint, &stat); err != nil {
			continue
		}
		total := stat.Blocks * uint64(stat.Bsize)
		free := stat.Bfree * uint64(stat.Bsize)
		used := total - free
		d := DiskInfo{
			MountPoint: mountPoint,
			Device:     device,
			TotalBytes: total,
			UsedBytes:  used,
			FreeBytes:  free,
		}
		if total > 0 {
			d.UsedPercent = 100 * float64(used) / float64(total)
			d.FreePercent = 100 * float64(free) / float64(total)
		}
		out[mountPoint] = d
		order = append(order, mountPoint)
	}
	sort.Strings(order)
	return out, order
}

// SampleNetwork reads /proc/net/dev and computes per-interface byte rates
// as a delta against the previous sample divided by the elapsed seconds.
func (s *SystemSampler) SampleNetwork(intervalSeconds float64) (NetInfo, error) {
	if intervalSeconds <= 0 {
		intervalSeconds = 1
	}
	f, err := os.Open("/proc/net/dev")
	if err != nil {
		return NetInfo{}, err
	}
	defer f.Close()

	info := NetInfo{Interfaces: make(map[string]NetInterface)}
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo <= 2 {
			continue // header lines
		}
		line := sc.Text()
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			continue
		}
		name := strings.TrimSpace(line[:colon])
		fields := strings.Fields(line[colon+1:])
		if len(fields) < 10 {
			continue
		}
		rx, _ := strconv.ParseUint(fields[0], 10, 64)
		tx, _ := strconv.ParseUint(fields[8], 10, 64)

		prev, had := s.prevNet[name]
		var rxRate, txRate float64
		if had && rx >= prev.rx && tx >= prev.tx {
			rxRate = float64(rx-prev.rx) / intervalSeconds
			txRate = float64(tx-prev.tx) / intervalSeconds
		}
		info.Interfaces[name] = NetInterface{
			Name:          name,
			DownloadBytes: rx,
			UploadBytes:   tx,
			DownloadRate:  rxRate,
			UploadRate:    txRate,
		}
		s.prevNet[name] = netCounters{rx: rx, tx: tx}
	}
	if err := sc.Err(); err != nil {
		return NetInfo{}, err
	}
	return info, nil
}
