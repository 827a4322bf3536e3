//go:build linux

package sampler

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// listPIDs enumerates live pids from /proc. A kernel enumeration failure is
// reported to the caller, which logs a warning and keeps the previous vector.
func listPIDs() ([]int, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, err
	}
	pids := make([]int, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if pid, err := strconv.Atoi(e.Name()); err == nil {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}

// procStat is the subset of /proc/<pid>/stat fields the collector needs:
// ppid, utime+stime ticks, and process-start ticks (field 22, 0-indexed 19
// in the post-comm field slice).
type procStat struct {
	ppid       int
	ticks      uint64
	startTicks uint64
	threads    int
}

// readProcStat parses /proc/<pid>/stat, skipping past the parenthesized
// comm field (which may itself contain spaces/parens) the way
// ja7ad/consumption's ReadProcStat does.
func readProcStat(pid int) (procStat, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return procStat{}, err
	}
	line := string(data)
	i := strings.LastIndex(line, ") ")
	if i < 0 {
		return procStat{}, fmt.Errorf("malformed stat line for pid %d", pid)
	}
	fields := strings.Fields(line[i+2:])
	get := func(idx int) uint64 {
		if idx < 0 || idx >= len(fields) {
			return 0
		}
		v, _ := strconv.ParseUint(fields[idx], 10, 64)
		return v
	}
	geti := func(idx int) int {
		if idx < 0 || idx >= len(fields) {
			return 0
		}
		v, _ := strconv.Atoi(fields[idx])
		return v
	}
	// Fields here are 0-indexed starting at state (field 3 overall).
	// ppid=field4(idx1) threads=field20(idx17) utime=field14(idx11)
	// stime=field15(idx12) starttime=field22(idx19).
	return procStat{
		ppid:       geti(1),
		threads:    geti(17),
		ticks:      get(11) + get(12),
		startTicks: get(19),
	}, nil
}

// readProcComm reads the short executable name from /proc/<pid>/comm.
func readProcComm(pid int) (string, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// readProcCmdline reads the full command line from /proc/<pid>/cmdline,
// where arguments are NUL-separated.
func readProcCmdline(pid int) (string, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
	if err != nil {
		return "", err
	}
	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	return strings.Join(parts, " "), nil
}

// readProcUID reads the real uid from /proc/<pid>/status' "Uid:" line.
func readProcUID(pid int) (string, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/status", pid))
	if err != nil {
		return "", err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "Uid:") {
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				return fields[1], nil
			}
		}
	}
	return "", fmt.Errorf("no Uid line for pid %d", pid)
}

// readProcRSS returns resident set size in bytes, preferring smaps_rollup
// and falling back to statm, per ja7ad/consumption's ReadProcRSS.
func readProcRSS(pid int) (uint64, error) {
	if f, err := os.Open(fmt.Sprintf("/proc/%d/smaps_rollup", pid)); err == nil {
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if strings.HasPrefix(sc.Text(), "Rss:") {
				fields := strings.Fields(sc.Text())
				if len(fields) >= 2 {
					kb, _ := strconv.ParseUint(fields[1], 10, 64)
					return kb * 1024, nil
				}
			}
		}
	}
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/statm", pid))
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0, fmt.Errorf("short statm for pid %d", pid)
	}
	pages, _ := strconv.ParseUint(fields[1], 10, 64)
	return pages * uint64(pageSize()), nil
}

// uptimeSeconds reads /proc/uptime's first field.
func uptimeSeconds() (float64, error) {
	data, err := os.ReadFile("/proc/uptime")
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) < 1 {
		return 0, fmt.Errorf("empty /proc/uptime")
	}
	return strconv.ParseFloat(fields[0], 64)
}
