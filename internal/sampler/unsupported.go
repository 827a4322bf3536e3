//go:build !linux

package sampler

import "errors"

// On non-Linux platforms the process-table engine has no collaborator to
// read from (spec.md's OOS list names "disk filesystem enumeration, network
// interface enumeration" as external collaborators generally; here the
// per-process /proc reader itself is the missing platform backend). Collect
// degrades to returning the previous result, matching the "kernel
// enumeration failure" failure semantics of §4.1.
var errUnsupportedPlatform = errors.New("process sampling is only implemented for linux")

type procStat struct {
	ppid       int
	ticks      uint64
	startTicks uint64
	threads    int
}

func listPIDs() ([]int, error)                { return nil, errUnsupportedPlatform }
func readProcStat(pid int) (procStat, error)  { return procStat{}, errUnsupportedPlatform }
func readProcComm(pid int) (string, error)    { return "", errUnsupportedPlatform }
func readProcCmdline(pid int) (string, error) { return "", errUnsupportedPlatform }
func readProcUID(pid int) (string, error)     { return "", errUnsupportedPlatform }
func readProcRSS(pid int) (uint64, error)     { return 0, errUnsupportedPlatform }
func uptimeSeconds() (float64, error)         { return 0, errUnsupportedPlatform }
