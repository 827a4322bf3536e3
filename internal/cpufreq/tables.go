// Package cpufreq implements the Apple Silicon CPU-frequency sampler of
// spec.md §4.3: voltage-state frequency table parsing and residency-
// weighted frequency computation for the efficiency and performance
// clusters. The platform-specific IOReport subscription lifecycle lives in
// sampler_darwin_arm64.go; everything in this file is pure and runs on any
// platform so it can be exercised by tests without the private framework.
//
// Grounded on original_source/src/osx/CpuFreq.{h,c}, redesigned per
// spec.md §4.3 to compute a residency-weighted average frequency per
// cluster instead of the original's "pick the state with highest
// residency" shortcut.
package cpufreq

import (
	"encoding/binary"
	"math"
	"regexp"
	"strconv"
)

// ClusterType distinguishes Apple Silicon's efficiency and performance
// core partitions, per the GLOSSARY.
type ClusterType int

const (
	ClusterEfficiency ClusterType = iota
	ClusterPerformance
	numClusterTypes = 2
)

// hzUnitThreshold is spec.md §4.3's "values < 10 MHz raw" boundary,
// expressed in the same raw units the table's first record uses: rows
// below this are kHz-scaled, at-or-above are Hz-scaled. The spec states
// the boundary as "< 10 MHz" against the raw value, i.e. 10_000_000 when
// the raw unit is Hz.
const hzUnitThreshold = 10_000_000

// ParseFrequencyTable decodes a voltage-states property: an array of
// 8-byte records, the first 4 little-endian bytes of each being a raw
// frequency value. Zero-valued records are retained positionally so
// voltage-state indices continue to line up with IOReport's state
// indices. The unit (kHz vs Hz) is detected from the first non-zero raw
// value and applied uniformly to the whole table.
func ParseFrequencyTable(raw []byte) []int {
	count := len(raw) / 8
	table := make([]int, count)
	if count == 0 {
		return table
	}

	rawValues := make([]uint32, count)
	for i := 0; i < count; i++ {
		rawValues[i] = binary.LittleEndian.Uint32(raw[i*8 : i*8+4])
	}

	kHzScaled := false
	for _, v := range rawValues {
		if v == 0 {
			continue
		}
		kHzScaled = v < hzUnitThreshold
		break
	}

	for i, v := range rawValues {
		if v == 0 {
			table[i] = 0
			continue
		}
		if kHzScaled {
			table[i] = int(math.Round(float64(v) / 1000))
		} else {
			table[i] = int(math.Round(float64(v) / 1_000_000))
		}
	}
	return table
}

// statePattern matches an IOReport CPU-performance-state name of the form
// "V<index>P<index>", e.g. "V8P2" — the substate suffix ("P2") is ignored,
// only the leading voltage-state index selects the frequency table entry.
var statePattern = regexp.MustCompile(`^V(\d+)P\d+$`)

// StateFrequencyIndex extracts the voltage-state table index from an
// IOReport state name, per spec.md §4.3. ok is false for names that don't
// match the "V<int>P<int>" shape.
func StateFrequencyIndex(stateName string) (index int, ok bool) {
	m := statePattern.FindStringSubmatch(stateName)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Residency pairs an IOReport state name with its (already delta'd)
// cumulative residency count for one sampling interval.
type Residency struct {
	StateName string
	Count     uint64
}

// WeightedFrequency implements spec.md §4.3's sampling formula: for each
// residency whose state name matches "V<index>P<index>", accumulate
// residency × frequencies[index] into a weighted sum and residency into a
// total; report round(weighted / total), or 0 when total is 0 (no
// matching residencies, or an all-zero sample).
func WeightedFrequency(residencies []Residency, frequencies []int) int {
	var weighted, total float64
	for _, r := range residencies {
		idx, ok := StateFrequencyIndex(r.StateName)
		if !ok || idx < 0 || idx >= len(frequencies) {
			continue
		}
		weighted += float64(r.Count) * float64(frequencies[idx])
		total += float64(r.Count)
	}
	if total <= 0 {
		return 0
	}
	return int(math.Round(weighted / total))
}
