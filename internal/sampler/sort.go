package sampler

import "sort"

// sortRecords orders records ascending by key (a stable std::less-style
// comparison per spec.md §4.1), descending when reverse is set, with a
// pid-ascending tie-break. "cpu lazy" ignores reverse: it is always the
// descending cumulative-CPU order ("non-reversed" meaning highest-CPU
// first, the conventional top-like view), then promoted.
func sortRecords(records []*ProcessRecord, key SortKey, reverse bool) {
	if key == SortCPULazy {
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].CPUCumulative != records[j].CPUCumulative {
				return records[i].CPUCumulative > records[j].CPUCumulative
			}
			return records[i].PID < records[j].PID
		})
		promote(records)
		return
	}

	less := comparator(key)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if equalByKey(a, b, key) {
			return a.PID < b.PID
		}
		if reverse {
			return less(b, a)
		}
		return less(a, b)
	})
}

func equalByKey(a, b *ProcessRecord, key SortKey) bool {
	switch key {
	case SortPID:
		return a.PID == b.PID
	case SortName:
		return a.Name == b.Name
	case SortCommand:
		return a.Command == b.Command
	case SortThreads:
		return a.Threads == b.Threads
	case SortUser:
		return a.User == b.User
	case SortMemory:
		return a.RSSBytes == b.RSSBytes
	case SortCPUDirect:
		return a.CPUPercent == b.CPUPercent
	default:
		return a.PID == b.PID
	}
}

func comparator(key SortKey) func(a, b *ProcessRecord) bool {
	switch key {
	case SortPID:
		return func(a, b *ProcessRecord) bool { return a.PID < b.PID }
	case SortName:
		return func(a, b *ProcessRecord) bool { return a.Name < b.Name }
	case SortCommand:
		return func(a, b *ProcessRecord) bool { return a.Command < b.Command }
	case SortThreads:
		return func(a, b *ProcessRecord) bool { return a.Threads < b.Threads }
	case SortUser:
		return func(a, b *ProcessRecord) bool { return a.User < b.User }
	case SortMemory:
		return func(a, b *ProcessRecord) bool { return a.RSSBytes < b.RSSBytes }
	case SortCPUDirect:
		return func(a, b *ProcessRecord) bool { return a.CPUPercent < b.CPUPercent }
	default:
		return func(a, b *ProcessRecord) bool { return a.PID < b.PID }
	}
}

// promote implements spec.md §4.1's lazy-CPU promotion pass: it lifts
// transient CPU spikes (by instantaneous percent) above long-running hot
// processes (ordered by cumulative percent) without disturbing otherwise
// stable top entries.
func promote(records []*ProcessRecord) {
	const (
		initialMax    = 10.0
		initialTarget = 30.0
	)
	max := initialMax
	target := initialTarget
	offset := 0

	for i := 0; i < len(records); i++ {
		p := records[i].CPUPercent
		if i <= 5 && p > max {
			max = p
		}
		if i == 6 {
			if max > 30 {
				target = max
			} else {
				target = 10
			}
		}

		if i == offset && p > 30 {
			offset++
			continue
		}
		if p > target {
			rotateInto(records, offset, i)
		}
	}
}

// rotateInto moves records[at] to position dst, shifting [dst,at) right by
// one and preserving their relative order, per the promotion pass's "rotate
// record i into position offset" step.
func rotateInto(records []*ProcessRecord, dst, at int) {
	if dst >= at {
		return
	}
	moved := records[at]
	copy(records[dst+1:at+1], records[dst:at])
	records[dst] = moved
}
