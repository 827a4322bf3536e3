// Package proctable projects a flat, already-sorted process vector into a
// scrollable parent/child display list, per spec.md §4.2.
package proctable

import (
	"strconv"
	"strings"

	"github.com/osmet/vitals/internal/sampler"
)

// Options configures one projection pass.
type Options struct {
	// Filter restricts emitted nodes; empty means "emit everything".
	Filter string
	// Collapsed is the set of pids whose subtrees are hidden. Children of
	// a collapsed node are rolled up into it for this tick only.
	Collapsed map[int]bool
	// MaxDepth limits how deep the tree is drawn; 0 means unlimited.
	MaxDepth int
}

type node struct {
	rec      *sampler.ProcessRecord
	children []*node
}

// Project builds the ordered display list. Nodes whose parent pid is
// missing from the input vector are treated as roots (an orphan rooted at
// itself), per spec.md §9's "defensive when a parent pid is missing" note.
func Project(records []*sampler.ProcessRecord, opts Options) []*sampler.ProcessRecord {
	byPID := make(map[int]*node, len(records))
	for _, r := range records {
		byPID[r.PID] = &node{rec: r}
	}

	var roots []*node
	for _, r := range records {
		n := byPID[r.PID]
		if parent, ok := byPID[r.PPID]; ok && r.PPID != r.PID {
			parent.children = append(parent.children, n)
		} else {
			roots = append(roots, n)
		}
	}

	filter := strings.TrimSpace(opts.Filter)
	selfMatch := make(map[*node]bool, len(records))
	hasMatch := make(map[*node]bool, len(records))
	if filter != "" {
		for _, n := range byPID {
			selfMatch[n] = matches(n.rec, filter)
		}
		var compute func(*node) bool
		compute = func(n *node) bool {
			m := selfMatch[n]
			for _, c := range n.children {
				if compute(c) {
					m = true
				}
			}
			hasMatch[n] = m
			return m
		}
		for _, n := range roots {
			compute(n)
		}
	}

	var out []*sampler.ProcessRecord

	var walk func(n *node, selfPrefix, continuation string, depth int, forced bool)
	walk = func(n *node, selfPrefix, continuation string, depth int, forced bool) {
		emitted := forced || filter == "" || hasMatch[n]
		if !emitted {
			return
		}

		collapsed := opts.Collapsed != nil && opts.Collapsed[n.rec.PID]
		n.rec.TreePrefix = selfPrefix
		n.rec.Collapsed = collapsed
		n.rec.FilteredOut = false
		n.rec.TreeIndex = len(out)
		out = append(out, n.rec)

		if collapsed {
			rollUp(n)
			return
		}
		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			return
		}

		// Once a node itself matches the filter, all its descendants are
		// emitted unconditionally, per spec.md §4.2.
		childForced := forced || (filter != "" && selfMatch[n])

		for i, c := range n.children {
			last := i == len(n.children)-1
			childCollapsed := opts.Collapsed != nil && opts.Collapsed[c.rec.PID]
			connector := connectorGlyph(c, childCollapsed, last)
			childSelf := continuation + connector
			childContinuation := continuation + "   "
			if !last {
				childContinuation = continuation + " │ "
			}
			walk(c, childSelf, childContinuation, depth+1, childForced)
		}
	}

	for _, r := range roots {
		walk(r, "", "", 0, false)
	}
	return out
}

// connectorGlyph returns the branch glyph drawn immediately before a
// child's own line: "[+]─" collapsed, "[−]─" expanded-with-children,
// "├─ " otherwise, the last child at a given depth switching to "└─ ".
func connectorGlyph(c *node, collapsed, last bool) string {
	switch {
	case collapsed:
		return "[+]─"
	case len(c.children) > 0:
		return "[−]─"
	case last:
		return " └─ "
	default:
		return " ├─ "
	}
}

// rollUp sums a collapsed node's hidden descendants' cpu/mem/threads into
// its own display record for this tick only; the underlying per-pid cache
// is untouched.
func rollUp(n *node) {
	var cpu, cpuCum float64
	var mem uint64
	var threads int
	var walk func(*node)
	walk = func(c *node) {
		cpu += c.rec.CPUPercent
		cpuCum += c.rec.CPUCumulative
		mem += c.rec.RSSBytes
		threads += c.rec.Threads
		for _, gc := range c.children {
			walk(gc)
		}
	}
	for _, c := range n.children {
		walk(c)
	}
	n.rec.CPUPercent += cpu
	n.rec.CPUCumulative += cpuCum
	n.rec.RSSBytes += mem
	n.rec.Threads += threads
}

func matches(r *sampler.ProcessRecord, filter string) bool {
	return strings.Contains(strconv.Itoa(r.PID), filter) ||
		strings.Contains(r.Name, filter) ||
		strings.Contains(r.Command, filter) ||
		strings.Contains(r.User, filter)
}
