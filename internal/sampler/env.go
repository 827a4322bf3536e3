package sampler

import (
	"os"
	"strconv"
)

// clockTicks returns jiffies/second, honoring a CLK_TCK override for tests
// (cgo-free sysconf substitute), defaulting to 100 on failure per spec.md
// §7's documented fallback. Grounded on ja7ad/consumption's proc.ClockTicks.
func clockTicks() int {
	if v, err := strconv.Atoi(os.Getenv("CLK_TCK")); err == nil && v > 0 {
		return v
	}
	return 100
}

// pageSize returns the memory page size in bytes, honoring a PAGE_SIZE
// override, defaulting to 4096 per spec.md §7. Grounded on
// ja7ad/consumption's proc.PageSize.
func pageSize() int {
	if v, err := strconv.Atoi(os.Getenv("PAGE_SIZE")); err == nil && v > 0 {
		return v
	}
	if ps := os.Getpagesize(); ps > 0 {
		return ps
	}
	return 4096
}
