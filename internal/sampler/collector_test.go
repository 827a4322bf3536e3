package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Testable Property #1: monotone CPU percent identity.
func TestInstantaneousCPUPercentIdentity(t *testing.T) {
	cases := []struct {
		ticksNow, ticksPrev uint64
		intervalMS, clkTck  float64
	}{
		{1000, 900, 1000, 100},
		{5000, 5000, 2000, 100},
		{123456, 123000, 250, 250},
	}
	for _, c := range cases {
		got := instantaneousCPUPercent(c.ticksNow, c.ticksPrev, c.intervalMS, c.clkTck)
		want := 100000 * float64(c.ticksNow-c.ticksPrev) / (c.intervalMS * c.clkTck)
		assert.InDelta(t, want, got, 1, "identity must hold within +-1 on integer truncation")
	}
}

func TestInstantaneousCPUPercentClampsDegenerateInterval(t *testing.T) {
	assert.Equal(t, 0.0, instantaneousCPUPercent(100, 50, 0, 100))
}

func TestCumulativeCPUPercentZeroBeforeStart(t *testing.T) {
	got := cumulativeCPUPercent(100, 500, 1.0, 100)
	assert.True(t, math.IsInf(got, 0) == false)
	assert.Equal(t, 0.0, got)
}

func TestCacheEvictsAfterFiveConsecutiveMisses(t *testing.T) {
	c := NewCollector(nil)
	c.cache[42] = &cacheEntry{ticks: 10, misses: 4}

	c.evictLocked(map[int]bool{})
	_, present := c.cache[42]
	assert.False(t, present, "entry should be evicted on its 5th consecutive miss")
}

func TestCacheSurvivesUnderFiveMisses(t *testing.T) {
	c := NewCollector(nil)
	c.cache[42] = &cacheEntry{ticks: 10, misses: 2}

	c.evictLocked(map[int]bool{})
	_, present := c.cache[42]
	assert.True(t, present)
}

func TestCacheHygieneRebuildDropsStaleEntriesWhenOversized(t *testing.T) {
	c := NewCollector(nil)
	for i := 0; i < 150; i++ {
		c.cache[i] = &cacheEntry{}
	}
	seen := map[int]bool{1: true, 2: true}

	c.evictLocked(seen)
	assert.Len(t, c.cache, 2, "cache exceeding live pids + 100 should be rebuilt to just the seen set")
}

func TestApplyFilterMatchesPidNameCommandUser(t *testing.T) {
	records := []*ProcessRecord{
		{PID: 42, Name: "firefox", Command: "/usr/bin/firefox", User: "alice"},
		{PID: 7, Name: "sh", Command: "/bin/sh", User: "bob"},
	}
	applyFilter(records, "fire")
	assert.False(t, records[0].FilteredOut)
	assert.True(t, records[1].FilteredOut)
}

func TestApplyFilterEmptyKeepsAll(t *testing.T) {
	records := []*ProcessRecord{{PID: 1}, {PID: 2}}
	applyFilter(records, "")
	assert.False(t, records[0].FilteredOut)
	assert.False(t, records[1].FilteredOut)
}
