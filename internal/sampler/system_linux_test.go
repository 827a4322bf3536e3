//go:build linux

package sampler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCPULineAggregate(t *testing.T) {
	fields := strings.Fields("cpu  100 0 200 600 50 0 0 0 0 0")
	j, ok := parseCPULine(fields)
	require.True(t, ok)
	assert.Equal(t, uint64(650), j.idle) // idle + iowait
	assert.Equal(t, uint64(950), j.total)
}

func TestPercentDeltaFirstSampleIsZero(t *testing.T) {
	got := percentDelta(jiffies{}, jiffies{idle: 90, total: 100})
	assert.Equal(t, 0.0, got)
}

func TestPercentDeltaComputesUtilization(t *testing.T) {
	prev := jiffies{idle: 700, total: 1000}
	cur := jiffies{idle: 750, total: 1100} // +100 total, +50 idle -> 50% busy
	got := percentDelta(prev, cur)
	assert.InDelta(t, 50.0, got, 0.001)
}

func TestPercentDeltaGuardsAgainstCounterReset(t *testing.T) {
	prev := jiffies{idle: 900, total: 1000}
	cur := jiffies{idle: 10, total: 20} // counters reset (reboot-like)
	got := percentDelta(prev, cur)
	assert.Equal(t, 0.0, got)
}
