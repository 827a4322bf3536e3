package cpufreq

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(raw uint32) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b[:4], raw)
	return b
}

func concat(records ...[]byte) []byte {
	var out []byte
	for _, r := range records {
		out = append(out, r...)
	}
	return out
}

// Testable Property #6: a table whose first raw value is < 10_000_000 is
// kHz-scaled; >= is Hz-scaled. Resulting MHz values land in [500, 9000]
// when non-zero.
func TestParseFrequencyTableDetectsKHzScale(t *testing.T) {
	raw := concat(record(0), record(600_000), record(2_064_000))
	table := ParseFrequencyTable(raw)
	require.Len(t, table, 3)
	assert.Equal(t, 0, table[0])
	assert.Equal(t, 600, table[1])
	assert.Equal(t, 2064, table[2])
	for _, mhz := range table {
		if mhz != 0 {
			assert.GreaterOrEqual(t, mhz, 500)
			assert.LessOrEqual(t, mhz, 9000)
		}
	}
}

func TestParseFrequencyTableDetectsHzScale(t *testing.T) {
	raw := concat(record(600_000_000), record(2_064_000_000))
	table := ParseFrequencyTable(raw)
	require.Len(t, table, 2)
	assert.Equal(t, 600, table[0])
	assert.Equal(t, 2064, table[1])
}

func TestParseFrequencyTableKeepsZeroEntriesPositional(t *testing.T) {
	raw := concat(record(600_000), record(0), record(900_000))
	table := ParseFrequencyTable(raw)
	require.Len(t, table, 3)
	assert.Equal(t, 0, table[1], "zero entries must stay in place so voltage-state indices still line up")
}

func TestStateFrequencyIndexParsesVPPattern(t *testing.T) {
	idx, ok := StateFrequencyIndex("V8P2")
	require.True(t, ok)
	assert.Equal(t, 8, idx)
}

func TestStateFrequencyIndexRejectsUnrelatedName(t *testing.T) {
	_, ok := StateFrequencyIndex("IDLE")
	assert.False(t, ok)
}

// Reproduces spec.md §8's concrete scenario: state "V8P2" with frequency
// table [..., f[8]=2064, ...] and residency 1000 contributes 1000*f[8] to
// the weighted sum.
func TestWeightedFrequencyMatchesConcreteScenario(t *testing.T) {
	freqs := []int{600, 912, 1284, 1500, 1700, 1800, 1900, 2000, 2064}
	residencies := []Residency{{StateName: "V8P2", Count: 1000}}
	got := WeightedFrequency(residencies, freqs)
	assert.Equal(t, 2064, got)
}

func TestWeightedFrequencyAveragesMultipleStates(t *testing.T) {
	freqs := []int{600, 1200}
	residencies := []Residency{
		{StateName: "V0P1", Count: 300},
		{StateName: "V1P1", Count: 100},
	}
	got := WeightedFrequency(residencies, freqs)
	want := (300*600 + 100*1200) / 400
	assert.Equal(t, want, got)
}

func TestWeightedFrequencyZeroWhenNoResidency(t *testing.T) {
	assert.Equal(t, 0, WeightedFrequency(nil, []int{600, 1200}))
}

func TestWeightedFrequencyIgnoresOutOfRangeIndex(t *testing.T) {
	freqs := []int{600}
	residencies := []Residency{{StateName: "V5P0", Count: 500}}
	assert.Equal(t, 0, WeightedFrequency(residencies, freqs))
}
