//go:build !(darwin && arm64)

package cpufreq

// platformState is the non-Apple-Silicon stub: the private IOReport
// sampling interface spec.md §9 calls out as a feature-flaggable
// dependency simply doesn't exist here, so init always fails closed.
type platformState struct{}

func (p *platformState) init() bool           { return false }
func (p *platformState) sample() (int, int)   { return 0, 0 }
func (p *platformState) cleanup()             {}
