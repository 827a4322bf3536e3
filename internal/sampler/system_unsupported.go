//go:build !linux

package sampler

// SystemSampler reads system-wide CPU, memory, network, and disk state.
// The Linux implementation (system_linux.go) is the only backend currently
// wired; other platforms get a stub that always reports the zero value
// together with errUnsupportedPlatform, matching the frequency sampler's "return zero, caller keeps last
// displayed value" failure semantics (spec.md §4.3/§7).
type SystemSampler struct{}

func NewSystemSampler() *SystemSampler { return &SystemSampler{} }

func (s *SystemSampler) SampleCPU() (CPUInfo, error) { return CPUInfo{}, errUnsupportedPlatform }

func (s *SystemSampler) SampleMemory() (MemInfo, error) { return MemInfo{}, errUnsupportedPlatform }

func (s *SystemSampler) SampleNetwork(intervalSeconds float64) (NetInfo, error) {
	return NetInfo{}, errUnsupportedPlatform
}
