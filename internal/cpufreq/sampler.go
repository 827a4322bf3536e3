package cpufreq

import "sync"

// Sampler is the module-owned frequency-sampler state of spec.md §3: two
// voltage-state frequency tables (one per cluster type), the previous raw
// sample, the subscription handle, and the availability flag, all guarded
// by a single mutex. The zero value is ready to use.
type Sampler struct {
	mu          sync.Mutex
	initialized bool
	available   bool
	platform    platformState
}

// Init is idempotent: the first call attempts to load the frequency
// tables and open the IOReport subscription; later calls return the
// cached availability flag without retrying. Grounded on CpuFreq_init's
// single-shot-with-cleanup-on-failure behavior.
func (s *Sampler) Init() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return s.available
	}
	s.initialized = true
	s.available = s.platform.init()
	return s.available
}

// Frequencies returns the current (efficiency, performance) cluster
// frequencies in MHz, per spec.md §4.3. Unavailable platforms, or any
// sampling failure, return (0, 0) — the caller treats 0 as "unknown, keep
// last displayed value."
func (s *Sampler) Frequencies() (eMHz, pMHz int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.available {
		return 0, 0
	}
	return s.platform.sample()
}

// Close releases the subscription and any platform resources. Safe to
// call on an unavailable or never-initialized sampler.
func (s *Sampler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.platform.cleanup()
	s.available = false
}
