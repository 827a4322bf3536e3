package sampler

// instantaneousCPUPercent implements spec.md §4.1 step 4 and the Testable
// Property #1 identity: 100_000 × (ticks_now − ticks_prev) / (interval_ms ×
// clk_tck). Callers guarantee ticksNow >= ticksPrev (pid reuse is handled
// upstream by resetting the cache entry instead of calling this).
func instantaneousCPUPercent(ticksNow, ticksPrev uint64, intervalMS, clkTck float64) float64 {
	if intervalMS <= 0 || clkTck <= 0 {
		return 0
	}
	return 100000 * float64(ticksNow-ticksPrev) / (intervalMS * clkTck)
}

// cumulativeCPUPercent implements spec.md §4.1 step 4's second formula:
// 100 × (ticks_now / clk_tck) / (uptime − start_ticks / clk_tck).
func cumulativeCPUPercent(ticksNow, startTicks uint64, uptimeSeconds, clkTck float64) float64 {
	if clkTck <= 0 {
		return 0
	}
	elapsed := uptimeSeconds - float64(startTicks)/clkTck
	if elapsed <= 0 {
		return 0
	}
	return 100 * (float64(ticksNow) / clkTck) / elapsed
}
