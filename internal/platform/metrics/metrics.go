package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests    uint64
	errorRequests    uint64
	rateLimited      uint64
	totalDurationMs  uint64
	upstreamCalls    uint64
	upstreamFailures uint64
	upstreamMs       uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordUpstream counts one call to the records API.
func (c *Collector) RecordUpstream(failed bool, duration time.Duration) {
	atomic.AddUint64(&c.upstreamCalls, 1)
	if failed {
		atomic.AddUint64(&c.upstreamFailures, 1)
	}
	atomic.AddUint64(&c.upstreamMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	upstream := atomic.LoadUint64(&c.upstreamCalls)
	upstreamFailed := atomic.LoadUint64(&c.upstreamFailures)
	upstreamMs := atomic.LoadUint64(&c.upstreamMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	upstreamAvg := float64(0)
	if upstream > 0 {
		upstreamAvg = float64(upstreamMs) / float64(upstream)
	}
	return map[string]any{
		"requestsTotal":         total,
		"errorsTotal":           errs,
		"rateLimitedTotal":      limited,
		"avgDurationMs":         avg,
		"totalDurationMs":       totalMs,
		"upstreamCallsTotal":    upstream,
		"upstreamFailuresTotal": upstreamFailed,
		"upstreamAvgDurationMs": upstreamAvg,
	}
}
