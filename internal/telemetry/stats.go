// Package telemetry collects per-frame evaluation statistics and exports
// them as CSV for offline analysis.
package telemetry

import "time"

// FrameStats holds the evaluation metrics of a single frame.
type FrameStats struct {
	Frame     int     `csv:"frame"`
	Time      float32 `csv:"time"`
	Vertices  int     `csv:"vertices"`
	EvalUs    int64   `csv:"eval_us"`
	NonFinite int     `csv:"non_finite"`
	MinHeight float32 `csv:"min_height"`
	MaxHeight float32 `csv:"max_height"`
}

// Collector accumulates frame stats in memory. It is driven by the host
// frame loop (single writer) and is not safe for concurrent use.
type Collector struct {
	samples []FrameStats
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record appends one frame's stats.
func (c *Collector) Record(s FrameStats) {
	c.samples = append(c.samples, s)
}

// Samples returns the recorded stats in frame order.
func (c *Collector) Samples() []FrameStats {
	return c.samples
}

// Len returns the number of recorded frames.
func (c *Collector) Len() int {
	return len(c.samples)
}

// Reset discards all recorded stats.
func (c *Collector) Reset() {
	c.samples = c.samples[:0]
}

// TotalEvalTime returns the summed evaluation time across recorded frames.
func (c *Collector) TotalEvalTime() time.Duration {
	var total int64
	for _, s := range c.samples {
		total += s.EvalUs
	}
	return time.Duration(total) * time.Microsecond
}
