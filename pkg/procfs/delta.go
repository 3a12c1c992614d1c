package procfs

import (
	"fmt"
	"math"
	"time"
)

// DeltaRecord is the counter movement between two snapshots of one
// source. Keys are "record/counter" ("cpu/user", "eth0/rx_bytes").
// Deltas are never negative for a monotonic counter: a decrease is
// treated as a restart-from-zero and flagged in ResetDetected instead.
// Counters unknown on either side are omitted, not zero-filled.
type DeltaRecord struct {
	Source        SourceID
	Duration      time.Duration
	Deltas        map[string]int64
	ResetDetected map[string]struct{}
}

// Delta pairs two snapshots of the same source, earlier first, and
// computes per-counter deltas with wrap/reset handling. Snapshots of
// different sources fail with ErrSourceMismatch; a later timestamp not
// strictly after the earlier one fails with ErrNonMonotonic.
func Delta(earlier, later *Snapshot) (*DeltaRecord, error) {
	if earlier.Source != later.Source {
		return nil, fmt.Errorf("%w: %s vs %s", ErrSourceMismatch, earlier.Source, later.Source)
	}
	if !later.At.After(earlier.At) {
		return nil, fmt.Errorf("%w: %s", ErrNonMonotonic, earlier.Source)
	}

	d := &DeltaRecord{
		Source:        earlier.Source,
		Duration:      later.At.Sub(earlier.At),
		Deltas:        make(map[string]int64),
		ResetDetected: make(map[string]struct{}),
	}
	prev := make(map[string]Record, len(earlier.Records))
	for _, r := range earlier.Records {
		prev[r.Name()] = r
	}
	for _, rec := range later.Records {
		before, ok := prev[rec.Name()]
		if !ok {
			continue
		}
		old := before.Counters()
		for name, now := range rec.Counters() {
			was, ok := old[name]
			if !ok || !now.Known || !was.Known {
				continue
			}
			key := rec.Name() + "/" + name
			if now.Val >= was.Val {
				d.Deltas[key] = int64(now.Val - was.Val)
			} else {
				// counter reset or wraparound: the later value is the
				// movement since the restart
				d.Deltas[key] = int64(now.Val)
				d.ResetDetected[key] = struct{}{}
			}
		}
	}
	return d, nil
}

// Rate converts one counter delta to a per-second rate over the sample
// interval. ok is false when the counter was not computable or the
// interval is degenerate.
func (d *DeltaRecord) Rate(key string) (rate float64, ok bool) {
	v, ok := d.Deltas[key]
	if !ok || d.Duration <= 0 {
		return 0, false
	}
	return safeDiv(float64(v), d.Duration.Seconds()), true
}

// CPUUtilization derives the busy fraction of one cpu row ("cpu" for
// the aggregate, "cpu0"... per core) from a SourceCPU delta: every tick
// except idle and iowait counts as busy. ok is false when the row is
// absent or its total tick delta is zero, where utilization is
// undefined rather than 0.
func CPUUtilization(d *DeltaRecord, cpu string) (util float64, ok bool) {
	if d.Source != SourceCPU {
		return 0, false
	}
	var busy, total int64
	var seen bool
	for _, name := range cpuTickNames {
		v, ok := d.Deltas[cpu+"/"+name]
		if !ok {
			continue
		}
		seen = true
		total += v
		if name != "idle" && name != "iowait" {
			busy += v
		}
	}
	if v, ok := d.Deltas[cpu+"/steal"]; ok {
		busy += v
		total += v
	}
	if !seen || total == 0 {
		return 0, false
	}
	return clamp01(float64(busy) / float64(total)), true
}

func safeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	// guard against NaN
	if math.IsNaN(x) {
		return 0
	}
	return x
}
