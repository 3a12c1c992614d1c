package procfs

import (
	"fmt"
	"strconv"
)

// Counter is one unsigned kernel counter with an explicit unknown state.
// Kernel-version-dependent fields that are absent, or fail to parse, are
// carried as !Known rather than a silent zero, so "field does not exist
// on this kernel" stays distinguishable from an actual zero reading.
type Counter struct {
	Val   uint64
	Known bool
}

func known(v uint64) Counter { return Counter{Val: v, Known: true} }

// String renders the value, or "?" for an unknown counter.
func (c Counter) String() string {
	if !c.Known {
		return "?"
	}
	return strconv.FormatUint(c.Val, 10)
}

// Record is one typed entry of a Snapshot. Name identifies the entity
// within its source ("cpu", "cpu0", "eth0", a pid, ...). Counters
// exposes the record's monotonic counters for delta computation;
// gauge-only records (loadavg, meminfo) return nil.
type Record interface {
	Name() string
	Counters() map[string]Counter
}

// parseCounter converts a required counter token. A failure here is a
// kernel-format violation, reported as ErrMalformed.
func parseCounter(src SourceID, field, tok string) (uint64, error) {
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: field %s: %q", ErrMalformed, src, field, tok)
	}
	return v, nil
}

// optCounter converts a known-optional counter token. Absent or
// unparseable tokens degrade to the unknown marker without failing the
// record.
func optCounter(fields []string, idx int) Counter {
	if idx >= len(fields) {
		return Counter{}
	}
	v, err := strconv.ParseUint(fields[idx], 10, 64)
	if err != nil {
		return Counter{}
	}
	return known(v)
}
