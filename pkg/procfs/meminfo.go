package procfs

import (
	"fmt"
	"strconv"
)

// MemInfo maps /proc/meminfo metric names to kilobytes. Entries carrying
// a "kB" unit suffix are already kilobytes in the source; suffix-less
// entries (HugePages_Total and friends) are bare values kept as-is.
//
// Memory sizes are point-in-time gauges, not monotonic counters, so
// MemInfo exposes nothing to the delta engine.
type MemInfo struct {
	KB map[string]uint64
}

func (m *MemInfo) Name() string                 { return "meminfo" }
func (m *MemInfo) Counters() map[string]Counter { return nil }

func parseMemInfo(raw []byte) ([]Record, error) {
	entries := tokenizeColon(raw)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s: no entries", ErrMalformed, SourceMemInfo)
	}
	kb := make(map[string]uint64, len(entries))
	for _, e := range entries {
		if len(e.values) == 0 {
			return nil, fmt.Errorf("%w: %s: %q has no value", ErrMalformed, SourceMemInfo, e.key)
		}
		v, err := strconv.ParseUint(e.values[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q: %q", ErrMalformed, SourceMemInfo, e.key, e.values[0])
		}
		kb[e.key] = v
	}
	return []Record{&MemInfo{KB: kb}}, nil
}
