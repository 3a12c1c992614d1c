package procfs

import (
	"fmt"
	"math"
	"strconv"
)

// Uptime is /proc/uptime: seconds since boot and the idle seconds summed
// over all cores, at the kernel's centisecond precision. Both only grow
// between reboots, so they are exposed to the delta engine as
// centisecond counters.
type Uptime struct {
	Seconds     float64
	IdleSeconds float64
}

func (u *Uptime) Name() string { return "uptime" }

func (u *Uptime) Counters() map[string]Counter {
	return map[string]Counter{
		"centiseconds":      known(uint64(math.Round(u.Seconds * 100))),
		"idle_centiseconds": known(uint64(math.Round(u.IdleSeconds * 100))),
	}
}

func parseUptime(raw []byte) ([]Record, error) {
	lines := tokenizeFields(raw)
	if len(lines) == 0 || len(lines[0]) < 2 {
		return nil, fmt.Errorf("%w: %s: want 2 fields", ErrMalformed, SourceUptime)
	}
	u := &Uptime{}
	for i, dst := range []*float64{&u.Seconds, &u.IdleSeconds} {
		v, err := strconv.ParseFloat(lines[0][i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q", ErrMalformed, SourceUptime, lines[0][i])
		}
		*dst = v
	}
	return []Record{u}, nil
}
