package procfs

import (
	"fmt"
	"strconv"
	"strings"
)

// LoadAvg is /proc/loadavg: the three exponentially damped run-queue
// averages, the runnable/total scheduling entity pair, and the pid most
// recently handed out. All gauges, so no counters.
type LoadAvg struct {
	One     float64
	Five    float64
	Fifteen float64

	Runnable      uint64
	TotalEntities uint64
	LastPID       uint64
}

func (l *LoadAvg) Name() string                 { return "loadavg" }
func (l *LoadAvg) Counters() map[string]Counter { return nil }

func parseLoadAvg(raw []byte) ([]Record, error) {
	lines := tokenizeFields(raw)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s: empty", ErrMalformed, SourceLoadAvg)
	}
	fields := lines[0]
	if len(fields) != 5 {
		return nil, fmt.Errorf("%w: %s: want 5 fields, got %d", ErrMalformed, SourceLoadAvg, len(fields))
	}

	l := &LoadAvg{}
	for i, dst := range []*float64{&l.One, &l.Five, &l.Fifteen} {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: average %q", ErrMalformed, SourceLoadAvg, fields[i])
		}
		*dst = v
	}

	run, total, ok := strings.Cut(fields[3], "/")
	if !ok {
		return nil, fmt.Errorf("%w: %s: entity pair %q", ErrMalformed, SourceLoadAvg, fields[3])
	}
	var err error
	if l.Runnable, err = parseCounter(SourceLoadAvg, "runnable", run); err != nil {
		return nil, err
	}
	if l.TotalEntities, err = parseCounter(SourceLoadAvg, "total", total); err != nil {
		return nil, err
	}
	if l.LastPID, err = parseCounter(SourceLoadAvg, "last_pid", fields[4]); err != nil {
		return nil, err
	}
	return []Record{l}, nil
}
