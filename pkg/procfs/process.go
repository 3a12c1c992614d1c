package procfs

import (
	"fmt"
	"strconv"
	"strings"
)

// ProcessStat is the scheduler view of one process from /proc/<pid>/stat.
// Time fields are USER_HZ ticks; VSize and RSS are bytes (RSS is the
// kernel's page count multiplied by the page size).
type ProcessStat struct {
	PID   int
	Comm  string
	State string
	PPID  int

	MinFlt uint64
	MajFlt uint64
	UTime  uint64
	STime  uint64
	CUTime uint64
	CSTime uint64

	Threads   uint64
	StartTime uint64
	VSize     uint64
	RSS       uint64
}

func (p *ProcessStat) Name() string { return strconv.Itoa(p.PID) }

func (p *ProcessStat) Counters() map[string]Counter {
	// RSS, VSize and Threads move both ways; only the fault and tick
	// counters are monotonic.
	return map[string]Counter{
		"minflt": known(p.MinFlt),
		"majflt": known(p.MajFlt),
		"utime":  known(p.UTime),
		"stime":  known(p.STime),
		"cutime": known(p.CUTime),
		"cstime": known(p.CSTime),
	}
}

// parseProcessStat handles the one-line format of /proc/<pid>/stat.
// comm (2nd field) is in parens and may itself contain spaces or parens,
// so everything up to the last ") " is split off before the positional
// numeric fields are indexed.
func parseProcessStat(raw []byte) ([]Record, error) {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s: empty", ErrMalformed, SourcePIDStat)
	}
	line := lines[0]

	open := strings.Index(line, "(")
	end := strings.LastIndex(line, ") ")
	if open < 0 || end < open {
		return nil, fmt.Errorf("%w: %s: no comm delimiter", ErrMalformed, SourcePIDStat)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(line[:open]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: pid %q", ErrMalformed, SourcePIDStat, line[:open])
	}

	// fields[0] is the state, i.e. overall field 3 of the stat line.
	fields := strings.Fields(line[end+2:])
	if len(fields) < 22 {
		return nil, fmt.Errorf("%w: %s: %d fields after comm", ErrMalformed, SourcePIDStat, len(fields))
	}

	p := &ProcessStat{
		PID:   pid,
		Comm:  line[open+1 : end],
		State: fields[0],
	}
	if p.PPID, err = strconv.Atoi(fields[1]); err != nil {
		return nil, fmt.Errorf("%w: %s: ppid %q", ErrMalformed, SourcePIDStat, fields[1])
	}
	for _, f := range []struct {
		name string
		idx  int
		dst  *uint64
	}{
		{"minflt", 7, &p.MinFlt},
		{"majflt", 9, &p.MajFlt},
		{"utime", 11, &p.UTime},
		{"stime", 12, &p.STime},
		{"cutime", 13, &p.CUTime},
		{"cstime", 14, &p.CSTime},
		{"num_threads", 17, &p.Threads},
		{"starttime", 19, &p.StartTime},
		{"vsize", 20, &p.VSize},
		{"rss", 21, &p.RSS},
	} {
		v, err := parseCounter(SourcePIDStat, f.name, fields[f.idx])
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	p.RSS *= uint64(PageSize())
	return []Record{p}, nil
}

// ProcessStatus is the colon-key view from /proc/<pid>/status. Numeric
// scalars land in Fields, with kB-suffixed sizes kept in kilobytes and
// bare integers (Threads, ctxt switch counts, the first Uid/Gid id)
// as-is. Keys whose first value token is not an unsigned integer (SigQ,
// the signal masks, Groups) are outside the record's scalar shape and
// skipped; Name and State keep their text here instead.
type ProcessStatus struct {
	PID    int
	Comm   string
	State  string
	Fields map[string]uint64
}

func (s *ProcessStatus) Name() string { return strconv.Itoa(s.PID) }

func (s *ProcessStatus) Counters() map[string]Counter {
	m := make(map[string]Counter, 2)
	for _, k := range []string{"voluntary_ctxt_switches", "nonvoluntary_ctxt_switches"} {
		if v, ok := s.Fields[k]; ok {
			m[k] = known(v)
		}
	}
	return m
}

func parseProcessStatus(raw []byte) ([]Record, error) {
	entries := tokenizeColon(raw)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s: no entries", ErrMalformed, SourcePIDStatus)
	}
	s := &ProcessStatus{PID: -1, Fields: make(map[string]uint64, len(entries))}
	for _, e := range entries {
		switch e.key {
		case "Name":
			s.Comm = strings.Join(e.values, " ")
			continue
		case "State":
			if len(e.values) > 0 {
				s.State = e.values[0]
			}
			continue
		}
		if len(e.values) == 0 {
			continue
		}
		v, err := strconv.ParseUint(e.values[0], 10, 64)
		if err != nil {
			continue
		}
		s.Fields[e.key] = v
		if e.key == "Pid" {
			s.PID = int(v)
		}
	}
	if s.Comm == "" && len(s.Fields) == 0 {
		return nil, fmt.Errorf("%w: %s: no recognizable entries", ErrMalformed, SourcePIDStatus)
	}
	return []Record{s}, nil
}
