package procfs

import (
	"fmt"
	"strings"
)

// CPUTicks is one cpu row of /proc/stat, in USER_HZ ticks. The "cpu"
// aggregate row sums all cores; "cpu0", "cpu1", ... are per core, in
// source order. Steal, Guest and GuestNice only exist on newer kernels
// (2.6.11, 2.6.24 and 2.6.33 respectively) and are unknown elsewhere.
type CPUTicks struct {
	CPU string

	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64

	Steal     Counter
	Guest     Counter
	GuestNice Counter
}

func (c *CPUTicks) Name() string { return c.CPU }

func (c *CPUTicks) Counters() map[string]Counter {
	return map[string]Counter{
		"user":       known(c.User),
		"nice":       known(c.Nice),
		"system":     known(c.System),
		"idle":       known(c.Idle),
		"iowait":     known(c.IOWait),
		"irq":        known(c.IRQ),
		"softirq":    known(c.SoftIRQ),
		"steal":      c.Steal,
		"guest":      c.Guest,
		"guest_nice": c.GuestNice,
	}
}

// parseCPUStat reads the cpu rows of /proc/stat. The aggregate row must
// come first; intr/ctxt/btime and the other non-cpu rows are ignored.
func parseCPUStat(raw []byte) ([]Record, error) {
	var recs []Record
	for _, fields := range tokenizeFields(raw) {
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "cpu") {
			continue
		}
		rec, err := cpuTicksFromFields(fields)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s: no cpu rows", ErrMalformed, SourceCPU)
	}
	if recs[0].Name() != "cpu" {
		return nil, fmt.Errorf("%w: %s: aggregate cpu row missing", ErrMalformed, SourceCPU)
	}
	return recs, nil
}

func cpuTicksFromFields(fields []string) (*CPUTicks, error) {
	// label + the seven tick columns every supported kernel has
	if len(fields) < 8 {
		return nil, fmt.Errorf("%w: %s: row %q too short", ErrMalformed, SourceCPU, fields[0])
	}
	c := &CPUTicks{CPU: fields[0]}
	for i, dst := range []*uint64{
		&c.User, &c.Nice, &c.System, &c.Idle, &c.IOWait, &c.IRQ, &c.SoftIRQ,
	} {
		v, err := parseCounter(SourceCPU, cpuTickNames[i], fields[i+1])
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	c.Steal = optCounter(fields, 8)
	c.Guest = optCounter(fields, 9)
	c.GuestNice = optCounter(fields, 10)
	return c, nil
}

var cpuTickNames = []string{"user", "nice", "system", "idle", "iowait", "irq", "softirq"}
