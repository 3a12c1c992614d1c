package procfs

import (
	"os"
	"strconv"
)

// ClockTicks returns the number of jiffies (clock ticks) per second,
// used to turn USER_HZ tick counters into seconds. It first checks the
// env var CLK_TCK (useful for testing), otherwise falls back to 100.
//
// Note: the authoritative value is `sysconf(_SC_CLK_TCK)`, but reading
// it needs cgo; 100 is hardcoded on all Go-supported Linux targets.
func ClockTicks() int {
	v, _ := strconv.Atoi(os.Getenv("CLK_TCK"))
	if v > 0 {
		return v
	}
	return 100
}

// PageSize returns the memory page size in bytes, used to scale the rss
// page count of /proc/<pid>/stat. Like ClockTicks, it first checks an
// env override (PAGE_SIZE) to ease testing, then falls back to
// os.Getpagesize().
func PageSize() int {
	if ps := os.Getenv("PAGE_SIZE"); ps != "" {
		if v, _ := strconv.Atoi(ps); v > 0 {
			return v
		}
	}
	return os.Getpagesize()
}
