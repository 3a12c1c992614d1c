package procfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockTicksAndPageSize(t *testing.T) {
	// Defaults (no env overrides)
	t.Setenv("CLK_TCK", "")
	t.Setenv("PAGE_SIZE", "")
	assert.Greater(t, ClockTicks(), 0, "ClockTicks must be > 0")
	assert.Greater(t, PageSize(), 0, "PageSize must be > 0")

	// Env overrides (use weird-but-valid values)
	t.Setenv("CLK_TCK", "250")
	t.Setenv("PAGE_SIZE", "16384")
	assert.Equal(t, 250, ClockTicks())
	assert.Equal(t, 16384, PageSize())

	// Garbage overrides fall back to defaults
	t.Setenv("CLK_TCK", "bogus")
	assert.Equal(t, 100, ClockTicks())
}
