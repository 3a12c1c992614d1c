package procfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const meminfoFixture = `MemTotal:  16384000 kB
MemFree:  512000 kB
Buffers:   406520 kB
Cached:   5608852 kB
SwapTotal: 8388604 kB
HugePages_Total:       0
Hugepagesize:       2048 kB
`

func TestParseMemInfo(t *testing.T) {
	recs, err := parseMemInfo([]byte(meminfoFixture))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	mi, ok := recs[0].(*MemInfo)
	require.True(t, ok)
	assert.Equal(t, "meminfo", mi.Name())
	assert.Equal(t, uint64(16384000), mi.KB["MemTotal"])
	assert.Equal(t, uint64(512000), mi.KB["MemFree"])
	assert.Equal(t, uint64(406520), mi.KB["Buffers"])

	// suffix-less entries stay bare values
	assert.Equal(t, uint64(0), mi.KB["HugePages_Total"])
	assert.Equal(t, uint64(2048), mi.KB["Hugepagesize"])

	// gauges, nothing for the delta engine
	assert.Nil(t, mi.Counters())
}

func TestParseMemInfo_KilobyteRoundTrip(t *testing.T) {
	recs, err := parseMemInfo([]byte(meminfoFixture))
	require.NoError(t, err)
	mi := recs[0].(*MemInfo)

	// converting to bytes and back reproduces the source kB exactly
	for name, kb := range mi.KB {
		bytes := kb * 1024
		assert.Equal(t, kb, bytes/1024, name)
	}
}

func TestParseMemInfo_Malformed(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := parseMemInfo(nil)
		assert.True(t, errors.Is(err, ErrMalformed))
	})
	t.Run("value_not_numeric", func(t *testing.T) {
		_, err := parseMemInfo([]byte("MemTotal: lots kB\n"))
		assert.True(t, errors.Is(err, ErrMalformed))
	})
	t.Run("value_missing", func(t *testing.T) {
		_, err := parseMemInfo([]byte("MemTotal:\n"))
		assert.True(t, errors.Is(err, ErrMalformed))
	})
}
