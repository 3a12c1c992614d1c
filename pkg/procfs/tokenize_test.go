package procfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines_SkipsBlank(t *testing.T) {
	raw := []byte("one\n\n  \ntwo\n\nthree\n")
	assert.Equal(t, []string{"one", "two", "three"}, splitLines(raw))
	assert.Nil(t, splitLines([]byte("\n \n\t\n")))
}

func TestTokenizeFields(t *testing.T) {
	raw := []byte("cpu  100 200\tcpu0 1\n0.50 0.40\n")
	lines := tokenizeFields(raw)
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"cpu", "100", "200", "cpu0", "1"}, lines[0])
	assert.Equal(t, []string{"0.50", "0.40"}, lines[1])
}

func TestTokenizeColon(t *testing.T) {
	raw := []byte("MemTotal:  16384000 kB\nThreads:\t1\nno separator line\nEmpty:\n")
	entries := tokenizeColon(raw)
	require.Len(t, entries, 3)

	assert.Equal(t, "MemTotal", entries[0].key)
	assert.Equal(t, []string{"16384000", "kB"}, entries[0].values)

	assert.Equal(t, "Threads", entries[1].key)
	assert.Equal(t, []string{"1"}, entries[1].values)

	// a key with no value tokens still tokenizes; validity is the
	// parser's decision
	assert.Equal(t, "Empty", entries[2].key)
	assert.Empty(t, entries[2].values)
}

func TestTokenizeTable(t *testing.T) {
	raw := []byte("header one\nheader two\n  eth0: 1 2 3\nmalformed row\n lo: 4 5\n")
	headers, rows := tokenizeTable(raw, 2)
	require.Equal(t, []string{"header one", "header two"}, headers)
	require.Len(t, rows, 2)

	assert.Equal(t, "eth0", rows[0].name)
	assert.Equal(t, []string{"1", "2", "3"}, rows[0].fields)
	assert.Equal(t, "lo", rows[1].name)
	assert.Equal(t, []string{"4", "5"}, rows[1].fields)
}

func TestTokenizeTable_ShortInput(t *testing.T) {
	headers, rows := tokenizeTable([]byte("only one line\n"), 2)
	assert.Len(t, headers, 1)
	assert.Nil(t, rows)
}
