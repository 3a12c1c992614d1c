package procfs

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPids(t *testing.T) {
	fsys := fstest.MapFS{
		"16018/stat": &fstest.MapFile{Data: []byte("x")},
		"1/stat":     &fstest.MapFile{Data: []byte("x")},
		"24126/stat": &fstest.MapFile{Data: []byte("x")},
		"24064/stat": &fstest.MapFile{Data: []byte("x")},
		"self/stat":  &fstest.MapFile{Data: []byte("x")},
		"sys/kernel": &fstest.MapFile{Data: []byte("x")},
		"uptime":     &fstest.MapFile{Data: []byte("1.0 1.0")},
		"net/dev":    &fstest.MapFile{Data: []byte("")},
	}
	pids, err := Pids(fsys)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 16018, 24064, 24126}, pids)
}

func TestPids_NoProcesses(t *testing.T) {
	pids, err := Pids(fstest.MapFS{
		"uptime": &fstest.MapFile{Data: []byte("1.0 1.0")},
	})
	require.NoError(t, err)
	assert.Empty(t, pids)
}
