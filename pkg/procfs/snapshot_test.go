package procfs

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		"stat":        &fstest.MapFile{Data: []byte(statFixture)},
		"meminfo":     &fstest.MapFile{Data: []byte(meminfoFixture)},
		"loadavg":     &fstest.MapFile{Data: []byte("0.50 0.40 0.30 2/150 12345\n")},
		"uptime":      &fstest.MapFile{Data: []byte("82634.98 201246.15\n")},
		"net/dev":     &fstest.MapFile{Data: []byte(netdevFixture)},
		"1234/stat":   &fstest.MapFile{Data: []byte(pidStatFixture)},
		"1234/status": &fstest.MapFile{Data: []byte(pidStatusFixture)},
	}
}

func TestRegistry_Snapshot(t *testing.T) {
	reg := NewRegistry(fixtureFS())

	for _, src := range []SourceID{SourceCPU, SourceMemInfo, SourceLoadAvg, SourceUptime, SourceNetDev} {
		t.Run(string(src), func(t *testing.T) {
			snap, err := reg.Snapshot(src)
			require.NoError(t, err)
			assert.Equal(t, src, snap.Source)
			assert.False(t, snap.At.IsZero())
			assert.NotEmpty(t, snap.Records)
		})
	}
}

func TestRegistry_SnapshotEntity(t *testing.T) {
	t.Setenv("PAGE_SIZE", "4096")
	reg := NewRegistry(fixtureFS())

	snap, err := reg.SnapshotEntity(SourcePIDStat, "1234")
	require.NoError(t, err)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "tmux: server", snap.Records[0].(*ProcessStat).Comm)

	snap, err = reg.SnapshotEntity(SourcePIDStatus, "1234")
	require.NoError(t, err)
	assert.Equal(t, uint64(1660), snap.Records[0].(*ProcessStatus).Fields["VmRSS"])
}

func TestRegistry_SnapshotIdempotent(t *testing.T) {
	// two reads of a static fixture differ only in timestamp
	reg := NewRegistry(fixtureFS())

	a, err := reg.Snapshot(SourceCPU)
	require.NoError(t, err)
	b, err := reg.Snapshot(SourceCPU)
	require.NoError(t, err)

	assert.Equal(t, a.Source, b.Source)
	assert.Equal(t, a.Records, b.Records)
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry(fixtureFS())

	t.Run("unknown_source", func(t *testing.T) {
		_, err := reg.Snapshot(SourceID("vmstat"))
		assert.True(t, errors.Is(err, ErrUnknownSource))
		_, err = reg.SnapshotEntity(SourceID("vmstat"), "1")
		assert.True(t, errors.Is(err, ErrUnknownSource))
	})
	t.Run("entity_required", func(t *testing.T) {
		_, err := reg.Snapshot(SourcePIDStat)
		assert.True(t, errors.Is(err, ErrBadEntity))
	})
	t.Run("entity_superfluous", func(t *testing.T) {
		_, err := reg.SnapshotEntity(SourceCPU, "1234")
		assert.True(t, errors.Is(err, ErrBadEntity))
	})
	t.Run("entity_not_numeric", func(t *testing.T) {
		_, err := reg.SnapshotEntity(SourcePIDStat, "self")
		assert.True(t, errors.Is(err, ErrBadEntity))
	})
	t.Run("entity_vanished", func(t *testing.T) {
		_, err := reg.SnapshotEntity(SourcePIDStat, "99999")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEntityVanished))
		assert.False(t, errors.Is(err, ErrNotFound), "vanished entity is its own condition")
	})
	t.Run("source_not_found", func(t *testing.T) {
		empty := NewRegistry(fstest.MapFS{})
		_, err := empty.Snapshot(SourceCPU)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
	t.Run("malformed_source", func(t *testing.T) {
		bad := NewRegistry(fstest.MapFS{
			"loadavg": &fstest.MapFile{Data: []byte("not a loadavg line\n")},
		})
		_, err := bad.Snapshot(SourceLoadAvg)
		assert.True(t, errors.Is(err, ErrMalformed))
	})
}

func TestSnapshot_Record(t *testing.T) {
	reg := NewRegistry(fixtureFS())
	snap, err := reg.Snapshot(SourceCPU)
	require.NoError(t, err)

	require.NotNil(t, snap.Record("cpu2"))
	assert.Equal(t, "cpu2", snap.Record("cpu2").Name())
	assert.Nil(t, snap.Record("cpu9"))
}

func TestRegistry_LiveDeltaOverFixtures(t *testing.T) {
	// two fixture states of the same source, as a sampling loop sees them
	fsys := fixtureFS()
	reg := NewRegistry(fsys)

	a, err := reg.Snapshot(SourceLoadAvg)
	require.NoError(t, err)

	fsys["loadavg"] = &fstest.MapFile{Data: []byte("0.80 0.60 0.40 3/160 12399\n")}
	time.Sleep(2 * time.Millisecond)

	b, err := reg.Snapshot(SourceLoadAvg)
	require.NoError(t, err)
	require.True(t, b.At.After(a.At))

	d, err := Delta(a, b)
	require.NoError(t, err)
	assert.Empty(t, d.Deltas, "loadavg is gauge-only")
}

func TestSources_CoversRegistryTable(t *testing.T) {
	ids := Sources()
	assert.Len(t, ids, len(sources))
	for _, id := range ids {
		_, ok := sources[id]
		assert.True(t, ok, string(id))
	}
}
