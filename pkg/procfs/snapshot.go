package procfs

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"
)

// SourceID names one supported stat source. The set is closed: every id
// maps to exactly one path template and parser in the registry table.
type SourceID string

const (
	SourceCPU       SourceID = "cpu"
	SourceMemInfo   SourceID = "meminfo"
	SourceLoadAvg   SourceID = "loadavg"
	SourceUptime    SourceID = "uptime"
	SourcePIDStat   SourceID = "pid/stat"
	SourcePIDStatus SourceID = "pid/status"
	SourceNetDev    SourceID = "netdev"
)

// Snapshot is one point-in-time capture of a single source: every record
// came from the same read of the same file. Snapshots are immutable once
// returned and owned by the caller.
type Snapshot struct {
	Source  SourceID
	At      time.Time
	Records []Record
}

// Record returns the record with the given name, or nil.
func (s *Snapshot) Record(name string) Record {
	for _, r := range s.Records {
		if r.Name() == name {
			return r
		}
	}
	return nil
}

type sourceSpec struct {
	path        string // relative to the proc root; %s is the entity id
	needsEntity bool
	parse       func([]byte) ([]Record, error)
}

var sources = map[SourceID]sourceSpec{
	SourceCPU:       {path: "stat", parse: parseCPUStat},
	SourceMemInfo:   {path: "meminfo", parse: parseMemInfo},
	SourceLoadAvg:   {path: "loadavg", parse: parseLoadAvg},
	SourceUptime:    {path: "uptime", parse: parseUptime},
	SourcePIDStat:   {path: "%s/stat", needsEntity: true, parse: parseProcessStat},
	SourcePIDStatus: {path: "%s/status", needsEntity: true, parse: parseProcessStatus},
	SourceNetDev:    {path: "net/dev", parse: parseNetDev},
}

// Sources lists the supported source ids in a stable order.
func Sources() []SourceID {
	return []SourceID{
		SourceCPU, SourceMemInfo, SourceLoadAvg, SourceUptime,
		SourcePIDStat, SourcePIDStatus, SourceNetDev,
	}
}

// Registry resolves a SourceID to its reader and parser so callers ask
// for snapshots by name instead of wiring parsers themselves. It holds
// no mutable state and performs no caching; every call re-reads and
// re-parses, so concurrent use needs no locking.
type Registry struct {
	fsys fs.FS
}

// NewRegistry returns a registry reading from fsys, normally DefaultFS()
// for the live /proc mount, or any fs.FS (fstest.MapFS, a fixture dir)
// for hermetic use.
func NewRegistry(fsys fs.FS) *Registry {
	return &Registry{fsys: fsys}
}

// Snapshot captures a whole-system source. Per-entity sources need
// SnapshotEntity and are refused here with ErrBadEntity.
func (r *Registry) Snapshot(src SourceID) (*Snapshot, error) {
	spec, ok := sources[src]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, src)
	}
	if spec.needsEntity {
		return nil, fmt.Errorf("%w: %s needs an entity id", ErrBadEntity, src)
	}
	return r.capture(src, spec, spec.path)
}

// SnapshotEntity captures a per-entity source for one target, e.g. a
// pid for pid/stat. A not-found on the substituted path is reported as
// ErrEntityVanished: the mount is there, the target is gone.
func (r *Registry) SnapshotEntity(src SourceID, entity string) (*Snapshot, error) {
	spec, ok := sources[src]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, src)
	}
	if !spec.needsEntity {
		return nil, fmt.Errorf("%w: %s takes no entity id", ErrBadEntity, src)
	}
	if _, err := strconv.Atoi(entity); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadEntity, entity)
	}

	snap, err := r.capture(src, spec, fmt.Sprintf(spec.path, entity))
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %s %s", ErrEntityVanished, src, entity)
	}
	return snap, err
}

func (r *Registry) capture(src SourceID, spec sourceSpec, path string) (*Snapshot, error) {
	fsys := r.fsys
	if fsys == nil {
		fsys = DefaultFS()
	}
	raw, err := readSource(fsys, path)
	if err != nil {
		return nil, err
	}
	recs, err := spec.parse(raw)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Source: src, At: time.Now(), Records: recs}, nil
}
