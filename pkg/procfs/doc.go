// Package procfs provides typed, structured access to Linux kernel
// runtime statistics published as text under /proc: one parser per stat
// source, a snapshot model, and a delta engine that turns monotonic
// kernel counters into rates.
//
// # Overview
//
//   - Registry: maps a SourceID to its reader and parser.
//     Snapshot(src) captures a whole-system source; SnapshotEntity(src,
//     pid) captures a per-process one. Every call re-reads and
//     re-parses; there is no caching and no shared mutable state, so
//     concurrent callers need no locking.
//
//   - Snapshot: one point-in-time capture — the SourceID, the read
//     timestamp, and the typed records parsed from a single read of a
//     single file. Immutable, owned by the caller.
//
//   - Delta(earlier, later): pairs two snapshots of the same source and
//     computes per-counter deltas, detecting counter resets and 64-bit
//     wraparound. CPUUtilization and DeltaRecord.Rate derive fractions
//     and per-second rates from a delta.
//
// # Sources
//
//	SourceCPU        /proc/stat          aggregate + per-core tick rows
//	SourceMemInfo    /proc/meminfo       metric name -> kilobytes
//	SourceLoadAvg    /proc/loadavg       run-queue averages, entity pair
//	SourceUptime     /proc/uptime        boot + idle seconds
//	SourcePIDStat    /proc/<pid>/stat    scheduler view of one process
//	SourcePIDStatus  /proc/<pid>/status  colon-key scalars of one process
//	SourceNetDev     /proc/net/dev       per-interface byte/packet counters
//
// # Optional fields
//
// Kernel-version-dependent counters (steal since 2.6.11, guest since
// 2.6.24, guest_nice since 2.6.33) are carried as a Counter with
// Known=false when absent or unparseable, never as a silent zero. A
// parse failure on a required field instead fails the whole record with
// ErrMalformed: it means a kernel-format assumption no longer holds.
//
// # Delta semantics
//
// For each counter known in both snapshots, the delta is later minus
// earlier. A negative raw delta means the counter restarted (process
// restart, interface re-registration, 64-bit wrap); the delta becomes
// the later value alone and the counter's key lands in ResetDetected,
// so callers never see a negative movement on a monotonic counter. A
// counter unknown on either side is omitted from the mapping — "cannot
// compute" rather than "no change".
//
// # Errors (errs.go)
//
//	ErrNotFound       source path absent (unsupported kernel/config)
//	ErrPermission     caller lacks access to the source
//	ErrIO             transient read failure
//	ErrMalformed      required field missing or unparseable
//	ErrUnknownSource  SourceID not in the registry table
//	ErrBadEntity      entity id missing, superfluous, or non-numeric
//	ErrEntityVanished per-entity source disappeared (process exited)
//	ErrSourceMismatch delta over two different sources
//	ErrNonMonotonic   delta with samples out of time order
//
// The package never retries and never logs; retry policy (typically:
// re-poll next cycle) belongs to the caller.
//
// # Testing
//
// The proc mount is an fs.FS, so everything parses identically from
// os.DirFS("/proc") and from an in-memory fstest.MapFS fixture:
//
//	reg := procfs.NewRegistry(fstest.MapFS{
//	    "loadavg": &fstest.MapFile{Data: []byte("0.50 0.40 0.30 2/150 12345\n")},
//	})
//	snap, err := reg.Snapshot(procfs.SourceLoadAvg)
//
// # Example: CPU utilization over one second
//
//	reg := procfs.NewRegistry(procfs.DefaultFS())
//	a, _ := reg.Snapshot(procfs.SourceCPU)
//	time.Sleep(time.Second)
//	b, _ := reg.Snapshot(procfs.SourceCPU)
//	d, _ := procfs.Delta(a, b)
//	if u, ok := procfs.CPUUtilization(d, "cpu"); ok {
//	    fmt.Printf("busy %.1f%%\n", u*100)
//	}
//
// Package import path: github.com/ja7ad/procsnap/pkg/procfs
package procfs
