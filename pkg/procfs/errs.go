package procfs

import "errors"

var (
	// ErrNotFound indicates the source path does not exist, i.e. the
	// source is unsupported on this kernel or configuration.
	ErrNotFound = errors.New("procfs: source not found")

	// ErrPermission indicates the caller lacks access to the source,
	// e.g. another user's process stats.
	ErrPermission = errors.New("procfs: permission denied")

	// ErrIO indicates a transient read failure on the source file.
	ErrIO = errors.New("procfs: read failed")

	// ErrMalformed indicates a required field was missing or unparseable.
	// It signals that a kernel-format assumption no longer holds.
	ErrMalformed = errors.New("procfs: malformed source")

	// ErrUnknownSource indicates the requested SourceID is not in the
	// registry table.
	ErrUnknownSource = errors.New("procfs: unknown source")

	// ErrBadEntity indicates the entity id does not fit the source:
	// a per-entity source was requested without one, or a whole-system
	// source was given one.
	ErrBadEntity = errors.New("procfs: entity id not valid for source")

	// ErrEntityVanished indicates a per-entity source disappeared, which
	// on a live system means the target process exited before the read.
	ErrEntityVanished = errors.New("procfs: entity vanished")

	// ErrSourceMismatch indicates a delta was requested over snapshots
	// of two different sources.
	ErrSourceMismatch = errors.New("procfs: snapshot source mismatch")

	// ErrNonMonotonic indicates a delta was requested with the later
	// snapshot not strictly after the earlier one.
	ErrNonMonotonic = errors.New("procfs: samples not in increasing time order")
)
