package procfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// maxReadBytes caps a single source read. Kernel stat files are
// synthesized on read and small in practice; a larger file means the
// path is not the file we expect, and we refuse to buffer it whole.
const maxReadBytes = 1 << 20

// DefaultFS returns the live /proc mount. Snapshots taken through it
// reflect real kernel state; tests use an in-memory fs.FS instead.
func DefaultFS() fs.FS {
	return os.DirFS("/proc")
}

// readSource opens name inside fsys and reads it in one pass, capped at
// maxReadBytes. Failures are mapped onto the package error taxonomy so
// callers can errors.Is against ErrNotFound, ErrPermission and ErrIO.
// There are no retries: pseudo-filesystem reads are idempotent and a
// failed cycle is the caller's to repeat.
func readSource(fsys fs.FS, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, mapFSErr(name, err)
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, maxReadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, name, err)
	}
	return b, nil
}

func mapFSErr(name string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermission, name)
	default:
		return fmt.Errorf("%w: %s: %v", ErrIO, name, err)
	}
}
