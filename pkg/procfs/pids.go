package procfs

import (
	"io/fs"
	"slices"
	"strconv"
)

// Pids lists the numeric process directories of the proc mount in
// ascending order. Directories that fail to list as a plain integer
// (self, sys, net, ...) are skipped. Processes may exit between the
// directory read and the caller's use of a pid; that churn is normal
// and not an error.
func Pids(fsys fs.FS) ([]int, error) {
	if fsys == nil {
		fsys = DefaultFS()
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, mapFSErr(".", err)
	}
	pids := make([]int, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	slices.Sort(pids)
	return pids, nil
}
