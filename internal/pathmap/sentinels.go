package pathmap

import (
	"strconv"
	"sync/atomic"
)

// Sentinels hands out run-unique placeholder names for path segments
// that cannot be translated. Directories and file leaves draw from
// independent counters. Counters are owned by the run, not the package,
// so two runs in one process never share numbering.
type Sentinels struct {
	dir  atomic.Uint64
	file atomic.Uint64
}

// NextDir returns the next MALFORMED_DIR_NAME_<n> placeholder.
func (s *Sentinels) NextDir() string {
	n := s.dir.Add(1) - 1
	return "MALFORMED_DIR_NAME_" + strconv.FormatUint(n, 10)
}

// NextFile returns the next MALFORMED_FILE_NAME_<n> placeholder.
func (s *Sentinels) NextFile() string {
	n := s.file.Add(1) - 1
	return "MALFORMED_FILE_NAME_" + strconv.FormatUint(n, 10)
}
