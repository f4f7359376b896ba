// Package integrity implements the checksum gate in front of the fetch
// and extract steps. The gate is stateless: every call re-reads the cache
// directory, so it is safe both as the short-circuit check before any
// network work and as the post-extraction assertion.
package integrity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nlhepler/intel-mkl-tool/internal/mkl"
	"github.com/nlhepler/intel-mkl-tool/internal/utils/checksum"
)

// Absent marks a member file that does not exist at all, as opposed to
// one present with the wrong content.
const Absent = "absent"

// Result reports the gate outcome. On failure Path, Actual and Expected
// describe the first member, in declared order, that did not verify.
type Result struct {
	OK       bool
	Path     string
	Actual   string
	Expected string
}

func (r Result) String() string {
	if r.OK {
		return "verified"
	}
	return fmt.Sprintf("%s: expected checksum %s, got %s", r.Path, r.Expected, r.Actual)
}

// Verify checks every member in declared order and stops at the first
// one that is missing or has a mismatching digest.
func Verify(destDir string, members []mkl.MemberSpec) (Result, error) {
	for _, m := range members {
		path := filepath.Join(destDir, filepath.FromSlash(m.RelPath))

		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Result{Path: path, Actual: Absent, Expected: m.MD5}, nil
			}
			return Result{}, fmt.Errorf("checking %s: %w", path, err)
		}

		actual, err := checksum.Sum(path)
		if err != nil {
			return Result{}, err
		}
		if actual != m.MD5 {
			return Result{Path: path, Actual: actual, Expected: m.MD5}, nil
		}
	}
	return Result{OK: true}, nil
}
