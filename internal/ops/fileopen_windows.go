//go:build windows

package ops

import (
	"os"

	"github.com/fantrack/fantrack/internal/errors"
)

// openFileNoFollow opens a file for writing, rejecting symlinks on the
// final component. Windows has no O_NOFOLLOW, so this does an Lstat
// check before opening; ValidatePath has already rejected symlinks, this
// narrows the remaining race window.
func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	if info, err := os.Lstat(path); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return nil, errors.NewInvalidRequest("cannot write to symlink")
		}
	}
	return os.OpenFile(path, flag, perm)
}

// openFileNoFollowRead opens a file for reading, rejecting symlinks on
// the final component.
func openFileNoFollowRead(path string) (*os.File, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(path)
		}
		return nil, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInvalidRequest("cannot read from symlink")
	}
	return os.Open(path)
}
