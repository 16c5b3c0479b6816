//go:build unix

package extract

import (
	"io/fs"
	"os"
)

// applyMode restores POSIX permission bits on Unix systems
func applyMode(path string, mode fs.FileMode) error {
	return os.Chmod(path, mode)
}
