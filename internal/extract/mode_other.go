//go:build !unix

package extract

import "io/fs"

// applyMode is a no-op where POSIX permission bits are not supported
func applyMode(path string, mode fs.FileMode) error {
	return nil
}
