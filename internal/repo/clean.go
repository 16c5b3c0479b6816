package repo

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dhodgson615/gitripper/internal/utils"
)

// RemoveEmbeddedGit deletes any .git directories nested inside dir so the
// extracted tree can be re-initialized cleanly. Removal is best-effort; a
// directory that cannot be removed is logged and skipped.
func RemoveEmbeddedGit(dir string, logger *utils.Logger) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || d.Name() != ".git" || path == dir {
			return nil
		}

		if rmErr := os.RemoveAll(path); rmErr != nil {
			if logger != nil {
				logger.Warn().Err(rmErr).Str("path", path).Msg("Failed to remove embedded .git")
			}
		} else if logger != nil {
			logger.Debug().Str("path", path).Msg("Removed embedded .git")
		}

		return fs.SkipDir
	})
}
