package extract

import (
	"os"
	"path/filepath"

	"github.com/dhodgson615/gitripper/internal/utils"
)

// writeEntry writes one materialized entry under destDir. Directory creation
// is idempotent and safe to race with sibling writers; a failure to restore
// permission bits is logged and swallowed, since archives may encode modes
// the destination filesystem cannot represent.
func writeEntry(e *Entry, destDir string, logger *utils.Logger) error {
	outPath := filepath.Join(destDir, filepath.FromSlash(e.RelPath))

	if e.IsDir {
		return os.MkdirAll(outPath, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(outPath, e.Data, 0o644); err != nil {
		return err
	}

	if e.HasMode {
		if err := applyMode(outPath, e.Mode); err != nil && logger != nil {
			logger.Debug().Err(err).Str("path", outPath).Msg("could not restore permissions")
		}
	}

	return nil
}
