package extract

import (
	"io/fs"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
)

func TestUnixMode(t *testing.T) {
	t.Parallel()

	t.Run("unix creator carries bits", func(t *testing.T) {
		fh := &zip.FileHeader{Name: "run.sh"}
		fh.SetMode(0o755)
		fh.CreatorVersion = creatorUnix << 8

		mode, ok := unixMode(fh)
		assert.True(t, ok)
		assert.Equal(t, fs.FileMode(0o755), mode)
	})

	t.Run("macos creator carries bits", func(t *testing.T) {
		fh := &zip.FileHeader{Name: "a.txt"}
		fh.SetMode(0o644)
		fh.CreatorVersion = creatorMacOSX << 8

		mode, ok := unixMode(fh)
		assert.True(t, ok)
		assert.Equal(t, fs.FileMode(0o644), mode)
	})

	t.Run("fat creator has none", func(t *testing.T) {
		fh := &zip.FileHeader{Name: "a.txt", CreatorVersion: 0}

		_, ok := unixMode(fh)
		assert.False(t, ok)
	})
}
