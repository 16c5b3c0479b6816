package extract

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/dhodgson615/gitripper/internal/domain"
)

// Entry is an archive entry fully read into an owned, disk-write-ready
// record. Once materialized it is independent of the archive it came from.
type Entry struct {
	// RelPath is the destination-relative path after root-prefix stripping,
	// slash-separated and never empty.
	RelPath string

	// IsDir reports whether the stored name ended with a path separator
	IsDir bool

	// Mode holds POSIX permission bits; valid only when HasMode is set
	Mode    fs.FileMode
	HasMode bool

	// Size is the declared uncompressed size, used for the parallel
	// dispatch threshold
	Size uint64

	// Data is the full payload, empty for directories
	Data []byte
}

// encloseName validates that a stored entry name denotes a path strictly
// inside the destination root. It returns the cleaned slash path, or "" when
// the name normalizes to the root itself. Absolute names and names escaping
// via parent-directory segments are rejected, never passed through raw.
func encloseName(name string) (string, error) {
	normalized := strings.ReplaceAll(name, `\`, "/")
	if strings.HasPrefix(normalized, "/") || strings.ContainsRune(normalized, 0) {
		return "", domain.NewPathSafetyError(name)
	}

	clean := path.Clean(normalized)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", domain.NewPathSafetyError(name)
	}
	if clean == "." {
		return "", nil
	}

	return clean, nil
}

const (
	creatorUnix   = 3
	creatorMacOSX = 19
)

// unixMode returns the POSIX permission bits recorded for an entry, if any.
// Only archives written on a Unix-like creator carry meaningful bits.
func unixMode(fh *zip.FileHeader) (fs.FileMode, bool) {
	switch fh.CreatorVersion >> 8 {
	case creatorUnix, creatorMacOSX:
		return fh.Mode().Perm(), true
	}
	return 0, false
}

// materialize converts one raw archive entry into an owned Entry with the
// given destination-relative path. The byte stream is read fully; no disk
// I/O happens here.
func materialize(f *zip.File, relPath string) (*Entry, error) {
	isDir := strings.HasSuffix(f.Name, "/")

	entry := &Entry{
		RelPath: relPath,
		IsDir:   isDir,
	}
	entry.Mode, entry.HasMode = unixMode(&f.FileHeader)

	if isDir {
		return entry, nil
	}

	entry.Size = f.UncompressedSize64

	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	buf := bytes.NewBuffer(make([]byte, 0, entry.Size))
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	entry.Data = buf.Bytes()

	return entry, nil
}
