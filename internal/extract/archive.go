package extract

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zip"

	"github.com/dhodgson615/gitripper/internal/domain"
)

// Archive is an opened, indexed ZIP container. It is read-only and exposes
// its entries by index in central-directory order.
type Archive struct {
	reader *zip.ReadCloser
	path   string
}

// OpenArchive opens a ZIP file for extraction. A container that cannot be
// parsed yields a FormatError; an unreadable file yields the underlying I/O
// error. An archive with zero entries is rejected up front.
func OpenArchive(path string) (*Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, domain.NewFormatError(path, err)
		}
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}

	if len(rc.File) == 0 {
		rc.Close()
		return nil, domain.NewFormatError(path, domain.ErrEmptyArchive)
	}

	return &Archive{reader: rc, path: path}, nil
}

// Len returns the number of entries in the archive
func (a *Archive) Len() int {
	return len(a.reader.File)
}

// EntryAt returns the raw entry at the given index
func (a *Archive) EntryAt(index int) *zip.File {
	return a.reader.File[index]
}

// Close releases the underlying file
func (a *Archive) Close() error {
	return a.reader.Close()
}
