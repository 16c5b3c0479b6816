package extract

import (
	"context"
	"os"
	"runtime"

	"github.com/dhodgson615/gitripper/internal/utils"
)

// DefaultParallelThreshold is the total uncompressed payload size above which
// entries are written by a bounded worker pool instead of sequentially.
const DefaultParallelThreshold int64 = 10 << 20 // 10 MiB

// Extractor extracts ZIP archives into a destination directory, normalizing
// a shared top-level path component and restoring POSIX permission bits.
//
// The whole archive is materialized in memory before any write begins. When
// the parallel path is taken, the first write error aborts the join but
// already-dispatched sibling writes are not cancelled, so partial output can
// remain on disk after a reported failure.
type Extractor struct {
	workers   int
	threshold int64
	logger    *utils.Logger
}

// Options contains options for creating an Extractor
type Options struct {
	// Workers bounds the parallel write fan-out; defaults to NumCPU
	Workers int

	// ParallelThreshold overrides the payload size that triggers parallel
	// writes; defaults to DefaultParallelThreshold
	ParallelThreshold int64

	Logger *utils.Logger
}

// New creates a new Extractor with the given options
func New(opts Options) *Extractor {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.ParallelThreshold <= 0 {
		opts.ParallelThreshold = DefaultParallelThreshold
	}

	return &Extractor{
		workers:   opts.Workers,
		threshold: opts.ParallelThreshold,
		logger:    opts.Logger,
	}
}

// Extract extracts the ZIP archive at zipPath into destDir.
//
// Extraction runs in two phases. Phase one enumerates the archive once,
// validating every stored name, detecting a shared root prefix, and reading
// each entry fully into memory. Phase two writes the materialized entries to
// disk, sequentially in archive order for small payloads or via a bounded
// worker pool above the parallel threshold. Both strategies produce the same
// final tree. Any failure in phase one aborts before a single byte is
// written; a failure in phase two is reported after the join without rolling
// back files already on disk.
func (x *Extractor) Extract(ctx context.Context, zipPath, destDir string) error {
	archive, err := OpenArchive(zipPath)
	if err != nil {
		return err
	}
	defer archive.Close()

	entries, totalPayload, err := x.materializeAll(archive)
	if err != nil {
		return err
	}

	// First filesystem mutation happens only after the whole archive has
	// been validated and read.
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	if x.logger != nil {
		x.logger.Debug().
			Int("entries", len(entries)).
			Int64("payload_bytes", totalPayload).
			Bool("parallel", totalPayload > x.threshold).
			Msg("Dispatching entries")
	}

	if totalPayload > x.threshold {
		errs := utils.ParallelForEach(ctx, entries, x.workers, func(_ context.Context, e *Entry) error {
			return writeEntry(e, destDir, x.logger)
		})
		if err := utils.FirstError(errs); err != nil {
			return err
		}
		return ctx.Err()
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeEntry(e, destDir, x.logger); err != nil {
			return err
		}
	}

	return nil
}

// materializeAll runs the single enumeration pass: name validation, root
// prefix detection, and full payload reads. Stripping is applied uniformly
// after the pass, once the prefix verdict is final; entries that normalize
// to the stripped root itself add no node and are dropped.
func (x *Extractor) materializeAll(archive *Archive) ([]*Entry, int64, error) {
	type rawEntry struct {
		enclosed string
		entry    *Entry
	}

	raw := make([]rawEntry, 0, archive.Len())
	var detector prefixDetector
	var totalPayload int64

	for i := 0; i < archive.Len(); i++ {
		f := archive.EntryAt(i)

		enclosed, err := encloseName(f.Name)
		if err != nil {
			return nil, 0, err
		}
		detector.observe(enclosed)
		if enclosed == "" {
			continue
		}

		entry, err := materialize(f, enclosed)
		if err != nil {
			return nil, 0, err
		}
		if !entry.IsDir {
			totalPayload += int64(entry.Size)
		}

		raw = append(raw, rawEntry{enclosed: enclosed, entry: entry})
	}

	root, hasRoot := detector.prefix()

	entries := make([]*Entry, 0, len(raw))
	for _, r := range raw {
		relPath := r.enclosed
		if hasRoot {
			stripped, keep := stripRoot(r.enclosed, root)
			if !keep {
				continue
			}
			relPath = stripped
		}
		r.entry.RelPath = relPath
		entries = append(entries, r.entry)
	}

	return entries, totalPayload, nil
}
