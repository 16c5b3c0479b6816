package extract

import "strings"

// prefixDetector determines whether every entry in an archive shares one
// common first path component. Detection runs inline with enumeration; the
// first disqualifying entry sets the mismatch flag permanently, so later
// entries skip the comparison entirely.
type prefixDetector struct {
	candidate string
	mismatch  bool
}

// observe feeds one enclosed path, in index order, to the detector
func (d *prefixDetector) observe(enclosed string) {
	if d.mismatch {
		return
	}

	first := firstComponent(enclosed)
	switch {
	case first == "":
		d.mismatch = true
	case d.candidate == "":
		d.candidate = first
	case first != d.candidate:
		d.mismatch = true
	}
}

// prefix returns the shared root component, or "" and false when no common
// prefix holds across every observed entry
func (d *prefixDetector) prefix() (string, bool) {
	if d.mismatch || d.candidate == "" {
		return "", false
	}
	return d.candidate, true
}

func firstComponent(p string) string {
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}

// stripRoot removes the shared root component from an enclosed path. The
// second return is false when the path denotes the stripped root itself,
// which is dropped rather than materialized.
func stripRoot(enclosed, root string) (string, bool) {
	if enclosed == root {
		return "", false
	}
	if rest, ok := strings.CutPrefix(enclosed, root+"/"); ok {
		if rest == "" {
			return "", false
		}
		return rest, true
	}
	return enclosed, true
}
