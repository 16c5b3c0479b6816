package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidURL indicates the repository URL could not be parsed
	ErrInvalidURL = errors.New("invalid GitHub URL")

	// ErrEmptyArchive indicates the downloaded archive contains no entries
	ErrEmptyArchive = errors.New("zip archive is empty")

	// ErrDestExists indicates the destination directory exists and is not empty
	ErrDestExists = errors.New("destination exists and is not empty")

	// ErrGitNotFound indicates no usable git executable is on PATH
	ErrGitNotFound = errors.New("git executable not found")

	// ErrNotFound indicates the remote repository or ref was not found
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates GitHub rejected the request for rate limiting
	ErrRateLimited = errors.New("rate limited")
)

// FormatError indicates the archive failed to parse as a valid ZIP container.
// An archive with zero entries is also a FormatError, never a trivial success.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid archive %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError creates a new FormatError
func NewFormatError(path string, err error) *FormatError {
	return &FormatError{Path: path, Err: err}
}

// PathSafetyError indicates an archive entry's stored name cannot be safely
// enclosed within the destination root (absolute path or parent traversal).
// Such an entry aborts the whole extraction; it is never written under its
// raw name.
type PathSafetyError struct {
	Name string
}

func (e *PathSafetyError) Error() string {
	return fmt.Sprintf("unsafe archive entry name: %q", e.Name)
}

// NewPathSafetyError creates a new PathSafetyError
func NewPathSafetyError(name string) *PathSafetyError {
	return &PathSafetyError{Name: name}
}

// DownloadError represents a failed archive or API request
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("download error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("download error for %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// NewDownloadError creates a new DownloadError
func NewDownloadError(url string, statusCode int, err error) *DownloadError {
	return &DownloadError{URL: url, StatusCode: statusCode, Err: err}
}

// IsRetryable checks if a download error should be retried
func IsRetryable(err error) bool {
	var dlErr *DownloadError
	if errors.As(err, &dlErr) {
		switch dlErr.StatusCode {
		case 429, 502, 503, 504:
			return true
		}
	}
	return errors.Is(err, ErrRateLimited)
}

// InitError represents a failure while initializing the new repository
type InitError struct {
	Step string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("repository init failed at %s: %v", e.Step, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// NewInitError creates a new InitError
func NewInitError(step string, err error) *InitError {
	return &InitError{Step: step, Err: err}
}
