package repo

import (
	"context"
	"fmt"

	"github.com/dhodgson615/gitripper/internal/utils"
)

// Backend names accepted by NewInitializer
const (
	BackendEmbedded = "embedded"
	BackendCLI      = "cli"
)

// InitOptions contains options for the initial commit
type InitOptions struct {
	AuthorName  string
	AuthorEmail string
	Remote      string // origin URL, empty to skip
}

// Initializer turns an extracted directory tree into a fresh git repository
// with a single initial commit. Implementations are interchangeable; callers
// depend only on this interface.
type Initializer interface {
	Init(ctx context.Context, dir string, opts InitOptions) error
	Name() string
}

// NewInitializer selects an Initializer by configured backend name
func NewInitializer(backend string, logger *utils.Logger) (Initializer, error) {
	switch backend {
	case BackendEmbedded, "":
		return NewGoGitInitializer(logger), nil
	case BackendCLI:
		return NewExecInitializer(logger), nil
	default:
		return nil, fmt.Errorf("unknown git backend: %q", backend)
	}
}
