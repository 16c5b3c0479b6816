package repo

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/dhodgson615/gitripper/internal/domain"
	"github.com/dhodgson615/gitripper/internal/utils"
)

// ExecInitializer shells out to the host git executable. It picks up the
// user's global git configuration, which the embedded backend does not.
type ExecInitializer struct {
	logger *utils.Logger
}

// NewExecInitializer creates a new ExecInitializer
func NewExecInitializer(logger *utils.Logger) *ExecInitializer {
	return &ExecInitializer{logger: logger}
}

func (e *ExecInitializer) Name() string {
	return BackendCLI
}

// CheckGitInstalled reports whether a usable git executable is on PATH
func CheckGitInstalled() error {
	if _, err := exec.LookPath("git"); err != nil {
		return domain.ErrGitNotFound
	}
	return nil
}

// Init initializes dir as a git repository via the git CLI and records a
// single "Initial commit".
func (e *ExecInitializer) Init(ctx context.Context, dir string, opts InitOptions) error {
	if err := CheckGitInstalled(); err != nil {
		return err
	}

	runGit := func(step string, args ...string) error {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			return domain.NewInitError(step, fmt.Errorf("git %v: %w: %s", args, err, out))
		}
		return nil
	}

	if err := runGit("init", "init"); err != nil {
		return err
	}

	if opts.AuthorName != "" {
		if err := runGit("config", "config", "user.name", opts.AuthorName); err != nil {
			return err
		}
	}
	if opts.AuthorEmail != "" {
		if err := runGit("config", "config", "user.email", opts.AuthorEmail); err != nil {
			return err
		}
	}

	if err := runGit("add", "add", "."); err != nil {
		return err
	}
	if err := runGit("commit", "commit", "-m", "Initial commit"); err != nil {
		return err
	}

	if opts.Remote != "" {
		if err := runGit("remote", "remote", "add", "origin", opts.Remote); err != nil {
			return err
		}
		if e.logger != nil {
			e.logger.Info().Str("remote", opts.Remote).Msg("Set remote origin")
		}
	}

	return nil
}
