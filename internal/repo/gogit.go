package repo

import (
	"context"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dhodgson615/gitripper/internal/domain"
	"github.com/dhodgson615/gitripper/internal/utils"
)

// Fallback identity for the initial commit when none is configured. The
// produced repository has no history from the original, so the identity only
// labels the single synthetic commit.
const (
	defaultAuthorName  = "gitripper"
	defaultAuthorEmail = "gitripper@localhost"
)

// GoGitInitializer creates the repository with the embedded go-git library,
// requiring no git executable on the host.
type GoGitInitializer struct {
	logger *utils.Logger
}

// NewGoGitInitializer creates a new GoGitInitializer
func NewGoGitInitializer(logger *utils.Logger) *GoGitInitializer {
	return &GoGitInitializer{logger: logger}
}

func (g *GoGitInitializer) Name() string {
	return BackendEmbedded
}

// Init initializes dir as a git repository, stages everything, and records a
// single "Initial commit". An optional origin remote is added afterwards.
func (g *GoGitInitializer) Init(ctx context.Context, dir string, opts InitOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repository, err := git.PlainInit(dir, false)
	if err != nil {
		return domain.NewInitError("init", err)
	}

	worktree, err := repository.Worktree()
	if err != nil {
		return domain.NewInitError("worktree", err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return domain.NewInitError("add", err)
	}

	name := opts.AuthorName
	if name == "" {
		name = defaultAuthorName
	}
	email := opts.AuthorEmail
	if email == "" {
		email = defaultAuthorEmail
	}

	_, err = worktree.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  name,
			Email: email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return domain.NewInitError("commit", err)
	}

	if opts.Remote != "" {
		_, err = repository.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{opts.Remote},
		})
		if err != nil {
			return domain.NewInitError("remote", err)
		}
		if g.logger != nil {
			g.logger.Info().Str("remote", opts.Remote).Msg("Set remote origin")
		}
	}

	return nil
}
