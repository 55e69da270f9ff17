package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

// ErrNothingToCommit is returned by Commit when the worktree has no changes.
var ErrNothingToCommit = errors.New("nothing to commit, working tree clean")

// IsClean reports whether the worktree has no uncommitted changes.
func (r *Repository) IsClean() (bool, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("reading worktree status: %w", err)
	}

	return status.IsClean(), nil
}

// StageAll stages every pending change in the worktree, including deletions
// and untracked files.
func (r *Repository) StageAll() error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}

	logDebug("[git] StageAll: staged all pending changes")
	return nil
}

// Commit creates a commit with the given message from the staged changes.
// Author identity comes from the repository's git config. Returns
// ErrNothingToCommit when the worktree is clean.
func (r *Repository) Commit(message string) (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return "", fmt.Errorf("reading worktree status: %w", err)
	}
	if status.IsClean() {
		return "", ErrNothingToCommit
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{})
	if err != nil {
		return "", fmt.Errorf("creating commit: %w", err)
	}

	logDebug("[git] Commit: created %s", hash)
	return hash.String(), nil
}
