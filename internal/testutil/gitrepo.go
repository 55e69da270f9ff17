// Package testutil provides test fixtures for relflow, primarily throwaway
// git repositories built with go-git so tests never shell out to a git CLI.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RepoFixture is a temporary git repository for tests.
// The repository lives in a t.TempDir() and is cleaned up automatically.
type RepoFixture struct {
	T    *testing.T
	Dir  string
	Repo *git.Repository

	// commit timestamps advance by a minute per commit so history
	// ordering is deterministic
	clock time.Time
}

// NewRepoFixture initializes a fresh git repository with a configured
// author identity.
func NewRepoFixture(t *testing.T) *RepoFixture {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("initializing fixture repository: %v", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		t.Fatalf("reading fixture repository config: %v", err)
	}
	cfg.User.Name = "Fixture Author"
	cfg.User.Email = "fixture@example.com"
	if err := repo.SetConfig(cfg); err != nil {
		t.Fatalf("writing fixture repository config: %v", err)
	}

	return &RepoFixture{
		T:     t,
		Dir:   dir,
		Repo:  repo,
		clock: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// WriteFile writes a file under the repository root, creating parent
// directories as needed.
func (f *RepoFixture) WriteFile(rel, content string) {
	f.T.Helper()

	path := filepath.Join(f.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		f.T.Fatalf("creating fixture directories: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		f.T.Fatalf("writing fixture file %s: %v", rel, err)
	}
}

// ReadFile reads a file under the repository root.
func (f *RepoFixture) ReadFile(rel string) string {
	f.T.Helper()

	data, err := os.ReadFile(filepath.Join(f.Dir, rel))
	if err != nil {
		f.T.Fatalf("reading fixture file %s: %v", rel, err)
	}
	return string(data)
}

// CommitFile writes a file, stages everything, and commits with the given
// message. Returns the commit hash.
func (f *RepoFixture) CommitFile(rel, content, message string) plumbing.Hash {
	f.T.Helper()

	f.WriteFile(rel, content)
	return f.Commit(message)
}

// Commit stages all pending changes and creates a commit.
func (f *RepoFixture) Commit(message string) plumbing.Hash {
	f.T.Helper()

	worktree, err := f.Repo.Worktree()
	if err != nil {
		f.T.Fatalf("getting fixture worktree: %v", err)
	}
	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		f.T.Fatalf("staging fixture changes: %v", err)
	}

	f.clock = f.clock.Add(time.Minute)
	sig := &object.Signature{
		Name:  "Fixture Author",
		Email: "fixture@example.com",
		When:  f.clock,
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		f.T.Fatalf("creating fixture commit: %v", err)
	}
	return hash
}

// Tag creates a lightweight tag at HEAD.
func (f *RepoFixture) Tag(name string) {
	f.T.Helper()

	head, err := f.Repo.Head()
	if err != nil {
		f.T.Fatalf("getting fixture HEAD: %v", err)
	}
	if _, err := f.Repo.CreateTag(name, head.Hash(), nil); err != nil {
		f.T.Fatalf("creating fixture tag %s: %v", name, err)
	}
}

// TagAnnotated creates an annotated tag at HEAD.
func (f *RepoFixture) TagAnnotated(name, message string) {
	f.T.Helper()

	head, err := f.Repo.Head()
	if err != nil {
		f.T.Fatalf("getting fixture HEAD: %v", err)
	}

	f.clock = f.clock.Add(time.Minute)
	_, err = f.Repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Message: message,
		Tagger: &object.Signature{
			Name:  "Fixture Author",
			Email: "fixture@example.com",
			When:  f.clock,
		},
	})
	if err != nil {
		f.T.Fatalf("creating fixture annotated tag %s: %v", name, err)
	}
}

// HeadHash returns the current HEAD commit hash.
func (f *RepoFixture) HeadHash() plumbing.Hash {
	f.T.Helper()

	head, err := f.Repo.Head()
	if err != nil {
		f.T.Fatalf("getting fixture HEAD: %v", err)
	}
	return head.Hash()
}
