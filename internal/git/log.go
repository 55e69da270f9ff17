package git

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// CommitInfo is one commit from the history walk.
type CommitInfo struct {
	Hash    string
	Message string
	Author  string
	When    time.Time
}

// CommitsSince returns commits reachable from HEAD, newest first, stopping
// before the boundary commit. A zero boundary hash returns the full history.
// Returns an empty slice when HEAD is the boundary.
func (r *Repository) CommitsSince(boundary plumbing.Hash) ([]CommitInfo, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}
	return r.CommitsBetween(boundary, head.Hash())
}

// CommitsBetween returns commits reachable from 'to', newest first, stopping
// before 'from'. A zero 'from' hash walks the entire history below 'to'.
func (r *Repository) CommitsBetween(from, to plumbing.Hash) ([]CommitInfo, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: to})
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}
	defer iter.Close()

	var commits []CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == from {
			return storer.ErrStop
		}
		commits = append(commits, CommitInfo{
			Hash:    c.Hash.String(),
			Message: c.Message,
			Author:  c.Author.Name,
			When:    c.Author.When,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commit log: %w", err)
	}

	logDebug("[git] CommitsBetween: %d commits", len(commits))
	return commits, nil
}

// CommitTime returns the author timestamp of the given commit.
func (r *Repository) CommitTime(hash plumbing.Hash) (time.Time, error) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	return c.Author.When, nil
}
