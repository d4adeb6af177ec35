// Package git enumerates repository history for changelog processing.
// It uses the go-git library for core operations (commit walk, parent tree
// diffs) so no git CLI installation is required. Commit text can also come
// from standard input or raw `git log` output, which is what the commit-msg
// hook feeds us.
package git

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Commit is one history entry as consumed by changelog classification.
type Commit struct {
	// ID is the commit hash, or a synthetic marker for commits read from
	// standard input.
	ID string
	// Message is the full commit message: title line, blank line, body.
	Message string
	// Files are the changed paths relative to the repository root.
	Files []string
}

// Source yields commits newest first.
type Source interface {
	Commits() ([]Commit, error)
}

// RepoSource reads commit history from a git repository.
type RepoSource struct {
	// Path is the repository location, empty means the working directory.
	Path string
	// StopAt optionally names a commit. The walk ends when it is reached,
	// so the named commit and its ancestors are never yielded.
	StopAt string
}

// Commits walks history from HEAD, newest first. Merge commits are not
// yielded.
func (s *RepoSource) Commits() ([]Commit, error) {
	repo, err := openRepo(s.Path)
	if err != nil {
		return nil, err
	}
	return readCommits(repo, s.StopAt)
}

// openRepo opens the repository at path, searching parent directories for
// the .git directory the way the git CLI does.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

func readCommits(repo *git.Repository, stopAt string) ([]Commit, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if stopAt != "" && c.Hash.String() == stopAt {
			return storer.ErrStop
		}
		if c.NumParents() > 1 {
			return nil
		}
		files, err := changedFiles(c)
		if err != nil {
			return fmt.Errorf("listing changed files of %s: %w", c.Hash, err)
		}
		commits = append(commits, Commit{
			ID:      c.Hash.String(),
			Message: c.Message,
			Files:   files,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

// changedFiles lists the paths a commit touches, diffing its tree against
// the first parent. For a root commit every file of the tree counts.
func changedFiles(c *object.Commit) ([]string, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}

	if c.NumParents() == 0 {
		var files []string
		err := tree.Files().ForEach(func(f *object.File) error {
			files = append(files, f.Name)
			return nil
		})
		return files, err
	}

	parent, err := c.Parent(0)
	if err != nil {
		return nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}
	changes, err := parentTree.Diff(tree)
	if err != nil {
		return nil, err
	}

	var files []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			files = append(files, name)
		}
	}
	for _, ch := range changes {
		// renames carry both sides
		add(ch.From.Name)
		add(ch.To.Name)
	}
	return files, nil
}
