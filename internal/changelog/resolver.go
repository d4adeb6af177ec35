package changelog

import (
	"fmt"
	"strings"

	"github.com/mkchlog/mkchlog/internal/config"
)

// ProjectErrorKind tells how project resolution failed.
type ProjectErrorKind int

const (
	// ProjectMismatch: the declared project differs from the single
	// project covering the changed files.
	ProjectMismatch ProjectErrorKind = iota
	// ProjectMissingDeclaration: the changed files do not pin down a
	// single project and the entry declares none.
	ProjectMissingDeclaration
	// UnknownProject: the declared project is not in the configuration.
	UnknownProject
)

// ProjectError is a failed attempt to attribute a commit to a project.
type ProjectError struct {
	Kind       ProjectErrorKind
	Declared   string
	Resolved   string
	Candidates []string
}

func (e *ProjectError) Error() string {
	switch e.Kind {
	case ProjectMismatch:
		return fmt.Sprintf("commit changes files of project %q but declares project %q", e.Resolved, e.Declared)
	case ProjectMissingDeclaration:
		if len(e.Candidates) == 0 {
			return "changed files do not belong to any configured project, add 'project:' to the changelog entry"
		}
		return fmt.Sprintf("changed files are covered by projects %s, add 'project:' to the changelog entry",
			strings.Join(e.Candidates, ", "))
	case UnknownProject:
		return fmt.Sprintf("project %q is not configured", e.Declared)
	default:
		return "project resolution failed"
	}
}

// ResolveProject attributes a commit to a project. A project is a
// candidate when every changed file lies under one of its directories.
// Exactly one candidate resolves on its own and must agree with the
// declared project if there is one. With zero or several candidates the
// declaration decides; without one the commit cannot be attributed.
// A commit without file information is covered by every project.
func ResolveProject(projects *config.Projects, declared string, files []string) (string, *ProjectError) {
	if declared != "" {
		if _, ok := projects.Find(declared); !ok {
			return "", &ProjectError{Kind: UnknownProject, Declared: declared}
		}
	}

	var candidates []string
	for _, p := range projects.List {
		if coversAll(p, files) {
			candidates = append(candidates, p.Name)
		}
	}

	if len(candidates) == 1 {
		resolved := candidates[0]
		if declared == "" || declared == resolved {
			return resolved, nil
		}
		return "", &ProjectError{Kind: ProjectMismatch, Declared: declared, Resolved: resolved}
	}

	if declared != "" {
		return declared, nil
	}
	return "", &ProjectError{Kind: ProjectMissingDeclaration, Candidates: candidates}
}

func coversAll(p config.Project, files []string) bool {
	for _, f := range files {
		if !p.Covers(f) {
			return false
		}
	}
	return true
}
