// Package config loads and validates the .mkchlog.yml configuration file.
//
// The section tree keeps the declaration order of the YAML file, because
// that order drives the order of the rendered changelog. Scalar settings
// additionally accept environment overrides (MKCHLOG_GIT_PATH,
// MKCHLOG_SKIP_COMMITS_UP_TO).
package config

import (
	"fmt"
	"strings"
)

// Config is the parsed configuration. It is loaded once per invocation
// and not mutated afterwards.
type Config struct {
	// Sections is the declared section tree, in declaration order.
	Sections *SectionTree
	// Projects holds the multi-project settings, nil for single-project
	// repositories.
	Projects *Projects
	// SkipCommitsUpTo names a commit; that commit and everything before it
	// in history order is skipped.
	SkipCommitsUpTo string
	// SkipCommitsList names individual commits to skip.
	SkipCommitsList []string
	// GitPath is the repository path, empty for the working directory.
	GitPath string
}

// MultiProject reports whether the repository is partitioned into projects.
func (c *Config) MultiProject() bool {
	return c.Projects != nil && len(c.Projects.List) > 0
}

// Projects holds the multi-project repository settings.
type Projects struct {
	// List is the declared projects in declaration order.
	List []Project
	// SinceCommit names the migration cutoff: commits at or before it are
	// assigned Default without path matching.
	SinceCommit string
	// Default is the project assigned to commits at or before SinceCommit.
	Default string
}

// Names returns the declared project names in declaration order.
func (p *Projects) Names() []string {
	names := make([]string, len(p.List))
	for i, proj := range p.List {
		names[i] = proj.Name
	}
	return names
}

// Find returns the declared project with the given name.
func (p *Projects) Find(name string) (Project, bool) {
	for _, proj := range p.List {
		if proj.Name == name {
			return proj, true
		}
	}
	return Project{}, false
}

// Project is one named partition of the repository.
type Project struct {
	Name string
	// Dirs are the directory prefixes owned by the project. The special
	// entry "." owns files at the repository root only.
	Dirs []string
}

// Covers reports whether the file path falls under one of the project's
// directories. Matching is on path segment boundaries, so the directory
// "mkchlog" does not cover "mkchlog-action/main.yml".
func (p Project) Covers(file string) bool {
	for _, dir := range p.Dirs {
		if dir == "." {
			if !strings.Contains(file, "/") {
				return true
			}
			continue
		}
		d := strings.TrimSuffix(dir, "/")
		if file == d || strings.HasPrefix(file, d+"/") {
			return true
		}
	}
	return false
}

// Section is one named bucket of the changelog.
type Section struct {
	// ID is the identifier used in commit messages, never shown to users.
	ID string
	// Title is the heading rendered in the changelog.
	Title string
	// Description is rendered once below the heading, optional.
	Description string
	// Parent is the enclosing section id, empty for top-level sections.
	Parent string
	// Subsections are the nested section ids in declaration order.
	Subsections []string
}

// SectionTree is the declared section hierarchy. Sections are stored in a
// flat table keyed by id with explicit ordered id lists per level, so
// unknown-id lookups are O(1) and render order is independent of lookup.
type SectionTree struct {
	order []string
	nodes map[string]*Section
}

// NewSectionTree returns an empty tree.
func NewSectionTree() *SectionTree {
	return &SectionTree{nodes: make(map[string]*Section)}
}

// Add inserts a section into the tree. Ids must be unique across the whole
// tree, top-level and nested alike.
func (t *SectionTree) Add(sec Section) error {
	if _, exists := t.nodes[sec.ID]; exists {
		return fmt.Errorf("duplicate section id %q in config file", sec.ID)
	}
	s := sec
	t.nodes[s.ID] = &s
	if s.Parent == "" {
		t.order = append(t.order, s.ID)
	} else {
		parent, ok := t.nodes[s.Parent]
		if !ok {
			return fmt.Errorf("unknown parent section %q for subsection %q", s.Parent, s.ID)
		}
		parent.Subsections = append(parent.Subsections, s.ID)
	}
	return nil
}

// TopLevel returns the top-level section ids in declaration order.
func (t *SectionTree) TopLevel() []string {
	return t.order
}

// Get returns the section with the given id, from any level of the tree.
func (t *SectionTree) Get(id string) (*Section, bool) {
	sec, ok := t.nodes[id]
	return sec, ok
}

// Resolve reports whether the addressed section exists: top must name a
// top-level section and sub, when non-empty, one of its subsections.
func (t *SectionTree) Resolve(top, sub string) bool {
	parent, ok := t.nodes[top]
	if !ok || parent.Parent != "" {
		return false
	}
	if sub == "" {
		return true
	}
	child, ok := t.nodes[sub]
	return ok && child.Parent == top
}

// Len returns the number of sections in the tree, all levels included.
func (t *SectionTree) Len() int {
	return len(t.nodes)
}
