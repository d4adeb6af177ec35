package changelog

import (
	"fmt"
	"strings"

	"github.com/mkchlog/mkchlog/internal/config"
	"github.com/mkchlog/mkchlog/internal/git"
)

// Classifier turns commits into classification results. It is stateful:
// commits must be fed newest first, because the skip-commits-up-to and
// projects.since-commit bounds flip behavior once the walk reaches the
// named commit and stay flipped for everything older.
type Classifier struct {
	cfg     *config.Config
	skipSet map[string]bool

	// pastSkipBound is true from the skip-commits-up-to commit on.
	pastSkipBound bool
	// pastSinceCommit is true from the projects.since-commit commit on.
	// Commits in that range predate the project split and belong to the
	// default project implicitly.
	pastSinceCommit bool
}

func NewClassifier(cfg *config.Config) *Classifier {
	skip := make(map[string]bool, len(cfg.SkipCommitsList))
	for _, id := range cfg.SkipCommitsList {
		skip[id] = true
	}
	return &Classifier{cfg: cfg, skipSet: skip}
}

// Classify processes the next commit of the newest-first walk.
func (cl *Classifier) Classify(c git.Commit) Result {
	if cl.cfg.SkipCommitsUpTo != "" && c.ID == cl.cfg.SkipCommitsUpTo {
		cl.pastSkipBound = true
	}
	if p := cl.cfg.Projects; p != nil && p.SinceCommit != "" && c.ID == p.SinceCommit {
		cl.pastSinceCommit = true
	}

	if cl.pastSkipBound || cl.skipSet[c.ID] {
		return Result{CommitID: c.ID, Outcome: Skipped}
	}

	block, ok := ExtractBlock(c.Message)
	if !ok {
		return reject(c, MissingMetadata, "commit message has no 'changelog:' entry")
	}
	meta, err := ParseMetadata(block.Raw)
	if err != nil {
		return reject(c, MalformedMetadata, err.Error())
	}
	if meta.Skip {
		return Result{CommitID: c.ID, Outcome: Skipped}
	}

	path, err := cl.resolveSection(meta.Section)
	if err != nil {
		return reject(c, UnknownSection, err.Error())
	}
	project, perr := cl.resolveProject(meta, c)
	if perr != nil {
		return reject(c, ProjectResolution, perr.Error())
	}
	if meta.OnlyTitle && meta.Description != nil && *meta.Description != "" {
		return reject(c, ConflictingFields, "'only-title' is set but the entry also has a description")
	}

	title := meta.Title
	if title == "" {
		title = block.Title
	}
	description := ""
	if !meta.OnlyTitle {
		if meta.Description != nil {
			description = *meta.Description
		} else {
			description = block.Description
		}
	}

	return Result{
		CommitID: c.ID,
		Outcome:  Accepted,
		Entry: &Entry{
			Section:     path,
			Title:       title,
			Description: description,
			Project:     project,
			CommitID:    c.ID,
		},
	}
}

func (cl *Classifier) resolveSection(raw string) (SectionPath, error) {
	parts := strings.Split(raw, ".")
	var top, sub string
	switch len(parts) {
	case 1:
		top = parts[0]
	case 2:
		top, sub = parts[0], parts[1]
	default:
		return SectionPath{}, fmt.Errorf("invalid section path %q, sections nest one level at most", raw)
	}
	if !cl.cfg.Sections.Resolve(top, sub) {
		return SectionPath{}, fmt.Errorf("unknown section %q", raw)
	}
	return SectionPath{Top: top, Sub: sub}, nil
}

func (cl *Classifier) resolveProject(meta Metadata, c git.Commit) (string, *ProjectError) {
	projects := cl.cfg.Projects
	if projects == nil {
		// Single implicit project. A declared 'project:' carries no
		// meaning here and is ignored.
		return "", nil
	}
	if cl.pastSinceCommit {
		return projects.Default, nil
	}
	return ResolveProject(projects, meta.Project, c.Files)
}

func reject(c git.Commit, kind RejectionKind, reason string) Result {
	return Result{
		CommitID: c.ID,
		Outcome:  Rejected,
		Rejection: &Rejection{
			CommitID: c.ID,
			Kind:     kind,
			Reason:   reason,
			Excerpt:  firstLine(c.Message),
		},
	}
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}
