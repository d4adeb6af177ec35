package changelog

import (
	"io"

	"github.com/mkchlog/mkchlog/internal/config"
	"github.com/mkchlog/mkchlog/internal/errors"
	"github.com/mkchlog/mkchlog/internal/git"
)

// Engine runs classification over a commit source.
type Engine struct {
	Config *config.Config
	Source git.Source
}

// Report sums up one classification run over the whole commit range.
type Report struct {
	Scanned    int
	Skipped    int
	Accepted   []*Entry
	Rejections []Rejection
}

// Ok reports whether every scanned commit was either skipped or accepted.
func (r *Report) Ok() bool {
	return len(r.Rejections) == 0
}

// Check classifies every commit of the source. It never stops at the
// first bad commit, the report carries all rejections so they can be
// fixed in one go.
func (e *Engine) Check() (*Report, error) {
	commits, err := e.Source.Commits()
	if err != nil {
		return nil, err
	}

	cl := NewClassifier(e.Config)
	report := &Report{}
	for _, c := range commits {
		res := cl.Classify(c)
		report.Scanned++
		switch res.Outcome {
		case Skipped:
			report.Skipped++
		case Accepted:
			report.Accepted = append(report.Accepted, res.Entry)
		case Rejected:
			report.Rejections = append(report.Rejections, *res.Rejection)
		}
	}
	return report, nil
}

// Gen renders the changelog to w. A non-empty project keeps only the
// entries of that project. Any rejected commit aborts generation, the
// check command exists to list them.
func (e *Engine) Gen(w io.Writer, project string) error {
	report, err := e.Check()
	if err != nil {
		return err
	}
	if !report.Ok() {
		return errors.CommitsRejected(len(report.Rejections))
	}

	entries := report.Accepted
	if project != "" {
		filtered := make([]*Entry, 0, len(entries))
		for _, en := range entries {
			if en.Project == project {
				filtered = append(filtered, en)
			}
		}
		entries = filtered
	}
	return Render(w, e.Config.Sections, entries)
}
