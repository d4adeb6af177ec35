// Package template generates the commit message skeleton for the
// prepare-commit-msg git hook. The skeleton pre-fills the changelog block
// so commit authors only have to pick a section and write the text.
package template

import (
	"fmt"
	"io"
	"strings"

	"github.com/mkchlog/mkchlog/internal/config"
)

// Generate writes the changelog skeleton for a commit touching the given
// staged files. With projects configured, the project line is filled in
// when the staged files pin it down to exactly one project.
func Generate(w io.Writer, cfg *config.Config, staged []string) error {
	var b strings.Builder
	b.WriteString("\n\nchangelog:\n")

	if cfg.Projects != nil {
		detected, err := detectProjects(cfg.Projects, staged)
		if err != nil {
			return err
		}
		switch len(detected) {
		case 1:
			fmt.Fprintf(&b, "  project: %s\n", detected[0])
		case 0:
			b.WriteString("  project:\n")
			fmt.Fprintf(&b, "# Set the project this commit belongs to, one of: %s\n",
				strings.Join(cfg.Projects.Names(), ", "))
		default:
			b.WriteString("  project:\n")
			fmt.Fprintf(&b, "# The staged files span several projects, set one of: %s\n",
				strings.Join(detected, ", "))
		}
	}

	b.WriteString("  section:\n")
	writeSectionList(&b, cfg.Sections)

	_, err := io.WriteString(w, b.String())
	return err
}

// detectProjects maps every staged file to the first configured project
// covering it and returns the distinct project names in detection order.
// A file outside every project is an error, it means the configured
// directories are out of date.
func detectProjects(projects *config.Projects, staged []string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for _, file := range staged {
		name, ok := projectFor(projects, file)
		if !ok {
			return nil, fmt.Errorf("could not determine project for file %q, is the directory set correctly in the config file?", file)
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

func projectFor(projects *config.Projects, file string) (string, bool) {
	for _, p := range projects.List {
		if p.Covers(file) {
			return p.Name, true
		}
	}
	return "", false
}

// writeSectionList appends the commented section reference. Sections
// without subsections appear under their own id, sections with
// subsections under the dotted path of each subsection. Titles line up
// two spaces past the longest path.
func writeSectionList(b *strings.Builder, sections *config.SectionTree) {
	type row struct {
		path  string
		title string
	}
	var rows []row
	longest := 0
	addRow := func(path, title string) {
		rows = append(rows, row{path: path, title: title})
		if len(path) > longest {
			longest = len(path)
		}
	}

	for _, id := range sections.TopLevel() {
		sec, ok := sections.Get(id)
		if !ok {
			continue
		}
		if len(sec.Subsections) == 0 {
			addRow(sec.ID, sec.Title)
			continue
		}
		for _, subID := range sec.Subsections {
			if sub, ok := sections.Get(subID); ok {
				addRow(sec.ID+"."+sub.ID, sub.Title)
			}
		}
	}

	b.WriteString("#\n# Valid changelog sections:\n#\n")
	for _, r := range rows {
		fmt.Fprintf(b, "# * %s%s%s\n", r.path, strings.Repeat(" ", longest-len(r.path)+2), r.title)
	}
}
