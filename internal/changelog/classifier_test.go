package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkchlog/mkchlog/internal/config"
	"github.com/mkchlog/mkchlog/internal/git"
)

func testSections(t *testing.T) *config.SectionTree {
	t.Helper()
	tree := config.NewSectionTree()
	for _, sec := range []config.Section{
		{ID: "security", Title: "Security", Description: "This section contains very important security-related changes."},
		{ID: "vuln_fixes", Title: "Vulnerability fixes", Parent: "security"},
		{ID: "features", Title: "New features"},
		{ID: "bug_fixes", Title: "Fixed bugs"},
		{ID: "perf", Title: "Performance improvements"},
		{ID: "dev", Title: "Development", Description: "Internal changes without user impact."},
	} {
		require.NoError(t, tree.Add(sec))
	}
	return tree
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{Sections: testSections(t)}
}

func commit(id, message string, files ...string) git.Commit {
	return git.Commit{ID: id, Message: message, Files: files}
}

func TestClassifyOutcomes(t *testing.T) {
	tests := map[string]struct {
		message     string
		wantOutcome Outcome
		wantKind    RejectionKind
		wantReason  string
	}{
		"skip scalar": {
			message:     "Update dependencies\n\nchangelog: skip",
			wantOutcome: Skipped,
		},
		"skip mapping": {
			message:     "Update dependencies\n\nchangelog:\n    skip: true",
			wantOutcome: Skipped,
		},
		"tab-indented skip marker": {
			message:     "Fix typo\n\n\tchangelog: skip",
			wantOutcome: Skipped,
		},
		"tab-indented marker with entry fields": {
			message:     "Add feature\n\n\tchangelog:\n    section: features",
			wantOutcome: Accepted,
		},
		"valid entry": {
			message:     "Add feature\n\nchangelog:\n    section: features",
			wantOutcome: Accepted,
		},
		"missing block": {
			message:     "Add feature without any metadata",
			wantOutcome: Rejected,
			wantKind:    MissingMetadata,
			wantReason:  "no 'changelog:' entry",
		},
		"broken yaml": {
			message:     "Add feature\n\nchangelog:\n    section: [",
			wantOutcome: Rejected,
			wantKind:    MalformedMetadata,
			wantReason:  "not valid YAML",
		},
		"unknown section": {
			message:     "Add feature\n\nchangelog:\n    section: gui",
			wantOutcome: Rejected,
			wantKind:    UnknownSection,
			wantReason:  `unknown section "gui"`,
		},
		"unknown subsection": {
			message:     "Add feature\n\nchangelog:\n    section: security.hotfixes",
			wantOutcome: Rejected,
			wantKind:    UnknownSection,
			wantReason:  `unknown section "security.hotfixes"`,
		},
		"subsection cannot be addressed as top level": {
			message:     "Add feature\n\nchangelog:\n    section: vuln_fixes",
			wantOutcome: Rejected,
			wantKind:    UnknownSection,
			wantReason:  `unknown section "vuln_fixes"`,
		},
		"path nesting too deep": {
			message:     "Add feature\n\nchangelog:\n    section: security.vuln_fixes.extra",
			wantOutcome: Rejected,
			wantKind:    UnknownSection,
			wantReason:  "one level at most",
		},
		"only-title next to a description": {
			message:     "Add feature\n\nchangelog:\n    section: features\n    only-title: true\n    description: Boom",
			wantOutcome: Rejected,
			wantKind:    ConflictingFields,
			wantReason:  "'only-title'",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cl := NewClassifier(testConfig(t))
			res := cl.Classify(commit("c1", tt.message))

			require.Equal(t, tt.wantOutcome, res.Outcome)
			if tt.wantOutcome != Rejected {
				assert.Nil(t, res.Rejection)
				return
			}
			require.NotNil(t, res.Rejection)
			assert.Equal(t, "c1", res.Rejection.CommitID)
			assert.Equal(t, tt.wantKind, res.Rejection.Kind)
			assert.Contains(t, res.Rejection.Reason, tt.wantReason)
		})
	}
}

func TestClassifyEntryComposition(t *testing.T) {
	tests := map[string]struct {
		message string
		want    Entry
	}{
		"first line is the fallback title": {
			message: "Fix crash on empty input\n\nchangelog:\n    section: bug_fixes",
			want: Entry{
				Section: SectionPath{Top: "bug_fixes"},
				Title:   "Fix crash on empty input",
			},
		},
		"explicit title wins": {
			message: "Fix crash on empty input\n\nchangelog:\n    section: bug_fixes\n    title: Crash fix",
			want: Entry{
				Section: SectionPath{Top: "bug_fixes"},
				Title:   "Crash fix",
			},
		},
		"body is unwrapped into the description": {
			message: "Fix crash\n\nThe parser crashed when the input\nwas completely empty.\n\nFound by fuzzing.\n\nchangelog:\n    section: bug_fixes",
			want: Entry{
				Section:     SectionPath{Top: "bug_fixes"},
				Title:       "Fix crash",
				Description: "The parser crashed when the input was completely empty.\n\nFound by fuzzing.",
			},
		},
		"explicit description wins over the body": {
			message: "Fix crash\n\nLong internal explanation.\n\nchangelog:\n    section: bug_fixes\n    description: The tool no longer crashes on empty input.",
			want: Entry{
				Section:     SectionPath{Top: "bug_fixes"},
				Title:       "Fix crash",
				Description: "The tool no longer crashes on empty input.",
			},
		},
		"only-title drops the body": {
			message: "Setup CI\n\nRuns the tests on every push.\n\nchangelog:\n    section: dev\n    only-title: true",
			want: Entry{
				Section: SectionPath{Top: "dev"},
				Title:   "Setup CI",
			},
		},
		"legacy alias drops the body too": {
			message: "Setup CI\n\nRuns the tests on every push.\n\nchangelog:\n    section: dev\n    title-is-enough: true",
			want: Entry{
				Section: SectionPath{Top: "dev"},
				Title:   "Setup CI",
			},
		},
		"explicitly empty description beats the body": {
			message: "Setup CI\n\nRuns the tests on every push.\n\nchangelog:\n    section: dev\n    description: ''",
			want: Entry{
				Section: SectionPath{Top: "dev"},
				Title:   "Setup CI",
			},
		},
		"subsection entry": {
			message: "Fix buffer overflow\n\nchangelog:\n    section: security.vuln_fixes",
			want: Entry{
				Section: SectionPath{Top: "security", Sub: "vuln_fixes"},
				Title:   "Fix buffer overflow",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cl := NewClassifier(testConfig(t))
			res := cl.Classify(commit("c1", tt.message))

			require.Equal(t, Accepted, res.Outcome, "rejection: %+v", res.Rejection)
			require.NotNil(t, res.Entry)
			tt.want.CommitID = "c1"
			assert.Equal(t, &tt.want, res.Entry)
		})
	}
}

func TestClassifySkipBounds(t *testing.T) {
	cfg := testConfig(t)
	cfg.SkipCommitsUpTo = "c2"
	cfg.SkipCommitsList = []string{"c4"}
	cl := NewClassifier(cfg)

	// newest first, c2 is the bound and c4 is individually listed
	res := cl.Classify(commit("c5", "Add feature\n\nchangelog:\n    section: features"))
	assert.Equal(t, Accepted, res.Outcome)

	res = cl.Classify(commit("c4", "No metadata at all"))
	assert.Equal(t, Skipped, res.Outcome, "listed commits skip before parsing")

	res = cl.Classify(commit("c3", "Add feature\n\nchangelog:\n    section: features"))
	assert.Equal(t, Accepted, res.Outcome, "the bound is not reached yet")

	res = cl.Classify(commit("c2", "Pre-changelog commit without metadata"))
	assert.Equal(t, Skipped, res.Outcome, "the bound commit itself is skipped")

	res = cl.Classify(commit("c1", "Also without metadata"))
	assert.Equal(t, Skipped, res.Outcome, "everything older than the bound is skipped")
}

func TestClassifySinceCommit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Projects = &config.Projects{
		List: []config.Project{
			{Name: "mkchlog", Dirs: []string{".", "mkchlog"}},
			{Name: "mkchlog-action", Dirs: []string{"mkchlog-action"}},
		},
		SinceCommit: "c2",
		Default:     "mkchlog",
	}
	cl := NewClassifier(cfg)

	res := cl.Classify(commit("c4", "Add action step\n\nchangelog:\n    section: features", "mkchlog-action/index.js"))
	require.Equal(t, Accepted, res.Outcome)
	assert.Equal(t, "mkchlog-action", res.Entry.Project)

	res = cl.Classify(commit("c3", "Touch everything\n\nchangelog:\n    section: dev", "mkchlog/a.go", "mkchlog-action/b.js"))
	require.Equal(t, Rejected, res.Outcome)
	assert.Equal(t, ProjectResolution, res.Rejection.Kind)

	res = cl.Classify(commit("c2", "Old change\n\nchangelog:\n    section: bug_fixes", "legacy/code.c"))
	require.Equal(t, Accepted, res.Outcome)
	assert.Equal(t, "mkchlog", res.Entry.Project, "commits at the cutoff fall back to the default project")

	res = cl.Classify(commit("c1", "Older change\n\nchangelog:\n    section: bug_fixes\n    project: mkchlog-action", "legacy/code.c"))
	require.Equal(t, Accepted, res.Outcome)
	assert.Equal(t, "mkchlog", res.Entry.Project, "declarations before the cutoff are ignored")
}

func TestClassifyProjectRejections(t *testing.T) {
	cfg := testConfig(t)
	cfg.Projects = &config.Projects{
		List: []config.Project{
			{Name: "mkchlog", Dirs: []string{".", "mkchlog"}},
			{Name: "mkchlog-action", Dirs: []string{"mkchlog-action"}},
		},
	}

	tests := map[string]struct {
		message    string
		files      []string
		wantReason string
	}{
		"declaration contradicts the files": {
			message:    "Add action step\n\nchangelog:\n    section: features\n    project: mkchlog",
			files:      []string{"mkchlog-action/index.js"},
			wantReason: "declares project",
		},
		"spanning files without declaration": {
			message:    "Refactor\n\nchangelog:\n    section: dev",
			files:      []string{"mkchlog/a.go", "mkchlog-action/b.js"},
			wantReason: "add 'project:'",
		},
		"unknown project": {
			message:    "Add feature\n\nchangelog:\n    section: features\n    project: frontend",
			files:      []string{"README.md"},
			wantReason: `project "frontend" is not configured`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cl := NewClassifier(cfg)
			res := cl.Classify(commit("c1", tt.message, tt.files...))

			require.Equal(t, Rejected, res.Outcome)
			assert.Equal(t, ProjectResolution, res.Rejection.Kind)
			assert.Contains(t, res.Rejection.Reason, tt.wantReason)
		})
	}
}

func TestClassifyProjectWithoutProjectsConfig(t *testing.T) {
	cl := NewClassifier(testConfig(t))

	res := cl.Classify(commit("c1", "Add feature\n\nchangelog:\n    section: features\n    project: mkchlog"))
	require.Equal(t, Accepted, res.Outcome, "rejection: %+v", res.Rejection)
	assert.Empty(t, res.Entry.Project, "declared projects have no meaning without a projects config")

	res = cl.Classify(commit("c2", "Add feature\n\nchangelog:\n    section: features"))
	require.Equal(t, Accepted, res.Outcome)
	assert.Empty(t, res.Entry.Project)
}
