package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkchlog/mkchlog/internal/config"
)

func twoProjects() *config.Projects {
	return &config.Projects{
		List: []config.Project{
			{Name: "mkchlog", Dirs: []string{".", "mkchlog"}},
			{Name: "mkchlog-action", Dirs: []string{"mkchlog-action"}},
		},
	}
}

func TestResolveProject(t *testing.T) {
	tests := map[string]struct {
		declared string
		files    []string
		want     string
		wantKind ProjectErrorKind
		wantErr  bool
	}{
		"root file belongs to the dot project": {
			files: []string{"README.md"},
			want:  "mkchlog",
		},
		"directory match": {
			files: []string{"mkchlog/src/main.go", "README.md"},
			want:  "mkchlog",
		},
		"sibling directory with common prefix": {
			files: []string{"mkchlog-action/index.js"},
			want:  "mkchlog-action",
		},
		"declaration agreeing with the files": {
			declared: "mkchlog-action",
			files:    []string{"mkchlog-action/index.js"},
			want:     "mkchlog-action",
		},
		"declaration contradicting the files": {
			declared: "mkchlog",
			files:    []string{"mkchlog-action/index.js"},
			wantErr:  true,
			wantKind: ProjectMismatch,
		},
		"files spanning projects need a declaration": {
			files:    []string{"mkchlog/src/main.go", "mkchlog-action/index.js"},
			wantErr:  true,
			wantKind: ProjectMissingDeclaration,
		},
		"declaration settles spanning files": {
			declared: "mkchlog",
			files:    []string{"mkchlog/src/main.go", "mkchlog-action/index.js"},
			want:     "mkchlog",
		},
		"no files is ambiguous with several projects": {
			files:    nil,
			wantErr:  true,
			wantKind: ProjectMissingDeclaration,
		},
		"no files resolved by declaration": {
			declared: "mkchlog-action",
			files:    nil,
			want:     "mkchlog-action",
		},
		"unknown declared project": {
			declared: "frontend",
			files:    []string{"README.md"},
			wantErr:  true,
			wantKind: UnknownProject,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, perr := ResolveProject(twoProjects(), tt.declared, tt.files)
			if tt.wantErr {
				require.NotNil(t, perr)
				assert.Equal(t, tt.wantKind, perr.Kind)
				return
			}
			require.Nil(t, perr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveProjectSingleProject(t *testing.T) {
	projects := &config.Projects{
		List: []config.Project{{Name: "mkchlog", Dirs: []string{"."}}},
	}

	got, perr := ResolveProject(projects, "", nil)
	require.Nil(t, perr, "a commit without files is covered by the only project")
	assert.Equal(t, "mkchlog", got)

	_, perr = ResolveProject(projects, "", []string{"src/deep/file.go"})
	require.NotNil(t, perr, `"." covers root files only`)
	assert.Equal(t, ProjectMissingDeclaration, perr.Kind)
}

func TestProjectErrorMessages(t *testing.T) {
	mismatch := &ProjectError{Kind: ProjectMismatch, Declared: "mkchlog", Resolved: "mkchlog-action"}
	assert.Contains(t, mismatch.Error(), `files of project "mkchlog-action"`)
	assert.Contains(t, mismatch.Error(), `declares project "mkchlog"`)

	missing := &ProjectError{Kind: ProjectMissingDeclaration, Candidates: []string{"a", "b"}}
	assert.Contains(t, missing.Error(), "a, b")
	assert.Contains(t, missing.Error(), "add 'project:'")

	unknown := &ProjectError{Kind: UnknownProject, Declared: "frontend"}
	assert.Contains(t, unknown.Error(), `"frontend"`)
}
