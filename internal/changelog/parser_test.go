package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string {
	return &s
}

func TestExtractBlock(t *testing.T) {
	tests := map[string]struct {
		message string
		want    Block
		found   bool
	}{
		"no changelog block": {
			message: "Fix typo\n\nJust a typo, nothing to see here.",
			found:   false,
		},
		"mention in prose does not count": {
			message: "Improve the changelog: generation docs\n\nBody text.",
			found:   false,
		},
		"minimal block": {
			message: "Add feature\n\nchangelog:\n    section: features\n",
			want: Block{
				Raw:   "changelog:\n    section: features\n",
				Title: "Add feature",
			},
			found: true,
		},
		"body becomes the fallback description": {
			message: "Add feature\n\nThis adds the thing\nacross two lines.\n\nAnd a second paragraph.\n\nchangelog:\n    section: features",
			want: Block{
				Raw:         "changelog:\n    section: features",
				Title:       "Add feature",
				Description: "This adds the thing across two lines.\n\nAnd a second paragraph.",
			},
			found: true,
		},
		"indented marker is re-anchored": {
			message: "Add feature\n\n  changelog:\n      section: features",
			want: Block{
				Raw:   "changelog:\n      section: features",
				Title: "Add feature",
			},
			found: true,
		},
		"tab-indented marker is re-anchored": {
			message: "Fix typo\n\n\tchangelog: skip",
			want: Block{
				Raw:   "changelog: skip",
				Title: "Fix typo",
			},
			found: true,
		},
		"marker on the first line leaves no fallbacks": {
			message: "changelog: skip",
			want:    Block{Raw: "changelog: skip"},
			found:   true,
		},
		"windows line endings": {
			message: "Add feature\r\n\r\nchangelog:\r\n    section: features\r\n",
			want: Block{
				Raw:   "changelog:\n    section: features\n",
				Title: "Add feature",
			},
			found: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, found := ExtractBlock(tt.message)
			require.Equal(t, tt.found, found)
			if found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseMetadata(t *testing.T) {
	tests := map[string]struct {
		raw     string
		want    Metadata
		wantErr string
	}{
		"skip scalar": {
			raw:  "changelog: skip",
			want: Metadata{Skip: true},
		},
		"skip mapping": {
			raw:  "changelog:\n    skip: true",
			want: Metadata{Skip: true},
		},
		"skip false still needs a section": {
			raw:     "changelog:\n    skip: false",
			wantErr: "missing 'section'",
		},
		"full entry": {
			raw: "changelog:\n" +
				"    section: features\n" +
				"    title: Optional commit ID list\n" +
				"    description: You can now skip specific commits.\n" +
				"    project: mkchlog",
			want: Metadata{
				Section:     "features",
				Title:       "Optional commit ID list",
				Description: strptr("You can now skip specific commits."),
				Project:     "mkchlog",
			},
		},
		"subsection path": {
			raw:  "changelog:\n    section: security.vuln_fixes",
			want: Metadata{Section: "security.vuln_fixes"},
		},
		"only-title": {
			raw:  "changelog:\n    section: dev\n    only-title: true",
			want: Metadata{Section: "dev", OnlyTitle: true},
		},
		"legacy title-is-enough alias": {
			raw:  "changelog:\n    section: dev\n    title-is-enough: true",
			want: Metadata{Section: "dev", OnlyTitle: true},
		},
		"both only-title spellings": {
			raw:     "changelog:\n    section: dev\n    only-title: true\n    title-is-enough: true",
			wantErr: "cannot both be present",
		},
		"legacy inherit is ignored": {
			raw:  "changelog:\n    inherit: all\n    section: features",
			want: Metadata{Section: "features"},
		},
		"unknown key": {
			raw:     "changelog:\n    section: features\n    priority: high",
			wantErr: `unknown key "priority"`,
		},
		"list of project entries": {
			raw:     "changelog:\n    - project: mkchlog\n      section: features",
			wantErr: "single project entry, not a list",
		},
		"missing section": {
			raw:     "changelog:\n    title: Oops",
			wantErr: "missing 'section'",
		},
		"empty value": {
			raw:     "changelog:",
			wantErr: "changelog entry is empty",
		},
		"unrecognized scalar": {
			raw:     "changelog: yes please",
			wantErr: "unrecognized changelog value",
		},
		"invalid yaml": {
			raw:     "changelog:\n    section: [unclosed",
			wantErr: "not valid YAML",
		},
		"section must be a string": {
			raw:     "changelog:\n    section:\n        - features",
			wantErr: "'section' in changelog entry must be a string",
		},
		"only-title must be a bool": {
			raw:     "changelog:\n    section: dev\n    only-title: maybe",
			wantErr: "must be true or false",
		},
		"root siblings are ignored": {
			raw:  "changelog:\n    section: features\nunrelated: trailer",
			want: Metadata{Section: "features"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseMetadata(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
