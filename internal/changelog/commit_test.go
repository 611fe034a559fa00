package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConventionalCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit RawCommit
		want   ConventionalCommit
		wantOK bool
	}{
		"type and subject": {
			commit: RawCommit{Hash: "abc123", Subject: "feat: add export command"},
			want: ConventionalCommit{
				Hash:    "abc123",
				Type:    "feat",
				Subject: "add export command",
				Raw:     "feat: add export command",
			},
			wantOK: true,
		},
		"scoped": {
			commit: RawCommit{Hash: "def456", Subject: "fix(parser): handle empty body"},
			want: ConventionalCommit{
				Hash:    "def456",
				Type:    "fix",
				Scope:   "parser",
				Subject: "handle empty body",
				Raw:     "fix(parser): handle empty body",
			},
			wantOK: true,
		},
		"uppercase type is normalized": {
			commit: RawCommit{Subject: "FEAT: Shout Mode"},
			want: ConventionalCommit{
				Type:    "feat",
				Subject: "Shout Mode",
				Raw:     "FEAT: Shout Mode",
			},
			wantOK: true,
		},
		"bang marks breaking": {
			commit: RawCommit{Subject: "feat!: drop v1 api"},
			want: ConventionalCommit{
				Type:     "feat",
				Subject:  "drop v1 api",
				Raw:      "feat!: drop v1 api",
				Breaking: true,
			},
			wantOK: true,
		},
		"scoped bang": {
			commit: RawCommit{Subject: "refactor(core)!: rework pipeline"},
			want: ConventionalCommit{
				Type:     "refactor",
				Scope:    "core",
				Subject:  "rework pipeline",
				Raw:      "refactor(core)!: rework pipeline",
				Breaking: true,
			},
			wantOK: true,
		},
		"surrounding whitespace trimmed from subject": {
			commit: RawCommit{Subject: "perf:   faster sort  "},
			want: ConventionalCommit{
				Type:    "perf",
				Subject: "faster sort",
				Raw:     "perf:   faster sort  ",
			},
			wantOK: true,
		},
		"non-conventional subject": {
			commit: RawCommit{Subject: "update stuff"},
			wantOK: false,
		},
		"unknown type": {
			commit: RawCommit{Subject: "wip: half done"},
			wantOK: false,
		},
		"missing description": {
			commit: RawCommit{Subject: "feat:"},
			wantOK: false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseConventionalCommit(tt.commit)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseConventionalCommit_BreakingBody(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body         string
		wantBreaking bool
	}{
		"breaking change footer": {
			body:         "long description\n\nBREAKING CHANGE: removed the legacy flag",
			wantBreaking: true,
		},
		"hyphenated footer": {
			body:         "BREAKING-CHANGE: renamed config keys",
			wantBreaking: true,
		},
		"case-insensitive": {
			body:         "details\nbreaking change: anything goes",
			wantBreaking: true,
		},
		"mid-line mention is not a footer": {
			body:         "this is not a BREAKING CHANGE: honest",
			wantBreaking: false,
		},
		"empty body": {
			body:         "",
			wantBreaking: false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, ok := ParseConventionalCommit(RawCommit{Subject: "fix: something", Body: tt.body})
			require.True(t, ok)
			assert.Equal(t, tt.wantBreaking, c.Breaking)
		})
	}
}

func TestNormalizeCommit(t *testing.T) {
	t.Parallel()

	withScope := ConventionalCommit{Type: "feat", Scope: "UI", Subject: "Add Button"}
	assert.Equal(t, "feat(ui): add button", NormalizeCommit(withScope))

	withoutScope := ConventionalCommit{Type: "fix", Subject: "Trim Whitespace"}
	assert.Equal(t, "fix: trim whitespace", NormalizeCommit(withoutScope))
}

func TestIsVisibleType(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commitType string
		verbose    bool
		want       bool
	}{
		"feat always visible":          {commitType: "feat", verbose: false, want: true},
		"fix always visible":           {commitType: "fix", verbose: false, want: true},
		"perf always visible":          {commitType: "perf", verbose: false, want: true},
		"revert always visible":        {commitType: "revert", verbose: false, want: true},
		"docs hidden by default":       {commitType: "docs", verbose: false, want: false},
		"chore hidden by default":      {commitType: "chore", verbose: false, want: false},
		"docs visible when verbose":    {commitType: "docs", verbose: true, want: true},
		"unknown hidden by default":    {commitType: "wip", verbose: false, want: false},
		"unknown visible when verbose": {commitType: "wip", verbose: true, want: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, IsVisibleType(tt.commitType, tt.verbose))
		})
	}
}

func TestIsCommitType(t *testing.T) {
	t.Parallel()

	assert.True(t, IsCommitType("feat"))
	assert.True(t, IsCommitType("CHORE"))
	assert.False(t, IsCommitType("wip"))
}
