package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHistory is an in-memory History for assembler tests.
type fakeHistory struct {
	tags    []string
	commits map[string][]RawCommit
	dates   map[string]string
	lastTag string
	remote  string
}

func (f *fakeHistory) ListTags() []string                 { return f.tags }
func (f *fakeHistory) CommitsAt(tag string) []RawCommit   { return f.commits[tag] }
func (f *fakeHistory) CommitsSince(ref string) []RawCommit { return nil }
func (f *fakeHistory) TagDate(tag string) string          { return f.dates[tag] }
func (f *fakeHistory) LastTag() string                    { return f.lastTag }
func (f *fakeHistory) RemoteURL() string                  { return f.remote }

func TestAssemble_PreReleaseRollup(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		tags: []string{"v1.0.0-rc.1", "v1.0.0"},
		commits: map[string][]RawCommit{
			"v1.0.0-rc.1": {{Hash: "a1", Subject: "fix: a"}},
			"v1.0.0":      {{Hash: "b2", Subject: "feat: b"}},
		},
		dates: map[string]string{
			"v1.0.0-rc.1": "2024-03-01",
			"v1.0.0":      "2024-03-15",
		},
	}

	releases, err := NewAssembler(history).Assemble()
	require.NoError(t, err)

	// The rc commits roll forward into the stable entry; exactly one
	// release group comes out, under the stable tag's own identity.
	require.Len(t, releases, 1)
	r := releases[0]
	assert.Equal(t, "1.0.0", r.Version)
	assert.Equal(t, "v1.0.0", r.Tag)
	assert.Equal(t, "v1.0.0", r.Display)
	assert.Equal(t, "2024-03-15", r.Date)

	require.Len(t, r.Commits, 2)
	assert.Equal(t, "a1", r.Commits[0].Hash)
	assert.Equal(t, "b2", r.Commits[1].Hash)
}

func TestAssemble_TrailingPreRelease(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		tags: []string{"v1.0.0-rc.1"},
		commits: map[string][]RawCommit{
			"v1.0.0-rc.1": {{Hash: "a1", Subject: "feat: a"}},
		},
		dates: map[string]string{"v1.0.0-rc.1": "2024-04-01"},
	}

	releases, err := NewAssembler(history).Assemble()
	require.NoError(t, err)

	require.Len(t, releases, 1)
	r := releases[0]
	assert.Equal(t, "1.0.0-rc.1", r.Version)
	assert.Equal(t, "v1.0.0-rc.1", r.Tag)
	assert.Equal(t, "2024-04-01", r.Date)
	require.Len(t, r.Commits, 1)
}

func TestAssemble_TrailingChainKeepsFirstIdentity(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		tags: []string{"v2.0.0-rc.1", "v2.0.0-rc.2"},
		commits: map[string][]RawCommit{
			"v2.0.0-rc.1": {{Hash: "a1", Subject: "feat: a"}},
			"v2.0.0-rc.2": {{Hash: "b2", Subject: "fix: b"}},
		},
		dates: map[string]string{
			"v2.0.0-rc.1": "2024-05-01",
			"v2.0.0-rc.2": "2024-05-08",
		},
	}

	releases, err := NewAssembler(history).Assemble()
	require.NoError(t, err)

	require.Len(t, releases, 1)
	r := releases[0]
	assert.Equal(t, "2.0.0-rc.1", r.Version, "first pre-release in the chain provides the identity")
	assert.Equal(t, "2024-05-01", r.Date)
	require.Len(t, r.Commits, 2)
}

func TestAssemble_CumulativeLogsDeduplicated(t *testing.T) {
	t.Parallel()

	// v1.0.0's log is cumulative: it repeats everything already attributed
	// to v0.9.0 plus one new feature. The shared set filters the repeats.
	history := &fakeHistory{
		tags: []string{"v0.9.0", "v1.0.0"},
		commits: map[string][]RawCommit{
			"v0.9.0": {
				{Hash: "a1", Subject: "fix: resolve crash"},
				{Hash: "b2", Subject: "feat: first feature"},
			},
			"v1.0.0": {
				{Hash: "a1", Subject: "fix: resolve crash"},
				{Hash: "b2", Subject: "feat: first feature"},
				{Hash: "c3", Subject: "feat: second feature"},
			},
		},
		dates: map[string]string{},
	}

	releases, err := NewAssembler(history).Assemble()
	require.NoError(t, err)

	require.Len(t, releases, 2)
	assert.Equal(t, "0.9.0", releases[0].Version)
	require.Len(t, releases[0].Commits, 2)

	assert.Equal(t, "1.0.0", releases[1].Version)
	require.Len(t, releases[1].Commits, 1)
	assert.Equal(t, "c3", releases[1].Commits[0].Hash)
}

func TestAssemble_NonConventionalCommitsExcluded(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		tags: []string{"v0.1.0"},
		commits: map[string][]RawCommit{
			"v0.1.0": {
				{Hash: "a1", Subject: "initial import"},
				{Hash: "b2", Subject: "feat: keep me"},
				{Hash: "c3", Subject: "wip: unknown type"},
			},
		},
		dates: map[string]string{},
	}

	releases, err := NewAssembler(history).Assemble()
	require.NoError(t, err)

	require.Len(t, releases, 1)
	require.Len(t, releases[0].Commits, 1)
	assert.Equal(t, "b2", releases[0].Commits[0].Hash)
}

func TestAssemble_MissingDateIsTolerated(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		tags: []string{"v0.1.0"},
		commits: map[string][]RawCommit{
			"v0.1.0": {{Hash: "a1", Subject: "feat: a"}},
		},
		dates: map[string]string{}, // no date resolvable
	}

	releases, err := NewAssembler(history).Assemble()
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Empty(t, releases[0].Date)
}

func TestAssemble_NoVersionTags(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{tags: []string{"nightly", "checkpoint"}}

	_, err := NewAssembler(history).Assemble()
	require.ErrorIs(t, err, ErrNoVersionTags)
}

func TestAssemble_DirtyTagsCollapse(t *testing.T) {
	t.Parallel()

	// Both tags name the same version; only the canonical one is walked.
	history := &fakeHistory{
		tags: []string{"old-prefix-v1.0.0", "v1.0.0"},
		commits: map[string][]RawCommit{
			"v1.0.0":            {{Hash: "a1", Subject: "feat: a"}},
			"old-prefix-v1.0.0": {{Hash: "a1", Subject: "feat: a"}},
		},
		dates: map[string]string{},
	}

	releases, err := NewAssembler(history).Assemble()
	require.NoError(t, err)

	require.Len(t, releases, 1)
	assert.Equal(t, "v1.0.0", releases[0].Tag)
	assert.Len(t, releases[0].Commits, 1)
}
