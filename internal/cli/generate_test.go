package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diskRepo builds an on-disk repository for command tests. The in-memory
// builder cannot serve here: commands locate repositories by path.
type diskRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	n    int
}

func newDiskRepo(t *testing.T) *diskRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &diskRepo{t: t, dir: dir, repo: repo}
}

func (r *diskRepo) commit(message string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	name := filepath.Join(r.dir, "file.txt")
	require.NoError(r.t, os.WriteFile(name, []byte(message), 0o644))
	_, err = wt.Add("file.txt")
	require.NoError(r.t, err)

	r.n++
	when := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(r.n) * time.Hour)
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "Test Author", Email: "test@example.com", When: when},
	})
	require.NoError(r.t, err)
}

func (r *diskRepo) tag(name string) {
	r.t.Helper()
	head, err := r.repo.Head()
	require.NoError(r.t, err)
	_, err = r.repo.CreateTag(name, head.Hash(), nil)
	require.NoError(r.t, err)
}

// execute runs the root command with args and captures its output. Not
// parallel-safe: the command tree is package-level state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default. Cobra re-parses args on
// each Execute but keeps values and Changed marks from earlier runs on the
// package-level commands.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	rootCmd.Flags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

func TestGenerateCommand_Markdown(t *testing.T) {
	r := newDiskRepo(t)
	r.commit("feat: add user login")
	r.commit("fix(auth): expire stale sessions")
	r.tag("v1.0.0")

	out, err := execute(t, "generate", "--repo", r.dir, "--no-links", "--format", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "# Changelog")
	assert.Contains(t, out, "## v1.0.0")
	assert.Contains(t, out, "add user login")
	assert.Contains(t, out, "**auth:** expire stale sessions")
}

func TestGenerateCommand_JSON(t *testing.T) {
	r := newDiskRepo(t)
	r.commit("feat: first feature")
	r.tag("v0.1.0")

	out, err := execute(t, "generate", "--repo", r.dir, "--no-links", "--format", "json")
	require.NoError(t, err)

	var export struct {
		Releases []struct {
			Version string `json:"version"`
		} `json:"releases"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &export))
	require.Len(t, export.Releases, 1)
	assert.Equal(t, "0.1.0", export.Releases[0].Version)
}

func TestGenerateCommand_OutputFile(t *testing.T) {
	r := newDiskRepo(t)
	r.commit("feat: write changelog files")
	r.tag("v1.0.0")

	outPath := filepath.Join(t.TempDir(), "CHANGELOG.md")
	out, err := execute(t, "generate", "--repo", r.dir, "--no-links", "--format", "markdown", "-o", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, outPath)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "write changelog files")
}

func TestGenerateCommand_NoTags(t *testing.T) {
	r := newDiskRepo(t)
	r.commit("feat: untagged work")

	_, err := execute(t, "generate", "--repo", r.dir, "--no-links", "--format", "markdown")
	require.Error(t, err)
	assert.Equal(t, ExitPrerequisite, handleError(err))
}

func TestGenerateCommand_InvalidFormat(t *testing.T) {
	r := newDiskRepo(t)
	r.commit("feat: anything")
	r.tag("v1.0.0")

	_, err := execute(t, "generate", "--repo", r.dir, "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, handleError(err))
}

func TestRootCommand_RunsGenerate(t *testing.T) {
	r := newDiskRepo(t)
	r.commit("feat: root runs generate")
	r.tag("v1.0.0")

	out, err := execute(t, "--repo", r.dir, "--no-links", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "## v1.0.0")
}

func TestBumpCommand(t *testing.T) {
	r := newDiskRepo(t)
	r.commit("chore: initial commit")
	r.tag("v1.0.0")
	r.commit("feat: something new")

	out, err := execute(t, "bump", "--repo", r.dir)
	require.NoError(t, err)
	assert.Contains(t, out, "current: 1.0.0")
	assert.Contains(t, out, "next:    1.1.0")
	assert.Contains(t, out, "bump:    minor")
}

func TestBumpCommand_JSON(t *testing.T) {
	r := newDiskRepo(t)
	r.commit("chore: initial commit")
	r.tag("v1.0.0")
	r.commit("fix: patch it")

	out, err := execute(t, "bump", "--repo", r.dir, "--json")
	require.NoError(t, err)

	var result struct {
		Next     string `json:"next"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "1.0.1", result.Next)
	assert.Equal(t, "patch", result.Category)
}

func TestBumpCommand_PrereleaseContinuesSeries(t *testing.T) {
	r := newDiskRepo(t)
	r.commit("feat: start the rc cycle")
	r.tag("v1.0.0-rc.1")
	r.commit("chore: housekeeping during the cycle")

	// No release-worthy commits: the suggestion stays at the rc baseline,
	// and the counter must continue its series from the bare base version
	// instead of stacking a suffix onto the suffix.
	out, err := execute(t, "bump", "--repo", r.dir, "--prerelease", "rc")
	require.NoError(t, err)
	assert.Contains(t, out, "next:    1.0.0-rc.2")
	assert.NotContains(t, out, "rc.1-rc")
}

func TestBumpCommand_PrereleaseFromStableBaseline(t *testing.T) {
	r := newDiskRepo(t)
	r.commit("chore: initial commit")
	r.tag("v1.0.0")
	r.commit("feat: next cycle begins")

	out, err := execute(t, "bump", "--repo", r.dir, "--prerelease", "rc")
	require.NoError(t, err)
	assert.Contains(t, out, "next:    1.1.0-rc.1")
}

func TestPrereleaseCommand(t *testing.T) {
	r := newDiskRepo(t)
	r.commit("feat: rc one")
	r.tag("v1.2.0-rc.1")
	r.commit("fix: rc follow-up")

	out, err := execute(t, "prerelease", "1.2.0", "rc", "--repo", r.dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.0-rc.2")
}

func TestPrereleaseCommand_InvalidBase(t *testing.T) {
	_, err := execute(t, "prerelease", "not-a-version", "rc")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, handleError(err))
}

func TestVersionCommand_Plain(t *testing.T) {
	out, err := execute(t, "version", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "shiplog dev")
	assert.Contains(t, out, "go: go")
}

func TestVersionCommand_MarksDevBuilds(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev build")
}
