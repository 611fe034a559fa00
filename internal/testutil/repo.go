// Package testutil builds in-memory git repositories for tests. Fixtures
// run entirely against go-git's memory storage, so tests need no git
// binary and no filesystem cleanup.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// baseTime anchors commit timestamps so fixture dates are deterministic.
var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// RepoBuilder assembles a synthetic commit and tag history.
type RepoBuilder struct {
	t    *testing.T
	repo *git.Repository
	wt   *git.Worktree
	n    int
}

// NewRepoBuilder initializes an empty in-memory repository.
func NewRepoBuilder(t *testing.T) *RepoBuilder {
	t.Helper()

	repo, err := git.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &RepoBuilder{t: t, repo: repo, wt: wt}
}

// Repo exposes the underlying go-git repository.
func (b *RepoBuilder) Repo() *git.Repository {
	return b.repo
}

// Commit creates one commit with the given full message (subject, or
// subject plus body separated by a blank line). Each commit touches a
// distinct file and advances the clock by one hour.
func (b *RepoBuilder) Commit(message string) plumbing.Hash {
	b.t.Helper()

	b.n++
	name := fmt.Sprintf("file-%03d.txt", b.n)
	f, err := b.wt.Filesystem.Create(name)
	require.NoError(b.t, err)
	_, err = f.Write([]byte(message))
	require.NoError(b.t, err)
	require.NoError(b.t, f.Close())

	_, err = b.wt.Add(name)
	require.NoError(b.t, err)

	hash, err := b.wt.Commit(message, &git.CommitOptions{
		Author: b.signature(),
	})
	require.NoError(b.t, err)
	return hash
}

// Tag creates a lightweight tag pointing at hash.
func (b *RepoBuilder) Tag(name string, hash plumbing.Hash) {
	b.t.Helper()

	_, err := b.repo.CreateTag(name, hash, nil)
	require.NoError(b.t, err)
}

// AnnotatedTag creates an annotated tag pointing at hash.
func (b *RepoBuilder) AnnotatedTag(name string, hash plumbing.Hash, message string) {
	b.t.Helper()

	_, err := b.repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  b.signature(),
		Message: message,
	})
	require.NoError(b.t, err)
}

// AnnotatedTagAt creates an annotated tag with an explicit tagger time,
// for cases where the tag date must differ from the commit date.
func (b *RepoBuilder) AnnotatedTagAt(name string, hash plumbing.Hash, message string, when time.Time) {
	b.t.Helper()

	_, err := b.repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  "Fixture Author",
			Email: "fixture@example.com",
			When:  when,
		},
		Message: message,
	})
	require.NoError(b.t, err)
}

// Remote configures the origin remote with the given URL.
func (b *RepoBuilder) Remote(url string) {
	b.t.Helper()

	_, err := b.repo.CreateRemote(&config.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{url},
	})
	require.NoError(b.t, err)
}

// CommitTime returns the timestamp assigned to the n-th commit (1-based).
func CommitTime(n int) time.Time {
	return baseTime.Add(time.Duration(n) * time.Hour)
}

func (b *RepoBuilder) signature() *object.Signature {
	return &object.Signature{
		Name:  "Fixture Author",
		Email: "fixture@example.com",
		When:  CommitTime(b.n),
	}
}
