// Package gitrepo reads tags, commits and remote metadata from a git
// repository using the go-git library. It implements the history
// collaborator consumed by the changelog pipeline.
//
// Every accessor is tolerant: a failed underlying call (no remote
// configured, tag with no reachable log, unresolvable object) yields an
// empty value rather than an error. Absence of data is expected in the
// messy histories this tool targets. Only opening the repository itself can
// fail, which callers treat as a fatal precondition.
package gitrepo

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/tannerwick/shiplog/internal/changelog"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it is a no-op; set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations. Pass nil
// to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository adapts a go-git repository to the changelog.History interface.
type Repository struct {
	repo *git.Repository
}

var _ changelog.History = (*Repository)(nil)

// Open opens the repository at path, or the current working directory when
// path is empty. DetectDotGit traverses up the directory tree to find the
// repository root. This is the one fallible entry point: not being inside a
// git working tree is a fatal precondition for every command.
func Open(path string) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[gitrepo] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repository{repo: repo}, nil
}

// Wrap adapts an already-open go-git repository. Used by tests running
// against in-memory repositories.
func Wrap(repo *git.Repository) *Repository {
	return &Repository{repo: repo}
}

// ListTags returns all tag names in the repository, in no particular
// order. A repository without tags yields nil.
func (r *Repository) ListTags() []string {
	iter, err := r.repo.Tags()
	if err != nil {
		logDebug("[gitrepo] ListTags: %v", err)
		return nil
	}

	var tags []string
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})

	logDebug("[gitrepo] ListTags: found %d tags", len(tags))
	return tags
}

// CommitsAt returns the non-merge commits reachable at a tag, newest
// first. An unresolvable tag yields nil.
func (r *Repository) CommitsAt(tag string) []changelog.RawCommit {
	commit, err := r.tagCommit(tag)
	if err != nil {
		logDebug("[gitrepo] CommitsAt %s: %v", tag, err)
		return nil
	}

	return r.walk(commit, nil)
}

// CommitsSince returns the non-merge commits reachable from HEAD but not
// from ref, newest first. An empty ref means the entire history.
func (r *Repository) CommitsSince(ref string) []changelog.RawCommit {
	head, err := r.headCommit()
	if err != nil {
		logDebug("[gitrepo] CommitsSince: %v", err)
		return nil
	}

	exclude := make(map[plumbing.Hash]bool)
	if ref != "" {
		base, err := r.resolveCommit(ref)
		if err != nil {
			logDebug("[gitrepo] CommitsSince %s: %v", ref, err)
			return nil
		}
		iter := object.NewCommitPreorderIter(base, nil, nil)
		_ = iter.ForEach(func(c *object.Commit) error {
			exclude[c.Hash] = true
			return nil
		})
	}

	return r.walk(head, exclude)
}

// TagDate returns a tag's date as YYYY-MM-DD, or "" when the tag cannot
// be resolved. Annotated tags carry their own tagger date; lightweight
// tags fall back to the target commit's date.
func (r *Repository) TagDate(tag string) string {
	ref, err := r.repo.Reference(plumbing.NewTagReferenceName(tag), true)
	if err != nil {
		logDebug("[gitrepo] TagDate %s: %v", tag, err)
		return ""
	}
	if tagObj, err := r.repo.TagObject(ref.Hash()); err == nil {
		return tagObj.Tagger.When.Format("2006-01-02")
	}
	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		logDebug("[gitrepo] TagDate %s: %v", tag, err)
		return ""
	}
	return commit.Committer.When.Format("2006-01-02")
}

// LastTag returns the nearest tag reachable from HEAD, like a loose
// git-describe: the first ancestor of HEAD carrying a tag wins. Returns ""
// when no reachable ancestor is tagged.
func (r *Repository) LastTag() string {
	head, err := r.headCommit()
	if err != nil {
		logDebug("[gitrepo] LastTag: %v", err)
		return ""
	}

	tagged := r.taggedCommits()
	if len(tagged) == 0 {
		return ""
	}

	var found string
	iter := object.NewCommitPreorderIter(head, nil, nil)
	_ = iter.ForEach(func(c *object.Commit) error {
		if name, ok := tagged[c.Hash]; ok {
			found = name
			return storer.ErrStop
		}
		return nil
	})

	logDebug("[gitrepo] LastTag: %q", found)
	return found
}

// RemoteURL returns the first URL of the "origin" remote, or "" when no
// remote is configured.
func (r *Repository) RemoteURL() string {
	remote, err := r.repo.Remote(git.DefaultRemoteName)
	if err != nil {
		logDebug("[gitrepo] RemoteURL: %v", err)
		return ""
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

// walk collects non-merge commits from start, newest first, skipping any
// hash present in exclude.
func (r *Repository) walk(start *object.Commit, exclude map[plumbing.Hash]bool) []changelog.RawCommit {
	var commits []changelog.RawCommit
	iter := object.NewCommitPreorderIter(start, nil, nil)
	_ = iter.ForEach(func(c *object.Commit) error {
		if exclude[c.Hash] {
			return nil
		}
		if c.NumParents() > 1 {
			// merge commit
			return nil
		}
		subject, body := splitMessage(c.Message)
		commits = append(commits, changelog.RawCommit{
			Hash:    c.Hash.String(),
			Subject: subject,
			Body:    body,
		})
		return nil
	})
	return commits
}

// taggedCommits maps commit hashes to a tag name pointing at them.
// Annotated tags are dereferenced. When several tags share a commit, the
// first one iterated wins.
func (r *Repository) taggedCommits() map[plumbing.Hash]string {
	tagged := make(map[plumbing.Hash]string)
	iter, err := r.repo.Tags()
	if err != nil {
		return tagged
	}
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		commit, err := r.dereference(ref.Hash())
		if err != nil {
			return nil
		}
		if _, ok := tagged[commit.Hash]; !ok {
			tagged[commit.Hash] = ref.Name().Short()
		}
		return nil
	})
	return tagged
}

// tagCommit resolves a tag name to its target commit.
func (r *Repository) tagCommit(tag string) (*object.Commit, error) {
	ref, err := r.repo.Reference(plumbing.NewTagReferenceName(tag), true)
	if err != nil {
		return nil, fmt.Errorf("resolving tag %s: %w", tag, err)
	}
	return r.dereference(ref.Hash())
}

// resolveCommit resolves a tag name or revision string to a commit.
func (r *Repository) resolveCommit(ref string) (*object.Commit, error) {
	if commit, err := r.tagCommit(ref); err == nil {
		return commit, nil
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %s: %w", ref, err)
	}
	return r.dereference(*hash)
}

// dereference follows an annotated tag object to its commit, or reads the
// commit directly for lightweight tags.
func (r *Repository) dereference(hash plumbing.Hash) (*object.Commit, error) {
	if tagObj, err := r.repo.TagObject(hash); err == nil {
		return tagObj.Commit()
	}
	return r.repo.CommitObject(hash)
}

func (r *Repository) headCommit() (*object.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	return r.repo.CommitObject(head.Hash())
}

// splitMessage separates a full commit message into its subject line and
// body.
func splitMessage(message string) (string, string) {
	subject, body, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(subject), strings.TrimSpace(body)
}
