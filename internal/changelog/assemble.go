package changelog

import (
	"errors"
	"strings"
)

// ErrNoVersionTags is returned when the repository contains no tag with a
// valid embedded semantic version. There is nothing to assemble; callers
// treat this as a fatal precondition failure.
var ErrNoVersionTags = errors.New("no semantic version tags found")

// pending accumulates commits across a chain of pre-release versions until
// a stable version absorbs them. The identity and the commit list are one
// value so they always reset together.
type pending struct {
	active  bool
	info    TagInfo
	date    string
	commits []ConventionalCommit
}

func (p *pending) add(commits []ConventionalCommit) {
	p.commits = append(p.commits, commits...)
}

// capture records the provisional release identity. Only the first
// pre-release in a rollup chain wins; the identity is discarded when a
// stable version closes the chain.
func (p *pending) capture(info TagInfo, date string) {
	if p.active {
		return
	}
	p.active = true
	p.info = info
	p.date = date
}

func (p *pending) reset() {
	*p = pending{}
}

// Assembler walks a normalized version sequence in ascending order and
// produces one TagChangelog per stable release, rolling pre-release commits
// forward into the stable release that follows them.
type Assembler struct {
	history History
	set     *DedupSet
}

// NewAssembler returns an Assembler reading from the given history. The
// deduplication set is created here and lives for exactly one Assemble run.
func NewAssembler(history History) *Assembler {
	return &Assembler{
		history: history,
		set:     NewDedupSet(),
	}
}

// Assemble builds the full release sequence, oldest first. Per-tag commit
// logs are typically cumulative, so correctness of the output depends on
// strict ascending processing order: the shared deduplication set must see
// every earlier release's commits before a later release's log is filtered.
func (a *Assembler) Assemble() ([]TagChangelog, error) {
	tagMap := NormalizeTags(a.history.ListTags())
	if len(tagMap.Versions) == 0 {
		return nil, ErrNoVersionTags
	}

	var (
		releases []TagChangelog
		pend     pending
	)

	for _, version := range tagMap.Versions {
		info, ok := tagMap.Info(version)
		if !ok {
			continue
		}

		date := a.history.TagDate(info.Original)
		commits := a.set.Filter(classifyAll(a.history.CommitsAt(info.Original)))

		if IsPreRelease(version) {
			pend.add(commits)
			pend.capture(info, date)
			continue
		}

		// Stable version: everything accumulated since the last stable
		// release belongs to this entry, under this tag's own identity.
		pend.add(commits)
		releases = append(releases, TagChangelog{
			Version: version,
			Tag:     info.Original,
			Display: info.Display,
			Date:    date,
			Commits: pend.commits,
		})
		pend.reset()
	}

	// A trailing pre-release chain never reached a stable tag; emit it
	// under the provisional identity captured from its first pre-release.
	if len(pend.commits) > 0 {
		releases = append(releases, TagChangelog{
			Version: strings.TrimPrefix(pend.info.Display, "v"),
			Tag:     pend.info.Original,
			Display: pend.info.Display,
			Date:    pend.date,
			Commits: pend.commits,
		})
	}

	return releases, nil
}
