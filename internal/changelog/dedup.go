package changelog

import (
	"fmt"
	"strings"
)

// DedupSet tracks commit identities across an entire assembly run. Two
// commits collide when their type, scope and subject match
// case-insensitively, regardless of hash: a cherry-picked or rebased commit
// lands under a new hash but keeps its descriptive text, and must not
// appear in two releases.
//
// One set is constructed per run and shared by every release in ascending
// version order. It grows monotonically and never shrinks.
type DedupSet struct {
	seen map[string]struct{}
}

// NewDedupSet returns an empty deduplication set.
func NewDedupSet() *DedupSet {
	return &DedupSet{seen: make(map[string]struct{})}
}

// dedupKey derives the normalized identity of a commit.
func dedupKey(c ConventionalCommit) string {
	return strings.ToLower(fmt.Sprintf("%s:%s:%s", c.Type, c.Scope, c.Subject))
}

// Has reports whether an equivalent commit was already recorded.
func (s *DedupSet) Has(c ConventionalCommit) bool {
	_, ok := s.seen[dedupKey(c)]
	return ok
}

// Add records a commit's identity. Adding an already-present identity is a
// no-op.
func (s *DedupSet) Add(c ConventionalCommit) {
	s.seen[dedupKey(c)] = struct{}{}
}

// Filter returns the commits not previously seen, preserving input order.
// Survivors are recorded immediately, so a duplicate later in the same call
// is filtered too.
func (s *DedupSet) Filter(commits []ConventionalCommit) []ConventionalCommit {
	var kept []ConventionalCommit
	for _, c := range commits {
		if s.Has(c) {
			continue
		}
		s.Add(c)
		kept = append(kept, c)
	}
	return kept
}
