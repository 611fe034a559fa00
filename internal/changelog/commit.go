package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// commitTypes is the fixed Conventional Commits vocabulary.
var commitTypes = map[string]bool{
	"feat":     true,
	"fix":      true,
	"docs":     true,
	"style":    true,
	"refactor": true,
	"perf":     true,
	"test":     true,
	"build":    true,
	"ci":       true,
	"chore":    true,
	"revert":   true,
}

// visibleTypes are the types shown by default. The remaining types are
// internal housekeeping and only appear when verbose output is requested.
var visibleTypes = map[string]bool{
	"feat":   true,
	"fix":    true,
	"perf":   true,
	"revert": true,
}

// subjectPattern matches <type>[(<scope>)][!]: <description> with the type
// matched case-insensitively against the fixed vocabulary.
var subjectPattern = regexp.MustCompile(`(?i)^(feat|fix|docs|style|refactor|perf|test|build|ci|chore|revert)(?:\(([^)]*)\))?(!)?:\s*(.+)$`)

// breakingBodyPattern matches a breaking-change footer line anywhere in the
// commit body, anchored at line start.
var breakingBodyPattern = regexp.MustCompile(`(?im)^BREAKING[ -]CHANGE:`)

// ParseConventionalCommit classifies a raw commit against the conventional
// grammar. Non-conforming subjects yield ok=false; they are outside the
// convention, not an error, and never appear in any output.
func ParseConventionalCommit(rc RawCommit) (ConventionalCommit, bool) {
	m := subjectPattern.FindStringSubmatch(rc.Subject)
	if m == nil {
		return ConventionalCommit{}, false
	}

	return ConventionalCommit{
		Hash:     rc.Hash,
		Type:     strings.ToLower(m[1]),
		Scope:    m[2],
		Subject:  strings.TrimSpace(m[4]),
		Raw:      rc.Subject,
		Breaking: m[3] == "!" || breakingBodyPattern.MatchString(rc.Body),
	}, true
}

// NormalizeCommit renders a commit back to its canonical lowercase
// "type(scope): subject" form. Display and debugging helper only; the
// deduplication key has its own format.
func NormalizeCommit(c ConventionalCommit) string {
	if c.Scope != "" {
		return strings.TrimSpace(strings.ToLower(fmt.Sprintf("%s(%s): %s", c.Type, c.Scope, c.Subject)))
	}
	return strings.TrimSpace(strings.ToLower(fmt.Sprintf("%s: %s", c.Type, c.Subject)))
}

// IsVisibleType reports whether commits of the given type should be shown.
// Verbose mode admits every type, including ones outside the fixed
// vocabulary, so forward-compatible output stays possible.
func IsVisibleType(commitType string, verbose bool) bool {
	if verbose {
		return true
	}
	return visibleTypes[strings.ToLower(commitType)]
}

// IsCommitType reports whether s is one of the fixed conventional types.
func IsCommitType(s string) bool {
	return commitTypes[strings.ToLower(s)]
}

// classifyAll parses a raw commit list, keeping input order and silently
// dropping non-conforming commits.
func classifyAll(commits []RawCommit) []ConventionalCommit {
	var out []ConventionalCommit
	for _, rc := range commits {
		if c, ok := ParseConventionalCommit(rc); ok {
			out = append(out, c)
		}
	}
	return out
}
