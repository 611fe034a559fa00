package changelog

// RawCommit is a single non-merge commit as read from version control.
// The pipeline never interprets Hash; it is carried through for rendering.
type RawCommit struct {
	Hash    string
	Subject string
	Body    string
}

// ConventionalCommit is a RawCommit whose subject matched the conventional
// grammar <type>[(<scope>)][!]: <description>. Type is always lowercased and
// drawn from the fixed vocabulary; Scope is empty when absent.
type ConventionalCommit struct {
	Hash     string `json:"hash" yaml:"hash"`
	Type     string `json:"type" yaml:"type"`
	Scope    string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Subject  string `json:"subject" yaml:"subject"`
	Raw      string `json:"-" yaml:"-"`
	Breaking bool   `json:"breaking,omitempty" yaml:"breaking,omitempty"`
}

// TagInfo pairs a tag as found in version control with its canonical
// semantic version. Multiple original tags may map to one clean version;
// exactly one survives as canonical (see NormalizeTags).
type TagInfo struct {
	// Original is the tag string exactly as it appears in the repository.
	Original string
	// Clean is the bare semantic version, e.g. "1.2.0-rc.1".
	Clean string
	// Display is the conventional presentation form, "v" + Clean.
	Display string
}

// TagChangelog is one finalized release entry: a version label, the tag it
// was cut from, its date (empty when undeterminable), and the commits that
// belong to it, including any rolled-up pre-release commits.
type TagChangelog struct {
	Version string               `json:"version" yaml:"version"`
	Tag     string               `json:"tag" yaml:"tag"`
	Display string               `json:"display" yaml:"display"`
	Date    string               `json:"date,omitempty" yaml:"date,omitempty"`
	Commits []ConventionalCommit `json:"commits" yaml:"commits"`
}

// BumpCategory is the magnitude of version increment implied by a set of
// commits.
type BumpCategory string

const (
	BumpMajor BumpCategory = "major"
	BumpMinor BumpCategory = "minor"
	BumpPatch BumpCategory = "patch"
	BumpNone  BumpCategory = "none"
)

// BumpResult is the Version Bump Advisor's suggestion for the next release.
type BumpResult struct {
	Current  string       `json:"current" yaml:"current"`
	Next     string       `json:"next" yaml:"next"`
	Category BumpCategory `json:"category" yaml:"category"`
	Breaking bool         `json:"breaking" yaml:"breaking"`
	Feature  bool         `json:"feature" yaml:"feature"`
	Fix      bool         `json:"fix" yaml:"fix"`
}

// History is the version-control collaborator the pipeline reads from.
// Every accessor is fallible-to-empty: a failed underlying call yields a nil
// slice or empty string, never an error. Absence of data is expected
// (no remote configured, tag with no reachable log) and not a fault.
type History interface {
	// ListTags returns all tag names in no particular order.
	ListTags() []string
	// CommitsAt returns the non-merge commits reachable at a tag.
	CommitsAt(tag string) []RawCommit
	// CommitsSince returns the non-merge commits after ref up to the
	// current position. An empty ref means the entire history.
	CommitsSince(ref string) []RawCommit
	// TagDate returns the tag's date as YYYY-MM-DD, or "". Annotated
	// tags carry their own date; lightweight tags use the commit's.
	TagDate(tag string) string
	// LastTag returns the most recent tag reachable from the current
	// position, or "".
	LastTag() string
	// RemoteURL returns the origin remote URL, or "".
	RemoteURL() string
}
