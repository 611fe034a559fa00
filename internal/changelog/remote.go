package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// Remote identifies a hosting location parsed from an origin URL. It is
// consumed only by rendering, to hyperlink commit hashes and tags; the
// pipeline itself never constructs URLs.
type Remote struct {
	Host  string
	Owner string
	Repo  string
}

var (
	// scpRemotePattern matches SCP-style SSH remotes: git@host:owner/repo(.git)
	scpRemotePattern = regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	// urlRemotePattern matches https://, ssh:// and git+ssh:// remotes.
	urlRemotePattern = regexp.MustCompile(`^(?:https?|git\+ssh|ssh)://(?:[^@/]+@)?([^/]+)/([^/]+)/(.+?)(?:\.git)?/?$`)
)

// ParseRemote extracts host, owner and repository from an SSH- or
// HTTPS-style remote URL. Returns ok=false for anything unrecognized.
func ParseRemote(url string) (Remote, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Remote{}, false
	}

	if m := scpRemotePattern.FindStringSubmatch(url); m != nil {
		return Remote{Host: m[1], Owner: m[2], Repo: m[3]}, true
	}
	if m := urlRemotePattern.FindStringSubmatch(url); m != nil {
		return Remote{Host: m[1], Owner: m[2], Repo: m[3]}, true
	}

	return Remote{}, false
}

// BaseURL returns the browsable repository root.
func (r Remote) BaseURL() string {
	return fmt.Sprintf("https://%s/%s/%s", r.Host, r.Owner, r.Repo)
}

// CommitURL returns the browsable URL for a commit hash.
func (r Remote) CommitURL(hash string) string {
	return fmt.Sprintf("%s/commit/%s", r.BaseURL(), hash)
}

// TagURL returns the browsable URL for a release tag.
func (r Remote) TagURL(tag string) string {
	return fmt.Sprintf("%s/releases/tag/%s", r.BaseURL(), tag)
}

// CompareURL returns the browsable comparison URL between two refs.
func (r Remote) CompareURL(from, to string) string {
	return fmt.Sprintf("%s/compare/%s...%s", r.BaseURL(), from, to)
}
