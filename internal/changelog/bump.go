package changelog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Suggest computes the next version implied by the commits landed since the
// last release. lastTag may be empty when no release exists yet; the
// baseline is then 0.0.0.
//
// Precedence is breaking > feat > fix/perf > none. Breaking changes bump
// the major component unless the current major is 0, where the minor is
// bumped instead: pre-1.0 software reserves the major component for the
// first stable release. A patch-level change on a pre-release baseline
// collapses to the bare base version, since a fix made during a
// release-candidate cycle is absorbed into the upcoming stable release.
func Suggest(commits []RawCommit, lastTag string) BumpResult {
	current := "0.0.0"
	if lastTag != "" {
		if clean, ok := ExtractVersion(lastTag); ok {
			current = clean
		}
	}

	var breaking, feature, fix bool
	for _, c := range classifyAll(commits) {
		if c.Breaking {
			breaking = true
		}
		switch c.Type {
		case "feat":
			feature = true
		case "fix", "perf":
			fix = true
		}
	}

	result := BumpResult{
		Current:  current,
		Next:     current,
		Category: BumpNone,
		Breaking: breaking,
		Feature:  feature,
		Fix:      fix,
	}

	v, err := semver.StrictNewVersion(current)
	if err != nil {
		return result
	}

	switch {
	case breaking && v.Major() == 0:
		result.Category = BumpMinor
		next := v.IncMinor()
		result.Next = next.String()
	case breaking:
		result.Category = BumpMajor
		next := v.IncMajor()
		result.Next = next.String()
	case feature:
		result.Category = BumpMinor
		next := v.IncMinor()
		result.Next = next.String()
	case fix:
		result.Category = BumpPatch
		if v.Prerelease() != "" {
			result.Next = fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
		} else {
			next := v.IncPatch()
			result.Next = next.String()
		}
	}

	return result
}

// trailingCounterPattern strips an existing numeric counter from a
// pre-release suffix, so "-rc.5" and "rc" both mean the "rc" series.
var trailingCounterPattern = regexp.MustCompile(`\.\d+$`)

// NextPrereleaseVersion continues the pre-release counter for a base
// version and suffix series. It scans the existing tags for
// <optional v><base>-<suffix>.<N> and returns <base>-<suffix>.<max+1>.
// Tags for a different base version or suffix series are ignored entirely,
// so a new base version restarts the counter at 1.
func NextPrereleaseVersion(baseVersion, suffix string, tags []string) string {
	series := strings.TrimPrefix(suffix, "-")
	series = trailingCounterPattern.ReplaceAllString(series, "")

	pattern := regexp.MustCompile(
		`^v?` + regexp.QuoteMeta(baseVersion) + `-` + regexp.QuoteMeta(series) + `\.(\d+)$`,
	)

	max := 0
	for _, tag := range tags {
		m := pattern.FindStringSubmatch(tag)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s-%s.%d", baseVersion, series, max+1)
}
