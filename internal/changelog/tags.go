package changelog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionPattern strips an arbitrary prefix ending in a literal "v"
// (optionally preceded by other text and a separator) and captures a bare
// MAJOR.MINOR.PATCH with an optional pre-release suffix. Tags like
// "v1.0.0", "release/v1.0.0", "old-prefix-v1.0.0" and "1.0.0-rc.1" all
// resolve to their embedded version; anything else is dropped.
var versionPattern = regexp.MustCompile(`^(?:(?:.+[-/_.])?v)?(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?)$`)

// ExtractVersion returns the semantic version embedded in a tag string.
// The second return value is false when the tag carries no parseable
// version.
func ExtractVersion(tag string) (string, bool) {
	m := versionPattern.FindStringSubmatch(strings.TrimSpace(tag))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsValidVersion reports whether a tag embeds a syntactically valid
// semantic version.
func IsValidVersion(tag string) bool {
	clean, ok := ExtractVersion(tag)
	if !ok {
		return false
	}
	_, err := semver.StrictNewVersion(clean)
	return err == nil
}

// IsPreRelease reports whether a version string carries a non-empty
// pre-release component.
func IsPreRelease(version string) bool {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return strings.Contains(version, "-")
	}
	return v.Prerelease() != ""
}

// TagMap is an ascending-by-semver sequence of distinct versions together
// with the canonical TagInfo for each. Construct it with NormalizeTags.
type TagMap struct {
	// Versions holds the distinct clean versions in ascending semver
	// order, pre-releases sorting before their stable release.
	Versions []string

	infos map[string]TagInfo
}

// Info returns the canonical TagInfo for a clean version.
func (m TagMap) Info(version string) (TagInfo, bool) {
	info, ok := m.infos[version]
	return info, ok
}

// NormalizeTags reduces an arbitrary tag list to a canonical version
// sequence. Tags without a valid embedded semver are dropped silently;
// multiple tags mapping to the same version are collapsed to one canonical
// original, preferring a bare "v<digit>" form and then the shorter string.
func NormalizeTags(tags []string) TagMap {
	grouped := make(map[string]string)
	for _, tag := range tags {
		clean, ok := ExtractVersion(tag)
		if !ok {
			continue
		}
		if _, err := semver.StrictNewVersion(clean); err != nil {
			continue
		}
		if current, seen := grouped[clean]; !seen || cleanerTag(tag, current) {
			grouped[clean] = tag
		}
	}

	m := TagMap{infos: make(map[string]TagInfo, len(grouped))}
	parsed := make(map[string]*semver.Version, len(grouped))
	for clean, original := range grouped {
		v, err := semver.StrictNewVersion(clean)
		if err != nil {
			continue
		}
		parsed[clean] = v
		m.infos[clean] = TagInfo{
			Original: original,
			Clean:    clean,
			Display:  "v" + clean,
		}
		m.Versions = append(m.Versions, clean)
	}

	sort.Slice(m.Versions, func(i, j int) bool {
		return parsed[m.Versions[i]].LessThan(parsed[m.Versions[j]])
	})

	return m
}

// bareVersionPattern matches tags already in the clean "v1.2.3" form.
var bareVersionPattern = regexp.MustCompile(`^v\d`)

// cleanerTag reports whether candidate is a better canonical choice than
// current for the same version: a bare v-prefixed tag beats a decorated
// one, and among ties the shorter original wins.
func cleanerTag(candidate, current string) bool {
	candBare := bareVersionPattern.MatchString(candidate)
	currBare := bareVersionPattern.MatchString(current)
	if candBare != currBare {
		return candBare
	}
	return len(candidate) < len(current)
}

// SortTagsBySemver returns the canonical original tag strings in ascending
// semver order. The input slice is never mutated.
func SortTagsBySemver(tags []string) []string {
	m := NormalizeTags(tags)
	sorted := make([]string, 0, len(m.Versions))
	for _, version := range m.Versions {
		info := m.infos[version]
		sorted = append(sorted, info.Original)
	}
	return sorted
}
