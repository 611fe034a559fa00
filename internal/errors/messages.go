package errors

import "fmt"

// Common error messages for the shiplog CLI. These templates keep the
// fatal preconditions consistent and actionable.

// NotARepository creates an error for running outside a git working tree.
func NotARepository(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("not a git repository: %s", path),
		"Run shiplog from inside a git working tree",
		"Or point at one explicitly: shiplog --repo /path/to/repo",
	)
}

// NoVersionTags creates an error for a repository with no usable tags.
func NoVersionTags() *CLIError {
	return NewPrerequisiteError(
		"no semantic version tags found",
		"Tag a release first: git tag v0.1.0",
		"Tags must embed a MAJOR.MINOR.PATCH version, e.g. v1.2.3 or release/v1.2.3",
	)
}

// InvalidFormat creates an error for an unknown output format.
func InvalidFormat(format string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid output format %q", format),
		"shiplog generate --format <markdown|yaml|json>",
		"Choose one of: markdown, yaml, json",
	)
}

// InvalidBaseVersion creates an error for a malformed base version
// argument.
func InvalidBaseVersion(version string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid base version %q", version),
		"shiplog prerelease <MAJOR.MINOR.PATCH> <suffix>",
		"Pass a bare semantic version, e.g. 1.2.0",
	)
}
