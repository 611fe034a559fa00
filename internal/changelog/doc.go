// Package changelog derives structured release notes from a git tag history
// and commit log following the Conventional Commits convention.
//
// The pipeline tolerates messy real-world histories: tags with arbitrary
// prefix decoration, commits cherry-picked or rebased across releases under
// new hashes, and pre-release tags that should collapse into their eventual
// stable release. Version-control access is abstracted behind the History
// interface so the pipeline itself stays synchronous and deterministic.
package changelog
