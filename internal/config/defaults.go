package config

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"output":    "",
		"format":    "markdown",
		"all_types": false,
		"no_links":  false,
		"repo":      "",
	}
}

// DefaultConfigTemplate is a fully commented config file template written
// by the init flow.
const DefaultConfigTemplate = `# shiplog configuration
# Values here are overridden by SHIPLOG_* environment variables.

output: ""          # Changelog destination path (empty = stdout)
format: markdown    # Output format: markdown | yaml | json
all_types: false    # Include docs/chore/etc. sections, not just feat/fix/perf/revert
no_links: false     # Disable commit and tag hyperlinks
repo: ""            # Repository path (empty = current directory)
`
