package changelog

import (
	"fmt"
	"io"
	"strings"
)

// RenderOptions controls markdown rendering.
type RenderOptions struct {
	// Verbose includes every commit type; default output shows only
	// feat, fix, perf and revert.
	Verbose bool
	// Remote enables hyperlinks for commit hashes and tags when set.
	Remote *Remote
	// Project names the repository in the document header.
	Project string
}

// typeHeadings maps commit types to their section headings.
var typeHeadings = map[string]string{
	"feat":     "Features",
	"fix":      "Bug Fixes",
	"perf":     "Performance Improvements",
	"revert":   "Reverts",
	"docs":     "Documentation",
	"style":    "Styles",
	"refactor": "Code Refactoring",
	"test":     "Tests",
	"build":    "Build System",
	"ci":       "Continuous Integration",
	"chore":    "Chores",
}

// headingOrder fixes the section order within a release.
var headingOrder = []string{
	"feat", "fix", "perf", "revert",
	"docs", "style", "refactor", "test", "build", "ci", "chore",
}

// RenderMarkdown writes the release sequence as a markdown document,
// newest release first. The assembler produces oldest-first output; the
// renderer owns the display-order reversal. Output is idempotent for the
// same input.
func RenderMarkdown(releases []TagChangelog, w io.Writer, opts RenderOptions) error {
	if err := renderHeader(w, opts); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for i := len(releases) - 1; i >= 0; i-- {
		if err := renderRelease(&releases[i], w, opts); err != nil {
			return fmt.Errorf("rendering release %s: %w", releases[i].Version, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience wrapper rendering to a string.
func RenderMarkdownString(releases []TagChangelog, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(releases, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderHeader(w io.Writer, opts RenderOptions) error {
	title := "# Changelog\n"
	if opts.Project != "" {
		title = fmt.Sprintf("# Changelog\n\nAll notable changes to %s are documented in this file.\n", opts.Project)
	}
	_, err := io.WriteString(w, title)
	return err
}

func renderRelease(r *TagChangelog, w io.Writer, opts RenderOptions) error {
	if _, err := io.WriteString(w, "\n"+releaseHeading(r, opts)+"\n"); err != nil {
		return err
	}

	grouped := groupByType(r.Commits)
	for _, t := range headingOrder {
		commits := grouped[t]
		if len(commits) == 0 || !IsVisibleType(t, opts.Verbose) {
			continue
		}
		if err := renderSection(t, commits, w, opts); err != nil {
			return err
		}
	}

	return nil
}

// releaseHeading formats the release header line, linking the tag when a
// remote is known.
func releaseHeading(r *TagChangelog, opts RenderOptions) string {
	label := r.Display
	if opts.Remote != nil && r.Tag != "" {
		label = fmt.Sprintf("[%s](%s)", r.Display, opts.Remote.TagURL(r.Tag))
	}
	if r.Date != "" {
		return fmt.Sprintf("## %s (%s)", label, r.Date)
	}
	return fmt.Sprintf("## %s", label)
}

// groupByType buckets commits by type, preserving relative order.
func groupByType(commits []ConventionalCommit) map[string][]ConventionalCommit {
	grouped := make(map[string][]ConventionalCommit)
	for _, c := range commits {
		grouped[c.Type] = append(grouped[c.Type], c)
	}
	return grouped
}

func renderSection(commitType string, commits []ConventionalCommit, w io.Writer, opts RenderOptions) error {
	heading := typeHeadings[commitType]
	if heading == "" && commitType != "" {
		heading = strings.ToUpper(commitType[:1]) + commitType[1:]
	}
	if _, err := io.WriteString(w, "\n### "+heading+"\n\n"); err != nil {
		return err
	}

	for _, c := range commits {
		if _, err := io.WriteString(w, renderEntry(c, opts)+"\n"); err != nil {
			return err
		}
	}

	return nil
}

// renderEntry formats one commit bullet.
func renderEntry(c ConventionalCommit, opts RenderOptions) string {
	var b strings.Builder
	b.WriteString("- ")
	if c.Breaking {
		b.WriteString("⚠ ")
	}
	if c.Scope != "" {
		fmt.Fprintf(&b, "**%s:** ", c.Scope)
	}
	b.WriteString(c.Subject)

	if hash := shortHash(c.Hash); hash != "" {
		if opts.Remote != nil {
			fmt.Fprintf(&b, " ([%s](%s))", hash, opts.Remote.CommitURL(c.Hash))
		} else {
			fmt.Fprintf(&b, " (%s)", hash)
		}
	}

	return b.String()
}

// shortHash abbreviates a commit hash to the customary seven characters.
func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
