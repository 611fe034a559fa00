package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// sectionStyle defines the color and icon for a commit-type section in
// terminal output.
type sectionStyle struct {
	color *color.Color
	icon  string
}

// sectionStyles maps commit types to their terminal styling.
var sectionStyles = map[string]sectionStyle{
	"feat":   {color: color.New(color.FgGreen), icon: "✦"},
	"fix":    {color: color.New(color.FgYellow), icon: "⚡"},
	"perf":   {color: color.New(color.FgCyan), icon: "▲"},
	"revert": {color: color.New(color.FgRed), icon: "↩"},
}

var defaultSectionStyle = sectionStyle{color: color.New(color.FgBlue), icon: "•"}

// FormatOptions controls terminal formatting.
type FormatOptions struct {
	// Plain disables colors and icons.
	Plain bool
	// Verbose includes every commit type.
	Verbose bool
}

// FormatTerminal writes the release sequence with terminal styling, newest
// release first. It is the interactive counterpart of RenderMarkdown.
func FormatTerminal(releases []TagChangelog, w io.Writer, opts FormatOptions) error {
	for i := len(releases) - 1; i >= 0; i-- {
		if err := formatRelease(&releases[i], w, opts, i != len(releases)-1); err != nil {
			return fmt.Errorf("formatting release %s: %w", releases[i].Version, err)
		}
	}
	return nil
}

func formatRelease(r *TagChangelog, w io.Writer, opts FormatOptions, needsGap bool) error {
	if needsGap {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	header := r.Display
	if r.Date != "" {
		header = fmt.Sprintf("%s (%s)", r.Display, r.Date)
	}
	if !opts.Plain {
		header = color.New(color.Bold).Sprint(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	grouped := groupByType(r.Commits)
	for _, t := range headingOrder {
		commits := grouped[t]
		if len(commits) == 0 || !IsVisibleType(t, opts.Verbose) {
			continue
		}
		for _, c := range commits {
			if _, err := fmt.Fprintln(w, formatLine(t, c, opts)); err != nil {
				return err
			}
		}
	}

	return nil
}

func formatLine(commitType string, c ConventionalCommit, opts FormatOptions) string {
	var b strings.Builder

	style, ok := sectionStyles[commitType]
	if !ok {
		style = defaultSectionStyle
	}

	b.WriteString("  ")
	if opts.Plain {
		fmt.Fprintf(&b, "%-8s ", commitType)
	} else {
		fmt.Fprintf(&b, "%s %s ", style.icon, style.color.Sprintf("%-8s", commitType))
	}

	if c.Scope != "" {
		fmt.Fprintf(&b, "%s: ", c.Scope)
	}
	b.WriteString(c.Subject)
	if c.Breaking {
		if opts.Plain {
			b.WriteString(" [breaking]")
		} else {
			b.WriteString(" " + color.New(color.FgRed, color.Bold).Sprint("[breaking]"))
		}
	}
	if hash := shortHash(c.Hash); hash != "" {
		fmt.Fprintf(&b, " (%s)", hash)
	}

	return b.String()
}
