package cli

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tannerwick/shiplog/internal/changelog"
	"github.com/tannerwick/shiplog/internal/config"
	"github.com/tannerwick/shiplog/internal/errors"
	"github.com/tannerwick/shiplog/internal/gitrepo"
	"github.com/tannerwick/shiplog/internal/progress"
)

var (
	outputFlag   string
	formatFlag   string
	allTypesFlag bool
	noLinksFlag  bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate the changelog from the repository's tag history",
	Long: `Generate walks every semantic-version tag in ascending order, classifies
conventional commits, filters duplicates introduced by cherry-picks and
rebases, and rolls pre-release tags into the stable release that follows
them.

By default only feat, fix, perf and revert commits are shown; use
--all-types to include the housekeeping types too.`,
	Example: `  # Print to stdout
  shiplog generate

  # Write a markdown changelog file
  shiplog generate -o CHANGELOG.md

  # Machine-readable output
  shiplog generate --format json`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	registerGenerateFlags(generateCmd)
	// The root command doubles as generate, so it carries the same flags.
	registerGenerateFlags(rootCmd)
}

func registerGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the changelog to this file instead of stdout")
	cmd.Flags().StringVar(&formatFlag, "format", "", "Output format: markdown | yaml | json")
	cmd.Flags().BoolVar(&allTypesFlag, "all-types", false, "Include every commit type, not just feat/fix/perf/revert")
	cmd.Flags().BoolVar(&noLinksFlag, "no-links", false, "Disable commit and tag hyperlinks")
}

// loadGenerateConfig layers CLI flags over the file/env configuration.
func loadGenerateConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration",
			"Check .shiplog/config.yml for syntax errors",
			"Valid formats are markdown, yaml and json")
	}

	if cmd.Flags().Changed("output") {
		cfg.Output = outputFlag
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = formatFlag
	}
	if cmd.Flags().Changed("all-types") {
		cfg.AllTypes = allTypesFlag
	}
	if cmd.Flags().Changed("no-links") {
		cfg.NoLinks = noLinksFlag
	}
	if repoFlag != "" {
		cfg.Repo = repoFlag
	}

	if err := config.Validate(cfg); err != nil {
		return nil, errors.InvalidFormat(cfg.Format)
	}

	return cfg, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGenerateConfig(cmd)
	if err != nil {
		return err
	}

	repo, err := openRepository(cfg.Repo)
	if err != nil {
		return err
	}

	releases, remote, err := assembleReleases(repo, cfg)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return writeChangelog(releases, remote, cfg, cmd.OutOrStdout(), progress.Detect())
	}

	var buf bytes.Buffer
	if err := writeChangelog(releases, remote, cfg, &buf, progress.TerminalCapabilities{}); err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Output, buf.Bytes(), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing changelog",
			"Check that the output path is writable")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d release(s) to %s\n", len(releases), cfg.Output)
	return nil
}

// assembleReleases runs the pipeline, showing a spinner on interactive
// terminals while the history is walked.
func assembleReleases(repo *gitrepo.Repository, cfg *config.Configuration) ([]changelog.TagChangelog, *changelog.Remote, error) {
	spin := progress.NewSpinner(progress.Detect(), os.Stderr, "walking tag history...")
	spin.Start()
	releases, err := changelog.NewAssembler(repo).Assemble()
	spin.Stop()

	if err != nil {
		if stderrors.Is(err, changelog.ErrNoVersionTags) {
			return nil, nil, errors.NoVersionTags()
		}
		return nil, nil, errors.WrapWithMessage(err, errors.Runtime, "assembling changelog")
	}

	var remote *changelog.Remote
	if !cfg.NoLinks {
		if r, ok := changelog.ParseRemote(repo.RemoteURL()); ok {
			remote = &r
		}
	}

	return releases, remote, nil
}

// writeChangelog renders the release sequence in the configured format.
// Markdown on an interactive terminal gets the colored layout instead of
// raw markup.
func writeChangelog(releases []changelog.TagChangelog, remote *changelog.Remote, cfg *config.Configuration, w io.Writer, caps progress.TerminalCapabilities) error {
	project := ""
	if remote != nil {
		project = remote.Repo
	}

	switch cfg.Format {
	case "yaml":
		return changelog.ExportYAML(releases, w, project)
	case "json":
		return changelog.ExportJSON(releases, w, project)
	default:
		if caps.IsTTY {
			return changelog.FormatTerminal(releases, w, changelog.FormatOptions{
				Plain:   !caps.SupportsColor,
				Verbose: cfg.AllTypes,
			})
		}
		return changelog.RenderMarkdown(releases, w, changelog.RenderOptions{
			Verbose: cfg.AllTypes,
			Remote:  remote,
			Project: project,
		})
	}
}
