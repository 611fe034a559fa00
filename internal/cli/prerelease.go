package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tannerwick/shiplog/internal/changelog"
	"github.com/tannerwick/shiplog/internal/errors"
)

var prereleaseCmd = &cobra.Command{
	Use:   "prerelease <base-version> <suffix>",
	Short: "Compute the next pre-release version in a series",
	Long: `Prerelease scans the repository's tags for the series <base>-<suffix>.N
and prints the version with the next counter. A series with no existing
tags starts at 1.

Counters are scoped per base version and suffix: 1.3.0-rc tags do not
influence the 1.2.0-rc series, and beta tags do not influence rc tags.`,
	Example: `  # First rc for 1.2.0, or the next one if rc tags already exist
  shiplog prerelease 1.2.0 rc

  # Beta series is counted independently
  shiplog prerelease 1.2.0 beta`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runPrerelease,
}

func init() {
	rootCmd.AddCommand(prereleaseCmd)
}

func runPrerelease(cmd *cobra.Command, args []string) error {
	base, suffix := args[0], args[1]

	clean, ok := changelog.ExtractVersion(base)
	if !ok {
		return errors.InvalidBaseVersion(base)
	}

	repo, err := openRepository(repoFlag)
	if err != nil {
		return err
	}

	next := changelog.NextPrereleaseVersion(clean, suffix, repo.ListTags())
	fmt.Fprintln(cmd.OutOrStdout(), next)
	return nil
}
