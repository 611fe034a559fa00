package cli

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/tannerwick/shiplog/internal/changelog"
	"github.com/tannerwick/shiplog/internal/errors"
)

var (
	bumpPrereleaseFlag string
	bumpJSONFlag       bool
)

var bumpCmd = &cobra.Command{
	Use:   "bump",
	Short: "Suggest the next version from commits since the last tag",
	Long: `Bump inspects the commits landed since the most recent version tag and
suggests the next version. Breaking changes outrank features, features
outrank fixes. Repositories still on major version 0 get a minor bump
for breaking changes instead of a major one.`,
	Example: `  # Suggest the next stable version
  shiplog bump

  # Suggest the next release candidate in the series
  shiplog bump --prerelease rc`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runBump,
}

func init() {
	rootCmd.AddCommand(bumpCmd)
	bumpCmd.Flags().StringVar(&bumpPrereleaseFlag, "prerelease", "", "Suggest the next pre-release with this suffix (e.g. rc, beta)")
	bumpCmd.Flags().BoolVar(&bumpJSONFlag, "json", false, "Print the suggestion as JSON")
}

func runBump(cmd *cobra.Command, _ []string) error {
	repoPath := repoFlag

	repo, err := openRepository(repoPath)
	if err != nil {
		return err
	}

	lastTag := repo.LastTag()
	commits := repo.CommitsSince(lastTag)
	result := changelog.Suggest(commits, lastTag)

	if bumpPrereleaseFlag != "" {
		// A pre-release baseline with no release-worthy commits suggests
		// itself as Next; the counter continues its series from the bare
		// base version, not from the suffixed string.
		base := result.Next
		if v, err := semver.StrictNewVersion(base); err == nil && v.Prerelease() != "" {
			base = fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
		}
		result.Next = changelog.NextPrereleaseVersion(base, bumpPrereleaseFlag, repo.ListTags())
	}

	if bumpJSONFlag {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "encoding bump result")
		}
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "current: %s\n", result.Current)
	fmt.Fprintf(out, "next:    %s\n", result.Next)
	fmt.Fprintf(out, "bump:    %s\n", result.Category)
	if result.Category == changelog.BumpNone {
		fmt.Fprintln(out, "no release-worthy commits since the last tag")
	}
	return nil
}
