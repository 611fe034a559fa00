// Package cli wires the shiplog commands: generate, bump, prerelease,
// watch and version.
package cli

import (
	stderrors "errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tannerwick/shiplog/internal/errors"
	"github.com/tannerwick/shiplog/internal/gitrepo"
)

var (
	debugFlag bool
	repoFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "shiplog",
	Short: "Generate changelogs from git tags and conventional commits",
	Long: `shiplog derives a structured changelog from a repository's tag history
and commit log, following the Conventional Commits convention.

It tolerates messy histories: decorated tag names, commits cherry-picked
across releases under new hashes, and pre-release tags that roll up into
their eventual stable release. Running shiplog with no subcommand
generates the changelog.`,
	Example: `  # Print the changelog for the current repository
  shiplog

  # Write CHANGELOG.md including every commit type
  shiplog generate -o CHANGELOG.md --all-types

  # Suggest the next version from commits since the last tag
  shiplog bump

  # Continue a release-candidate series
  shiplog prerelease 1.2.0 rc`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Repository path (default: current directory)")

	cobra.OnInitialize(func() {
		if debugFlag {
			gitrepo.SetDebugLogger(log.Printf)
		}
	})
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return handleError(err)
	}
	return ExitSuccess
}

// handleError prints err and maps it to an exit code.
func handleError(err error) int {
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
		switch cliErr.Category {
		case errors.Argument, errors.Configuration:
			return ExitInvalidArguments
		case errors.Prerequisite:
			return ExitPrerequisite
		default:
			return ExitRuntime
		}
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitRuntime
}

// openRepository opens the repository selected by --repo or configuration,
// translating the failure into the fatal precondition error.
func openRepository(path string) (*gitrepo.Repository, error) {
	repo, err := gitrepo.Open(path)
	if err != nil {
		where := path
		if where == "" {
			where, _ = os.Getwd()
		}
		return nil, errors.NotARepository(where)
	}
	return repo, nil
}
