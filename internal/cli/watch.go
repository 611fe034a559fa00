package cli

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tannerwick/shiplog/internal/changelog"
	"github.com/tannerwick/shiplog/internal/config"
	"github.com/tannerwick/shiplog/internal/errors"
	"github.com/tannerwick/shiplog/internal/gitrepo"
	"github.com/tannerwick/shiplog/internal/progress"
	"github.com/tannerwick/shiplog/internal/watch"
)

var watchDebounceFlag time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the changelog whenever tags or branches move",
	Long: `Watch keeps the changelog file up to date. It generates once at startup,
then observes the repository's refs and regenerates after each change.
Stops cleanly on Ctrl-C.

An output file is required; watching makes no sense for stdout.`,
	Example: `  shiplog watch -o CHANGELOG.md
  shiplog watch -o docs/changelog.yml --format yaml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	registerGenerateFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounceFlag, "debounce", watch.DefaultDebounce, "Quiet period before regenerating after a change")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGenerateConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		return errors.NewArgumentError("watch requires an output file",
			"Pass --output (e.g. shiplog watch -o CHANGELOG.md)")
	}

	repoPath := cfg.Repo
	if repoPath == "" {
		repoPath = "."
	}
	gitDir := filepath.Join(repoPath, ".git")
	if _, err := os.Stat(gitDir); err != nil {
		return errors.NotARepository(repoPath)
	}

	regenerate := func() error {
		repo, err := openRepository(cfg.Repo)
		if err != nil {
			return err
		}
		releases, remote, err := assembleWithoutSpinner(repo, cfg)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := writeChangelog(releases, remote, cfg, &buf, progress.TerminalCapabilities{}); err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Output, buf.Bytes(), 0o644); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "writing changelog",
				"Check that the output path is writable")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s updated %s (%d releases)\n",
			time.Now().Format("15:04:05"), cfg.Output, len(releases))
		return nil
	}

	if err := regenerate(); err != nil {
		return err
	}

	watcher, err := watch.New(gitDir, watch.WithDebounce(watchDebounceFlag))
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "starting watcher")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s for tag changes (Ctrl-C to stop)\n", repoPath)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(ctx, regenerate)
	})
	return g.Wait()
}

// assembleWithoutSpinner is the watch-loop variant of assembleReleases;
// a spinner would fight with the update log lines.
func assembleWithoutSpinner(repo *gitrepo.Repository, cfg *config.Configuration) ([]changelog.TagChangelog, *changelog.Remote, error) {
	releases, err := changelog.NewAssembler(repo).Assemble()
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
