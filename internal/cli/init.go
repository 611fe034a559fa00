package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tannerwick/shiplog/internal/config"
	"github.com/tannerwick/shiplog/internal/errors"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented project config file",
	Long: `Init writes a fully commented configuration template to
.shiplog/config.yml so every setting is discoverable. Existing files are
left alone unless --force is given.`,
	Example: `  shiplog init
  shiplog init --force`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := config.ProjectConfigPath()

	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.NewArgumentError(
			fmt.Sprintf("config file %s already exists", path),
			"Pass --force to overwrite it")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating config directory")
	}
	if err := os.WriteFile(path, []byte(config.DefaultConfigTemplate), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing config file")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
