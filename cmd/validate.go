package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/document"
	"github.com/VoxDroid/relcfg/internal/schema"
	"github.com/VoxDroid/relcfg/internal/security"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a release configuration file against the schema",
	Long:  "Decode a .releaserc.json, .releaserc.yaml or release.config.js file and validate it. Example:\n  relcfg validate .releaserc.json",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := document.FormatFromPath(path)
		if err != nil {
			return err
		}
		data, err := readInput(path)
		if err != nil {
			return err
		}
		cfg, err := document.Read(data, f)
		if err != nil {
			return err
		}
		if err := schema.ValidateConfig(cfg); err != nil {
			return err
		}
		if err := security.CheckConfig(cfg); err != nil {
			return err
		}
		logger.Debug("validated", "path", path, "branches", len(cfg.Branches), "plugins", len(cfg.Plugins))
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d branches, %d plugins)\n", path, len(cfg.Branches), len(cfg.Plugins))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
