package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/config"
	"github.com/VoxDroid/relcfg/internal/logging"
)

// Populated by the root PersistentPreRunE; the defaults apply when a command's
// RunE is invoked directly.
var (
	settings = config.DefaultSettings()
	logger   = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:           "relcfg",
	Short:         "relcfg renders semantic-release configuration templates",
	Long:          "relcfg binds per-project parameters into release configuration templates and writes .releaserc files",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")
		s, err := config.LoadSettings(path)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			s.LogLevel = lvl
		}
		l, err := logging.New(cmd.ErrOrStderr(), s.LogLevel)
		if err != nil {
			return err
		}
		settings, logger = s, l
		logger.Debug("settings loaded", "format", s.Format, "validate", s.Validate, "params", len(s.Params))
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "relcfg: run 'relcfg --help' to see available commands")
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	l := log.NewWithOptions(w, log.Options{})
	l.Error(err.Error())
	for _, h := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "hint: %s\n", h)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Settings file (default $RELCFG_HOME/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}
