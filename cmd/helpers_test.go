package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/config"
	"github.com/VoxDroid/relcfg/internal/logging"
)

// setupHome points the data directory at a temp dir and resets package state.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvRelcfgHome, home)
	t.Setenv(config.EnvRelcfgDB, "")
	t.Setenv("GIT_AUTHOR_NAME", "")
	t.Setenv("GIT_AUTHOR_EMAIL", "")

	oldSettings, oldLogger := settings, logger
	settings, logger = config.DefaultSettings(), logging.Discard()
	oldConfirm, oldPrompt, oldEdit := confirm, prompt, editText
	t.Cleanup(func() {
		settings, logger = oldSettings, oldLogger
		confirm, prompt, editText = oldConfirm, oldPrompt, oldEdit
	})
	return home
}

// localCommand copies the run behaviour of c into a fresh command so flag
// state does not leak between tests.
func localCommand(c *cobra.Command, addFlags func(*cobra.Command)) *cobra.Command {
	local := &cobra.Command{
		Use:           c.Use,
		Args:          c.Args,
		RunE:          c.RunE,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	if addFlags != nil {
		addFlags(local)
	}
	return local
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}
