package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <template>",
	Short: "List the parameters a template needs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := lookupTemplate(commandContext(cmd), args[0])
		if err != nil {
			return err
		}
		names, err := t.Tokens()
		if err != nil {
			return withHints(err)
		}
		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintf(out, "%s takes no parameters\n", t.Name)
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
