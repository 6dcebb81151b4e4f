package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Print the raw body of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := lookupTemplate(commandContext(cmd), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Fprintf(out, "Name: %s\n", t.Name)
			fmt.Fprintf(out, "Source: %s\n", t.Source)
			if t.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", t.Description)
			}
			fmt.Fprintln(out, "Body:")
		}
		fmt.Fprint(out, t.Body)
		if !strings.HasSuffix(t.Body, "\n") {
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolP("verbose", "v", false, "Print name, source and description before the body")
	rootCmd.AddCommand(showCmd)
}
