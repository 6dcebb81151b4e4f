package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored template and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		confirmFlag, _ := cmd.Flags().GetBool("confirm")

		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer func() { _ = repo.Close() }()

		out := cmd.OutOrStdout()
		if confirmFlag {
			ok, err := confirm(fmt.Sprintf("Delete '%s' permanently?", name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "aborted")
				return nil
			}
		}
		if err := repo.DeleteTemplate(commandContext(cmd), name); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted '%s'\n", name)
		return nil
	},
}

func init() {
	templateDeleteCmd.Flags().Bool("confirm", false, "Ask for confirmation")
	templateCmd.AddCommand(templateDeleteCmd)
}
