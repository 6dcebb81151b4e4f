package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/store"
)

var templateEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a stored template",
	Long:  "Edit a stored template in $VISUAL/$EDITOR, or replace its body non-interactively with --from-file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		ctx := commandContext(cmd)

		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer func() { _ = repo.Close() }()

		rec, err := repo.GetTemplate(ctx, name)
		if err != nil {
			return err
		}
		if rec == nil {
			return errors.WithHint(errors.Wrapf(store.ErrNotFound, "%q", name), "built-in templates are read-only; see `relcfg template add`")
		}

		body, err := bodyFromFlags(cmd, rec.Body, name)
		if err != nil {
			return err
		}
		var desc *string
		if cmd.Flags().Changed("description") {
			d, _ := cmd.Flags().GetString("description")
			desc = &d
		}
		if body == rec.Body && desc == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "no changes to '%s'\n", name)
			return nil
		}
		if err := repo.UpdateTemplate(ctx, name, body, desc, currentAuthor()); err != nil {
			return withHints(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated '%s'\n", name)
		return nil
	},
}

func init() {
	templateEditCmd.Flags().String("from-file", "", "Replace the body with the contents of a file")
	templateEditCmd.Flags().StringP("description", "d", "", "Replace the description")
	templateCmd.AddCommand(templateEditCmd)
}
