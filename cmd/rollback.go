package cmd

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var templateRollbackCmd = &cobra.Command{
	Use:   "rollback <name> <version>",
	Short: "Restore a stored template to a previous version",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		vnum, err := strconv.Atoi(args[1])
		if err != nil || vnum <= 0 {
			return errors.WithHint(errors.Newf("version must be a positive integer, got %q", args[1]), "see `relcfg template history "+name+"`")
		}

		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer func() { _ = repo.Close() }()

		if err := repo.Rollback(commandContext(cmd), name, vnum, currentAuthor()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s to v%d\n", name, vnum)
		return nil
	},
}

func init() {
	templateCmd.AddCommand(templateRollbackCmd)
}
