package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/db"
	"github.com/VoxDroid/relcfg/internal/importer"
)

var templateImportCmd = &cobra.Command{
	Use:   "import <file.db>",
	Short: "Import templates from an exported SQLite file",
	Long:  "Import every template from a file written by `relcfg template export`. Name clashes get an -import-N suffix.\nWith --replace the active store is replaced by the file instead.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		out := cmd.OutOrStdout()
		if replace, _ := cmd.Flags().GetBool("replace"); replace {
			ok, err := confirm("Replace the active template store and its history?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "aborted")
				return nil
			}
			if err := importer.ImportDatabase(commandContext(cmd), src, true); err != nil {
				return err
			}
			fmt.Fprintf(out, "replaced store with %s\n", src)
			return nil
		}

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()
		imported, err := importer.ImportTemplates(commandContext(cmd), src, dbConn)
		for _, im := range imported {
			if im.As != im.Name {
				fmt.Fprintf(out, "imported '%s' as '%s'\n", im.Name, im.As)
				continue
			}
			fmt.Fprintf(out, "imported '%s'\n", im.Name)
		}
		if err != nil {
			return err
		}
		logger.Info("import finished", "source", src, "templates", len(imported))
		return nil
	},
}

func init() {
	templateImportCmd.Flags().Bool("replace", false, "Replace the active store with the file")
	templateCmd.AddCommand(templateImportCmd)
}
