package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/db"
	"github.com/VoxDroid/relcfg/internal/exporter"
)

var templateExportCmd = &cobra.Command{
	Use:   "export <file.db> [name...]",
	Short: "Export stored templates to a SQLite file",
	Long:  "Export the named stored templates, with history, to a new SQLite file. Without names the whole store is copied. Example:\n  relcfg template export team.db lib svc",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst, names := args[0], args[1:]
		out := cmd.OutOrStdout()
		if len(names) == 0 {
			if err := exporter.ExportDatabase(dst); err != nil {
				return err
			}
			fmt.Fprintf(out, "exported store to %s\n", dst)
			return nil
		}

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()
		if err := exporter.ExportTemplates(commandContext(cmd), dbConn, names, dst); err != nil {
			return err
		}
		fmt.Fprintf(out, "exported %d templates to %s\n", len(names), dst)
		return nil
	},
}

func init() {
	templateCmd.AddCommand(templateExportCmd)
}
