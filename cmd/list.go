package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Long:  "List built-in and stored templates. Example:\n  relcfg list --filter npm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := loadCatalog(commandContext(cmd))
		if err != nil {
			return err
		}
		textFilter, _ := cmd.Flags().GetString("filter")
		ts := reg.Templates()
		if textFilter != "" {
			ts = catalog.Filter(reg, textFilter)
		}

		out := cmd.OutOrStdout()
		if len(ts) == 0 {
			fmt.Fprintln(out, "no templates found")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, t := range ts {
			fmt.Fprintf(w, "- %s\t%s\t%s\n", t.Name, t.Source, t.Description)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().String("filter", "", "Fuzzy filter on name and description")
	rootCmd.AddCommand(listCmd)
}
