package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/store"
	"github.com/VoxDroid/relcfg/internal/template"
)

const starterBody = "{\n  \"branches\": ££BRANCHES££,\n  \"plugins\": []\n}\n"

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage stored templates",
	Long:  "Manage user templates kept in the local store. Stored templates are listed and rendered alongside the built-ins.",
}

var templateAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a new template",
	Long:  "Save a new template from a file, or from the editor when --from-file is omitted. Example:\n  relcfg template add my-lib --from-file releaserc.tmpl.json -d \"library release\"",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		desc, _ := cmd.Flags().GetString("description")
		body, err := bodyFromFlags(cmd, starterBody, name)
		if err != nil {
			return err
		}

		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer func() { _ = repo.Close() }()

		in := store.NewTemplate{Name: name, Description: desc, Format: template.FormatJSON, Body: body}
		if _, err := repo.CreateTemplate(commandContext(cmd), in, currentAuthor()); err != nil {
			return withHints(err)
		}
		logger.Info("saved template", "template", name)
		fmt.Fprintf(cmd.OutOrStdout(), "saved '%s'\n", name)
		return nil
	},
}

// bodyFromFlags reads --from-file, or opens the editor on initial.
func bodyFromFlags(cmd *cobra.Command, initial, name string) (string, error) {
	if path, _ := cmd.Flags().GetString("from-file"); path != "" {
		b, err := readInput(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return editText(initial, name+".json")
}

func init() {
	templateAddCmd.Flags().String("from-file", "", "Read the template body from a file")
	templateAddCmd.Flags().StringP("description", "d", "", "Template description")
	templateCmd.AddCommand(templateAddCmd)
	rootCmd.AddCommand(templateCmd)
}
