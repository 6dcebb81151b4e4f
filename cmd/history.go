package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var templateHistoryCmd = &cobra.Command{
	Use:   "history <name>",
	Short: "Show version history for a stored template",
	Long:  "Show version history for a stored template (versions, timestamps, operation, author)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer func() { _ = repo.Close() }()

		vers, err := repo.ListVersions(commandContext(cmd), name)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(vers) == 0 {
			fmt.Fprintf(out, "no history for %s\n", name)
			return nil
		}
		for _, v := range vers {
			author := ""
			if v.AuthorName.Valid {
				author = v.AuthorName.String
				if v.AuthorEmail.Valid {
					author += " <" + v.AuthorEmail.String + ">"
				}
			}
			fmt.Fprintf(out, "v%d\t%s\t%s\t%s\n", v.Version, when(v.CreatedAt), v.Operation, author)
		}
		return nil
	},
}

// when appends a relative age to a stored UTC timestamp.
func when(ts string) string {
	t, err := time.Parse(time.DateTime, ts)
	if err != nil {
		return ts
	}
	return fmt.Sprintf("%s (%s)", ts, humanize.Time(t))
}

func init() {
	templateCmd.AddCommand(templateHistoryCmd)
}
