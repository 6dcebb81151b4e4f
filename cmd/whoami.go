package cmd

import (
	"fmt"
	"io"
	"net/mail"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/user"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Manage the author stamped on template versions",
	Long:  "Manage the author identity stamped on stored template versions. Without one, GIT_AUTHOR_NAME and GIT_AUTHOR_EMAIL are used.",
}

var whoamiSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store an author identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		if name == "" {
			return errors.WithHint(errors.New("--name is required"), "relcfg whoami set --name \"Jane Doe\" --email jane@example.com")
		}
		if email != "" {
			if _, err := mail.ParseAddress(email); err != nil {
				return errors.Wrapf(err, "invalid --email %q", email)
			}
		}
		p := user.Profile{Name: name, Email: email}
		if err := user.SetProfile(p); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), "stored author as: ")
		printProfile(cmd.OutOrStdout(), p)
		return nil
	},
}

var whoamiShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the author identity in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		p, ok, err := user.GetProfile()
		if err != nil {
			return err
		}
		if ok {
			printProfile(out, p)
			return nil
		}
		if p, err = user.Resolve(); err == nil && !p.Empty() {
			fmt.Fprint(out, "from environment: ")
			printProfile(out, p)
			return nil
		}
		fmt.Fprintln(out, "no stored author identity")
		return err
	},
}

var whoamiClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored author identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := user.ClearProfile(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cleared stored author identity")
		return nil
	},
}

func printProfile(w io.Writer, p user.Profile) {
	if p.Email == "" {
		fmt.Fprintln(w, p.Name)
		return
	}
	fmt.Fprintf(w, "%s <%s>\n", p.Name, p.Email)
}

func init() {
	whoamiSetCmd.Flags().StringP("name", "n", "", "Author name (required)")
	whoamiSetCmd.Flags().StringP("email", "e", "", "Author email")
	whoamiCmd.AddCommand(whoamiSetCmd, whoamiShowCmd, whoamiClearCmd)
	rootCmd.AddCommand(whoamiCmd)
}
