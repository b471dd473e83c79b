package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Save the admin password after checking it against the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.promptPassword(); err != nil {
				return err
			}
			if err := a.withAuth(cmd.Context(), a.client.Verify); err != nil {
				return err
			}
			a.success("Logged in to " + a.session.BaseURL)
			fmt.Fprintln(a.out, formatMuted("Session saved to "+a.session.Path()))
			return nil
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Clear(); err != nil {
				return err
			}
			a.success("Logged out")
			return nil
		},
	}
}
