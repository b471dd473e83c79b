package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portfolio/portfolio-api/internal/adminclient"
)

func (a *app) resumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Show, replace or remove the downloadable resume",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current resume",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := a.client.Resume(cmd.Context())
				if errors.Is(err, adminclient.ErrNotFound) {
					fmt.Fprintln(a.out, formatInfo("No resume uploaded"))
					return nil
				}
				if err != nil {
					return err
				}
				t := newTable("ID", "File", "Uploaded", "Link")
				t.addRow(fmt.Sprint(r.ID), r.Filename, formatTime(r.UploadedAt), r.Path)
				fmt.Fprintln(a.out, formatTitle("Resume"))
				fmt.Fprint(a.out, t.render())
				return nil
			},
		},
		&cobra.Command{
			Use:   "upload <file.pdf>",
			Short: "Replace the resume with a PDF",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withAuth(cmd.Context(), func(ctx context.Context) error {
					r, err := a.client.UploadResume(ctx, args[0])
					if err != nil {
						return err
					}
					a.success("Resume uploaded: " + r.Filename)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "delete",
			Aliases: []string{"rm"},
			Short:   "Remove the resume",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withAuth(cmd.Context(), func(ctx context.Context) error {
					if err := a.client.DeleteResume(ctx); err != nil {
						return err
					}
					a.success("Resume deleted")
					return nil
				})
			},
		},
	)
	return cmd
}
