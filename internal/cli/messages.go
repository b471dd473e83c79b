package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) messagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"msg"},
		Short:   "Read and manage contact-form messages",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List messages, newest first",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withAuth(cmd.Context(), func(ctx context.Context) error {
					messages, err := a.client.Messages(ctx)
					if err != nil {
						return err
					}
					if len(messages) == 0 {
						fmt.Fprintln(a.out, formatInfo("Inbox is empty"))
						return nil
					}

					t := newTable("ID", "", "From", "Email", "Received", "Message")
					unread := 0
					for _, m := range messages {
						flag := " "
						if !m.Read {
							flag = styleWarning.Render("●")
							unread++
						}
						t.addRow(fmt.Sprint(m.ID), flag, truncate(m.Name, 24), m.Email, m.Timestamp, truncate(m.Message, 50))
					}
					fmt.Fprintln(a.out, formatTitle("Messages"))
					fmt.Fprint(a.out, t.render())
					fmt.Fprintln(a.out, formatMuted(fmt.Sprintf("Total: %d, unread: %d", len(messages), unread)))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "read <id>",
			Short: "Toggle the read flag of a message",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return a.withAuth(cmd.Context(), func(ctx context.Context) error {
					m, err := a.client.ToggleMessageRead(ctx, id)
					if err != nil {
						return err
					}
					state := "unread"
					if m.Read {
						state = "read"
					}
					a.success(fmt.Sprintf("Message %d marked %s", id, state))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "delete <id>",
			Aliases: []string{"rm"},
			Short:   "Delete a message",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return a.withAuth(cmd.Context(), func(ctx context.Context) error {
					if err := a.client.DeleteMessage(ctx, id); err != nil {
						return err
					}
					a.success(fmt.Sprintf("Message %d deleted", id))
					return nil
				})
			},
		},
	)
	return cmd
}
