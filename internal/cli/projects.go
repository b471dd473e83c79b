package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portfolio/portfolio-api/internal/adminclient"
)

func (a *app) projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage portfolio projects",
	}

	var title, description, url, image string
	input := func(c *cobra.Command) adminclient.ProjectInput {
		in := adminclient.ProjectInput{ImagePath: image}
		if c.Flags().Changed("title") {
			in.Title = &title
		}
		if c.Flags().Changed("description") {
			in.Description = &description
		}
		if c.Flags().Changed("url") {
			in.ProjectURL = &url
		}
		return in
	}
	bindFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&title, "title", "", "project title")
		c.Flags().StringVar(&description, "description", "", "short description")
		c.Flags().StringVar(&url, "url", "", "link to the project")
		c.Flags().StringVar(&image, "image", "", "cover image file")
	}

	add := &cobra.Command{
		Use:     "add",
		Short:   "Create a project",
		Example: `  portfolioctl projects add --title "Shop" --url https://shop.example.com --image cover.png`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withAuth(cmd.Context(), func(ctx context.Context) error {
				p, err := a.client.CreateProject(ctx, input(cmd))
				if err != nil {
					return err
				}
				a.success(fmt.Sprintf("Project %d created", p.ID))
				return nil
			})
		},
	}
	bindFlags(add)
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("url")
	_ = add.MarkFlagRequired("image")

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a project; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withAuth(cmd.Context(), func(ctx context.Context) error {
				if _, err := a.client.UpdateProject(ctx, id, input(cmd)); err != nil {
					return err
				}
				a.success(fmt.Sprintf("Project %d updated", id))
				return nil
			})
		},
	}
	bindFlags(edit)

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List projects in display order",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				projects, err := a.client.Projects(cmd.Context())
				if err != nil {
					return err
				}
				if len(projects) == 0 {
					fmt.Fprintln(a.out, formatInfo("No projects yet"))
					return nil
				}
				t := newTable("ID", "Order", "Title", "URL", "Created")
				for _, p := range projects {
					t.addRow(fmt.Sprint(p.ID), fmt.Sprint(p.Order), truncate(p.Title, 40), truncate(p.ProjectURL, 40), formatTime(p.CreatedAt))
				}
				fmt.Fprintln(a.out, formatTitle("Projects"))
				fmt.Fprint(a.out, t.render())
				return nil
			},
		},
		add,
		edit,
		a.deleteCmd("project", (*adminclient.Client).DeleteProject),
		a.reorderCmd("projects", (*adminclient.Client).ReorderProjects),
	)
	return cmd
}

// deleteCmd builds "<noun> delete <id>". del is a method expression since
// the client only exists once the command runs.
func (a *app) deleteCmd(noun string, del func(c *adminclient.Client, ctx context.Context, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a " + noun,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withAuth(cmd.Context(), func(ctx context.Context) error {
				if err := del(a.client, ctx, id); err != nil {
					return err
				}
				a.success(fmt.Sprintf("Deleted %s %d", noun, id))
				return nil
			})
		},
	}
}

// reorderCmd builds "<noun> reorder <id>..."
func (a *app) reorderCmd(noun string, reorder func(c *adminclient.Client, ctx context.Context, ids []int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Set the display order of " + noun + " to the given id order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return a.withAuth(cmd.Context(), func(ctx context.Context) error {
				if err := reorder(a.client, ctx, ids); err != nil {
					return err
				}
				a.success(fmt.Sprintf("Reordered %d %s", len(ids), noun))
				return nil
			})
		},
	}
}
