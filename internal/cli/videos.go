package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portfolio/portfolio-api/internal/adminclient"
)

func (a *app) videosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Manage embedded YouTube videos",
	}

	var title, description, url string
	input := func(c *cobra.Command) adminclient.VideoInput {
		var in adminclient.VideoInput
		if c.Flags().Changed("title") {
			in.Title = &title
		}
		if c.Flags().Changed("description") {
			in.Description = &description
		}
		if c.Flags().Changed("url") {
			in.VideoURL = &url
		}
		return in
	}
	bindFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&title, "title", "", "video title")
		c.Flags().StringVar(&description, "description", "", "short description")
		c.Flags().StringVar(&url, "url", "", "YouTube link")
	}

	add := &cobra.Command{
		Use:     "add",
		Short:   "Add a video",
		Example: `  portfolioctl videos add --title "Talk" --url https://youtu.be/dQw4w9WgXcQ`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withAuth(cmd.Context(), func(ctx context.Context) error {
				v, err := a.client.CreateVideo(ctx, input(cmd))
				if err != nil {
					return err
				}
				a.success(fmt.Sprintf("Video %d added", v.ID))
				if v.VideoID == nil {
					fmt.Fprintln(a.out, formatWarning("No YouTube id found in the link, thumbnail left empty"))
				}
				return nil
			})
		},
	}
	bindFlags(add)
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("url")

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a video; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withAuth(cmd.Context(), func(ctx context.Context) error {
				if _, err := a.client.UpdateVideo(ctx, id, input(cmd)); err != nil {
					return err
				}
				a.success(fmt.Sprintf("Video %d updated", id))
				return nil
			})
		},
	}
	bindFlags(edit)

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List videos in display order",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				videos, err := a.client.Videos(cmd.Context())
				if err != nil {
					return err
				}
				if len(videos) == 0 {
					fmt.Fprintln(a.out, formatInfo("No videos yet"))
					return nil
				}
				t := newTable("ID", "Order", "Title", "YouTube ID", "Created")
				for _, v := range videos {
					videoID := "-"
					if v.VideoID != nil {
						videoID = *v.VideoID
					}
					t.addRow(fmt.Sprint(v.ID), fmt.Sprint(v.Order), truncate(v.Title, 40), videoID, formatTime(v.CreatedAt))
				}
				fmt.Fprintln(a.out, formatTitle("Videos"))
				fmt.Fprint(a.out, t.render())
				return nil
			},
		},
		add,
		edit,
		a.deleteCmd("video", (*adminclient.Client).DeleteVideo),
		a.reorderCmd("videos", (*adminclient.Client).ReorderVideos),
	)
	return cmd
}
