package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portfolio/portfolio-api/internal/adminclient"
)

func (a *app) heroCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hero",
		Short: "Manage landing-page hero photos",
	}

	var alt, image string
	var posX, posY int
	input := func(c *cobra.Command) adminclient.HeroPhotoInput {
		in := adminclient.HeroPhotoInput{ImagePath: image}
		if c.Flags().Changed("alt") {
			in.Alt = &alt
		}
		if c.Flags().Changed("x") {
			in.PositionX = &posX
		}
		if c.Flags().Changed("y") {
			in.PositionY = &posY
		}
		return in
	}
	bindFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&alt, "alt", "", "alt text")
		c.Flags().StringVar(&image, "image", "", "image file")
		c.Flags().IntVar(&posX, "x", 50, "horizontal focal point, 0-100")
		c.Flags().IntVar(&posY, "y", 50, "vertical focal point, 0-100")
	}

	add := &cobra.Command{
		Use:     "add",
		Short:   "Add a hero photo",
		Example: `  portfolioctl hero add --image me.jpg --alt "On stage" --x 30`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withAuth(cmd.Context(), func(ctx context.Context) error {
				p, err := a.client.CreateHeroPhoto(ctx, input(cmd))
				if err != nil {
					return err
				}
				a.success(fmt.Sprintf("Hero photo %d added", p.ID))
				return nil
			})
		},
	}
	bindFlags(add)
	_ = add.MarkFlagRequired("image")

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a hero photo; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withAuth(cmd.Context(), func(ctx context.Context) error {
				if _, err := a.client.UpdateHeroPhoto(ctx, id, input(cmd)); err != nil {
					return err
				}
				a.success(fmt.Sprintf("Hero photo %d updated", id))
				return nil
			})
		},
	}
	bindFlags(edit)

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List hero photos in display order",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				photos, err := a.client.HeroPhotos(cmd.Context())
				if err != nil {
					return err
				}
				if len(photos) == 0 {
					fmt.Fprintln(a.out, formatInfo("No hero photos yet"))
					return nil
				}
				t := newTable("ID", "Order", "Alt", "Focus", "Image")
				for _, p := range photos {
					t.addRow(fmt.Sprint(p.ID), fmt.Sprint(p.Order), truncate(p.Alt, 30), fmt.Sprintf("%d%% %d%%", p.PositionX, p.PositionY), truncate(p.Image, 50))
				}
				fmt.Fprintln(a.out, formatTitle("Hero photos"))
				fmt.Fprint(a.out, t.render())
				return nil
			},
		},
		add,
		edit,
		a.deleteCmd("hero photo", (*adminclient.Client).DeleteHeroPhoto),
		a.reorderCmd("hero photos", (*adminclient.Client).ReorderHeroPhotos),
	)
	return cmd
}
