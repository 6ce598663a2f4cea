package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarked novels",
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarked novels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		currentPalette().novels(cmd.OutOrStdout(), stores.Bookmarks.List())
		return nil
	},
}

var bookmarkToggleCmd = &cobra.Command{
	Use:   "toggle <novel-id>",
	Short: "Bookmark a novel, or remove it when already bookmarked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := contextOf(cmd)
		novelID := args[0]
		p := currentPalette()

		if stores.Bookmarks.IsBookmarked(novelID) {
			stores.Bookmarks.Remove(ctx, novelID)
			fmt.Fprintln(cmd.OutOrStdout(), p.muted.Render("Removed bookmark "+novelID))
			return nil
		}

		src, err := getSource()
		if err != nil {
			return err
		}
		page, err := src.Novel(ctx, novelID)
		if err != nil {
			return fmt.Errorf("failed to get novel: %w", err)
		}
		stores.Bookmarks.Toggle(ctx, page.Novel)
		fmt.Fprintln(cmd.OutOrStdout(), p.success.Render("Bookmarked "+page.Novel.Title))
		return nil
	},
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:   "remove <novel-id>",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stores.Bookmarks.Remove(contextOf(cmd), args[0])
		fmt.Fprintln(cmd.OutOrStdout(), currentPalette().muted.Render("Removed bookmark "+args[0]))
		return nil
	},
}

func init() {
	bookmarkCmd.AddCommand(bookmarkListCmd, bookmarkToggleCmd, bookmarkRemoveCmd)
	RootCmd.AddCommand(bookmarkCmd)
}
