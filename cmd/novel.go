package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List the latest updated novels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := getSource()
		if err != nil {
			return err
		}
		novels, err := src.Latest(contextOf(cmd))
		if err != nil {
			return fmt.Errorf("failed to get latest novels: %w", err)
		}
		currentPalette().novels(cmd.OutOrStdout(), novels)
		return nil
	},
}

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List popular novels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := getSource()
		if err != nil {
			return err
		}
		novels, err := src.Popular(contextOf(cmd))
		if err != nil {
			return fmt.Errorf("failed to get popular novels: %w", err)
		}
		currentPalette().novels(cmd.OutOrStdout(), novels)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search novels by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("query is required")
		}
		src, err := getSource()
		if err != nil {
			return err
		}
		novels, err := src.Search(contextOf(cmd), query)
		if err != nil {
			return fmt.Errorf("failed to search novels: %w", err)
		}
		currentPalette().novels(cmd.OutOrStdout(), novels)
		return nil
	},
}

var novelCmd = &cobra.Command{
	Use:   "novel <novel-id>",
	Short: "Show a novel and its chapters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := getSource()
		if err != nil {
			return err
		}
		page, err := src.Novel(contextOf(cmd), args[0])
		if err != nil {
			return fmt.Errorf("failed to get novel: %w", err)
		}
		currentPalette().detail(cmd.OutOrStdout(), page, stores.Bookmarks.IsBookmarked(page.Novel.ID))
		return nil
	},
}

var chapterCmd = &cobra.Command{
	Use:   "chapter <novel-id> <chapter-id>",
	Short: "Read a chapter and record it in the reading history",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := getSource()
		if err != nil {
			return err
		}
		ctx := contextOf(cmd)
		page, err := src.Chapter(ctx, args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to get chapter: %w", err)
		}
		stores.History.RecordVisit(ctx, page, time.Now())
		currentPalette().chapter(cmd.OutOrStdout(), page)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(latestCmd, popularCmd, searchCmd, novelCmd, chapterCmd)
}
