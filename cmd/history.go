package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the reading history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		currentPalette().history(cmd.OutOrStdout(), stores.History.List())
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the reading history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores.History.Clear(contextOf(cmd))
		fmt.Fprintln(cmd.OutOrStdout(), currentPalette().muted.Render("Reading history cleared"))
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	RootCmd.AddCommand(historyCmd)
}
