package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lightnovel-reader/model"
	"lightnovel-reader/store"
)

var fontCmd = &cobra.Command{
	Use:   "font",
	Short: "Show or adjust the reading font",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		currentPalette().font(cmd.OutOrStdout(), stores.Font.Get())
		return nil
	},
}

type fontAction struct {
	use   string
	short string
	apply func(*store.FontSettings, context.Context) model.FontSettings
}

var fontActions = []fontAction{
	{"inc-size", "Increase the font size by 1px", (*store.FontSettings).IncreaseFontSize},
	{"dec-size", "Decrease the font size by 1px", (*store.FontSettings).DecreaseFontSize},
	{"inc-line", "Increase the line height by 0.1", (*store.FontSettings).IncreaseLineHeight},
	{"dec-line", "Decrease the line height by 0.1", (*store.FontSettings).DecreaseLineHeight},
	{"toggle-family", "Switch between serif and sans-serif", (*store.FontSettings).ToggleFontFamily},
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the color theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), currentPalette().title.Render(string(stores.Theme.Get())))
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores.Theme.Toggle(contextOf(cmd))
		fmt.Fprintln(cmd.OutOrStdout(), currentPalette().title.Render(string(stores.Theme.Get())))
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark>",
	Short:     "Set the color theme",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(model.ThemeLight), string(model.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		stores.Theme.Set(contextOf(cmd), args[0] == string(model.ThemeDark))
		fmt.Fprintln(cmd.OutOrStdout(), currentPalette().title.Render(string(stores.Theme.Get())))
		return nil
	},
}

func init() {
	for _, action := range fontActions {
		fontCmd.AddCommand(&cobra.Command{
			Use:   action.use,
			Short: action.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				settings := action.apply(stores.Font, contextOf(cmd))
				currentPalette().font(cmd.OutOrStdout(), settings)
				return nil
			},
		})
	}
	themeCmd.AddCommand(themeToggleCmd, themeSetCmd)
	RootCmd.AddCommand(fontCmd, themeCmd)
}
