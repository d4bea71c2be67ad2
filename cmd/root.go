// Package cmd implements the command-line interface for reelfeed.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/reelfeed/reelfeed/color"
	"github.com/reelfeed/reelfeed/constant"
	"github.com/reelfeed/reelfeed/icon"
	"github.com/reelfeed/reelfeed/key"
	"github.com/reelfeed/reelfeed/log"
	"github.com/reelfeed/reelfeed/player"
	"github.com/reelfeed/reelfeed/query"
	"github.com/reelfeed/reelfeed/style"
	"github.com/reelfeed/reelfeed/tui"
	"github.com/reelfeed/reelfeed/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("source", "S", "", "Catalog source to build the feed from")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("source", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return sourceKinds, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.SourceKind, rootCmd.PersistentFlags().Lookup("source")))

	rootCmd.PersistentFlags().StringP("query", "q", "", "Pexels search query the feed is built from")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PexelsQuery, rootCmd.PersistentFlags().Lookup("query")))

	rootCmd.PersistentFlags().StringP("playlist", "p", "", "Playlist file to read when the source is playlist")
	lo.Must0(viper.BindPFlag(key.SourcePlaylist, rootCmd.PersistentFlags().Lookup("playlist")))

	rootCmd.PersistentFlags().BoolP("save-positions", "H", true, "Remember playback positions between runs")
	lo.Must0(viper.BindPFlag(key.HistorySavePositions, rootCmd.PersistentFlags().Lookup("save-positions")))

	rootCmd.Flags().Bool("unmuted", false, "Start videos with sound")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go player.SweepSockets()
}

// rootCmd opens the interactive feed.
var rootCmd = &cobra.Command{
	Use:   constant.Reelfeed,
	Short: "Scroll through short videos in your terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Scroll through short videos in your terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		source, label, err := newSource()
		handleErr(err)
		log.With(log.Fields{"source": label}).Infof("starting feed")

		muted := viper.GetBool(key.PlayerMuted) && !lo.Must(cmd.Flags().GetBool("unmuted"))

		options := tui.Options{
			Source: source,
			Store:  newPositionStore(),
			Factory: player.NewFactory(player.Options{
				Binary: viper.GetString(key.PlayerBinary),
				Muted:  muted,
				Loop:   viper.GetBool(key.PlayerLoop),
			}),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
