package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/reelfeed/reelfeed/color"
	"github.com/reelfeed/reelfeed/history"
	"github.com/reelfeed/reelfeed/icon"
	"github.com/reelfeed/reelfeed/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyCmd.Flags().StringP("forget", "f", "", "Forget the position saved under the given key")
	historyCmd.Flags().BoolP("clear", "c", false, "Forget every saved position")
	historyCmd.MarkFlagsMutuallyExclusive("json", "forget", "clear")

	lo.Must0(historyCmd.RegisterFlagCompletionFunc("forget", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		saved, err := history.NewStore().Get()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return lo.Keys(saved), cobra.ShellCompDirectiveNoFileComp
	}))

	historyCmd.SetOut(os.Stdout)
}

// historyCmd shows and edits the remembered playback positions.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or forget remembered playback positions",
	Run: func(cmd *cobra.Command, args []string) {
		store := history.NewStore()
		success := style.Fg(color.Green)(icon.Get(icon.Success))

		if lo.Must(cmd.Flags().GetBool("clear")) {
			handleErr(store.Clear())
			cmd.Printf("%s forgot every position\n", success)
			return
		}

		if key := lo.Must(cmd.Flags().GetString("forget")); key != "" {
			saved, err := store.Get()
			handleErr(err)
			if _, ok := saved[key]; !ok {
				handleErr(fmt.Errorf("no position saved under %s", key))
			}

			handleErr(store.Remove(key))
			cmd.Printf("%s forgot %s\n", success, style.Fg(color.Purple)(key))
			return
		}

		saved, err := store.Get()
		handleErr(err)

		positions := lo.Values(saved)
		slices.SortFunc(positions, func(a, b *history.SavedPosition) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(positions))
			return
		}

		if len(positions) == 0 {
			cmd.Println(style.Faint("no saved positions"))
			return
		}

		for _, p := range positions {
			cmd.Printf("%s %s\n", p.String(), style.Faint(p.Key))
		}
	},
}
