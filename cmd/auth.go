package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/reelfeed/reelfeed/auth"
	"github.com/reelfeed/reelfeed/color"
	"github.com/reelfeed/reelfeed/icon"
	"github.com/reelfeed/reelfeed/key"
	"github.com/reelfeed/reelfeed/log"
	"github.com/reelfeed/reelfeed/open"
	"github.com/reelfeed/reelfeed/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const pexelsKeyPage = "https://www.pexels.com/api/"

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd manages the Pexels API key kept in the system keyring.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Pexels API key",
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authSetCmd.Flags().StringP("key", "k", "", "API key to store instead of prompting for it")
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the Pexels API key in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		apiKey := lo.Must(cmd.Flags().GetString("key"))

		if apiKey == "" {
			var visit bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: "Open the Pexels API page to get a key?",
				Default: false,
			}, &visit))

			if visit {
				if err := open.Start(pexelsKeyPage); err != nil {
					log.Warnf("open %s: %v", pexelsKeyPage, err)
					fmt.Println(pexelsKeyPage)
				}
			}

			handleErr(survey.AskOne(&survey.Password{
				Message: "Pexels API key:",
			}, &apiKey, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetKey(apiKey))
		fmt.Printf("%s api key saved\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authDeleteCmd)
}

var authDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the Pexels API key from the system keyring",
	Aliases: []string{"remove", "logout"},
	Run: func(cmd *cobra.Command, args []string) {
		err := auth.DeleteKey()
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Printf("%s no api key stored\n", icon.Get(icon.Fail))
			return
		}

		handleErr(err)
		fmt.Printf("%s api key deleted\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the Pexels API key is read from",
	Run: func(cmd *cobra.Command, args []string) {
		switch stored, err := auth.GetKey(); {
		case viper.GetString(key.PexelsAPIKey) != "":
			fmt.Printf("%s api key set in config (%s)\n", icon.Get(icon.Success), style.Fg(color.Purple)(key.PexelsAPIKey))
		case err == nil && stored != "":
			fmt.Printf("%s api key stored in the system keyring\n", icon.Get(icon.Success))
		default:
			fmt.Printf("%s no api key, run %s\n", icon.Get(icon.Fail), style.Fg(color.Yellow)("auth set"))
		}
	},
}
