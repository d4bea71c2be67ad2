package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/reelfeed/reelfeed/color"
	"github.com/reelfeed/reelfeed/config"
	"github.com/reelfeed/reelfeed/key"
	"github.com/reelfeed/reelfeed/style"
	"github.com/reelfeed/reelfeed/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// secretKeys are never printed in full.
var secretKeys = []string{key.PexelsAPIKey}

type envVar struct {
	Name        string `json:"name"`
	Value       string `json:"value,omitempty"`
	Set         bool   `json:"set"`
	Description string `json:"description"`
}

// mask keeps the last four characters of a secret.
func mask(value string) string {
	const visible = 4
	if len(value) <= visible {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-visible) + value[len(value)-visible:]
}

// envVars lists every variable reelfeed reads, sorted by name, with its
// current value. Secrets are masked.
func envVars() []envVar {
	vars := lo.Map(lo.Values(config.Default), func(field config.Field, _ int) envVar {
		value, set := os.LookupEnv(field.Env())
		if set && slices.Contains(secretKeys, field.Key) {
			value = mask(value)
		}

		return envVar{
			Name:        field.Env(),
			Value:       value,
			Set:         set && value != "",
			Description: strings.SplitN(field.Description, "\n", 2)[0],
		}
	})

	configPath, set := os.LookupEnv(where.EnvConfigPath)
	vars = append(vars, envVar{
		Name:        where.EnvConfigPath,
		Value:       configPath,
		Set:         set && configPath != "",
		Description: "Directory holding the config file and saved positions",
	})

	slices.SortFunc(vars, func(a, b envVar) int {
		return strings.Compare(a.Name, b.Name)
	})
	return vars
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")
	envCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long:  `Display the collection of supported environment variables and their current process values. API keys are masked.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		vars := lo.Filter(envVars(), func(v envVar, _ int) bool {
			return !(setOnly && !v.Set) && !(unsetOnly && v.Set)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(vars))
			return
		}

		for _, v := range vars {
			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(v.Name))
			cmd.Print("=")

			if v.Set {
				cmd.Print(style.Fg(color.Green)(v.Value))
			} else {
				cmd.Print(style.Fg(color.Red)("unset"))
			}
			cmd.Println(" " + style.Faint("# "+v.Description))
		}
	},
}
