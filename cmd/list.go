package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/mattn/go-isatty"
	"github.com/reelfeed/reelfeed/config"
	"github.com/reelfeed/reelfeed/filesystem"
	"github.com/reelfeed/reelfeed/inline"
	"github.com/reelfeed/reelfeed/key"
	"github.com/reelfeed/reelfeed/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("format", "f", "", "Output format: "+strings.Join(inline.AvailableFormats(), ", ")+" (table on a terminal, plain otherwise)")
	lo.Must0(listCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return inline.AvailableFormats(), cobra.ShellCompDirectiveNoFileComp
	}))
	listCmd.Flags().BoolP("json", "j", false, "Shorthand for --format json")
	listCmd.Flags().StringP("filter", "F", "", "Keep only videos whose title fuzzy-matches the filter")
	listCmd.Flags().StringP("select", "s", "", "Select videos: first, last, all, an index, a range like 1-5 or a title substring like @beach@")
	listCmd.Flags().StringP("export", "e", "", "Write the selection as a playlist file instead of printing it")

	listCmd.MarkFlagsMutuallyExclusive("format", "json")
	listCmd.MarkFlagsMutuallyExclusive("export", "json")
}

// listCmd fetches the catalog once and prints it without starting the feed.
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "Print the catalog the feed would show",
	Aliases: []string{"inline", "ls"},
	Example: "  reelfeed list --query ocean --json\n  reelfeed list -S playlist -p videos.toml --select 0-4",
	Run: func(cmd *cobra.Command, args []string) {
		source, label, err := newSource()
		handleErr(err)

		options := inline.Options{
			Out:     os.Stdout,
			Source:  source,
			Store:   newPositionStore(),
			Label:   label,
			Filter:  lo.Must(cmd.Flags().GetString("filter")),
			Colored: shouldColorize(os.Stdout),
		}

		if description := lo.Must(cmd.Flags().GetString("select")); description != "" {
			selector, err := inline.ParseSelector(description)
			handleErr(err)
			options.Selector = mo.Some(selector)
		}

		switch format := lo.Must(cmd.Flags().GetString("format")); {
		case lo.Must(cmd.Flags().GetBool("json")):
			options.Format = inline.FormatJSON
		case format != "":
			options.Format, err = inline.ParseFormat(format)
			handleErr(err)
		case options.Colored:
			options.Format = inline.FormatTable
		default:
			options.Format = inline.FormatPlain
		}

		if options.Format == inline.FormatTable {
			if width, _, err := util.TerminalSize(); err == nil {
				options.Width = width
			}
		}

		if path := lo.Must(cmd.Flags().GetString("export")); path != "" {
			file, err := filesystem.API().Create(path)
			handleErr(err)
			defer util.Ignore(file.Close)

			options.Out = file
			options.Format = inline.FormatPlaylist
		}

		ctx := context.Background()
		if timeout := config.Duration(key.FeedFetchTimeout); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		handleErr(inline.Run(ctx, &options))
	},
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func init() {
	listCmd.AddCommand(listSchemaCmd)
}

// listSchemaCmd prints the JSON schema of "list --json" output.
var listSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the list command's JSON output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "entry", "output":
				return "inline." + name
			}
			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
