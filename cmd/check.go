package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/reelfeed/reelfeed/constant"
	"github.com/reelfeed/reelfeed/icon"
	"github.com/reelfeed/reelfeed/key"
	"github.com/reelfeed/reelfeed/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkCmd reports whether the playback engine can be found.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the video player is installed",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()
		path, _ := exec.LookPath(playerBinary())
		fmt.Printf("%s %s found at %s\n", icon.Get(icon.Success), playerBinary(), path)
	},
}

func playerBinary() string {
	if binary := viper.GetString(key.PlayerBinary); binary != "" {
		return binary
	}
	return "mpv"
}

// CheckDependencies exits when the configured mpv executable is not on PATH.
func CheckDependencies() {
	if _, err := exec.LookPath(playerBinary()); err != nil {
		printMissingDependencyError(playerBinary())
		os.Exit(1)
	}
}

func installCommand(goos string) string {
	switch goos {
	case constant.Darwin:
		return "brew install mpv"
	case constant.Linux:
		return "sudo apt install mpv"
	case constant.Windows:
		return "scoop install mpv"
	default:
		return ""
	}
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The video player '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd := installCommand(runtime.GOOS); installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}
	suggestion += fmt.Sprintf("\n\nOr point %s at it.", style.Bold(key.PlayerBinary))

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
