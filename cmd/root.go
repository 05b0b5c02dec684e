package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "task-sheet-manager",
	Short: "Task manager backed by a Google spreadsheet",
	Long: `task-sheet-manager serves a task API whose records live in one sheet
of a Google spreadsheet, one task per row.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// version is set by main.
var version = "dev"

func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "task-sheet-manager version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("task-sheet-manager version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
