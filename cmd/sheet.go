package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var ensureHeadersCmd = &cobra.Command{
	Use:   "ensure-headers",
	Short: "Write the task header row if it is missing or different",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		written, err := a.taskService.EnsureHeaders(cmd.Context())
		if err != nil {
			return err
		}
		if written {
			cmd.Println("header row rewritten")
		} else {
			cmd.Println("header row already up to date")
		}
		return nil
	},
}

var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Remove blank rows left by deletes in clear mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		removed, err := a.taskService.Compact(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("removed %d dead rows\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ensureHeadersCmd)
	rootCmd.AddCommand(compactCmd)
}
