// Package cmd contains the CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "banter",
	Short: "Banter - a persistent chat service with optional blog tools",
	Long: `Banter is an HTTP chat service backed by PostgreSQL.

Every exchange is stored in a single shared conversation, and recent
history is replayed to the model on each turn. In agent mode the model
can manage blog users and posts through tool calls.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Running banter with no subcommand starts the server.
		return runServe(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
