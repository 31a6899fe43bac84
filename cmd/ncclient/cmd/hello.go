package cmd

import "github.com/spf13/cobra"

var helloCmd = &cobra.Command{
	Use:   "hello",
	Short: "Exchange hello messages and show the server capabilities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd)
	},
}

func init() {
	rootCmd.AddCommand(helloCmd)
}
