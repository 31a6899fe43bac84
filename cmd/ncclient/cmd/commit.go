package cmd

import (
	"github.com/damianoneill/ncclient/netconf/command"
	"github.com/damianoneill/ncclient/netconf/ops"
	"github.com/spf13/cobra"
)

var (
	commitConfirmed      bool
	commitConfirmTimeout uint32
	commitPersist        string
	persistID            string
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit the candidate configuration to running",
	Long: `Commit the candidate configuration to running. With --confirmed the commit is
rolled back unless confirmed before the timeout expires.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !commitConfirmed && commitConfirmTimeout == 0 && commitPersist == "" && persistID == "" {
			return runSession(cmd, command.Commit{})
		}
		return runSession(cmd, command.ConfirmedCommit{Params: ops.ConfirmedCommitParams{
			ConfirmTimeout: commitConfirmTimeout,
			Persist:        commitPersist,
			PersistID:      persistID,
		}})
	},
}

var discardChangesCmd = &cobra.Command{
	Use:   "discard-changes",
	Short: "Revert the candidate configuration to running",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, command.DiscardChanges{})
	},
}

var cancelCommitCmd = &cobra.Command{
	Use:   "cancel-commit",
	Short: "Cancel an ongoing confirmed commit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, command.CancelCommit{PersistID: persistID})
	},
}

func init() {
	commitCmd.Flags().BoolVar(&commitConfirmed, "confirmed", false, "issue a confirmed commit")
	commitCmd.Flags().Uint32Var(&commitConfirmTimeout, "confirm-timeout", 0,
		"seconds before an unconfirmed commit is rolled back (default 600)")
	commitCmd.Flags().StringVar(&commitPersist, "persist", "", "make the confirmed commit persist beyond the session")
	commitCmd.Flags().StringVar(&persistID, "persist-id", "", "confirm the persistent confirmed commit")

	cancelCommitCmd.Flags().StringVar(&persistID, "persist-id", "", "cancel the persistent confirmed commit")

	rootCmd.AddCommand(commitCmd, discardChangesCmd, cancelCommitCmd)
}
