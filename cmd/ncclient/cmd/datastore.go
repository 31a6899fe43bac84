package cmd

import (
	"strconv"
	"strings"

	"github.com/damianoneill/ncclient/netconf/command"
	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var lockCmd = &cobra.Command{
	Use:   "lock <target>",
	Short: "Lock a datastore",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, command.Lock{Target: parseDatastore(args[0])})
	},
}

var unlockCmd = &cobra.Command{
	Use:   "unlock <target>",
	Short: "Release a datastore lock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, command.Unlock{Target: parseDatastore(args[0])})
	},
}

var copyConfigCmd = &cobra.Command{
	Use:   "copy-config <source> <target>",
	Short: "Copy a configuration datastore or url to another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, command.CopyConfig{From: parseWaypoint(args[0]), To: parseWaypoint(args[1])})
	},
}

var deleteConfigCmd = &cobra.Command{
	Use:   "delete-config <target>",
	Short: "Delete a configuration datastore or url",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, command.DeleteConfig{Target: parseWaypoint(args[0])})
	},
}

var killSessionCmd = &cobra.Command{
	Use:   "kill-session <session-id>",
	Short: "Terminate another netconf session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return errors.Errorf("invalid session id %q", args[0])
		}
		return runSession(cmd, command.KillSession{SessionID: uint32(id)})
	},
}

// parseDatastore accepts any datastore name, warning about names outside the well known set.
func parseDatastore(arg string) common.Datastore {
	ds := common.ParseDatastore(arg)
	if ds.IsOther() {
		logrus.WithField("datastore", ds).Warn("not a well known datastore, the server must support it")
	}
	return ds
}

// parseWaypoint treats an argument holding a scheme as a url, and anything else as a datastore name.
func parseWaypoint(arg string) common.ConfigWaypoint {
	if strings.Contains(arg, "://") {
		return common.DsURL(arg)
	}
	return common.DsName(parseDatastore(arg))
}

func init() {
	rootCmd.AddCommand(lockCmd, unlockCmd, copyConfigCmd, deleteConfigCmd, killSessionCmd)
}
