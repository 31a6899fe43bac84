package cmd

import (
	"strings"

	"github.com/damianoneill/ncclient/netconf/command"
	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	filterSubtree    string
	filterXPath      string
	filterNamespaces []string
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Retrieve running configuration and state data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := filterFromFlags()
		if err != nil {
			return err
		}
		return runSession(cmd, command.Get{Filter: filter})
	},
}

var getConfigCmd = &cobra.Command{
	Use:   "get-config <source>",
	Short: "Retrieve configuration data from a datastore",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := filterFromFlags()
		if err != nil {
			return err
		}
		return runSession(cmd, command.GetConfig{Source: parseDatastore(args[0]), Filter: filter})
	},
}

// filterFromFlags delivers the filter selected on the command line, or nil.
func filterFromFlags() (*common.Filter, error) {
	var nslist []common.Namespace
	for _, ns := range filterNamespaces {
		id, path, ok := strings.Cut(ns, "=")
		if !ok || id == "" || path == "" {
			return nil, errors.Errorf("invalid namespace %q, expecting prefix=uri", ns)
		}
		nslist = append(nslist, common.Namespace{ID: id, Path: path})
	}

	switch {
	case filterSubtree != "" && filterXPath != "":
		return nil, errors.New("--subtree and --xpath are mutually exclusive")
	case filterSubtree != "":
		return common.SubtreeFilter(filterSubtree, nslist...), nil
	case filterXPath != "":
		return common.XPathFilter(filterXPath, nslist...), nil
	case len(nslist) > 0:
		return nil, errors.New("--ns requires --subtree or --xpath")
	}
	return nil, nil
}

func init() {
	for _, c := range []*cobra.Command{getCmd, getConfigCmd} {
		c.Flags().StringVar(&filterSubtree, "subtree", "", "subtree filter content, as xml")
		c.Flags().StringVar(&filterXPath, "xpath", "", "xpath filter expression")
		c.Flags().StringArrayVar(&filterNamespaces, "ns", nil, "namespace declared on the filter, as prefix=uri")
		rootCmd.AddCommand(c)
	}
}
