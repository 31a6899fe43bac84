package cmd

import (
	"os"

	"github.com/damianoneill/ncclient/netconf/command"
	"github.com/damianoneill/ncclient/netconf/ops"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	contentXML  string
	contentFile string
	contentURL  string

	editDefaultOperation string
	editTestOption       string
	editErrorOption      string
)

var editConfigCmd = &cobra.Command{
	Use:   "edit-config <target>",
	Short: "Load configuration into a datastore",
	Long: `Load configuration into a datastore. The configuration is given inline with --xml,
read from a file with --file, or fetched by the server from --url.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentFromFlags()
		if err != nil {
			return err
		}
		var config ops.ConfigOption
		switch {
		case content != "":
			config = ops.Cfg(content)
		case contentURL != "":
			config = ops.CfgURL(contentURL)
		default:
			return errors.New("edit-config requires --xml, --file or --url")
		}

		var options []ops.EditOption
		if editDefaultOperation != "" {
			options = append(options, ops.DefaultOperation(ops.DefaultOperationType(editDefaultOperation)))
		}
		if editTestOption != "" {
			options = append(options, ops.TestOption(ops.TestOptionType(editTestOption)))
		}
		if editErrorOption != "" {
			options = append(options, ops.ErrorOption(ops.ErrorOptionType(editErrorOption)))
		}

		req := ops.NewEditConfigRequest(parseDatastore(args[0]), config, options...)
		return runSession(cmd, command.EditConfig{Request: req})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [source]",
	Short: "Validate the content of a datastore, url or inline configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentFromFlags()
		if err != nil {
			return err
		}

		var source ops.ValidateSource
		switch {
		case content != "" && len(args) > 0:
			return errors.New("validate takes either a source or --xml/--file")
		case content != "":
			source = ops.ValidateConfig(content)
		case len(args) == 0:
			return errors.New("validate requires a source, --xml or --file")
		default:
			if wp := parseWaypoint(args[0]); wp.IsURL() {
				source = ops.ValidateURL(wp.URL)
			} else {
				source = ops.ValidateDatastore(wp.Datastore)
			}
		}
		return runSession(cmd, command.Validate{Source: source})
	},
}

// contentFromFlags delivers the inline configuration given by --xml or --file.
func contentFromFlags() (string, error) {
	switch {
	case contentXML != "" && contentFile != "":
		return "", errors.New("--xml and --file are mutually exclusive")
	case contentFile != "":
		b, err := os.ReadFile(contentFile)
		if err != nil {
			return "", errors.Wrap(err, "failed to read configuration")
		}
		return string(b), nil
	}
	return contentXML, nil
}

func init() {
	editConfigCmd.Flags().StringVar(&contentXML, "xml", "", "configuration, as xml")
	editConfigCmd.Flags().StringVar(&contentFile, "file", "", "file holding the configuration")
	editConfigCmd.Flags().StringVar(&contentURL, "url", "", "url the server loads the configuration from")
	editConfigCmd.Flags().StringVar(&editDefaultOperation, "default-operation", "", "merge, replace or none")
	editConfigCmd.Flags().StringVar(&editTestOption, "test-option", "", "test-then-set, set or test-only")
	editConfigCmd.Flags().StringVar(&editErrorOption, "error-option", "",
		"stop-on-error, continue-on-error or rollback-on-error")
	editConfigCmd.MarkFlagsMutuallyExclusive("xml", "file", "url")

	validateCmd.Flags().StringVar(&contentXML, "xml", "", "configuration, as xml")
	validateCmd.Flags().StringVar(&contentFile, "file", "", "file holding the configuration")

	rootCmd.AddCommand(editConfigCmd, validateCmd)
}
