package cmd

import (
	"fmt"
	"os"

	"github.com/damianoneill/ncclient/netconf/client"
	"github.com/damianoneill/ncclient/netconf/command"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Global flags
	cfgFile    string
	address    string
	port       int
	user       string
	password   string
	dump       string
	noValidate bool
	verbose    bool

	// Shared state set during PersistentPreRun
	cfg        *Config
	dumpFormat command.DumpFormat

	handlerOptions []command.HandlerOption
	readPassword   = promptPassword
)

// rootCmd is the base command for ncclient.
var rootCmd = &cobra.Command{
	Use:   "ncclient",
	Short: "NETCONF client, runs one operation per invocation",
	Long: `ncclient connects to a NETCONF server over SSH, exchanges hello messages,
issues a single operation, prints the reply and closes the session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = DefaultConfigPath()
		}
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}

		// Override config with flags
		if address != "" {
			cfg.Address = address
		}
		if port != 0 {
			cfg.Port = port
		}
		if user != "" {
			cfg.User = user
		}
		if password != "" {
			cfg.Password = password
		}
		if dump != "" {
			cfg.Dump = dump
		}
		if noValidate {
			validate := false
			cfg.Validate = &validate
		}

		if dumpFormat, err = command.ParseDumpFormat(cfg.Dump); err != nil {
			return err
		}

		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
			cmd.SetContext(client.WithClientTrace(cmd.Context(), client.DiagnosticLoggingHooks))
		} else {
			cmd.SetContext(client.WithClientTrace(cmd.Context(), client.DefaultLoggingHooks))
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// SetHandlerOptions allows tests to customise the command handler.
func SetHandlerOptions(options ...command.HandlerOption) {
	handlerOptions = options
}

// RootCmd returns the root cobra.Command for testing purposes.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.ncclient/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&address, "address", "a", "", "server address")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 0, "server port (default 830)")
	rootCmd.PersistentFlags().StringVarP(&user, "user", "u", "", "user name")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "password, prompted for when omitted")
	rootCmd.PersistentFlags().StringVar(&dump, "dump", "", "dump the xml exchanged: none, raw or pretty (default \"none\")")
	rootCmd.PersistentFlags().BoolVar(&noValidate, "no-validate", false, "do not check requests against the server capabilities")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log the session events")
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no password, use --password or the config file")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.Wrap(err, "failed to read password")
	}
	return string(b), nil
}

// runSession says hello, issues the commands in turn and closes the session, printing every result.
// A command answered with an rpc-error does not stop the run, but fails it.
func runSession(cmd *cobra.Command, cmds ...command.Command) error {
	if cfg.Address == "" {
		return errors.New("no server address, use --address or the config file")
	}
	if cfg.Password == "" {
		pw, err := readPassword()
		if err != nil {
			return err
		}
		cfg.Password = pw
	}

	options := append([]command.HandlerOption{command.WithValidation(cfg.ValidateRequests())}, handlerOptions...)
	h := command.NewHandler(cfg.ClientCapabilities(), &cfg.Client, options...)
	defer h.Close()
	p := command.NewPrinter(cmd.OutOrStdout(), dumpFormat)

	all := append([]command.Command{command.Hello{
		Address:  cfg.Address,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
	}}, cmds...)
	all = append(all, command.CloseSession{})

	var failed error
	for _, c := range all {
		res, err := h.Handle(cmd.Context(), c)
		if err != nil {
			return err
		}
		p.Print(res)
		if res.Err() != nil && failed == nil {
			failed = errors.Errorf("%s answered with rpc-error", c.Name())
		}
	}
	return failed
}
