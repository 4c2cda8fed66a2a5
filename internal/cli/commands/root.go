// Package commands provides the cobra command tree of the pmsrp tool.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/fzdarsky/pmsrp/internal/cli/output"
	"github.com/fzdarsky/pmsrp/internal/config"
	"github.com/fzdarsky/pmsrp/internal/logging"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
	format     string

	cfg    *config.Config
	logger *logging.Logger
	out    output.Format
}

// NewRootCommand returns the pmsrp command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "pmsrp",
		Short: "Client-side SRP for Proton authentication",
		Long: `pmsrp computes the client side of Proton's SRP-6a login and generates
password verifiers. Every modulus is accepted only after its PGP signature
verifies against the pinned Proton key.

Requests are JSON documents read from the first argument or from stdin.
Responses are written to stdout; failures are written to stderr as an error
object and exit with status 1.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to the configuration file (default: user config dir, then "+config.DefaultPath+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	flags.StringVarP(&opts.format, "output", "o", string(output.FormatJSON), "output format (json, yaml)")

	root.AddCommand(
		newLoginCommand(opts),
		newVerifierCommand(opts),
		newModulusCommand(opts),
		newVersionCommand(version),
	)

	return root
}

func (o *globalOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return err
	}

	out, err := output.ParseFormat(o.format)
	if err != nil {
		return err
	}

	// stdout carries responses only.
	logger := logging.New(level, format)
	logger.SetOutput(cmd.ErrOrStderr(), cmd.ErrOrStderr())

	o.cfg = cfg
	o.logger = logger
	o.out = out
	return nil
}
