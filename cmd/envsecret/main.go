// Command envsecret resolves typed parameters from the environment and
// mounted secret files.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	logLevel  string
	logFormat string
	envPrefix string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Version: version,
		Use:     "envsecret",
		Short:   "Resolve typed parameters from environment variables and secret files",
		Long: `envsecret resolves configuration parameters the same way an application would.

A parameter named NAME__FILE reads its value from the file whose path is
stored in the NAME__FILE variable. Parameters are written as directives:

  NAME[,default:VALUE][,required][,secret][,dir:PATH]`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format: text, json")
	cmd.PersistentFlags().StringVar(&opts.envPrefix, "env-prefix", "", "prefix prepended to every parameter name")

	cmd.AddCommand(newGetCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
