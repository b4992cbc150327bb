package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Azhovan/envsecret"
)

func newGetCmd(root *rootOptions) *cobra.Command {
	var showSource bool

	cmd := &cobra.Command{
		Use:   "get TYPE DIRECTIVE",
		Short: "Resolve one parameter and print its value",
		Long: `Resolve one parameter and print its value.

TYPE is one of: string, int, float, bool, json, yaml, toml, duration.
Structured values are printed as compact JSON. An absent value prints
nothing and exits successfully; use the required directive to fail instead.

Examples:
  envsecret get int PORT,default:8080
  envsecret get string DB_PASSWORD__FILE,required`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := envsecret.ParseParam(args[1])
			if err != nil {
				return err
			}

			res, err := coerce(cmd.Context(), newSecret(root), args[0], p)
			if err != nil {
				return err
			}
			if !res.set {
				if showSource {
					fmt.Fprintf(cmd.OutOrStdout(), "\t%s\n", res.source)
				}
				return nil
			}

			if showSource {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.display, res.source)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.display)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSource, "source", false, "print where the value came from after a tab")
	return cmd
}
