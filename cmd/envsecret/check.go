package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Azhovan/envsecret"
)

const redacted = "***redacted***"

// manifest lists the parameters an application expects.
type manifest struct {
	Params []manifestParam `yaml:"params"`
}

type manifestParam struct {
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"`
	Default  *string `yaml:"default"`
	Required bool    `yaml:"required"`
	Secret   bool    `yaml:"secret"`
	Dir      string  `yaml:"dir"`
}

func (m manifestParam) param() envsecret.Param {
	p := envsecret.Param{
		Name:     m.Name,
		Required: m.Required,
		Secret:   m.Secret,
		FileDir:  m.Dir,
	}
	if m.Default != nil {
		p.Default = envsecret.Some(*m.Default)
	}
	return p
}

func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	var showSources bool

	cmd := &cobra.Command{
		Use:   "check MANIFEST",
		Short: "Resolve every parameter listed in a YAML manifest",
		Long: `Resolve every parameter listed in a YAML manifest and report failures.

Manifest format:

  params:
    - name: PORT
      type: int
      default: "8080"
    - name: DB_PASSWORD__FILE
      type: string
      required: true
      secret: true

Secret values are printed as ***redacted***. Every parameter is checked;
the command fails if any of them failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s := newSecret(root)
			out := cmd.OutOrStdout()
			failed := 0

			for _, mp := range m.Params {
				kind := mp.Type
				if kind == "" {
					kind = "string"
				}

				res, err := coerce(ctx, s, kind, mp.param())
				if err != nil {
					failed++
					slog.Error("parameter check failed", "name", mp.Name, "err", err)
					fmt.Fprintf(out, "%s: error: %v\n", mp.Name, err)
					continue
				}

				display := res.display
				switch {
				case !res.set:
					display = "<unset>"
				case mp.Secret:
					display = redacted
				}

				line := fmt.Sprintf("%s: %s", mp.Name, display)
				if showSources {
					line += fmt.Sprintf(" (source: %s)", res.source)
				}
				fmt.Fprintln(out, line)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d parameters failed", failed, len(m.Params))
			}
			slog.Info("all parameters resolved", "count", len(m.Params))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSources, "sources", false, "include the source of each value")
	return cmd
}
