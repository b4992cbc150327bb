package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/Azhovan/envsecret"
	"github.com/Azhovan/envsecret/sourceenv"
)

// Value kinds accepted by get and check.
var kinds = []string{"string", "int", "float", "bool", "json", "yaml", "toml", "duration"}

// result is one coerced parameter, formatted for display.
type result struct {
	display string
	set     bool
	source  string
}

func newSecret(opts *rootOptions) *envsecret.Secret {
	envOpts := []envsecret.Option{envsecret.WithLogger(slog.Default())}
	if opts.envPrefix != "" {
		envOpts = append(envOpts, envsecret.WithEnv(sourceenv.New(sourceenv.Options{Prefix: opts.envPrefix})))
	}
	return envsecret.New(envOpts...)
}

// coerce resolves p once and runs the coercion matching kind on that
// value, so the printed source always belongs to the printed value.
func coerce(ctx context.Context, s *envsecret.Secret, kind string, p envsecret.Param) (result, error) {
	kind = strings.ToLower(kind)
	if !slices.Contains(kinds, kind) {
		return result{}, fmt.Errorf("unknown type %q (supported: %s)", kind, strings.Join(kinds, ", "))
	}

	res, err := s.Resolver().Lookup(ctx, p)
	if err != nil {
		return result{}, err
	}
	out := result{source: res.Source(), set: res.Value.Set}

	switch kind {
	case "string":
		out.display = res.Value.Value
	case "int":
		v, err := envsecret.ParseInt(p, res.Value)
		if err != nil {
			return result{}, err
		}
		out.display = strconv.FormatInt(v.Value, 10)
	case "float":
		v, err := envsecret.ParseFloat(p, res.Value)
		if err != nil {
			return result{}, err
		}
		out.display = strconv.FormatFloat(v.Value, 'g', -1, 64)
	case "bool":
		out.display, out.set = strconv.FormatBool(envsecret.ParseBool(res.Value)), true
	case "json", "yaml", "toml":
		v, err := envsecret.ParseObject(p, res.Value, kind)
		if err != nil {
			return result{}, err
		}
		if v.Set {
			data, merr := json.Marshal(v.Value)
			if merr != nil {
				return result{}, fmt.Errorf("encode %s: %w", p.Name, merr)
			}
			out.display = string(data)
		}
	case "duration":
		v, err := envsecret.ParseDuration(p, res.Value)
		if err != nil {
			return result{}, err
		}
		out.display = v.Value.String()
	}

	if !out.set {
		out.display = ""
	}
	return out, nil
}
