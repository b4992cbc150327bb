package sourceenv

import (
	"os"
	"strings"

	"github.com/Azhovan/envsecret"
	"github.com/Azhovan/envsecret/internal/naming"
)

// Options configures environment variable lookup behavior.
type Options struct {
	// Prefix is prepended to every parameter name before lookup.
	// Empty = names are used verbatim.
	// Prefix matching behavior is controlled by CaseSensitive.
	Prefix string

	// CaseSensitive controls prefix matching (default: false).
	// When false, a variable whose prefix differs only in case still
	// matches (APP_ matches app_PORT) if no exact match exists.
	// The part after the prefix always matches exactly.
	CaseSensitive bool
}

type envSource struct {
	opts Options
}

// New creates a prefixed view of the process environment.
func New(opts Options) envsecret.Env {
	return &envSource{opts: opts}
}

// Process returns the unprefixed process environment.
func Process() envsecret.Env {
	return envsecret.EnvFunc(os.LookupEnv)
}

// Lookup reads the variable for name, applying the prefix.
// The environment is read on every call.
func (e *envSource) Lookup(name string) (string, bool) {
	key := naming.ApplyPrefix(e.opts.Prefix, name)
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	if e.opts.Prefix == "" || e.opts.CaseSensitive {
		return "", false
	}

	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		k := parts[0]
		if !naming.HasPrefixFold(k, e.opts.Prefix, false) {
			continue
		}
		if k[len(e.opts.Prefix):] == name {
			return parts[1], true
		}
	}
	return "", false
}

type mapSource map[string]string

// Map returns a fixed environment backed by m. Useful in tests and when
// parameters come from somewhere other than the process.
// The map is copied.
func Map(m map[string]string) envsecret.Env {
	cp := make(mapSource, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

func (m mapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
