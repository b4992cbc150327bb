package envsecret

import (
	"context"
	"log/slog"
	"os"

	"github.com/Azhovan/envsecret/internal/naming"
	"github.com/Azhovan/envsecret/sourcefile"
)

// Resolver turns a Param into an optional raw string. It knows nothing
// about target types.
// Safe for concurrent use; the environment is read on every call.
type Resolver struct {
	env    Env
	files  FileReader
	logger *slog.Logger
}

// Option configures a Resolver using the functional options pattern.
type Option func(*Resolver)

// WithEnv sets the environment lookup. Default: the process environment.
func WithEnv(env Env) Option {
	return func(r *Resolver) {
		if env != nil {
			r.env = env
		}
	}
}

// WithFileReader sets how "__FILE" paths are read. Default: sourcefile.Reader{}.
func WithFileReader(files FileReader) Option {
	return func(r *Resolver) {
		if files != nil {
			r.files = files
		}
	}
}

// WithLogger sets the logger used for debug tracing. Values are never
// logged, only names and origins. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver reading the process environment.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		env:    EnvFunc(os.LookupEnv),
		files:  sourcefile.Reader{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the raw value for p, or an absent Optional.
// Returns *ParamError wrapping ErrRequiredValueMissing when p is required
// and nothing was found. Filesystem errors are returned unwrapped.
func (r *Resolver) Resolve(ctx context.Context, p Param) (Optional[string], error) {
	res, err := r.Lookup(ctx, p)
	return res.Value, err
}

// Lookup is Resolve with provenance.
func (r *Resolver) Lookup(ctx context.Context, p Param) (Resolution, error) {
	if err := p.Validate(); err != nil {
		return Resolution{}, err
	}

	res, err := r.fromSource(ctx, p)
	if err != nil {
		r.logger.DebugContext(ctx, "parameter lookup failed", "name", p.Name, "err", err)
		return Resolution{}, err
	}

	res, err = applyPolicy(p, res)
	if err != nil {
		r.logger.DebugContext(ctx, "parameter missing", "name", p.Name)
		return Resolution{}, err
	}

	r.logger.DebugContext(ctx, "parameter resolved",
		"name", p.Name,
		"origin", res.Origin.String(),
		"set", res.Value.Set,
	)
	return res, nil
}

// fromSource reads the raw value from the environment, or from the file
// named by the environment for "__FILE" names.
func (r *Resolver) fromSource(ctx context.Context, p Param) (Resolution, error) {
	if !p.FileIndirect() {
		val, ok := r.env.Lookup(p.Name)
		if !ok {
			return Resolution{}, nil
		}
		return Resolution{Value: Some(val), Origin: OriginEnv, Detail: "env:" + p.Name}, nil
	}

	// The required check runs here on the path variable, before the
	// default is considered. An empty path counts as unset.
	path, ok := r.env.Lookup(p.Name)
	if !ok || path == "" {
		if !p.Required {
			return Resolution{}, nil
		}
		return Resolution{}, newRequiredError(p.Name)
	}

	if err := ctx.Err(); err != nil {
		return Resolution{}, err
	}

	r.logger.DebugContext(ctx, "reading parameter file", "name", naming.BaseName(p.Name), "path", path)
	text, err := r.files.ReadFile(path)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Value: Some(text), Origin: OriginFile, Detail: "file:" + path, Path: path}, nil
}

// applyPolicy substitutes the default or enforces required on an absent value.
func applyPolicy(p Param, res Resolution) (Resolution, error) {
	if res.Value.Set {
		return res, nil
	}
	if p.Default.Set {
		return Resolution{Value: p.Default, Origin: OriginDefault}, nil
	}
	if p.Required {
		return Resolution{}, newRequiredError(p.Name)
	}
	return Resolution{}, nil
}
